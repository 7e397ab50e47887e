package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Record is one row of the employment-scheme resource on data.gov.in.
// Numeric fields arrive as strings in some resource exports, so they are
// decoded leniently.
type Record struct {
	StateName     string      `json:"state_name"`
	DistrictName  string      `json:"district_name"`
	FinYear       string      `json:"fin_year"`
	Year          json.Number `json:"year"`
	Month         json.Number `json:"month"`
	PersonDays    json.Number `json:"total_persondays"`
	Households    json.Number `json:"total_households_worked"`
	AvgWage       json.Number `json:"average_wage_rate_per_day_per_person"`
	Beneficiaries json.Number `json:"total_individuals_worked"`
	UpdatedDate   string      `json:"updated_date"`
}

type resourceResponse struct {
	Total   int      `json:"total"`
	Count   int      `json:"count"`
	Records []Record `json:"records"`
}

// Client fetches resource pages from the data.gov.in open-data API.
type Client struct {
	apiKey     string
	resourceID string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, resourceID string) *Client {
	base := os.Getenv("DATA_GOV_BASE_URL")
	if base == "" {
		base = "https://api.data.gov.in/resource"
	}
	return &Client{
		apiKey:     apiKey,
		resourceID: resourceID,
		baseURL:    base,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchPage retrieves one page of records. Pages are walked with
// offset/limit until a short page comes back.
func (c *Client) FetchPage(ctx context.Context, offset, limit int) ([]Record, error) {
	q := url.Values{}
	q.Set("api-key", c.apiKey)
	q.Set("format", "json")
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(c.resourceID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resource request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resource API returned HTTP %d", resp.StatusCode)
	}

	var rr resourceResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return rr.Records, nil
}
