package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Result holds structured data from an IP geolocation response.
type Result struct {
	Query      string  `json:"query"`
	Country    string  `json:"country"`
	Region     string  `json:"region"`     // state code
	RegionName string  `json:"regionName"` // full state name
	City       string  `json:"city"`
	District   string  `json:"district"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

type lookupResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result
}

// Client wraps the ip-api.com geolocation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geolocation client. IP_API_URL overrides the endpoint,
// which the tests point at a local stub.
func NewClient() *Client {
	base := os.Getenv("IP_API_URL")
	if base == "" {
		base = "http://ip-api.com/json"
	}
	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Lookup resolves an IP address to a locality. An empty ip resolves the
// caller's own address, which only makes sense when the service itself is the
// caller, so handlers always pass the client IP explicitly.
func (c *Client) Lookup(ctx context.Context, ip string) (*Result, error) {
	u := fmt.Sprintf("%s/%s?fields=status,message,country,region,regionName,city,district,lat,lon,query",
		c.baseURL, url.PathEscape(ip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation API returned HTTP %d", resp.StatusCode)
	}

	var lr lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if lr.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", lr.Message)
	}
	return &lr.Result, nil
}
