package metrics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm/clause"
)

func districtFromURL(r *http.Request) (*districts.District, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	var d districts.District
	if err := db.DB.First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// Snapshot is the latest-month view of a district's metrics.
type Snapshot struct {
	Year            int        `json:"year"`
	Month           int        `json:"month"`
	PersonDays      int64      `json:"person_days"`
	Households      int64      `json:"households"`
	AvgWage         float64    `json:"avg_wage"`
	Beneficiaries   int64      `json:"beneficiaries"`
	SourceUpdatedAt *time.Time `json:"source_updated_at"`
}

func toSnapshot(m *MonthlyMetric) *Snapshot {
	return &Snapshot{
		Year:            m.Year,
		Month:           m.Month,
		PersonDays:      m.PersonDays,
		Households:      m.Households,
		AvgWage:         m.AvgWage,
		Beneficiaries:   m.Beneficiaries,
		SourceUpdatedAt: m.SourceUpdatedAt,
	}
}

// TrendPoint is one month of the trend series.
type TrendPoint struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	PersonDays int64   `json:"person_days"`
	AvgWage    float64 `json:"avg_wage"`
}

func toTrend(rows []MonthlyMetric) []TrendPoint {
	out := make([]TrendPoint, 0, len(rows))
	for _, m := range rows {
		out = append(out, TrendPoint{
			Year:       m.Year,
			Month:      m.Month,
			PersonDays: m.PersonDays,
			AvgWage:    m.AvgWage,
		})
	}
	return out
}

// SnapshotForDistrict shapes the latest record for presentation.
func SnapshotForDistrict(districtID uint) (*Snapshot, error) {
	m, err := LatestForDistrict(districtID)
	if err != nil {
		return nil, err
	}
	return toSnapshot(m), nil
}

// TrendSeriesForDistrict shapes the window-bounded trend for presentation.
func TrendSeriesForDistrict(districtID uint) ([]TrendPoint, error) {
	rows, err := TrendForDistrict(districtID, trendWindow)
	if err != nil {
		return nil, err
	}
	return toTrend(rows), nil
}

// GetLatest serves the latest-month snapshot for a district.
func GetLatest(w http.ResponseWriter, r *http.Request) {
	d, err := districtFromURL(r)
	if err != nil {
		http.Error(w, "District not found", http.StatusNotFound)
		return
	}

	snap, err := SnapshotForDistrict(d.ID)
	if errors.Is(err, ErrNoData) {
		http.Error(w, "No data for district", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch latest metrics: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// GetTrend serves the window-bounded trend series, oldest month first.
func GetTrend(w http.ResponseWriter, r *http.Request) {
	d, err := districtFromURL(r)
	if err != nil {
		http.Error(w, "District not found", http.StatusNotFound)
		return
	}

	series, err := TrendSeriesForDistrict(d.ID)
	if err != nil {
		http.Error(w, "Failed to fetch trend: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(series)
}

// GetCompare serves the district-vs-state-average comparison.
func GetCompare(w http.ResponseWriter, r *http.Request) {
	d, err := districtFromURL(r)
	if err != nil {
		http.Error(w, "District not found", http.StatusNotFound)
		return
	}

	cmp, err := CompareForDistrict(d)
	if errors.Is(err, ErrNoData) {
		http.Error(w, "No data for district", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to build comparison: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cmp)
}

// GetStats serves store-level counts for monitoring.
func GetStats(w http.ResponseWriter, r *http.Request) {
	s, err := StoreStats()
	if err != nil {
		http.Error(w, "Failed to fetch stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// UpsertMetric accepts one month of figures from the ingestion collaborator
// (admin only). Re-submitting an existing (district, year, month) replaces the
// stored figures.
func UpsertMetric(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DistrictID      uint       `json:"district_id"`
		DistrictCode    string     `json:"district_code"`
		Year            int        `json:"year"`
		Month           int        `json:"month"`
		PersonDays      int64      `json:"person_days"`
		Households      int64      `json:"households"`
		AvgWage         float64    `json:"avg_wage"`
		Beneficiaries   int64      `json:"beneficiaries"`
		OtherJSON       JSONB      `json:"other_json"`
		SourceUpdatedAt *time.Time `json:"source_updated_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if in.DistrictID == 0 && in.DistrictCode != "" {
		var d districts.District
		if err := db.DB.First(&d, "district_code = ?", in.DistrictCode).Error; err != nil {
			http.Error(w, "District not found", http.StatusNotFound)
			return
		}
		in.DistrictID = d.ID
	}
	if in.DistrictID == 0 || in.Year == 0 || in.Month < 1 || in.Month > 12 {
		http.Error(w, "district, year and month are required", http.StatusBadRequest)
		return
	}
	if in.PersonDays < 0 || in.Households < 0 || in.AvgWage < 0 || in.Beneficiaries < 0 {
		http.Error(w, "Metric values must be non-negative", http.StatusBadRequest)
		return
	}

	m := MonthlyMetric{
		DistrictID:      in.DistrictID,
		Year:            in.Year,
		Month:           in.Month,
		PersonDays:      in.PersonDays,
		Households:      in.Households,
		AvgWage:         in.AvgWage,
		Beneficiaries:   in.Beneficiaries,
		OtherJSON:       in.OtherJSON,
		SourceUpdatedAt: in.SourceUpdatedAt,
	}

	err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "district_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"person_days", "households", "avg_wage", "beneficiaries", "other_json", "source_updated_at",
		}),
	}).Create(&m).Error
	if err != nil {
		http.Error(w, "Failed to save metric: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}
