package metrics

import (
	"errors"
	"fmt"

	"github.com/JanDarpan/JD-Backend/internal/cache"
	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"gorm.io/gorm"
)

// ErrNoData means the district has no metric records yet.
var ErrNoData = errors.New("no metric data for district")

// LatestForDistrict returns the record with the maximum (year, month) for the
// district, or ErrNoData.
func LatestForDistrict(districtID uint) (*MonthlyMetric, error) {
	var m MonthlyMetric
	err := db.DB.Where("district_id = ?", districtID).
		Order("year DESC, month DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// TrendForDistrict returns up to window months for the district, ordered
// oldest to newest.
func TrendForDistrict(districtID uint, window int) ([]MonthlyMetric, error) {
	var rows []MonthlyMetric
	q := db.DB.Where("district_id = ?", districtID).Order("year DESC, month DESC")
	if window > 0 {
		q = q.Limit(window)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	// Fetched newest-first so the window bounds the most recent months;
	// reverse into presentation order.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// StateAveragePersonDays computes the mean person_days across every district
// of the state for one calendar month. Results are memoized briefly since the
// aggregate scans the whole state.
func StateAveragePersonDays(state string, year, month int) (float64, error) {
	key := cache.Key("stateavg", state, year, month)
	if v, ok := store.Get(key); ok {
		return v.(float64), nil
	}

	var avg *float64
	err := db.DB.Model(&MonthlyMetric{}).
		Select("AVG(monthly_metrics.person_days)").
		Joins("JOIN districts ON districts.id = monthly_metrics.district_id").
		Where("districts.state = ? AND monthly_metrics.year = ? AND monthly_metrics.month = ?", state, year, month).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}

	store.Set(key, *avg, stateAvgTTL)
	return *avg, nil
}

// DistrictRank ranks the district by person_days against every district of the
// same state for the given month. Rank 1 is the highest person_days count.
func DistrictRank(districtID uint, state string, year, month int) (rank, total int, err error) {
	type row struct {
		DistrictID uint
		PersonDays int64
	}
	var rows []row
	err = db.DB.Model(&MonthlyMetric{}).
		Select("monthly_metrics.district_id, monthly_metrics.person_days").
		Joins("JOIN districts ON districts.id = monthly_metrics.district_id").
		Where("districts.state = ? AND monthly_metrics.year = ? AND monthly_metrics.month = ?", state, year, month).
		Order("monthly_metrics.person_days DESC").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	total = len(rows)
	for i, r := range rows {
		if r.DistrictID == districtID {
			return i + 1, total, nil
		}
	}
	return total, total, nil
}

// Comparison is the shaped output of the compare view.
type Comparison struct {
	District struct {
		PersonDays int64   `json:"person_days"`
		AvgWage    float64 `json:"avg_wage"`
	} `json:"district"`
	StateAvgPersonDays    int64              `json:"state_avg_person_days"`
	DistrictRank          int                `json:"district_rank"`
	TotalDistricts        int                `json:"total_districts"`
	ComparisonPercentages map[string]float64 `json:"comparison_percentages"`
}

// CompareForDistrict builds the district-vs-state-average comparison for the
// district's latest month.
func CompareForDistrict(d *districts.District) (*Comparison, error) {
	last, err := LatestForDistrict(d.ID)
	if err != nil {
		return nil, err
	}

	avg, err := StateAveragePersonDays(d.State, last.Year, last.Month)
	if err != nil {
		return nil, err
	}

	rank, total, err := DistrictRank(d.ID, d.State, last.Year, last.Month)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		StateAvgPersonDays: int64(avg),
		DistrictRank:       rank,
		TotalDistricts:     total,
	}
	cmp.District.PersonDays = last.PersonDays
	cmp.District.AvgWage = last.AvgWage

	cmp.ComparisonPercentages = map[string]float64{}
	if avg > 0 {
		pct := (float64(last.PersonDays) - avg) / avg * 100
		cmp.ComparisonPercentages["person_days"] = float64(int(pct*10)) / 10
	}
	return cmp, nil
}

// Stats summarizes the store for the operational stats endpoint.
type Stats struct {
	TotalDistricts int64  `json:"total_districts"`
	TotalRecords   int64  `json:"total_metric_records"`
	LatestData     string `json:"latest_data"`
}

func StoreStats() (*Stats, error) {
	var s Stats
	if err := db.DB.Model(&districts.District{}).Count(&s.TotalDistricts).Error; err != nil {
		return nil, err
	}
	if err := db.DB.Model(&MonthlyMetric{}).Count(&s.TotalRecords).Error; err != nil {
		return nil, err
	}

	var latest MonthlyMetric
	err := db.DB.Order("year DESC, month DESC").First(&latest).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.LatestData = "No data"
	case err != nil:
		return nil, err
	default:
		s.LatestData = fmt.Sprintf("%d/%d", latest.Month, latest.Year)
	}
	return &s, nil
}
