package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/cache"
	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, gdb.AutoMigrate(&districts.District{}, &MonthlyMetric{}, &SyncLog{}))

	db.DB = gdb
	store = cache.New()
	stateAvgTTL = time.Minute
	trendWindow = 12
}

func seedDistrict(t *testing.T, state, code, name string) districts.District {
	t.Helper()
	d := districts.District{State: state, Code: code, Name: name}
	require.NoError(t, db.DB.Create(&d).Error)
	return d
}

func seedMetric(t *testing.T, districtID uint, year, month int, personDays int64) {
	t.Helper()
	m := MonthlyMetric{
		DistrictID: districtID,
		Year:       year,
		Month:      month,
		PersonDays: personDays,
		AvgWage:    235.50,
	}
	require.NoError(t, db.DB.Create(&m).Error)
}

// TestUniquePerMonth verifies that a second record for the same
// (district, year, month) is rejected.
func TestUniquePerMonth(t *testing.T) {
	setupTestDB(t)
	d := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")

	seedMetric(t, d.ID, 2025, 9, 2510000)

	dup := MonthlyMetric{DistrictID: d.ID, Year: 2025, Month: 9, PersonDays: 1}
	err := db.DB.Create(&dup).Error
	assert.Error(t, err, "duplicate month must violate the unique index")
}

// TestCascadeDelete verifies that removing a district removes its metrics.
func TestCascadeDelete(t *testing.T) {
	setupTestDB(t)
	d := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")
	seedMetric(t, d.ID, 2025, 8, 100)
	seedMetric(t, d.ID, 2025, 9, 200)

	require.NoError(t, db.DB.Delete(&districts.District{}, d.ID).Error)

	var count int64
	require.NoError(t, db.DB.Model(&MonthlyMetric{}).Where("district_id = ?", d.ID).Count(&count).Error)
	assert.Zero(t, count, "metrics must be cascade-deleted with their district")
}

// TestLatestAndTrend covers the latest-snapshot and trend-ordering contract:
// rows at months 6..9 of 2025 come back in that order, and the latest is 9.
func TestLatestAndTrend(t *testing.T) {
	setupTestDB(t)
	d := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")

	// Insert out of order on purpose.
	for _, m := range []int{8, 6, 9, 7} {
		seedMetric(t, d.ID, 2025, m, int64(m)*1000)
	}

	latest, err := LatestForDistrict(d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2025, latest.Year)
	assert.Equal(t, 9, latest.Month)

	trend, err := TrendForDistrict(d.ID, 12)
	require.NoError(t, err)
	require.Len(t, trend, 4)
	for i, want := range []int{6, 7, 8, 9} {
		assert.Equal(t, want, trend[i].Month)
	}
}

// TestLatestCrossesYears verifies (year, month) lexicographic ordering across
// a year boundary.
func TestLatestCrossesYears(t *testing.T) {
	setupTestDB(t)
	d := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")
	seedMetric(t, d.ID, 2024, 12, 500)
	seedMetric(t, d.ID, 2025, 1, 600)

	latest, err := LatestForDistrict(d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2025, latest.Year)
	assert.Equal(t, 1, latest.Month)
}

// TestTrendWindow verifies the window bounds the most recent months.
func TestTrendWindow(t *testing.T) {
	setupTestDB(t)
	d := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")
	for m := 1; m <= 12; m++ {
		seedMetric(t, d.ID, 2025, m, int64(m))
	}

	trend, err := TrendForDistrict(d.ID, 3)
	require.NoError(t, err)
	require.Len(t, trend, 3)
	assert.Equal(t, 10, trend[0].Month)
	assert.Equal(t, 12, trend[2].Month)
}

func TestLatestNoData(t *testing.T) {
	setupTestDB(t)
	d := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")

	_, err := LatestForDistrict(d.ID)
	assert.ErrorIs(t, err, ErrNoData)
}

// TestStateAverage checks the state-wide mean for one month and that
// districts of other states are excluded.
func TestStateAverage(t *testing.T) {
	setupTestDB(t)
	d1 := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")
	d2 := seedDistrict(t, "Gujarat", "GJ29", "Surat")
	other := seedDistrict(t, "Rajasthan", "RJ01", "Jaipur")

	seedMetric(t, d1.ID, 2025, 9, 1000)
	seedMetric(t, d2.ID, 2025, 9, 3000)
	seedMetric(t, other.ID, 2025, 9, 999999)

	avg, err := StateAveragePersonDays("Gujarat", 2025, 9)
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, avg, 0.001)
}

func TestStateAverageEmpty(t *testing.T) {
	setupTestDB(t)

	avg, err := StateAveragePersonDays("Gujarat", 2025, 9)
	require.NoError(t, err)
	assert.Zero(t, avg)
}

// TestDistrictRank ranks by person_days within the state for one month.
func TestDistrictRank(t *testing.T) {
	setupTestDB(t)
	d1 := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")
	d2 := seedDistrict(t, "Gujarat", "GJ29", "Surat")
	d3 := seedDistrict(t, "Gujarat", "GJ26", "Porbandar")

	seedMetric(t, d1.ID, 2025, 9, 2000)
	seedMetric(t, d2.ID, 2025, 9, 3000)
	seedMetric(t, d3.ID, 2025, 9, 1000)

	rank, total, err := DistrictRank(d1.ID, "Gujarat", 2025, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)
	assert.Equal(t, 3, total)
}

// TestCompareForDistrict exercises the full comparison shape.
func TestCompareForDistrict(t *testing.T) {
	setupTestDB(t)
	d1 := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")
	d2 := seedDistrict(t, "Gujarat", "GJ29", "Surat")

	seedMetric(t, d1.ID, 2025, 9, 3000)
	seedMetric(t, d2.ID, 2025, 9, 1000)

	cmp, err := CompareForDistrict(&d1)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), cmp.District.PersonDays)
	assert.Equal(t, int64(2000), cmp.StateAvgPersonDays)
	assert.Equal(t, 1, cmp.DistrictRank)
	assert.Equal(t, 2, cmp.TotalDistricts)
	assert.InDelta(t, 50.0, cmp.ComparisonPercentages["person_days"], 0.1)
}

func TestStoreStats(t *testing.T) {
	setupTestDB(t)
	d := seedDistrict(t, "Gujarat", "GJ13", "Gandhinagar")
	seedMetric(t, d.ID, 2025, 9, 100)

	s, err := StoreStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.TotalDistricts)
	assert.Equal(t, int64(1), s.TotalRecords)
	assert.Equal(t, "9/2025", s.LatestData)
}
