package seeds

import (
	"log"
	"math/rand"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/metrics"
	"gorm.io/gorm/clause"
)

// SeedDemoMetrics generates plausible figures for the last six calendar
// months of every district, scaled to district size. Intended for local
// development; real deployments get data from the ingestion job.
func SeedDemoMetrics() error {
	var all []districts.District
	if err := db.DB.Find(&all).Error; err != nil {
		return err
	}

	now := time.Now()
	seeded := 0

	for i := 0; i < 6; i++ {
		year, month := now.Year(), int(now.Month())-i
		if month <= 0 {
			month += 12
			year--
		}

		for _, d := range all {
			households := d.Households
			if households == 0 {
				households = 200000
			}

			employed := randBetween(households*8/100, households*18/100)
			persons := randBetween(employed*3/2, employed*11/5)
			days := randBetween(persons*40, persons*60)

			sourceAt := now
			m := metrics.MonthlyMetric{
				DistrictID:      d.ID,
				Year:            year,
				Month:           month,
				PersonDays:      days,
				Households:      employed,
				AvgWage:         float64(randBetween(210, 260)),
				Beneficiaries:   persons,
				SourceUpdatedAt: &sourceAt,
			}
			err := db.DB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "district_id"}, {Name: "year"}, {Name: "month"}},
				DoNothing: true,
			}).Create(&m).Error
			if err != nil {
				return err
			}
			seeded++
		}
	}

	log.Printf("Seeded demo metrics for %d district-months", seeded)
	return nil
}

func randBetween(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rand.Int63n(hi-lo)
}
