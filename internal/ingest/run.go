package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

const jobName = "datagov-monthly-sync"

const pageSize = 100

// Run executes one ingestion pass: page through the external resource, map
// each record to a district and upsert its month. Every run leaves a SyncLog
// row regardless of outcome.
func Run(ctx context.Context) error {
	runID := uuid.New()
	logEntry := metrics.SyncLog{
		RunID:     runID,
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
	}
	if err := db.DB.Create(&logEntry).Error; err != nil {
		return fmt.Errorf("recording sync start: %w", err)
	}

	upserted, skipped, err := runOnce(ctx)

	now := time.Now()
	logEntry.FinishedAt = &now
	if err != nil {
		logEntry.Status = "failed"
		logEntry.Details = err.Error()
	} else {
		logEntry.Status = "success"
		logEntry.Details = fmt.Sprintf("upserted %d records, skipped %d unmatched", upserted, skipped)
	}
	if saveErr := db.DB.Save(&logEntry).Error; saveErr != nil {
		log.Printf("[%s] failed to finalize sync log: %v", jobName, saveErr)
	}

	if err != nil {
		log.Printf("[%s] run %s failed: %v", jobName, runID, err)
		return err
	}
	log.Printf("[%s] run %s: %s", jobName, runID, logEntry.Details)
	return nil
}

func runOnce(ctx context.Context) (upserted, skipped int, err error) {
	if client == nil {
		return 0, 0, fmt.Errorf("data.gov.in credentials not configured")
	}

	index, err := districtIndex()
	if err != nil {
		return 0, 0, fmt.Errorf("loading district index: %w", err)
	}

	for offset := 0; ; offset += pageSize {
		records, err := client.FetchPage(ctx, offset, pageSize)
		if err != nil {
			return upserted, skipped, fmt.Errorf("fetching page at offset %d: %w", offset, err)
		}
		if len(records) == 0 {
			break
		}

		for _, rec := range records {
			id, ok := index[strings.ToLower(strings.TrimSpace(rec.DistrictName))]
			if !ok {
				skipped++
				continue
			}
			m, err := toMetric(id, rec)
			if err != nil {
				skipped++
				continue
			}
			err = db.DB.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "district_id"}, {Name: "year"}, {Name: "month"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"person_days", "households", "avg_wage", "beneficiaries", "source_updated_at",
				}),
			}).Create(m).Error
			if err != nil {
				return upserted, skipped, fmt.Errorf("upserting %s %s/%s: %w", rec.DistrictName, rec.Month, rec.Year, err)
			}
			upserted++
		}

		if len(records) < pageSize {
			break
		}
	}
	return upserted, skipped, nil
}

// districtIndex maps lowercased district names and aliases to ids for the
// configured state.
func districtIndex() (map[string]uint, error) {
	var all []districts.District
	if err := db.DB.Where("state = ?", stateScope).Find(&all).Error; err != nil {
		return nil, err
	}

	index := make(map[string]uint, len(all))
	for _, d := range all {
		index[strings.ToLower(d.Name)] = d.ID
		for _, alias := range d.Aliases {
			index[strings.ToLower(alias)] = d.ID
		}
	}
	return index, nil
}

func toMetric(districtID uint, rec Record) (*metrics.MonthlyMetric, error) {
	year, err := rec.Year.Int64()
	if err != nil {
		return nil, fmt.Errorf("year: %w", err)
	}
	month, err := rec.Month.Int64()
	if err != nil {
		return nil, fmt.Errorf("month: %w", err)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range", month)
	}

	m := &metrics.MonthlyMetric{
		DistrictID: districtID,
		Year:       int(year),
		Month:      int(month),
	}
	// Partial rows are common in the upstream resource; missing numbers stay zero.
	if v, err := rec.PersonDays.Int64(); err == nil && v >= 0 {
		m.PersonDays = v
	}
	if v, err := rec.Households.Int64(); err == nil && v >= 0 {
		m.Households = v
	}
	if v, err := rec.AvgWage.Float64(); err == nil && v >= 0 {
		m.AvgWage = v
	}
	if v, err := rec.Beneficiaries.Int64(); err == nil && v >= 0 {
		m.Beneficiaries = v
	}
	if rec.UpdatedDate != "" {
		if t, err := time.Parse("2006-01-02", rec.UpdatedDate); err == nil {
			m.SourceUpdatedAt = &t
		}
	}
	return m, nil
}
