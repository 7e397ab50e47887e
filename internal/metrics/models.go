package metrics

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/google/uuid"
)

// JSONB wraps json.RawMessage with Scanner/Valuer for GORM JSONB columns.
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = JSONB("{}")
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported type: %T", value)
	}
	return nil
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("{}"), nil
	}
	return json.RawMessage(j).MarshalJSON()
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	if j == nil {
		return fmt.Errorf("JSONB: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// MonthlyMetric is one month of employment-scheme figures for one district.
// At most one record exists per district per calendar month; months are
// appended by the ingestion job and removed only when the parent district goes.
type MonthlyMetric struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	DistrictID uint `gorm:"not null;uniqueIndex:uix_district_month" json:"district_id"`

	District districts.District `gorm:"foreignKey:DistrictID;constraint:OnDelete:CASCADE" json:"-"`

	Year  int `gorm:"not null;uniqueIndex:uix_district_month" json:"year"`
	Month int `gorm:"not null;uniqueIndex:uix_district_month" json:"month"`

	PersonDays    int64   `gorm:"not null;default:0" json:"person_days"`
	Households    int64   `gorm:"not null;default:0" json:"households"`
	AvgWage       float64 `gorm:"type:decimal(10,2);not null;default:0" json:"avg_wage"`
	Beneficiaries int64   `gorm:"not null;default:0" json:"beneficiaries"`

	OtherJSON JSONB `gorm:"column:other_json;type:jsonb" json:"other_json,omitempty"`

	SourceUpdatedAt *time.Time `json:"source_updated_at,omitempty"`
	FetchedAt       time.Time  `gorm:"autoCreateTime" json:"fetched_at"`
}

func (MonthlyMetric) TableName() string {
	return "monthly_metrics"
}

// SyncLog is an append-only audit record of one ingestion job run.
type SyncLog struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RunID      uuid.UUID  `gorm:"type:uuid" json:"run_id"`
	JobName    string     `gorm:"not null;index" json:"job_name"`
	Status     string     `gorm:"not null" json:"status"` // running, success, failed
	Details    string     `json:"details,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (SyncLog) TableName() string {
	return "sync_log"
}
