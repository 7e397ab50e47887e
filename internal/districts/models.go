package districts

import (
	"time"

	"github.com/lib/pq"
)

// District is an administrative unit and the unit of metric aggregation.
// Rows are seeded at provisioning time and effectively immutable afterwards.
type District struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	State     string `gorm:"not null;index" json:"state"`
	Code      string `gorm:"column:district_code;uniqueIndex;not null" json:"code"`
	Name      string `gorm:"column:district_name;not null" json:"name"`
	NameHindi string `gorm:"column:district_name_hindi" json:"name_hindi,omitempty"`
	// Alternate spellings seen in external geolocation payloads ("Ahmadabad").
	Aliases     pq.StringArray `gorm:"type:text[]" json:"aliases,omitempty"`
	CentroidLat *float64       `json:"centroid_lat,omitempty"`
	CentroidLon *float64       `json:"centroid_lon,omitempty"`
	Population  int64          `json:"population,omitempty"`
	Households  int64          `json:"households,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (District) TableName() string {
	return "districts"
}

// HasCentroid reports whether the district carries usable centroid coordinates.
func (d District) HasCentroid() bool {
	return d.CentroidLat != nil && d.CentroidLon != nil
}
