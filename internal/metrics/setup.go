package metrics

import (
	"log"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/cache"
	"github.com/JanDarpan/JD-Backend/internal/config"
	"github.com/JanDarpan/JD-Backend/internal/db"
)

var (
	store        *cache.Store
	stateAvgTTL  time.Duration
	trendWindow  int
	adminKeyHash string
)

func Init(cfg *config.Config, c *cache.Store) {
	store = c
	stateAvgTTL = time.Duration(cfg.StateAvgTTLMinutes) * time.Minute
	trendWindow = cfg.TrendWindowMonths
	adminKeyHash = cfg.AdminKeyHash

	if err := db.DB.AutoMigrate(&MonthlyMetric{}, &SyncLog{}); err != nil {
		log.Fatal("Failed to auto-migrate metrics tables: ", err)
	}

	// Composite index backing the latest/trend ordering scans.
	if err := db.DB.Exec(`
		CREATE INDEX IF NOT EXISTS idx_metrics_district_period
		ON monthly_metrics (district_id, year DESC, month DESC);
	`).Error; err != nil {
		log.Fatal("Failed to create idx_metrics_district_period: ", err)
	}

	log.Println("Metrics module initialized")
}
