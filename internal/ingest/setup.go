package ingest

import (
	"context"
	"log"

	"github.com/JanDarpan/JD-Backend/internal/config"
	"github.com/robfig/cron/v3"
)

var (
	client     *Client
	stateScope string
)

func Init(cfg *config.Config) {
	stateScope = cfg.State
	if cfg.DataGovAPIKey != "" && cfg.DataGovResourceID != "" {
		client = NewClient(cfg.DataGovAPIKey, cfg.DataGovResourceID)
	} else {
		log.Println("Ingest module: data.gov.in credentials missing, scheduled sync disabled")
	}
	log.Println("Ingest module initialized")
}

// Schedule registers the periodic sync on the shared cron runner. No-op when
// the schedule or the upstream credentials are absent.
func Schedule(cr *cron.Cron, schedule string) {
	if schedule == "" || client == nil {
		return
	}
	if _, err := cr.AddFunc(schedule, func() {
		if err := Run(context.Background()); err != nil {
			log.Printf("[%s] scheduled run error: %v", jobName, err)
		}
	}); err != nil {
		log.Fatal("Failed to schedule sync job: ", err)
	}
	log.Printf("Sync job scheduled: %s", schedule)
}
