package main

import (
	"context"
	"log"

	"github.com/JanDarpan/JD-Backend/internal/cache"
	"github.com/JanDarpan/JD-Backend/internal/config"
	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/ingest"
	"github.com/JanDarpan/JD-Backend/internal/metrics"
	"github.com/joho/godotenv"
)

// One-shot ingestion run for cron-less environments and manual backfills.
func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db.Connect()
	districts.Init(cfg)
	metrics.Init(cfg, cache.New())
	ingest.Init(cfg)

	if err := ingest.Run(context.Background()); err != nil {
		log.Fatalf("Sync failed: %v", err)
	}
}
