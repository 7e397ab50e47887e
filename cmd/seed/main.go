package main

import (
	"flag"
	"log"

	"github.com/JanDarpan/JD-Backend/internal/cache"
	"github.com/JanDarpan/JD-Backend/internal/config"
	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/metrics"
	"github.com/JanDarpan/JD-Backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	demo := flag.Bool("demo", false, "also seed sample monthly metrics")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db.Connect()
	districts.Init(cfg)
	metrics.Init(cfg, cache.New())

	if err := seeds.SeedAll(*demo); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
