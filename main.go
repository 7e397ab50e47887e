package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/cache"
	"github.com/JanDarpan/JD-Backend/internal/config"
	"github.com/JanDarpan/JD-Backend/internal/dashboard"
	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/ingest"
	"github.com/JanDarpan/JD-Backend/internal/location"
	"github.com/JanDarpan/JD-Backend/internal/metrics"
	"github.com/JanDarpan/JD-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":    "ok",
		"db_status": "ok",
	}
	if err := db.Ping(); err != nil {
		status["status"] = "degraded"
		status["db_status"] = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db.Connect()

	store := cache.New()

	districts.Init(cfg)
	metrics.Init(cfg, store)
	location.Init(cfg, store)
	ingest.Init(cfg)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerHour))
	r.Get("/", HealthHandler)

	r.Route("/api", func(api chi.Router) {
		districts.RegisterRoutes(api)
		location.RegisterRoutes(api)
		metrics.RegisterRoutes(api)
		dashboard.RegisterRoutes(api)
		ingest.RegisterRoutes(api, cfg.AdminKeyHash)
	})

	cr := cron.New()
	ingest.Schedule(cr, cfg.SyncSchedule)
	cr.Start()
	defer cr.Stop()

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on port :%s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown: ", err)
	}
}
