package ingest

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/JanDarpan/JD-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

var adminKeyHash string

func RegisterRoutes(r chi.Router, keyHash string) {
	adminKeyHash = keyHash

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminKeyMiddleware(adminKeyHash))
		r.Post("/sync", TriggerSync)
	})
}

// TriggerSync kicks off an ingestion run in the background (admin only).
func TriggerSync(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := Run(context.Background()); err != nil {
			log.Printf("[%s] manual run error: %v", jobName, err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "sync started"})
}
