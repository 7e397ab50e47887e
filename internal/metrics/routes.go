package metrics

import (
	"github.com/JanDarpan/JD-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.Get("/district/{id}/latest", GetLatest)
	r.Get("/district/{id}/trend", GetTrend)
	r.Get("/district/{id}/compare", GetCompare)
	r.Get("/stats", GetStats)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminKeyMiddleware(adminKeyHash))
		r.Post("/metrics", UpsertMetric)
	})
}
