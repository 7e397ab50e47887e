package districts

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.Get("/districts", ListDistricts)
	r.Get("/districts/{id}", GetDistrict)
}
