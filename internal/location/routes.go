package location

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.Get("/geolocation", Geolocate)
	r.Get("/detect-location", DetectLocation)
	r.Get("/nearest-district", GetNearestDistrict)
}
