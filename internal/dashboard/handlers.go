package dashboard

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// GetDashboard serves the aggregate view for one district. Any retrieval
// failure collapses to a single "data unavailable" response.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid district id", http.StatusBadRequest)
		return
	}

	var d districts.District
	if err := db.DB.First(&d, "id = ?", id).Error; err != nil {
		http.Error(w, "District not found", http.StatusNotFound)
		return
	}

	view, err := Build(r.Context(), &d)
	if errors.Is(err, metrics.ErrNoData) {
		http.Error(w, "No data for district", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[GetDashboard] district=%d err=%v", d.ID, err)
		http.Error(w, "Data unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}
