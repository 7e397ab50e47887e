package districts

import (
	"encoding/json"
	"net/http"

	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
)

var defaultState = "Gujarat"

var langMatcher = language.NewMatcher([]language.Tag{
	language.English, // fallback
	language.Hindi,
})

// displayName picks the district name variant matching the request's
// Accept-Language header.
func displayName(d District, r *http.Request) string {
	tag, _ := language.MatchStrings(langMatcher, r.Header.Get("Accept-Language"))
	if base, _ := tag.Base(); base.String() == "hi" && d.NameHindi != "" {
		return d.NameHindi
	}
	return d.Name
}

type districtResponse struct {
	ID          uint     `json:"id"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	NameHindi   string   `json:"name_hindi,omitempty"`
	DisplayName string   `json:"display_name"`
	State       string   `json:"state"`
	CentroidLat *float64 `json:"centroid_lat"`
	CentroidLon *float64 `json:"centroid_lon"`
}

func toResponse(d District, r *http.Request) districtResponse {
	return districtResponse{
		ID:          d.ID,
		Code:        d.Code,
		Name:        d.Name,
		NameHindi:   d.NameHindi,
		DisplayName: displayName(d, r),
		State:       d.State,
		CentroidLat: d.CentroidLat,
		CentroidLon: d.CentroidLon,
	}
}

// ListDistricts returns the directory for one state, ordered by name.
func ListDistricts(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = defaultState
	}

	var list []District
	if err := db.DB.Where("state = ?", state).Order("district_name").Find(&list).Error; err != nil {
		http.Error(w, "Failed to fetch districts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]districtResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toResponse(d, r))
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// GetDistrict returns a single district by ID.
func GetDistrict(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var d District
	if err := db.DB.First(&d, "id = ?", id).Error; err != nil {
		http.Error(w, "District not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toResponse(d, r))
}
