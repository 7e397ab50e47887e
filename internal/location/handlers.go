package location

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/middleware"
)

type geoResponse struct {
	Success           bool   `json:"success"`
	DistrictID        uint   `json:"district_id,omitempty"`
	DistrictCode      string `json:"district_code,omitempty"`
	DistrictName      string `json:"district_name,omitempty"`
	DistrictNameHindi string `json:"district_name_hindi,omitempty"`
}

func writeGeo(w http.ResponseWriter, d *districts.District) {
	resp := geoResponse{Success: d != nil}
	if d != nil {
		resp.DistrictID = d.ID
		resp.DistrictCode = d.Code
		resp.DistrictName = d.Name
		resp.DistrictNameHindi = d.NameHindi
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func parseCoords(r *http.Request) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err = strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// Geolocate resolves explicit coordinates to a district. A failed resolution
// is an expected alternate path, reported as success:false so the client
// prompts for manual selection instead of erroring.
func Geolocate(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseCoords(r)
	if err != nil {
		http.Error(w, "lat/lon required", http.StatusBadRequest)
		return
	}

	d, err := resolver.ResolveCoordinates(lat, lon)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[Geolocate] lat=%f lon=%f err=%v", lat, lon, err)
		}
		writeGeo(w, nil)
		return
	}
	writeGeo(w, d)
}

// DetectLocation resolves the client's IP when coordinates are unavailable
// (geolocation denied or timed out in the browser).
func DetectLocation(w http.ResponseWriter, r *http.Request) {
	ip := middleware.ClientIP(r)

	d, err := resolver.ResolveIP(r.Context(), ip)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[DetectLocation] ip=%s err=%v", ip, err)
		}
		writeGeo(w, nil)
		return
	}
	writeGeo(w, d)
}

// GetNearestDistrict returns the closest district for a coordinate pair.
func GetNearestDistrict(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseCoords(r)
	if err != nil {
		http.Error(w, "lat/lon required", http.StatusBadRequest)
		return
	}

	d, distance, err := NearestDistrict(lat, lon)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "No districts with centroid data", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to resolve location: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":          d.ID,
		"code":        d.Code,
		"name":        d.Name,
		"distance_km": distance,
	})
}
