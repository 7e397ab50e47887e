package location

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/cache"
	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/location/ipapi"
)

// ErrNotFound means no district could be matched to the input.
var ErrNotFound = errors.New("no matching district")

// Haversine returns the great-circle distance in kilometers between two
// coordinate pairs.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0 // km

	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

// NearestDistrict finds the district whose centroid is closest to the point.
// Districts without centroid data are skipped; when two are equidistant the
// lowest id wins, which the id-ordered scan guarantees. Returns ErrNotFound
// when no district carries centroid data.
func NearestDistrict(lat, lon float64) (*districts.District, float64, error) {
	var all []districts.District
	if err := db.DB.Order("id").Find(&all).Error; err != nil {
		return nil, 0, err
	}

	var (
		nearest *districts.District
		minDist = math.Inf(1)
	)
	for i := range all {
		d := &all[i]
		if !d.HasCentroid() {
			continue
		}
		dist := Haversine(lat, lon, *d.CentroidLat, *d.CentroidLon)
		if dist < minDist {
			minDist = dist
			nearest = d
		}
	}

	if nearest == nil {
		return nil, 0, ErrNotFound
	}
	return nearest, minDist, nil
}

// Resolver maps coordinates or client IPs onto districts, caching external
// lookups so repeated requests within a session skip the network.
type Resolver struct {
	geo          *ipapi.Client
	cache        *cache.Store
	geoTTL       time.Duration
	selectionTTL time.Duration
}

func NewResolver(geo *ipapi.Client, c *cache.Store, geoTTL, selectionTTL time.Duration) *Resolver {
	return &Resolver{geo: geo, cache: c, geoTTL: geoTTL, selectionTTL: selectionTTL}
}

// ResolveCoordinates is the coordinate path: nearest centroid wins.
func (res *Resolver) ResolveCoordinates(lat, lon float64) (*districts.District, error) {
	d, _, err := NearestDistrict(lat, lon)
	return d, err
}

// ResolveIP is the fallback path for clients without usable coordinates. The
// external locality is matched against district names and aliases first; a
// miss falls back to the nearest centroid for the returned coordinates.
func (res *Resolver) ResolveIP(ctx context.Context, ip string) (*districts.District, error) {
	selKey := cache.Key("selection", "ip", ip)
	if v, ok := res.cache.Get(selKey); ok {
		d := v.(districts.District)
		return &d, nil
	}

	locKey := cache.Key("location", "ip", ip)
	var loc *ipapi.Result
	if v, ok := res.cache.Get(locKey); ok {
		cached := v.(ipapi.Result)
		loc = &cached
	} else {
		fresh, err := res.geo.Lookup(ctx, ip)
		if err != nil {
			return nil, err
		}
		res.cache.Set(locKey, *fresh, res.geoTTL)
		loc = fresh
	}

	d, err := res.matchLocality(loc)
	if err != nil {
		return nil, err
	}

	res.cache.Set(selKey, *d, res.selectionTTL)
	return d, nil
}

func (res *Resolver) matchLocality(loc *ipapi.Result) (*districts.District, error) {
	var all []districts.District
	if err := db.DB.Order("id").Find(&all).Error; err != nil {
		return nil, err
	}

	for _, name := range []string{loc.District, loc.City} {
		if name == "" {
			continue
		}
		for i := range all {
			if nameMatches(&all[i], name) {
				return &all[i], nil
			}
		}
	}

	if loc.Lat != 0 || loc.Lon != 0 {
		d, _, err := NearestDistrict(loc.Lat, loc.Lon)
		return d, err
	}
	return nil, ErrNotFound
}

func nameMatches(d *districts.District, name string) bool {
	name = strings.TrimSpace(name)
	if strings.EqualFold(d.Name, name) || (d.NameHindi != "" && d.NameHindi == name) {
		return true
	}
	for _, alias := range d.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}
