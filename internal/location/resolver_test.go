package location

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/cache"
	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/location/ipapi"
	"github.com/glebarez/sqlite"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&districts.District{}))

	db.DB = gdb
}

func seedDistrict(t *testing.T, code, name string, lat, lon float64) districts.District {
	t.Helper()
	d := districts.District{
		State:       "Gujarat",
		Code:        code,
		Name:        name,
		CentroidLat: &lat,
		CentroidLon: &lon,
	}
	require.NoError(t, db.DB.Create(&d).Error)
	return d
}

// TestHaversineSymmetry: distance(A,B) == distance(B,A).
func TestHaversineSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{23.2156, 72.6369, 21.1702, 72.8311},
		{0, 0, 0, 0},
		{-45.0, 170.0, 60.0, -120.0},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Gandhinagar to Surat is roughly 228 km.
	d := Haversine(23.2156, 72.6369, 21.1702, 72.8311)
	assert.InDelta(t, 228, d, 5)
}

// TestNearestAtCentroid: resolving the exact centroid of a district returns
// that district.
func TestNearestAtCentroid(t *testing.T) {
	setupTestDB(t)
	seedDistrict(t, "GJ13", "Gandhinagar", 23.2156, 72.6369)
	seedDistrict(t, "GJ29", "Surat", 21.1702, 72.8311)
	seedDistrict(t, "GJ26", "Porbandar", 21.6417, 69.6042)

	var all []districts.District
	require.NoError(t, db.DB.Find(&all).Error)
	for _, want := range all {
		got, dist, err := NearestDistrict(*want.CentroidLat, *want.CentroidLon)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.InDelta(t, 0, dist, 1e-9)
	}
}

// TestNearestGandhinagar is the end-to-end fixture from the original data
// set: (23.21, 72.64) resolves to district 1.
func TestNearestGandhinagar(t *testing.T) {
	setupTestDB(t)
	g := seedDistrict(t, "GJ13", "Gandhinagar", 23.2156, 72.6369)
	seedDistrict(t, "GJ29", "Surat", 21.1702, 72.8311)

	got, _, err := NearestDistrict(23.21, 72.64)
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, uint(1), got.ID)
}

// TestNearestTieBreak: equidistant districts resolve to the lowest id.
func TestNearestTieBreak(t *testing.T) {
	setupTestDB(t)
	// Same centroid on both, so distances are exactly equal.
	first := seedDistrict(t, "GJ04", "Aravalli", 23.5, 73.0)
	seedDistrict(t, "GJ28", "Sabarkantha", 23.5, 73.0)

	got, _, err := NearestDistrict(23.0, 72.5)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

// TestNearestSkipsMissingCentroids: districts without coordinates never match,
// and NotFound comes back when none carry centroid data.
func TestNearestSkipsMissingCentroids(t *testing.T) {
	setupTestDB(t)
	bare := districts.District{State: "Gujarat", Code: "GJ99", Name: "Nowhere"}
	require.NoError(t, db.DB.Create(&bare).Error)

	_, _, err := NearestDistrict(23.0, 72.5)
	assert.ErrorIs(t, err, ErrNotFound)

	withC := seedDistrict(t, "GJ13", "Gandhinagar", 23.2156, 72.6369)
	got, _, err := NearestDistrict(23.0, 72.5)
	require.NoError(t, err)
	assert.Equal(t, withC.ID, got.ID)
}

func geoStub(t *testing.T, body string, status int) *ipapi.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("IP_API_URL", srv.URL)
	return ipapi.NewClient()
}

// TestResolveIPByCityName: the external locality matches a district by name.
func TestResolveIPByCityName(t *testing.T) {
	setupTestDB(t)
	surat := seedDistrict(t, "GJ29", "Surat", 21.1702, 72.8311)
	seedDistrict(t, "GJ13", "Gandhinagar", 23.2156, 72.6369)

	geo := geoStub(t, `{"status":"success","country":"India","regionName":"Gujarat","city":"Surat","lat":21.19,"lon":72.84,"query":"203.0.113.9"}`, http.StatusOK)
	res := NewResolver(geo, cache.New(), time.Minute, time.Hour)

	got, err := res.ResolveIP(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, surat.ID, got.ID)
}

// TestResolveIPByAlias: alternate spellings map through the alias list.
func TestResolveIPByAlias(t *testing.T) {
	setupTestDB(t)
	amd := districts.District{
		State: "Gujarat", Code: "GJ01", Name: "Ahmedabad",
		Aliases: pq.StringArray{"Ahmadabad"},
	}
	require.NoError(t, db.DB.Create(&amd).Error)

	geo := geoStub(t, `{"status":"success","city":"Ahmadabad","query":"203.0.113.9"}`, http.StatusOK)
	res := NewResolver(geo, cache.New(), time.Minute, time.Hour)

	got, err := res.ResolveIP(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, amd.ID, got.ID)
}

// TestResolveIPFallsBackToCoordinates: an unknown locality with usable
// coordinates resolves to the nearest centroid.
func TestResolveIPFallsBackToCoordinates(t *testing.T) {
	setupTestDB(t)
	g := seedDistrict(t, "GJ13", "Gandhinagar", 23.2156, 72.6369)
	seedDistrict(t, "GJ26", "Porbandar", 21.6417, 69.6042)

	geo := geoStub(t, `{"status":"success","city":"Unlisted Town","lat":23.20,"lon":72.60,"query":"203.0.113.9"}`, http.StatusOK)
	res := NewResolver(geo, cache.New(), time.Minute, time.Hour)

	got, err := res.ResolveIP(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
}

// TestResolveIPCaches: the second lookup for the same IP skips the network.
func TestResolveIPCaches(t *testing.T) {
	setupTestDB(t)
	surat := seedDistrict(t, "GJ29", "Surat", 21.1702, 72.8311)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"status":"success","city":"Surat","lat":21.19,"lon":72.84,"query":"203.0.113.9"}`)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("IP_API_URL", srv.URL)

	res := NewResolver(ipapi.NewClient(), cache.New(), time.Minute, time.Hour)

	for i := 0; i < 3; i++ {
		got, err := res.ResolveIP(context.Background(), "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, surat.ID, got.ID)
	}
	assert.Equal(t, 1, calls)
}

// TestResolveIPServiceFailure: upstream failure surfaces as an error, which
// the handler turns into a manual-selection prompt.
func TestResolveIPServiceFailure(t *testing.T) {
	setupTestDB(t)
	seedDistrict(t, "GJ29", "Surat", 21.1702, 72.8311)

	geo := geoStub(t, `{"status":"fail","message":"private range"}`, http.StatusOK)
	res := NewResolver(geo, cache.New(), time.Minute, time.Hour)

	_, err := res.ResolveIP(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}
