package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"disastermap/internal/dataset"
	"disastermap/internal/models"
	"disastermap/internal/observability"
	"disastermap/internal/session"
	"disastermap/internal/view"
)

func testRecords() []models.Record {
	return []models.Record{
		{Latitude: 35.0, Longitude: 139.0, TotalDeaths: 1000, TotalDamage: 500000, StartYear: 2011, Type: models.DisasterTypeEarthquake, Location: "Japan"},
		{Latitude: 38.3, Longitude: 142.4, TotalDeaths: 250, TotalDamage: 80000, StartYear: 2011, Type: models.DisasterTypeEarthquake, Location: "Sendai"},
		{Latitude: -6.2, Longitude: 106.8, TotalDeaths: 52, TotalDamage: 12000, StartYear: 2007, Type: models.DisasterTypeFlood, Location: "Jakarta"},
	}
}

func setupTestRouter(records []models.Record) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	table := dataset.NewTable(records)
	sessions := session.NewStore(time.Hour, clockwork.NewFakeClock())
	handler := NewHandler(table, sessions, observability.NewMetricsForTesting())
	handler.RegisterRoutes(router)

	return router
}

func TestGetView_ReturnsMapStatsAndState(t *testing.T) {
	router := setupTestRouter(testRecords())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/view?year=2011&type=Earthquake&zoom=6", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp viewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Map.Mode != view.ModePoints {
		t.Errorf("expected points mode at zoom 6, got %s", resp.Map.Mode)
	}
	if len(resp.Map.Points) != 2 {
		t.Errorf("expected 2 points, got %d", len(resp.Map.Points))
	}
	if resp.Stats.TotalEvents != 2 {
		t.Errorf("expected 2 events, got %d", resp.Stats.TotalEvents)
	}
	if resp.Stats.TotalDeaths != 1250 {
		t.Errorf("expected 1250 deaths, got %d", resp.Stats.TotalDeaths)
	}
	if resp.View.Zoom != 6 {
		t.Errorf("expected view zoom 6, got %f", resp.View.Zoom)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != sessionCookie {
		t.Error("expected a session cookie to be set")
	}
}

func TestGetView_DensityAtLowZoom(t *testing.T) {
	router := setupTestRouter(testRecords())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/view?year=2011&type=Earthquake&zoom=3", nil)
	router.ServeHTTP(w, req)

	var resp viewResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Map.Mode != view.ModeDensity {
		t.Errorf("expected density mode at zoom 3, got %s", resp.Map.Mode)
	}
	if resp.Map.Radius != 10 {
		t.Errorf("expected radius 10, got %d", resp.Map.Radius)
	}
}

func TestGetView_EmptyFilterYieldsPlaceholder(t *testing.T) {
	router := setupTestRouter(testRecords())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/view?year=1850&type=Drought", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp viewResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Map.Mode != view.ModePlaceholder {
		t.Errorf("expected placeholder mode, got %s", resp.Map.Mode)
	}
	if len(resp.Map.Points) != 1 {
		t.Errorf("expected 1 placeholder point, got %d", len(resp.Map.Points))
	}
	if resp.Stats.TotalEvents != 0 {
		t.Errorf("expected 0 events, got %d", resp.Stats.TotalEvents)
	}
}

func TestGetView_ViewportPersistsAcrossRequests(t *testing.T) {
	router := setupTestRouter(testRecords())

	// First request pans and zooms.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/view?year=2011&type=Earthquake&zoom=7&lat=10&lon=10", nil)
	router.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	// Second request changes only the filter; no viewport payload.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/view?year=2007&type=Flood", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	router.ServeHTTP(w, req)

	var resp viewResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.View.Zoom != 7 {
		t.Errorf("expected zoom 7 preserved, got %f", resp.View.Zoom)
	}
	if resp.View.Center.Lat != 10 || resp.View.Center.Lon != 10 {
		t.Errorf("expected center (10,10) preserved, got (%f,%f)", resp.View.Center.Lat, resp.View.Center.Lon)
	}
}

func TestGetView_NewSessionStartsAtDefaultViewport(t *testing.T) {
	router := setupTestRouter(testRecords())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/view?year=2007&type=Flood", nil)
	router.ServeHTTP(w, req)

	var resp viewResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	want := models.DefaultViewState()
	if resp.View != want {
		t.Errorf("expected default view state %+v, got %+v", want, resp.View)
	}
}

func TestGetRecords_ReturnsGeoJSON(t *testing.T) {
	router := setupTestRouter(testRecords())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/records?year=2011&type=Earthquake", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/geo+json" {
		t.Errorf("expected content-type application/geo+json, got %s", contentType)
	}

	var fc FeatureCollection
	if err := json.Unmarshal(w.Body.Bytes(), &fc); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if fc.Type != "FeatureCollection" {
		t.Errorf("expected type FeatureCollection, got %s", fc.Type)
	}
	if len(fc.Features) != 2 {
		t.Errorf("expected 2 features, got %d", len(fc.Features))
	}

	// GeoJSON is [lon, lat].
	coords := fc.Features[0].Geometry.Coordinates
	if len(coords) != 2 || coords[0] != 139.0 || coords[1] != 35.0 {
		t.Errorf("unexpected coordinates: %v", coords)
	}
}

func TestGetMeta(t *testing.T) {
	router := setupTestRouter(testRecords())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/meta", nil)
	router.ServeHTTP(w, req)

	var meta struct {
		YearMin int      `json:"year_min"`
		YearMax int      `json:"year_max"`
		Types   []string `json:"types"`
		Records int      `json:"records"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &meta); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if meta.YearMin != 2007 || meta.YearMax != 2011 {
		t.Errorf("expected year range 2007-2011, got %d-%d", meta.YearMin, meta.YearMax)
	}
	if len(meta.Types) != 2 {
		t.Errorf("expected 2 types, got %v", meta.Types)
	}
	if meta.Records != 3 {
		t.Errorf("expected 3 records, got %d", meta.Records)
	}
}

func TestIndex_ServesDashboardPage(t *testing.T) {
	router := setupTestRouter(testRecords())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("expected html content type, got %s", ct)
	}
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %s", resp["status"])
	}
}
