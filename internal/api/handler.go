package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"disastermap/internal/dataset"
	"disastermap/internal/models"
	"disastermap/internal/observability"
	"disastermap/internal/session"
	"disastermap/internal/view"
)

const sessionCookie = "session_id"

type Handler struct {
	table    *dataset.Table
	updater  *view.Updater
	sessions *session.Store
	metrics  *observability.Metrics
}

func NewHandler(table *dataset.Table, sessions *session.Store, metrics *observability.Metrics) *Handler {
	return &Handler{
		table:    table,
		updater:  view.NewUpdater(table),
		sessions: sessions,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/api/view", h.getView)
	r.GET("/api/records", h.getRecords)
	r.GET("/api/meta", h.getMeta)
	r.GET("/health", h.health)
}

type viewResponse struct {
	Map   view.MapDescriptor `json:"map"`
	Stats dataset.Stats      `json:"stats"`
	View  models.ViewState   `json:"view"`
}

// getView is the view-update endpoint: it merges an optional viewport event
// into the session's state, filters the table by year and type, and returns
// the rendering descriptor, statistics, and updated view state.
func (h *Handler) getView(c *gin.Context) {
	start := time.Now()

	year, _ := strconv.Atoi(c.Query("year"))
	dt, _ := models.ParseDisasterType(c.Query("type"))
	ev := parseViewportEvent(c)
	sid := h.sessionID(c)

	var (
		desc  view.MapDescriptor
		stats dataset.Stats
	)
	state := h.sessions.Update(sid, func(prior models.ViewState) models.ViewState {
		var next models.ViewState
		desc, stats, next = h.updater.Update(year, dt, ev, prior)
		return next
	})

	h.metrics.ViewUpdates.WithLabelValues(string(desc.Mode)).Inc()
	h.metrics.ViewUpdateDuration.Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, viewResponse{Map: desc, Stats: stats, View: state})
}

func (h *Handler) getRecords(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	dt, _ := models.ParseDisasterType(c.Query("type"))

	fc := toGeoJSON(h.table.Filter(year, dt))
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

// getMeta exposes the bounds the controls are built from: the year range and
// the allow-listed types present in the data.
func (h *Handler) getMeta(c *gin.Context) {
	minYear, maxYear := h.table.YearRange()
	c.JSON(http.StatusOK, gin.H{
		"year_min": minYear,
		"year_max": maxYear,
		"types":    h.table.Types(),
		"records":  h.table.Len(),
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}

// sessionID reads the session cookie, minting one when absent so each
// browser tab gets its own viewport state.
func (h *Handler) sessionID(c *gin.Context) string {
	sid, err := c.Cookie(sessionCookie)
	if err != nil || sid == "" {
		sid = uuid.NewString()
		c.SetCookie(sessionCookie, sid, 0, "/", "", false, true)
	}
	return sid
}

// parseViewportEvent builds the partial pan/zoom event from query params.
// Absent params leave the corresponding field nil so the prior state wins.
func parseViewportEvent(c *gin.Context) *view.ViewportEvent {
	var (
		ev      view.ViewportEvent
		present bool
	)

	if z := c.Query("zoom"); z != "" {
		if f, err := strconv.ParseFloat(z, 64); err == nil {
			ev.Zoom = &f
			present = true
		}
	}
	if latStr, lonStr := c.Query("lat"), c.Query("lon"); latStr != "" && lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat == nil && errLon == nil {
			ev.Center = &models.Coordinates{Lat: lat, Lon: lon}
			present = true
		}
	}

	if !present {
		return nil
	}
	return &ev
}
