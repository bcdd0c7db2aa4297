// Package view turns a (year, type, viewport) selection into a map rendering
// descriptor and a statistics summary. It is the reactive core of the
// dashboard: the API layer invokes Update on every interaction event.
package view

import (
	"disastermap/internal/dataset"
	"disastermap/internal/models"
)

// ZoomThreshold splits density rendering from discrete points. Below it,
// individual points would be unreadable.
const ZoomThreshold = 5.0

const (
	densityRadius = 10
	maxPointSize  = 30.0
	minPointSize  = 4.0
	pointOpacity  = 0.7
)

type RenderMode string

const (
	// ModeDensity is the heat-map-style aggregate used at low zoom.
	ModeDensity RenderMode = "density"
	// ModePoints renders discrete markers sized by death toll.
	ModePoints RenderMode = "points"
	// ModePlaceholder is a single neutral point shown when the filtered set
	// is empty; the map never renders nothing.
	ModePlaceholder RenderMode = "placeholder"
)

// ViewportEvent is a partial pan/zoom change. Nil fields leave the prior
// viewport value untouched.
type ViewportEvent struct {
	Zoom   *float64            `json:"zoom,omitempty"`
	Center *models.Coordinates `json:"center,omitempty"`
}

type Point struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Location string  `json:"location,omitempty"`
	Deaths   int64   `json:"deaths"`
	Damage   float64 `json:"damage"`
	Size     float64 `json:"size,omitempty"`
}

// MapDescriptor tells the rendering layer what to draw. Zoom and Center
// always carry the session's current viewport so a filter change never snaps
// the map back to a default.
type MapDescriptor struct {
	Mode    RenderMode         `json:"mode"`
	Zoom    float64            `json:"zoom"`
	Center  models.Coordinates `json:"center"`
	Radius  int                `json:"radius,omitempty"`
	Opacity float64            `json:"opacity,omitempty"`
	Points  []Point            `json:"points"`
}

type Updater struct {
	table *dataset.Table
}

func NewUpdater(table *dataset.Table) *Updater {
	return &Updater{table: table}
}

// Update merges the viewport event into the prior state, filters the table
// by the selected year and type, and produces the rendering descriptor, the
// statistics, and the new view state. It cannot fail: an out-of-range
// selection yields the placeholder rendering.
func (u *Updater) Update(year int, dt models.DisasterType, ev *ViewportEvent, prior models.ViewState) (MapDescriptor, dataset.Stats, models.ViewState) {
	state := prior
	if ev != nil {
		if ev.Zoom != nil {
			state.Zoom = *ev.Zoom
		}
		if ev.Center != nil {
			state.Center = *ev.Center
		}
	}

	filtered := u.table.Filter(year, dt)
	stats := dataset.Summarize(filtered)

	desc := MapDescriptor{Zoom: state.Zoom, Center: state.Center}
	switch {
	case len(filtered) == 0:
		desc.Mode = ModePlaceholder
		desc.Points = []Point{{Lat: 0, Lon: 0}}
	case state.Zoom < ZoomThreshold:
		desc.Mode = ModeDensity
		desc.Radius = densityRadius
		desc.Points = basePoints(filtered)
	default:
		desc.Mode = ModePoints
		desc.Opacity = pointOpacity
		desc.Points = sizedPoints(filtered)
	}

	return desc, stats, state
}

func basePoints(records []models.Record) []Point {
	points := make([]Point, 0, len(records))
	for _, r := range records {
		points = append(points, Point{
			Lat:      r.Latitude,
			Lon:      r.Longitude,
			Location: r.Location,
			Deaths:   r.TotalDeaths,
			Damage:   r.TotalDamage,
		})
	}
	return points
}

// sizedPoints scales marker sizes linearly with death toll relative to the
// filtered set's maximum, capped at maxPointSize. A set with no recorded
// deaths renders every marker at the minimum size.
func sizedPoints(records []models.Record) []Point {
	points := basePoints(records)

	var maxDeaths int64
	for _, p := range points {
		maxDeaths = max(maxDeaths, p.Deaths)
	}

	for i := range points {
		if maxDeaths == 0 {
			points[i].Size = minPointSize
			continue
		}
		size := maxPointSize * float64(points[i].Deaths) / float64(maxDeaths)
		points[i].Size = max(size, minPointSize)
	}
	return points
}
