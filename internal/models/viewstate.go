package models

const DefaultZoom = 2.0

// ViewState is a browser session's current map viewport. It is mutated only
// by the view updater in response to viewport-change events and never
// persisted.
type ViewState struct {
	Zoom   float64     `json:"zoom"`
	Center Coordinates `json:"center"`
}

func DefaultViewState() ViewState {
	return ViewState{
		Zoom:   DefaultZoom,
		Center: Coordinates{Lat: 20, Lon: 0},
	}
}
