// Package labels keeps marker labels positioned over their markers on screen.
package labels

import (
	"geoglobe/globe/markers"
	"geoglobe/globe/view"
)

// DefaultOffsetY lifts a label above its marker, in pixels.
const DefaultOffsetY = 30

// Markers is the read-only view of the registry used while syncing.
type Markers interface {
	All() []markers.Marker
	Has(id string) bool
}

// Synchronizer places labels for the hovered marker and for always-visible markers.
//
// Every call derives visibility and position from the hover and camera alone.
type Synchronizer struct {
	OffsetY float64
}

func NewSynchronizer() Synchronizer {
	return Synchronizer{OffsetY: DefaultOffsetY}
}

// Placement is where a marker's label was put during Sync.
type Placement struct {
	MarkerID string
	X, Y     float64
}

// ScreenPosition projects a world point to pixel coordinates for the state's camera
// and viewport. ok is false when the point is behind the camera or off screen.
func ScreenPosition(state *view.State, p markers.Marker) (x, y float64, ok bool) {
	if state == nil || state.Camera == nil || !state.Viewport.Valid() {
		return 0, 0, false
	}
	ndc, ok := state.Camera.Project(p.Position)
	if !ok || ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 {
		return 0, 0, false
	}
	w, h := float64(state.Viewport.Width), float64(state.Viewport.Height)
	return (ndc.X*0.5 + 0.5) * w, (0.5 - ndc.Y*0.5) * h, true
}

// Sync shows, positions or hides every marker label and returns the shown placements.
func (s Synchronizer) Sync(state *view.State, ms Markers) []Placement {
	if ms == nil {
		return nil
	}
	hovered := ""
	if state != nil {
		if h := state.Hover.Resolve(ms); h.Kind == view.HoverMarker {
			hovered = h.MarkerID
		}
	}

	var shown []Placement
	for _, m := range ms.All() {
		if m.Label == nil {
			continue
		}
		if m.ID != hovered && !m.AlwaysVisible {
			m.Label.SetVisible(false)
			continue
		}
		x, y, ok := ScreenPosition(state, m)
		if !ok {
			m.Label.SetVisible(false)
			continue
		}
		y -= s.OffsetY
		m.Label.SetPosition(x, y)
		m.Label.SetVisible(true)
		shown = append(shown, Placement{MarkerID: m.ID, X: x, Y: y})
	}
	return shown
}
