// Package viewport applies render surface size changes to the camera and renderer.
package viewport

import (
	"errors"

	"geoglobe/globe/geo"
	"geoglobe/globe/view"
)

// ErrNoCamera is returned when the state has no camera to update.
var ErrNoCamera = errors.New("viewport: no camera")

// Surface is a render output that can change size.
type Surface interface {
	Resize(width, height int)
}

// Handler applies resize notifications. It must run before picking or label sync
// within the same tick.
type Handler struct {
	Surface Surface
}

// Resize updates the camera aspect and projection, resizes the surface and stores the
// new viewport on state. Invalid sizes leave everything unchanged.
func (h Handler) Resize(state *view.State, width, height int) error {
	if width <= 0 {
		return geo.Invalid("width", float64(width), "must be positive")
	}
	if height <= 0 {
		return geo.Invalid("height", float64(height), "must be positive")
	}
	if state == nil || state.Camera == nil {
		return ErrNoCamera
	}
	vp := view.Viewport{Width: width, Height: height}
	state.Camera.SetAspect(vp.Aspect())
	state.Camera.UpdateProjectionMatrix()
	if h.Surface != nil {
		h.Surface.Resize(width, height)
	}
	state.Viewport = vp
	return nil
}
