package viewport

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoglobe/globe/geo"
	"geoglobe/globe/view"
	"geoglobe/quarkgl"
)

type recordingSurface struct {
	w, h  int
	calls int
}

func (s *recordingSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.calls++
}

func TestResizeUpdatesCameraAndSurface(t *testing.T) {
	cam := quarkgl.NewPerspectiveCamera(50, 1, 0.1, 1000)
	cam.Position = r3.Vector{Z: 300}
	cam.UpdateViewMatrix()
	st := &view.State{Camera: cam}
	surf := &recordingSurface{}

	require.NoError(t, Handler{Surface: surf}.Resize(st, 1600, 900))
	assert.InDelta(t, 1600.0/900.0, cam.Aspect, 1e-12)
	assert.Equal(t, view.Viewport{Width: 1600, Height: 900}, st.Viewport)
	assert.Equal(t, 1, surf.calls)
	assert.Equal(t, 1600, surf.w)
	assert.Equal(t, 900, surf.h)

	// The projection is current: a point at the right edge of the frustum maps to x=1.
	halfH := 300 * tanHalf(cam.FOVYRad)
	ndc, ok := cam.Project(r3.Vector{X: halfH * cam.Aspect})
	require.True(t, ok)
	assert.InDelta(t, 1, ndc.X, 1e-9)
}

func TestResizeRejectsInvalid(t *testing.T) {
	cam := quarkgl.NewPerspectiveCamera(50, 1.5, 0.1, 1000)
	st := &view.State{Camera: cam, Viewport: view.Viewport{Width: 300, Height: 200}}
	surf := &recordingSurface{}
	h := Handler{Surface: surf}

	for _, sz := range [][2]int{{0, 100}, {100, 0}, {-5, 10}} {
		err := h.Resize(st, sz[0], sz[1])
		assert.ErrorIs(t, err, geo.ErrInvalid)
	}
	assert.Equal(t, 1.5, cam.Aspect)
	assert.Equal(t, view.Viewport{Width: 300, Height: 200}, st.Viewport)
	assert.Zero(t, surf.calls)

	assert.ErrorIs(t, h.Resize(&view.State{}, 10, 10), ErrNoCamera)
}

func tanHalf(fov float64) float64 { return math.Tan(fov / 2) }
