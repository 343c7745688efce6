package labels

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoglobe/globe/markers"
	"geoglobe/globe/overlay"
	"geoglobe/globe/view"
	"geoglobe/quarkgl"
)

type fixture struct {
	ov    *overlay.Memory
	reg   *markers.Registry
	state *view.State
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ov := overlay.NewMemory()
	reg := markers.NewRegistry(ov)
	require.NoError(t, reg.AddRecords([]markers.Record{
		{Name: "A", Lat: 0, Lon: 0, Value: 1},
		{Name: "B", Lat: 0, Lon: 90, Value: 1},
		{Name: "C", Lat: 0, Lon: 180, Value: 1},
	}, 100))
	cam := quarkgl.NewPerspectiveCamera(50, 2, 0.1, 2000)
	cam.Position = r3.Vector{X: 300}
	cam.UpdateViewMatrix()
	return fixture{ov: ov, reg: reg, state: &view.State{Camera: cam, Viewport: view.Viewport{Width: 800, Height: 400}}}
}

func (f fixture) label(t *testing.T, id string) overlay.Snapshot {
	t.Helper()
	m, ok := f.reg.Get(id)
	require.True(t, ok)
	s, ok := f.ov.Get(m.Label.ID())
	require.True(t, ok)
	return s
}

func TestSyncHoveredMarker(t *testing.T) {
	f := newFixture(t)
	f.state.Hover = view.MarkerHover("A")

	shown := NewSynchronizer().Sync(f.state, f.reg)
	require.Len(t, shown, 1)

	a := f.label(t, "A")
	assert.True(t, a.Visible)
	assert.InDelta(t, 400, a.X, 1e-6)
	assert.InDelta(t, 200-DefaultOffsetY, a.Y, 1e-6)
	assert.False(t, f.label(t, "B").Visible)
	assert.False(t, f.label(t, "C").Visible)
}

func TestSyncHidesWhenHoverClears(t *testing.T) {
	f := newFixture(t)
	s := NewSynchronizer()
	f.state.Hover = view.MarkerHover("A")
	s.Sync(f.state, f.reg)
	require.True(t, f.label(t, "A").Visible)

	f.state.Hover = view.SurfaceHover(f.state.Hover.Coordinate, r3.Vector{})
	assert.Empty(t, s.Sync(f.state, f.reg))
	assert.False(t, f.label(t, "A").Visible)
}

func TestSyncAlwaysVisible(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetAlwaysVisible("B", true))

	shown := NewSynchronizer().Sync(f.state, f.reg)
	require.Len(t, shown, 1)
	assert.Equal(t, "B", shown[0].MarkerID)
	b := f.label(t, "B")
	assert.True(t, b.Visible)
	// B sits at -Z; from +X it appears to the right of center.
	assert.Greater(t, b.X, 400.0)
}

func TestSyncFollowsCamera(t *testing.T) {
	f := newFixture(t)
	f.state.Hover = view.MarkerHover("A")
	s := NewSynchronizer()
	s.Sync(f.state, f.reg)
	before := f.label(t, "A")

	cam := f.state.Camera.(*quarkgl.Camera)
	cam.Position = r3.Vector{X: 300, Y: 60}
	cam.UpdateViewMatrix()
	s.Sync(f.state, f.reg)
	after := f.label(t, "A")
	assert.Greater(t, after.Y, before.Y)
}

func TestSyncHidesBehindCamera(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetAlwaysVisible("A", true))
	cam := f.state.Camera.(*quarkgl.Camera)
	cam.Position = r3.Vector{X: 50}
	cam.Target = r3.Vector{X: -100}
	cam.UpdateViewMatrix()

	assert.Empty(t, NewSynchronizer().Sync(f.state, f.reg))
	assert.False(t, f.label(t, "A").Visible)
}

func TestSyncStaleHover(t *testing.T) {
	f := newFixture(t)
	f.state.Hover = view.MarkerHover("gone")
	assert.Empty(t, NewSynchronizer().Sync(f.state, f.reg))
}

func TestSyncDegenerateViewport(t *testing.T) {
	f := newFixture(t)
	f.state.Hover = view.MarkerHover("A")
	f.state.Viewport = view.Viewport{}
	assert.Empty(t, NewSynchronizer().Sync(f.state, f.reg))
	assert.False(t, f.label(t, "A").Visible)
}
