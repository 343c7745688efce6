package markers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoglobe/globe/geo"
	"geoglobe/globe/overlay"
)

func TestAddRemoveReleasesLabel(t *testing.T) {
	ov := overlay.NewMemory()
	r := NewRegistry(ov)

	m, err := r.Add("a", geo.Coordinate{Lat: 10, Lon: 20}, Payload{Name: "A", Value: 3}, 100)
	require.NoError(t, err)
	require.NotNil(t, m.Label)
	assert.Equal(t, 1, ov.Len())
	s, ok := ov.Get(m.Label.ID())
	require.True(t, ok)
	assert.Equal(t, "A", s.Text)
	assert.False(t, s.Visible)

	require.NoError(t, r.Remove("a"))
	assert.Empty(t, r.All())
	assert.Equal(t, 0, ov.Len())
}

func TestRemoveAbsent(t *testing.T) {
	r := NewRegistry(overlay.NewMemory())
	assert.ErrorIs(t, r.Remove("nope"), ErrNotFound)
	assert.ErrorIs(t, r.SetAlwaysVisible("nope", true), ErrNotFound)
}

func TestAddDuplicate(t *testing.T) {
	ov := overlay.NewMemory()
	r := NewRegistry(ov)
	_, err := r.Add("a", geo.Coordinate{}, Payload{Name: "A"}, 1)
	require.NoError(t, err)
	_, err = r.Add("a", geo.Coordinate{Lat: 5}, Payload{Name: "A2"}, 1)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, ov.Len())
}

func TestAddValidates(t *testing.T) {
	r := NewRegistry(overlay.NewMemory())
	_, err := r.Add("a", geo.Coordinate{Lat: 91}, Payload{Name: "A"}, 1)
	assert.ErrorIs(t, err, geo.ErrInvalid)
	_, err = r.Add("b", geo.Coordinate{}, Payload{}, 1)
	assert.ErrorIs(t, err, geo.ErrInvalid)
	_, err = r.Add("c", geo.Coordinate{}, Payload{Name: "C"}, 0)
	assert.ErrorIs(t, err, geo.ErrInvalid)
	assert.Equal(t, 0, r.Len())
}

func TestRebuildPositions(t *testing.T) {
	r := NewRegistry(overlay.NewMemory())
	coords := []geo.Coordinate{{Lat: 0, Lon: 0}, {Lat: 45, Lon: -120}, {Lat: -30, Lon: 179}}
	for i, c := range coords {
		_, err := r.Add(string(rune('a'+i)), c, Payload{Name: "m"}, 100)
		require.NoError(t, err)
	}
	gen := r.Generation()
	require.NoError(t, r.RebuildPositions(250))
	assert.NotEqual(t, gen, r.Generation())
	assert.Equal(t, 250.0, r.Radius())

	for _, m := range r.All() {
		want, err := geo.ToCartesian(m.Coordinate, 250)
		require.NoError(t, err)
		assert.InDelta(t, 0, m.Position.Sub(want).Norm(), 1e-9)
	}
	assert.ErrorIs(t, r.RebuildPositions(-1), geo.ErrInvalid)
}

func TestAllIsInsertionOrderedCopy(t *testing.T) {
	r := NewRegistry(nil)
	for _, id := range []string{"z", "a", "m"} {
		_, err := r.Add(id, geo.Coordinate{}, Payload{Name: id}, 1)
		require.NoError(t, err)
	}
	all := r.All()
	assert.Equal(t, "z", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "m", all[2].ID)

	all[0].Coordinate.Lat = 45
	got, ok := r.Get("z")
	require.True(t, ok)
	assert.Equal(t, 0.0, got.Coordinate.Lat)
}

func TestSetAlwaysVisible(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Add("a", geo.Coordinate{}, Payload{Name: "A"}, 1)
	require.NoError(t, err)
	require.NoError(t, r.SetAlwaysVisible("a", true))
	m, _ := r.Get("a")
	assert.True(t, m.AlwaysVisible)
}

func TestAddRecordsFailsFast(t *testing.T) {
	ov := overlay.NewMemory()
	r := NewRegistry(ov)
	err := r.AddRecords([]Record{
		{Name: "A", Lat: 0, Lon: 0, Value: 1},
		{Name: "B", Lat: 0, Lon: 200, Value: 1},
	}, 100)
	assert.ErrorIs(t, err, geo.ErrInvalid)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, ov.Len())

	err = r.AddRecords([]Record{{Name: "A"}, {Name: "A", Lat: 1}}, 100)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 0, r.Len())
}

func TestAddRecords(t *testing.T) {
	r := NewRegistry(overlay.NewMemory())
	require.NoError(t, r.AddRecords([]Record{
		{Name: "A", Lat: 0, Lon: 0, Value: 1},
		{Name: "B", Lat: 0, Lon: 90, Value: 1},
	}, 100))
	b, ok := r.Get("B")
	require.True(t, ok)
	assert.InDelta(t, -100, b.Position.Z, 1e-9)
	assert.Equal(t, Payload{Name: "B", Value: 1}, b.Payload)
}

func TestNearestUsesGreatCircleDistance(t *testing.T) {
	r := NewRegistry(nil)
	_, _, ok := r.Nearest(geo.Coordinate{})
	assert.False(t, ok)

	_, err := r.Add("east", geo.Coordinate{Lat: 0, Lon: 179}, Payload{Name: "east"}, 100)
	require.NoError(t, err)
	_, err = r.Add("prime", geo.Coordinate{Lat: 0, Lon: 0}, Payload{Name: "prime"}, 100)
	require.NoError(t, err)

	m, deg, ok := r.Nearest(geo.Coordinate{Lat: 0, Lon: -179})
	require.True(t, ok)
	assert.Equal(t, "east", m.ID)
	assert.InDelta(t, 2, deg, 1e-9)

	m, deg, ok = r.Nearest(geo.Coordinate{Lat: 90, Lon: 0})
	require.True(t, ok)
	assert.Equal(t, "east", m.ID)
	assert.InDelta(t, 90, deg, 1e-9)
}
