package graticule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoglobe/globe/geo"
)

func TestBuildCompleteness(t *testing.T) {
	g, err := Build(100, 15)
	require.NoError(t, err)
	assert.Len(t, g.Meridians(), 24)
	assert.Len(t, g.Parallels(), 13)
	assert.Len(t, g.Lines(), 37)

	for _, l := range g.Lines() {
		require.Positive(t, l.Len())
		for _, p := range l.Points() {
			assert.InDelta(t, 100, p.Norm(), 1e-9)
		}
	}
}

func TestBuildLineOrder(t *testing.T) {
	g, err := Build(1, 15)
	require.NoError(t, err)
	m := g.Meridians()
	assert.Equal(t, -180.0, m[0].Degrees())
	assert.Equal(t, 165.0, m[len(m)-1].Degrees())
	p := g.Parallels()
	assert.Equal(t, -90.0, p[0].Degrees())
	assert.Equal(t, 90.0, p[len(p)-1].Degrees())
	assert.Equal(t, 1, p[0].Len())
	assert.Equal(t, 1, p[len(p)-1].Len())
	assert.Equal(t, Parallel, p[3].Kind())
	assert.Equal(t, Meridian, m[3].Kind())
}

func TestBuildClampsStep(t *testing.T) {
	g, err := Build(10, 14)
	require.NoError(t, err)
	assert.InDelta(t, 180.0/13, g.Step(), 1e-12)
	assert.Len(t, g.Meridians(), 26)
	assert.Len(t, g.Parallels(), 14)

	g, err = Build(10, 500)
	require.NoError(t, err)
	assert.Equal(t, 180.0, g.Step())
	assert.Len(t, g.Meridians(), 2)
	assert.Len(t, g.Parallels(), 2)
}

func TestBuildRejectsInvalid(t *testing.T) {
	_, err := Build(100, 0)
	assert.ErrorIs(t, err, geo.ErrInvalid)
	_, err = Build(100, -15)
	assert.ErrorIs(t, err, geo.ErrInvalid)
	_, err = Build(0, 15)
	assert.ErrorIs(t, err, geo.ErrInvalid)
}

func TestBuildRejectsTooFineStep(t *testing.T) {
	_, err := Build(100, 0.001)
	assert.ErrorIs(t, err, geo.ErrInvalid)

	g, err := Build(100, MinStep)
	require.NoError(t, err)
	assert.Len(t, g.Meridians(), 720)
	assert.Len(t, g.Parallels(), 361)
}

func TestLinesAreImmutable(t *testing.T) {
	g, err := Build(100, 30)
	require.NoError(t, err)
	pts := g.Meridians()[0].Points()
	pts[0].X = 1e6
	assert.NotEqual(t, 1e6, g.Meridians()[0].At(0).X)
}

func TestMeridianSpansPoleToPole(t *testing.T) {
	g, err := Build(100, 15)
	require.NoError(t, err)
	m := g.Meridians()[5]
	assert.InDelta(t, -100, m.At(0).Y, 1e-9)
	assert.InDelta(t, 100, m.At(m.Len()-1).Y, 1e-9)
}
