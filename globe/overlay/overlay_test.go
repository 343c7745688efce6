package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLifecycle(t *testing.T) {
	m := NewMemory()
	a := m.Create("A")
	b := m.Create("B")
	require.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, m.Len())

	a.SetPosition(10, 20)
	a.SetVisible(true)
	a.SetText("Alpha")

	s, ok := m.Get(a.ID())
	require.True(t, ok)
	assert.Equal(t, Snapshot{ID: a.ID(), Text: "Alpha", X: 10, Y: 20, Visible: true}, s)

	vis := m.Visible()
	require.Len(t, vis, 1)
	assert.Equal(t, "Alpha", vis[0].Text)

	m.Destroy(a)
	m.Destroy(a)
	assert.Equal(t, 1, m.Len())
	_, ok = m.Get(a.ID())
	assert.False(t, ok)
}

func TestMemorySnapshotsInCreationOrder(t *testing.T) {
	m := NewMemory()
	for _, name := range []string{"x", "y", "z"} {
		m.Create(name)
	}
	var got []string
	for _, s := range m.Snapshots() {
		got = append(got, s.Text)
		assert.False(t, s.Visible)
	}
	assert.Equal(t, []string{"x", "y", "z"}, got)
}

func TestMemoryIgnoresForeignLabel(t *testing.T) {
	a, b := NewMemory(), NewMemory()
	l := a.Create("A")
	b.Destroy(l)
	assert.Equal(t, 1, a.Len())
	b.Destroy(nil)
}
