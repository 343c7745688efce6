// Package overlay holds screen-space text labels drawn over the rendered globe.
package overlay

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Label is a handle to one overlay label.
type Label interface {
	ID() string
	SetText(text string)
	SetPosition(x, y float64)
	SetVisible(visible bool)
}

// Overlay creates and destroys labels.
type Overlay interface {
	Create(text string) Label
	Destroy(l Label)
}

// Snapshot is the state of a label at one moment.
type Snapshot struct {
	ID      string
	Text    string
	X, Y    float64
	Visible bool
}

// Memory is an Overlay that keeps labels in memory for a renderer to draw.
//
// Labels start hidden at (0,0). Memory is safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	seq    uint64
	labels map[string]*memLabel
}

func NewMemory() *Memory {
	return &Memory{labels: make(map[string]*memLabel)}
}

type memLabel struct {
	o   *Memory
	id  string
	seq uint64

	text    string
	x, y    float64
	visible bool
	dead    bool
}

func (m *Memory) Create(text string) Label {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	l := &memLabel{o: m, id: uuid.NewString(), seq: m.seq, text: text}
	m.labels[l.id] = l
	return l
}

// Destroy releases l. Destroying a label twice or one from another overlay is a no-op.
func (m *Memory) Destroy(l Label) {
	if l == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ml, ok := m.labels[l.ID()]
	if !ok || ml != l {
		return
	}
	ml.dead = true
	delete(m.labels, ml.id)
}

// Len reports the number of live labels.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.labels)
}

// Get returns the snapshot of a live label.
func (m *Memory) Get(id string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.labels[id]
	if !ok {
		return Snapshot{}, false
	}
	return l.snapshot(), true
}

// Snapshots returns every live label in creation order.
func (m *Memory) Snapshots() []Snapshot {
	m.mu.Lock()
	ls := make([]*memLabel, 0, len(m.labels))
	for _, l := range m.labels {
		ls = append(ls, l)
	}
	sort.Slice(ls, func(i, j int) bool { return ls[i].seq < ls[j].seq })
	out := make([]Snapshot, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.snapshot())
	}
	m.mu.Unlock()
	return out
}

// Visible returns the visible labels in creation order.
func (m *Memory) Visible() []Snapshot {
	all := m.Snapshots()
	out := all[:0]
	for _, s := range all {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}

func (l *memLabel) snapshot() Snapshot {
	return Snapshot{ID: l.id, Text: l.text, X: l.x, Y: l.y, Visible: l.visible}
}

func (l *memLabel) ID() string { return l.id }

func (l *memLabel) SetText(text string) {
	l.o.mu.Lock()
	l.text = text
	l.o.mu.Unlock()
}

func (l *memLabel) SetPosition(x, y float64) {
	l.o.mu.Lock()
	l.x, l.y = x, y
	l.o.mu.Unlock()
}

func (l *memLabel) SetVisible(visible bool) {
	l.o.mu.Lock()
	l.visible = visible
	l.o.mu.Unlock()
}
