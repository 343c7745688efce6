// Package markers owns the set of data markers placed on the globe.
//
// A Registry is populated once at start-up and is read-only while a tick picks and
// syncs labels. It owns one overlay label per marker and destroys it on removal.
package markers

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"geoglobe/globe/geo"
	"geoglobe/globe/overlay"
)

var (
	ErrDuplicateID = errors.New("markers: duplicate id")
	ErrNotFound    = errors.New("markers: not found")
)

// Payload is the data carried by a marker.
type Payload struct {
	Name  string
	Value float64
}

// Validate requires a name and a finite value.
func (p Payload) Validate() error {
	if p.Name == "" {
		return geo.Invalid("name", 0, "must not be empty")
	}
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return geo.Invalid("value", p.Value, "must be finite")
	}
	return nil
}

// Marker is a point of interest on the globe.
//
// Coordinate is the source of truth; Position is cached for the radius last passed
// to Add or RebuildPositions.
type Marker struct {
	ID            string
	Coordinate    geo.Coordinate
	Payload       Payload
	Position      r3.Vector
	Label         overlay.Label
	AlwaysVisible bool
}

// Registry holds markers in insertion order.
type Registry struct {
	ov     overlay.Overlay
	order  []string
	byID   map[string]*Marker
	radius float64
	gen    uint64
}

// NewRegistry returns an empty registry creating labels on ov.
func NewRegistry(ov overlay.Overlay) *Registry {
	return &Registry{ov: ov, byID: make(map[string]*Marker)}
}

// Add places a marker at c on the sphere of the given radius and creates its label.
func (r *Registry) Add(id string, c geo.Coordinate, p Payload, radius float64) (Marker, error) {
	if _, ok := r.byID[id]; ok {
		return Marker{}, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	if err := c.Validate(); err != nil {
		return Marker{}, err
	}
	if err := p.Validate(); err != nil {
		return Marker{}, err
	}
	pos, err := geo.ToCartesian(c, radius)
	if err != nil {
		return Marker{}, err
	}
	m := &Marker{ID: id, Coordinate: c, Payload: p, Position: pos}
	if r.ov != nil {
		m.Label = r.ov.Create(p.Name)
		m.Label.SetVisible(false)
	}
	r.byID[id] = m
	r.order = append(r.order, id)
	r.radius = radius
	return *m, nil
}

// Remove deletes a marker and destroys its label.
func (r *Registry) Remove(id string) error {
	m, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if r.ov != nil && m.Label != nil {
		r.ov.Destroy(m.Label)
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.gen++
	return nil
}

// RebuildPositions recomputes every cached position for a new globe radius. It must
// be called whenever the radius changes; positions are never refreshed implicitly.
func (r *Registry) RebuildPositions(radius float64) error {
	if err := geo.ValidateRadius(radius); err != nil {
		return err
	}
	for _, id := range r.order {
		m := r.byID[id]
		pos, err := geo.ToCartesian(m.Coordinate, radius)
		if err != nil {
			return fmt.Errorf("marker %q: %w", id, err)
		}
		m.Position = pos
	}
	r.radius = radius
	r.gen++
	return nil
}

// SetAlwaysVisible flags a marker whose label is shown regardless of hover.
func (r *Registry) SetAlwaysVisible(id string, on bool) error {
	m, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	m.AlwaysVisible = on
	return nil
}

// All returns copies of every marker in insertion order.
func (r *Registry) All() []Marker {
	out := make([]Marker, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// Get returns a copy of the marker with the given id.
func (r *Registry) Get(id string) (Marker, bool) {
	m, ok := r.byID[id]
	if !ok {
		return Marker{}, false
	}
	return *m, true
}

func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *Registry) Len() int { return len(r.order) }

// Radius is the radius positions were last computed for.
func (r *Registry) Radius() float64 { return r.radius }

// Generation changes whenever a removal or radius change may invalidate a hover.
func (r *Registry) Generation() uint64 { return r.gen }

// Nearest returns the marker with the smallest great-circle distance to c and that
// distance in degrees. ok is false for an empty registry.
func (r *Registry) Nearest(c geo.Coordinate) (m Marker, deg float64, ok bool) {
	deg = math.Inf(1)
	for _, id := range r.order {
		cand := r.byID[id]
		if d := geo.AngularDistance(c, cand.Coordinate); d < deg {
			m, deg, ok = *cand, d, true
		}
	}
	if !ok {
		return Marker{}, 0, false
	}
	return m, deg, true
}
