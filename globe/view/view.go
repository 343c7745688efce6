// Package view carries the per-frame state shared by picking, label sync and resize.
package view

import (
	"fmt"

	"github.com/golang/geo/r3"

	"geoglobe/globe/geo"
	"geoglobe/quarkgl"
)

// Camera is the part of the host camera the globe core needs.
type Camera interface {
	RayFromNDC(x, y float64) quarkgl.Ray
	Project(p r3.Vector) (ndc r3.Vector, ok bool)
	SetAspect(aspect float64)
	UpdateProjectionMatrix()
}

// Viewport is the render surface size in device pixels.
type Viewport struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool { return v.Width > 0 && v.Height > 0 }

func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 0
	}
	return float64(v.Width) / float64(v.Height)
}

// Pointer is a cursor position relative to the render surface, in device pixels.
type Pointer struct {
	X, Y int
}

// NDC maps the pointer into normalized device coordinates with Y pointing up.
func (p Pointer) NDC(v Viewport) (x, y float64, ok bool) {
	if !v.Valid() {
		return 0, 0, false
	}
	x = 2*float64(p.X)/float64(v.Width) - 1
	y = -(2 * float64(p.Y) / float64(v.Height)) + 1
	return x, y, true
}

// HoverKind discriminates Hover.
type HoverKind uint8

const (
	HoverNone HoverKind = iota
	HoverSurface
	HoverMarker
)

func (k HoverKind) String() string {
	switch k {
	case HoverSurface:
		return "surface"
	case HoverMarker:
		return "marker"
	default:
		return "none"
	}
}

// Hover is what lies under the cursor: nothing, a point on the globe or one marker.
type Hover struct {
	Kind HoverKind

	// Surface hover.
	Coordinate geo.Coordinate
	Point      r3.Vector

	// Marker hover.
	MarkerID string
}

func NoHover() Hover { return Hover{} }

func SurfaceHover(c geo.Coordinate, p r3.Vector) Hover {
	return Hover{Kind: HoverSurface, Coordinate: c, Point: p}
}

func MarkerHover(id string) Hover {
	return Hover{Kind: HoverMarker, MarkerID: id}
}

func (h Hover) IsNone() bool { return h.Kind == HoverNone }

// MarkerSet answers whether a marker id still exists.
type MarkerSet interface {
	Has(id string) bool
}

// Resolve returns h, or none when h names a marker that no longer exists.
func (h Hover) Resolve(markers MarkerSet) Hover {
	if h.Kind != HoverMarker {
		return h
	}
	if markers == nil || !markers.Has(h.MarkerID) {
		return NoHover()
	}
	return h
}

func (h Hover) String() string {
	switch h.Kind {
	case HoverSurface:
		return fmt.Sprintf("surface %v", h.Coordinate)
	case HoverMarker:
		return fmt.Sprintf("marker %q", h.MarkerID)
	default:
		return "none"
	}
}

// State is passed explicitly through one tick.
type State struct {
	Camera   Camera
	Viewport Viewport
	Hover    Hover
}

// ResetHover clears the hover. Call it after removing markers or changing the radius.
func (s *State) ResetHover() { s.Hover = NoHover() }
