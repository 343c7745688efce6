// Package graticule generates meridian and parallel polylines over a sphere.
package graticule

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"geoglobe/globe/geo"
)

const (
	// SampleDeg is the angular spacing between samples along a line.
	SampleDeg = 2.5
	// MinStep is the finest grid spacing Build accepts.
	MinStep = SampleDeg / 5
)

// Kind tells meridians from parallels.
type Kind uint8

const (
	Meridian Kind = iota
	Parallel
)

// Line is one meridian or parallel sampled on the sphere.
type Line struct {
	kind   Kind
	deg    float64
	points []r3.Vector
}

func (l Line) Kind() Kind { return l.kind }

// Degrees is the longitude of a meridian or the latitude of a parallel.
func (l Line) Degrees() float64 { return l.deg }

func (l Line) Len() int { return len(l.points) }

func (l Line) At(i int) r3.Vector { return l.points[i] }

// Points returns a copy of the sampled points.
func (l Line) Points() []r3.Vector {
	return append([]r3.Vector(nil), l.points...)
}

// Graticule is a complete, immutable grid for one radius and step.
type Graticule struct {
	radius    float64
	step      float64
	meridians []Line
	parallels []Line
}

func (g *Graticule) Radius() float64 { return g.radius }

// Step is the effective step after clamping.
func (g *Graticule) Step() float64 { return g.step }

func (g *Graticule) Meridians() []Line { return append([]Line(nil), g.meridians...) }
func (g *Graticule) Parallels() []Line { return append([]Line(nil), g.parallels...) }

// Lines returns meridians followed by parallels.
func (g *Graticule) Lines() []Line {
	out := make([]Line, 0, len(g.meridians)+len(g.parallels))
	out = append(out, g.meridians...)
	return append(out, g.parallels...)
}

// EffectiveStep returns the step Build would use for stepDeg: the nearest step that
// divides 180 evenly. Steps below MinStep are rejected.
func EffectiveStep(stepDeg float64) (float64, error) {
	if math.IsNaN(stepDeg) || math.IsInf(stepDeg, 0) || stepDeg <= 0 {
		return 0, geo.Invalid("step", stepDeg, "must be a positive finite number")
	}
	if stepDeg < MinStep {
		return 0, geo.Invalid("step", stepDeg, fmt.Sprintf("must be at least %v", MinStep))
	}
	n := math.Round(180 / stepDeg)
	if n < 1 {
		n = 1
	}
	return 180 / n, nil
}

// Build samples a full graticule on the sphere of the given radius.
//
// There are 360/step meridians starting at -180 and 180/step+1 parallels from pole to
// pole. The pole parallels collapse to a single point.
func Build(radius, stepDeg float64) (*Graticule, error) {
	if err := geo.ValidateRadius(radius); err != nil {
		return nil, err
	}
	step, err := EffectiveStep(stepDeg)
	if err != nil {
		return nil, err
	}
	n := int(math.Round(180 / step))

	g := &Graticule{
		radius:    radius,
		step:      step,
		meridians: make([]Line, 0, 2*n),
		parallels: make([]Line, 0, n+1),
	}
	for i := 0; i < 2*n; i++ {
		lon := -180 + float64(i)*step
		g.meridians = append(g.meridians, meridian(radius, lon))
	}
	for i := 0; i <= n; i++ {
		lat := -90 + float64(i)*step
		if i == n {
			lat = 90
		}
		g.parallels = append(g.parallels, parallel(radius, lat))
	}
	return g, nil
}

func meridian(radius, lon float64) Line {
	samples := int(math.Round(180 / SampleDeg))
	pts := make([]r3.Vector, 0, samples+1)
	for i := 0; i <= samples; i++ {
		lat := -90 + float64(i)*SampleDeg
		if i == samples {
			lat = 90
		}
		pts = append(pts, geo.MustCartesian(geo.Coordinate{Lat: lat, Lon: lon}, radius))
	}
	return Line{kind: Meridian, deg: lon, points: pts}
}

func parallel(radius, lat float64) Line {
	if math.Abs(lat) == 90 {
		p := geo.MustCartesian(geo.Coordinate{Lat: lat}, radius)
		return Line{kind: Parallel, deg: lat, points: []r3.Vector{p}}
	}
	samples := int(math.Round(360 / SampleDeg))
	pts := make([]r3.Vector, 0, samples+1)
	for i := 0; i <= samples; i++ {
		lon := -180 + float64(i)*SampleDeg
		pts = append(pts, geo.MustCartesian(geo.Coordinate{Lat: lat, Lon: lon}, radius))
	}
	return Line{kind: Parallel, deg: lat, points: pts}
}
