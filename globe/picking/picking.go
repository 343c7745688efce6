// Package picking resolves what lies under the cursor: a marker, the globe surface or
// nothing.
package picking

import (
	"math"

	"github.com/golang/geo/r3"

	"geoglobe/globe/geo"
	"geoglobe/globe/markers"
	"geoglobe/globe/view"
	"geoglobe/quarkgl"
)

// DefaultHitRadius matches the radius of the rendered marker sphere.
const DefaultHitRadius = 0.6

// Markers is the read-only view of the registry used while picking.
type Markers interface {
	All() []markers.Marker
}

// Engine picks against markers first and the globe second.
type Engine struct {
	// HitRadius is the radius of each marker's hit sphere. Zero means DefaultHitRadius.
	HitRadius float64
	// OccludeByGlobe ignores markers whose hit sphere lies behind the globe's near surface.
	OccludeByGlobe bool
}

// Hit is a single intersection along the pick ray.
type Hit struct {
	T        float64
	MarkerID string
}

// Pick casts a ray through cursor and returns the hover state. It reads its inputs only
// and returns the same result for the same inputs.
func (e Engine) Pick(cursor view.Pointer, state *view.State, globe geo.Globe, ms Markers) view.Hover {
	if state == nil || state.Camera == nil {
		return view.NoHover()
	}
	x, y, ok := cursor.NDC(state.Viewport)
	if !ok {
		return view.NoHover()
	}
	ray := state.Camera.RayFromNDC(x, y)
	return e.PickRay(ray, globe, ms)
}

// PickRay is Pick for a ray already in world space.
func (e Engine) PickRay(ray quarkgl.Ray, globe geo.Globe, ms Markers) view.Hover {
	if ray.Dir.Norm2() == 0 || !finiteVec(ray.Origin) || !finiteVec(ray.Dir) {
		return view.NoHover()
	}

	tGlobe, globeHit := math.Inf(1), false
	if geo.ValidateRadius(globe.Radius) == nil {
		tGlobe, globeHit = ray.IntersectSphere(r3.Vector{}, globe.Radius)
	}

	if hit, ok := e.nearestMarker(ray, ms, tGlobe, globeHit); ok {
		return view.MarkerHover(hit.MarkerID)
	}
	if !globeHit {
		return view.NoHover()
	}

	p := ray.At(tGlobe)
	c, err := geo.ToGeo(p, globe.Radius)
	if err != nil {
		return view.NoHover()
	}
	if n := p.Norm(); n > 0 {
		p = p.Mul(globe.Radius / n)
	}
	return view.SurfaceHover(c, p)
}

// Hits returns every marker intersection along the ray, nearest first.
func (e Engine) Hits(ray quarkgl.Ray, ms Markers) []Hit {
	if ms == nil {
		return nil
	}
	var out []Hit
	for _, m := range ms.All() {
		if t, ok := ray.IntersectSphere(m.Position, e.hitRadius()); ok {
			out = append(out, Hit{T: t, MarkerID: m.ID})
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].T < out[j-1].T; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// nearestMarker returns the first hit along the ray, skipping hits behind the globe
// when occlusion is on. Hits is stable, so ties keep the earlier marker.
func (e Engine) nearestMarker(ray quarkgl.Ray, ms Markers, tGlobe float64, globeHit bool) (Hit, bool) {
	for _, h := range e.Hits(ray, ms) {
		if e.OccludeByGlobe && globeHit && h.T > tGlobe {
			continue
		}
		return h, true
	}
	return Hit{}, false
}

func (e Engine) hitRadius() float64 {
	if e.HitRadius > 0 {
		return e.HitRadius
	}
	return DefaultHitRadius
}

func finiteVec(v r3.Vector) bool {
	for _, c := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
