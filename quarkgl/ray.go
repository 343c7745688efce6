package quarkgl

import "math"

// tangentEpsilon is the relative discriminant below which a ray only grazes a sphere.
const tangentEpsilon = 1e-9

// Ray is a half-line with a unit direction. A zero direction never hits anything.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay returns a ray from origin along dir, normalizing dir.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point at parameter t.
func (r Ray) At(t Scalar) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectSphere returns the smallest non-negative parameter at which the ray enters
// (or, from inside, leaves) the sphere. Grazing hits are reported as misses.
func (r Ray) IntersectSphere(center Vec3, radius Scalar) (Scalar, bool) {
	if radius <= 0 || r.Dir.Norm2() == 0 {
		return 0, false
	}
	L := center.Sub(r.Origin)
	tca := L.Dot(r.Dir)
	d2 := L.Dot(L) - tca*tca
	r2 := radius * radius
	disc := r2 - d2
	if disc <= tangentEpsilon*r2 || math.IsNaN(disc) {
		return 0, false
	}
	thc := math.Sqrt(disc)
	if t0 := tca - thc; t0 >= 0 {
		return t0, true
	}
	if t1 := tca + thc; t1 >= 0 {
		return t1, true
	}
	return 0, false
}
