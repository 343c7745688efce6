// Package geo converts between geographic coordinates and points on a sphere.
//
// Axis convention, shared by every globe package: right-handed, +Y is north, the
// equator/prime-meridian point is +X and longitude grows towards -Z, so lon=+90 maps
// to -Z. Seen from above the north pole longitude increases counter-clockwise.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("geo: invalid input")

// ValidationError reports a malformed coordinate, radius or step.
type ValidationError struct {
	Field string
	Value float64
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("geo: invalid %s %v: %s", e.Field, e.Value, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Invalid builds a ValidationError for callers outside this package.
func Invalid(field string, value float64, msg string) error {
	return &ValidationError{Field: field, Value: value, Msg: msg}
}

// Coordinate is a geographic position in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate checks that c lies inside [-90,90] x [-180,180].
func (c Coordinate) Validate() error {
	if !finite(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return Invalid("latitude", c.Lat, "must be within [-90, 90]")
	}
	if !finite(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return Invalid("longitude", c.Lon, "must be within [-180, 180]")
	}
	return nil
}

// LatLng converts c to an s2.LatLng.
func (c Coordinate) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.Lat, c.Lon)
}

// Globe is the sphere that markers sit on and that the cursor hit-tests against.
type Globe struct {
	Radius   float64
	Segments int
}

// Validate checks the globe's radius and tessellation.
func (g Globe) Validate() error {
	if err := ValidateRadius(g.Radius); err != nil {
		return err
	}
	if g.Segments < 3 {
		return Invalid("segments", float64(g.Segments), "must be at least 3")
	}
	return nil
}

// ValidateRadius rejects non-positive and non-finite radii.
func ValidateRadius(r float64) error {
	if !finite(r) || r <= 0 {
		return Invalid("radius", r, "must be a positive finite number")
	}
	return nil
}

// ToCartesian maps c onto the sphere of radius r.
//
// Longitude outside [-180,180] wraps; only non-finite longitude is rejected.
func ToCartesian(c Coordinate, r float64) (r3.Vector, error) {
	if err := ValidateRadius(r); err != nil {
		return r3.Vector{}, err
	}
	if !finite(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return r3.Vector{}, Invalid("latitude", c.Lat, "must be within [-90, 90]")
	}
	if !finite(c.Lon) {
		return r3.Vector{}, Invalid("longitude", c.Lon, "must be finite")
	}
	phi := s1.Angle(c.Lat) * s1.Degree
	lambda := s1.Angle(c.Lon) * s1.Degree
	sinPhi, cosPhi := math.Sincos(phi.Radians())
	sinLam, cosLam := math.Sincos(lambda.Radians())
	return r3.Vector{
		X: r * cosPhi * cosLam,
		Y: r * sinPhi,
		Z: -r * cosPhi * sinLam,
	}, nil
}

// ToGeo maps p back to a coordinate on the sphere of radius r. Only the direction of
// p matters, so off-sphere points resolve to the point radially below or above them.
//
// The zero vector and non-finite input have no direction and resolve to (0, 0). At the
// poles the longitude is whatever atan2 yields for the residual horizontal components.
func ToGeo(p r3.Vector, r float64) (Coordinate, error) {
	if err := ValidateRadius(r); err != nil {
		return Coordinate{}, err
	}
	if p == (r3.Vector{}) || !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return Coordinate{}, nil
	}
	lat := math.Atan2(p.Y, math.Hypot(p.X, p.Z))
	lon := math.Atan2(-p.Z, p.X)
	return Coordinate{
		Lat: (s1.Angle(lat) * s1.Radian).Degrees(),
		Lon: (s1.Angle(lon) * s1.Radian).Degrees(),
	}, nil
}

// MustCartesian is ToCartesian for inputs already validated by the caller.
func MustCartesian(c Coordinate, r float64) r3.Vector {
	p, err := ToCartesian(c, r)
	if err != nil {
		panic(err)
	}
	return p
}

// NormalizeLon wraps a finite longitude into [-180, 180).
func NormalizeLon(lon float64) float64 {
	l := math.Mod(lon+180, 360)
	if l < 0 {
		l += 360
	}
	return l - 180
}

// AngularDistance returns the great-circle angle between a and b in degrees.
func AngularDistance(a, b Coordinate) float64 {
	return a.LatLng().Distance(b.LatLng()).Degrees()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
