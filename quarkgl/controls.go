package quarkgl

import "math"

// OrbitController orbits a camera around a target on a sphere of varying distance.
//
// It does not depend on any input system. Azimuth is measured around +Y from +Z,
// polar from +Y. Rotations and zoom accumulate as velocities that decay by Damping
// on every Update.
type OrbitController struct {
	Target   Vec3
	Azimuth  Scalar // radians
	Polar    Scalar // radians, kept inside (0, pi)
	Distance Scalar

	MinDistance Scalar
	MaxDistance Scalar

	// Damping is the fraction of velocity removed per Update. Zero disables inertia.
	Damping     Scalar
	RotateSpeed Scalar
	ZoomSpeed   Scalar

	vAzimuth Scalar
	vPolar   Scalar
	vZoom    Scalar
}

const polarEpsilon = 1e-6

// NewOrbitControllerFromCamera derives orbit parameters from the camera's current
// position relative to target.
func NewOrbitControllerFromCamera(cam *Camera, target Vec3) *OrbitController {
	c := &OrbitController{Target: target, RotateSpeed: 1, ZoomSpeed: 1}
	if cam == nil {
		c.Distance = 3
		c.Polar = math.Pi / 2
		return c
	}
	off := cam.Position.Sub(target)
	c.Distance = off.Norm()
	if c.Distance == 0 {
		c.Polar = math.Pi / 2
		return c
	}
	c.Azimuth = math.Atan2(off.X, off.Z)
	c.Polar = math.Acos(clampScalar(off.Y/c.Distance, -1, 1))
	return c
}

// Rotate queues an orbit by the given angles.
func (c *OrbitController) Rotate(deltaAzimuth, deltaPolar Scalar) {
	speed := c.RotateSpeed
	if speed == 0 {
		speed = 1
	}
	if c.Damping > 0 {
		c.vAzimuth += deltaAzimuth * speed
		c.vPolar += deltaPolar * speed
		return
	}
	c.Azimuth += deltaAzimuth * speed
	c.Polar += deltaPolar * speed
}

// Zoom queues a change of distance. Positive values move away from the target.
func (c *OrbitController) Zoom(delta Scalar) {
	speed := c.ZoomSpeed
	if speed == 0 {
		speed = 1
	}
	if c.Damping > 0 {
		c.vZoom += delta * speed
		return
	}
	c.Distance += delta * speed
}

// SetPose jumps to the given orbit and drops any pending velocity.
func (c *OrbitController) SetPose(azimuth, polar, distance Scalar) {
	c.Azimuth, c.Polar, c.Distance = azimuth, polar, distance
	c.vAzimuth, c.vPolar, c.vZoom = 0, 0, 0
}

// Update advances inertia, clamps the state and writes the pose into cam. It reports
// whether the camera moved.
func (c *OrbitController) Update(cam *Camera) bool {
	if c.Damping > 0 {
		c.Azimuth += c.vAzimuth * c.Damping
		c.Polar += c.vPolar * c.Damping
		c.Distance += c.vZoom * c.Damping
		k := 1 - c.Damping
		c.vAzimuth *= k
		c.vPolar *= k
		c.vZoom *= k
	}
	c.Polar = clampScalar(c.Polar, polarEpsilon, math.Pi-polarEpsilon)
	if c.MinDistance > 0 && c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.MaxDistance > 0 && c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
	if cam == nil {
		return false
	}

	sp, cp := math.Sincos(c.Polar)
	sa, ca := math.Sincos(c.Azimuth)
	pos := c.Target.Add(V3(c.Distance*sp*sa, c.Distance*cp, c.Distance*sp*ca))
	moved := pos.Sub(cam.Position).Norm2() > 1e-18 || cam.Target != c.Target
	cam.Position = pos
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
	cam.UpdateViewMatrix()
	return moved
}

func clampScalar(v, lo, hi Scalar) Scalar {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
