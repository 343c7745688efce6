package quarkgl

import "math"

// Camera is a perspective camera with cached transforms.
//
// The cached matrices are only refreshed by UpdateViewMatrix and UpdateProjectionMatrix;
// callers that move the camera or change its aspect must call the matching update before
// the next Project or RayFromNDC.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar
	Aspect  Scalar
	Near    Scalar
	Far     Scalar

	view        Mat4
	proj        Mat4
	viewProj    Mat4
	invViewProj Mat4
}

// NewPerspectiveCamera returns a camera at (0,0,3) looking at the origin with
// up-to-date matrices.
func NewPerspectiveCamera(fovYDeg, aspect, near, far Scalar) *Camera {
	c := &Camera{
		Position: V3(0, 0, 3),
		Target:   V3(0, 0, 0),
		Up:       V3(0, 1, 0),
		FOVYRad:  DegToRad(fovYDeg),
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
	c.UpdateProjectionMatrix()
	c.UpdateViewMatrix()
	return c
}

// SetAspect stores a new aspect ratio. The projection is not refreshed.
func (c *Camera) SetAspect(aspect Scalar) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return
	}
	c.Aspect = aspect
}

// UpdateProjectionMatrix recomputes the projection from FOV, aspect and clip planes.
func (c *Camera) UpdateProjectionMatrix() {
	fov := c.FOVYRad
	if fov == 0 {
		fov = 1.0
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.proj = Mat4Perspective(fov, aspect, c.Near, c.Far)
	c.refresh()
}

// UpdateViewMatrix recomputes the view transform from position, target and up.
func (c *Camera) UpdateViewMatrix() {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	c.view = Mat4LookAt(c.Position, c.Target, up)
	c.refresh()
}

func (c *Camera) refresh() {
	c.viewProj = Mat4Mul(c.proj, c.view)
	if inv, ok := Mat4Invert(c.viewProj); ok {
		c.invViewProj = inv
	}
}

func (c *Camera) View() Mat4           { return c.view }
func (c *Camera) Projection() Mat4     { return c.proj }
func (c *Camera) ViewProjection() Mat4 { return c.viewProj }

// Project maps a world-space point to normalized device coordinates.
// ok is false for points behind the camera or outside the near/far range.
func (c *Camera) Project(p Vec3) (ndc Vec3, ok bool) {
	out, w, valid := TransformPoint(c.viewProj, p)
	if !valid || w <= 0 {
		return Vec3{}, false
	}
	if out.Z < -1 || out.Z > 1 {
		return out, false
	}
	return out, true
}

// Unproject maps a normalized device coordinate back to world space.
func (c *Camera) Unproject(ndc Vec3) (Vec3, bool) {
	out, _, ok := TransformPoint(c.invViewProj, ndc)
	return out, ok
}

// RayFromNDC returns the ray leaving the camera through the given normalized device
// coordinate.
func (c *Camera) RayFromNDC(x, y Scalar) Ray {
	p, ok := c.Unproject(V3(x, y, 0.5))
	if !ok {
		return Ray{Origin: c.Position}
	}
	return NewRay(c.Position, p.Sub(c.Position))
}
