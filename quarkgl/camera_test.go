package quarkgl

import (
	"math"
	"testing"
)

func testCamera() *Camera {
	c := NewPerspectiveCamera(50, 16.0/9.0, 0.1, 1000)
	c.Position = V3(0, 0, 300)
	c.UpdateViewMatrix()
	return c
}

func TestCameraProjectTargetIsCenter(t *testing.T) {
	c := testCamera()
	ndc, ok := c.Project(V3(0, 0, 0))
	if !ok {
		t.Fatalf("Project(origin) ok = false")
	}
	if !near(ndc.X, 0) || !near(ndc.Y, 0) {
		t.Fatalf("Project(origin) = %v, want (0,0,z)", ndc)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	c := testCamera()
	if _, ok := c.Project(V3(0, 0, 400)); ok {
		t.Fatalf("Project(behind camera) ok = true, want false")
	}
}

func TestCameraRayThroughCenter(t *testing.T) {
	c := testCamera()
	r := c.RayFromNDC(0, 0)
	if !nearV(r.Origin, c.Position, 1e-9) {
		t.Fatalf("ray origin = %v, want %v", r.Origin, c.Position)
	}
	if !nearV(r.Dir, V3(0, 0, -1), 1e-9) {
		t.Fatalf("ray dir = %v, want (0,0,-1)", r.Dir)
	}
}

func TestCameraUnprojectRoundTrip(t *testing.T) {
	c := testCamera()
	p := V3(20, -35, 40)
	ndc, ok := c.Project(p)
	if !ok {
		t.Fatalf("Project(%v) ok = false", p)
	}
	back, ok := c.Unproject(ndc)
	if !ok {
		t.Fatalf("Unproject ok = false")
	}
	if !nearV(back, p, 1e-6) {
		t.Fatalf("Unproject(Project(p)) = %v, want %v", back, p)
	}
}

func TestCameraRayHitsProjectedPoint(t *testing.T) {
	c := testCamera()
	p := V3(50, 30, 0)
	ndc, _ := c.Project(p)
	r := c.RayFromNDC(ndc.X, ndc.Y)
	toP := p.Sub(r.Origin)
	// p must lie on the ray: the perpendicular distance is ~0.
	perp := toP.Sub(r.Dir.Mul(toP.Dot(r.Dir))).Norm()
	if perp > 1e-6 {
		t.Fatalf("ray misses projected point by %v", perp)
	}
}

func TestCameraSetAspectIgnoresInvalid(t *testing.T) {
	c := testCamera()
	for _, a := range []Scalar{0, -1, math.NaN(), math.Inf(1)} {
		c.SetAspect(a)
		if c.Aspect != 16.0/9.0 {
			t.Fatalf("SetAspect(%v) changed aspect to %v", a, c.Aspect)
		}
	}
	c.SetAspect(2)
	if c.Aspect != 2 {
		t.Fatalf("SetAspect(2) = %v", c.Aspect)
	}
}

func TestOrbitControllerClampsDistance(t *testing.T) {
	c := testCamera()
	o := NewOrbitControllerFromCamera(c, V3(0, 0, 0))
	o.MinDistance, o.MaxDistance = 120, 500
	if !near(o.Distance, 300) {
		t.Fatalf("Distance = %v, want 300", o.Distance)
	}
	o.Zoom(-1000)
	o.Update(c)
	if !near(c.Position.Norm(), 120) {
		t.Fatalf("camera distance = %v, want 120", c.Position.Norm())
	}
	o.Zoom(5000)
	o.Update(c)
	if !near(c.Position.Norm(), 500) {
		t.Fatalf("camera distance = %v, want 500", c.Position.Norm())
	}
}

func TestOrbitControllerDampingDecays(t *testing.T) {
	c := testCamera()
	o := NewOrbitControllerFromCamera(c, V3(0, 0, 0))
	o.Damping = 0.05
	o.Rotate(1, 0)
	o.Update(c)
	first := o.Azimuth
	if !(first > 0 && first < 1) {
		t.Fatalf("Azimuth after one update = %v, want in (0,1)", first)
	}
	for i := 0; i < 2000; i++ {
		o.Update(c)
	}
	if math.Abs(o.Azimuth-1) > 1e-6 {
		t.Fatalf("Azimuth converged to %v, want 1", o.Azimuth)
	}
}

func TestOrbitControllerSetPoseDropsVelocity(t *testing.T) {
	c := testCamera()
	o := NewOrbitControllerFromCamera(c, V3(0, 0, 0))
	o.Damping = 0.05
	o.Rotate(2, 1)
	o.Zoom(5)
	o.Update(c)

	o.SetPose(0, math.Pi/2, 10)
	for i := 0; i < 50; i++ {
		o.Update(c)
	}
	if o.Azimuth != 0 || o.Polar != math.Pi/2 || o.Distance != 10 {
		t.Fatalf("pose drifted to az=%v polar=%v dist=%v", o.Azimuth, o.Polar, o.Distance)
	}
	if d := c.Position.Sub(V3(0, 0, 10)).Norm(); d > 1e-9 {
		t.Fatalf("camera at %v, want (0,0,10)", c.Position)
	}
}
