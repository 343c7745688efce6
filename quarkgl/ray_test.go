package quarkgl

import "testing"

func TestRayIntersectSphereFront(t *testing.T) {
	r := NewRay(V3(0, 0, 300), V3(0, 0, -1))
	got, ok := r.IntersectSphere(V3(0, 0, 0), 100)
	if !ok || !near(got, 200) {
		t.Fatalf("IntersectSphere() = %v, %v, want 200, true", got, ok)
	}
	if !nearV(r.At(got), V3(0, 0, 100), 1e-9) {
		t.Fatalf("At(t) = %v, want (0,0,100)", r.At(got))
	}
}

func TestRayIntersectSphereTangentIsMiss(t *testing.T) {
	r := NewRay(V3(0, 1, -5), V3(0, 0, 1))
	if _, ok := r.IntersectSphere(V3(0, 0, 0), 1); ok {
		t.Fatalf("tangent ray reported a hit")
	}
}

func TestRayIntersectSphereInside(t *testing.T) {
	r := NewRay(V3(0, 0, 0), V3(1, 0, 0))
	got, ok := r.IntersectSphere(V3(0, 0, 0), 2)
	if !ok || !near(got, 2) {
		t.Fatalf("IntersectSphere(inside) = %v, %v, want 2, true", got, ok)
	}
}

func TestRayIntersectSphereBehind(t *testing.T) {
	r := NewRay(V3(0, 0, 10), V3(0, 0, 1))
	if _, ok := r.IntersectSphere(V3(0, 0, 0), 1); ok {
		t.Fatalf("sphere behind origin reported a hit")
	}
}

func TestRayZeroDirection(t *testing.T) {
	r := Ray{Origin: V3(0, 0, 10)}
	if _, ok := r.IntersectSphere(V3(0, 0, 0), 1); ok {
		t.Fatalf("zero-direction ray reported a hit")
	}
}
