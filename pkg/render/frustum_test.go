package render

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	// Plane at Z=0, normal pointing +Z
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if math.Abs(plane.Normal.Len()-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", plane.Normal.Len())
	}
	if math.Abs(plane.Normal.Y-0.6) > 1e-9 || math.Abs(plane.Normal.Z-0.8) > 1e-9 {
		t.Errorf("normal = %v, want (0, 0.6, 0.8)", plane.Normal)
	}
	// D should be scaled too (10/5 = 2)
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	frustum := NewFrustumFromMatrix(proj)

	for i, plane := range frustum.Planes {
		if math.Abs(plane.Normal.Len()-1.0) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, plane.Normal.Len())
		}
	}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center near", math3d.V3(0, 0, -1), true},
		{"center mid", math3d.V3(0, 0, -50), true},
		{"center far", math3d.V3(0, 0, -99), true},
		{"behind camera", math3d.V3(0, 0, 1), false},
		{"too far", math3d.V3(0, 0, -200), false},
		{"too close", math3d.V3(0, 0, -0.01), false},
		{"off to the side", math3d.V3(100, 0, -10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 1.0, 100.0))

	tests := []struct {
		name     string
		center   math3d.Vec3
		radius   float64
		expected bool
	}{
		{"inside", math3d.V3(0, 0, -10), 1.0, true},
		{"straddles near plane", math3d.V3(0, 0, -0.5), 1.0, true},
		{"behind", math3d.V3(0, 0, 5), 1.0, false},
		{"just outside right edge", math3d.V3(30, 0, -10), 1.0, false},
		{"large radius reaches in", math3d.V3(30, 0, -10), 20, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectsSphere(tc.center, tc.radius); got != tc.expected {
				t.Errorf("IntersectsSphere(%v, %v) = %v, want %v", tc.center, tc.radius, got, tc.expected)
			}
		})
	}
}

func TestCameraFrustumCullsBehindOrbit(t *testing.T) {
	cam := NewCamera()
	f := cam.Frustum()
	if !f.IntersectsSphere(math3d.Vec3{}, 2.5) {
		t.Error("sun at the camera target should be visible")
	}
	behind := cam.Eye().Add(cam.Eye().Sub(cam.Target).Normalize().Scale(10))
	if f.IntersectsSphere(behind, 1) {
		t.Errorf("body behind the eye at %v should be culled", behind)
	}
}

func BenchmarkFrustumIntersectsSphere(b *testing.B) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100.0))
	center := math3d.V3(0, 0, -10)

	for b.Loop() {
		_ = frustum.IntersectsSphere(center, 1.0)
	}
}

func BenchmarkFrustumExtraction(b *testing.B) {
	viewProj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100.0).
		Mul(math3d.LookAt(math3d.V3(0, 20, 20), math3d.Vec3{}, math3d.Up()))

	for b.Loop() {
		_ = NewFrustumFromMatrix(viewProj)
	}
}
