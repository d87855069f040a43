package models

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestGenerateSphereTriangleCount(t *testing.T) {
	tests := []struct {
		segments, rings int
		want            int
	}{
		{8, 8, 112},
		{16, 16, 480},
		{24, 24, 1104},
		{3, 2, 6},
	}
	for _, tt := range tests {
		m := GenerateSphere(1, tt.segments, tt.rings, math3d.Splat(1))
		if got := m.TriangleCount(); got != tt.want {
			t.Errorf("sphere(%d,%d) triangles = %d, want %d", tt.segments, tt.rings, got, tt.want)
		}
		if want := 2*tt.segments*(tt.rings-2) + 2*tt.segments; m.TriangleCount() != want {
			t.Errorf("sphere(%d,%d) does not match closed form %d", tt.segments, tt.rings, want)
		}
	}
}

func TestGenerateSphereNormals(t *testing.T) {
	const r = 2.5
	m := GenerateSphere(r, 12, 9, math3d.Splat(1))
	for i, v := range m.Vertices {
		if d := math.Abs(v.Position.Len() - r); d > 1e-9 {
			t.Fatalf("vertex %d off the sphere by %v", i, d)
		}
		if got := v.Normal.Dot(v.Position) / r; math.Abs(got-1) > 1e-9 {
			t.Fatalf("vertex %d: n·p/r = %v, want 1", i, got)
		}
	}
}

func TestGenerateSphereNoDegenerateFaces(t *testing.T) {
	m := GenerateSphere(1, 8, 8, math3d.Splat(1))
	for i, f := range m.Faces {
		a := m.Vertices[f.V[0]].Position
		b := m.Vertices[f.V[1]].Position
		c := m.Vertices[f.V[2]].Position
		if area := b.Sub(a).Cross(c.Sub(a)).Len() / 2; area < 1e-6 {
			t.Errorf("face %d has area %v", i, area)
		}
	}
}

func TestGenerateSphereColor(t *testing.T) {
	base := math3d.V3(1, 0.5, 0.25)
	m := GenerateSphere(1, 8, 4, base)
	north := m.Vertices[0]
	south := m.Vertices[len(m.Vertices)-1]
	if north.Color.Distance(base) > 1e-12 {
		t.Errorf("north pole color = %v, want full base", north.Color)
	}
	want := math3d.V3(0.8, 0.4, 0.2)
	if south.Color.Distance(want) > 1e-12 {
		t.Errorf("south pole color = %v, want %v", south.Color, want)
	}
}

func TestGenerateSphereTooCoarse(t *testing.T) {
	if m := GenerateSphere(1, 2, 1, math3d.Splat(1)); m.TriangleCount() != 0 {
		t.Errorf("expected empty mesh, got %d faces", m.TriangleCount())
	}
}

func TestOrbitPoints(t *testing.T) {
	pts := OrbitPoints(5, 64)
	if len(pts) != 64 {
		t.Fatalf("len = %d", len(pts))
	}
	for _, p := range pts {
		if math.Abs(p.Len()-5) > 1e-9 || p.Y != 0 {
			t.Fatalf("point %v not on the XZ circle", p)
		}
	}
}

func TestSphereDetail(t *testing.T) {
	for _, tt := range []struct {
		radius float64
		want   int
	}{{2.5, 32}, {1.6, 24}, {1.5, 16}, {0.4, 16}} {
		if got := SphereDetail(tt.radius); got != tt.want {
			t.Errorf("SphereDetail(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func BenchmarkGenerateSphere(b *testing.B) {
	for b.Loop() {
		_ = GenerateSphere(1, 24, 24, math3d.Splat(1))
	}
}
