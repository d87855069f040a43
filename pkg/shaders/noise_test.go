package shaders

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestHashDeterministicAndInRange(t *testing.T) {
	pts := []math3d.Vec3{
		{}, math3d.V3(1, 2, 3), math3d.V3(-17.25, 4.5, 0.001), math3d.V3(150, -150, 75),
	}
	for _, p := range pts {
		h := Hash(p)
		if h != Hash(p) {
			t.Errorf("Hash(%v) not deterministic", p)
		}
		if h < 0 || h >= 1 {
			t.Errorf("Hash(%v) = %v out of [0,1)", p, h)
		}
	}
}

func TestNoiseMatchesHashAtLattice(t *testing.T) {
	// At integer points every Hermite weight is zero, so noise is the corner hash.
	for _, p := range []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(3, -2, 7), math3d.V3(-5, 5, -5)} {
		if got, want := Noise3D(p), Hash(p); math.Abs(got-want) > 1e-12 {
			t.Errorf("Noise3D(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestNoiseContinuous(t *testing.T) {
	p := math3d.V3(1.999999, 0.5, 0.25)
	q := math3d.V3(2.000001, 0.5, 0.25)
	if d := math.Abs(Noise3D(p) - Noise3D(q)); d > 1e-4 {
		t.Errorf("noise jumps by %v across a lattice boundary", d)
	}
}

func TestFBMSingleOctave(t *testing.T) {
	for _, p := range []math3d.Vec3{math3d.V3(0.3, 0.7, 1.1), math3d.V3(-4.2, 9.9, 0.5)} {
		if got, want := FBM(p, 1), 0.5*Noise3D(p); math.Abs(got-want) > 1e-12 {
			t.Errorf("FBM(%v, 1) = %v, want %v", p, got, want)
		}
	}
}

func TestFBMBounds(t *testing.T) {
	for oct := 0; oct <= 6; oct++ {
		limit := 1 - math.Pow(0.5, float64(oct))
		for x := -3.0; x < 3; x += 0.37 {
			v := FBM(math3d.V3(x, x*0.5, -x), oct)
			if v < 0 || v > limit+1e-12 {
				t.Fatalf("FBM octaves=%d value %v outside [0,%v]", oct, v, limit)
			}
		}
	}
}

func TestFBM2(t *testing.T) {
	if got, want := FBM2(1.25, -0.5, 3), FBM(math3d.V3(1.25, -0.5, 0), 3); got != want {
		t.Errorf("FBM2 = %v, want %v", got, want)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name            string
		edge0, edge1, x float64
		want            float64
	}{
		{"below", 0, 1, -1, 0},
		{"above", 0, 1, 2, 1},
		{"middle", 0, 1, 0.5, 0.5},
		{"quarter", 0, 1, 0.25, 0.15625},
		{"degenerate equal", 0.5, 0.5, 0.3, 0.3},
		{"degenerate reversed", 1, 0, 1.7, 1},
		{"degenerate negative", 1, 0, -0.4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Smoothstep(tt.edge0, tt.edge1, tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Smoothstep(%v,%v,%v) = %v, want %v", tt.edge0, tt.edge1, tt.x, got, tt.want)
			}
		})
	}
}

func TestMixUnclamped(t *testing.T) {
	if got := Mix(0, 1, 2); got != 2 {
		t.Errorf("Mix(0,1,2) = %v", got)
	}
	if got := MixVec(math3d.Vec3{}, math3d.Splat(1), -1); got != math3d.Splat(-1) {
		t.Errorf("MixVec = %v", got)
	}
}

func BenchmarkFBM5(b *testing.B) {
	p := math3d.V3(0.3, 0.7, 1.1)
	for b.Loop() {
		_ = FBM(p, 5)
	}
}
