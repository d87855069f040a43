package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Model(V3(1, 2, 3), V3(0.1, 0.5, 0), V3(2, 2, 2))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkModel(b *testing.B) {
	for b.Loop() {
		_ = Model(V3(8, 0, 0), V3(math.Pi/4, 1.2, 0), V3(0.8, 0.8, 0.8))
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkViewProjection(b *testing.B) {
	// Build the per-frame view-projection the way the vertex stage does
	view := LookAt(V3(0, 20, 20), V3(0, 0, 0), Up())
	proj := Perspective(math.Pi/3, 800.0/600.0, 0.1, 100.0)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
