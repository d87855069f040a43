package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Hash maps a point to a pseudo-random value in [0, 1). It is a pure
// function of p, so patterns are stable across frames.
func Hash(p math3d.Vec3) float64 {
	x := math3d.Fract(p.X*0.3183099+0.1) * 17
	y := math3d.Fract(p.Y*0.3183099+0.1) * 17
	z := math3d.Fract(p.Z*0.3183099+0.1) * 17
	return math3d.Fract(x * y * z * (x + y + z))
}

// Noise3D is value noise: lattice corners are hashed and blended with
// Hermite weights f²(3-2f) along each axis.
func Noise3D(p math3d.Vec3) float64 {
	i := p.Floor()
	f := p.Sub(i)
	f = math3d.V3(hermite(f.X), hermite(f.Y), hermite(f.Z))

	corner := func(dx, dy, dz float64) float64 {
		return Hash(math3d.V3(i.X+dx, i.Y+dy, i.Z+dz))
	}

	return Mix(
		Mix(
			Mix(corner(0, 0, 0), corner(1, 0, 0), f.X),
			Mix(corner(0, 1, 0), corner(1, 1, 0), f.X),
			f.Y,
		),
		Mix(
			Mix(corner(0, 0, 1), corner(1, 0, 1), f.X),
			Mix(corner(0, 1, 1), corner(1, 1, 1), f.X),
			f.Y,
		),
		f.Z,
	)
}

func hermite(t float64) float64 {
	return t * t * (3 - 2*t)
}

// FBM sums octaves of Noise3D, starting at amplitude 0.5 and frequency 1
// and halving amplitude while doubling frequency each octave.
func FBM(p math3d.Vec3, octaves int) float64 {
	value, amp, freq := 0.0, 0.5, 1.0
	for range octaves {
		value += amp * Noise3D(p.Scale(freq))
		freq *= 2
		amp *= 0.5
	}
	return value
}

// FBM2 is FBM sampled on the z = 0 plane.
func FBM2(x, y float64, octaves int) float64 {
	return FBM(math3d.V3(x, y, 0), octaves)
}

// Smoothstep is the Hermite step between edge0 and edge1. When the edges are
// degenerate (edge0 >= edge1) it returns x clamped to [0, 1].
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 >= edge1 {
		return Clamp01(x)
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Mix is unclamped linear interpolation.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MixVec is unclamped component-wise linear interpolation.
func MixVec(a, b math3d.Vec3, t float64) math3d.Vec3 {
	return a.Lerp(b, t)
}

// Clamp01 clamps x to [0, 1].
func Clamp01(x float64) float64 {
	return math3d.Clamp(x, 0, 1)
}

// pulse maps sin(t*rate) into [0, 1].
func pulse(t, rate float64) float64 {
	return math.Sin(t*rate)*0.5 + 0.5
}
