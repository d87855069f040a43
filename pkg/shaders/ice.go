package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

var (
	icePure    = math3d.V3(0.85, 0.92, 1)
	iceGlacier = math3d.V3(0.7, 0.82, 0.95)
	iceDeep    = math3d.V3(0.25, 0.45, 0.65)
	iceSnow    = math3d.V3(0.98, 0.99, 1)
	iceAtmo    = math3d.V3(0.7, 0.85, 1)

	auroraGreen  = math3d.V3(0.1, 0.9, 0.5)
	auroraCyan   = math3d.V3(0.2, 0.7, 0.9)
	auroraPurple = math3d.V3(0.6, 0.3, 0.9)
)

// ice layers cracked glacier, snow and sparkle, then adds polar aurora and
// an atmospheric rim.
func ice(f Fragment, time float64, light math3d.Vec3) math3d.Vec3 {
	p := f.Position
	base := MixVec(icePure, iceGlacier, FBM2(p.X*3, p.Z*3, 3))

	crack := Smoothstep(0.35, 0.45, FBM2(p.X*8, p.Z*8, 4))*0.7 +
		Smoothstep(0.38, 0.42, FBM2(p.X*18, p.Z*18, 2))*0.3
	snow := Smoothstep(0.45, 0.65, FBM2(p.X*5, p.Y*5, 3))
	sparkle := Smoothstep(0.75, 0.88, FBM2(p.X*10+time*0.08, p.Z*10, 2)) * pulse(time, 2.5) * 0.5

	a1 := math.Abs(math.Sin(p.X*3+time*0.5) * math.Cos(p.Z*2+time*0.3))
	a2 := math.Abs(math.Cos(p.X*4-time*0.4) * math.Sin(p.Z*3))
	polar := math.Pow(math.Max(math.Abs(p.Y)-0.3, 0)/0.7, 1.5)
	aurora := (a1*0.6 + a2*0.4) * polar

	var auroraColor math3d.Vec3
	switch shift := pulse(time, 0.2); {
	case shift < 0.33:
		auroraColor = auroraGreen
	case shift < 0.66:
		auroraColor = auroraCyan
	default:
		auroraColor = auroraPurple
	}

	edge := rim(f)
	rimGlow := edge * edge * 0.3

	c := MixVec(base, iceDeep, crack)
	c = MixVec(c, iceSnow, snow)

	d := diffuse(f.Normal, light)
	c = c.Scale(0.5 + d*0.8)
	c = c.Add(math3d.Splat(math.Pow(d, 4)*0.5 + sparkle*0.4))
	c = c.Add(auroraColor.Scale(aurora * 0.4))
	return c.Add(iceAtmo.Scale(rimGlow))
}
