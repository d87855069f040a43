package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

var (
	sunCoreWhite  = math3d.V3(1, 0.95, 0.98)
	sunCoreYellow = math3d.V3(1, 0.85, 0.5)
	sunOrange     = math3d.V3(1, 0.45, 0.35)
	sunRed        = math3d.V3(0.95, 0.25, 0.35)
	sunPink       = math3d.V3(1, 0.2, 0.6)
	sunDeepPink   = math3d.V3(0.95, 0.15, 0.5)
	sunSpark      = math3d.V3(1, 0.85, 0.95)
	flareOrange   = math3d.V3(1, 0.7, 0.2)
	flareYellow   = math3d.V3(1, 0.95, 0.3)
)

// Heart waves restart every heartWavePeriod/heartWaveSpeed seconds.
const (
	heartScale      = 2.5
	heartWaveSpeed  = 0.5
	heartWavePeriod = 2.0
	heartThickness  = 0.8
	sparkThreshold  = 0.98 // hash values above this become sparks
)

// heartSDF is the implicit heart curve (x²+y²-1)³ - x²y³.
func heartSDF(x, y float64) float64 {
	a := x*x + y*y - 1
	return a*a*a - x*x*y*y*y
}

// heartPattern glows near the heart boundary, peaking at 1 on the curve.
func heartPattern(x, y, thickness float64) float64 {
	d := heartSDF(x, y)
	return Smoothstep(0, 1, 1-Clamp01(math.Abs(d)/thickness))
}

// solarHeart is the emissive star: a radial core gradient with turbulence,
// expanding heart-shaped waves, energy zones, sparks and limb flares.
func solarHeart(f Fragment, time float64) math3d.Vec3 {
	p := f.Position
	slow := pulse(time, 1)
	fast := pulse(time, 3)
	beat := pulse(time, 0.7)
	combined := slow*0.6 + fast*0.4

	turb := FBM(p.Scale(10).Add(math3d.V3(time*0.2, -time*0.15, time*0.18)), 4)
	energy := Smoothstep(0.55, 0.75, FBM(math3d.V3(p.X*15+time*0.35, p.Y*15, p.Z*15-time*0.3), 5))

	var spark float64
	if v := Hash(p.Scale(20).Add(math3d.V3(time*0.5, time*0.4, time*0.45))); v > sparkThreshold {
		spark = Smoothstep(0, 1, (v-sparkThreshold)/(1-sparkThreshold)) * fast * 0.6
	}

	hx, hy := p.X*heartScale, p.Y*heartScale
	var heart float64
	for _, offset := range [3]float64{0, 0.66, 1.33} {
		phase := math.Mod(time*heartWaveSpeed+offset, heartWavePeriod)
		s := 0.5 + phase*1.5
		heart += heartPattern(hx/s, hy/s, heartThickness) * (1 - phase/heartWavePeriod)
	}
	heart = Clamp01(heart) * beat

	flareNoise := FBM(p.Scale(8).Add(math3d.V3(time*0.4, -time*0.3, time*0.35)), 4)
	detail := Noise3D(math3d.V3(p.X*15+time*0.6, p.Y*15, p.Z*15-time*0.5))
	limb := 1 - math.Abs(f.Normal.Dot(f.View))
	mask := Smoothstep(0.55, 0.7, flareNoise)
	flare := Clamp01(math.Pow(limb, 2.5) * mask * (0.7 + detail*0.3) * fast)
	flareColor := MixVec(flareOrange, flareYellow, detail)

	var base math3d.Vec3
	switch r := p.Len(); {
	case r < 0.3:
		base = MixVec(sunCoreYellow, sunCoreWhite, r/0.3*combined)
	case r < 0.5:
		base = MixVec(sunCoreYellow, sunOrange, (r-0.3)/0.2)
	case r < 0.8:
		base = MixVec(sunOrange, sunRed, (r-0.5)/0.3)
	case r < 1:
		base = MixVec(sunRed, sunPink, (r-0.8)/0.2)
	default:
		base = MixVec(sunPink, sunDeepPink, Clamp01((r-1)/0.2)*turb)
	}

	c := base.Scale(0.8 + turb*0.2)
	c = c.Add(sunPink.Scale(heart * 0.8))
	c = c.Add(math3d.V3(energy*0.3*sunCoreYellow.X, energy*0.3*sunCoreYellow.Y, energy*0.2))
	c = c.Add(sunSpark.Scale(spark * 0.5))

	edge := rim(f)
	c = c.Add(MixVec(sunPink, sunDeepPink, edge*0.5).Scale(math.Pow(edge, 1.8) * 0.85))

	if flare > 0.1 {
		c = c.Add(flareColor.Scale(flare * 1.2))
	}
	return c.Scale(0.7 + combined*0.3)
}
