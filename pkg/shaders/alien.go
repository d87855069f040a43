package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

var (
	alienBase    = math3d.V3(0.08, 0.02, 0.15)
	alienPurple  = math3d.V3(0.7, 0.1, 0.9)
	alienPink    = math3d.V3(1, 0.2, 0.7)
	alienAqua    = math3d.V3(0.1, 0.9, 0.9)
	alienMagenta = math3d.V3(0.9, 0, 0.8)
)

// alien is a self-lit holographic surface: shimmering stripes, pulsing veins
// and spots over a dark base with a cycling fresnel rim.
func alien(f Fragment, time float64) math3d.Vec3 {
	p := f.Position
	fast := pulse(time, 3)
	slow := pulse(time, 1.5)
	shimmer := math.Sin(time*5+p.X*10)*0.5 + 0.5

	stripes := Smoothstep(0.3, 0.7, math.Abs(math.Sin(p.Y*15+time*2)*math.Cos(p.X*10)))
	veins := Smoothstep(0.55, 0.75, FBM(math3d.V3(p.X*6+time*0.4, p.Y*6, p.Z*6), 3))
	spots := Smoothstep(0.65, 0.8, Noise3D(math3d.V3(p.X*12+time*0.3, p.Y*12, p.Z*12)))

	var holo math3d.Vec3
	switch cycle := math.Sin(p.X*5+p.Y*3+time)*0.5 + 0.5; {
	case cycle < 0.33:
		holo = MixVec(alienPurple, alienPink, cycle*3)
	case cycle < 0.66:
		holo = MixVec(alienPink, alienAqua, (cycle-0.33)*3)
	default:
		holo = MixVec(alienAqua, alienPurple, (cycle-0.66)*3)
	}

	c := MixVec(alienBase, holo, stripes*shimmer*0.6)
	c = MixVec(c, alienMagenta, veins*fast*0.5)
	c = MixVec(c, alienAqua, spots*slow*0.4)

	fresnel := math.Pow(rim(f), 2.5)
	rimColor := MixVec(MixVec(alienPurple, alienPink, fast), alienAqua, slow)
	c = c.Add(rimColor.Scale(fresnel * 0.6))

	boost := shimmer * 0.3
	c = c.Add(math3d.V3(boost, boost*0.8, boost))
	return c.Scale(0.75)
}
