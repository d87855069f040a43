package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Cassini division, in ring object space.
const (
	cassiniRadius = 0.65
	cassiniWidth  = 0.05
)

// rings draws gray concentric bands with a dark gap. It is unlit.
func rings(f Fragment) math3d.Vec3 {
	p := f.Position
	r := math.Sqrt(p.X*p.X + p.Z*p.Z)

	bands := math.Sqrt(math.Sin(r*20)*0.5 + 0.5)
	detail := math.Sin(r*60)*0.5 + 0.5

	c := math3d.Splat(Mix(0.45, 0.72, bands))
	c = c.Scale(0.55 + detail*0.15).Clamp01()
	c = MixVec(c, math3d.Splat(0.5), 0.06)

	gap := Smoothstep(0, cassiniWidth, math.Abs(r-cassiniRadius))
	return c.Scale(Mix(0.45, 0.85, gap))
}
