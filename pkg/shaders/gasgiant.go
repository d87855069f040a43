package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

var gasBands = [4]math3d.Vec3{
	{X: 0.9, Y: 0.7, Z: 0.5},   // light orange
	{X: 0.7, Y: 0.5, Z: 0.3},   // dark orange
	{X: 0.95, Y: 0.85, Z: 0.7}, // cream
	{X: 0.6, Y: 0.4, Z: 0.25},  // brown
}

// gasGiant draws latitude bands that drift and swirl with time.
func gasGiant(f Fragment, time float64, light math3d.Vec3) math3d.Vec3 {
	p := f.Position
	bands := p.Y*5 + time*0.2
	bands += Noise3D(math3d.V3(p.X*2, p.Y*8+time*0.1, p.Z*2)) * 2
	bands += Noise3D(math3d.V3(p.X*6+time*0.15, p.Y*15, p.Z*6)) * 0.8

	// Four zones, each blending into the next; the last wraps to the first.
	band := math3d.Fract(bands)
	zone := min(int(band*4), 3)
	base := MixVec(gasBands[zone], gasBands[(zone+1)%4], (band-float64(zone)*0.25)*4)

	atm := 1 - math.Abs(f.Normal.Dot(f.View))
	atm *= atm
	base.X += 0.1 * atm
	base.Y += 0.05 * atm

	return base.Scale(0.4 + diffuse(f.Normal, light)*0.6)
}
