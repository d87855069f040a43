package shaders

import "github.com/taigrr/orrery/pkg/math3d"

var (
	lavaCrust     = math3d.V3(0.1, 0.05, 0)
	lavaDarkRed   = math3d.V3(0.8, 0.1, 0)
	lavaBrightRed = math3d.V3(1, 0.2, 0)
	lavaOrange    = math3d.V3(1, 0.6, 0)
	lavaYellow    = math3d.V3(1, 0.9, 0.2)
	lavaCrack     = math3d.V3(1, 0.5, 0)
)

// lava mixes emissive rivers into a black crust. Only the crust is lit.
func lava(f Fragment, time float64, light math3d.Vec3) math3d.Vec3 {
	p := f.Position
	f1 := FBM2(p.X*2+time*0.3, p.Z*2+time*0.25, 3)
	f2 := FBM2(p.X*3.5-time*0.15, p.Y*3.5, 2)
	flow := Clamp01(f1*0.7 + f2*0.3)

	isLava := Smoothstep(0.35, 0.5, flow)
	crust := MixVec(math3d.Vec3{}, lavaCrust, flow*2)

	var molten math3d.Vec3
	switch {
	case flow < 0.5:
		molten = lavaDarkRed
	case flow < 0.65:
		molten = MixVec(lavaDarkRed, lavaBrightRed, (flow-0.5)/0.15)
	case flow < 0.8:
		molten = MixVec(lavaBrightRed, lavaOrange, (flow-0.65)/0.15)
	default:
		molten = MixVec(lavaOrange, lavaYellow, (flow-0.8)/0.2)
	}

	c := MixVec(crust, molten, isLava)
	cracks := Smoothstep(0.55, 0.7, FBM2(p.X*6, p.Z*6, 2))
	c = MixVec(c, lavaCrack, cracks*isLava*0.5)

	heat := pulse(time, 1.5) * isLava * 0.15
	shadow := 0.1 + diffuse(f.Normal, light)*0.3
	c = c.Scale(isLava + (1-isLava)*shadow)

	return math3d.V3(c.X+heat, c.Y+heat*0.5, c.Z*0.3)
}
