package shaders

import "github.com/taigrr/orrery/pkg/math3d"

var (
	rockyLow    = math3d.V3(0.4, 0.6, 0.8)
	rockyHigh   = math3d.V3(0.6, 0.75, 0.9)
	rockyCrater = math3d.V3(0.5, 0.65, 0.85)
)

const (
	rockyAmbient = 0.3
	rockyDiffuse = 0.7
)

// rocky is a pale blue cratered terrain lit by ambient plus Lambert.
func rocky(f Fragment, light math3d.Vec3) math3d.Vec3 {
	p := f.Position
	terrain := FBM(p.Scale(3), 5)
	craters := FBM(p.Scale(8), 5)

	base := MixVec(rockyLow, rockyHigh, terrain)
	base = MixVec(base, rockyCrater, craters*0.5)
	base = base.Add(math3d.Splat(Noise3D(p.Scale(20)) * 0.1))
	base = base.Mul(albedo(f))

	return base.Scale(rockyAmbient + rockyDiffuse*diffuse(f.Normal, light))
}
