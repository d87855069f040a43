package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// moon is a smooth gray regolith with soft craters and dark maria.
func moon(f Fragment, light math3d.Vec3) math3d.Vec3 {
	p := f.Position
	gray := 0.45 + FBM(p.Scale(2), 3)*0.12
	crater := Smoothstep(0.6, 0.75, FBM(p.Scale(4), 3)) * 0.25
	maria := Smoothstep(0.3, 0.5, FBM(p.Scale(1.5), 2)) * 0.2

	v := math.Max(gray-crater-maria, 0.15)
	return albedo(f).Scale(v * (0.3 + diffuse(f.Normal, light)*0.7))
}
