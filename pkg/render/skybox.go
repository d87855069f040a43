package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shaders"
)

var (
	skyBottom = math3d.V3(0.01, 0.02, 0.05)
	skyTop    = math3d.V3(0.02, 0.04, 0.12)

	starWhite = math3d.V3(1, 1, 1)
	starBlue  = math3d.V3(0.8, 0.9, 1)
	starWarm  = math3d.V3(1, 0.95, 0.9)
)

const (
	starDensity   = 150.0 // cells per unit of direction
	starThreshold = 0.985
)

// SkyColor returns the background color seen along the unit direction dir
// at time t: a vertical gradient with hashed, twinkling stars on top.
func SkyColor(dir math3d.Vec3, t float64) math3d.Vec3 {
	c := shaders.MixVec(skyBottom, skyTop, (dir.Y+1)*0.5)

	h := shaders.Hash(dir.Scale(starDensity).Floor())
	if h <= starThreshold {
		return c
	}
	intensity := math.Sqrt((h - starThreshold) / (1 - starThreshold))
	twinkle := (math.Sin(t*3+h*100)*0.5+0.5)*0.3 + 0.7

	var tint math3d.Vec3
	switch {
	case h > 0.995:
		tint = starWhite
	case h > 0.992:
		tint = starBlue
	default:
		tint = starWarm
	}
	c = c.Add(tint.Scale(intensity * twinkle))
	return math3d.V3(min(c.X, 1), min(c.Y, 1), min(c.Z, 1))
}

// DrawSkybox fills the color buffer by casting a ray per pixel through the
// camera basis. Depth is left untouched so geometry drawn afterwards always
// covers the sky.
func DrawSkybox(fb *Framebuffer, right, up, forward math3d.Vec3, t float64) {
	if fb.Width == 0 || fb.Height == 0 {
		return
	}
	sx := 2 / float64(fb.Width)
	sy := 2 / float64(fb.Height)
	for y := 0; y < fb.Height; y++ {
		v := 1 - (float64(y)+0.5)*sy
		row := up.Scale(v * 1.5).Add(forward)
		for x := 0; x < fb.Width; x++ {
			u := (float64(x)+0.5)*sx - 1
			dir := right.Scale(u * 2).Add(row).Normalize()
			fb.SetPixel(x, y, ToRGBA(SkyColor(dir, t)))
		}
	}
}

// DrawSkybox fills fb with the sky as seen from the camera.
func (c *Camera) DrawSkybox(fb *Framebuffer, t float64) {
	right, up, forward := c.Basis()
	DrawSkybox(fb, right, up, forward, t)
}
