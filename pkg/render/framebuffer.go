// Package render provides the software rasterization pipeline for orrery.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/orrery/pkg/math3d"
)

// DepthEpsilon is the margin a fragment must be nearer by to win the depth test.
const DepthEpsilon = 1e-6

// Background is the default clear color, 0x000510.
var Background = color.RGBA{0, 5, 16, 255}

// Framebuffer is a color buffer paired with a depth buffer of the same size.
// The terminal presenters draw two framebuffer rows per terminal row.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data
	Depth  []float64    // Row-major NDC depth, +Inf when empty
}

// NewFramebuffer creates a cleared framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		Depth:  make([]float64, width*height),
	}
	fb.Clear(Background)
	return fb
}

// Resize reallocates the buffers when the dimensions change.
func (fb *Framebuffer) Resize(width, height int) {
	if width == fb.Width && height == fb.Height {
		return
	}
	*fb = *NewFramebuffer(width, height)
}

// Clear fills the color buffer with c and resets every depth to +Inf.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
	fb.ClearDepth()
}

// ClearDepth resets every depth to +Inf without touching color.
func (fb *Framebuffer) ClearDepth() {
	inf := math.Inf(1)
	for i := range fb.Depth {
		fb.Depth[i] = inf
	}
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets a pixel at (x, y) to the given color without a depth test.
// Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if !fb.inBounds(x, y) {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DepthAt returns the stored depth at (x, y), or +Inf if out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if !fb.inBounds(x, y) {
		return math.Inf(1)
	}
	return fb.Depth[y*fb.Width+x]
}

// TestDepth reports whether depth z would win at (x, y).
func (fb *Framebuffer) TestDepth(x, y int, z float64) bool {
	if !fb.inBounds(x, y) {
		return false
	}
	return z < fb.Depth[y*fb.Width+x]-DepthEpsilon
}

// TestAndSet writes color c and depth z at (x, y) if z is nearer than the
// stored depth. Depth and color are always written together.
func (fb *Framebuffer) TestAndSet(x, y int, z float64, c color.RGBA) bool {
	if !fb.TestDepth(x, y, z) {
		return false
	}
	i := y*fb.Width + x
	fb.Depth[i] = z
	fb.Pixels[i] = c
	return true
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Lines ignore and do not update the depth buffer.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Packed returns the color buffer as 0xAARRGGBB words.
func (fb *Framebuffer) Packed() []uint32 {
	out := make([]uint32, len(fb.Pixels))
	for i, c := range fb.Pixels {
		out[i] = uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	}
	return out
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// ToRGBA converts a linear shade in [0, 1]³ to an opaque pixel. Channels are
// clamped first so out-of-range shades saturate instead of wrapping.
func ToRGBA(c math3d.Vec3) color.RGBA {
	r, g, b := colorful.Color{R: c.X, G: c.Y, B: c.Z}.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// FromRGBA converts a pixel back to a shade in [0, 1]³.
func FromRGBA(c color.RGBA) math3d.Vec3 {
	return math3d.V3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

// ParseHexColor parses "#rrggbb" into an opaque pixel.
func ParseHexColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}
