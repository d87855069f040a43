package render

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestNewFramebuffer(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	if len(fb.Pixels) != 12 || len(fb.Depth) != 12 {
		t.Fatalf("buffer lengths = %d/%d, want 12/12", len(fb.Pixels), len(fb.Depth))
	}
	for i := range fb.Pixels {
		if fb.Pixels[i] != Background {
			t.Fatalf("pixel %d = %v, want background", i, fb.Pixels[i])
		}
		if !math.IsInf(fb.Depth[i], 1) {
			t.Fatalf("depth %d = %v, want +Inf", i, fb.Depth[i])
		}
	}

	empty := NewFramebuffer(-1, 5)
	if empty.Width != 0 || len(empty.Pixels) != 0 {
		t.Errorf("negative width gave %dx%d with %d pixels", empty.Width, empty.Height, len(empty.Pixels))
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(3, 3)
	fb.TestAndSet(1, 1, 0.2, red)
	fb.Clear(green)
	for i := range fb.Pixels {
		if fb.Pixels[i] != green {
			t.Fatalf("pixel %d = %v, want green", i, fb.Pixels[i])
		}
		if !math.IsInf(fb.Depth[i], 1) {
			t.Fatalf("depth %d not reset", i)
		}
	}
}

func TestTestAndSetMonotonic(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	steps := []struct {
		z     float64
		c     color.RGBA
		wrote bool
	}{
		{0.8, red, true},
		{0.9, green, false},
		{0.5, green, true},
		{0.5, red, false},
		{0.5 - DepthEpsilon/2, red, false},
		{-0.5, white, true},
	}
	for i, s := range steps {
		if got := fb.TestAndSet(0, 0, s.z, s.c); got != s.wrote {
			t.Fatalf("step %d: TestAndSet(z=%v) = %v, want %v", i, s.z, got, s.wrote)
		}
	}
	if fb.GetPixel(0, 0) != white || fb.DepthAt(0, 0) != -0.5 {
		t.Errorf("final = %v at %v, want white at -0.5", fb.GetPixel(0, 0), fb.DepthAt(0, 0))
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(-1, 0, red)
	fb.SetPixel(2, 0, red)
	fb.SetPixel(0, 5, red)
	if fb.TestAndSet(3, 3, 0, red) {
		t.Error("out-of-bounds TestAndSet reported a write")
	}
	for i, p := range fb.Pixels {
		if p != Background {
			t.Errorf("pixel %d changed by out-of-bounds write", i)
		}
	}
	if got := fb.GetPixel(9, 9); got != (color.RGBA{}) {
		t.Errorf("GetPixel out of bounds = %v, want zero", got)
	}
	if !math.IsInf(fb.DepthAt(-1, 0), 1) {
		t.Error("DepthAt out of bounds should be +Inf")
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(0, 0, red)
	fb.Resize(2, 2)
	if fb.GetPixel(0, 0) != red {
		t.Error("same-size Resize should keep contents")
	}
	fb.Resize(5, 4)
	if fb.Width != 5 || fb.Height != 4 || len(fb.Pixels) != 20 || len(fb.Depth) != 20 {
		t.Errorf("resized to %dx%d with %d/%d entries", fb.Width, fb.Height, len(fb.Pixels), len(fb.Depth))
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		set            [][2]int
	}{
		{"horizontal", 0, 2, 4, 2, [][2]int{{0, 2}, {2, 2}, {4, 2}}},
		{"vertical", 3, 0, 3, 4, [][2]int{{3, 0}, {3, 4}}},
		{"diagonal", 0, 0, 4, 4, [][2]int{{0, 0}, {2, 2}, {4, 4}}},
		{"reversed", 4, 4, 0, 0, [][2]int{{0, 0}, {4, 4}}},
		{"partly offscreen", -3, 1, 8, 1, [][2]int{{0, 1}, {4, 1}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(5, 5)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, white)
			for _, p := range tc.set {
				if fb.GetPixel(p[0], p[1]) != white {
					t.Errorf("pixel %v not drawn", p)
				}
			}
		})
	}
}

func TestPacked(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.SetPixel(1, 0, color.RGBA{0x12, 0x34, 0x56, 0xff})
	got := fb.Packed()
	want := []uint32{0xff000510, 0xff123456}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Packed()[%d] = %#08x, want %#08x", i, got[i], want[i])
		}
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(2, 1, red)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("pixel (2,1) = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}

	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("SavePNG into a missing directory should fail")
	}
}

func TestColorConversion(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec3
		want color.RGBA
	}{
		{"black", math3d.Vec3{}, color.RGBA{0, 0, 0, 255}},
		{"white", math3d.Splat(1), white},
		{"saturates", math3d.V3(2, -1, 0.5), color.RGBA{255, 0, 128, 255}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToRGBA(tc.in); got != tc.want {
				t.Errorf("ToRGBA(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	back := FromRGBA(color.RGBA{255, 0, 51, 255})
	if back.Distance(math3d.V3(1, 0, 0.2)) > 1e-9 {
		t.Errorf("FromRGBA = %v, want (1,0,0.2)", back)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#00ccff")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{0, 204, 255, 255}) {
		t.Errorf("ParseHexColor = %v", c)
	}
	if _, err := ParseHexColor("cyan"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func BenchmarkClear(b *testing.B) {
	fb := NewFramebuffer(320, 200)
	for b.Loop() {
		fb.Clear(Background)
	}
}
