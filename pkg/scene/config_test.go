package scene

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shaders"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	want := []struct {
		name   string
		radius float64
		orbit  float64
		shader shaders.Type
	}{
		{"Sol", 2.5, 0, shaders.SolarHeart},
		{"Ignis", 0.4, 5, shaders.Lava},
		{"Terra", 0.8, 8, shaders.Rocky},
		{"Xenon", 0.6, 12, shaders.Alien},
		{"Magnus", 1.5, 18, shaders.GasGiant},
		{"Glacius", 1.0, 25, shaders.Ice},
	}
	if len(cfg.Bodies) != len(want) {
		t.Fatalf("got %d top-level bodies, want %d", len(cfg.Bodies), len(want))
	}
	for i, w := range want {
		t.Run(w.name, func(t *testing.T) {
			b := cfg.Bodies[i]
			if b.Name != w.name || b.Radius != w.radius || b.Shader != w.shader {
				t.Errorf("body = %s r=%v %v, want %s r=%v %v", b.Name, b.Radius, b.Shader, w.name, w.radius, w.shader)
			}
			var orbit float64
			if b.Orbit != nil {
				orbit = b.Orbit.Radius
			}
			if orbit != w.orbit {
				t.Errorf("orbit radius = %v, want %v", orbit, w.orbit)
			}
		})
	}
	if got := cfg.BodyCount(); got != 9 {
		t.Errorf("BodyCount = %d, want 9 with moons", got)
	}
	if !cfg.Bodies[0].Emissive {
		t.Error("Sol should be emissive")
	}
	if r := cfg.Bodies[4].Rings; r == nil || r.Inner != 1.5 || r.Outer != 2.5 {
		t.Errorf("Magnus rings = %+v, want 1.5/2.5", r)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil || bg != render.Background {
		t.Errorf("background = %v (%v), want %v", bg, err, render.Background)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		wants []string
	}{
		{
			name:  "empty",
			yaml:  "",
			wants: []string{"no bodies"},
		},
		{
			name:  "unknown shader",
			yaml:  "bodies:\n  - {name: A, radius: 1, shader: plasma}\n",
			wants: []string{"plasma"},
		},
		{
			name:  "unknown field",
			yaml:  "bodies:\n  - {name: A, radius: 1, colour: red}\n",
			wants: []string{"colour"},
		},
		{
			name: "aggregates problems",
			yaml: `background: blue
bodies:
  - name: A
    radius: 0
    orbit: {radius: 3, eccentricity: 1.2}
  - name: A
    radius: 1
    rings: {inner: 3, outer: 2}
`,
			wants: []string{"background", "radius must be positive", "eccentricity", "duplicate", "inner < outer"},
		},
		{
			name:  "bad moon",
			yaml:  "bodies:\n  - name: P\n    radius: 1\n    moons:\n      - {radius: 0.1}\n",
			wants: []string{"P.moons[0]: name is required"},
		},
		{
			name:  "short light",
			yaml:  "light: [1, 2]\nbodies:\n  - {name: A, radius: 1}\n",
			wants: []string{"light: want 3 components"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			for _, w := range tc.wants {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %q", err, w)
				}
			}
		})
	}
}

func TestParseConfigShaderSpellings(t *testing.T) {
	cfg, err := ParseConfig([]byte("bodies:\n  - {name: A, radius: 1, shader: Gas-Giant}\n  - {name: B, radius: 1, shader: SOLAR_HEART}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bodies[0].Shader != shaders.GasGiant || cfg.Bodies[1].Shader != shaders.SolarHeart {
		t.Errorf("shaders = %v, %v", cfg.Bodies[0].Shader, cfg.Bodies[1].Shader)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatal(err)
		}
		if len(cfg.Bodies) == 0 {
			t.Error("default scene is empty")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scene.yaml")
		data := "light: [0, 1, 0]\nbodies:\n  - {name: Only, radius: 2, color: \"#ff0000\"}\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Bodies[0].Name != "Only" {
			t.Errorf("name = %q", cfg.Bodies[0].Name)
		}
		if l := cfg.LightDir(); l.Y != 1 {
			t.Errorf("light = %v, want +Y", l)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("err = %v, want a wrapped not-exist error", err)
		}
	})
}
