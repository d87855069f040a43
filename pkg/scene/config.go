// Package scene builds the animated solar system: its configuration, orbital
// state, worker pool and per-frame draw order.
package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shaders"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultScene []byte

// defaultRingTilt is used when a ring block omits its tilt, in degrees.
const defaultRingTilt = 45.0

// Config is the YAML scene description.
type Config struct {
	Seed       uint64       `yaml:"seed"`
	Light      []float64    `yaml:"light,omitempty"` // Fixed light direction; omitted lights every body from its star
	Background string       `yaml:"background"`
	OrbitColor string       `yaml:"orbit_color"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

// BodyConfig describes a star, planet or moon.
type BodyConfig struct {
	Name          string       `yaml:"name"`
	Radius        float64      `yaml:"radius"`
	Color         string       `yaml:"color"`
	Shader        shaders.Type `yaml:"shader"`
	Detail        int          `yaml:"detail,omitempty"` // Sphere segments; 0 picks by radius
	RotationSpeed float64      `yaml:"rotation_speed"`
	Emissive      bool         `yaml:"emissive,omitempty"`
	Mesh          string       `yaml:"mesh,omitempty"` // Optional .glb replacing the sphere
	Orbit         *OrbitConfig `yaml:"orbit,omitempty"`
	Rings         *RingConfig  `yaml:"rings,omitempty"`
	Moons         []BodyConfig `yaml:"moons,omitempty"`
}

// OrbitConfig describes an orbit around the parent body. Angles are degrees.
type OrbitConfig struct {
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"` // radians per second
	Eccentricity float64 `yaml:"eccentricity,omitempty"`
	Inclination  float64 `yaml:"inclination,omitempty"`
	Phase        float64 `yaml:"phase,omitempty"`
}

// RingConfig describes a planetary ring. Tilt is in degrees.
type RingConfig struct {
	Inner float64  `yaml:"inner"`
	Outer float64  `yaml:"outer"`
	Tilt  *float64 `yaml:"tilt,omitempty"`
}

// DefaultConfig returns the embedded default scene.
func DefaultConfig() *Config {
	cfg, err := ParseConfig(defaultScene)
	if err != nil {
		panic(fmt.Sprintf("embedded scene is invalid: %v", err))
	}
	return cfg
}

// LoadConfig reads a scene file. An empty path loads the embedded default.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return ParseConfig(defaultScene)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a YAML scene. Unknown keys are errors.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Bodies) == 0 {
		errs = append(errs, errors.New("scene has no bodies"))
	}
	if _, err := c.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.OrbitLineColor(); err != nil {
		errs = append(errs, err)
	}
	if c.Light != nil {
		if len(c.Light) != 3 {
			errs = append(errs, fmt.Errorf("light: want 3 components, got %d", len(c.Light)))
		} else if c.LightDir() == (math3d.Vec3{}) {
			errs = append(errs, errors.New("light: direction is zero"))
		}
	}

	seen := make(map[string]bool)
	var walk func(path string, bodies []BodyConfig)
	walk = func(path string, bodies []BodyConfig) {
		for i := range bodies {
			b := &bodies[i]
			where := fmt.Sprintf("%s[%d]", path, i)
			if b.Name != "" {
				where = b.Name
			}
			errs = append(errs, b.validate(where, seen)...)
			walk(where+".moons", b.Moons)
		}
	}
	walk("bodies", c.Bodies)

	return errors.Join(errs...)
}

func (b *BodyConfig) validate(where string, seen map[string]bool) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: "+format, append([]any{where}, args...)...))
	}

	switch {
	case b.Name == "":
		fail("name is required")
	case seen[b.Name]:
		fail("duplicate body name")
	default:
		seen[b.Name] = true
	}
	if b.Radius <= 0 {
		fail("radius must be positive, got %v", b.Radius)
	}
	if b.Detail != 0 && b.Detail < 3 {
		fail("detail must be at least 3, got %d", b.Detail)
	}
	if b.Color != "" {
		if _, err := render.ParseHexColor(b.Color); err != nil {
			fail("%v", err)
		}
	}
	if o := b.Orbit; o != nil {
		if o.Radius < 0 {
			fail("orbit radius must not be negative, got %v", o.Radius)
		}
		if o.Eccentricity < 0 || o.Eccentricity >= 1 {
			fail("orbit eccentricity must be in [0, 1), got %v", o.Eccentricity)
		}
	}
	if r := b.Rings; r != nil {
		if r.Outer <= 0 || r.Inner < 0 || r.Inner >= r.Outer {
			fail("rings need 0 <= inner < outer, got %v/%v", r.Inner, r.Outer)
		}
	}
	return errs
}

// BackgroundColor returns the clear color, defaulting to render.Background.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	if c.Background == "" {
		return render.Background, nil
	}
	bg, err := render.ParseHexColor(c.Background)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("background: %w", err)
	}
	return bg, nil
}

// OrbitLineColor returns the orbit path color, defaulting to cyan.
func (c *Config) OrbitLineColor() (color.RGBA, error) {
	if c.OrbitColor == "" {
		return render.ToRGBA(defaultOrbitColor), nil
	}
	oc, err := render.ParseHexColor(c.OrbitColor)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("orbit_color: %w", err)
	}
	return oc, nil
}

// LightDir returns the configured light direction, or zero when the scene
// lights each body from its star.
func (c *Config) LightDir() math3d.Vec3 {
	if len(c.Light) != 3 {
		return math3d.Vec3{}
	}
	return math3d.V3(c.Light[0], c.Light[1], c.Light[2]).Normalize()
}

// BodyCount returns the number of bodies including moons.
func (c *Config) BodyCount() int {
	var count func([]BodyConfig) int
	count = func(bodies []BodyConfig) int {
		n := len(bodies)
		for _, b := range bodies {
			n += count(b.Moons)
		}
		return n
	}
	return count(c.Bodies)
}
