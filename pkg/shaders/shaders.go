// Package shaders implements the procedural materials of the solar system.
//
// Every material is a pure function of a Fragment, the elapsed time and a
// light direction. No textures are sampled; surface detail comes from value
// noise and fractal sums over the object-space position, so patterns stay
// attached to a body as it orbits.
package shaders

import (
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Type selects a material.
type Type int

const (
	Rocky Type = iota
	GasGiant
	Lava
	Ice
	Alien
	SolarHeart
	Rings
	Moon
)

var typeNames = [...]string{
	Rocky:      "rocky",
	GasGiant:   "gas_giant",
	Lava:       "lava",
	Ice:        "ice",
	Alien:      "alien",
	SolarHeart: "solar_heart",
	Rings:      "rings",
	Moon:       "moon",
}

// Types lists every material in declaration order.
func Types() []Type {
	return []Type{Rocky, GasGiant, Lava, Ice, Alien, SolarHeart, Rings, Moon}
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType parses a material name such as "gas_giant" or "SolarHeart".
func ParseType(s string) (Type, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for i, name := range typeNames {
		if strings.ReplaceAll(name, "_", "") == norm {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shader %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("invalid shader type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Fragment is the interpolated surface sample handed to a material.
type Fragment struct {
	Position math3d.Vec3 // object space, after vertex deformation
	World    math3d.Vec3
	Normal   math3d.Vec3 // world space
	View     math3d.Vec3 // unit vector from the surface towards the eye
	Color    math3d.Vec3 // interpolated vertex base color
}

// DefaultLight is the key light direction used when none is supplied.
var DefaultLight = math3d.V3(1, 1, 2).Normalize()

// Apply shades f with material t. The result is clamped to [0, 1] per channel.
func Apply(t Type, f Fragment, time float64, light math3d.Vec3) math3d.Vec3 {
	light = light.Normalize()
	if light == (math3d.Vec3{}) {
		light = DefaultLight
	}
	f.Normal = f.Normal.Normalize()
	f.View = f.View.Normalize()
	if f.View == (math3d.Vec3{}) {
		f.View = math3d.V3(0, 0, 1)
	}

	var c math3d.Vec3
	switch t {
	case Rocky:
		c = rocky(f, light)
	case GasGiant:
		c = gasGiant(f, time, light)
	case Lava:
		c = lava(f, time, light)
	case Ice:
		c = ice(f, time, light)
	case Alien:
		c = alien(f, time)
	case SolarHeart:
		c = solarHeart(f, time)
	case Rings:
		c = rings(f)
	case Moon:
		c = moon(f, light)
	default:
		c = f.Color
	}
	return sanitize(c)
}

// Deform displaces an object-space vertex for materials that animate or
// reshape their geometry. Other materials return pos unchanged.
func Deform(t Type, pos, normal math3d.Vec3, time float64) math3d.Vec3 {
	switch t {
	case Rings:
		r := math.Sqrt(pos.X*pos.X + pos.Z*pos.Z)
		spread := 1 + r*0.3
		return math3d.V3(pos.X*spread, pos.Y*0.15, pos.Z*spread)
	case SolarHeart:
		noise := FBM(pos.Scale(8).Add(math3d.V3(time*0.15, time*0.12, time*0.18)), 3)
		amount := 0.05*pulse(time, 1) + 0.02*pulse(time, 3) + 0.03*noise
		return pos.Add(normal.Scale(amount))
	default:
		return pos
	}
}

func diffuse(n, light math3d.Vec3) float64 {
	return math.Max(n.Dot(light), 0)
}

// rim is 1 at grazing angles and 0 facing the viewer.
func rim(f Fragment) float64 {
	return 1 - math.Max(f.Normal.Dot(f.View), 0)
}

// albedo returns the vertex tint, treating an unset color as white.
func albedo(f Fragment) math3d.Vec3 {
	if f.Color == (math3d.Vec3{}) {
		return math3d.Splat(1)
	}
	return f.Color
}

func sanitize(c math3d.Vec3) math3d.Vec3 {
	if !c.IsFinite() {
		return math3d.Vec3{}
	}
	return c.Clamp01()
}
