package scene

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"fortio.org/log"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shaders"
)

// Rings is a flattened ring system drawn around a body.
type Rings struct {
	Inner float64 // Reported only; the ring shader places its own gaps
	Outer float64
	Tilt  float64 // Radians about the X axis
	Mesh  *models.Mesh
}

// Body is one star, planet or moon. Bodies are stored flattened with parents
// before their moons.
type Body struct {
	Name          string
	Radius        float64
	Color         math3d.Vec3
	Shader        shaders.Type
	Emissive      bool
	RotationSpeed float64
	Orbit         Orbit
	Parent        int // Index of the parent body, -1 for top level
	Rings         *Rings
	Mesh          *models.Mesh // Unit-radius geometry, scaled by Radius
	Detail        int
}

// IsMoon reports whether the body orbits another body.
func (b *Body) IsMoon() bool {
	return b.Parent >= 0
}

// System is the full set of bodies and their animated state.
type System struct {
	Bodies     []Body
	States     []State
	Light      math3d.Vec3 // Zero lights each body from the star
	Background color.RGBA
	OrbitColor color.RGBA

	positions []math3d.Vec3
	star      int // First emissive body, -1 if none
}

var defaultOrbitColor = math3d.V3(0, 0.8, 1)

// NewSystem builds a system from cfg. Sphere meshes are generated for every
// body; a body whose mesh file cannot be loaded falls back to a sphere.
func NewSystem(cfg *Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	bg, _ := cfg.BackgroundColor()
	oc, _ := cfg.OrbitLineColor()

	n := cfg.BodyCount()
	s := &System{
		Bodies:     make([]Body, 0, n),
		States:     make([]State, 0, n),
		Light:      cfg.LightDir(),
		Background: bg,
		OrbitColor: oc,
		star:       -1,
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}

	var add func(bc *BodyConfig, parent int)
	add = func(bc *BodyConfig, parent int) {
		b := newBody(bc, parent)
		if bc.Mesh != "" {
			mesh, err := models.LoadGLB(bc.Mesh)
			if err != nil {
				log.Warnf("body %s: %v, using a generated sphere", b.Name, err)
			} else {
				b.Mesh = mesh
			}
		}
		if b.Emissive && s.star < 0 {
			s.star = len(s.Bodies)
		}

		phase := b.Orbit.Phase
		if rng != nil {
			phase += rng.Float64() * 2 * math.Pi
		}
		s.Bodies = append(s.Bodies, b)
		s.States = append(s.States, State{OrbitAngle: math3d.WrapAngle(phase)})
		log.Debugf("body %s: radius %.2f, orbit %.2f, shader %v, %d triangles",
			b.Name, b.Radius, b.Orbit.Radius, b.Shader, b.Mesh.TriangleCount())

		idx := len(s.Bodies) - 1
		for i := range bc.Moons {
			add(&bc.Moons[i], idx)
		}
	}
	for i := range cfg.Bodies {
		add(&cfg.Bodies[i], -1)
	}

	s.positions = make([]math3d.Vec3, len(s.Bodies))
	s.updatePositions()
	log.Infof("scene: %d bodies, %d triangles", len(s.Bodies), s.TriangleCount())
	return s, nil
}

func newBody(bc *BodyConfig, parent int) Body {
	col := math3d.Splat(1)
	if bc.Color != "" {
		c, _ := render.ParseHexColor(bc.Color)
		col = render.FromRGBA(c)
	}
	detail := bc.Detail
	if detail == 0 {
		detail = models.SphereDetail(bc.Radius)
	}

	b := Body{
		Name:          bc.Name,
		Radius:        bc.Radius,
		Color:         col,
		Shader:        bc.Shader,
		Emissive:      bc.Emissive,
		RotationSpeed: bc.RotationSpeed,
		Parent:        parent,
		Mesh:          models.GenerateSphere(1, detail, detail, col),
		Detail:        detail,
	}
	if o := bc.Orbit; o != nil {
		b.Orbit = Orbit{
			Radius:       o.Radius,
			Speed:        o.Speed,
			Eccentricity: o.Eccentricity,
			Inclination:  math3d.DegToRad(o.Inclination),
			Phase:        math3d.DegToRad(o.Phase),
		}
	}
	if r := bc.Rings; r != nil {
		tilt := defaultRingTilt
		if r.Tilt != nil {
			tilt = *r.Tilt
		}
		b.Rings = &Rings{
			Inner: r.Inner,
			Outer: r.Outer,
			Tilt:  math3d.DegToRad(tilt),
			Mesh:  models.GenerateSphere(1, detail, detail, col),
		}
	}
	return b
}

// Update advances every body by dt seconds on the calling goroutine.
func (s *System) Update(dt float64) {
	for i := range s.Bodies {
		b := &s.Bodies[i]
		s.States[i] = s.States[i].Advance(b.Orbit.Speed, b.RotationSpeed, dt)
	}
	s.updatePositions()
}

// SetStates replaces the animated state, typically with a Pool snapshot.
func (s *System) SetStates(states []State) {
	copy(s.States, states)
	s.updatePositions()
}

// updatePositions relies on parents being stored before their moons.
func (s *System) updatePositions() {
	for i := range s.Bodies {
		b := &s.Bodies[i]
		var origin math3d.Vec3
		if b.Parent >= 0 {
			origin = s.positions[b.Parent]
		}
		if b.Orbit.Radius == 0 {
			s.positions[i] = origin
			continue
		}
		s.positions[i] = origin.Add(b.Orbit.PositionAt(s.States[i].OrbitAngle))
	}
}

// Position returns the world position of body i.
func (s *System) Position(i int) math3d.Vec3 {
	return s.positions[i]
}

// OrbitCenter returns the point body i orbits around.
func (s *System) OrbitCenter(i int) math3d.Vec3 {
	if p := s.Bodies[i].Parent; p >= 0 {
		return s.positions[p]
	}
	return math3d.Vec3{}
}

// Model returns the model matrix of body i, scaling its unit mesh.
func (s *System) Model(i int) math3d.Mat4 {
	b := &s.Bodies[i]
	return math3d.Model(s.positions[i], math3d.V3(0, s.States[i].Rotation, 0), math3d.Splat(b.Radius))
}

// RingModel returns the model matrix of the rings around body i.
func (s *System) RingModel(i int) math3d.Mat4 {
	b := &s.Bodies[i]
	return math3d.Model(s.positions[i], math3d.V3(b.Rings.Tilt, s.States[i].Rotation*0.3, 0), math3d.Splat(b.Rings.Outer))
}

// LightAt returns the light direction for body i: the configured light, or
// the direction towards the star.
func (s *System) LightAt(i int) math3d.Vec3 {
	if s.Light != (math3d.Vec3{}) {
		return s.Light
	}
	if s.star < 0 || s.star == i {
		return shaders.DefaultLight
	}
	if l := s.positions[s.star].Sub(s.positions[i]).Normalize(); l != (math3d.Vec3{}) {
		return l
	}
	return shaders.DefaultLight
}

// Find returns the index of the named body, or -1.
func (s *System) Find(name string) int {
	for i := range s.Bodies {
		if s.Bodies[i].Name == name {
			return i
		}
	}
	return -1
}

// WarpGoal returns the camera target and distance for a close view of body i.
func (s *System) WarpGoal(i int) (target math3d.Vec3, distance float64) {
	b := &s.Bodies[i]
	reach := b.Radius
	if b.Rings != nil {
		reach = b.Rings.Outer
	}
	return s.positions[i], max(reach*4, render.MinDistance)
}

// TriangleCount returns the triangles drawn per frame with rings shown.
func (s *System) TriangleCount() int {
	n := 0
	for i := range s.Bodies {
		n += s.Bodies[i].Mesh.TriangleCount()
		if r := s.Bodies[i].Rings; r != nil {
			n += r.Mesh.TriangleCount()
		}
	}
	return n
}

// Spheres returns the collision sphere of every body.
func (s *System) Spheres() []Sphere {
	out := make([]Sphere, len(s.Bodies))
	for i := range s.Bodies {
		out[i] = Sphere{Center: s.positions[i], Radius: s.Bodies[i].Radius}
	}
	return out
}
