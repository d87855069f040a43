package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
)

// Orbit is a closed path around a parent body. Angles are radians.
type Orbit struct {
	Radius       float64 // Semi-major axis
	Speed        float64 // Angular speed, radians per second
	Eccentricity float64 // 0 for a circle
	Inclination  float64 // Tilt of the orbital plane about the X axis
	Phase        float64 // Initial orbit angle
}

// distance returns the focal distance at true anomaly angle:
// r = a(1-e²) / (1 + e·cos θ).
func (o Orbit) distance(angle float64) float64 {
	if o.Eccentricity == 0 {
		return o.Radius
	}
	e := o.Eccentricity
	return o.Radius * (1 - e*e) / (1 + e*math.Cos(angle))
}

// PositionAt returns the offset from the parent at the given orbit angle.
func (o Orbit) PositionAt(angle float64) math3d.Vec3 {
	r := o.distance(angle)
	return o.tilt(math3d.V3(r*math.Cos(angle), 0, r*math.Sin(angle)))
}

func (o Orbit) tilt(p math3d.Vec3) math3d.Vec3 {
	if o.Inclination == 0 {
		return p
	}
	return math3d.V3(p.X, p.Z*math.Sin(o.Inclination), p.Z*math.Cos(o.Inclination))
}

// Path samples the whole orbit as a closed polyline relative to the parent.
func (o Orbit) Path(segments int) []math3d.Vec3 {
	if segments < 3 {
		return nil
	}
	if o.Eccentricity == 0 && o.Inclination == 0 {
		return models.OrbitPoints(o.Radius, segments)
	}
	points := make([]math3d.Vec3, segments)
	for i := range points {
		points[i] = o.PositionAt(2 * math.Pi * float64(i) / float64(segments))
	}
	return points
}

// VelocityAt returns the linear speed along the orbit at angle. Elliptical
// orbits run faster at perihelion.
func (o Orbit) VelocityAt(angle float64) float64 {
	r := o.distance(angle)
	if r == 0 {
		return 0
	}
	return math.Abs(o.Speed) * o.Radius * o.Radius / r
}

// Period returns the time for one revolution, or +Inf for a still body.
func (o Orbit) Period() float64 {
	if o.Speed == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / math.Abs(o.Speed)
}

// State is the animated part of a body.
type State struct {
	OrbitAngle float64
	Rotation   float64
}

// Advance returns the state dt seconds later. Both angles stay in [0, 2π).
func (s State) Advance(orbitSpeed, rotationSpeed, dt float64) State {
	return State{
		OrbitAngle: math3d.WrapAngle(s.OrbitAngle + orbitSpeed*dt),
		Rotation:   math3d.WrapAngle(s.Rotation + rotationSpeed*dt),
	}
}
