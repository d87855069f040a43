package scene

import "github.com/taigrr/orrery/pkg/math3d"

const (
	// collisionScale inflates body radii so the camera stops short of the surface.
	collisionScale = 1.2
	// eyeRadius is the camera's own collision radius.
	eyeRadius = 0.1
)

// Sphere is a bounding sphere in world space.
type Sphere struct {
	Center math3d.Vec3
	Radius float64
}

// Intersects reports whether two spheres overlap.
func (s Sphere) Intersects(o Sphere) bool {
	r := s.Radius + o.Radius
	return s.Center.Sub(o.Center).LenSq() < r*r
}

// Collide pushes eye outside the inflated sphere of every body it
// penetrates and reports whether it moved.
func Collide(eye math3d.Vec3, bodies []Sphere) (math3d.Vec3, bool) {
	moved := false
	cam := Sphere{Center: eye, Radius: eyeRadius}
	for _, b := range bodies {
		hull := Sphere{Center: b.Center, Radius: b.Radius * collisionScale}
		if !cam.Intersects(hull) {
			continue
		}
		push := cam.Center.Sub(b.Center).Normalize()
		if push == (math3d.Vec3{}) {
			push = math3d.Up()
		}
		cam.Center = b.Center.Add(push.Scale(hull.Radius + eyeRadius))
		moved = true
	}
	return cam.Center, moved
}
