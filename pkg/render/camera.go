package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/orrery/pkg/math3d"
)

// Camera defaults match a view from above the ecliptic at (0, 20, 20).
const (
	DefaultDistance = 20 * math.Sqrt2
	DefaultPitch    = math.Pi / 4
	MinDistance     = 2.0
	MaxDistance     = 100.0
	maxPitch        = math.Pi/2 - 0.01
)

// Camera orbits a target point. Its eye sits at Distance from Target, rotated
// by Yaw around the world Y axis and raised by Pitch above the XZ plane.
type Camera struct {
	Target   math3d.Vec3
	Distance float64
	Yaw      float64 // Rotation around Y axis, 0 looks down -Z
	Pitch    float64 // Elevation above the XZ plane

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool

	warp warp
}

// warp moves the target and distance towards a goal with critically damped
// springs, one per animated scalar.
type warp struct {
	active     bool
	spring     harmonica.Spring
	goal       math3d.Vec3
	goalDist   float64
	vel        math3d.Vec3
	distVel    float64
	settleDist float64
}

// NewCamera creates a camera with default settings looking at the origin.
func NewCamera() *Camera {
	c := &Camera{
		Distance:    DefaultDistance,
		Pitch:       DefaultPitch,
		FOV:         math.Pi / 3, // 60 degrees
		AspectRatio: 4.0 / 3.0,
		Near:        0.1,
		Far:         100,
		viewDirty:   true,
		projDirty:   true,
	}
	c.SetFrameRate(60)
	return c
}

// SetFrameRate sets how often Update is called per second.
func (c *Camera) SetFrameRate(fps int) {
	c.SetFrameTime(harmonica.FPS(max(fps, 1)))
}

// SetFrameTime sets the time step, in seconds, advanced by each Update.
func (c *Camera) SetFrameTime(dt float64) {
	// Frequency 6.0 = snappy, damping 1.0 = critically damped (no overshoot)
	c.warp.spring = harmonica.NewSpring(dt, 6.0, 1.0)
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() math3d.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := math3d.V3(cp*math.Sin(c.Yaw), math.Sin(c.Pitch), cp*math.Cos(c.Yaw))
	return c.Target.Add(offset.Scale(c.Distance))
}

// SetTarget moves the point the camera orbits.
func (c *Camera) SetTarget(target math3d.Vec3) {
	c.Target = target
	c.viewDirty = true
}

// SetDistance sets the orbit distance, clamped to [MinDistance, MaxDistance].
func (c *Camera) SetDistance(d float64) {
	c.Distance = math3d.Clamp(d, MinDistance, MaxDistance)
	c.viewDirty = true
}

// SetEye places the camera at eye while keeping the current target.
func (c *Camera) SetEye(eye math3d.Vec3) {
	d := eye.Sub(c.Target)
	l := d.Len()
	if l < 1e-9 {
		return
	}
	c.Distance = math3d.Clamp(l, MinDistance, MaxDistance)
	c.Pitch = math3d.Clamp(math.Asin(d.Y/l), -maxPitch, maxPitch)
	c.Yaw = math.Atan2(d.X, d.Z)
	c.viewDirty = true
}

// Orbit rotates the camera around its target by the given angles (in radians).
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	c.Yaw = math3d.WrapAngle(c.Yaw + deltaYaw)
	// Clamp pitch to avoid flipping over the poles
	c.Pitch = math3d.Clamp(c.Pitch+deltaPitch, -maxPitch, maxPitch)
	c.viewDirty = true
}

// Zoom scales the orbit distance; factors below 1 move closer.
func (c *Camera) Zoom(factor float64) {
	if c.warp.active {
		c.warp.goalDist = math3d.Clamp(c.warp.goalDist*factor, MinDistance, MaxDistance)
		return
	}
	c.SetDistance(c.Distance * factor)
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Reset returns the camera to its default orbit around the origin.
func (c *Camera) Reset() {
	c.warp.active = false
	c.Target = math3d.Vec3{}
	c.Distance = DefaultDistance
	c.Yaw = 0
	c.Pitch = DefaultPitch
	c.viewDirty = true
}

// WarpTo starts a smooth flight towards target at the given distance.
func (c *Camera) WarpTo(target math3d.Vec3, distance float64) {
	c.warp.active = true
	c.warp.goal = target
	c.warp.goalDist = math3d.Clamp(distance, MinDistance, MaxDistance)
	c.warp.settleDist = 1e-3
}

// Track updates the warp goal without restarting the flight, so a warp can
// follow a moving body.
func (c *Camera) Track(target math3d.Vec3) {
	if c.warp.active {
		c.warp.goal = target
	}
}

// Warping reports whether a warp is in progress.
func (c *Camera) Warping() bool {
	return c.warp.active
}

// Update advances an active warp by one frame.
func (c *Camera) Update() {
	w := &c.warp
	if !w.active {
		return
	}
	var t math3d.Vec3
	t.X, w.vel.X = w.spring.Update(c.Target.X, w.vel.X, w.goal.X)
	t.Y, w.vel.Y = w.spring.Update(c.Target.Y, w.vel.Y, w.goal.Y)
	t.Z, w.vel.Z = w.spring.Update(c.Target.Z, w.vel.Z, w.goal.Z)
	c.Target = t
	c.Distance, w.distVel = w.spring.Update(c.Distance, w.distVel, w.goalDist)
	c.viewDirty = true

	if t.Distance(w.goal) < w.settleDist && math.Abs(c.Distance-w.goalDist) < w.settleDist &&
		w.vel.Len() < w.settleDist && math.Abs(w.distVel) < w.settleDist {
		c.Target = w.goal
		c.Distance = w.goalDist
		w.vel = math3d.Vec3{}
		w.distVel = 0
		// Keep tracking: the goal is usually a moving body.
	}
}

// StopWarp ends any warp, leaving the camera where it is.
func (c *Camera) StopWarp() {
	c.warp.active = false
	c.warp.vel = math3d.Vec3{}
	c.warp.distVel = 0
}

// Basis returns the camera's right, up and forward unit vectors in world space.
func (c *Camera) Basis() (right, up, forward math3d.Vec3) {
	forward = c.Target.Sub(c.Eye()).Normalize()
	right = forward.Cross(math3d.Up()).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	c.updateMatrices()
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	c.updateMatrices()
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	c.updateMatrices()
	return c.viewProjMatrix
}

func (c *Camera) updateMatrices() {
	if !c.viewDirty && !c.projDirty {
		return
	}
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Eye(), c.Target, math3d.Up())
		c.viewDirty = false
	}
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	c.viewProjMatrix = c.projMatrix.Mul(c.viewMatrix)
}
