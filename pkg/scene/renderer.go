package scene

import (
	"image/color"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shaders"
)

const (
	planetOrbitSegments = 64
	moonOrbitSegments   = 32
	moonOrbitStrength   = 0.6

	// SolarHeart displacement reaches about 0.1 of the radius and the ring
	// spread 1.3 of the outer radius; culling spheres include that.
	bodyCullScale = 1.1
	ringCullScale = 1.3
)

// FrameStats summarizes one DrawFrame call.
type FrameStats struct {
	Drawn     int // Meshes rasterized
	Culled    int // Meshes rejected by the frustum
	Triangles int // Triangles submitted
	Fragments int // Fragments written
}

// Renderer draws a System in a fixed order: sky, orbit paths, bodies, rings.
type Renderer struct {
	System     *System
	ShowOrbits bool
	ShowRings  bool

	rast *render.Rasterizer
}

// NewRenderer creates a renderer for sys with orbits and rings shown.
func NewRenderer(sys *System) *Renderer {
	return &Renderer{System: sys, ShowOrbits: true, ShowRings: true}
}

// DrawFrame renders the system at time t as seen by cam. The camera's aspect
// ratio is matched to fb.
func (r *Renderer) DrawFrame(fb *render.Framebuffer, cam *render.Camera, t float64) FrameStats {
	if r.rast == nil || r.rast.Framebuffer() != fb {
		r.rast = render.NewRasterizer(fb)
	}
	r.rast.ResetStats()
	if fb.Width == 0 || fb.Height == 0 {
		return FrameStats{}
	}
	if aspect := float64(fb.Width) / float64(fb.Height); cam.AspectRatio != aspect {
		cam.SetAspectRatio(aspect)
	}

	sys := r.System
	fb.Clear(sys.Background)
	cam.DrawSkybox(fb, t)

	u := render.Uniforms{
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(),
		Viewport:   math3d.Viewport(0, 0, float64(fb.Width), float64(fb.Height)),
		Time:       t,
		Eye:        cam.Eye(),
	}

	if r.ShowOrbits {
		r.drawOrbits(u)
	}

	frustum := cam.Frustum()
	for i := range sys.Bodies {
		b := &sys.Bodies[i]
		u.Model = sys.Model(i)
		u.Shader = b.Shader
		r.rast.DrawMeshCulled(b.Mesh, u, sys.LightAt(i), frustum, sys.Position(i), b.Radius*bodyCullScale)
	}

	if r.ShowRings {
		for i := range sys.Bodies {
			b := &sys.Bodies[i]
			if b.Rings == nil {
				continue
			}
			u.Model = sys.RingModel(i)
			u.Shader = shaders.Rings
			r.rast.DrawMeshCulled(b.Rings.Mesh, u, sys.LightAt(i), frustum, sys.Position(i), b.Rings.Outer*ringCullScale)
		}
	}

	cs, rs := r.rast.CullingStats, r.rast.Stats
	return FrameStats{
		Drawn:     cs.MeshesDrawn,
		Culled:    cs.MeshesCulled,
		Triangles: rs.Triangles,
		Fragments: rs.Fragments,
	}
}

func (r *Renderer) drawOrbits(u render.Uniforms) {
	sys := r.System
	planet := sys.OrbitColor
	moon := dim(planet, moonOrbitStrength)

	for i := range sys.Bodies {
		b := &sys.Bodies[i]
		if b.Orbit.Radius == 0 {
			continue
		}
		segments, c := planetOrbitSegments, planet
		if b.IsMoon() {
			segments, c = moonOrbitSegments, moon
		}
		u.Model = math3d.Translate(sys.OrbitCenter(i))
		r.rast.DrawPath(b.Orbit.Path(segments), true, u, c)
	}
}

func dim(c color.RGBA, k float64) color.RGBA {
	return render.ToRGBA(render.FromRGBA(c).Scale(k))
}
