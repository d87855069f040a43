package render

import (
	"image/color"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shaders"
)

// minTriangleArea is the smallest doubled screen-space area worth rasterizing.
const minTriangleArea = 1e-3

// Triangle is three vertices that have been through the vertex stage.
type Triangle [3]TransformedVertex

// FragmentFunc shades one fragment. The argument carries attributes
// interpolated across the triangle; the result is a color in [0, 1]³.
type FragmentFunc func(in TransformedVertex) math3d.Vec3

// MeshRenderer is the read-only mesh view the rasterizer draws from.
// It keeps this package free of a models import.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal, color math3d.Vec3)
	GetFace(i int) [3]int
}

// CullingStats tracks frustum culling per frame.
type CullingStats struct {
	MeshesTested int // Total meshes tested for culling
	MeshesCulled int // Meshes culled (not rendered)
	MeshesDrawn  int // Meshes that passed culling
}

// RasterStats tracks triangle throughput per frame.
type RasterStats struct {
	Triangles int // Triangles submitted
	Rejected  int // Triangles skipped as degenerate or behind the eye
	Fragments int // Fragments that passed the depth test
}

// Rasterizer draws triangles and lines into a framebuffer.
type Rasterizer struct {
	fb           *Framebuffer
	verts        []TransformedVertex // reused between DrawMesh calls
	CullingStats CullingStats
	Stats        RasterStats
}

// NewRasterizer creates a rasterizer that draws into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{fb: fb}
}

// Framebuffer returns the target framebuffer.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// ResetStats clears the per-frame counters.
func (r *Rasterizer) ResetStats() {
	r.CullingStats = CullingStats{}
	r.Stats = RasterStats{}
}

// edge holds the coefficients of E(a, b, p) = A·p.x + B·p.y + C, which
// equals (p.x-a.x)(b.y-a.y) - (p.y-a.y)(b.x-a.x).
type edge struct {
	A, B, C float64
}

func newEdge(a, b math3d.Vec3) edge {
	return edge{
		A: b.Y - a.Y,
		B: a.X - b.X,
		C: a.Y*(b.X-a.X) - a.X*(b.Y-a.Y),
	}
}

func (e edge) at(x, y float64) float64 {
	return e.A*x + e.B*y + e.C
}

// edgeSetup holds the three edge functions of a triangle and its doubled
// signed area.
type edgeSetup struct {
	e0, e1, e2 edge // opposite v0, v1 and v2
	area       float64
}

func newEdgeSetup(v0, v1, v2 math3d.Vec3) edgeSetup {
	s := edgeSetup{
		e0: newEdge(v1, v2),
		e1: newEdge(v2, v0),
		e2: newEdge(v0, v1),
	}
	s.area = s.e2.at(v2.X, v2.Y)
	return s
}

// weights returns the barycentric weights of (x, y) and whether the point is
// inside the triangle. Either winding is accepted.
func (s edgeSetup) weights(x, y float64) (b0, b1, b2 float64, inside bool) {
	w0, w1, w2 := s.e0.at(x, y), s.e1.at(x, y), s.e2.at(x, y)
	if s.area > 0 {
		inside = w0 >= 0 && w1 >= 0 && w2 >= 0
	} else {
		inside = w0 <= 0 && w1 <= 0 && w2 <= 0
	}
	inv := 1 / s.area
	return w0 * inv, w1 * inv, w2 * inv, inside
}

// DrawTriangle rasterizes tri with the edge-function method, shading each
// covered pixel centre that passes the depth test.
func (r *Rasterizer) DrawTriangle(tri Triangle, shade FragmentFunc) {
	r.Stats.Triangles++
	fb := r.fb
	if fb == nil || fb.Width == 0 || fb.Height == 0 {
		return
	}

	// Anything touching or behind the eye plane would project inverted.
	for i := range tri {
		if tri[i].W <= 0 {
			r.Stats.Rejected++
			return
		}
	}

	p0, p1, p2 := tri[0].Screen, tri[1].Screen, tri[2].Screen
	setup := newEdgeSetup(p0, p1, p2)
	if math.Abs(setup.area) < minTriangleArea || math.IsNaN(setup.area) {
		r.Stats.Rejected++
		return
	}

	minX := max(0, int(math.Floor(min(p0.X, p1.X, p2.X))))
	maxX := min(fb.Width-1, int(math.Ceil(max(p0.X, p1.X, p2.X))))
	minY := max(0, int(math.Floor(min(p0.Y, p1.Y, p2.Y))))
	maxY := min(fb.Height-1, int(math.Ceil(max(p0.Y, p1.Y, p2.Y))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			b0, b1, b2, inside := setup.weights(float64(x)+0.5, py)
			if !inside {
				continue
			}

			z := b0*p0.Z + b1*p1.Z + b2*p2.Z
			if z < -1 || z > 1 {
				continue
			}
			if !fb.TestDepth(x, y, z) {
				continue
			}

			in := TransformedVertex{
				Screen: math3d.V3(float64(x)+0.5, py, z),
				W:      b0*tri[0].W + b1*tri[1].W + b2*tri[2].W,
				Normal: bary(tri[0].Normal, tri[1].Normal, tri[2].Normal, b0, b1, b2),
				World:  bary(tri[0].World, tri[1].World, tri[2].World, b0, b1, b2),
				Local:  bary(tri[0].Local, tri[1].Local, tri[2].Local, b0, b1, b2),
				Color:  bary(tri[0].Color, tri[1].Color, tri[2].Color, b0, b1, b2),
			}
			if fb.TestAndSet(x, y, z, ToRGBA(shade(in))) {
				r.Stats.Fragments++
			}
		}
	}
}

func bary(a, b, c math3d.Vec3, b0, b1, b2 float64) math3d.Vec3 {
	return math3d.Vec3{
		X: a.X*b0 + b.X*b1 + c.X*b2,
		Y: a.Y*b0 + b.Y*b1 + c.Y*b2,
		Z: a.Z*b0 + b.Z*b1 + c.Z*b2,
	}
}

// DrawMesh runs the vertex stage over every vertex of mesh and rasterizes
// its faces, shading fragments with u.Shader.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, u Uniforms, light math3d.Vec3) {
	stage := NewVertexStage(u)

	n := mesh.VertexCount()
	if cap(r.verts) < n {
		r.verts = make([]TransformedVertex, n)
	}
	verts := r.verts[:n]
	for i := range verts {
		pos, normal, col := mesh.GetVertex(i)
		verts[i] = stage.Transform(Vertex{Position: pos, Normal: normal, Color: col})
	}

	shade := func(in TransformedVertex) math3d.Vec3 {
		return shaders.Apply(u.Shader, shaders.Fragment{
			Position: in.Local,
			World:    in.World,
			Normal:   in.Normal,
			View:     u.Eye.Sub(in.World),
			Color:    in.Color,
		}, u.Time, light)
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		f := mesh.GetFace(i)
		if f[0] >= n || f[1] >= n || f[2] >= n || min(f[0], f[1], f[2]) < 0 {
			r.Stats.Rejected++
			continue
		}
		r.DrawTriangle(Triangle{verts[f[0]], verts[f[1]], verts[f[2]]}, shade)
	}
}

// DrawMeshCulled draws mesh only if a bounding sphere around center
// intersects the frustum. It returns whether the mesh was drawn.
func (r *Rasterizer) DrawMeshCulled(mesh MeshRenderer, u Uniforms, light math3d.Vec3, frustum Frustum, center math3d.Vec3, radius float64) bool {
	r.CullingStats.MeshesTested++
	if !frustum.IntersectsSphere(center, radius) {
		r.CullingStats.MeshesCulled++
		return false
	}
	r.CullingStats.MeshesDrawn++
	r.DrawMesh(mesh, u, light)
	return true
}

// DrawPath projects a world-space polyline through u.Model, u.View and
// u.Projection and draws it with unshaded lines. Segments with an endpoint
// behind the eye are dropped; the rest are clipped to the framebuffer.
func (r *Rasterizer) DrawPath(points []math3d.Vec3, closed bool, u Uniforms, c color.RGBA) {
	if len(points) < 2 || r.fb == nil {
		return
	}
	mvp := u.Projection.Mul(u.View).Mul(u.Model)

	type projected struct {
		p  math3d.Vec3
		ok bool
	}
	proj := make([]projected, len(points))
	for i, p := range points {
		clip := mvp.MulVec4(math3d.V4FromV3(p, 1))
		proj[i] = projected{
			p:  u.Viewport.MulVec3(clip.PerspectiveDivide()),
			ok: clip.W > 0,
		}
	}

	segments := len(points) - 1
	if closed {
		segments++
	}
	for i := range segments {
		a, b := proj[i], proj[(i+1)%len(proj)]
		if !a.ok || !b.ok {
			continue
		}
		x0, y0, x1, y1, visible := clipSegment(a.p, b.p, float64(r.fb.Width), float64(r.fb.Height))
		if !visible {
			continue
		}
		r.fb.DrawLine(x0, y0, x1, y1, c)
	}
}

// clipSegment clips the segment a-b to [0, w) × [0, h) using the
// Liang-Barsky parametric test.
func clipSegment(a, b math3d.Vec3, w, h float64) (x0, y0, x1, y1 int, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	for _, pq := range [4][2]float64{
		{-dx, a.X},
		{dx, w - 1 - a.X},
		{-dy, a.Y},
		{dy, h - 1 - a.Y},
	} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		return 0, 0, 0, 0, false
	}
	return int(math.Round(a.X + t0*dx)), int(math.Round(a.Y + t0*dy)),
		int(math.Round(a.X + t1*dx)), int(math.Round(a.Y + t1*dy)), true
}
