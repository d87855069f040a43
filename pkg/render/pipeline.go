package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shaders"
)

// Vertex is an object-space vertex fed to the vertex stage.
type Vertex struct {
	Position math3d.Vec3 // Local position
	Normal   math3d.Vec3 // Local normal
	Color    math3d.Vec3 // Base color in [0, 1]³
}

// Uniforms holds per-draw state shared by every vertex and fragment.
type Uniforms struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4
	Time       float64
	Shader     shaders.Type
	Eye        math3d.Vec3 // Camera position, for view-dependent terms
}

// TransformedVertex is a vertex after the vertex stage.
type TransformedVertex struct {
	Screen math3d.Vec3 // Pixel x, y and NDC depth z
	W      float64     // Clip-space w
	Normal math3d.Vec3 // World normal
	World  math3d.Vec3 // World position
	Local  math3d.Vec3 // Deformed local position, sampled by shaders
	Color  math3d.Vec3 // Base color
}

// VertexStage transforms vertices for one draw call. The combined
// view-projection is computed once when the stage is built.
type VertexStage struct {
	u        Uniforms
	viewProj math3d.Mat4
}

// NewVertexStage creates a vertex stage for the given uniforms.
func NewVertexStage(u Uniforms) *VertexStage {
	return &VertexStage{u: u, viewProj: u.Projection.Mul(u.View)}
}

// Transform deforms, transforms and projects a single vertex.
func (s *VertexStage) Transform(v Vertex) TransformedVertex {
	local := shaders.Deform(s.u.Shader, v.Position, v.Normal, s.u.Time)
	world := s.u.Model.MulVec3(local)
	clip := s.viewProj.MulVec4(math3d.V4FromV3(world, 1))
	ndc := clip.PerspectiveDivide()

	return TransformedVertex{
		Screen: s.u.Viewport.MulVec3(ndc),
		W:      clip.W,
		Normal: s.u.Model.MulVec3Dir(v.Normal).Normalize(),
		World:  world,
		Local:  local,
		Color:  v.Color,
	}
}
