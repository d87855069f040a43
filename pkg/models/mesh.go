// Package models provides mesh generation, loading and export for orrery.
package models

import "github.com/taigrr/orrery/pkg/math3d"

// Mesh represents an indexed triangle mesh.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	Color    math3d.Vec3 // linear RGB in 0-1 range
}

// Face represents a triangle face as indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// BoundingRadius returns the distance from the origin to the farthest vertex.
// Body meshes are modelled around the origin, so this is the culling radius
// before the model matrix scales it.
func (m *Mesh) BoundingRadius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = max(r, v.Position.Len())
	}
	return r
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateSmoothNormals computes area-weighted averaged normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet

		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Normalize recentres the mesh on its bounding box and scales it so the
// farthest vertex lies on the unit sphere. Loaded body meshes are normalized
// so the body radius alone sets their size.
func (m *Mesh) Normalize() {
	m.CalculateBounds()
	center := m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(center)
	}
	if r := m.BoundingRadius(); r > 0 {
		for i := range m.Vertices {
			m.Vertices[i].Position = m.Vertices[i].Position.Scale(1 / r)
		}
	}
	m.CalculateBounds()
}

// GetVertex returns the position, normal, and base color for vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) (pos, normal, color math3d.Vec3) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.Color
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}
