package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/orrery/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// CalculateNormals fills in smooth normals when the file carries none.
	CalculateNormals bool
	// Normalize fits the mesh to the unit sphere around the origin.
	Normalize bool
	// DefaultColor is used for vertices without COLOR_0.
	DefaultColor math3d.Vec3
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		Normalize:        true,
		DefaultColor:     math3d.Splat(1),
	}
}

// LoadGLB loads a binary GLTF (.glb) file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("load %s: no triangle primitives", path)
	}

	hasNormals := false
	for _, v := range mesh.Vertices {
		if v.Normal.Len() > 0.001 {
			hasNormals = true
			break
		}
	}
	if l.CalculateNormals && !hasNormals {
		mesh.CalculateSmoothNormals()
	}

	if l.Normalize {
		mesh.Normalize()
	} else {
		mesh.CalculateBounds()
	}

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3(doc, posIdx, modeler.ReadPosition)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3(doc, normIdx, modeler.ReadNormal)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var colors []math3d.Vec3
		if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
			colors, err = readColors(doc, colIdx)
			if err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}

		baseVertex := len(mesh.Vertices)

		for i := range positions {
			v := MeshVertex{
				Position: positions[i],
				Color:    l.DefaultColor,
			}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(colors) {
				v.Color = colors[i]
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		// The rasterizer accepts both windings, so faces keep file order.
		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				face := Face{V: [3]int{
					baseVertex + indices[i],
					baseVertex + indices[i+1],
					baseVertex + indices[i+2],
				}}
				for _, idx := range face.V {
					if idx >= len(mesh.Vertices) {
						return fmt.Errorf("index %d out of range (%d vertices)", idx, len(mesh.Vertices))
					}
				}
				mesh.Faces = append(mesh.Faces, face)
			}
		} else {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, Face{
					V: [3]int{baseVertex + i, baseVertex + i + 1, baseVertex + i + 2},
				})
			}
		}
	}

	return nil
}

// accessor returns the accessor at idx.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

// readVec3 reads a POSITION or NORMAL accessor.
func readVec3(doc *gltf.Document, idx int, read func(*gltf.Document, *gltf.Accessor, [][3]float32) ([][3]float32, error)) ([]math3d.Vec3, error) {
	acr, err := accessor(doc, idx)
	if err != nil {
		return nil, err
	}
	data, err := read(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, len(data))
	for i, f := range data {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result, nil
}

// readColors reads COLOR_0 in any encoding the modeler supports, as RGB in [0,1].
func readColors(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	acr, err := accessor(doc, idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadColor(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, len(data))
	for i, c := range data {
		result[i] = math3d.V3(float64(c[0]), float64(c[1]), float64(c[2])).Scale(1.0 / 255)
	}
	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	acr, err := accessor(doc, idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadIndices(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(data))
	for i, x := range data {
		out[i] = int(x)
	}
	return out, nil
}

// ExportGLB writes mesh as a single-primitive binary GLTF file with
// positions, normals, vertex colors and 32-bit indices.
func ExportGLB(mesh *Mesh, path string) error {
	if len(mesh.Faces) == 0 {
		return fmt.Errorf("export %s: mesh has no faces", mesh.Name)
	}

	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	colors := make([][3]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = toF32(v.Position)
		normals[i] = toF32(v.Normal)
		colors[i] = toF32(v.Color.Clamp01())
	}
	indices := make([]uint32, 0, len(mesh.Faces)*3)
	for _, f := range mesh.Faces {
		indices = append(indices, uint32(f.V[0]), uint32(f.V[1]), uint32(f.V[2]))
	}

	doc := gltf.NewDocument()
	posIdx := modeler.WritePosition(doc, positions)
	normIdx := modeler.WriteNormal(doc, normals)
	colIdx := modeler.WriteColor(doc, colors)
	indIdx := modeler.WriteIndices(doc, indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: mesh.Name,
		Primitives: []*gltf.Primitive{{
			Indices: &indIdx,
			Mode:    gltf.PrimitiveTriangles,
			Attributes: map[string]int{
				gltf.POSITION: posIdx,
				gltf.NORMAL:   normIdx,
				gltf.COLOR_0:  colIdx,
			},
		}},
	})
	meshIdx := len(doc.Meshes) - 1
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: mesh.Name, Mesh: &meshIdx})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

func toF32(v math3d.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
