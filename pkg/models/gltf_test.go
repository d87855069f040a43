package models

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/orrery/pkg/math3d"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if !loader.Normalize {
		t.Error("Normalize should default to true")
	}
	if loader.DefaultColor != math3d.Splat(1) {
		t.Errorf("DefaultColor = %v, want white", loader.DefaultColor)
	}
}

func TestExportGLBRoundTrip(t *testing.T) {
	src := GenerateSphere(1, 12, 8, math3d.V3(0.2, 0.5, 0.9))
	path := filepath.Join(t.TempDir(), "sphere.glb")
	if err := ExportGLB(src, path); err != nil {
		t.Fatalf("ExportGLB: %v", err)
	}

	loader := NewGLTFLoader()
	loader.Normalize = false
	got, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.VertexCount() != src.VertexCount() {
		t.Errorf("vertices = %d, want %d", got.VertexCount(), src.VertexCount())
	}
	if got.TriangleCount() != src.TriangleCount() {
		t.Errorf("triangles = %d, want %d", got.TriangleCount(), src.TriangleCount())
	}

	const (
		tol      = 1e-5 // float32 storage
		colorTol = 2.0 / 255
	)
	for i, v := range src.Vertices {
		w := got.Vertices[i]
		if v.Position.Distance(w.Position) > tol {
			t.Fatalf("vertex %d position %v, want %v", i, w.Position, v.Position)
		}
		if v.Color.Distance(w.Color) > colorTol {
			t.Fatalf("vertex %d color %v, want %v", i, w.Color, v.Color)
		}
	}
	for i, f := range src.Faces {
		if got.Faces[i] != f {
			t.Fatalf("face %d = %v, want %v", i, got.Faces[i], f)
		}
	}
}

func TestLoadNormalizesToUnitSphere(t *testing.T) {
	src := GenerateSphere(3.5, 10, 6, math3d.Splat(1))
	path := filepath.Join(t.TempDir(), "big.glb")
	if err := ExportGLB(src, path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadGLB(path)
	if err != nil {
		t.Fatal(err)
	}
	if r := got.BoundingRadius(); math.Abs(r-1) > 1e-6 {
		t.Errorf("normalized radius = %v, want 1", r)
	}
}

func TestExportGLBEmpty(t *testing.T) {
	if err := ExportGLB(NewMesh("empty"), filepath.Join(t.TempDir(), "e.glb")); err == nil {
		t.Error("expected error exporting a mesh without faces")
	}
}

// writeTriangleGLB writes one triangle whose COLOR_0 uses the given encoding.
func writeTriangleGLB(t *testing.T, colors any) string {
	t.Helper()
	doc := gltf.NewDocument()
	posIdx := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	colIdx := modeler.WriteColor(doc, colors)
	indIdx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    &indIdx,
			Mode:       gltf.PrimitiveTriangles,
			Attributes: map[string]int{gltf.POSITION: posIdx, gltf.COLOR_0: colIdx},
		}},
	})
	meshIdx := 0
	doc.Nodes = append(doc.Nodes, &gltf.Node{Mesh: &meshIdx})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGLBColorEncodings(t *testing.T) {
	want := []math3d.Vec3{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)}
	tests := []struct {
		name   string
		colors any
	}{
		{"ubyte vec4", [][4]uint8{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 128}}},
		{"ubyte vec3", [][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}},
		{"ushort vec4", [][4]uint16{{65535, 0, 0, 65535}, {0, 65535, 0, 65535}, {0, 0, 65535, 65535}}},
		{"float vec4", [][4]float32{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loader := NewGLTFLoader()
			loader.Normalize = false
			mesh, err := loader.Load(writeTriangleGLB(t, tc.colors))
			if err != nil {
				t.Fatal(err)
			}
			if mesh.TriangleCount() != 1 {
				t.Fatalf("triangles = %d, want 1", mesh.TriangleCount())
			}
			for i, w := range want {
				if got := mesh.Vertices[i].Color; got.Distance(w) > 1e-2 {
					t.Errorf("vertex %d color = %v, want %v", i, got, w)
				}
			}
		})
	}
}
