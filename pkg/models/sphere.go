package models

import (
	"fmt"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// GenerateSphere builds a UV sphere of the given radius centred on the origin.
//
// Latitude rings run from the +Y pole (theta = 0) to the -Y pole (theta = π)
// and segments wrap around Y. The first ring emits only the lower triangle of
// each quad and the last ring only the upper one, so no zero-area triangles
// touch the poles and the mesh holds 2·segments·(rings-2) + 2·segments faces.
// Vertex colors brighten slightly towards the north pole.
func GenerateSphere(radius float64, segments, rings int, color math3d.Vec3) *Mesh {
	mesh := NewMesh(fmt.Sprintf("sphere_%dx%d", segments, rings))
	if segments < 3 || rings < 2 {
		return mesh
	}

	cols := segments + 1
	mesh.Vertices = make([]MeshVertex, 0, (rings+1)*cols)
	for ring := 0; ring <= rings; ring++ {
		theta := math.Pi * float64(ring) / float64(rings)
		for seg := 0; seg <= segments; seg++ {
			phi := 2 * math.Pi * float64(seg) / float64(segments)
			p := math3d.V3(
				radius*math.Sin(theta)*math.Cos(phi),
				radius*math.Cos(theta),
				radius*math.Sin(theta)*math.Sin(phi),
			)
			n := p.Normalize()
			mesh.Vertices = append(mesh.Vertices, MeshVertex{
				Position: p,
				Normal:   n,
				Color:    shadeByLatitude(color, n),
			})
		}
	}

	mesh.Faces = make([]Face, 0, 2*segments*(rings-1))
	for ring := range rings {
		for seg := range segments {
			v1 := ring*cols + seg
			v2 := v1 + 1
			v3 := v1 + cols
			v4 := v3 + 1
			if ring != 0 {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{v1, v2, v3}})
			}
			if ring != rings-1 {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{v2, v4, v3}})
			}
		}
	}

	mesh.CalculateBounds()
	return mesh
}

func shadeByLatitude(c, n math3d.Vec3) math3d.Vec3 {
	f := 0.8 + 0.2*((n.Y+1)*0.5)
	return math3d.V3(min(c.X*f, 1), min(c.Y*f, 1), min(c.Z*f, 1))
}

// OrbitPoints samples a circle of the given radius on the XZ plane.
func OrbitPoints(radius float64, segments int) []math3d.Vec3 {
	points := make([]math3d.Vec3, segments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(segments)
		points[i] = math3d.V3(radius*math.Cos(a), 0, radius*math.Sin(a))
	}
	return points
}

// SphereDetail picks segment and ring counts for a body of the given radius.
func SphereDetail(radius float64) int {
	switch {
	case radius > 2:
		return 32
	case radius > 1.5:
		return 24
	default:
		return 16
	}
}
