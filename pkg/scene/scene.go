package scene

import (
	"github.com/df07/go-raytracer-core/pkg/camera"
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/loaders"
)

// Light is a point light
type Light struct {
	Position core.Vec3
	Color    core.Vec3
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	Shapes [][]geometry.Vertex // One triangle list per shape
	Lights []Light
	Camera camera.Config
}

// TriangleCount returns the number of triangles across all shapes
func (s *Scene) TriangleCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += len(shape) / 3
	}
	return count
}

// DefaultLight returns the ceiling light used for loaded models. It sits just
// below the ceiling of a Cornell box spanning [-1,1] x [0,2] x [-1,1].
func DefaultLight() Light {
	return Light{
		Position: core.NewVec3(0, 1.58, -0.03),
		Color:    core.NewVec3(0.78, 0.78, 0.78),
	}
}

// NewModelScene wraps a loaded OBJ model with the default light and camera
func NewModelScene(name string, model *loaders.Model) *Scene {
	return &Scene{
		Name:   name,
		Shapes: model.PerShapeBuffers(),
		Lights: []Light{DefaultLight()},
		Camera: camera.DefaultConfig(),
	}
}

// NewQuad creates the two triangles of the parallelogram spanned by u and v
// at corner. All vertices carry the face normal u x v.
func NewQuad(corner, u, v core.Vec3, material loaders.Material) []geometry.Vertex {
	normal := u.Cross(v).Normalize()
	vertex := func(p core.Vec3) geometry.Vertex {
		return geometry.NewVertex(p, normal, material.Ambient, material.Diffuse, material.Emissive)
	}

	p0 := corner
	p1 := corner.Add(u)
	p2 := corner.Add(u).Add(v)
	p3 := corner.Add(v)
	return []geometry.Vertex{
		vertex(p0), vertex(p1), vertex(p2),
		vertex(p0), vertex(p2), vertex(p3),
	}
}

// NewBlock creates an axis-aligned box between lo and hi with outward
// facing normals. The bottom face is omitted since blocks rest on a floor.
func NewBlock(lo, hi core.Vec3, material loaders.Material) []geometry.Vertex {
	size := hi.Subtract(lo)
	dx := core.NewVec3(size.X, 0, 0)
	dy := core.NewVec3(0, size.Y, 0)
	dz := core.NewVec3(0, 0, size.Z)

	var vertices []geometry.Vertex
	vertices = append(vertices, NewQuad(lo, dy, dx, material)...)         // front, -Z
	vertices = append(vertices, NewQuad(lo.Add(dz), dx, dy, material)...) // back, +Z
	vertices = append(vertices, NewQuad(lo, dz, dy, material)...)         // left, -X
	vertices = append(vertices, NewQuad(lo.Add(dx), dy, dz, material)...) // right, +X
	vertices = append(vertices, NewQuad(lo.Add(dy), dz, dx, material)...) // top, +Y
	return vertices
}
