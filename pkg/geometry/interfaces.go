package geometry

import (
	"github.com/df07/go-raytracer-core/pkg/core"
)

// VertexRecord is the per-vertex input a triangle is built from. Any vertex
// layout produced by a model provider can be traced once it exposes these
// channels.
type VertexRecord interface {
	Position() core.Vec3
	Normal() core.Vec3
	Ambient() core.Vec3
	Diffuse() core.Vec3
	Emissive() core.Vec3
}

// Volume is a bounding volume in a flat acceleration structure: a coarse ray
// test guarding an ordered list of triangles.
type Volume interface {
	Test(ray core.Ray) bool
	Triangles() []Triangle
}
