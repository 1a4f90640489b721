package geometry

import (
	"github.com/df07/go-raytracer-core/pkg/core"
)

// Box is a bounding volume owning the triangles of one shape, kept in
// insertion order. Its bounds only ever grow.
type Box struct {
	triangles []Triangle
	bounds    core.AABB
}

// NewBox creates an empty box
func NewBox() *Box {
	return &Box{}
}

// AddTriangle appends a triangle and widens the bounds to enclose it. The
// first triangle seeds the bounds so an empty box never includes the origin.
func (b *Box) AddTriangle(triangle Triangle) {
	if len(b.triangles) == 0 {
		b.bounds = core.NewAABBFromPoints(triangle.A)
	}

	b.triangles = append(b.triangles, triangle)

	b.bounds = b.bounds.
		Extend(triangle.A).
		Extend(triangle.B).
		Extend(triangle.C)
}

// Triangles returns the owned triangles in insertion order
func (b *Box) Triangles() []Triangle {
	return b.triangles
}

// Bounds returns the current extent. It is the zero box while empty.
func (b *Box) Bounds() core.AABB {
	return b.bounds
}

// Len returns the number of triangles in the box
func (b *Box) Len() int {
	return len(b.triangles)
}

// Test is the coarse slab test. An empty box rejects every ray.
func (b *Box) Test(ray core.Ray) bool {
	if len(b.triangles) == 0 {
		return false
	}
	return b.bounds.Hit(ray)
}
