package geometry

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// determinantEpsilon is the |det| below which a ray is treated as parallel to
// the triangle plane.
const determinantEpsilon = 1e-8

// Triangle caches everything the intersection test and the shaders need.
// Materials are flat (taken from vertex A); normals are per vertex so shaders
// can interpolate them with the barycentric weights of a hit.
type Triangle struct {
	A, B, C core.Vec3 // Vertex positions
	BA, CA  core.Vec3 // Edge vectors B-A and C-A

	NA, NB, NC core.Vec3 // Per-vertex normals

	Ambient  core.Vec3
	Diffuse  core.Vec3
	Emissive core.Vec3
}

// NewTriangle creates a triangle from three vertex records. Degenerate
// (collinear) input is accepted; such a triangle is never hit.
func NewTriangle(a, b, c VertexRecord) Triangle {
	t := Triangle{
		A: a.Position(),
		B: b.Position(),
		C: c.Position(),

		NA: a.Normal(),
		NB: b.Normal(),
		NC: c.Normal(),

		Ambient:  a.Ambient(),
		Diffuse:  a.Diffuse(),
		Emissive: a.Emissive(),
	}
	t.BA = t.B.Subtract(t.A)
	t.CA = t.C.Subtract(t.A)
	return t
}

// Intersect runs the Möller-Trumbore test. It returns the ray parameter and
// the barycentric weights (w, u, v) of the hit point. Both faces are hit and
// t is not range checked; filtering is up to the caller.
func (t *Triangle) Intersect(ray core.Ray) (float64, core.Vec3, bool) {
	pvec := ray.Direction.Cross(t.CA)
	det := t.BA.Dot(pvec)

	if math.Abs(det) < determinantEpsilon {
		return 0, core.Vec3{}, false
	}

	invDet := 1.0 / det
	tvec := ray.Origin.Subtract(t.A)
	u := tvec.Dot(pvec) * invDet
	if u < 0.0 || u > 1.0 {
		return 0, core.Vec3{}, false
	}

	qvec := tvec.Cross(t.BA)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0.0 || u+v > 1.0 {
		return 0, core.Vec3{}, false
	}

	return t.CA.Dot(qvec) * invDet, core.NewVec3(1.0-u-v, u, v), true
}

// InterpolateNormal blends the vertex normals with barycentric weights and
// normalizes the result.
func (t *Triangle) InterpolateNormal(bary core.Vec3) core.Vec3 {
	return t.NA.Multiply(bary.X).
		Add(t.NB.Multiply(bary.Y)).
		Add(t.NC.Multiply(bary.Z)).
		Normalize()
}

// GeometricNormal returns the unit normal of the triangle plane
func (t *Triangle) GeometricNormal() core.Vec3 {
	return t.BA.Cross(t.CA).Normalize()
}

// Centroid returns the average of the three vertices
func (t *Triangle) Centroid() core.Vec3 {
	return t.A.Add(t.B).Add(t.C).Multiply(1.0 / 3.0)
}
