package geometry

import "github.com/df07/go-raytracer-core/pkg/core"

// Vertex is the default vertex layout: position, normal and the three
// material color channels.
type Vertex struct {
	X, Y, Z    float64
	NX, NY, NZ float64

	AmbientR, AmbientG, AmbientB    float64
	DiffuseR, DiffuseG, DiffuseB    float64
	EmissiveR, EmissiveG, EmissiveB float64
}

// NewVertex creates a vertex from vector-valued channels
func NewVertex(position, normal, ambient, diffuse, emissive core.Vec3) Vertex {
	return Vertex{
		X: position.X, Y: position.Y, Z: position.Z,
		NX: normal.X, NY: normal.Y, NZ: normal.Z,
		AmbientR: ambient.X, AmbientG: ambient.Y, AmbientB: ambient.Z,
		DiffuseR: diffuse.X, DiffuseG: diffuse.Y, DiffuseB: diffuse.Z,
		EmissiveR: emissive.X, EmissiveG: emissive.Y, EmissiveB: emissive.Z,
	}
}

func (v Vertex) Position() core.Vec3 { return core.NewVec3(v.X, v.Y, v.Z) }
func (v Vertex) Normal() core.Vec3   { return core.NewVec3(v.NX, v.NY, v.NZ) }
func (v Vertex) Ambient() core.Vec3  { return core.NewVec3(v.AmbientR, v.AmbientG, v.AmbientB) }
func (v Vertex) Diffuse() core.Vec3  { return core.NewVec3(v.DiffuseR, v.DiffuseG, v.DiffuseB) }
func (v Vertex) Emissive() core.Vec3 { return core.NewVec3(v.EmissiveR, v.EmissiveG, v.EmissiveB) }
