package scene

import (
	"github.com/df07/go-raytracer-core/pkg/camera"
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/loaders"
)

// UnitSquareColor is the emission of the unit square scene
var UnitSquareColor = core.NewVec3(1.0, 0.5, 0.25)

// NewUnitSquareScene creates a single emissive unit square centered at the
// origin in the z=0 plane, without lights. The camera sits at (0,0,-5)
// looking down +Z with a field of view narrow enough for the square to cover
// the whole frame.
func NewUnitSquareScene() *Scene {
	material := loaders.Material{Name: "square", Emissive: UnitSquareColor}
	square := NewQuad(core.NewVec3(-0.5, -0.5, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), material)

	return &Scene{
		Name:   "unit-square",
		Shapes: [][]geometry.Vertex{square},
		Camera: camera.Config{
			Position: core.NewVec3(0, 0, -5),
			VFov:     10,
			Width:    2,
			Height:   2,
		},
	}
}
