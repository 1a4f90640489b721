package scene

import (
	"github.com/df07/go-raytracer-core/pkg/camera"
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/loaders"
)

// NewCornellBoxScene creates a Cornell box spanning [-1,1] x [0,2] x [-1,1],
// open towards -Z, with two blocks and a ceiling light
func NewCornellBoxScene() *Scene {
	white := loaders.Material{
		Name:    "white",
		Ambient: core.NewVec3(0.05, 0.05, 0.05),
		Diffuse: core.NewVec3(0.73, 0.73, 0.73),
	}
	red := loaders.Material{Name: "red", Diffuse: core.NewVec3(0.65, 0.05, 0.05)}
	green := loaders.Material{Name: "green", Diffuse: core.NewVec3(0.12, 0.45, 0.15)}
	light := loaders.Material{Name: "light", Emissive: core.NewVec3(1, 1, 1)}

	// Walls face the interior of the box
	floor := NewQuad(core.NewVec3(-1, 0, -1), core.NewVec3(0, 0, 2), core.NewVec3(2, 0, 0), white)
	ceiling := NewQuad(core.NewVec3(-1, 2, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), white)
	backWall := NewQuad(core.NewVec3(-1, 0, 1), core.NewVec3(0, 2, 0), core.NewVec3(2, 0, 0), white)
	leftWall := NewQuad(core.NewVec3(-1, 0, -1), core.NewVec3(0, 2, 0), core.NewVec3(0, 0, 2), red)
	rightWall := NewQuad(core.NewVec3(1, 0, -1), core.NewVec3(0, 0, 2), core.NewVec3(0, 2, 0), green)

	// Emissive patch just below the ceiling, facing down
	lamp := NewQuad(core.NewVec3(-0.24, 1.98, -0.22), core.NewVec3(0.47, 0, 0), core.NewVec3(0, 0, 0.38), light)

	shortBlock := NewBlock(core.NewVec3(-0.7, 0, -0.4), core.NewVec3(-0.1, 0.6, 0.2), white)
	tallBlock := NewBlock(core.NewVec3(0.1, 0, 0.1), core.NewVec3(0.65, 1.2, 0.7), white)

	return &Scene{
		Name: "cornell-box",
		Shapes: [][]geometry.Vertex{
			floor, ceiling, backWall, leftWall, rightWall, lamp, shortBlock, tallBlock,
		},
		Lights: []Light{DefaultLight()},
		Camera: camera.Config{
			Position: core.NewVec3(0, 1, -3.5),
			Theta:    0,
			Phi:      0,
			VFov:     40,
			Width:    512,
			Height:   512,
		},
	}
}
