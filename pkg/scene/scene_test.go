package scene

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/camera"
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/loaders"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// quiet discards log output
type quiet struct{}

func (quiet) Debugf(string, ...interface{})   {}
func (quiet) Infof(string, ...interface{})    {}
func (quiet) Warningf(string, ...interface{}) {}

const tolerance = 1e-9

func newTracer(t *testing.T, width, height int) (*renderer.Raytracer[geometry.Vertex, core.Vec3], *renderer.Buffer[core.Vec3]) {
	t.Helper()
	config := renderer.DefaultConfig()
	config.Workers = 2
	rt := renderer.NewRaytracer[geometry.Vertex, core.Vec3](config, quiet{})
	target := renderer.NewColorBuffer(width, height)
	rt.SetRenderTarget(target)
	return rt, target
}

func TestGradientMiss(t *testing.T) {
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0.6, 0.8))
	payload := GradientMiss(ray)

	if payload.IsHit() {
		t.Errorf("Expected miss payload, got T=%f", payload.T)
	}
	expected := core.NewVec3(0.5, 0.6/0.5+0.5, 0.8/0.5+0.5)
	if payload.Color.Subtract(expected).Length() > tolerance {
		t.Errorf("Expected %v, got %v", expected, payload.Color)
	}
}

func TestRender_UnitSquare(t *testing.T) {
	s := NewUnitSquareScene()
	rt, target := newTracer(t, 2, 2)

	stats, err := Render(s, rt, ShaderOptions{}, quiet{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.Pixels != 4 || stats.Hits != 4 {
		t.Errorf("Expected 4 pixels all hit, got %d/%d", stats.Hits, stats.Pixels)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := target.At(x, y); got != UnitSquareColor {
				t.Errorf("Pixel (%d,%d): expected emissive %v, got %v", x, y, UnitSquareColor, got)
			}
		}
	}
}

func TestRender_UnitSquareWideBasisMisses(t *testing.T) {
	s := NewUnitSquareScene()
	rt, target := newTracer(t, 2, 2)
	if _, err := Render(s, rt, ShaderOptions{}, quiet{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Unit side vectors put every corner ray far outside the square
	position := s.Camera.Position
	forward, right, up := core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)
	stats, err := rt.RayGeneration(position, forward, right, up)
	if err != nil {
		t.Fatalf("RayGeneration failed: %v", err)
	}
	if stats.Hits != 0 {
		t.Errorf("Expected no hits, got %d", stats.Hits)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			u, v := float64(2*x-1), float64(2*y-1)
			direction := forward.Add(right.Multiply(u)).Subtract(up.Multiply(v))
			expected := GradientMiss(core.NewRay(position, direction)).Color
			if target.At(x, y).Subtract(expected).Length() > tolerance {
				t.Errorf("Pixel (%d,%d): expected gradient %v, got %v", x, y, expected, target.At(x, y))
			}
		}
	}
}

// floorScene is a white floor in the y=0 plane with a blocker at y=1 above
// the region around the origin
func floorScene(lights []Light) *Scene {
	white := loaders.Material{Diffuse: core.NewVec3(0.5, 0.5, 0.5), Emissive: core.NewVec3(0.1, 0, 0)}
	floor := NewQuad(core.NewVec3(-2, 0, -2), core.NewVec3(0, 0, 4), core.NewVec3(4, 0, 0), white)
	blocker := NewQuad(core.NewVec3(-0.5, 1, -0.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), white)
	return &Scene{
		Name:   "floor",
		Shapes: [][]geometry.Vertex{floor, blocker},
		Lights: lights,
		Camera: camera.DefaultConfig(),
	}
}

func lambert(diffuse, lightColor, normal, position, lightPosition core.Vec3) core.Vec3 {
	l := lightPosition.Subtract(position).Normalize()
	return diffuse.MultiplyVec(lightColor).Multiply(max(normal.Dot(l), 0))
}

func TestLighting_ClosestHit(t *testing.T) {
	above := Light{Position: core.NewVec3(0, 2, 0), Color: core.NewVec3(1, 1, 1)}
	side := Light{Position: core.NewVec3(3, 0.5, 0), Color: core.NewVec3(0.2, 0.4, 0.6)}
	below := Light{Position: core.NewVec3(0, -1, 0), Color: core.NewVec3(1, 1, 1)}

	// Hit the floor at (0.3, 0, 0.1) from above, under the blocker
	ray := core.NewRay(core.NewVec3(0.3, 0.5, 0.1), core.NewVec3(0, -1, 0))
	position := ray.At(0.5)

	tests := []struct {
		name    string
		lights  []Light
		shadows bool
		lit     []Light
	}{
		{name: "No lights", lights: nil},
		{name: "Light below surface", lights: []Light{below}},
		{name: "Unshadowed", lights: []Light{above, side}, lit: []Light{above, side}},
		{name: "Shadowed by blocker", lights: []Light{above, side}, shadows: true, lit: []Light{side}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := floorScene(tt.lights)
			rt, _ := newTracer(t, 1, 1)
			rt.SetPerShapeVertexBuffer(s.Shapes)
			if err := rt.BuildAccelerationStructure(); err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			lighting, err := NewLighting(s.Lights, rt.AccelerationStructure(), ShaderOptions{Shadows: tt.shadows}, quiet{})
			if err != nil {
				t.Fatalf("NewLighting failed: %v", err)
			}

			floor := &rt.AccelerationStructure()[0].Triangles()[0]
			payload := renderer.Payload{T: 0.5, Bary: core.NewVec3(1.0/3, 1.0/3, 1.0/3)}
			result := lighting.ClosestHit(ray, payload, floor)

			expected := floor.Emissive
			for _, light := range tt.lit {
				expected = expected.Add(lambert(floor.Diffuse, light.Color, core.NewVec3(0, 1, 0), position, light.Position))
			}
			if result.Color.Subtract(expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", expected, result.Color)
			}
			if result.T != payload.T {
				t.Errorf("Expected T to pass through, got %f", result.T)
			}
		})
	}
}

func TestLighting_ClosestHitRenormalizesBlendedNormal(t *testing.T) {
	diffuse := core.NewVec3(0.5, 0.5, 0.5)
	tilt := math.Sqrt(0.5)
	vertex := func(position, normal core.Vec3) geometry.Vertex {
		return geometry.NewVertex(position, normal, core.Vec3{}, diffuse, core.Vec3{})
	}
	triangle := geometry.NewTriangle(
		vertex(core.NewVec3(-1, 0, -1), core.NewVec3(tilt, tilt, 0)),
		vertex(core.NewVec3(1, 0, -1), core.NewVec3(-tilt, tilt, 0)),
		vertex(core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0)),
	)

	light := Light{Position: core.NewVec3(0, 3, -1), Color: core.NewVec3(1, 1, 1)}
	lighting, err := NewLighting([]Light{light}, nil, ShaderOptions{}, quiet{})
	if err != nil {
		t.Fatalf("NewLighting failed: %v", err)
	}

	// Midway between A and B the raw blend is (0, 0.707, 0)
	ray := core.NewRay(core.NewVec3(0, 1, -1), core.NewVec3(0, -1, 0))
	payload := renderer.Payload{T: 1, Bary: core.NewVec3(0.5, 0.5, 0)}
	result := lighting.ClosestHit(ray, payload, &triangle)

	if result.Color.Subtract(diffuse).Length() > tolerance {
		t.Errorf("Expected full cosine %v, got %v", diffuse, result.Color)
	}
}

func TestLighting_Visible(t *testing.T) {
	light := Light{Position: core.NewVec3(0, 2, 0), Color: core.NewVec3(1, 1, 1)}
	s := floorScene([]Light{light})
	rt, _ := newTracer(t, 1, 1)
	rt.SetPerShapeVertexBuffer(s.Shapes)
	if err := rt.BuildAccelerationStructure(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	lighting, err := NewLighting(s.Lights, rt.AccelerationStructure(), ShaderOptions{Shadows: true}, quiet{})
	if err != nil {
		t.Fatalf("NewLighting failed: %v", err)
	}

	tests := []struct {
		name     string
		position core.Vec3
		light    core.Vec3
		visible  bool
	}{
		{name: "Under blocker", position: core.NewVec3(0.3, 0, 0.1), light: light.Position, visible: false},
		{name: "Beside blocker", position: core.NewVec3(1.8, 0, 1.7), light: light.Position, visible: true},
		// The blocker lies beyond the light
		{name: "Light before blocker", position: core.NewVec3(0.3, 0.5, 0.1), light: core.NewVec3(0.3, 0.9, 0.1), visible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := Light{Position: tt.light, Color: light.Color}
			if got := lighting.Visible(tt.position, target); got != tt.visible {
				t.Errorf("Visible(%v) = %v, want %v", tt.position, got, tt.visible)
			}
		})
	}
}

func TestRender_CornellBox(t *testing.T) {
	s := NewCornellBoxScene()
	s.Camera.Width, s.Camera.Height = 32, 24

	for _, shadows := range []bool{false, true} {
		rt, target := newTracer(t, 32, 24)
		stats, err := Render(s, rt, ShaderOptions{Shadows: shadows}, quiet{})
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if stats.Volumes != len(s.Shapes) {
			t.Errorf("Expected %d volumes, got %d", len(s.Shapes), stats.Volumes)
		}
		if stats.Pixels != 32*24 || stats.Hits == 0 {
			t.Errorf("Unexpected stats: %d hits of %d pixels", stats.Hits, stats.Pixels)
		}

		// The center of the frame looks at the back wall
		center := target.At(16, 12)
		if !center.IsFinite() || center.Length() == 0 {
			t.Errorf("Expected lit back wall at center, got %v", center)
		}
	}
}

func TestNewBlock_OutwardNormals(t *testing.T) {
	lo, hi := core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3)
	vertices := NewBlock(lo, hi, loaders.DefaultMaterial())
	if len(vertices) != 5*6 {
		t.Fatalf("Expected 5 faces of 2 triangles, got %d vertices", len(vertices))
	}

	center := lo.Add(hi).Multiply(0.5)
	for i := 0; i < len(vertices); i += 3 {
		triangle := geometry.NewTriangle(vertices[i], vertices[i+1], vertices[i+2])
		outward := triangle.Centroid().Subtract(center)
		if triangle.NA.Dot(outward) <= 0 {
			t.Errorf("Triangle %d normal %v points inwards", i/3, triangle.NA)
		}
		if triangle.GeometricNormal().Subtract(triangle.NA).Length() > tolerance {
			t.Errorf("Triangle %d: winding %v disagrees with normal %v", i/3, triangle.GeometricNormal(), triangle.NA)
		}
	}
}
