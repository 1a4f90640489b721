package camera

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
)

func TestCamera_Basis(t *testing.T) {
	tests := []struct {
		name            string
		theta, phi      float64
		expectedForward core.Vec3
	}{
		{name: "Looking down +Z", theta: 0, phi: 0, expectedForward: core.NewVec3(0, 0, 1)},
		{name: "Yaw 90 looks down +X", theta: 90, phi: 0, expectedForward: core.NewVec3(1, 0, 0)},
		{name: "Pitch 90 looks up", theta: 0, phi: 90, expectedForward: core.NewVec3(0, 1, 0)},
		{name: "Oblique", theta: 30, phi: -20, expectedForward: core.NewVec3(
			math.Sin(math.Pi/6)*math.Cos(-math.Pi/9), math.Sin(-math.Pi/9), math.Cos(math.Pi/6)*math.Cos(-math.Pi/9))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Theta = tt.theta
			config.Phi = tt.phi
			config.VFov = 90 // tan(45°) = 1 keeps the side vectors unit length
			camera := NewCamera(config)

			const tolerance = 1e-9
			if camera.Forward().Subtract(tt.expectedForward).Length() > tolerance {
				t.Errorf("Expected forward %v, got %v", tt.expectedForward, camera.Forward())
			}

			f, r, u := camera.Forward(), camera.Right(), camera.Up()
			if math.Abs(f.Dot(r)) > tolerance || math.Abs(f.Dot(u)) > tolerance || math.Abs(r.Dot(u)) > tolerance {
				t.Errorf("Basis not orthogonal: f=%v r=%v u=%v", f, r, u)
			}
			if math.Abs(r.Length()-1) > tolerance || math.Abs(u.Length()-1) > tolerance {
				t.Errorf("Expected unit side vectors at 90 degrees, got %f and %f", r.Length(), u.Length())
			}
			// Right-handed with Y up: right x up points along forward
			if r.Cross(u).Dot(f) <= 0 {
				t.Errorf("Unexpected handedness: f=%v r=%v u=%v", f, r, u)
			}
		})
	}
}

func TestCamera_DefaultOrientation(t *testing.T) {
	config := DefaultConfig()
	config.VFov = 90
	camera := NewCamera(config)

	const tolerance = 1e-9
	if camera.Right().Subtract(core.NewVec3(1, 0, 0)).Length() > tolerance {
		t.Errorf("Expected right +X, got %v", camera.Right())
	}
	if camera.Up().Subtract(core.NewVec3(0, 1, 0)).Length() > tolerance {
		t.Errorf("Expected up +Y, got %v", camera.Up())
	}
}

func TestCamera_FieldOfViewScale(t *testing.T) {
	config := DefaultConfig()
	config.VFov = 60
	camera := NewCamera(config)

	expected := math.Tan(math.Pi / 6)
	const tolerance = 1e-9
	if math.Abs(camera.Up().Length()-expected) > tolerance {
		t.Errorf("Expected up length %f, got %f", expected, camera.Up().Length())
	}
}

func TestNewLookAtCamera(t *testing.T) {
	position := core.NewVec3(1, 2, 3)
	target := core.NewVec3(4, -1, 8)
	camera := NewLookAtCamera(position, target, 45, 320, 240)

	expected := target.Subtract(position).Normalize()
	const tolerance = 1e-9
	if camera.Forward().Subtract(expected).Length() > tolerance {
		t.Errorf("Expected forward %v, got %v", expected, camera.Forward())
	}
	if camera.Position() != position {
		t.Errorf("Expected position %v, got %v", position, camera.Position())
	}
	if math.Abs(camera.AspectRatio()-4.0/3.0) > tolerance {
		t.Errorf("Expected aspect 4/3, got %f", camera.AspectRatio())
	}
}
