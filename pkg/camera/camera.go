package camera

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Config contains camera parameters. Angles are in degrees.
type Config struct {
	Position core.Vec3 // Eye position
	Theta    float64   // Yaw around +Y, 0 looks down +Z
	Phi      float64   // Pitch, positive looks up
	VFov     float64   // Vertical angle of view
	Width    int       // Image width in pixels
	Height   int       // Image height in pixels
}

// DefaultConfig returns the camera used by the demo scenes
func DefaultConfig() Config {
	return Config{
		Position: core.NewVec3(0, 1, -3),
		Theta:    0,
		Phi:      0,
		VFov:     60,
		Width:    640,
		Height:   480,
	}
}

// Camera provides the view basis consumed by ray generation
type Camera struct {
	config  Config
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3
}

var worldUp = core.NewVec3(0, 1, 0)

// NewCamera creates a camera from config
func NewCamera(config Config) *Camera {
	theta := config.Theta * math.Pi / 180.0
	phi := config.Phi * math.Pi / 180.0

	forward := core.NewVec3(
		math.Sin(theta)*math.Cos(phi),
		math.Sin(phi),
		math.Cos(theta)*math.Cos(phi),
	)

	right := worldUp.Cross(forward)
	if right.LengthSquared() < 1e-12 {
		// Looking straight up or down; yaw alone decides the right vector
		right = core.NewVec3(math.Cos(theta), 0, -math.Sin(theta))
	}
	right = right.Normalize()
	up := forward.Cross(right)

	// Scale the side vectors so NDC ±1 lands on the edge of the vertical field of view
	halfHeight := math.Tan(config.VFov * math.Pi / 360.0)

	return &Camera{
		config:  config,
		forward: forward,
		right:   right.Multiply(halfHeight),
		up:      up.Multiply(halfHeight),
	}
}

// NewLookAtCamera creates a camera at position looking towards target
func NewLookAtCamera(position, target core.Vec3, vfov float64, width, height int) *Camera {
	d := target.Subtract(position).Normalize()
	return NewCamera(Config{
		Position: position,
		Theta:    math.Atan2(d.X, d.Z) * 180.0 / math.Pi,
		Phi:      math.Asin(max(-1, min(1, d.Y))) * 180.0 / math.Pi,
		VFov:     vfov,
		Width:    width,
		Height:   height,
	})
}

// Position returns the eye position
func (c *Camera) Position() core.Vec3 { return c.config.Position }

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 { return c.forward }

// Right returns the right vector scaled by the half field of view
func (c *Camera) Right() core.Vec3 { return c.right }

// Up returns the up vector scaled by the half field of view
func (c *Camera) Up() core.Vec3 { return c.up }

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.config.Height }

// AspectRatio returns width / height
func (c *Camera) AspectRatio() float64 {
	return float64(c.config.Width) / float64(c.config.Height)
}
