package renderer

import (
	"errors"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
)

// NoHit is the payload T reported when a ray intersects nothing
const NoHit = -1.0

// ErrMissShaderRequired is returned when tracing is configured without a miss shader
var ErrMissShaderRequired = errors.New("miss shader is required")

// Payload is the result of a ray query
type Payload struct {
	T     float64   // Ray parameter of the hit, NoHit if none
	Bary  core.Vec3 // Barycentric weights (w, u, v)
	Color core.Vec3 // Resolved color
}

// IsHit reports whether the payload carries an intersection
func (p Payload) IsHit() bool {
	return p.T != NoHit
}

// MissPayload returns an empty payload with the no-hit sentinel set
func MissPayload() Payload {
	return Payload{T: NoHit}
}

// MissShader resolves a ray that hit nothing
type MissShader func(ray core.Ray) Payload

// HitShader resolves a ray against the triangle it hit
type HitShader func(ray core.Ray, payload Payload, triangle *geometry.Triangle) Payload

// Shaders is the caller-supplied shading table. Miss is mandatory; a nil
// ClosestHit or AnyHit means that stage is not installed.
type Shaders struct {
	Miss       MissShader
	ClosestHit HitShader
	AnyHit     HitShader
}

// Validate checks that the table can be traced with
func (s Shaders) Validate() error {
	if s.Miss == nil {
		return ErrMissShaderRequired
	}
	return nil
}
