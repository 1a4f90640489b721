package scene

import (
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// ShaderOptions controls the default shader set
type ShaderOptions struct {
	Shadows bool // Trace a shadow ray towards every light
}

// GradientMiss colors a ray by its direction: each component d maps to d/0.5 + 0.5
func GradientMiss(ray core.Ray) renderer.Payload {
	payload := renderer.MissPayload()
	payload.Color = ray.Direction.Multiply(2.0).Add(core.Splat(0.5))
	return payload
}

// Lighting shades hits with the emissive color of the triangle plus a
// Lambertian term per light
type Lighting struct {
	lights []Light
	shadow *renderer.Raytracer[geometry.Vertex, core.Vec3]
	minT   float64
}

// NewLighting creates the shading for lights. With shadows enabled a second
// tracer is created over volumes, which must be the acceleration structure of
// the primary tracer.
func NewLighting(lights []Light, volumes []geometry.Volume, options ShaderOptions, logger core.Logger) (*Lighting, error) {
	config := renderer.DefaultConfig()
	l := &Lighting{lights: lights, minT: config.MinT}
	if !options.Shadows {
		return l, nil
	}

	shadow := renderer.NewRaytracer[geometry.Vertex, core.Vec3](config, logger)
	shadow.SetAccelerationStructure(volumes)
	err := shadow.SetShaders(renderer.Shaders{
		Miss: func(core.Ray) renderer.Payload {
			return renderer.MissPayload()
		},
		AnyHit: func(_ core.Ray, payload renderer.Payload, _ *geometry.Triangle) renderer.Payload {
			return payload
		},
	})
	if err != nil {
		return nil, err
	}
	l.shadow = shadow
	return l, nil
}

// Shaders returns the shader table for the primary tracer
func (l *Lighting) Shaders() renderer.Shaders {
	return renderer.Shaders{
		Miss:       GradientMiss,
		ClosestHit: l.ClosestHit,
	}
}

// ClosestHit computes emissive + sum(diffuse * light color * max(N.L, 0)).
// N is the barycentric blend of the vertex normals, renormalized to unit
// length, so a blend of diverging normals still gives a cosine in [-1, 1].
func (l *Lighting) ClosestHit(ray core.Ray, payload renderer.Payload, triangle *geometry.Triangle) renderer.Payload {
	color := triangle.Emissive

	position := ray.At(payload.T)
	normal := triangle.InterpolateNormal(payload.Bary)

	for _, light := range l.lights {
		if !l.Visible(position, light) {
			continue
		}
		toLight := core.NewRay(position, light.Position.Subtract(position))
		diffuse := triangle.Diffuse.MultiplyVec(light.Color).Multiply(max(normal.Dot(toLight.Direction), 0))
		color = color.Add(diffuse)
	}

	payload.Color = color
	return payload
}

// Visible reports whether nothing lies between position and light. Without
// shadows every light is visible.
func (l *Lighting) Visible(position core.Vec3, light Light) bool {
	if l.shadow == nil {
		return true
	}
	toLight := light.Position.Subtract(position)
	payload := l.shadow.TraceRay(core.NewRay(position, toLight), 1, toLight.Length(), l.minT)
	return !payload.IsHit()
}
