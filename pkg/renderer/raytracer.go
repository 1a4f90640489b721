package renderer

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/log"
)

var (
	// ErrNoRenderTarget is returned when an operation needs a render target
	// and none was set
	ErrNoRenderTarget = errors.New("render target not set")
	// ErrInvalidViewport is returned for non-positive viewport dimensions
	ErrInvalidViewport = errors.New("viewport dimensions must be positive")
	// ErrViewportMismatch is returned when the viewport does not fit the target
	ErrViewportMismatch = errors.New("viewport larger than render target")
)

// Raytracer casts one primary ray per pixel through a caller-supplied shader
// table. V is the vertex layout of the scene buffers and P the pixel encoding
// of the render target.
//
// The acceleration structure is a flat list of bounding volumes, one per
// shape. It is read-only while tracing, so TraceRay may be called from many
// goroutines and from inside shaders.
type Raytracer[V geometry.VertexRecord, P any] struct {
	target  RenderTarget[P]
	width   int
	height  int
	buffers [][]V
	volumes []geometry.Volume
	shaders Shaders
	config  Config
	logger  core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger selects the package
// logger.
func NewRaytracer[V geometry.VertexRecord, P any](config Config, logger core.Logger) *Raytracer[V, P] {
	if logger == nil {
		logger = log.New("raytracer")
	}
	return &Raytracer[V, P]{
		width:  1920,
		height: 1080,
		config: config,
		logger: logger,
	}
}

// SetRenderTarget sets the buffer frames are written to
func (rt *Raytracer[V, P]) SetRenderTarget(target RenderTarget[P]) {
	rt.target = target
}

// ClearRenderTarget fills every element of the render target with value
func (rt *Raytracer[V, P]) ClearRenderTarget(value P) error {
	if rt.target == nil {
		return ErrNoRenderTarget
	}
	for i := 0; i < rt.target.Len(); i++ {
		rt.target.SetItem(i, value)
	}
	return nil
}

// SetViewport sets the frame dimensions in pixels
func (rt *Raytracer[V, P]) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%dx%d: %w", width, height, ErrInvalidViewport)
	}
	rt.width = width
	rt.height = height
	return nil
}

// SetPerShapeVertexBuffer sets the scene geometry, one buffer per shape.
// It takes effect on the next BuildAccelerationStructure call.
func (rt *Raytracer[V, P]) SetPerShapeVertexBuffer(buffers [][]V) {
	rt.buffers = buffers
}

// SetShaders installs the shader table. The miss shader is mandatory.
func (rt *Raytracer[V, P]) SetShaders(shaders Shaders) error {
	if err := shaders.Validate(); err != nil {
		return err
	}
	rt.shaders = shaders
	return nil
}

// BuildAccelerationStructure replaces the acceleration structure with one
// built from the current vertex buffers. Calling it twice yields the same
// structure; on error the previous structure is kept.
func (rt *Raytracer[V, P]) BuildAccelerationStructure() error {
	boxes, err := geometry.BuildBoxes(rt.buffers)
	if err != nil {
		return fmt.Errorf("failed to build acceleration structure: %w", err)
	}

	volumes := make([]geometry.Volume, len(boxes))
	for i, box := range boxes {
		volumes[i] = box
	}
	rt.volumes = volumes

	rt.logger.Infof("Built acceleration structure: %d volumes, %d triangles",
		len(boxes), geometry.CountTriangles(boxes))
	return nil
}

// ResetAccelerationStructure empties the acceleration structure
func (rt *Raytracer[V, P]) ResetAccelerationStructure() {
	rt.volumes = nil
}

// AccelerationStructure returns the current bounding volumes
func (rt *Raytracer[V, P]) AccelerationStructure() []geometry.Volume {
	return rt.volumes
}

// SetAccelerationStructure shares an existing structure, e.g. one built by
// another raytracer over the same scene
func (rt *Raytracer[V, P]) SetAccelerationStructure(volumes []geometry.Volume) {
	rt.volumes = volumes
}

// Trace traces ray with the configured hit window
func (rt *Raytracer[V, P]) Trace(ray core.Ray, depth int) Payload {
	return rt.TraceRay(ray, depth, rt.config.MaxT, rt.config.MinT)
}

// TraceRay finds the hit for ray and dispatches exactly one shader:
//   - depth exhausted: miss
//   - any-hit installed: any-hit on the first hit in (minT, closest) in scan order
//   - closest-hit installed and something hit: closest-hit on the nearest hit
//   - otherwise: miss
func (rt *Raytracer[V, P]) TraceRay(ray core.Ray, depth int, maxT, minT float64) Payload {
	if depth <= 0 {
		return rt.shaders.Miss(ray)
	}

	closest := Payload{T: maxT}
	var closestTriangle *geometry.Triangle

	for _, volume := range rt.volumes {
		if !volume.Test(ray) {
			continue
		}

		triangles := volume.Triangles()
		for i := range triangles {
			triangle := &triangles[i]
			payload := rt.IntersectionShader(triangle, ray)

			if payload.T > minT && payload.T < closest.T {
				closest = payload
				closestTriangle = triangle
				if rt.shaders.AnyHit != nil {
					return rt.shaders.AnyHit(ray, payload, triangle)
				}
			}
		}
	}

	if closest.T < maxT && rt.shaders.ClosestHit != nil {
		return rt.shaders.ClosestHit(ray, closest, closestTriangle)
	}
	return rt.shaders.Miss(ray)
}

// IntersectionShader tests ray against triangle. T is NoHit when they do not
// intersect; otherwise T may be any value, including negative ones.
func (rt *Raytracer[V, P]) IntersectionShader(triangle *geometry.Triangle, ray core.Ray) Payload {
	t, bary, ok := triangle.Intersect(ray)
	if !ok {
		return MissPayload()
	}
	return Payload{T: t, Bary: bary}
}

// RayGeneration renders one frame from the camera basis. Columns are visited
// in order; the rows of each column are shaded in parallel and joined before
// the next column starts.
func (rt *Raytracer[V, P]) RayGeneration(position, forward, right, up core.Vec3) (FrameStats, error) {
	if err := rt.shaders.Validate(); err != nil {
		return FrameStats{}, err
	}
	if rt.target == nil {
		return FrameStats{}, ErrNoRenderTarget
	}
	if rt.width > rt.target.Width() || rt.height > rt.target.Height() {
		return FrameStats{}, fmt.Errorf("viewport %dx%d, target %dx%d: %w",
			rt.width, rt.height, rt.target.Width(), rt.target.Height(), ErrViewportMismatch)
	}

	startTime := time.Now()

	shade := func(x, y int, random *rand.Rand) bool {
		px, py := float64(x), float64(y)
		if rt.config.Jitter > 0 {
			px += random.NormFloat64() * rt.config.Jitter
			py += random.NormFloat64() * rt.config.Jitter
		}

		payload := rt.Trace(rt.PrimaryRay(px, py, position, forward, right, up), rt.config.Depth)

		rt.target.Set(x, y, rt.target.FromColor(payload.Color))
		return payload.IsHit()
	}

	pool := NewWorkerPool(min(rt.config.workerCount(), rt.height), rt.config.Seed, shade)
	pool.Start()
	defer pool.Stop()

	rt.logger.Infof("Rendering %dx%d frame (using %d workers)", rt.width, rt.height, pool.GetNumWorkers())

	stats := FrameStats{
		Width:   rt.width,
		Height:  rt.height,
		Workers: pool.GetNumWorkers(),
		Volumes: len(rt.volumes),
	}
	for x := 0; x < rt.width; x++ {
		column := pool.RenderColumn(x, rt.height)
		stats.Pixels += column.Pixels
		stats.Hits += column.Hits
		rt.logger.Debugf("Column %d/%d done (%d hits)", x+1, rt.width, column.Hits)
	}
	stats.RenderTime = time.Since(startTime)

	rt.logger.Infof("Frame completed in %v (%d/%d pixels hit)", stats.RenderTime, stats.Hits, stats.Pixels)
	return stats, nil
}

// PrimaryRay returns the ray RayGeneration casts through pixel (x, y) of the
// viewport. Only u is aspect corrected, which keeps the vertical field of
// view fixed.
func (rt *Raytracer[V, P]) PrimaryRay(x, y float64, position, forward, right, up core.Vec3) core.Ray {
	aspect := float64(rt.width) / float64(rt.height)
	u := toNDC(x, rt.width) * aspect
	v := toNDC(y, rt.height)

	direction := forward.Add(right.Multiply(u)).Subtract(up.Multiply(v))
	return core.NewRay(position, direction)
}

// toNDC maps pixel coordinate p in [0, n-1] to [-1, 1]. A single-pixel axis
// maps to 0.
func toNDC(p float64, n int) float64 {
	if n <= 1 {
		return 0
	}
	return 2.0*p/float64(n-1) - 1.0
}
