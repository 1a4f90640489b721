package scene

import (
	"fmt"

	"github.com/df07/go-raytracer-core/pkg/camera"
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// Render loads the scene into rt, installs the default shaders and renders
// one frame through the scene camera. The render target of rt must already
// be set and at least as large as the camera frame.
func Render[P any](s *Scene, rt *renderer.Raytracer[geometry.Vertex, P], options ShaderOptions, logger core.Logger) (renderer.FrameStats, error) {
	if err := rt.SetViewport(s.Camera.Width, s.Camera.Height); err != nil {
		return renderer.FrameStats{}, err
	}

	rt.SetPerShapeVertexBuffer(s.Shapes)
	if err := rt.BuildAccelerationStructure(); err != nil {
		return renderer.FrameStats{}, fmt.Errorf("scene %s: %w", s.Name, err)
	}

	lighting, err := NewLighting(s.Lights, rt.AccelerationStructure(), options, logger)
	if err != nil {
		return renderer.FrameStats{}, err
	}
	if err := rt.SetShaders(lighting.Shaders()); err != nil {
		return renderer.FrameStats{}, err
	}

	cam := camera.NewCamera(s.Camera)
	return rt.RayGeneration(cam.Position(), cam.Forward(), cam.Right(), cam.Up())
}
