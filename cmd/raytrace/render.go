package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/loaders"
	"github.com/df07/go-raytracer-core/pkg/renderer"
	"github.com/df07/go-raytracer-core/pkg/scene"
	"github.com/urfave/cli"
)

const defaultScene = "cornell-box"

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := loadScene(ctx)
	if err != nil {
		return err
	}

	config := renderer.DefaultConfig()
	config.Workers = ctx.Int("workers")
	config.Jitter = ctx.Float64("jitter")
	config.Seed = ctx.Int64("seed")

	target := renderer.NewImageTarget(s.Camera.Width, s.Camera.Height)
	target.SetGamma(ctx.Float64("gamma"))

	rt := renderer.NewRaytracer[geometry.Vertex, color.RGBA](config, logger)
	rt.SetRenderTarget(target)
	if err := rt.ClearRenderTarget(color.RGBA{A: 255}); err != nil {
		return err
	}

	stats, err := scene.Render(s, rt, scene.ShaderOptions{Shadows: ctx.Bool("shadows")}, logger)
	if err != nil {
		return err
	}
	logger.Noticef("frame statistics\n%s", stats.Table())

	out := ctx.String("out")
	if err := loaders.SaveImage(out, target.Image()); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", out)
	return nil
}

// loadScene resolves the scene argument and applies the camera flags to it
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	id := defaultScene
	if ctx.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one scene argument, got %d", ctx.NArg())
	}
	if ctx.NArg() == 1 {
		id = ctx.Args().First()
	}

	s, err := scene.Load(id)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded scene %s: %d shapes, %d triangles, %d lights",
		s.Name, len(s.Shapes), s.TriangleCount(), len(s.Lights))

	if w := ctx.Int("width"); w > 0 {
		s.Camera.Width = w
	}
	if h := ctx.Int("height"); h > 0 {
		s.Camera.Height = h
	}
	if ctx.IsSet("position") {
		position, err := parseVec3(ctx.String("position"))
		if err != nil {
			return nil, fmt.Errorf("invalid camera position: %w", err)
		}
		s.Camera.Position = position
	}
	if ctx.IsSet("theta") {
		s.Camera.Theta = ctx.Float64("theta")
	}
	if ctx.IsSet("phi") {
		s.Camera.Phi = ctx.Float64("phi")
	}
	if ctx.IsSet("fov") {
		s.Camera.VFov = ctx.Float64("fov")
	}
	return s, nil
}

// parseVec3 parses a vector written as "x,y,z"
func parseVec3(value string) (core.Vec3, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z; got %q", value)
	}

	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid component %q", part)
		}
		v[i] = f
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
