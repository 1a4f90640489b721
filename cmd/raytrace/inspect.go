package main

import (
	"bytes"
	"fmt"

	"github.com/df07/go-raytracer-core/pkg/camera"
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/renderer"
	"github.com/df07/go-raytracer-core/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display the acceleration structure of a scene and optionally trace one pixel.
func InspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := loadScene(ctx)
	if err != nil {
		return err
	}

	rt := renderer.NewRaytracer[geometry.Vertex, core.Vec3](renderer.DefaultConfig(), logger)
	if err := rt.SetViewport(s.Camera.Width, s.Camera.Height); err != nil {
		return err
	}
	rt.SetPerShapeVertexBuffer(s.Shapes)
	if err := rt.BuildAccelerationStructure(); err != nil {
		return err
	}
	logger.Noticef("acceleration structure\n%s", volumeTable(rt.AccelerationStructure()))

	x, y := ctx.Int("x"), ctx.Int("y")
	if x < 0 && y < 0 {
		return nil
	}
	if x < 0 || y < 0 || x >= s.Camera.Width || y >= s.Camera.Height {
		return fmt.Errorf("pixel (%d, %d) outside of %dx%d frame", x, y, s.Camera.Width, s.Camera.Height)
	}

	lighting, err := scene.NewLighting(s.Lights, rt.AccelerationStructure(), scene.ShaderOptions{Shadows: ctx.Bool("shadows")}, logger)
	if err != nil {
		return err
	}
	if err := rt.SetShaders(lighting.Shaders()); err != nil {
		return err
	}

	cam := camera.NewCamera(s.Camera)
	ray := rt.PrimaryRay(float64(x), float64(y), cam.Position(), cam.Forward(), cam.Right(), cam.Up())
	payload := rt.Trace(ray, renderer.DefaultConfig().Depth)
	logger.Noticef("pixel (%d, %d)\n%s", x, y, payloadTable(ray, payload))
	return nil
}

func volumeTable(volumes []geometry.Volume) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Volume", "Triangles", "Min", "Max", "Size"})

	total := 0
	for i, volume := range volumes {
		count := len(volume.Triangles())
		total += count

		minCorner, maxCorner, size := "-", "-", "-"
		if box, ok := volume.(*geometry.Box); ok {
			bounds := box.Bounds()
			minCorner = bounds.Min.String()
			maxCorner = bounds.Max.String()
			size = bounds.Size().String()
		}
		table.Append([]string{fmt.Sprintf("%d", i), fmt.Sprintf("%d", count), minCorner, maxCorner, size})
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", total), "", "", ""})

	table.Render()
	return buf.String()
}

func payloadTable(ray core.Ray, payload renderer.Payload) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"Origin", ray.Origin.String()})
	table.Append([]string{"Direction", ray.Direction.String()})
	table.Append([]string{"Hit", fmt.Sprintf("%t", payload.IsHit())})
	if payload.IsHit() {
		table.Append([]string{"T", fmt.Sprintf("%.6f", payload.T)})
		table.Append([]string{"Point", ray.At(payload.T).String()})
		table.Append([]string{"Barycentric", payload.Bary.String()})
	}
	table.Append([]string{"Color", payload.Color.String()})

	table.Render()
	return buf.String()
}
