package main

import (
	"bytes"

	"github.com/df07/go-raytracer-core/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

const defaultSceneDir = "scenes"

// List the built-in scenes and the obj models found in a directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	dir := defaultSceneDir
	if ctx.NArg() > 0 {
		dir = ctx.Args().First()
	}

	scenes, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"ID", "Name", "Type", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.ID, info.Name, info.Type, info.Description})
	}
	table.Render()

	logger.Noticef("found %d scene(s)\n%s", len(scenes), buf.String())
	return nil
}
