package main

import (
	"os"

	"github.com/urfave/cli"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "raytrace"
	app.Usage = "render triangle scenes with a flat bounding volume raytracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}

	cameraFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Usage: "frame width (0 keeps the scene default)",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "frame height (0 keeps the scene default)",
		},
		cli.StringFlag{
			Name:  "position, p",
			Usage: "camera position as x,y,z",
		},
		cli.Float64Flag{
			Name:  "theta",
			Usage: "camera yaw in degrees, 0 looks down +Z",
		},
		cli.Float64Flag{
			Name:  "phi",
			Usage: "camera pitch in degrees",
		},
		cli.Float64Flag{
			Name:  "fov",
			Usage: "vertical angle of view in degrees",
		},
		cli.BoolFlag{
			Name:  "shadows",
			Usage: "trace shadow rays towards the scene lights",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Load a built-in scene or a wavefront obj file, build the acceleration
structure and trace one primary ray per pixel. The frame is written as
png, bmp or tiff depending on the extension of the output file.`,
			ArgsUsage: "[scene id or model.obj]",
			Flags: append(cameraFlags,
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of parallel workers (0 uses every CPU)",
				},
				cli.Float64Flag{
					Name:  "jitter",
					Usage: "standard deviation of the per pixel jitter in pixels",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "base seed for the per worker random generators",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: 1.0,
					Usage: "gamma applied before quantizing colors",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			),
			Action: RenderFrame,
		},
		{
			Name:      "list",
			Usage:     "list built-in scenes and the obj models in a directory",
			ArgsUsage: "[directory]",
			Action:    ListScenes,
		},
		{
			Name:  "inspect",
			Usage: "print the acceleration structure of a scene and trace a single pixel",
			Description: `
Build the acceleration structure of a scene and display one row per
bounding volume. With --x and --y the primary ray through that pixel is
traced and its payload displayed.`,
			ArgsUsage: "[scene id or model.obj]",
			Flags: append(cameraFlags,
				cli.IntFlag{
					Name:  "x",
					Value: -1,
					Usage: "pixel column to trace",
				},
				cli.IntFlag{
					Name:  "y",
					Value: -1,
					Usage: "pixel row to trace",
				},
			),
			Action: InspectScene,
		},
	}
	return app
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
