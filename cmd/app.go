// Package cmd implements the pathtracer command line.
package cmd

import (
	"github.com/horenderer/pathtracer/pkg/sampler"
	"github.com/urfave/cli"
)

// NewApp builds the command line application
func NewApp() *cli.App {
	// The default version flag claims -v, which is the verbosity switch here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render built-in scenes with a CPU path tracer"
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
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene",
			Description: `
Render one of the built-in scenes and write the tone mapped frame to a PNG
or 16-bit TIFF file, chosen by the output extension.

With --passes greater than one the frame is refined progressively and the
statistics of every pass are reported.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "two-spheres",
					Usage: "built-in scene id (see the scenes command)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width; 0 keeps the scene default",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel; 0 keeps the scene default",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum path depth; 0 keeps the scene default",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers; 0 uses every CPU",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "edge length of a render tile in pixels",
				},
				cli.IntFlag{
					Name:  "passes",
					Value: 1,
					Usage: "number of progressive passes",
				},
				cli.StringFlag{
					Name:  "filter",
					Value: sampler.FilterTent.String(),
					Usage: "pixel filter: uniform, gaussian or tent",
				},
				cli.UintFlag{
					Name:  "seed",
					Usage: "sampler seed",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 1.0,
					Usage: "exposure multiplier applied before tone mapping",
				},
				cli.StringFlag{
					Name:  "ground-texture",
					Usage: "image file for textured grounds",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: ListScenes,
		},
	}
	return app
}
