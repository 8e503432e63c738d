package main

import (
	"os"

	"github.com/FluffyLoaf254/swirlix/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "swirlix"
	app.Usage = "sculpt and render sparse voxel octree models"
	app.Version = "0.0.1"
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
			Name:  "carve",
			Usage: "apply brush strokes to a sculpt",
			Description: `
Apply one or more brush strokes to a sculpt archive. If the sculpt file does
not exist yet a fresh sculpt is created with the requested resolution.

Each stroke stamps the selected brush tip at a point inside the unit cube,
filling the covered voxels with the selected material or, with --remove,
carving them out.`,
			ArgsUsage: "sculpt_file.swx",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "res",
					Value: 256,
					Usage: "resolution for newly created sculpts (voxels per axis, power of two)",
				},
				cli.StringFlag{
					Name:  "brush",
					Value: "round",
					Usage: "brush tip to stamp (round or cube)",
				},
				cli.Float64Flag{
					Name:  "size",
					Value: 0.1,
					Usage: "brush tip size in volume units",
				},
				cli.StringSliceFlag{
					Name:  "at",
					Value: &cli.StringSlice{},
					Usage: "stroke position as x,y,z inside the unit cube; repeatable",
				},
				cli.StringFlag{
					Name:  "material",
					Usage: "stroke material as r,g,b[,a[,roughness[,metallic]]]",
				},
				cli.BoolFlag{
					Name:  "remove",
					Usage: "carve matter out instead of adding it",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write the result to this file instead of modifying in place",
				},
			},
			Action: cmd.Carve,
		},
		{
			Name:      "info",
			Usage:     "print sculpt buffer statistics",
			ArgsUsage: "sculpt_file.swx",
			Action:    cmd.Info,
		},
		{
			Name:        "render",
			Usage:       "render a still frame of a sculpt",
			Description: `Render a single frame of a sculpt archive and save it as a PNG image.`,
			ArgsUsage:   "sculpt_file.swx",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "tracers",
					Value: 0,
					Usage: "number of cpu tracers (defaults to the number of cores)",
				},
				cli.StringFlag{
					Name:  "scheduler",
					Value: "perfect",
					Usage: "block scheduler to balance tracer workloads (naive or perfect)",
				},
				cli.Float64Flag{
					Name:  "fov",
					Usage: "override the camera field of view (degrees)",
				},
				cli.Float64Flag{
					Name:  "yaw",
					Usage: "orbit the camera around the sculpt (radians)",
				},
				cli.Float64Flag{
					Name:  "pitch",
					Usage: "tilt the camera around the sculpt (radians)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
	}

	app.Run(os.Args)
}
