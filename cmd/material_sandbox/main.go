package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

var sandboxFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "scale, s",
		Value: 1.0,
		Usage: "uniform scale applied to the loaded meshes",
	},
	cli.BoolFlag{
		Name:  "shadow-plane, p",
		Usage: "add a ground plane that only receives shadows",
	},
	cli.StringFlag{
		Name:  "ibl, i",
		Usage: "image based lighting source",
	},
	cli.StringFlag{
		Name:  "model",
		Value: "lit",
		Usage: "initial material model (unlit, lit, subsurface, cloth)",
	},
	cli.StringFlag{
		Name:  "blending",
		Value: "opaque",
		Usage: "initial blending mode (opaque, transparent, fade)",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 1280,
		Usage: "window width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 720,
		Usage: "window height",
	},
	cli.Float64Flag{
		Name:  "fps",
		Usage: "frame rate cap, 0 for uncapped",
	},
	cli.BoolFlag{
		Name:  "profile",
		Usage: "log frame and synchronization statistics every second",
	},
	cli.BoolFlag{
		Name:  "verbose, v",
		Usage: "enable debug logging",
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "material_sandbox"
	app.Usage = "inspect glTF meshes under an interactively edited material"
	app.Version = "0.1.0"
	app.ArgsUsage = "mesh1.gltf mesh2.glb ..."
	app.Flags = sandboxFlags
	app.Action = runSandbox
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open the sandbox window",
			Description: `
Load every mesh argument, place it in front of the camera under a single
editable material and open the sandbox window. Keyboard bindings edit the
material, the sun and the view; the parameter panel is printed to stdout
whenever it changes.`,
			ArgsUsage: "mesh1.gltf mesh2.glb ...",
			Flags:     sandboxFlags,
			Action:    runSandbox,
		},
		{
			Name:   "fields",
			Usage:  "list the material fields each model and blending mode writes, then the key bindings",
			Action: listFields,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
