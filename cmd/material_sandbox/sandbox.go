package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/engine"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/editor"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/logger"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/session"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/window"
)

var errNoMeshes = errors.New("missing mesh file argument")

// initialParameters builds the starting parameter state from the command line.
func initialParameters(ctx *cli.Context) (*params.Parameters, error) {
	p := params.New()

	model, err := params.ParseMaterialModel(ctx.String("model"))
	if err != nil {
		return nil, err
	}
	blending, err := params.ParseBlending(ctx.String("blending"))
	if err != nil {
		return nil, err
	}
	p.MaterialModel = model
	p.Blending = blending
	p.Clamp()
	return p, p.Validate()
}

// meshPaths returns the mesh arguments, failing on the first one that does not exist.
func meshPaths(ctx *cli.Context) ([]string, error) {
	if ctx.NArg() == 0 {
		return nil, errNoMeshes
	}
	paths := []string(ctx.Args())
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", path, err)
		}
	}
	return paths, nil
}

// Open the sandbox window for the given meshes.
func runSandbox(ctx *cli.Context) error {
	log, err := logger.New(ctx.Bool("verbose") || ctx.GlobalBool("verbose"))
	if err != nil {
		return err
	}
	defer log.Sync()
	logger.Set(log)

	paths, err := meshPaths(ctx)
	if err != nil {
		return err
	}
	p, err := initialParameters(ctx)
	if err != nil {
		return err
	}

	win, err := window.NewWindow(
		window.WithTitle("Material Sandbox"),
		window.WithSize(ctx.Int("width"), ctx.Int("height")),
	)
	if err != nil {
		return err
	}

	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithLogger(log.Named("renderer")),
	)
	defer r.Release()

	s := session.NewSession(
		session.WithMeshes(paths...),
		session.WithScale(float32(ctx.Float64("scale"))),
		session.WithShadowPlane(ctx.Bool("shadow-plane")),
		session.WithIndirectLight(ctx.String("ibl")),
		session.WithUploader(r),
		session.WithParameters(p),
		session.WithLogger(log.Named("session")),
	)

	setupCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := s.Setup(setupCtx); err != nil {
		_ = win.Close()
		return err
	}
	defer func() {
		released, err := s.Teardown()
		if err != nil {
			log.Warn("teardown failed", zap.Error(err))
			return
		}
		log.Debug("session released", zap.Strings("resources", released))
	}()

	ed := editor.NewEditor(p, editor.WithLogger(log.Named("editor")))
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithSession(s),
		engine.WithRenderer(r),
		engine.WithEditor(ed),
		engine.WithProfiling(ctx.Bool("profile")),
		engine.WithRenderFrameLimit(ctx.Float64("fps")),
		engine.WithLogger(log.Named("engine")),
	)

	editor.RenderBindings(os.Stdout, ed.Bindings())
	return eng.Run()
}

// Print the field table and the default key bindings.
func listFields(_ *cli.Context) error {
	editor.RenderFieldTable(os.Stdout)
	fmt.Fprintln(os.Stdout)
	editor.RenderBindings(os.Stdout, editor.NewEditor(params.New()).Bindings())
	return nil
}
