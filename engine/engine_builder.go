package engine

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/editor"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default one-second profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a pre-configured window, normally a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithSession sets the scene the engine synchronizes every frame.
//
// Parameters:
//   - s: the frame source, normally a set up session.Session
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSession(s FrameSource) EngineBuilderOption {
	return func(e *engine) {
		e.session = s
	}
}

// WithRenderer sets the renderer that draws each frame.
//
// Parameters:
//   - r: the frame renderer, normally a renderer.Renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r FrameRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithEditor sets the editor that receives key input and prints the panel.
//
// Parameters:
//   - ed: the editor
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithEditor(ed editor.Editor) EngineBuilderOption {
	return func(e *engine) {
		e.editor = ed
	}
}

// WithPanelOutput sets where the editor panel is printed. Defaults to stdout.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPanelOutput(w io.Writer) EngineBuilderOption {
	return func(e *engine) {
		e.panelOut = w
	}
}

// WithLogger sets the engine logger.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(l *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = l
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
