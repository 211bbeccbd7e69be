package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/editor"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/logger"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/synchronizer"
)

var (
	// ErrNoWindow is returned by Run when the engine was built without a window.
	ErrNoWindow = errors.New("engine: no window")

	// ErrNoSession is returned by Step when the engine was built without a session.
	ErrNoSession = errors.New("engine: no session")
)

// Window is the platform window driving the frame loop, normally a window.Window.
type Window interface {
	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetKeyRepeatCallback(callback func(keyCode uint32))
	SetTitle(title string)
	ProcessMessages()
	Close() error
	Width() int
	Height() int
}

// FrameSource is the per-frame scene update, normally a session.Session.
type FrameSource interface {
	Frame() (synchronizer.Stats, error)
	Parameters() *params.Parameters
	Sun() light.Sun
}

// FrameRenderer draws a frame, normally a renderer.Renderer.
type FrameRenderer interface {
	ApplyView(v params.ViewOptions)
	UpdateLighting(sun light.Sun) error
	BeginFrame() error
	EndFrame()
	Present()
	Resize(width, height int)
}

// engine implements the Engine interface.
// Everything runs on the window thread, driven by the window's update callback.
type engine struct {
	window   Window
	session  FrameSource
	renderer FrameRenderer
	editor   editor.Editor

	panelOut io.Writer
	logger   *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	frames        uint64
	skippedFrames uint64

	quit      atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Engine is the main entry point of the sandbox. It runs the single-threaded frame loop:
// editor, scene synchronization, view application and drawing, strictly in that order.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - Window: the window instance, or nil
	Window() Window

	// Step runs one frame:
	//   1. flush the editor panel if parameters changed
	//   2. synchronize the scene with the parameter state
	//   3. upload the sun and apply the view options
	//   4. begin, end and present the frame
	// A frame whose surface cannot be acquired is skipped without error.
	//
	// Returns:
	//   - synchronizer.Stats: what the synchronization did
	//   - error: ErrNoSession or the session's error
	Step() (synchronizer.Stats, error)

	// Frames returns the number of frames presented.
	Frames() uint64

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run wires window input to the editor and runs the frame loop until the window
	// closes or Quit is called.
	//
	// Returns:
	//   - error: ErrNoWindow, the first frame error, or the window close error
	Run() error

	// Quit stops the frame loop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		panelOut: os.Stdout,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Named("engine")
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger.Named("profiler")))
	}

	if e.window != nil && e.renderer != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.renderer.Resize(width, height)
		})
	}
	return e
}

func (e *engine) Window() Window {
	return e.window
}

func (e *engine) Step() (synchronizer.Stats, error) {
	if e.session == nil {
		return synchronizer.Stats{}, ErrNoSession
	}
	start := time.Now()

	if e.editor != nil && e.editor.Flush(e.panelOut) && e.window != nil {
		p := e.session.Parameters()
		e.window.SetTitle(fmt.Sprintf("Material Sandbox | %s | %s", p.MaterialModel, p.Blending))
	}

	stats, err := e.session.Frame()
	if err != nil {
		return stats, err
	}

	if e.renderer != nil {
		if sun := e.session.Sun(); sun != nil {
			if err := e.renderer.UpdateLighting(sun); err != nil {
				e.logger.Warn("sun upload failed", zap.Error(err))
			}
		}
		e.renderer.ApplyView(e.session.Parameters().View())

		if err := e.renderer.BeginFrame(); err != nil {
			e.skippedFrames++
			e.logger.Debug("frame skipped", zap.Error(err), zap.Uint64("skipped", e.skippedFrames))
		} else {
			e.renderer.EndFrame()
			e.renderer.Present()
			e.frames++
		}
	} else {
		e.frames++
	}

	if e.profilingEnabled {
		e.profiler.Tick(stats)
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	return stats, nil
}

func (e *engine) Frames() uint64 {
	return e.frames
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	if e.editor != nil {
		e.window.SetKeyDownCallback(func(keyCode uint32) {
			e.editor.KeyDown(keyCode)
		})
		e.window.SetKeyRepeatCallback(func(keyCode uint32) {
			e.editor.KeyRepeat(keyCode)
		})
		e.window.SetKeyUpCallback(e.editor.KeyUp)
	}

	var runErr error
	e.window.SetUpdateCallback(func() {
		if e.quit.Load() {
			e.closeWindow()
			return
		}
		if _, err := e.Step(); err != nil {
			runErr = err
			e.logger.Error("frame failed", zap.Error(err))
			e.Quit()
		}
	})

	e.logger.Info("frame loop started", zap.Int("width", e.window.Width()), zap.Int("height", e.window.Height()))
	e.window.ProcessMessages()
	e.closeWindow()
	e.logger.Info("frame loop stopped", zap.Uint64("frames", e.frames), zap.Uint64("skipped", e.skippedFrames))

	if runErr != nil {
		return runErr
	}
	return e.closeErr
}

// Quit stops the frame loop. Safe to call multiple times.
func (e *engine) Quit() {
	e.quit.Store(true)
}

// closeWindow closes the window exactly once.
func (e *engine) closeWindow() {
	e.closeOnce.Do(func() {
		e.closeErr = e.window.Close()
	})
}
