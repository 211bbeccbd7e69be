package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/editor"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/synchronizer"
)

type fakeWindow struct {
	update  func()
	resize  func(width, height int)
	keyDown func(keyCode uint32)
	keyUp   func(keyCode uint32)
	repeat  func(keyCode uint32)

	title    string
	running  bool
	maxTicks int
	ticks    int
	closes   int
	onTick   func(tick int)
}

func newFakeWindow(maxTicks int) *fakeWindow {
	return &fakeWindow{running: true, maxTicks: maxTicks}
}

func (w *fakeWindow) SetUpdateCallback(callback func()) { w.update = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.resize = callback }
func (w *fakeWindow) SetKeyDownCallback(callback func(keyCode uint32)) { w.keyDown = callback }
func (w *fakeWindow) SetKeyUpCallback(callback func(keyCode uint32)) { w.keyUp = callback }
func (w *fakeWindow) SetKeyRepeatCallback(callback func(keyCode uint32)) { w.repeat = callback }
func (w *fakeWindow) SetTitle(title string) { w.title = title }
func (w *fakeWindow) Width() int { return 1280 }
func (w *fakeWindow) Height() int { return 720 }

func (w *fakeWindow) ProcessMessages() {
	for w.running && w.ticks < w.maxTicks {
		if w.onTick != nil {
			w.onTick(w.ticks)
		}
		w.ticks++
		if w.update != nil {
			w.update()
		}
	}
}

func (w *fakeWindow) Close() error {
	w.closes++
	w.running = false
	return nil
}

type fakeSource struct {
	p      *params.Parameters
	sun    light.Sun
	err    error
	calls  *[]string
	frames int
}

func (s *fakeSource) Frame() (synchronizer.Stats, error) {
	*s.calls = append(*s.calls, "frame")
	s.frames++
	if s.err != nil {
		return synchronizer.Stats{}, s.err
	}
	return synchronizer.Stats{Bindings: 2}, nil
}

func (s *fakeSource) Parameters() *params.Parameters {
	return s.p
}

func (s *fakeSource) Sun() light.Sun {
	return s.sun
}

type fakeRenderer struct {
	calls    *[]string
	view     params.ViewOptions
	beginErr error
	width    int
	height   int
}

func (r *fakeRenderer) ApplyView(v params.ViewOptions) {
	*r.calls = append(*r.calls, "view")
	r.view = v
}

func (r *fakeRenderer) UpdateLighting(light.Sun) error {
	*r.calls = append(*r.calls, "lighting")
	return nil
}

func (r *fakeRenderer) BeginFrame() error {
	*r.calls = append(*r.calls, "begin")
	return r.beginErr
}

func (r *fakeRenderer) EndFrame() { *r.calls = append(*r.calls, "end") }
func (r *fakeRenderer) Present() { *r.calls = append(*r.calls, "present") }

func (r *fakeRenderer) Resize(width, height int) {
	r.width, r.height = width, height
}

type fixture struct {
	calls    []string
	params   *params.Parameters
	source   *fakeSource
	renderer *fakeRenderer
	window   *fakeWindow
	panel    *bytes.Buffer
	editor   editor.Editor
}

func newFixture(ticks int) *fixture {
	f := &fixture{params: params.New(), window: newFakeWindow(ticks), panel: &bytes.Buffer{}}
	f.source = &fakeSource{p: f.params, sun: light.NewSun(entity.Entity(1)), calls: &f.calls}
	f.renderer = &fakeRenderer{calls: &f.calls}
	f.editor = editor.NewEditor(f.params)
	return f
}

func (f *fixture) engine(opts ...EngineBuilderOption) Engine {
	base := []EngineBuilderOption{
		WithWindow(f.window),
		WithSession(f.source),
		WithRenderer(f.renderer),
		WithEditor(f.editor),
		WithPanelOutput(f.panel),
		WithLogger(zap.NewNop()),
	}
	return NewEngine(append(base, opts...)...)
}

func TestStepOrder(t *testing.T) {
	f := newFixture(0)
	e := f.engine()

	stats, err := e.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if stats.Bindings != 2 {
		t.Fatalf("stats = %+v", stats)
	}

	want := "frame lighting view begin end present"
	if got := strings.Join(f.calls, " "); got != want {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	if e.Frames() != 1 {
		t.Fatalf("frames = %d, want 1", e.Frames())
	}
	if f.panel.Len() == 0 {
		t.Fatal("first step should print the panel")
	}
	if !strings.Contains(f.window.title, f.params.MaterialModel.String()) {
		t.Fatalf("title = %q", f.window.title)
	}
}

func TestStepFlushesOnlyWhenDirty(t *testing.T) {
	f := newFixture(0)
	e := f.engine()

	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	printed := f.panel.Len()
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	if f.panel.Len() != printed {
		t.Fatal("clean editor should not print again")
	}

	f.editor.KeyDown(common.KeyM)
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	if f.panel.Len() == printed {
		t.Fatal("edit should print the panel")
	}
}

func TestStepAppliesEditedView(t *testing.T) {
	f := newFixture(0)
	e := f.engine()

	f.params.FXAA = false
	f.editor.KeyDown(common.KeyF)
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	if f.renderer.view != f.params.View() {
		t.Fatalf("view = %+v, want %+v", f.renderer.view, f.params.View())
	}
	if f.renderer.view.AntiAliasing != params.AntiAliasingFXAA {
		t.Fatal("FXAA toggle should reach the renderer in the same frame")
	}
}

func TestStepErrors(t *testing.T) {
	e := NewEngine(WithLogger(zap.NewNop()))
	if _, err := e.Step(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}

	f := newFixture(0)
	boom := errors.New("boom")
	f.source.err = boom
	e = f.engine()
	if _, err := e.Step(); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want session error", err)
	}
	if strings.Contains(strings.Join(f.calls, " "), "begin") {
		t.Fatal("failed synchronization must not draw")
	}
}

func TestStepSkipsUnacquiredFrame(t *testing.T) {
	f := newFixture(0)
	f.renderer.beginErr = errors.New("surface lost")
	e := f.engine()

	if _, err := e.Step(); err != nil {
		t.Fatalf("skipped frame should not fail: %v", err)
	}
	if e.Frames() != 0 {
		t.Fatalf("frames = %d, want 0", e.Frames())
	}
	if got := strings.Join(f.calls, " "); strings.Contains(got, "present") {
		t.Fatalf("calls = %q", got)
	}
}

func TestResizeReachesRenderer(t *testing.T) {
	f := newFixture(0)
	f.engine()
	f.window.resize(640, 480)
	if f.renderer.width != 640 || f.renderer.height != 480 {
		t.Fatalf("renderer size = %dx%d", f.renderer.width, f.renderer.height)
	}
}

func TestRun(t *testing.T) {
	t.Run("no window", func(t *testing.T) {
		e := NewEngine(WithLogger(zap.NewNop()))
		if err := e.Run(); !errors.Is(err, ErrNoWindow) {
			t.Fatalf("err = %v, want ErrNoWindow", err)
		}
	})

	t.Run("runs until the window stops", func(t *testing.T) {
		f := newFixture(5)
		e := f.engine()
		if err := e.Run(); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if e.Frames() != 5 {
			t.Fatalf("frames = %d, want 5", e.Frames())
		}
		if f.window.closes != 1 {
			t.Fatalf("closes = %d, want 1", f.window.closes)
		}
	})

	t.Run("quit stops the loop", func(t *testing.T) {
		f := newFixture(100)
		var e Engine
		f.window.onTick = func(tick int) {
			if tick == 3 {
				e.Quit()
				e.Quit()
			}
		}
		e = f.engine()
		if err := e.Run(); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if e.Frames() != 3 {
			t.Fatalf("frames = %d, want 3", e.Frames())
		}
		if f.window.closes != 1 {
			t.Fatalf("closes = %d, want 1", f.window.closes)
		}
	})

	t.Run("frame error stops the loop", func(t *testing.T) {
		f := newFixture(100)
		boom := errors.New("boom")
		f.source.err = boom
		e := f.engine()
		if err := e.Run(); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want frame error", err)
		}
		if f.source.frames != 1 {
			t.Fatalf("session frames = %d, want 1", f.source.frames)
		}
	})

	t.Run("keys reach the editor", func(t *testing.T) {
		f := newFixture(1)
		e := f.engine()
		before := f.params.MaterialModel
		f.window.onTick = func(int) {
			f.window.keyDown(common.KeyM)
			f.window.keyUp(common.KeyM)
		}
		if err := e.Run(); err != nil {
			t.Fatal(err)
		}
		if f.params.MaterialModel != before.Next() {
			t.Fatalf("model = %v, want %v", f.params.MaterialModel, before.Next())
		}
	})

	t.Run("held keys repeat only nudges", func(t *testing.T) {
		f := newFixture(1)
		e := f.engine()
		model := f.params.MaterialModel
		f.window.onTick = func(int) {
			f.window.keyDown(common.KeyM)
			f.window.repeat(common.KeyM)
			f.window.repeat(common.KeyM)
			f.window.keyUp(common.KeyM)

			f.window.keyDown(common.KeyEqual)
			f.window.repeat(common.KeyEqual)
			f.window.keyUp(common.KeyEqual)
		}
		if err := e.Run(); err != nil {
			t.Fatal(err)
		}
		if f.params.MaterialModel != model.Next() {
			t.Fatalf("model = %v, want a single step to %v", f.params.MaterialModel, model.Next())
		}
		if f.params.Metallic < 0.09 || f.params.Metallic > 0.11 {
			t.Fatalf("metallic = %v, want two fine steps", f.params.Metallic)
		}
	})
}
