// Package editor maps keyboard input onto the parameter state and prints the fields
// relevant to the current material as a table.
package editor

import (
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
)

const (
	fineStep   float32 = 0.05
	coarseStep float32 = 0.25

	intensityStep float32 = 10000
	rotationStep  float32 = math.Pi / 12
)

// Binding is one key of the editor. Repeat bindings keep stepping while the key is held;
// the rest fire once per press.
type Binding struct {
	Key    uint32
	Label  string
	Help   string
	Repeat bool

	apply   func(p *params.Parameters, step float32)
	enabled func(p *params.Parameters) bool
}

// editor is the implementation of the Editor interface.
type editor struct {
	params   *params.Parameters
	panel    *Panel
	bindings map[uint32]Binding
	order    []uint32
	shift    bool
	dirty    bool
	logger   *zap.Logger
}

// Editor is the input side of the sandbox UI. Every key press that maps to a binding
// mutates the parameter state, re-clamps it and marks the panel dirty.
type Editor interface {
	// KeyDown applies the binding for keyCode, if any.
	//
	// Parameters:
	//   - keyCode: the key code (see common.Key*)
	//
	// Returns:
	//   - bool: true if a binding was applied
	KeyDown(keyCode uint32) bool

	// KeyRepeat re-applies a held key. Only Repeat bindings respond; toggles and cycles
	// wait for the next press.
	//
	// Parameters:
	//   - keyCode: the key code
	//
	// Returns:
	//   - bool: true if a binding was applied
	KeyRepeat(keyCode uint32) bool

	// KeyUp tracks modifier release.
	//
	// Parameters:
	//   - keyCode: the key code
	KeyUp(keyCode uint32)

	// Bindings returns the key bindings in display order.
	//
	// Returns:
	//   - []Binding: the bindings
	Bindings() []Binding

	// Dirty reports whether the parameters changed since the last Flush.
	Dirty() bool

	// Flush renders the panel to w when dirty and clears the flag.
	//
	// Parameters:
	//   - w: the destination
	//
	// Returns:
	//   - bool: true if the panel was rendered
	Flush(w io.Writer) bool

	// Panel returns the parameter panel.
	Panel() *Panel

	// Parameters returns the edited parameter state.
	Parameters() *params.Parameters
}

var _ Editor = &editor{}

// NewEditor creates an Editor over p. The panel starts dirty so the first Flush prints it.
//
// Parameters:
//   - p: the parameter state to edit
//   - options: variadic list of EditorBuilderOption functions
//
// Returns:
//   - Editor: the new editor
func NewEditor(p *params.Parameters, options ...EditorBuilderOption) Editor {
	e := &editor{
		params:   p,
		panel:    NewPanel(p),
		bindings: make(map[uint32]Binding),
		dirty:    true,
		logger:   zap.NewNop(),
	}
	for _, b := range defaultBindings() {
		e.bind(b)
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *editor) bind(b Binding) {
	if _, ok := e.bindings[b.Key]; !ok {
		e.order = append(e.order, b.Key)
	}
	e.bindings[b.Key] = b
}

func defaultBindings() []Binding {
	return []Binding{
		{Key: common.KeyM, Label: "M", Help: "next material model", apply: func(p *params.Parameters, _ float32) {
			p.MaterialModel = p.MaterialModel.Next()
		}},
		{Key: common.KeyB, Label: "B", Help: "next blending mode (lit only)", apply: func(p *params.Parameters, _ float32) {
			p.Blending = p.Blending.Next()
		}, enabled: func(p *params.Parameters) bool {
			return p.MaterialModel == params.MaterialModelLit
		}},
		{Key: common.KeyL, Label: "L", Help: "toggle sun light", apply: func(p *params.Parameters, _ float32) {
			p.LightEnabled = !p.LightEnabled
		}},
		{Key: common.KeyS, Label: "S", Help: "toggle cast shadows", apply: func(p *params.Parameters, _ float32) {
			p.CastShadows = !p.CastShadows
		}},
		{Key: common.KeyLeftBracket, Label: "[", Repeat: true, Help: "roughness down", apply: func(p *params.Parameters, step float32) {
			p.Roughness -= step
		}},
		{Key: common.KeyRightBracket, Label: "]", Repeat: true, Help: "roughness up", apply: func(p *params.Parameters, step float32) {
			p.Roughness += step
		}},
		{Key: common.KeyMinus, Label: "-", Repeat: true, Help: "metallic down", apply: func(p *params.Parameters, step float32) {
			p.Metallic -= step
		}},
		{Key: common.KeyEqual, Label: "=", Repeat: true, Help: "metallic up", apply: func(p *params.Parameters, step float32) {
			p.Metallic += step
		}},
		{Key: common.KeyC, Label: "C", Help: "clear coat up (wraps)", apply: func(p *params.Parameters, step float32) {
			p.ClearCoat += step
			if p.ClearCoat > 1+1e-4 {
				p.ClearCoat = 0
			}
		}},
		{Key: common.KeyUp, Label: "Up", Repeat: true, Help: "sun intensity up", apply: func(p *params.Parameters, _ float32) {
			p.LightIntensity += intensityStep
		}},
		{Key: common.KeyDown, Label: "Down", Repeat: true, Help: "sun intensity down", apply: func(p *params.Parameters, _ float32) {
			p.LightIntensity -= intensityStep
		}},
		{Key: common.KeyLeft, Label: "Left", Repeat: true, Help: "rotate environment left", apply: func(p *params.Parameters, _ float32) {
			p.IBLRotation -= rotationStep
		}},
		{Key: common.KeyRight, Label: "Right", Repeat: true, Help: "rotate environment right", apply: func(p *params.Parameters, _ float32) {
			p.IBLRotation += rotationStep
		}},
		{Key: common.KeyA, Label: "A", Help: "toggle MSAA", apply: func(p *params.Parameters, _ float32) {
			p.MSAA = !p.MSAA
		}},
		{Key: common.KeyF, Label: "F", Help: "toggle FXAA", apply: func(p *params.Parameters, _ float32) {
			p.FXAA = !p.FXAA
		}},
		{Key: common.KeyT, Label: "T", Help: "toggle tone mapping", apply: func(p *params.Parameters, _ float32) {
			p.ToneMapping = !p.ToneMapping
		}},
		{Key: common.KeyD, Label: "D", Help: "toggle dithering", apply: func(p *params.Parameters, _ float32) {
			p.Dithering = !p.Dithering
		}},
		{Key: common.KeyR, Label: "R", Help: "reset to defaults", apply: func(p *params.Parameters, _ float32) {
			*p = params.Defaults()
		}},
		{Key: common.KeySpace, Label: "Space", Help: "print the panel", apply: func(*params.Parameters, float32) {}},
	}
}

func (e *editor) KeyDown(keyCode uint32) bool {
	if keyCode == common.KeyLeftShift || keyCode == common.KeyRightShift {
		e.shift = true
		return false
	}
	b, ok := e.bindings[keyCode]
	if !ok {
		return false
	}
	return e.apply(b)
}

func (e *editor) KeyRepeat(keyCode uint32) bool {
	b, ok := e.bindings[keyCode]
	if !ok || !b.Repeat {
		return false
	}
	return e.apply(b)
}

// apply runs b with the step for the current modifier state, unless b is disabled for the
// current parameters.
func (e *editor) apply(b Binding) bool {
	if b.enabled != nil && !b.enabled(e.params) {
		return false
	}

	step := fineStep
	if e.shift {
		step = coarseStep
	}
	b.apply(e.params, step)
	e.params.Clamp()
	e.dirty = true

	e.logger.Debug("binding applied",
		zap.String("key", b.Label),
		zap.String("action", b.Help),
		zap.Stringer("model", e.params.MaterialModel),
		zap.Stringer("blending", e.params.Blending))
	return true
}

func (e *editor) KeyUp(keyCode uint32) {
	if keyCode == common.KeyLeftShift || keyCode == common.KeyRightShift {
		e.shift = false
	}
}

func (e *editor) Bindings() []Binding {
	out := make([]Binding, 0, len(e.order))
	for _, k := range e.order {
		out = append(out, e.bindings[k])
	}
	return out
}

func (e *editor) Dirty() bool {
	return e.dirty
}

func (e *editor) Flush(w io.Writer) bool {
	if !e.dirty {
		return false
	}
	e.panel.Render(w)
	e.dirty = false
	return true
}

func (e *editor) Panel() *Panel {
	return e.panel
}

func (e *editor) Parameters() *params.Parameters {
	return e.params
}
