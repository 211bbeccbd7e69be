package editor

import (
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
)

// EditorBuilderOption is a functional option for configuring an Editor via NewEditor.
type EditorBuilderOption func(*editor)

// WithLogger is an option builder that sets the logger used to trace applied bindings.
//
// Parameters:
//   - l: the logger; nil keeps the no-op default
//
// Returns:
//   - EditorBuilderOption: a function that applies the logger to an editor
func WithLogger(l *zap.Logger) EditorBuilderOption {
	return func(e *editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBinding adds or replaces a key binding.
//
// Parameters:
//   - key: the key code
//   - label: the key name shown in help output
//   - help: what the binding does
//   - apply: the parameter mutation; step is the nudge size for the current modifier state
//
// Returns:
//   - EditorBuilderOption: a function that applies the binding to an editor
func WithBinding(key uint32, label, help string, apply func(p *params.Parameters, step float32)) EditorBuilderOption {
	return func(e *editor) {
		e.bind(Binding{Key: key, Label: label, Help: help, apply: apply})
	}
}
