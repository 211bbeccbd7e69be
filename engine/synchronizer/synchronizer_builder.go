package synchronizer

import (
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
)

// SynchronizerBuilderOption is a function that configures a synchronizer during construction.
type SynchronizerBuilderOption func(*synchronizer)

// WithRenderables sets the renderable entities the synchronizer manages.
//
// Parameters:
//   - entities: the renderable entities
//
// Returns:
//   - SynchronizerBuilderOption: a function that applies the renderables option
func WithRenderables(entities ...entity.Entity) SynchronizerBuilderOption {
	return func(s *synchronizer) {
		s.renderables = append([]entity.Entity(nil), entities...)
	}
}

// WithIndirectLight attaches an indirect light updated on every Sync.
//
// Parameters:
//   - ibl: the indirect light
//
// Returns:
//   - SynchronizerBuilderOption: a function that applies the indirect light option
func WithIndirectLight(ibl light.IndirectLight) SynchronizerBuilderOption {
	return func(s *synchronizer) {
		s.ibl = ibl
	}
}

// WithLightPresent declares whether the sun entity is already in the scene, for callers
// that added it during setup.
//
// Parameters:
//   - present: true if the sun entity is a scene member
//
// Returns:
//   - SynchronizerBuilderOption: a function that applies the light presence option
func WithLightPresent(present bool) SynchronizerBuilderOption {
	return func(s *synchronizer) {
		s.hasDirectionalLight = present
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - SynchronizerBuilderOption: a function that applies the logger option
func WithLogger(l *zap.Logger) SynchronizerBuilderOption {
	return func(s *synchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}
