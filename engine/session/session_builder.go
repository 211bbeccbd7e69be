package session

import (
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderable"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/scene"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/transform"
)

// SessionBuilderOption is a functional option for configuring a Session via NewSession.
type SessionBuilderOption func(*session)

// WithMeshes is an option builder that sets the mesh files loaded by Setup.
//
// Parameters:
//   - paths: the glTF or GLB file paths
//
// Returns:
//   - SessionBuilderOption: a function that applies the mesh paths to a session
func WithMeshes(paths ...string) SessionBuilderOption {
	return func(s *session) {
		s.meshPaths = append([]string(nil), paths...)
	}
}

// WithScale is an option builder that sets the uniform scale applied to the mesh root.
// Non-positive values keep the default of 1.
//
// Parameters:
//   - scale: the uniform scale
//
// Returns:
//   - SessionBuilderOption: a function that applies the scale to a session
func WithScale(scale float32) SessionBuilderOption {
	return func(s *session) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

// WithShadowPlane is an option builder that enables the shadow-receiving ground plane.
//
// Parameters:
//   - enabled: true to add the plane during Setup
//
// Returns:
//   - SessionBuilderOption: a function that applies the shadow plane option to a session
func WithShadowPlane(enabled bool) SessionBuilderOption {
	return func(s *session) {
		s.shadowPlane = enabled
	}
}

// WithIndirectLight is an option builder that enables image based lighting from the
// given source. An empty source disables it.
//
// Parameters:
//   - source: the environment path
//
// Returns:
//   - SessionBuilderOption: a function that applies the indirect light option to a session
func WithIndirectLight(source string) SessionBuilderOption {
	return func(s *session) {
		s.iblSource = source
	}
}

// WithParameters is an option builder that sets the parameter state the session owns.
//
// Parameters:
//   - p: the parameter state
//
// Returns:
//   - SessionBuilderOption: a function that applies the parameters to a session
func WithParameters(p *params.Parameters) SessionBuilderOption {
	return func(s *session) {
		s.params = p
	}
}

// WithMeshLoader is an option builder that replaces the default glTF mesh loader.
//
// Parameters:
//   - l: the mesh loader
//
// Returns:
//   - SessionBuilderOption: a function that applies the mesh loader to a session
func WithMeshLoader(l MeshLoader) SessionBuilderOption {
	return func(s *session) {
		s.meshLoader = l
	}
}

// WithUploader is an option builder that sets where mesh and shadow plane geometry is
// uploaded. Without an uploader geometry ids stay 0.
//
// Parameters:
//   - u: the buffer uploader
//
// Returns:
//   - SessionBuilderOption: a function that applies the uploader to a session
func WithUploader(u BufferUploader) SessionBuilderOption {
	return func(s *session) {
		s.uploader = u
	}
}

// WithEntityManager sets the entity manager.
func WithEntityManager(m entity.Manager) SessionBuilderOption {
	return func(s *session) {
		s.entities = m
	}
}

// WithRegistry sets the renderable registry.
func WithRegistry(m renderable.Manager) SessionBuilderOption {
	return func(s *session) {
		s.registry = m
	}
}

// WithTransforms sets the transform manager.
func WithTransforms(m transform.Manager) SessionBuilderOption {
	return func(s *session) {
		s.transforms = m
	}
}

// WithScene sets the scene the session populates.
func WithScene(sc scene.Scene) SessionBuilderOption {
	return func(s *session) {
		s.scene = sc
	}
}

// WithLogger is an option builder that sets the session logger. It is shared with the
// default loader, the resolver and the synchronizer.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - SessionBuilderOption: a function that applies the logger to a session
func WithLogger(l *zap.Logger) SessionBuilderOption {
	return func(s *session) {
		s.logger = l
	}
}
