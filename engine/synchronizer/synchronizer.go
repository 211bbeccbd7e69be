// Package synchronizer applies the parameter state to the scene once per frame: it binds
// the resolved material to every managed renderable, propagates shadow casting, keeps the
// sun entity's scene membership in step with the light toggle and updates lights.
package synchronizer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderable"
)

// SceneGraph is the scene membership the synchronizer mutates.
type SceneGraph interface {
	AddEntity(e entity.Entity)
	Remove(e entity.Entity)
}

// Registry is the renderable registry the synchronizer binds materials through.
type Registry interface {
	Instance(e entity.Entity) (renderable.Instance, bool)
	PrimitiveCount(i renderable.Instance) int
	SetMaterialInstanceAt(i renderable.Instance, index int, mi material.Instance)
	SetCastShadows(i renderable.Instance, enabled bool)
}

// Stats summarizes one Sync call.
type Stats struct {
	Bindings     int  // primitive material bindings performed
	Skipped      int  // managed entities without a renderable component
	LightAdded   bool // the sun entity was added to the scene
	LightRemoved bool // the sun entity was removed from the scene
}

// synchronizer is the implementation of the Synchronizer interface.
type synchronizer struct {
	params              *params.Parameters
	resolver            material.Resolver
	scene               SceneGraph
	registry            Registry
	sun                 light.Sun
	ibl                 light.IndirectLight
	renderables         []entity.Entity
	hasDirectionalLight bool
	logger              *zap.Logger
}

// Synchronizer re-derives material and light state from the parameter state. It is the
// only writer of the directional-light presence flag, which always mirrors whether the sun
// entity is in the scene.
type Synchronizer interface {
	// Sync runs one synchronization pass:
	//   1. resolve the material instance for the current parameters
	//   2. bind it to every primitive of every managed renderable and propagate CastShadows;
	//      entities without a renderable component are skipped
	//   3. add the sun entity when the light is enabled and absent, remove it when disabled
	//      and present; otherwise leave the scene untouched
	//   4. push the sun properties, and the indirect light intensity and rotation if one
	//      is attached
	//
	// Returns:
	//   - Stats: what the pass did
	Sync() Stats

	// HasDirectionalLight reports whether the sun entity is currently in the scene.
	//
	// Returns:
	//   - bool: true if the sun entity is a scene member
	HasDirectionalLight() bool

	// SetRenderables replaces the managed renderable entities.
	//
	// Parameters:
	//   - entities: the renderable entities
	SetRenderables(entities []entity.Entity)

	// Renderables returns the managed renderable entities.
	//
	// Returns:
	//   - []entity.Entity: a copy of the managed entity list
	Renderables() []entity.Entity

	// SetIndirectLight attaches or detaches (nil) the indirect light.
	//
	// Parameters:
	//   - ibl: the indirect light, or nil
	SetIndirectLight(ibl light.IndirectLight)
}

var _ Synchronizer = &synchronizer{}

// NewSynchronizer creates a Synchronizer. The sun entity is assumed absent from the scene
// unless WithLightPresent(true) is given.
//
// Parameters:
//   - p: the parameter state (read only)
//   - resolver: the instance resolver
//   - scene: the scene membership to mutate
//   - registry: the renderable registry
//   - sun: the sun light component
//   - options: variadic list of SynchronizerBuilderOption functions
//
// Returns:
//   - Synchronizer: the new synchronizer
func NewSynchronizer(p *params.Parameters, resolver material.Resolver, scene SceneGraph, registry Registry, sun light.Sun, options ...SynchronizerBuilderOption) Synchronizer {
	s := &synchronizer{
		params:   p,
		resolver: resolver,
		scene:    scene,
		registry: registry,
		sun:      sun,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *synchronizer) Sync() Stats {
	var stats Stats
	p := s.params

	mi, _ := s.resolver.Resolve(p)

	for _, e := range s.renderables {
		ri, ok := s.registry.Instance(e)
		if !ok {
			stats.Skipped++
			s.logger.Debug("renderable not ready, skipping", zap.Stringer("entity", e))
			continue
		}
		n := s.registry.PrimitiveCount(ri)
		for i := 0; i < n; i++ {
			s.registry.SetMaterialInstanceAt(ri, i, mi)
		}
		stats.Bindings += n
		s.registry.SetCastShadows(ri, p.CastShadows)
	}

	switch {
	case p.LightEnabled && !s.hasDirectionalLight:
		s.scene.AddEntity(s.sun.Entity())
		s.hasDirectionalLight = true
		stats.LightAdded = true
		s.logger.Debug("directional light added", zap.Stringer("entity", s.sun.Entity()))
	case !p.LightEnabled && s.hasDirectionalLight:
		s.scene.Remove(s.sun.Entity())
		s.hasDirectionalLight = false
		stats.LightRemoved = true
		s.logger.Debug("directional light removed", zap.Stringer("entity", s.sun.Entity()))
	}

	s.updateSun()
	if s.ibl != nil {
		s.ibl.SetIntensity(p.IBLIntensity)
		s.ibl.SetRotation(mgl32.Rotate3DY(p.IBLRotation))
	}
	return stats
}

func (s *synchronizer) updateSun() {
	p := s.params
	c := common.SRGBToLinear3(p.LightColor)
	s.sun.SetColor(c[0], c[1], c[2])
	s.sun.SetIntensity(p.LightIntensity)
	s.sun.SetDirection(p.LightDirection[0], p.LightDirection[1], p.LightDirection[2])
	s.sun.SetSunAngularRadius(p.SunAngularRadius)
	s.sun.SetSunHaloSize(p.SunHaloSize)
	s.sun.SetSunHaloFalloff(p.SunHaloFalloff)
}

func (s *synchronizer) HasDirectionalLight() bool {
	return s.hasDirectionalLight
}

func (s *synchronizer) SetRenderables(entities []entity.Entity) {
	s.renderables = append([]entity.Entity(nil), entities...)
}

func (s *synchronizer) Renderables() []entity.Entity {
	return append([]entity.Entity(nil), s.renderables...)
}

func (s *synchronizer) SetIndirectLight(ibl light.IndirectLight) {
	s.ibl = ibl
}
