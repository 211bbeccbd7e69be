// Package session owns the lifetime of everything the sandbox puts on screen. Setup
// acquires the light, the loaded meshes, the material instances and the optional shadow
// plane; Frame runs one synchronization; Teardown releases in reverse acquisition order.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/loader"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/logger"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderable"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/scene"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/synchronizer"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/transform"
)

var (
	// ErrAlreadySetUp is returned by Setup on a session that was already set up.
	ErrAlreadySetUp = errors.New("session: already set up")

	// ErrNotSetUp is returned by Frame and Teardown before a successful Setup.
	ErrNotSetUp = errors.New("session: not set up")
)

// Resource names, in release order.
const (
	ResourceShadowPlane   = "shadow plane"
	ResourceMeshMaterials = "mesh materials"
	ResourceInstanceSet   = "material instances"
	ResourceMeshes        = "meshes"
	ResourceLight         = "light"
)

// Placement of the loaded meshes and the shadow plane in front of the camera.
var (
	meshOffset  = mgl32.Vec3{0, 0, -4}
	planeOffset = mgl32.Vec3{0, -1, -4}
)

// Meshes is what a MeshLoader hands back: the loaded renderable entities and the
// per-mesh-part material instances. *loader.MeshSet implements it.
type Meshes interface {
	Renderables() []entity.Entity
	Root() entity.Entity
	DestroyMaterials() int
	Release() int
}

// MeshLoader loads renderables from mesh files.
type MeshLoader interface {
	Load(ctx context.Context, paths []string) (Meshes, error)
}

// MeshLoaderFunc adapts a function to MeshLoader.
type MeshLoaderFunc func(ctx context.Context, paths []string) (Meshes, error)

// Load calls f(ctx, paths).
func (f MeshLoaderFunc) Load(ctx context.Context, paths []string) (Meshes, error) {
	return f(ctx, paths)
}

// FromLoader adapts a loader.Loader to MeshLoader.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - MeshLoader: a MeshLoader returning l's mesh sets
func FromLoader(l loader.Loader) MeshLoader {
	return MeshLoaderFunc(func(ctx context.Context, paths []string) (Meshes, error) {
		set, err := l.Load(ctx, paths)
		if err != nil {
			return nil, err
		}
		return set, nil
	})
}

// BufferUploader moves geometry into render buffers.
type BufferUploader interface {
	UploadGeometry(label string, vertexStreams [][]byte, indices []byte, indexCount int) (uint32, error)
	ReleaseGeometry(id uint32) bool
}

type state int

const (
	stateIdle state = iota
	stateReady
	stateClosed
)

// session is the implementation of the Session interface.
type session struct {
	params *params.Parameters

	entities   entity.Manager
	registry   renderable.Manager
	transforms transform.Manager
	scene      scene.Scene

	meshLoader MeshLoader
	uploader   BufferUploader
	logger     *zap.Logger

	// gltf is the default loader; the session stops its workers at teardown.
	gltf loader.Loader

	meshPaths   []string
	scale       float32
	shadowPlane bool
	iblSource   string

	state    state
	releases *releaser

	sun         light.Sun
	ibl         light.IndirectLight
	meshes      Meshes
	instances   material.InstanceSet
	sync        synchronizer.Synchronizer
	planeEntity entity.Entity
}

// Session drives setup, per-frame synchronization and teardown of the sandbox scene.
type Session interface {
	// Setup builds the scene:
	//   1. create the light entity and its sun component
	//   2. load the mesh files
	//   3. create the material instance set and resolver
	//   4. place the mesh root at Translate(0,0,-4)·Scale(scale)·world
	//   5. bind the lit instance to every primitive, apply CastShadows, add every mesh
	//      entity to the scene
	//   6. add the light entity to the scene
	//   7. optionally build, upload and add the shadow plane
	// A failure releases everything acquired so far.
	//
	// Parameters:
	//   - ctx: cancels mesh loading
	//
	// Returns:
	//   - error: ErrAlreadySetUp, or a wrapped load or upload error
	Setup(ctx context.Context) error

	// Frame runs one synchronization pass against the current parameters.
	//
	// Returns:
	//   - synchronizer.Stats: what the pass did
	//   - error: ErrNotSetUp if Setup has not succeeded or Teardown has run
	Frame() (synchronizer.Stats, error)

	// Teardown releases every acquired resource in reverse acquisition order: shadow
	// plane, mesh-part materials, material instances, meshes with their uploaded geometry,
	// light. A second call is a no-op.
	//
	// Returns:
	//   - []string: the released resource names in release order
	//   - error: ErrNotSetUp if Setup never succeeded
	Teardown() ([]string, error)

	// Parameters returns the parameter state owned by the session.
	Parameters() *params.Parameters

	// Scene returns the scene the session populates.
	Scene() scene.Scene

	// Registry returns the renderable registry.
	Registry() renderable.Manager

	// Transforms returns the transform manager.
	Transforms() transform.Manager

	// Sun returns the directional light, or nil before Setup.
	Sun() light.Sun

	// IndirectLight returns the indirect light, or nil when none was requested.
	IndirectLight() light.IndirectLight

	// Renderables returns the loaded mesh entities; index 0 is the mesh root.
	Renderables() []entity.Entity

	// ShadowPlane returns the shadow plane entity, or entity.Null without one.
	ShadowPlane() entity.Entity

	// Synchronizer returns the synchronizer, or nil before Setup.
	Synchronizer() synchronizer.Synchronizer
}

var _ Session = &session{}

// NewSession creates a Session. Managers, the scene and the parameter state not supplied
// through options are created fresh; the mesh loader defaults to the glTF loader bound to
// the session's managers and uploader.
//
// Parameters:
//   - options: variadic list of SessionBuilderOption functions
//
// Returns:
//   - Session: the new, not yet set up, session
func NewSession(options ...SessionBuilderOption) Session {
	s := &session{
		scale:       1,
		planeEntity: entity.Null,
	}
	for _, opt := range options {
		opt(s)
	}

	s.params = common.Coalesce(s.params, params.New())
	s.logger = common.Coalesce(s.logger, logger.Named("session"))
	s.entities = common.Coalesce(s.entities, entity.NewManager())
	s.registry = common.Coalesce(s.registry, renderable.NewManager())
	s.transforms = common.Coalesce(s.transforms, transform.NewManager())
	s.scene = common.Coalesce(s.scene, scene.NewScene(scene.WithLogger(s.logger)))

	if s.meshLoader == nil {
		opts := []loader.LoaderBuilderOption{loader.WithLogger(s.logger)}
		if s.uploader != nil {
			opts = append(opts, loader.WithUploader(s.uploader))
		}
		s.gltf = loader.NewGLTFLoader(s.entities, s.registry, s.transforms, opts...)
		s.meshLoader = FromLoader(s.gltf)
	}
	s.releases = newReleaser(s.logger)
	return s
}

func (s *session) Setup(ctx context.Context) (err error) {
	if s.state != stateIdle {
		return ErrAlreadySetUp
	}
	defer func() {
		if err != nil {
			released := s.releases.unwind()
			s.logger.Warn("setup failed, released partial acquisitions",
				zap.Error(err), zap.Strings("released", released))
			s.reset()
		}
	}()

	p := s.params

	// 1. light
	sunEntity := s.entities.Create()
	c := common.SRGBToLinear3(p.LightColor)
	s.sun = light.NewSun(sunEntity,
		light.WithDirection(p.LightDirection[0], p.LightDirection[1], p.LightDirection[2]),
		light.WithColor(c[0], c[1], c[2]),
		light.WithIntensity(p.LightIntensity),
		light.WithSunDisk(p.SunAngularRadius, p.SunHaloSize, p.SunHaloFalloff),
		light.WithCastsShadows(true),
	)
	s.releases.push(ResourceLight, func() {
		s.scene.Remove(sunEntity)
		s.entities.Destroy(sunEntity)
	})
	if s.iblSource != "" {
		s.ibl = light.NewIndirectLight(s.iblSource, p.IBLIntensity)
	}

	// 2. meshes
	meshes, err := s.meshLoader.Load(ctx, s.meshPaths)
	if err != nil {
		return fmt.Errorf("load meshes: %w", err)
	}
	s.meshes = meshes
	renderables := meshes.Renderables()
	s.releases.push(ResourceMeshes, func() {
		for _, e := range renderables {
			s.scene.Remove(e)
		}
		meshes.Release()
	})

	// 3. material instances
	s.instances = material.NewInstanceSet()
	resolver := material.NewResolver(s.instances, material.WithLogger(s.logger))
	s.releases.push(ResourceInstanceSet, func() { s.instances.Destroy() })
	s.releases.push(ResourceMeshMaterials, func() { meshes.DestroyMaterials() })

	// 4. placement
	if root := meshes.Root(); !root.IsNull() {
		placement := mgl32.Translate3D(meshOffset.X(), meshOffset.Y(), meshOffset.Z()).
			Mul4(mgl32.Scale3D(s.scale, s.scale, s.scale))
		s.transforms.SetTransform(root, placement.Mul4(s.transforms.Transform(root)))
	}

	// 5. bind and add
	lit := s.instances.Get(material.VariantLit)
	for _, e := range renderables {
		if ri, ok := s.registry.Instance(e); ok {
			for i := 0; i < s.registry.PrimitiveCount(ri); i++ {
				s.registry.SetMaterialInstanceAt(ri, i, lit)
			}
			s.registry.SetCastShadows(ri, p.CastShadows)
		}
		s.scene.AddEntity(e)
	}

	// 6. light membership
	s.scene.AddEntity(sunEntity)

	// 7. shadow plane
	if s.shadowPlane {
		if err := s.addShadowPlane(); err != nil {
			return err
		}
	}

	syncOpts := []synchronizer.SynchronizerBuilderOption{
		synchronizer.WithRenderables(renderables...),
		synchronizer.WithLightPresent(true),
		synchronizer.WithLogger(s.logger),
	}
	if s.ibl != nil {
		syncOpts = append(syncOpts, synchronizer.WithIndirectLight(s.ibl))
	}
	s.sync = synchronizer.NewSynchronizer(p, resolver, s.scene, s.registry, s.sun, syncOpts...)

	s.state = stateReady
	s.logger.Info("session ready",
		zap.Int("renderables", len(renderables)),
		zap.Bool("shadowPlane", s.shadowPlane),
		zap.Bool("ibl", s.ibl != nil),
		zap.Int("sceneEntities", s.scene.Count()))
	return nil
}

// addShadowPlane uploads the ground plane and registers it as a shadow receiver.
func (s *session) addShadowPlane() error {
	plane := geometry.NewShadowPlane()

	var geometryID uint32
	if s.uploader != nil {
		id, err := s.uploader.UploadGeometry(ResourceShadowPlane, plane.VertexStreams(), plane.IndexBytes(), plane.IndexCount())
		if err != nil {
			return fmt.Errorf("upload shadow plane: %w", err)
		}
		geometryID = id
	}

	ground := material.NewInstance(
		material.WithName(ResourceShadowPlane),
		material.WithVariant(material.VariantGroundShadow),
	)
	e := s.entities.Create()
	s.transforms.Create(e, mgl32.Translate3D(planeOffset.X(), planeOffset.Y(), planeOffset.Z()), entity.Null)
	s.registry.Create(e,
		renderable.WithPrimitive(geometryID, plane.IndexCount(), ground),
		renderable.WithBounds(plane.Bounds()),
		renderable.WithCulling(false),
		renderable.WithCastShadows(false),
		renderable.WithReceiveShadows(true),
	)
	s.scene.AddEntity(e)
	s.planeEntity = e

	s.releases.push(ResourceShadowPlane, func() {
		s.scene.Remove(e)
		s.registry.Destroy(e)
		s.transforms.Destroy(e)
		ground.Destroy()
		if s.uploader != nil && geometryID != 0 {
			s.uploader.ReleaseGeometry(geometryID)
		}
		s.entities.Destroy(e)
		s.planeEntity = entity.Null
	})
	return nil
}

// reset drops references to released resources after a failed Setup.
func (s *session) reset() {
	s.sun = nil
	s.ibl = nil
	s.meshes = nil
	s.instances = nil
	s.sync = nil
	s.planeEntity = entity.Null
}

func (s *session) Frame() (synchronizer.Stats, error) {
	if s.state != stateReady {
		return synchronizer.Stats{}, ErrNotSetUp
	}
	return s.sync.Sync(), nil
}

func (s *session) Teardown() ([]string, error) {
	switch s.state {
	case stateIdle:
		return nil, ErrNotSetUp
	case stateClosed:
		return nil, nil
	}

	released := s.releases.unwind()
	if s.gltf != nil {
		s.gltf.Close()
	}
	s.state = stateClosed
	s.logger.Info("session torn down", zap.Strings("released", released))
	return released, nil
}

func (s *session) Parameters() *params.Parameters {
	return s.params
}

func (s *session) Scene() scene.Scene {
	return s.scene
}

func (s *session) Registry() renderable.Manager {
	return s.registry
}

func (s *session) Transforms() transform.Manager {
	return s.transforms
}

func (s *session) Sun() light.Sun {
	return s.sun
}

func (s *session) IndirectLight() light.IndirectLight {
	return s.ibl
}

func (s *session) Renderables() []entity.Entity {
	if s.meshes == nil {
		return nil
	}
	return s.meshes.Renderables()
}

func (s *session) ShadowPlane() entity.Entity {
	return s.planeEntity
}

func (s *session) Synchronizer() synchronizer.Synchronizer {
	return s.sync
}
