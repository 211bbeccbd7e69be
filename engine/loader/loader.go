package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderable"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/transform"
)

var (
	// ErrNoMeshes is returned when a load request names no files or the files hold no
	// renderable geometry.
	ErrNoMeshes = errors.New("no meshes to load")

	// ErrUnsupportedFormat is returned for files that are not .gltf or .glb.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")

	// ErrLoaderClosed is returned by Load after Close.
	ErrLoaderClosed = errors.New("loader closed")
)

// Uploader receives the vertex and index streams of every loaded primitive and releases
// them again when the MeshSet is released.
type Uploader interface {
	UploadGeometry(label string, vertexStreams [][]byte, indices []byte, indexCount int) (uint32, error)
	ReleaseGeometry(id uint32) bool
}

// parseQueueSize bounds the parse tasks waiting for a worker.
const parseQueueSize = 64

// gltfLoader is the implementation of the Loader interface.
type gltfLoader struct {
	entities   entity.Manager
	registry   renderable.Manager
	transforms transform.Manager
	uploader   Uploader
	workers    int
	logger     *zap.Logger

	// pool is created on the first Load and lives until Close.
	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
	closed   bool
}

// Loader turns mesh files into renderable entities and mesh-part material instances.
type Loader interface {
	// Load parses every file and creates one root entity plus one renderable entity per
	// mesh node. Files are parsed in parallel; entities are created afterwards in input
	// order, so the result does not depend on scheduling.
	//
	// On error nothing created by this call is left behind.
	//
	// Parameters:
	//   - ctx: cancels the load between parsing and entity creation
	//   - paths: the .gltf/.glb files to load
	//
	// Returns:
	//   - *MeshSet: the loaded entities and material instances
	//   - error: ErrLoaderClosed, ErrNoMeshes, ErrUnsupportedFormat, a parse error, an upload error or ctx.Err()
	Load(ctx context.Context, paths []string) (*MeshSet, error)

	// Close stops the parse workers. Loads already returned are unaffected; later calls to
	// Load fail with ErrLoaderClosed. Calling Close again has no effect.
	Close()
}

var _ Loader = &gltfLoader{}

// NewGLTFLoader creates a Loader for glTF and GLB files that registers what it loads with
// the given managers.
//
// Parameters:
//   - entities: the entity manager
//   - registry: the renderable registry
//   - transforms: the transform manager
//   - options: variadic list of LoaderBuilderOption functions
//
// Returns:
//   - Loader: the new loader
func NewGLTFLoader(entities entity.Manager, registry renderable.Manager, transforms transform.Manager, options ...LoaderBuilderOption) Loader {
	l := &gltfLoader{
		entities:   entities,
		registry:   registry,
		transforms: transforms,
		workers:    4,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *gltfLoader) Load(ctx context.Context, paths []string) (*MeshSet, error) {
	if l.closed {
		return nil, ErrLoaderClosed
	}
	if len(paths) == 0 {
		return nil, ErrNoMeshes
	}
	for _, p := range paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".gltf", ".glb":
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, p)
		}
	}

	files, err := l.parseAll(ctx, paths)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, f := range files {
		total += f.primitiveCount()
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMeshes, strings.Join(paths, ", "))
	}

	set := newMeshSet(l.entities, l.registry, l.transforms, l.uploader)
	root := l.entities.Create()
	l.transforms.Create(root, mgl32.Ident4(), entity.Null)
	l.registry.Create(root)
	set.renderables = append(set.renderables, root)

	for _, f := range files {
		if err := l.build(set, root, f); err != nil {
			set.DestroyMaterials()
			set.Release()
			return nil, err
		}
	}

	l.logger.Info("meshes loaded",
		zap.Int("files", len(files)),
		zap.Int("renderables", len(set.renderables)),
		zap.Int("primitives", set.primitives),
		zap.Int("materials", len(set.order)))
	return set, nil
}

func (l *gltfLoader) Close() {
	if l.closed {
		return
	}
	l.closed = true
	if l.pool != nil {
		l.pool.Stop()
	}
}

// parseAll parses every file on the loader's worker pool and returns the results in input order.
func (l *gltfLoader) parseAll(ctx context.Context, paths []string) ([]*importedFile, error) {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, parseQueueSize, 1*time.Second)
	})
	pool := l.pool

	files := make([]*importedFile, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		idx, p := i, path
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				files[idx], errs[idx] = parseGLTF(p)
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return files, nil
}

// build creates the material instances and entities of one parsed file.
func (l *gltfLoader) build(set *MeshSet, root entity.Entity, f *importedFile) error {
	instances := make([]material.Instance, len(f.materials))
	for i, m := range f.materials {
		if existing, ok := set.materials[m.name]; ok {
			instances[i] = existing
			continue
		}
		mi := material.NewInstance(
			material.WithName(m.name),
			material.WithVariant(material.VariantLit),
			material.WithBaseColor(m.baseColor),
			material.WithMetallicRoughness(m.metallic, m.roughness),
		)
		set.addMaterial(m.name, mi)
		instances[i] = mi
	}

	for _, mesh := range f.meshes {
		opts := make([]renderable.RenderableBuilderOption, 0, len(mesh.primitives)+2)
		var bounds []mgl32.Vec3
		for pi, prim := range mesh.primitives {
			var mi material.Instance
			if prim.material >= 0 {
				mi = instances[prim.material]
			}
			id, err := l.upload(fmt.Sprintf("%s/%s/%d", filepath.Base(f.path), mesh.name, pi), prim)
			if err != nil {
				return err
			}
			set.addGeometry(id)
			opts = append(opts, renderable.WithPrimitive(id, len(prim.indices), mi))
			bounds = append(bounds,
				prim.bounds.Center.Sub(prim.bounds.HalfExtent),
				prim.bounds.Center.Add(prim.bounds.HalfExtent))
		}
		opts = append(opts, renderable.WithBounds(boundsOfVecs(bounds)), renderable.WithCastShadows(true))

		e := l.entities.Create()
		l.transforms.Create(e, mesh.world, root)
		l.registry.Create(e, opts...)
		set.renderables = append(set.renderables, e)
		set.primitives += len(mesh.primitives)
	}
	return nil
}

func (l *gltfLoader) upload(label string, prim importedPrimitive) (uint32, error) {
	if l.uploader == nil {
		return 0, nil
	}
	pos, tan, idx := primitiveBytes(prim)
	id, err := l.uploader.UploadGeometry(label, [][]byte{pos, tan}, idx, len(prim.indices))
	if err != nil {
		return 0, fmt.Errorf("upload %s: %w", label, err)
	}
	return id, nil
}

func boundsOfVecs(corners []mgl32.Vec3) geometry.BoundingBox {
	pts := make([][3]float32, len(corners))
	for i, c := range corners {
		pts[i] = c
	}
	return boundsOf(pts)
}
