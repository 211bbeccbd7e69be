package loader

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderable"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/transform"
)

// triangleBuffer holds three positions, three +Y normals and three uint16 indices.
func triangleBuffer() []byte {
	buf := make([]byte, 80)
	floats := []float32{
		0, 0, 0, 1, 0, 0, 0, 0, 1, // positions
		0, 1, 0, 0, 1, 0, 0, 1, 0, // normals
	}
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	for i, idx := range []uint16{0, 1, 2} {
		binary.LittleEndian.PutUint16(buf[72+i*2:], idx)
	}
	return buf
}

// writeTriangle writes a one-node glTF file whose material is named material.
func writeTriangle(t *testing.T, dir, name, material string) string {
	t.Helper()
	data := base64.StdEncoding.EncodeToString(triangleBuffer())
	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"name": "tri", "mesh": 0, "translation": [1, 0, 0]}],
  "materials": [{"name": %q, "pbrMetallicRoughness": {"baseColorFactor": [1, 0, 0, 1], "metallicFactor": 0.5, "roughnessFactor": 0.25}}],
  "meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0, "NORMAL": 1}, "indices": 2, "material": 0}]}],
  "buffers": [{"byteLength": 80, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 36},
    {"buffer": 0, "byteOffset": 72, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 0, 1]},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 2, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ]
}`, material, data)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeEmpty(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "empty.gltf")
	if err := os.WriteFile(path, []byte(`{"asset": {"version": "2.0"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type upload struct {
	label      string
	streams    [][]byte
	indices    []byte
	indexCount int
}

// recordingUploader keeps every upload and tracks which ids are still live.
// With failAt > 0 the failAt-th upload fails; fail makes every upload fail.
type recordingUploader struct {
	uploads  []upload
	live     map[uint32]bool
	released []uint32
	fail     bool
	failAt   int
}

func (u *recordingUploader) UploadGeometry(label string, vertexStreams [][]byte, indices []byte, indexCount int) (uint32, error) {
	if u.fail || (u.failAt > 0 && len(u.uploads)+1 == u.failAt) {
		return 0, errors.New("device lost")
	}
	u.uploads = append(u.uploads, upload{label, vertexStreams, indices, indexCount})
	id := uint32(len(u.uploads))
	if u.live == nil {
		u.live = make(map[uint32]bool)
	}
	u.live[id] = true
	return id, nil
}

func (u *recordingUploader) ReleaseGeometry(id uint32) bool {
	if !u.live[id] {
		return false
	}
	delete(u.live, id)
	u.released = append(u.released, id)
	return true
}

type managers struct {
	entities   entity.Manager
	registry   renderable.Manager
	transforms transform.Manager
}

func newManagers() managers {
	return managers{entity.NewManager(), renderable.NewManager(), transform.NewManager()}
}

func (m managers) loader(opts ...LoaderBuilderOption) Loader {
	return NewGLTFLoader(m.entities, m.registry, m.transforms, opts...)
}

func TestLoadTriangle(t *testing.T) {
	dir := t.TempDir()
	path := writeTriangle(t, dir, "tri.gltf", "paint")
	m := newManagers()
	up := &recordingUploader{}

	set, err := m.loader(WithUploader(up)).Load(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ents := set.Renderables()
	if len(ents) != 2 || ents[0] != set.Root() {
		t.Fatalf("Renderables() = %v, want root plus one mesh", ents)
	}
	if set.PrimitiveCount() != 1 {
		t.Errorf("PrimitiveCount() = %d, want 1", set.PrimitiveCount())
	}

	rootInst, ok := m.registry.Instance(ents[0])
	if !ok || m.registry.PrimitiveCount(rootInst) != 0 {
		t.Error("root should be a renderable without primitives")
	}

	ri, ok := m.registry.Instance(ents[1])
	if !ok {
		t.Fatal("mesh entity has no renderable")
	}
	prim := m.registry.Primitive(ri, 0)
	if prim.IndexCount != 3 || prim.Geometry != 1 {
		t.Errorf("primitive = %+v", prim)
	}
	mi, ok := set.MaterialInstance("paint")
	if !ok || prim.Material != mi {
		t.Fatal("primitive not bound to its mesh-part instance")
	}
	block := mi.Params()
	if block.BaseColor != [4]float32{1, 0, 0, 1} || block.Metallic != 0.5 || block.Roughness != 0.25 {
		t.Errorf("material block = %+v", block)
	}
	if b := m.registry.Bounds(ri); !b.HalfExtent.ApproxEqual(mgl32.Vec3{0.5, 0, 0.5}) {
		t.Errorf("bounds = %+v", b)
	}

	if m.transforms.Parent(ents[1]) != set.Root() {
		t.Error("mesh entity not parented to the root")
	}
	if origin := m.transforms.WorldTransform(ents[1]).Col(3); !origin.ApproxEqual(mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("mesh origin = %v, want (1, 0, 0)", origin)
	}

	if len(up.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(up.uploads))
	}
	u := up.uploads[0]
	if len(u.streams) != 2 || len(u.streams[0]) != 36 || len(u.streams[1]) != 24 || len(u.indices) != 12 || u.indexCount != 3 {
		t.Errorf("upload sizes = %d/%d/%d (%d indices)", len(u.streams[0]), len(u.streams[1]), len(u.indices), u.indexCount)
	}
	// +Y normals produce the same packed frame as the shadow plane.
	if x, w := int16(binary.LittleEndian.Uint16(u.streams[1][0:])), int16(binary.LittleEndian.Uint16(u.streams[1][6:])); x != -23170 || w != 23170 {
		t.Errorf("tangent frame x/w = %d/%d, want -23170/23170", x, w)
	}
}

func TestLoadPreservesInputOrderAndSharesMaterials(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTriangle(t, dir, "a.gltf", "shared"),
		writeTriangle(t, dir, "b.gltf", "shared"),
		writeTriangle(t, dir, "c.gltf", "other"),
	}
	m := newManagers()
	up := &recordingUploader{}

	set, err := m.loader(WithUploader(up), WithWorkers(3)).Load(context.Background(), paths)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set.Renderables()) != 4 {
		t.Fatalf("Renderables() = %d, want 4", len(set.Renderables()))
	}
	if names := set.MaterialNames(); len(names) != 2 || names[0] != "shared" || names[1] != "other" {
		t.Errorf("MaterialNames() = %v", names)
	}
	for i, want := range []string{"a.gltf/tri/0", "b.gltf/tri/0", "c.gltf/tri/0"} {
		if up.uploads[i].label != want {
			t.Errorf("upload %d label = %q, want %q", i, up.uploads[i].label, want)
		}
	}
}

func TestLoadReleaseAndDestroyOnce(t *testing.T) {
	dir := t.TempDir()
	m := newManagers()
	set, err := m.loader().Load(context.Background(), []string{writeTriangle(t, dir, "tri.gltf", "paint")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if n := set.DestroyMaterials(); n != 1 {
		t.Errorf("DestroyMaterials() = %d, want 1", n)
	}
	if n := set.DestroyMaterials(); n != 0 {
		t.Errorf("second DestroyMaterials() = %d, want 0", n)
	}
	if n := set.Release(); n != 2 {
		t.Errorf("Release() = %d, want 2", n)
	}
	if n := set.Release(); n != 0 {
		t.Errorf("second Release() = %d, want 0", n)
	}
	if m.entities.Count() != 0 || m.registry.Count() != 0 {
		t.Errorf("leftover entities/renderables: %d/%d", m.entities.Count(), m.registry.Count())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tri := writeTriangle(t, dir, "tri.gltf", "paint")

	tests := []struct {
		name  string
		paths []string
		want  error
	}{
		{"no paths", nil, ErrNoMeshes},
		{"no geometry", []string{writeEmpty(t, dir)}, ErrNoMeshes},
		{"wrong extension", []string{filepath.Join(dir, "mesh.obj")}, ErrUnsupportedFormat},
		{"missing file", []string{tri, filepath.Join(dir, "missing.glb")}, os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManagers()
			set, err := m.loader().Load(context.Background(), tt.paths)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load error = %v, want %v", err, tt.want)
			}
			if set != nil || m.entities.Count() != 0 {
				t.Errorf("failed load left %d entities", m.entities.Count())
			}
		})
	}
}

func TestLoadUploadFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	m := newManagers()
	_, err := m.loader(WithUploader(&recordingUploader{fail: true})).
		Load(context.Background(), []string{writeTriangle(t, dir, "tri.gltf", "paint")})
	if err == nil {
		t.Fatal("expected upload error")
	}
	if m.entities.Count() != 0 || m.registry.Count() != 0 {
		t.Errorf("rollback left %d entities, %d renderables", m.entities.Count(), m.registry.Count())
	}
}

func TestLoadCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newManagers().loader().Load(ctx, []string{writeTriangle(t, dir, "tri.gltf", "paint")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Load error = %v, want context.Canceled", err)
	}
}

func TestReleaseFreesUploadedGeometry(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeTriangle(t, dir, "a.gltf", "paint"), writeTriangle(t, dir, "b.gltf", "paint")}
	up := &recordingUploader{}

	set, err := newManagers().loader(WithUploader(up)).Load(context.Background(), paths)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.GeometryCount() != 2 || len(up.live) != 2 {
		t.Fatalf("geometry owned/live = %d/%d, want 2/2", set.GeometryCount(), len(up.live))
	}

	set.Release()
	if len(up.live) != 0 {
		t.Fatalf("live geometries after Release = %d, want 0", len(up.live))
	}
	if len(up.released) != 2 || up.released[0] != 2 || up.released[1] != 1 {
		t.Errorf("released = %v, want [2 1]", up.released)
	}

	set.Release()
	if len(up.released) != 2 {
		t.Errorf("second Release freed geometry again: %v", up.released)
	}
}

func TestUploadFailureReleasesEarlierUploads(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeTriangle(t, dir, "a.gltf", "paint"), writeTriangle(t, dir, "b.gltf", "paint")}
	m := newManagers()
	up := &recordingUploader{failAt: 2}

	if _, err := m.loader(WithUploader(up)).Load(context.Background(), paths); err == nil {
		t.Fatal("expected upload error")
	}
	if len(up.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1 before the failure", len(up.uploads))
	}
	if len(up.live) != 0 {
		t.Errorf("failed load left %d geometries live", len(up.live))
	}
	if m.entities.Count() != 0 {
		t.Errorf("failed load left %d entities", m.entities.Count())
	}
}

func TestRepeatedLoadsReuseWorkers(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeTriangle(t, dir, "a.gltf", "paint"), writeTriangle(t, dir, "b.gltf", "paint")}
	l := newManagers().loader(WithWorkers(4))

	set, err := l.Load(context.Background(), paths)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	set.Release()
	before := runtime.NumGoroutine()

	for i := 0; i < 5; i++ {
		set, err := l.Load(context.Background(), paths)
		if err != nil {
			t.Fatalf("Load %d: %v", i, err)
		}
		set.Release()
	}
	if after := runtime.NumGoroutine(); after > before {
		t.Errorf("goroutines grew from %d to %d across loads", before, after)
	}

	l.Close()
	l.Close()
	if _, err := l.Load(context.Background(), paths); !errors.Is(err, ErrLoaderClosed) {
		t.Fatalf("Load after Close = %v, want ErrLoaderClosed", err)
	}
}
