package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

var (
	// ErrEmptyGeometry is returned when an upload carries no vertex data or no indices.
	ErrEmptyGeometry = errors.New("renderer: empty geometry")

	// ErrIndexCountMismatch is returned when the index byte length disagrees with the index count.
	ErrIndexCountMismatch = errors.New("renderer: index count does not match index data")
)

// indexStride is the byte size of one uint32 index.
const indexStride = 4

// Surface is the presentation target a renderer is created against.
// window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// geometryBuffers holds the GPU buffers of one uploaded geometry.
type geometryBuffers struct {
	label      string
	streams    []*wgpu.Buffer
	index      *wgpu.Buffer
	indexCount int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	logger      *zap.Logger

	width  int
	height int

	view        params.ViewOptions
	viewApplied bool

	geometries   map[uint32]*geometryBuffers
	nextGeometry uint32
	sunBuffer    *wgpu.Buffer

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the GPU device, the vertex and index buffers of every uploaded
// geometry and the per-frame render pass. It satisfies the geometry uploader
// interfaces used by the loader and the session.
type Renderer interface {
	// UploadGeometry copies vertex streams and uint32 indices into GPU buffers.
	//
	// Parameters:
	//   - label: a debug label for the buffers
	//   - vertexStreams: one byte slice per vertex attribute stream
	//   - indices: little-endian uint32 index data
	//   - indexCount: the number of indices in indices
	//
	// Returns:
	//   - uint32: the non-zero id of the uploaded geometry
	//   - error: ErrEmptyGeometry, ErrIndexCountMismatch or a wrapped backend error
	UploadGeometry(label string, vertexStreams [][]byte, indices []byte, indexCount int) (uint32, error)

	// ReleaseGeometry frees the buffers of a previously uploaded geometry.
	//
	// Parameters:
	//   - id: the geometry id returned by UploadGeometry
	//
	// Returns:
	//   - bool: true if the geometry existed and was released
	ReleaseGeometry(id uint32) bool

	// GeometryCount returns the number of live uploaded geometries.
	//
	// Returns:
	//   - int: the live geometry count
	GeometryCount() int

	// ApplyView applies post-processing view options before a frame is rendered.
	// A changed sample count reconfigures the surface targets.
	//
	// Parameters:
	//   - v: the view options derived from the parameter state
	ApplyView(v params.ViewOptions)

	// View returns the last applied view options.
	//
	// Returns:
	//   - params.ViewOptions: the current view options
	View() params.ViewOptions

	// SampleCount returns the MSAA sample count of the main render pass.
	//
	// Returns:
	//   - MSAASampleCount: the active sample count
	SampleCount() MSAASampleCount

	// UpdateLighting writes the sun's uniform block to the GPU.
	//
	// Parameters:
	//   - sun: the directional light to upload
	//
	// Returns:
	//   - error: an error if the uniform buffer could not be created
	UpdateLighting(sun light.Sun) error

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes how frames are delivered to the display.
	// Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the next surface texture and opens the main render pass.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame() error

	// EndFrame closes the render pass and submits the frame's commands.
	EndFrame()

	// Present presents the acquired surface texture.
	Present()

	// Release frees every uploaded geometry and the GPU device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type and options.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - w: the surface the renderer presents to, usually a window.Window
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, w Surface, options ...RendererBuilderOption) Renderer {
	r := newRenderer(backendType, options...)

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	r.start(w.Width(), w.Height())
	return r
}

// newRenderer applies options to a renderer without a backend.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      zap.NewNop(),
		geometries:  make(map[uint32]*geometryBuffers),
	}

	// Options run before the backend exists so adapter flags are in place.
	for _, opt := range options {
		opt(r)
	}
	return r
}

// start configures the backend surface once it is attached.
func (r *renderer) start(width, height int) {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

// validateGeometry checks an upload before any buffer is created.
func validateGeometry(vertexStreams [][]byte, indices []byte, indexCount int) error {
	if len(vertexStreams) == 0 || indexCount <= 0 {
		return ErrEmptyGeometry
	}
	for _, s := range vertexStreams {
		if len(s) == 0 {
			return ErrEmptyGeometry
		}
	}
	if len(indices) != indexCount*indexStride {
		return fmt.Errorf("%w: %d bytes for %d indices", ErrIndexCountMismatch, len(indices), indexCount)
	}
	return nil
}

func (r *renderer) UploadGeometry(label string, vertexStreams [][]byte, indices []byte, indexCount int) (uint32, error) {
	if err := validateGeometry(vertexStreams, indices, indexCount); err != nil {
		return 0, fmt.Errorf("upload %s: %w", label, err)
	}

	streams, index, err := r.backend.CreateGeometryBuffers(label, vertexStreams, indices)
	if err != nil {
		return 0, fmt.Errorf("upload %s: %w", label, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextGeometry++
	id := r.nextGeometry
	r.geometries[id] = &geometryBuffers{
		label:      label,
		streams:    streams,
		index:      index,
		indexCount: indexCount,
	}
	r.logger.Debug("geometry uploaded", zap.String("label", label), zap.Uint32("id", id), zap.Int("indices", indexCount))
	return id, nil
}

func (r *renderer) ReleaseGeometry(id uint32) bool {
	r.mu.Lock()
	g, ok := r.geometries[id]
	delete(r.geometries, id)
	r.mu.Unlock()

	if !ok {
		return false
	}
	r.releaseBuffers(g)
	return true
}

func (r *renderer) releaseBuffers(g *geometryBuffers) {
	for _, buf := range g.streams {
		r.backend.ReleaseBuffer(buf)
	}
	r.backend.ReleaseBuffer(g.index)
}

func (r *renderer) GeometryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.geometries)
}

func (r *renderer) ApplyView(v params.ViewOptions) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.viewApplied && r.view == v {
		return
	}

	samples := SampleCountFor(v.SampleCount)
	if samples != r.backend.SampleCount() {
		r.backend.SetSampleCount(samples)
		r.backend.ConfigureSurface(r.width, r.height)
	}

	r.logger.Debug("view options applied",
		zap.Stringer("antiAliasing", v.AntiAliasing),
		zap.Stringer("toneMapping", v.ToneMapping),
		zap.Stringer("dithering", v.Dithering),
		zap.Uint32("samples", uint32(samples)),
	)
	r.view = v
	r.viewApplied = true
}

func (r *renderer) View() params.ViewOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

func (r *renderer) SampleCount() MSAASampleCount {
	return r.backend.SampleCount()
}

func (r *renderer) UpdateLighting(sun light.Sun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	block := sun.GPU()
	if r.sunBuffer == nil {
		buf, err := r.backend.CreateUniformBuffer("Sun Uniform Buffer", uint64(block.Size()))
		if err != nil {
			return fmt.Errorf("create sun uniform buffer: %w", err)
		}
		r.sunBuffer = buf
	}
	r.backend.WriteBuffer(r.sunBuffer, 0, block.Marshal())
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()

	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	geometries := r.geometries
	r.geometries = make(map[uint32]*geometryBuffers)
	sunBuffer := r.sunBuffer
	r.sunBuffer = nil
	r.mu.Unlock()

	for _, g := range geometries {
		r.releaseBuffers(g)
	}
	r.backend.ReleaseBuffer(sunBuffer)
	r.backend.Release()
	r.logger.Debug("renderer released", zap.Int("geometries", len(geometries)))
}
