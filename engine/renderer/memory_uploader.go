package renderer

import (
	"fmt"
	"sort"
	"sync"
)

// Upload is a geometry held by a MemoryUploader.
type Upload struct {
	Label         string
	VertexStreams [][]byte
	Indices       []byte
	IndexCount    int
}

// MemoryUploader keeps uploaded geometry in host memory.
// It stands in for the GPU renderer in headless runs and tests.
type MemoryUploader struct {
	mu       sync.Mutex
	next     uint32
	uploads  map[uint32]Upload
	released int
}

// NewMemoryUploader creates an empty MemoryUploader.
//
// Returns:
//   - *MemoryUploader: the uploader
func NewMemoryUploader() *MemoryUploader {
	return &MemoryUploader{uploads: make(map[uint32]Upload)}
}

// UploadGeometry validates and copies the streams. Ids start at 1.
//
// Parameters:
//   - label: a debug label for the geometry
//   - vertexStreams: one byte slice per vertex attribute stream
//   - indices: little-endian uint32 index data
//   - indexCount: the number of indices in indices
//
// Returns:
//   - uint32: the id of the stored geometry
//   - error: ErrEmptyGeometry or ErrIndexCountMismatch
func (m *MemoryUploader) UploadGeometry(label string, vertexStreams [][]byte, indices []byte, indexCount int) (uint32, error) {
	if err := validateGeometry(vertexStreams, indices, indexCount); err != nil {
		return 0, fmt.Errorf("upload %s: %w", label, err)
	}

	streams := make([][]byte, len(vertexStreams))
	for i, s := range vertexStreams {
		streams[i] = append([]byte(nil), s...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	m.uploads[m.next] = Upload{
		Label:         label,
		VertexStreams: streams,
		Indices:       append([]byte(nil), indices...),
		IndexCount:    indexCount,
	}
	return m.next, nil
}

// ReleaseGeometry drops a stored geometry.
//
// Parameters:
//   - id: the geometry id
//
// Returns:
//   - bool: true if the geometry was live
func (m *MemoryUploader) ReleaseGeometry(id uint32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.uploads[id]; !ok {
		return false
	}
	delete(m.uploads, id)
	m.released++
	return true
}

// Upload returns a stored geometry.
func (m *MemoryUploader) Upload(id uint32) (Upload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.uploads[id]
	return u, ok
}

// GeometryCount returns the number of live geometries.
func (m *MemoryUploader) GeometryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploads)
}

// Released returns how many geometries have been released.
func (m *MemoryUploader) Released() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

// Labels returns the labels of the live geometries, sorted.
func (m *MemoryUploader) Labels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	labels := make([]string, 0, len(m.uploads))
	for _, u := range m.uploads {
		labels = append(labels, u.Label)
	}
	sort.Strings(labels)
	return labels
}
