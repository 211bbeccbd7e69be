package geometry

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// PositionStride is the byte size of one FLOAT3 position attribute.
const PositionStride = 12

// TangentStride is the byte size of one normalized SHORT4 tangent attribute.
const TangentStride = 8

// IndexStride is the byte size of one UINT32 index.
const IndexStride = 4

// PositionBytes serializes the positions as tightly packed little-endian float3 values,
// ready for upload into vertex buffer slot 0.
//
// Returns:
//   - []byte: 48-byte buffer (4 vertices x 12 bytes)
func (p *Plane) PositionBytes() []byte {
	buf := make([]byte, len(p.positions)*PositionStride)
	offset := 0
	for _, v := range p.positions {
		offset = common.PutFloat32s(buf, offset, v[0], v[1], v[2])
	}
	return buf
}

// TangentBytes serializes the packed tangent frames as little-endian short4 values,
// ready for upload into vertex buffer slot 1 with the normalized flag set.
//
// Returns:
//   - []byte: 32-byte buffer (4 vertices x 8 bytes)
func (p *Plane) TangentBytes() []byte {
	buf := make([]byte, len(p.tangents)*TangentStride)
	for i, q := range p.tangents {
		for c, v := range q {
			binary.LittleEndian.PutUint16(buf[i*TangentStride+c*2:], uint16(v))
		}
	}
	return buf
}

// IndexBytes serializes the index list as little-endian uint32 values.
//
// Returns:
//   - []byte: 24-byte buffer (6 indices x 4 bytes)
func (p *Plane) IndexBytes() []byte {
	buf := make([]byte, len(p.indices)*IndexStride)
	for i, idx := range p.indices {
		binary.LittleEndian.PutUint32(buf[i*IndexStride:], idx)
	}
	return buf
}

// VertexStreams returns the per-slot vertex buffer contents in binding order
// (positions, tangents).
//
// Returns:
//   - [][]byte: one byte slice per vertex buffer slot
func (p *Plane) VertexStreams() [][]byte {
	return [][]byte{p.PositionBytes(), p.TangentBytes()}
}
