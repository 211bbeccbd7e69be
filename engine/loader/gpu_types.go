package loader

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
)

// primitiveBytes serializes a primitive's vertex streams with the same layout as the
// shadow plane: float3 positions, snorm16x4 tangent frames and uint32 indices.
//
// Returns:
//   - positions: len(positions) * geometry.PositionStride bytes
//   - tangents: len(positions) * geometry.TangentStride bytes
//   - indices: len(indices) * geometry.IndexStride bytes
func primitiveBytes(p importedPrimitive) (positions, tangents, indices []byte) {
	positions = make([]byte, len(p.positions)*geometry.PositionStride)
	off := 0
	for _, v := range p.positions {
		off = common.PutFloat32s(positions, off, v[0], v[1], v[2])
	}

	tangents = make([]byte, len(p.tangents)*geometry.TangentStride)
	for i, q := range p.tangents {
		for c, v := range q {
			binary.LittleEndian.PutUint16(tangents[i*geometry.TangentStride+c*2:], uint16(v))
		}
	}

	indices = make([]byte, len(p.indices)*geometry.IndexStride)
	for i, idx := range p.indices {
		binary.LittleEndian.PutUint32(indices[i*geometry.IndexStride:], idx)
	}
	return positions, tangents, indices
}
