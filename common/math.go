package common

import (
	"encoding/binary"
	"math"
)

// Clamp restricts v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp3 clamps every component of a 3-component vector to [lo, hi].
//
// Parameters:
//   - v: the vector to clamp
//   - lo: the lower bound applied to each component
//   - hi: the upper bound applied to each component
//
// Returns:
//   - [3]float32: the clamped vector
func Clamp3(v [3]float32, lo, hi float32) [3]float32 {
	return [3]float32{Clamp(v[0], lo, hi), Clamp(v[1], lo, hi), Clamp(v[2], lo, hi)}
}

// DegToRad converts an angle in degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180.0
}

// PutFloat32s writes each value into buf as consecutive little-endian IEEE-754 words,
// starting at offset. buf must have room for 4*len(values) bytes past offset.
//
// Parameters:
//   - buf: destination byte slice
//   - offset: byte offset of the first word
//   - values: the float32 values to write
//
// Returns:
//   - int: the offset just past the last written word
func PutFloat32s(buf []byte, offset int, values ...float32) int {
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(v))
		offset += 4
	}
	return offset
}
