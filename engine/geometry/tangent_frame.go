package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// snorm16Max is the largest magnitude representable by a signed-normalized 16-bit
// component (2^15 - 1).
const snorm16Max = 32767

// snorm16Bias is the smallest non-zero magnitude a snorm16 component can hold. The packed
// quaternion's w must never quantize to zero, otherwise the reflection sign is lost.
const snorm16Bias = 1.0 / snorm16Max

// PackTangentFrame encodes an orthonormal tangent frame as a unit quaternion suitable for
// snorm16 storage. The rotation is taken from the frame [T, N×T, N]; w is kept positive and
// at least snorm16Bias, and the whole quaternion is negated when the input frame is
// reflected ((T×N)·B < 0), so the shader can recover bitangent handedness from sign(w).
//
// The encoding is a pure function of its inputs: the same (t, b, n) always yields a
// bit-identical result.
//
// Parameters:
//   - t: the unit tangent
//   - b: the unit bitangent (only its handedness is used)
//   - n: the unit normal
//
// Returns:
//   - mgl32.Quat: the packed tangent frame
func PackTangentFrame(t, b, n mgl32.Vec3) mgl32.Quat {
	q := mgl32.Mat4ToQuat(mgl32.Mat3FromCols(t, n.Cross(t), n).Mat4()).Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}

	if q.W < snorm16Bias {
		q.W = snorm16Bias
		factor := float32(math.Sqrt(1.0 - float64(snorm16Bias)*float64(snorm16Bias)))
		q.V = q.V.Mul(factor)
	}

	if t.Cross(n).Dot(b) < 0 {
		q = q.Scale(-1)
	}
	return q
}

// PackSnorm16 quantizes each component of v to a signed-normalized 16-bit integer:
// round(clamp(v, -1, 1) * 32767).
//
// Parameters:
//   - v: the components to quantize
//
// Returns:
//   - [4]int16: the quantized components
func PackSnorm16(v [4]float32) [4]int16 {
	var out [4]int16
	for i, c := range v {
		if c < -1 {
			c = -1
		} else if c > 1 {
			c = 1
		}
		out[i] = int16(math.Round(float64(c) * snorm16Max))
	}
	return out
}

// PackedTangentFrame packs a tangent frame straight to its snorm16 vertex attribute
// layout (x, y, z, w).
//
// Parameters:
//   - t: the unit tangent
//   - b: the unit bitangent
//   - n: the unit normal
//
// Returns:
//   - [4]int16: the short4 tangent attribute
func PackedTangentFrame(t, b, n mgl32.Vec3) [4]int16 {
	q := PackTangentFrame(t, b, n)
	return PackSnorm16([4]float32{q.V[0], q.V[1], q.V[2], q.W})
}
