package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// GPUSunSize is the byte size of a marshaled GPUSun block.
const GPUSunSize = 48

// GPUSun is the GPU-aligned representation of the directional sun light.
// Size: 48 bytes (three vec4 rows).
type GPUSun struct {
	Color        [3]float32 // offset  0: linear RGB color
	Intensity    float32    // offset 12: illuminance in lux
	Direction    [3]float32 // offset 16: normalized direction
	CastsShadows uint32     // offset 28: 1 = casts shadows, 0 = does not
	Disk         [4]float32 // offset 32: cos(r), sin(r), 1/(cos(r*haloSize)-cos(r)), haloFalloff
}

func newGPUSun(s *sun) GPUSun {
	r := float64(common.DegToRad(s.angularRadius))
	cosR := math.Cos(r)
	haloCos := math.Cos(r * float64(s.haloSize))

	g := GPUSun{
		Color:     s.color,
		Intensity: s.intensity,
		Direction: s.direction,
		Disk: [4]float32{
			float32(cosR),
			float32(math.Sin(r)),
			float32(1.0 / (haloCos - cosR)),
			s.haloFalloff,
		},
	}
	if s.castsShadows {
		g.CastsShadows = 1
	}
	return g
}

// Size returns the size of the GPUSun struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUSun) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSun struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUSun) Marshal() []byte {
	buf := make([]byte, GPUSunSize)
	off := common.PutFloat32s(buf, 0, g.Color[0], g.Color[1], g.Color[2], g.Intensity)
	off = common.PutFloat32s(buf, off, g.Direction[:]...)
	binary.LittleEndian.PutUint32(buf[off:off+4], g.CastsShadows)
	common.PutFloat32s(buf, off+4, g.Disk[:]...)
	return buf
}
