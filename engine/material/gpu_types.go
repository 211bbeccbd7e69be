package material

import (
	"encoding/binary"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// GPUMaterialParamsSize is the byte size of a marshaled GPUMaterialParams block.
const GPUMaterialParamsSize = 96

// GPUMaterialParams is the uniform parameter block of a material instance, laid out as six
// 16-byte rows (std140/std430 compatible). Colors are stored in linear space.
// Size: 96 bytes.
type GPUMaterialParams struct {
	BaseColor          [4]float32 // offset 0: linear RGB + alpha (16 bytes)
	Roughness          float32    // offset 16
	Metallic           float32    // offset 20
	Reflectance        float32    // offset 24
	ClearCoat          float32    // offset 28
	ClearCoatRoughness float32    // offset 32
	Anisotropy         float32    // offset 36
	Thickness          float32    // offset 40
	SubsurfacePower    float32    // offset 44
	SubsurfaceColor    [3]float32 // offset 48: linear RGB (12 bytes)
	_                  float32    // offset 60: padding
	SheenColor         [3]float32 // offset 64: linear RGB (12 bytes)
	_                  float32    // offset 76: padding
	ShadingModel       uint32     // offset 80: params.MaterialModel
	Blending           uint32     // offset 84: params.Blending
	_                  [2]uint32  // offset 88: padding
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, GPUMaterialParamsSize)
	off := common.PutFloat32s(buf, 0, g.BaseColor[:]...)
	off = common.PutFloat32s(buf, off,
		g.Roughness, g.Metallic, g.Reflectance, g.ClearCoat,
		g.ClearCoatRoughness, g.Anisotropy, g.Thickness, g.SubsurfacePower)
	off = common.PutFloat32s(buf, off, g.SubsurfaceColor[0], g.SubsurfaceColor[1], g.SubsurfaceColor[2], 0)
	off = common.PutFloat32s(buf, off, g.SheenColor[0], g.SheenColor[1], g.SheenColor[2], 0)
	binary.LittleEndian.PutUint32(buf[off:off+4], g.ShadingModel)
	binary.LittleEndian.PutUint32(buf[off+4:off+8], g.Blending)
	return buf
}
