package common

import "math"

// SRGBToLinear converts one sRGB-encoded channel in [0, 1] to linear light using the
// exact piecewise sRGB transfer function (not the 2.2 gamma approximation).
//
// Parameters:
//   - c: the sRGB encoded channel value
//
// Returns:
//   - float32: the linear channel value
func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}

// SRGBToLinear3 converts an sRGB color to linear light channel by channel.
//
// Parameters:
//   - c: the sRGB color
//
// Returns:
//   - [3]float32: the linear color
func SRGBToLinear3(c [3]float32) [3]float32 {
	return [3]float32{SRGBToLinear(c[0]), SRGBToLinear(c[1]), SRGBToLinear(c[2])}
}
