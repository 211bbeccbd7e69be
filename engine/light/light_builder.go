package light

import "math"

// SunBuilderOption is a function that configures a Sun instance during construction.
type SunBuilderOption func(*sun)

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - SunBuilderOption: a function that applies the direction option to a sun
func WithDirection(x, y, z float32) SunBuilderOption {
	return func(s *sun) {
		s.direction = normalize3(x, y, z)
	}
}

// WithColor is an option builder that sets the linear RGB color of the light.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - SunBuilderOption: a function that applies the color option to a sun
func WithColor(r, g, b float32) SunBuilderOption {
	return func(s *sun) {
		s.color = [3]float32{r, g, b}
	}
}

// WithIntensity is an option builder that sets the illuminance in lux.
//
// Parameters:
//   - lux: the intensity value
//
// Returns:
//   - SunBuilderOption: a function that applies the intensity option to a sun
func WithIntensity(lux float32) SunBuilderOption {
	return func(s *sun) {
		s.intensity = lux
	}
}

// WithSunDisk is an option builder that sets the sun disk radius and its halo.
//
// Parameters:
//   - angularRadius: the disk radius in degrees
//   - haloSize: the halo radius as a multiple of the disk radius
//   - haloFalloff: the halo falloff exponent
//
// Returns:
//   - SunBuilderOption: a function that applies the sun disk options to a sun
func WithSunDisk(angularRadius, haloSize, haloFalloff float32) SunBuilderOption {
	return func(s *sun) {
		s.angularRadius = angularRadius
		s.haloSize = haloSize
		s.haloFalloff = haloFalloff
	}
}

// WithCastsShadows is an option builder that sets whether the light renders a shadow map.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - SunBuilderOption: a function that applies the shadow casting option to a sun
func WithCastsShadows(castsShadows bool) SunBuilderOption {
	return func(s *sun) {
		s.castsShadows = castsShadows
	}
}

// normalize3 normalizes a 3-component vector. Returns a zero vector if the input
// has zero length.
func normalize3(x, y, z float32) [3]float32 {
	length := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	inv := 1.0 / length
	return [3]float32{x * inv, y * inv, z * inv}
}
