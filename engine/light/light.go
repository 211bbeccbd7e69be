package light

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
)

// sun is the implementation of the Sun interface.
type sun struct {
	entity        entity.Entity
	direction     [3]float32
	color         [3]float32
	intensity     float32
	angularRadius float32 // degrees
	haloSize      float32
	haloFalloff   float32
	castsShadows  bool
}

// Sun is the directional light component of the sandbox: a distant light with a visible
// sun disk and halo. It is attached to a single light entity; adding or removing that
// entity from the scene is the synchronizer's job, not the component's.
//
// Colors are linear. Intensity is illuminance in lux.
type Sun interface {
	// Entity returns the entity the component is attached to.
	//
	// Returns:
	//   - entity.Entity: the light entity
	Entity() entity.Entity

	// Direction returns the normalized direction the light travels in.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the linear RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the illuminance of the light in lux.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// AngularRadius returns the angular radius of the sun disk in degrees.
	//
	// Returns:
	//   - float32: the angular radius
	AngularRadius() float32

	// HaloSize returns the halo radius as a multiple of the sun disk radius.
	//
	// Returns:
	//   - float32: the halo size
	HaloSize() float32

	// HaloFalloff returns the halo falloff exponent.
	//
	// Returns:
	//   - float32: the halo falloff
	HaloFalloff() float32

	// CastsShadows returns whether this light renders a shadow map.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the linear RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the illuminance in lux.
	//
	// Parameters:
	//   - lux: the intensity value
	SetIntensity(lux float32)

	// SetSunAngularRadius sets the angular radius of the sun disk.
	//
	// Parameters:
	//   - degrees: the radius in degrees
	SetSunAngularRadius(degrees float32)

	// SetSunHaloSize sets the halo radius as a multiple of the disk radius.
	//
	// Parameters:
	//   - size: the halo size
	SetSunHaloSize(size float32)

	// SetSunHaloFalloff sets the halo falloff exponent.
	//
	// Parameters:
	//   - falloff: the halo falloff
	SetSunHaloFalloff(falloff float32)

	// GPU returns the uniform block for the current light state.
	//
	// Returns:
	//   - GPUSun: the marshalable sun block
	GPU() GPUSun
}

var _ Sun = &sun{}

// NewSun creates a new Sun attached to e with the provided options applied. Defaults are a
// white, shadow casting sun of 100000 lux pointing straight down.
//
// Parameters:
//   - e: the light entity
//   - opts: variadic list of SunBuilderOption functions to configure the sun
//
// Returns:
//   - Sun: a new Sun instance
func NewSun(e entity.Entity, opts ...SunBuilderOption) Sun {
	s := &sun{
		entity:        e,
		direction:     [3]float32{0, -1, 0},
		color:         [3]float32{1, 1, 1},
		intensity:     100000.0,
		angularRadius: 1.9,
		haloSize:      10.0,
		haloFalloff:   80.0,
		castsShadows:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sun) Entity() entity.Entity {
	return s.entity
}

func (s *sun) Direction() [3]float32 {
	return s.direction
}

func (s *sun) Color() [3]float32 {
	return s.color
}

func (s *sun) Intensity() float32 {
	return s.intensity
}

func (s *sun) AngularRadius() float32 {
	return s.angularRadius
}

func (s *sun) HaloSize() float32 {
	return s.haloSize
}

func (s *sun) HaloFalloff() float32 {
	return s.haloFalloff
}

func (s *sun) CastsShadows() bool {
	return s.castsShadows
}

func (s *sun) SetDirection(x, y, z float32) {
	s.direction = normalize3(x, y, z)
}

func (s *sun) SetColor(r, g, b float32) {
	s.color = [3]float32{r, g, b}
}

func (s *sun) SetIntensity(lux float32) {
	s.intensity = lux
}

func (s *sun) SetSunAngularRadius(degrees float32) {
	s.angularRadius = degrees
}

func (s *sun) SetSunHaloSize(size float32) {
	s.haloSize = size
}

func (s *sun) SetSunHaloFalloff(falloff float32) {
	s.haloFalloff = falloff
}

func (s *sun) GPU() GPUSun {
	return newGPUSun(s)
}
