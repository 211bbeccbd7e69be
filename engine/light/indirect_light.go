package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// indirectLight is the implementation of the IndirectLight interface.
type indirectLight struct {
	source    string
	intensity float32
	rotation  mgl32.Mat3
}

// IndirectLight is image based environment lighting. Only its intensity and its
// orientation are adjustable at runtime.
type IndirectLight interface {
	// Source returns the path of the environment the light was loaded from.
	//
	// Returns:
	//   - string: the environment path, or "" for the built-in environment
	Source() string

	// Intensity returns the environment intensity.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Rotation returns the environment orientation.
	//
	// Returns:
	//   - mgl32.Mat3: the rotation matrix
	Rotation() mgl32.Mat3

	// SetIntensity sets the environment intensity.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetRotation sets the environment orientation.
	//
	// Parameters:
	//   - rotation: a rotation matrix
	SetRotation(rotation mgl32.Mat3)
}

var _ IndirectLight = &indirectLight{}

// NewIndirectLight creates an IndirectLight for the environment at source with identity
// rotation.
//
// Parameters:
//   - source: the environment path
//   - intensity: the initial intensity
//
// Returns:
//   - IndirectLight: a new IndirectLight instance
func NewIndirectLight(source string, intensity float32) IndirectLight {
	return &indirectLight{
		source:    source,
		intensity: intensity,
		rotation:  mgl32.Ident3(),
	}
}

func (l *indirectLight) Source() string {
	return l.source
}

func (l *indirectLight) Intensity() float32 {
	return l.intensity
}

func (l *indirectLight) Rotation() mgl32.Mat3 {
	return l.rotation
}

func (l *indirectLight) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *indirectLight) SetRotation(rotation mgl32.Mat3) {
	l.rotation = rotation
}
