// Package params holds the user-editable material, lighting and post-processing state
// of the sandbox, together with the pure mappings derived from it (required parameter
// block fields and view options).
package params

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// MaterialModel selects the shading model of the displayed material.
type MaterialModel int

const (
	MaterialModelUnlit MaterialModel = iota
	MaterialModelLit
	MaterialModelSubsurface
	MaterialModelCloth
)

// MaterialModels lists every material model in cycling order.
var MaterialModels = []MaterialModel{
	MaterialModelUnlit,
	MaterialModelLit,
	MaterialModelSubsurface,
	MaterialModelCloth,
}

var materialModelNames = map[MaterialModel]string{
	MaterialModelUnlit:      "unlit",
	MaterialModelLit:        "lit",
	MaterialModelSubsurface: "subsurface",
	MaterialModelCloth:      "cloth",
}

func (m MaterialModel) String() string {
	if name, ok := materialModelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MaterialModel(%d)", int(m))
}

// Valid reports whether m is one of the defined material models.
func (m MaterialModel) Valid() bool {
	_, ok := materialModelNames[m]
	return ok
}

// Next returns the model following m in cycling order, wrapping after cloth.
func (m MaterialModel) Next() MaterialModel {
	return MaterialModels[(int(m)+1)%len(MaterialModels)]
}

// Blending selects how the material is composited. It is only meaningful for
// models other than unlit.
type Blending int

const (
	BlendingOpaque Blending = iota
	BlendingTransparent
	BlendingFade
)

// BlendingModes lists every blending mode in cycling order.
var BlendingModes = []Blending{
	BlendingOpaque,
	BlendingTransparent,
	BlendingFade,
}

var blendingNames = map[Blending]string{
	BlendingOpaque:      "opaque",
	BlendingTransparent: "transparent",
	BlendingFade:        "fade",
}

func (b Blending) String() string {
	if name, ok := blendingNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Blending(%d)", int(b))
}

// Valid reports whether b is one of the defined blending modes.
func (b Blending) Valid() bool {
	_, ok := blendingNames[b]
	return ok
}

// Next returns the blending mode following b in cycling order, wrapping after fade.
func (b Blending) Next() Blending {
	return BlendingModes[(int(b)+1)%len(BlendingModes)]
}

// IsBlended reports whether b composites with the framebuffer (transparent or fade).
func (b Blending) IsBlended() bool {
	return b == BlendingTransparent || b == BlendingFade
}

var (
	// ErrInvalidMaterialModel is returned when a material model name or value is not recognized.
	ErrInvalidMaterialModel = errors.New("invalid material model")

	// ErrInvalidBlending is returned when a blending mode name or value is not recognized.
	ErrInvalidBlending = errors.New("invalid blending mode")
)

// ParseMaterialModel converts a case-insensitive model name ("unlit", "lit", "subsurface",
// "cloth") to a MaterialModel.
//
// Parameters:
//   - s: the model name
//
// Returns:
//   - MaterialModel: the parsed model
//   - error: ErrInvalidMaterialModel (wrapped) if s names no model
func ParseMaterialModel(s string) (MaterialModel, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, m := range MaterialModels {
		if materialModelNames[m] == want {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMaterialModel, s)
}

// ParseBlending converts a case-insensitive blending name ("opaque", "transparent",
// "fade") to a Blending.
//
// Parameters:
//   - s: the blending name
//
// Returns:
//   - Blending: the parsed blending mode
//   - error: ErrInvalidBlending (wrapped) if s names no blending mode
func ParseBlending(s string) (Blending, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, b := range BlendingModes {
		if blendingNames[b] == want {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBlending, s)
}

// Parameters is the single coherent snapshot of everything the user can edit. Every field
// is independently editable; the synchronizer reads the whole record once per frame.
//
// Colors are sRGB encoded in [0, 1]; conversion to linear happens when they are written
// onto material instances or lights.
type Parameters struct {
	MaterialModel MaterialModel
	Blending      Blending

	Color              [3]float32
	Alpha              float32
	Roughness          float32
	Metallic           float32
	Reflectance        float32
	ClearCoat          float32
	ClearCoatRoughness float32
	Anisotropy         float32
	Thickness          float32
	SubsurfacePower    float32
	SubsurfaceColor    [3]float32
	SheenColor         [3]float32

	CastShadows bool

	LightEnabled     bool
	LightColor       [3]float32
	LightIntensity   float32 // lux
	LightDirection   [3]float32
	SunAngularRadius float32 // degrees
	SunHaloSize      float32
	SunHaloFalloff   float32
	IBLIntensity     float32
	IBLRotation      float32 // radians about +Y

	MSAA        bool
	ToneMapping bool
	Dithering   bool
	FXAA        bool
}

// Editable ranges.
const (
	MinAnisotropy       float32 = -1
	MinSubsurfacePower  float32 = 1
	MaxSubsurfacePower  float32 = 24
	MaxLightIntensity   float32 = 150000
	MinSunAngularRadius float32 = 0.1
	MaxSunAngularRadius float32 = 10
	MinSunHaloSize      float32 = 1.01
	MaxSunHaloSize      float32 = 40
	MaxSunHaloFalloff   float32 = 2048
	MaxIBLIntensity     float32 = 50000
	MaxIBLRotation      float32 = 2 * math.Pi
)

// Defaults returns the initial parameter state: a lit, opaque, light grey material under
// a warm sun with image based lighting and all post-processing except MSAA enabled.
//
// Returns:
//   - Parameters: the default parameter state
func Defaults() Parameters {
	return Parameters{
		MaterialModel: MaterialModelLit,
		Blending:      BlendingOpaque,

		Color:              [3]float32{0.69, 0.69, 0.69},
		Alpha:              1.0,
		Roughness:          0.6,
		Metallic:           0.0,
		Reflectance:        0.5,
		ClearCoat:          0.0,
		ClearCoatRoughness: 0.0,
		Anisotropy:         0.0,
		Thickness:          1.0,
		SubsurfacePower:    12.234,
		SubsurfaceColor:    [3]float32{0, 0, 0},
		SheenColor:         [3]float32{0.83, 0.0, 0.0},

		CastShadows: true,

		LightEnabled:     true,
		LightColor:       [3]float32{0.98, 0.92, 0.89},
		LightIntensity:   110000.0,
		LightDirection:   [3]float32{0.6, -1.0, -0.8},
		SunAngularRadius: 1.9,
		SunHaloSize:      10.0,
		SunHaloFalloff:   80.0,
		IBLIntensity:     30000.0,
		IBLRotation:      0.0,

		MSAA:        false,
		ToneMapping: true,
		Dithering:   true,
		FXAA:        true,
	}
}

// New allocates a Parameters initialized with Defaults.
//
// Returns:
//   - *Parameters: the new parameter state
func New() *Parameters {
	p := Defaults()
	return &p
}

// Clamp limits every bounded field to its editable range. Enumerations and the light
// direction are left untouched.
func (p *Parameters) Clamp() {
	p.Color = common.Clamp3(p.Color, 0, 1)
	p.Alpha = common.Clamp(p.Alpha, 0, 1)
	p.Roughness = common.Clamp(p.Roughness, 0, 1)
	p.Metallic = common.Clamp(p.Metallic, 0, 1)
	p.Reflectance = common.Clamp(p.Reflectance, 0, 1)
	p.ClearCoat = common.Clamp(p.ClearCoat, 0, 1)
	p.ClearCoatRoughness = common.Clamp(p.ClearCoatRoughness, 0, 1)
	p.Anisotropy = common.Clamp(p.Anisotropy, MinAnisotropy, 1)
	p.Thickness = common.Clamp(p.Thickness, 0, 1)
	p.SubsurfacePower = common.Clamp(p.SubsurfacePower, MinSubsurfacePower, MaxSubsurfacePower)
	p.SubsurfaceColor = common.Clamp3(p.SubsurfaceColor, 0, 1)
	p.SheenColor = common.Clamp3(p.SheenColor, 0, 1)

	p.LightColor = common.Clamp3(p.LightColor, 0, 1)
	p.LightIntensity = common.Clamp(p.LightIntensity, 0, MaxLightIntensity)
	p.SunAngularRadius = common.Clamp(p.SunAngularRadius, MinSunAngularRadius, MaxSunAngularRadius)
	p.SunHaloSize = common.Clamp(p.SunHaloSize, MinSunHaloSize, MaxSunHaloSize)
	p.SunHaloFalloff = common.Clamp(p.SunHaloFalloff, 0, MaxSunHaloFalloff)
	p.IBLIntensity = common.Clamp(p.IBLIntensity, 0, MaxIBLIntensity)
	p.IBLRotation = common.Clamp(p.IBLRotation, -MaxIBLRotation, MaxIBLRotation)
}

// Validate reports enumeration values outside their defined sets. It is meant for state
// assembled from external input; edits made through the editor can never produce one.
//
// Returns:
//   - error: ErrInvalidMaterialModel or ErrInvalidBlending (wrapped), or nil
func (p *Parameters) Validate() error {
	if !p.MaterialModel.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMaterialModel, int(p.MaterialModel))
	}
	if !p.Blending.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidBlending, int(p.Blending))
	}
	return nil
}

// RequiredFields returns the parameter block fields relevant to the current model and
// blending mode. See the package level RequiredFields.
func (p *Parameters) RequiredFields() FieldSet {
	return RequiredFields(p.MaterialModel, p.Blending)
}
