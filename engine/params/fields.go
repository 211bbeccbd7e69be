package params

import (
	"math/bits"
	"strings"
)

// Field identifies one entry of a material instance parameter block.
type Field uint8

const (
	FieldBaseColor Field = iota
	FieldAlpha
	FieldRoughness
	FieldMetallic
	FieldReflectance
	FieldClearCoat
	FieldClearCoatRoughness
	FieldAnisotropy
	FieldThickness
	FieldSubsurfacePower
	FieldSubsurfaceColor
	FieldSheenColor

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldBaseColor:          "baseColor",
	FieldAlpha:              "alpha",
	FieldRoughness:          "roughness",
	FieldMetallic:           "metallic",
	FieldReflectance:        "reflectance",
	FieldClearCoat:          "clearCoat",
	FieldClearCoatRoughness: "clearCoatRoughness",
	FieldAnisotropy:         "anisotropy",
	FieldThickness:          "thickness",
	FieldSubsurfacePower:    "subsurfacePower",
	FieldSubsurfaceColor:    "subsurfaceColor",
	FieldSheenColor:         "sheenColor",
}

// String returns the parameter name as it appears in the material definition.
func (f Field) String() string {
	if f < fieldCount {
		return fieldNames[f]
	}
	return "unknown"
}

// IsColor reports whether the field holds an sRGB color.
func (f Field) IsColor() bool {
	return f == FieldBaseColor || f == FieldSubsurfaceColor || f == FieldSheenColor
}

// AllFields lists every field in declaration order.
var AllFields = func() []Field {
	fields := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		fields = append(fields, f)
	}
	return fields
}()

// FieldSet is a set of parameter block fields.
type FieldSet uint32

// NewFieldSet builds a set from the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	var s FieldSet
	for _, f := range fields {
		s = s.With(f)
	}
	return s
}

// With returns s with f added.
func (s FieldSet) With(f Field) FieldSet {
	return s | 1<<f
}

// Has reports whether f is in s.
func (s FieldSet) Has(f Field) bool {
	return s&(1<<f) != 0
}

// Union returns the fields in s or o.
func (s FieldSet) Union(o FieldSet) FieldSet {
	return s | o
}

// Len returns the number of fields in s.
func (s FieldSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Fields returns the members of s in declaration order.
func (s FieldSet) Fields() []Field {
	out := make([]Field, 0, s.Len())
	for _, f := range AllFields {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s FieldSet) String() string {
	names := make([]string, 0, s.Len())
	for _, f := range s.Fields() {
		names = append(names, f.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// RequiredFields is the single mapping from (model, blending) to the parameter block fields
// that matter for that combination. The instance resolver writes exactly these fields and
// the editor shows exactly these fields, so the two can never drift apart.
//
//   - baseColor: always
//   - alpha: model is not unlit and blending is transparent or fade
//   - roughness: model is not unlit
//   - metallic, reflectance: model is lit or subsurface
//   - clearCoat, clearCoatRoughness, anisotropy: model is lit
//   - thickness, subsurfacePower, subsurfaceColor: model is subsurface
//   - sheenColor, subsurfaceColor: model is cloth
//
// Parameters:
//   - model: the material model
//   - blending: the blending mode (ignored for unlit)
//
// Returns:
//   - FieldSet: the relevant fields
func RequiredFields(model MaterialModel, blending Blending) FieldSet {
	s := NewFieldSet(FieldBaseColor)
	if model == MaterialModelUnlit {
		return s
	}

	if blending.IsBlended() {
		s = s.With(FieldAlpha)
	}
	s = s.With(FieldRoughness)

	if model != MaterialModelCloth {
		s = s.With(FieldMetallic).With(FieldReflectance)
	}
	if model != MaterialModelCloth && model != MaterialModelSubsurface {
		s = s.With(FieldClearCoat).With(FieldClearCoatRoughness).With(FieldAnisotropy)
	}
	switch model {
	case MaterialModelSubsurface:
		s = s.With(FieldThickness).With(FieldSubsurfacePower).With(FieldSubsurfaceColor)
	case MaterialModelCloth:
		s = s.With(FieldSheenColor).With(FieldSubsurfaceColor)
	}
	return s
}

// Scalar returns the value of a scalar field. It panics for color fields.
//
// Parameters:
//   - f: a non-color field
//
// Returns:
//   - float32: the current value
func (p *Parameters) Scalar(f Field) float32 {
	switch f {
	case FieldAlpha:
		return p.Alpha
	case FieldRoughness:
		return p.Roughness
	case FieldMetallic:
		return p.Metallic
	case FieldReflectance:
		return p.Reflectance
	case FieldClearCoat:
		return p.ClearCoat
	case FieldClearCoatRoughness:
		return p.ClearCoatRoughness
	case FieldAnisotropy:
		return p.Anisotropy
	case FieldThickness:
		return p.Thickness
	case FieldSubsurfacePower:
		return p.SubsurfacePower
	}
	panic("params: " + f.String() + " is not a scalar field")
}

// ColorOf returns the sRGB value of a color field. It panics for scalar fields.
//
// Parameters:
//   - f: a color field
//
// Returns:
//   - [3]float32: the current sRGB color
func (p *Parameters) ColorOf(f Field) [3]float32 {
	switch f {
	case FieldBaseColor:
		return p.Color
	case FieldSubsurfaceColor:
		return p.SubsurfaceColor
	case FieldSheenColor:
		return p.SheenColor
	}
	panic("params: " + f.String() + " is not a color field")
}
