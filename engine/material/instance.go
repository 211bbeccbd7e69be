package material

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
)

var nextInstanceID atomic.Uint32

// instance is the implementation of the Instance interface.
type instance struct {
	id        uint32
	name      string
	variant   Variant
	block     GPUMaterialParams
	written   params.FieldSet
	destroyed bool
}

// Instance is a material instance: a fixed variant plus a mutable parameter block.
//
// Instances are created once at setup and destroyed exactly once at teardown. Destroy is
// idempotent; any other call on a destroyed instance panics, since using a released
// resource is a programming error.
type Instance interface {
	// ID returns a process-unique identifier for the instance.
	//
	// Returns:
	//   - uint32: the instance identifier
	ID() uint32

	// Name returns the instance name (the variant name, or the source material name for
	// instances created by the mesh loader).
	//
	// Returns:
	//   - string: the instance name
	Name() string

	// Variant returns the variant the instance was created from.
	//
	// Returns:
	//   - Variant: the instance variant
	Variant() Variant

	// SetScalar writes a scalar parameter.
	//
	// Parameters:
	//   - f: a scalar field (not a color field and not alpha)
	//   - v: the value
	SetScalar(f params.Field, v float32)

	// SetColor writes an RGB parameter. Colors must already be linear.
	//
	// Parameters:
	//   - f: a color field
	//   - rgb: the linear color
	SetColor(f params.Field, rgb [3]float32)

	// SetBaseColorAlpha writes the base color as RGBA, marking both baseColor and alpha
	// as written.
	//
	// Parameters:
	//   - rgba: the linear color and alpha
	SetBaseColorAlpha(rgba [4]float32)

	// Params returns a copy of the current parameter block.
	//
	// Returns:
	//   - GPUMaterialParams: the parameter block
	Params() GPUMaterialParams

	// Written returns every field written since creation.
	//
	// Returns:
	//   - params.FieldSet: the written fields
	Written() params.FieldSet

	// Destroy releases the instance. Calling it again has no effect.
	//
	// Returns:
	//   - bool: true if this call released the instance
	Destroy() bool

	// Destroyed reports whether the instance has been released.
	//
	// Returns:
	//   - bool: true once Destroy has been called
	Destroyed() bool
}

var _ Instance = &instance{}

// NewInstance creates a new Instance configured with the provided options. Without options
// the instance is a lit, opaque, white material named "lit".
//
// Parameters:
//   - options: variadic list of InstanceBuilderOption functions to configure the instance
//
// Returns:
//   - Instance: a new Instance
func NewInstance(options ...InstanceBuilderOption) Instance {
	i := &instance{
		id:      nextInstanceID.Add(1),
		variant: VariantLit,
		block: GPUMaterialParams{
			BaseColor:       [4]float32{1, 1, 1, 1},
			Roughness:       1.0,
			Reflectance:     0.5,
			Thickness:       0.5,
			SubsurfacePower: 12.234,
		},
	}
	for _, opt := range options {
		opt(i)
	}

	info := i.variant.info()
	if i.name == "" {
		i.name = info.name
	}
	i.block.ShadingModel = uint32(info.model)
	i.block.Blending = uint32(info.blending)
	return i
}

func (i *instance) ID() uint32 {
	return i.id
}

func (i *instance) Name() string {
	return i.name
}

func (i *instance) Variant() Variant {
	return i.variant
}

func (i *instance) SetScalar(f params.Field, v float32) {
	i.mustBeLive()
	switch f {
	case params.FieldRoughness:
		i.block.Roughness = v
	case params.FieldMetallic:
		i.block.Metallic = v
	case params.FieldReflectance:
		i.block.Reflectance = v
	case params.FieldClearCoat:
		i.block.ClearCoat = v
	case params.FieldClearCoatRoughness:
		i.block.ClearCoatRoughness = v
	case params.FieldAnisotropy:
		i.block.Anisotropy = v
	case params.FieldThickness:
		i.block.Thickness = v
	case params.FieldSubsurfacePower:
		i.block.SubsurfacePower = v
	default:
		panic(fmt.Sprintf("material: %s is not a scalar parameter", f))
	}
	i.written = i.written.With(f)
}

func (i *instance) SetColor(f params.Field, rgb [3]float32) {
	i.mustBeLive()
	switch f {
	case params.FieldBaseColor:
		i.block.BaseColor = [4]float32{rgb[0], rgb[1], rgb[2], i.block.BaseColor[3]}
	case params.FieldSubsurfaceColor:
		i.block.SubsurfaceColor = rgb
	case params.FieldSheenColor:
		i.block.SheenColor = rgb
	default:
		panic(fmt.Sprintf("material: %s is not a color parameter", f))
	}
	i.written = i.written.With(f)
}

func (i *instance) SetBaseColorAlpha(rgba [4]float32) {
	i.mustBeLive()
	i.block.BaseColor = rgba
	i.written = i.written.With(params.FieldBaseColor).With(params.FieldAlpha)
}

func (i *instance) Params() GPUMaterialParams {
	i.mustBeLive()
	return i.block
}

func (i *instance) Written() params.FieldSet {
	return i.written
}

func (i *instance) Destroy() bool {
	if i.destroyed {
		return false
	}
	i.destroyed = true
	return true
}

func (i *instance) Destroyed() bool {
	return i.destroyed
}

func (i *instance) mustBeLive() {
	if i.destroyed {
		panic(fmt.Sprintf("material: use of destroyed instance %q", i.name))
	}
}
