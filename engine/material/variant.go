package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
)

// Variant identifies one prebuilt material of the sandbox. Each variant fixes a shading
// model and a blending mode; everything else lives in the instance parameter block.
type Variant int

const (
	VariantUnlit Variant = iota
	VariantLit
	VariantSubsurface
	VariantCloth
	VariantLitTransparent
	VariantLitFade

	// VariantGroundShadow is the shadow-receiving material of the ground plane. It is not
	// part of an InstanceSet and is never selected by the resolver.
	VariantGroundShadow
)

// Variants lists the variants an InstanceSet holds, in creation order.
var Variants = []Variant{
	VariantUnlit,
	VariantLit,
	VariantSubsurface,
	VariantCloth,
	VariantLitTransparent,
	VariantLitFade,
}

type variantInfo struct {
	name     string
	model    params.MaterialModel
	blending params.Blending
}

var variantTable = map[Variant]variantInfo{
	VariantUnlit:          {"unlit", params.MaterialModelUnlit, params.BlendingOpaque},
	VariantLit:            {"lit", params.MaterialModelLit, params.BlendingOpaque},
	VariantSubsurface:     {"subsurface", params.MaterialModelSubsurface, params.BlendingOpaque},
	VariantCloth:          {"cloth", params.MaterialModelCloth, params.BlendingOpaque},
	VariantLitTransparent: {"litTransparent", params.MaterialModelLit, params.BlendingTransparent},
	VariantLitFade:        {"litFade", params.MaterialModelLit, params.BlendingFade},
	VariantGroundShadow:   {"groundShadow", params.MaterialModelUnlit, params.BlendingTransparent},
}

func (v Variant) info() variantInfo {
	info, ok := variantTable[v]
	if !ok {
		panic(fmt.Sprintf("material: unknown variant %d", int(v)))
	}
	return info
}

func (v Variant) String() string {
	if info, ok := variantTable[v]; ok {
		return info.name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Model returns the shading model the variant was built with.
func (v Variant) Model() params.MaterialModel {
	return v.info().model
}

// Blending returns the blending mode the variant was built with.
func (v Variant) Blending() params.Blending {
	return v.info().blending
}

// VariantFor selects the variant for a model and blending mode. Only the lit model has
// blended variants; the other models always select their opaque variant and carry alpha
// in the parameter block alone.
//
// Parameters:
//   - model: the material model (must be valid)
//   - blending: the blending mode (must be valid)
//
// Returns:
//   - Variant: the matching variant
func VariantFor(model params.MaterialModel, blending params.Blending) Variant {
	if !blending.Valid() {
		panic(fmt.Sprintf("material: invalid blending %d", int(blending)))
	}
	switch model {
	case params.MaterialModelUnlit:
		return VariantUnlit
	case params.MaterialModelLit:
		switch blending {
		case params.BlendingTransparent:
			return VariantLitTransparent
		case params.BlendingFade:
			return VariantLitFade
		}
		return VariantLit
	case params.MaterialModelSubsurface:
		return VariantSubsurface
	case params.MaterialModelCloth:
		return VariantCloth
	}
	panic(fmt.Sprintf("material: invalid material model %d", int(model)))
}
