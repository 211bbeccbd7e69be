package material

import (
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
)

// resolver is the implementation of the Resolver interface.
type resolver struct {
	set    InstanceSet
	last   Variant
	logger *zap.Logger
}

// Resolver maps the current parameter state to the material instance that should be
// displayed and writes the relevant parameters onto it.
type Resolver interface {
	// Resolve selects the instance for p.MaterialModel and p.Blending and writes exactly
	// params.RequiredFields onto it, converting colors from sRGB to linear. When alpha is
	// required the base color is written as RGBA.
	//
	// Resolve never creates or destroys instances. An out-of-range model or blending value
	// is a programming error and panics.
	//
	// Parameters:
	//   - p: the current parameter state
	//
	// Returns:
	//   - Instance: the selected instance
	//   - params.FieldSet: the fields written by this call
	Resolve(p *params.Parameters) (Instance, params.FieldSet)

	// Instances returns the instance set the resolver selects from.
	//
	// Returns:
	//   - InstanceSet: the instance set
	Instances() InstanceSet
}

var _ Resolver = &resolver{}

// ResolverBuilderOption is a function that configures a resolver during construction.
type ResolverBuilderOption func(*resolver)

// WithLogger sets the logger used to report variant switches.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ResolverBuilderOption: a function that applies the logger option to a resolver
func WithLogger(l *zap.Logger) ResolverBuilderOption {
	return func(r *resolver) {
		r.logger = l
	}
}

// NewResolver creates a Resolver selecting from set.
//
// Parameters:
//   - set: the instance set to select from
//   - options: variadic list of ResolverBuilderOption functions
//
// Returns:
//   - Resolver: the new resolver
func NewResolver(set InstanceSet, options ...ResolverBuilderOption) Resolver {
	r := &resolver{
		set:    set,
		last:   -1,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *resolver) Instances() InstanceSet {
	return r.set
}

func (r *resolver) Resolve(p *params.Parameters) (Instance, params.FieldSet) {
	variant := VariantFor(p.MaterialModel, p.Blending)
	mi := r.set.Get(variant)
	if variant != r.last {
		r.logger.Debug("material variant selected",
			zap.Stringer("variant", variant),
			zap.Stringer("model", p.MaterialModel),
			zap.Stringer("blending", p.Blending))
		r.last = variant
	}

	fields := params.RequiredFields(p.MaterialModel, p.Blending)
	for _, f := range fields.Fields() {
		switch {
		case f == params.FieldAlpha:
			// written together with the base color below
		case f == params.FieldBaseColor:
			c := common.SRGBToLinear3(p.Color)
			if fields.Has(params.FieldAlpha) {
				mi.SetBaseColorAlpha([4]float32{c[0], c[1], c[2], p.Alpha})
			} else {
				mi.SetColor(f, c)
			}
		case f.IsColor():
			mi.SetColor(f, common.SRGBToLinear3(p.ColorOf(f)))
		default:
			mi.SetScalar(f, p.Scalar(f))
		}
	}
	return mi, fields
}
