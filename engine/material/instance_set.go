package material

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
)

// instanceSet is the implementation of the InstanceSet interface.
type instanceSet struct {
	instances map[Variant]Instance
}

// InstanceSet owns one material instance per variant in Variants. The set is built once
// at setup; the resolver only ever picks from it.
type InstanceSet interface {
	// Get returns the instance for a variant.
	//
	// Parameters:
	//   - v: one of Variants
	//
	// Returns:
	//   - Instance: the instance, or nil if v is not part of the set
	Get(v Variant) Instance

	// For returns the instance matching a model and blending mode (see VariantFor).
	//
	// Parameters:
	//   - model: the material model
	//   - blending: the blending mode
	//
	// Returns:
	//   - Instance: the matching instance
	For(model params.MaterialModel, blending params.Blending) Instance

	// All returns every instance in Variants order.
	//
	// Returns:
	//   - []Instance: the instances
	All() []Instance

	// Destroy releases every instance in the set. Instances already destroyed are skipped.
	//
	// Returns:
	//   - int: the number of instances released by this call
	Destroy() int
}

var _ InstanceSet = &instanceSet{}

// NewInstanceSet creates one instance for every variant in Variants.
//
// Returns:
//   - InstanceSet: the populated set
func NewInstanceSet() InstanceSet {
	s := &instanceSet{
		instances: make(map[Variant]Instance, len(Variants)),
	}
	for _, v := range Variants {
		s.instances[v] = NewInstance(WithVariant(v))
	}
	return s
}

func (s *instanceSet) Get(v Variant) Instance {
	return s.instances[v]
}

func (s *instanceSet) For(model params.MaterialModel, blending params.Blending) Instance {
	return s.instances[VariantFor(model, blending)]
}

func (s *instanceSet) All() []Instance {
	out := make([]Instance, 0, len(Variants))
	for _, v := range Variants {
		out = append(out, s.instances[v])
	}
	return out
}

func (s *instanceSet) Destroy() int {
	released := 0
	for _, v := range Variants {
		if s.instances[v].Destroy() {
			released++
		}
	}
	return released
}
