package material

// InstanceBuilderOption is a function that configures an instance during construction.
type InstanceBuilderOption func(*instance)

// WithName sets the instance name.
//
// Parameters:
//   - name: the instance name
//
// Returns:
//   - InstanceBuilderOption: a function that applies the name option to an instance
func WithName(name string) InstanceBuilderOption {
	return func(i *instance) {
		i.name = name
	}
}

// WithVariant sets the variant the instance is created from.
//
// Parameters:
//   - v: the variant
//
// Returns:
//   - InstanceBuilderOption: a function that applies the variant option to an instance
func WithVariant(v Variant) InstanceBuilderOption {
	return func(i *instance) {
		i.variant = v
	}
}

// WithBaseColor sets the initial linear RGBA base color. It does not count as a write.
//
// Parameters:
//   - rgba: the linear base color and alpha
//
// Returns:
//   - InstanceBuilderOption: a function that applies the base color option to an instance
func WithBaseColor(rgba [4]float32) InstanceBuilderOption {
	return func(i *instance) {
		i.block.BaseColor = rgba
	}
}

// WithMetallicRoughness sets the initial metallic and roughness factors.
//
// Parameters:
//   - metallic: the metallic factor
//   - roughness: the roughness factor
//
// Returns:
//   - InstanceBuilderOption: a function that applies the factors to an instance
func WithMetallicRoughness(metallic, roughness float32) InstanceBuilderOption {
	return func(i *instance) {
		i.block.Metallic = metallic
		i.block.Roughness = roughness
	}
}
