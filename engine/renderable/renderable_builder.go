package renderable

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
)

// RenderableBuilderOption is a function that configures a renderable component during creation.
type RenderableBuilderOption func(*component)

// WithPrimitive appends a primitive drawing indexCount indices of an uploaded geometry.
//
// Parameters:
//   - geometryID: the uploaded geometry id
//   - indexCount: the number of indices drawn
//   - mi: the material bound to the primitive (may be nil)
//
// Returns:
//   - RenderableBuilderOption: a function that appends the primitive
func WithPrimitive(geometryID uint32, indexCount int, mi material.Instance) RenderableBuilderOption {
	return func(c *component) {
		c.primitives = append(c.primitives, Primitive{Geometry: geometryID, IndexCount: indexCount, Material: mi})
	}
}

// WithPrimitives appends primitives as-is.
//
// Parameters:
//   - prims: the primitives
//
// Returns:
//   - RenderableBuilderOption: a function that appends the primitives
func WithPrimitives(prims ...Primitive) RenderableBuilderOption {
	return func(c *component) {
		c.primitives = append(c.primitives, prims...)
	}
}

// WithBounds sets the local-space bounding box.
//
// Parameters:
//   - bounds: the bounding box
//
// Returns:
//   - RenderableBuilderOption: a function that applies the bounds
func WithBounds(bounds geometry.BoundingBox) RenderableBuilderOption {
	return func(c *component) {
		c.bounds = bounds
	}
}

// WithCulling enables or disables frustum culling. Culling is enabled by default.
//
// Parameters:
//   - enabled: true to cull against the view frustum
//
// Returns:
//   - RenderableBuilderOption: a function that applies the culling flag
func WithCulling(enabled bool) RenderableBuilderOption {
	return func(c *component) {
		c.culling = enabled
	}
}

// WithCastShadows sets whether the component casts shadows. Off by default.
//
// Parameters:
//   - enabled: true to cast shadows
//
// Returns:
//   - RenderableBuilderOption: a function that applies the flag
func WithCastShadows(enabled bool) RenderableBuilderOption {
	return func(c *component) {
		c.castShadows = enabled
	}
}

// WithReceiveShadows sets whether the component receives shadows. On by default.
//
// Parameters:
//   - enabled: true to receive shadows
//
// Returns:
//   - RenderableBuilderOption: a function that applies the flag
func WithReceiveShadows(enabled bool) RenderableBuilderOption {
	return func(c *component) {
		c.receiveShadows = enabled
	}
}
