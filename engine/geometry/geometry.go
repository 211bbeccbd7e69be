package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowPlaneHalfExtent is the half-width of the ground shadow plane in world units.
const ShadowPlaneHalfExtent float32 = 10.0

// planeThickness is the half-height given to the plane's bounding box so it never has
// a degenerate (zero volume) extent along its normal.
const planeThickness float32 = 1e-4

// QuadIndices is the triangle list shared by every quad: two counter-clockwise triangles
// (0, 1, 2) and (2, 3, 0).
var QuadIndices = [6]uint32{0, 1, 2, 2, 3, 0}

// BoundingBox is an axis-aligned box described by its center and half extent.
type BoundingBox struct {
	Center     mgl32.Vec3
	HalfExtent mgl32.Vec3
}

// Plane holds the CPU-side buffer contents of a flat quad: four corner positions, one
// packed tangent frame per vertex (identical because the quad is flat), and the index list.
// A Plane is immutable once built.
type Plane struct {
	positions [4]mgl32.Vec3
	tangents  [4][4]int16
	indices   [6]uint32
	bounds    BoundingBox
}

// NewShadowPlane builds the ground shadow plane: a 20x20 quad lying in the XZ plane with
// tangent +X, bitangent +Z and normal +Y.
//
// Returns:
//   - *Plane: the shadow plane geometry
func NewShadowPlane() *Plane {
	return BuildPlane(ShadowPlaneHalfExtent, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
}

// BuildPlane builds a square quad centered on the origin, spanned by the tangent and the
// bitangent T×N. Corners are emitted as (-T-B), (-T+B), (+T+B), (+T-B) scaled by halfExtent.
//
// Parameters:
//   - halfExtent: half the side length of the square
//   - tangent: the unit tangent direction
//   - normal: the unit normal direction (orthogonal to tangent)
//
// Returns:
//   - *Plane: the quad geometry
func BuildPlane(halfExtent float32, tangent, normal mgl32.Vec3) *Plane {
	bitangent := tangent.Cross(normal)
	t := tangent.Mul(halfExtent)
	b := bitangent.Mul(halfExtent)

	p := &Plane{
		positions: [4]mgl32.Vec3{
			t.Mul(-1).Sub(b),
			t.Mul(-1).Add(b),
			t.Add(b),
			t.Sub(b),
		},
		indices: QuadIndices,
	}

	tbn := PackedTangentFrame(tangent, bitangent, normal)
	for i := range p.tangents {
		p.tangents[i] = tbn
	}

	var extent mgl32.Vec3
	for i := 0; i < 3; i++ {
		extent[i] = abs(t[i]) + abs(b[i]) + planeThickness*abs(normal[i])
	}
	p.bounds = BoundingBox{HalfExtent: extent}
	return p
}

// Positions returns a copy of the four corner positions.
func (p *Plane) Positions() [4]mgl32.Vec3 {
	return p.positions
}

// Tangents returns a copy of the four packed tangent frames.
func (p *Plane) Tangents() [4][4]int16 {
	return p.tangents
}

// Indices returns a copy of the triangle index list.
func (p *Plane) Indices() [6]uint32 {
	return p.indices
}

// VertexCount returns the number of vertices (always 4).
func (p *Plane) VertexCount() int {
	return len(p.positions)
}

// IndexCount returns the number of indices (always 6).
func (p *Plane) IndexCount() int {
	return len(p.indices)
}

// TriangleCount returns the number of triangles (always 2).
func (p *Plane) TriangleCount() int {
	return len(p.indices) / 3
}

// Bounds returns the plane's axis-aligned bounding box.
func (p *Plane) Bounds() BoundingBox {
	return p.bounds
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
