package loader

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
)

// parseGLTF opens a .gltf or .glb file and extracts materials, mesh nodes (with their
// world transforms) and per-primitive vertex streams.
//
// Parameters:
//   - path: the file to parse
//
// Returns:
//   - *importedFile: the parsed file
//   - error: error if the document or any required accessor cannot be read
func parseGLTF(path string) (*importedFile, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	f := &importedFile{path: path}
	base := filepath.Base(path)
	for i, gm := range doc.Materials {
		f.materials = append(f.materials, extractMaterial(base, i, gm))
	}

	meshPrims := make([][]importedPrimitive, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			p, err := extractPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("%s: mesh %d primitive %d: %w", base, mi, pi, err)
			}
			meshPrims[mi] = append(meshPrims[mi], p)
		}
	}

	var visit func(idx int, parent mgl32.Mat4, depth int)
	visit = func(idx int, parent mgl32.Mat4, depth int) {
		if idx < 0 || idx >= len(doc.Nodes) || depth > len(doc.Nodes) {
			return
		}
		gn := doc.Nodes[idx]
		world := parent.Mul4(nodeLocal(gn))
		if gn.Mesh != nil && *gn.Mesh < len(meshPrims) && len(meshPrims[*gn.Mesh]) > 0 {
			name := gn.Name
			if name == "" {
				name = fmt.Sprintf("node_%d", idx)
			}
			f.meshes = append(f.meshes, importedMesh{
				name:       name,
				world:      world,
				primitives: meshPrims[*gn.Mesh],
			})
		}
		for _, child := range gn.Children {
			visit(child, world, depth+1)
		}
	}
	for _, root := range rootNodes(doc) {
		visit(root, mgl32.Ident4(), 0)
	}
	return f, nil
}

// rootNodes returns the nodes of the default scene, or every parentless node when the
// document declares no default scene.
func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeLocal returns the local transform of a node, from its matrix when one is given and
// from its translation, rotation and scale otherwise.
func nodeLocal(gn *gltf.Node) mgl32.Mat4 {
	if gn.Matrix != ([16]float64{}) && gn.Matrix != identity16 {
		var out mgl32.Mat4
		for i, v := range gn.Matrix {
			out[i] = float32(v)
		}
		return out
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	s := gn.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func extractMaterial(file string, idx int, gm *gltf.Material) importedMaterial {
	m := importedMaterial{
		name:      gm.Name,
		baseColor: [4]float32{1, 1, 1, 1},
		metallic:  1,
		roughness: 1,
	}
	if m.name == "" {
		m.name = fmt.Sprintf("%s#%d", file, idx)
	}
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		m.baseColor = [4]float32{float32(cf[0]), float32(cf[1]), float32(cf[2]), float32(cf[3])}
		m.metallic = float32(pbr.MetallicFactorOrDefault())
		m.roughness = float32(pbr.RoughnessFactorOrDefault())
	}
	return m
}

func extractPrimitive(doc *gltf.Document, prim *gltf.Primitive) (importedPrimitive, error) {
	p := importedPrimitive{material: -1}
	if prim.Material != nil && *prim.Material < len(doc.Materials) {
		p.material = *prim.Material
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return p, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return p, fmt.Errorf("positions: %w", err)
	}
	p.positions = positions

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return p, fmt.Errorf("normals: %w", err)
		}
	}
	p.tangents = make([][4]int16, len(positions))
	for i := range positions {
		n := mgl32.Vec3{0, 1, 0}
		if i < len(normals) {
			n = mgl32.Vec3(normals[i])
		}
		p.tangents[i] = tangentFrameFromNormal(n)
	}

	if prim.Indices != nil {
		if p.indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return p, fmt.Errorf("indices: %w", err)
		}
	} else {
		p.indices = make([]uint32, len(positions))
		for i := range p.indices {
			p.indices[i] = uint32(i)
		}
	}

	p.bounds = boundsOf(positions)
	return p, nil
}

// tangentFrameFromNormal packs a tangent frame for a vertex that only carries a normal,
// deriving the tangent from the normal and +Z (or +X when the normal is close to Z).
// A +Y normal gets the +X tangent of the shadow plane.
func tangentFrameFromNormal(n mgl32.Vec3) [4]int16 {
	if n.Len() == 0 {
		n = mgl32.Vec3{0, 1, 0}
	}
	n = n.Normalize()
	var t mgl32.Vec3
	if abs32(n.Z()) > 0.999 {
		t = mgl32.Vec3{1, 0, 0}.Cross(n).Normalize()
	} else {
		t = n.Cross(mgl32.Vec3{0, 0, 1}).Normalize()
	}
	return geometry.PackedTangentFrame(t, t.Cross(n), n)
}

func boundsOf(positions [][3]float32) geometry.BoundingBox {
	if len(positions) == 0 {
		return geometry.BoundingBox{}
	}
	lo, hi := mgl32.Vec3(positions[0]), mgl32.Vec3(positions[0])
	for _, p := range positions[1:] {
		for c := 0; c < 3; c++ {
			if p[c] < lo[c] {
				lo[c] = p[c]
			}
			if p[c] > hi[c] {
				hi[c] = p[c]
			}
		}
	}
	return geometry.BoundingBox{
		Center:     lo.Add(hi).Mul(0.5),
		HalfExtent: hi.Sub(lo).Mul(0.5),
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
