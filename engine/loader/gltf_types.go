package loader

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
)

// importedMaterial is the subset of a glTF PBR material the sandbox keeps.
type importedMaterial struct {
	name      string
	baseColor [4]float32 // linear
	metallic  float32
	roughness float32
}

// importedPrimitive is one triangle list with its vertex streams ready for upload.
type importedPrimitive struct {
	material  int // index into importedFile.materials, -1 if none
	positions [][3]float32
	tangents  [][4]int16
	indices   []uint32
	bounds    geometry.BoundingBox
}

// importedMesh is a glTF node carrying a mesh, flattened to its world transform.
type importedMesh struct {
	name       string
	world      mgl32.Mat4
	primitives []importedPrimitive
}

// importedFile is the parse result of one glTF/GLB file.
type importedFile struct {
	path      string
	materials []importedMaterial
	meshes    []importedMesh
}

// primitiveCount returns the total number of primitives across all meshes.
func (f *importedFile) primitiveCount() int {
	n := 0
	for _, m := range f.meshes {
		n += len(m.primitives)
	}
	return n
}
