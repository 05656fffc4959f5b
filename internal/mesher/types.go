// Package mesher converts padded voxel grids into render meshes, water
// surfaces and physics colliders. Every entry point is a pure function of its
// inputs: the mesher never mutates a grid and keeps no state between calls,
// so callers may invoke it from as many goroutines as they like provided each
// call owns (or shares read-only) its grid.
package mesher

import (
	"github.com/lumina3d/voxelmesh/internal/voxel"
)

// Config carries every tunable the pipeline needs. Callers supply it per
// invocation; nothing here is a package-level mutable.
type Config struct {
	// ChunkXZ and ChunkY are the visible chunk dimensions in voxels.
	ChunkXZ int
	ChunkY  int
	// Pad is the number of extra voxels the grid carries on every side.
	// Must be at least 2: extraction needs one cell layer outside the
	// ownership range, and that layer needs neighbors of its own.
	Pad int

	// IsoLevel separates solid from air: a voxel is solid iff density > IsoLevel.
	IsoLevel float32
	// YOffset is added to every emitted vertex Y, placing the chunk slab in
	// world space.
	YOffset float32
	// SnapEpsilon is the distance within which a vertex is snapped exactly
	// onto a chunk boundary plane.
	SnapEpsilon float32
	// WaterLevel is the world-space sea level.
	WaterLevel float32

	// Channels maps the 16 material blend channels to material ids.
	Channels voxel.ChannelTable
}

// DefaultConfig returns the standard pipeline tuning.
func DefaultConfig() Config {
	return Config{
		ChunkXZ:     32,
		ChunkY:      64,
		Pad:         2,
		IsoLevel:    0.5,
		YOffset:     0,
		SnapEpsilon: 0.05,
		WaterLevel:  12,
		Channels:    voxel.DefaultChannelTable(),
	}
}

// ChunkMesh is the complete output for one chunk: the render mesh with all
// per-vertex attributes, the water surface, and the collider.
type ChunkMesh struct {
	Positions []float32 // 3 per vertex, chunk-local, Y offset applied
	Normals   []float32 // 3 per vertex, unit length
	Indices   []uint32

	// Material blend weights, 16 channels stored as 4 groups of 4.
	Weights [4][]float32

	Wetness    []float32 // 1 per vertex
	Mossiness  []float32 // 1 per vertex
	Cavity     []float32 // 1 per vertex, 0..1 occlusion estimate
	LightColor []float32 // 3 per vertex

	WaterPositions []float32
	WaterNormals   []float32
	WaterIndices   []uint32
	// WaterShoreMask is a ChunkXZ×ChunkXZ byte mask encoding normalized
	// signed distance to the shoreline: 0 deep land, 255 deep water,
	// ~128 at the boundary.
	WaterShoreMask []byte

	Collider ColliderData
}

// VertexCount returns the number of render-mesh vertices.
func (m *ChunkMesh) VertexCount() int { return len(m.Positions) / 3 }

// TriangleCount returns the number of render-mesh triangles.
func (m *ChunkMesh) TriangleCount() int { return len(m.Indices) / 3 }

// ColliderData is a tagged union: exactly one representation is populated.
// A chunk with no solid geometry yields an empty trimesh, which is valid.
type ColliderData struct {
	IsHeightfield bool

	// HeightfieldSamples holds (ChunkXZ+1)² heights, column-major
	// (index = z + x·numSamplesZ), matching the physics engine layout.
	HeightfieldSamples []float32

	Positions []float32
	Indices   []uint32
}
