package mesher

import (
	"fmt"

	"github.com/lumina3d/voxelmesh/internal/voxel"
)

// Generate runs the full extraction pipeline over one padded grid and
// returns the chunk's render mesh, water surface and collider.
//
// The call is single-threaded and pure: it reads the grid exactly once,
// mutates nothing outside its own locals, and allocates fresh output
// buffers. The only errors are caller contract violations; malformed but
// in-range voxel data degrades gracefully instead of failing.
func Generate(g *voxel.Grid, cfg Config) (*ChunkMesh, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := checkConfig(g, cfg); err != nil {
		return nil, err
	}

	sd := extractSurface(g, cfg)
	nv := len(sd.positions)

	mesh := &ChunkMesh{
		Positions:  make([]float32, 0, nv*3),
		Wetness:    make([]float32, 0, nv),
		Mossiness:  make([]float32, 0, nv),
		Cavity:     make([]float32, 0, nv),
		LightColor: make([]float32, 0, nv*3),
	}
	for gi := range mesh.Weights {
		mesh.Weights[gi] = make([]float32, 0, nv*4)
	}

	var scratch blendScratch
	for i := 0; i < nv; i++ {
		p := sd.positions[i]
		mesh.Positions = append(mesh.Positions, p[0], p[1], p[2])

		cell := sd.cellCoords[i]
		attr := scratch.blend(g, cfg, cell[0], cell[1], cell[2])
		for gi := 0; gi < 4; gi++ {
			mesh.Weights[gi] = append(mesh.Weights[gi],
				attr.weights[gi*4], attr.weights[gi*4+1], attr.weights[gi*4+2], attr.weights[gi*4+3])
		}
		mesh.Wetness = append(mesh.Wetness, attr.wetness)
		mesh.Mossiness = append(mesh.Mossiness, attr.mossiness)
		mesh.Cavity = append(mesh.Cavity, attr.cavity)

		r, gr, b := g.LightAt(cell[0], cell[1], cell[2])
		mesh.LightColor = append(mesh.LightColor, r, gr, b)
	}

	mesh.Indices = emitQuads(g, cfg, sd)

	smoothed := smoothNormals(sd.positions, mesh.Indices, sd.normals)
	mesh.Normals = make([]float32, 0, nv*3)
	for _, n := range smoothed {
		mesh.Normals = append(mesh.Normals, n[0], n[1], n[2])
	}

	ws := buildWater(g, cfg)
	mesh.WaterPositions = ws.positions
	mesh.WaterNormals = ws.normals
	mesh.WaterIndices = ws.indices
	mesh.WaterShoreMask = ws.shoreMask

	mesh.Collider = buildCollider(g, cfg)
	return mesh, nil
}

// checkConfig verifies that the configuration constants agree with the grid
// dimensions. Disagreement is a programmer error on the caller's side and
// fails loudly.
func checkConfig(g *voxel.Grid, cfg Config) error {
	// The extractor skips the outermost voxel layer, so a pad of 1 leaves no
	// extractable cell layer outside the ownership range and min-boundary
	// faces would be dropped.
	if cfg.Pad < 2 {
		return fmt.Errorf("mesher: pad must be at least 2, got %d", cfg.Pad)
	}
	if cfg.ChunkXZ < 1 || cfg.ChunkY < 1 {
		return fmt.Errorf("mesher: invalid chunk size %dx%d", cfg.ChunkXZ, cfg.ChunkY)
	}
	wantX := cfg.ChunkXZ + 2*cfg.Pad
	wantY := cfg.ChunkY + 2*cfg.Pad
	if g.SizeX != wantX || g.SizeY != wantY || g.SizeZ != wantX {
		return fmt.Errorf("mesher: grid extent %dx%dx%d does not match config %dx%dx%d",
			g.SizeX, g.SizeY, g.SizeZ, wantX, wantY, wantX)
	}
	return nil
}
