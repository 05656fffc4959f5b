package mesher

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lumina3d/voxelmesh/internal/voxel"
)

// colliderStride is the decimation factor for collision trimeshes: the coarse
// extraction samples every other voxel, which keeps collision geometry
// bounded even for complex caverns.
const colliderStride = 2

// buildCollider classifies the chunk and extracts either a dense heightfield
// sample grid or a decimated collision trimesh. An all-air chunk yields a
// valid empty trimesh, never an error.
func buildCollider(g *voxel.Grid, cfg Config) ColliderData {
	anySolid, heightfieldOK := classifyColumns(g, cfg)
	if !anySolid {
		return ColliderData{
			Positions: []float32{},
			Indices:   []uint32{},
		}
	}
	if heightfieldOK {
		return ColliderData{
			IsHeightfield:      true,
			HeightfieldSamples: heightfieldSamples(g, cfg),
		}
	}
	return buildTrimesh(g, cfg)
}

// classifyColumns scans every interior column top to bottom. A solid voxel
// found below a previously seen solid voxel with air in between means an
// overhang or cave, which a heightfield cannot represent.
func classifyColumns(g *voxel.Grid, cfg Config) (anySolid, heightfieldOK bool) {
	pad := cfg.Pad
	heightfieldOK = true
	for z := pad; z < pad+cfg.ChunkXZ; z++ {
		for x := pad; x < pad+cfg.ChunkXZ; x++ {
			seenSolid := false
			airBelowSolid := false
			for y := pad + cfg.ChunkY - 1; y >= pad; y-- {
				if g.DensityAt(x, y, z) > cfg.IsoLevel {
					anySolid = true
					if airBelowSolid {
						heightfieldOK = false
					}
					seenSolid = true
				} else if seenSolid {
					airBelowSolid = true
				}
			}
		}
	}
	return anySolid, heightfieldOK
}

// heightfieldSamples extracts (chunkXZ+1)² surface heights, column-major
// (index = z + x·numSamplesZ) to match the physics engine's layout. Each
// column scans top-down for the first solid-to-air transition and linearly
// interpolates the exact crossing height.
func heightfieldSamples(g *voxel.Grid, cfg Config) []float32 {
	num := cfg.ChunkXZ + 1
	pad := cfg.Pad
	samples := make([]float32, num*num)
	for sx := 0; sx < num; sx++ {
		for sz := 0; sz < num; sz++ {
			x, z := pad+sx, pad+sz
			h := cfg.YOffset
			for y := pad + cfg.ChunkY - 1; y >= pad; y-- {
				dSolid := g.DensityAt(x, y, z)
				if dSolid <= cfg.IsoLevel {
					continue
				}
				dAir := g.DensityAt(x, y+1, z)
				mu := interpMu(cfg.IsoLevel, dSolid, dAir)
				h = cfg.YOffset + float32(y-pad) + mu
				break
			}
			samples[sz+sx*num] = h
		}
	}
	return samples
}

// buildTrimesh re-runs the centroid-placement extraction on a 2× decimated
// lattice and emits a flat triangulation: positions only, no material or
// shading attributes.
func buildTrimesh(g *voxel.Grid, cfg Config) ColliderData {
	s := colliderStride
	// Round up so odd chunk sizes still get coarse cells covering the max
	// boundary; samples past the grid read as air via the sentinel.
	cn := (cfg.ChunkXZ + s - 1) / s
	cnY := (cfg.ChunkY + s - 1) / s
	iso := cfg.IsoLevel

	// Coarse lattice point (i,j,k) sits at padded voxel pad + i·s; indices
	// run one cell beyond the chunk on every side so boundary faces close.
	sample := func(i, j, k int) float32 {
		return g.DensityAt(cfg.Pad+i*s, cfg.Pad+j*s, cfg.Pad+k*s)
	}

	dimX, dimY, dimZ := cn+2, cnY+2, cn+2
	cells := make([]int32, dimX*dimY*dimZ)
	for i := range cells {
		cells[i] = -1
	}
	cellAt := func(i, j, k int) int32 {
		if i < -1 || j < -1 || k < -1 || i > cn || j > cnY || k > cn {
			return -1
		}
		return cells[(i+1)+(j+1)*dimX+(k+1)*dimX*dimY]
	}

	var positions []mgl32.Vec3
	var corner [8]float32
	for k := -1; k <= cn; k++ {
		for j := -1; j <= cnY; j++ {
			for i := -1; i <= cn; i++ {
				var mask uint8
				for ci, c := range cubeCorners {
					d := sample(i+c[0], j+c[1], k+c[2])
					corner[ci] = d
					if d > iso {
						mask |= 1 << ci
					}
				}
				if mask == 0 || mask == 0xFF {
					continue
				}
				var sum mgl32.Vec3
				crossings := 0
				for _, e := range cubeEdges {
					a, b := corner[e[0]], corner[e[1]]
					if (a > iso) == (b > iso) {
						continue
					}
					mu := interpMu(iso, a, b)
					ca, cb := cubeCorners[e[0]], cubeCorners[e[1]]
					pa := mgl32.Vec3{float32(i + ca[0]), float32(j + ca[1]), float32(k + ca[2])}
					pb := mgl32.Vec3{float32(i + cb[0]), float32(j + cb[1]), float32(k + cb[2])}
					sum = sum.Add(pa.Add(pb.Sub(pa).Mul(mu)))
					crossings++
				}
				pos := sum.Mul(float32(s) / float32(crossings))
				pos[1] += cfg.YOffset
				cells[(i+1)+(j+1)*dimX+(k+1)*dimX*dimY] = int32(len(positions))
				positions = append(positions, pos)
			}
		}
	}

	indices := make([]uint32, 0, len(positions)*6)
	for k := 0; k < cn; k++ {
		for j := 0; j < cnY; j++ {
			for i := 0; i < cn; i++ {
				s0 := sample(i, j, k) > iso
				for _, ax := range axisOffsets {
					if (sample(i+ax.step[0], j+ax.step[1], k+ax.step[2]) > iso) == s0 {
						continue
					}
					c0 := cellAt(i, j, k)
					c1 := cellAt(i-ax.u[0], j-ax.u[1], k-ax.u[2])
					c2 := cellAt(i-ax.v[0], j-ax.v[1], k-ax.v[2])
					c3 := cellAt(i-ax.u[0]-ax.v[0], j-ax.u[1]-ax.v[1], k-ax.u[2]-ax.v[2])
					if c0 < 0 || c1 < 0 || c2 < 0 || c3 < 0 {
						continue
					}
					toward := ax.dir
					if !s0 {
						toward = toward.Mul(-1)
					}
					t1 := makeOrientedTri(positions, c0, c1, c3, toward)
					t2 := makeOrientedTri(positions, c0, c3, c2, toward)
					indices = append(indices,
						t1.a, t1.b, t1.c,
						t2.a, t2.b, t2.c)
				}
			}
		}
	}

	flat := make([]float32, 0, len(positions)*3)
	for _, p := range positions {
		flat = append(flat, p[0], p[1], p[2])
	}
	return ColliderData{Positions: flat, Indices: indices}
}
