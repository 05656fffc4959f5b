package mesher

import (
	"math"

	"github.com/lumina3d/voxelmesh/internal/voxel"
)

// shoreMaxDist caps the shoreline signed distance, in texels, on both the
// water and the land side.
const shoreMaxDist = 10

// waterSurface is the water output for one chunk: at most one sea-level quad
// plus the shoreline signed-distance mask.
type waterSurface struct {
	positions []float32
	normals   []float32
	indices   []uint32
	shoreMask []byte
}

// buildWater emits a flat sea-level quad if any column of the chunk holds
// surface water, and computes the per-texel shoreline mask. The shoreline is
// never carved geometrically; the single quad plus the mask keeps water
// geometry trivial and seam-free by construction.
func buildWater(g *voxel.Grid, cfg Config) waterSurface {
	n := cfg.ChunkXZ
	pad := cfg.Pad
	yRow := int(math.Floor(float64(cfg.WaterLevel-cfg.YOffset))) + pad

	water := make([]bool, n*n)
	hasSurface := false
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			gx, gz := pad+x, pad+z
			if g.MaterialAt(gx, yRow, gz) != voxel.Water || g.DensityAt(gx, yRow, gz) > cfg.IsoLevel {
				continue
			}
			water[x+z*n] = true
			if g.MaterialAt(gx, yRow+1, gz) != voxel.Water {
				hasSurface = true
			}
		}
	}

	ws := waterSurface{shoreMask: shoreMask(water, n)}
	if !hasSurface {
		return ws
	}

	w := cfg.WaterLevel
	fn := float32(n)
	ws.positions = []float32{
		0, w, 0,
		0, w, fn,
		fn, w, fn,
		fn, w, 0,
	}
	ws.normals = []float32{
		0, 1, 0,
		0, 1, 0,
		0, 1, 0,
		0, 1, 0,
	}
	ws.indices = []uint32{0, 1, 2, 0, 2, 3}
	return ws
}

// shoreMask runs two independent multi-source BFS flood fills over the 2-D
// water mask: one seeded at land cells adjacent to water (distance into
// water), one seeded at water cells adjacent to land (distance into land).
// Each texel encodes clamp(0.5 + sdf/(2·maxDist), 0, 1) as a byte, with sdf
// positive inside water and negative inside land.
func shoreMask(water []bool, n int) []byte {
	intoWater := bfsDistance(water, n, false)
	intoLand := bfsDistance(water, n, true)

	mask := make([]byte, n*n)
	for i := range mask {
		var sdf float32
		if water[i] {
			sdf = float32(intoWater[i])
		} else {
			sdf = -float32(intoLand[i])
		}
		v := 0.5 + sdf/(2*shoreMaxDist)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		mask[i] = byte(math.Round(float64(v) * 255))
	}
	return mask
}

// bfsDistance returns, for every cell on the target side (water when
// fromWater is false, land when fromWater is true), the 4-connected distance
// to the nearest cell of the opposite kind, capped at shoreMaxDist. Seeds are
// the opposite-side cells adjacent to the boundary, at distance zero.
func bfsDistance(water []bool, n int, fromWater bool) []int {
	dist := make([]int, n*n)
	for i := range dist {
		dist[i] = shoreMaxDist
	}

	queue := make([]int, 0, n*n)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			i := x + z*n
			if water[i] != fromWater {
				continue
			}
			if hasNeighbor(water, n, x, z, !fromWater) {
				dist[i] = 0
				queue = append(queue, i)
			}
		}
	}

	for head := 0; head < len(queue); head++ {
		i := queue[head]
		x, z := i%n, i/n
		d := dist[i] + 1
		if d >= shoreMaxDist {
			continue
		}
		for _, nb := range [4][2]int{{x - 1, z}, {x + 1, z}, {x, z - 1}, {x, z + 1}} {
			nx, nz := nb[0], nb[1]
			if nx < 0 || nz < 0 || nx >= n || nz >= n {
				continue
			}
			j := nx + nz*n
			// Expansion stays on the side opposite the seeds.
			if water[j] == fromWater || d >= dist[j] {
				continue
			}
			dist[j] = d
			queue = append(queue, j)
		}
	}
	return dist
}

func hasNeighbor(water []bool, n, x, z int, wantWater bool) bool {
	for _, nb := range [4][2]int{{x - 1, z}, {x + 1, z}, {x, z - 1}, {x, z + 1}} {
		nx, nz := nb[0], nb[1]
		if nx < 0 || nz < 0 || nx >= n || nz >= n {
			continue
		}
		if water[nx+nz*n] == wantWater {
			return true
		}
	}
	return false
}
