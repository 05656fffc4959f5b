package mesher

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lumina3d/voxelmesh/internal/voxel"
)

const (
	// interpEpsilon guards edge-interpolation denominators away from zero.
	interpEpsilon = 1e-6
	// muMin/muMax keep edge crossings off the lattice points, which would
	// otherwise collapse into degenerate triangles on nearly flat surfaces.
	muMin = 0.001
	muMax = 0.999
	// minGradientSq is the squared gradient length below which the normal is
	// considered degenerate and replaced by the vertical fallback.
	minGradientSq = 1e-12
)

// cubeCorners enumerates the 8 corners of a cell, bit i of the inside mask
// corresponding to corner i.
var cubeCorners = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// cubeEdges lists the 12 cell edges as corner index pairs.
var cubeEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// surfaceData is the result of the extraction pass: one vertex per active
// cell plus a dense cell→vertex lookup so the quad pass can resolve shared
// vertices without recomputation.
type surfaceData struct {
	positions  []mgl32.Vec3
	normals    []mgl32.Vec3
	cellCoords [][3]int

	// cells maps a flattened padded cell coordinate to a vertex index, -1
	// where the cell is uniformly inside or outside.
	cells []int32
}

func (sd *surfaceData) vertexAt(g *voxel.Grid, x, y, z int) int32 {
	if !g.InBounds(x, y, z) {
		return -1
	}
	return sd.cells[g.Index(x, y, z)]
}

// interpMu returns the iso-crossing parameter between two corner densities,
// denominator-guarded and clamped away from the lattice.
func interpMu(iso, a, b float32) float32 {
	denom := b - a
	if denom > -interpEpsilon && denom < interpEpsilon {
		if denom < 0 {
			denom = -interpEpsilon
		} else {
			denom = interpEpsilon
		}
	}
	mu := (iso - a) / denom
	if mu < muMin {
		mu = muMin
	} else if mu > muMax {
		mu = muMax
	}
	return mu
}

// snapBoundary snaps a coordinate onto the chunk's min or max plane when it
// lies within eps of it. Snapping (instead of clamping every vertex) closes
// chunk seams without cutting into cave openings near the boundary.
func snapBoundary(v, max, eps float32) float32 {
	if v > -eps && v < eps {
		return 0
	}
	if v > max-eps && v < max+eps {
		return max
	}
	return v
}

// extractSurface walks every interior cell of the padded grid, placing one
// vertex per sign-changing cell at the centroid of its iso-surface edge
// crossings (surface nets placement, not marching-cubes case tables).
func extractSurface(g *voxel.Grid, cfg Config) *surfaceData {
	sd := &surfaceData{
		cells: make([]int32, g.SizeX*g.SizeY*g.SizeZ),
	}
	for i := range sd.cells {
		sd.cells[i] = -1
	}

	iso := cfg.IsoLevel
	pad := float32(cfg.Pad)
	maxXZ := float32(cfg.ChunkXZ)
	maxY := float32(cfg.ChunkY)

	var corner [8]float32
	for z := 1; z < g.SizeZ-1; z++ {
		for y := 1; y < g.SizeY-1; y++ {
			for x := 1; x < g.SizeX-1; x++ {
				var mask uint8
				for i, c := range cubeCorners {
					d := g.DensityAt(x+c[0], y+c[1], z+c[2])
					corner[i] = d
					if d > iso {
						mask |= 1 << i
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
					pa := mgl32.Vec3{float32(x + ca[0]), float32(y + ca[1]), float32(z + ca[2])}
					pb := mgl32.Vec3{float32(x + cb[0]), float32(y + cb[1]), float32(z + cb[2])}
					sum = sum.Add(pa.Add(pb.Sub(pa).Mul(mu)))
					crossings++
				}
				pos := sum.Mul(1 / float32(crossings))

				// Chunk-local coordinates, then boundary snap, then Y offset.
				pos = pos.Sub(mgl32.Vec3{pad, pad, pad})
				pos[0] = snapBoundary(pos[0], maxXZ, cfg.SnapEpsilon)
				pos[1] = snapBoundary(pos[1], maxY, cfg.SnapEpsilon)
				pos[2] = snapBoundary(pos[2], maxXZ, cfg.SnapEpsilon)
				pos[1] += cfg.YOffset

				sd.cells[g.Index(x, y, z)] = int32(len(sd.positions))
				sd.positions = append(sd.positions, pos)
				sd.normals = append(sd.normals, gradientNormal(g, x, y, z))
				sd.cellCoords = append(sd.cellCoords, [3]int{x, y, z})
			}
		}
	}
	return sd
}

// gradientNormal computes the negative central-difference density gradient at
// the cell, normalized. Gradient sample coordinates are clamped into
// [1, size-2]; the padding layer guarantees those reads are meaningful even
// for cells at the chunk boundary.
func gradientNormal(g *voxel.Grid, x, y, z int) mgl32.Vec3 {
	gx := g.DensityAt(clampGrad(x+1, g.SizeX), clampGrad(y, g.SizeY), clampGrad(z, g.SizeZ)) -
		g.DensityAt(clampGrad(x-1, g.SizeX), clampGrad(y, g.SizeY), clampGrad(z, g.SizeZ))
	gy := g.DensityAt(clampGrad(x, g.SizeX), clampGrad(y+1, g.SizeY), clampGrad(z, g.SizeZ)) -
		g.DensityAt(clampGrad(x, g.SizeX), clampGrad(y-1, g.SizeY), clampGrad(z, g.SizeZ))
	gz := g.DensityAt(clampGrad(x, g.SizeX), clampGrad(y, g.SizeY), clampGrad(z+1, g.SizeZ)) -
		g.DensityAt(clampGrad(x, g.SizeX), clampGrad(y, g.SizeY), clampGrad(z-1, g.SizeZ))

	n := mgl32.Vec3{-gx, -gy, -gz}
	if n.LenSqr() < minGradientSq {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

func clampGrad(c, size int) int {
	if c < 1 {
		return 1
	}
	if c > size-2 {
		return size - 2
	}
	return c
}
