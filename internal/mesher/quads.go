package mesher

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lumina3d/voxelmesh/internal/voxel"
)

// axisOffsets holds, per axis, the step along the axis and the two tangent
// cell offsets used to locate the four cells sharing a crossed edge.
var axisOffsets = [3]struct {
	step [3]int
	u    [3]int
	v    [3]int
	dir  mgl32.Vec3
}{
	{step: [3]int{1, 0, 0}, u: [3]int{0, 1, 0}, v: [3]int{0, 0, 1}, dir: mgl32.Vec3{1, 0, 0}},
	{step: [3]int{0, 1, 0}, u: [3]int{1, 0, 0}, v: [3]int{0, 0, 1}, dir: mgl32.Vec3{0, 1, 0}},
	{step: [3]int{0, 0, 1}, u: [3]int{1, 0, 0}, v: [3]int{0, 1, 0}, dir: mgl32.Vec3{0, 0, 1}},
}

// orientedTri is a triangle wound so its face normal points toward air.
type orientedTri struct {
	a, b, c uint32
	normal  mgl32.Vec3
	ok      bool // false when the triangle is degenerate
}

func makeOrientedTri(positions []mgl32.Vec3, i0, i1, i2 int32, toward mgl32.Vec3) orientedTri {
	p0, p1, p2 := positions[i0], positions[i1], positions[i2]
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	t := orientedTri{a: uint32(i0), b: uint32(i1), c: uint32(i2)}
	if n.LenSqr() < 1e-12 {
		return t
	}
	if n.Dot(toward) < 0 {
		t.b, t.c = t.c, t.b
		n = n.Mul(-1)
	}
	t.normal = n.Normalize()
	t.ok = true
	return t
}

// splitScore rates a candidate diagonal split by how nearly coplanar its two
// triangles are; degenerate pairs score worst so the other diagonal wins.
func splitScore(t1, t2 orientedTri) float32 {
	if !t1.ok || !t2.ok {
		return -2
	}
	return t1.normal.Dot(t2.normal)
}

// emitQuads scans face-adjacent voxel pairs along all three axes and emits a
// quad (two triangles) wherever the surface crosses between them.
//
// Seam ownership: only cells inside the half-open interior range
// [pad, pad+chunk) emit; the +1 neighbor lookup may reach into the padding
// layer for the sign comparison, but that cell never emits geometry itself.
// Every shared boundary face is therefore emitted by exactly one of the two
// chunks bordering it, with no position clamping involved.
func emitQuads(g *voxel.Grid, cfg Config, sd *surfaceData) []uint32 {
	indices := make([]uint32, 0, len(sd.positions)*6)
	iso := cfg.IsoLevel
	pad := cfg.Pad

	for z := pad; z < pad+cfg.ChunkXZ; z++ {
		for y := pad; y < pad+cfg.ChunkY; y++ {
			for x := pad; x < pad+cfg.ChunkXZ; x++ {
				d0 := g.DensityAt(x, y, z)
				s0 := d0 > iso
				for _, ax := range axisOffsets {
					d1 := g.DensityAt(x+ax.step[0], y+ax.step[1], z+ax.step[2])
					if (d1 > iso) == s0 {
						continue
					}

					// The four cells sharing the crossed edge, laid out
					// c0 c1 / c2 c3.
					c0 := sd.vertexAt(g, x, y, z)
					c1 := sd.vertexAt(g, x-ax.u[0], y-ax.u[1], z-ax.u[2])
					c2 := sd.vertexAt(g, x-ax.v[0], y-ax.v[1], z-ax.v[2])
					c3 := sd.vertexAt(g, x-ax.u[0]-ax.v[0], y-ax.u[1]-ax.v[1], z-ax.u[2]-ax.v[2])
					if c0 < 0 || c1 < 0 || c2 < 0 || c3 < 0 {
						continue
					}

					// Front faces point toward the air side.
					toward := ax.dir
					if !s0 {
						toward = toward.Mul(-1)
					}

					// Candidate diagonals: c0–c3 and c1–c2. Take whichever
					// yields the flatter triangle pair; this is what keeps
					// saddle patches (cave mouths, ridgelines) crease-free.
					a1 := makeOrientedTri(sd.positions, c0, c1, c3, toward)
					a2 := makeOrientedTri(sd.positions, c0, c3, c2, toward)
					b1 := makeOrientedTri(sd.positions, c0, c1, c2, toward)
					b2 := makeOrientedTri(sd.positions, c1, c3, c2, toward)

					if splitScore(b1, b2) > splitScore(a1, a2) {
						a1, a2 = b1, b2
					}
					indices = append(indices,
						a1.a, a1.b, a1.c,
						a2.a, a2.b, a2.c)
				}
			}
		}
	}
	return indices
}
