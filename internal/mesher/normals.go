package mesher

import "github.com/go-gl/mathgl/mgl32"

// smoothNormals replaces the per-vertex gradient normals with area-weighted
// accumulations of the triangle normals. The unnormalized cross product of a
// triangle's edges is proportional to its area, so simply summing it weights
// large faces more, which is what shading wants. Vertices whose accumulated
// normal degenerates keep their extractor normal.
func smoothNormals(positions []mgl32.Vec3, indices []uint32, fallback []mgl32.Vec3) []mgl32.Vec3 {
	acc := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		n := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}

	out := make([]mgl32.Vec3, len(positions))
	for i, n := range acc {
		if n.LenSqr() < minGradientSq {
			out[i] = fallback[i]
			continue
		}
		out[i] = n.Normalize()
	}
	return out
}
