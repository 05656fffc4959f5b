// Package terrain fills padded voxel grids with procedurally generated
// terrain. It sits on the caller side of the mesher boundary: grids it
// produces are pad voxels larger than the visible chunk on every side, with
// the "positive = solid" density convention the mesher expects.
package terrain

import "math"

// hash2 produces a repeatable pseudo-random value in [0,1) for a 2-D lattice
// point under a seed.
func hash2(x, z, seed int64) float64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(z)*0xC2B2AE3D27D4EB4F ^ uint64(seed)
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}

// hash3 is the 3-D counterpart of hash2, used for cave carving.
func hash3(x, y, z, seed int64) float64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xD6E8FEB86659FD93 ^ uint64(z)*0xC2B2AE3D27D4EB4F ^ uint64(seed)
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// valueNoise2 is bilinear hashed value noise over a unit lattice.
func valueNoise2(x, z float64, seed int64) float64 {
	ix, iz := math.Floor(x), math.Floor(z)
	fx, fz := smoothstep(x-ix), smoothstep(z-iz)
	x0, z0 := int64(ix), int64(iz)

	v00 := hash2(x0, z0, seed)
	v10 := hash2(x0+1, z0, seed)
	v01 := hash2(x0, z0+1, seed)
	v11 := hash2(x0+1, z0+1, seed)

	top := v00 + (v10-v00)*fx
	bot := v01 + (v11-v01)*fx
	return top + (bot-top)*fz
}

// valueNoise3 is trilinear hashed value noise.
func valueNoise3(x, y, z float64, seed int64) float64 {
	ix, iy, iz := math.Floor(x), math.Floor(y), math.Floor(z)
	fx, fy, fz := smoothstep(x-ix), smoothstep(y-iy), smoothstep(z-iz)
	x0, y0, z0 := int64(ix), int64(iy), int64(iz)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	c000 := hash3(x0, y0, z0, seed)
	c100 := hash3(x0+1, y0, z0, seed)
	c010 := hash3(x0, y0+1, z0, seed)
	c110 := hash3(x0+1, y0+1, z0, seed)
	c001 := hash3(x0, y0, z0+1, seed)
	c101 := hash3(x0+1, y0, z0+1, seed)
	c011 := hash3(x0, y0+1, z0+1, seed)
	c111 := hash3(x0+1, y0+1, z0+1, seed)

	return lerp(
		lerp(lerp(c000, c100, fx), lerp(c010, c110, fx), fy),
		lerp(lerp(c001, c101, fx), lerp(c011, c111, fx), fy),
		fz)
}

// fbm2 sums octaves of 2-D value noise, returning a value in roughly [0,1].
func fbm2(x, z float64, octaves int, seed int64) float64 {
	sum, amp, norm := 0.0, 1.0, 0.0
	for o := 0; o < octaves; o++ {
		sum += amp * valueNoise2(x, z, seed+int64(o)*7919)
		norm += amp
		x *= 2
		z *= 2
		amp *= 0.5
	}
	return sum / norm
}

// fbm3 sums octaves of 3-D value noise.
func fbm3(x, y, z float64, octaves int, seed int64) float64 {
	sum, amp, norm := 0.0, 1.0, 0.0
	for o := 0; o < octaves; o++ {
		sum += amp * valueNoise3(x, y, z, seed+int64(o)*104729)
		norm += amp
		x *= 2
		y *= 2
		z *= 2
		amp *= 0.5
	}
	return sum / norm
}
