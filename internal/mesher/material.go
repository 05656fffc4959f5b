package mesher

import (
	"github.com/lumina3d/voxelmesh/internal/voxel"
)

// blendRadius is the material sampling radius: a 5×5×5 neighborhood. Larger
// radii blend more smoothly but this is the hot loop of the whole pipeline.
const blendRadius = 2

const (
	cavityLow  = 0.55
	cavityHigh = 0.9
)

// blendScratch is the reusable per-extraction accumulator; one lives on the
// stack of the extraction pass so the hot loop never allocates.
type blendScratch struct {
	weights [voxel.NumChannels]float32
}

// vertexAttributes is the per-vertex output of the material blend.
type vertexAttributes struct {
	weights   [voxel.NumChannels]float32
	wetness   float32
	mossiness float32
	cavity    float32
}

// blend resamples the 5×5×5 neighborhood around a cell center and produces
// the 16-channel material weight vector plus the wetness, mossiness and
// cavity scalars.
func (s *blendScratch) blend(g *voxel.Grid, cfg Config, cx, cy, cz int) vertexAttributes {
	for i := range s.weights {
		s.weights[i] = 0
	}

	var (
		totalWeight    float32
		occTotalWeight float32
		occSolidWeight float32

		nearestDistSq  = float32(1e30)
		nearestChannel = -1

		bestDensity = voxel.SentinelDensity
		wetness     float32
		mossiness   float32
	)

	for dz := -blendRadius; dz <= blendRadius; dz++ {
		for dy := -blendRadius; dy <= blendRadius; dy++ {
			for dx := -blendRadius; dx <= blendRadius; dx++ {
				x, y, z := cx+dx, cy+dy, cz+dz
				distSq := float32(dx*dx + dy*dy + dz*dz)
				w := 1 / (distSq + 0.1)

				d := g.DensityAt(x, y, z)
				solid := d > cfg.IsoLevel

				occTotalWeight += w
				if solid {
					occSolidWeight += w
				}

				// Overlays follow the single most solid sample so they track
				// the dominant surface instead of being smeared.
				if d > bestDensity {
					bestDensity = d
					wetness = float32(g.WetnessAt(x, y, z)) / 255
					mossiness = float32(g.MossinessAt(x, y, z)) / 255
				}

				if !solid {
					continue
				}
				mat := g.MaterialAt(x, y, z)
				if mat == voxel.Air || mat == voxel.Water {
					continue
				}
				ch := cfg.Channels.ChannelFor(mat)
				if ch < 0 {
					continue
				}
				s.weights[ch] += w
				totalWeight += w
				if distSq < nearestDistSq {
					nearestDistSq = distSq
					nearestChannel = ch
				}
			}
		}
	}

	attr := vertexAttributes{
		wetness:   wetness,
		mossiness: mossiness,
		cavity:    cavityFromSolidFraction(occSolidWeight / occTotalWeight),
	}

	switch {
	case totalWeight > 1e-6:
		inv := 1 / totalWeight
		for i := range s.weights {
			attr.weights[i] = s.weights[i] * inv
		}
	case nearestChannel >= 0:
		attr.weights[nearestChannel] = 1
	default:
		// No solid neighbor detected at all (thin-shell geometry): fall back
		// to a height-based choice so weights are never all zero.
		attr.weights[fallbackChannel(cfg, cy)] = 1
	}
	return attr
}

// cavityFromSolidFraction remaps the weighted local solid fraction into a
// [0,1] occlusion estimate over the [cavityLow, cavityHigh] range.
func cavityFromSolidFraction(frac float32) float32 {
	c := (frac - cavityLow) / (cavityHigh - cavityLow)
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// fallbackChannel picks sand below waterLevel+4 and dirt above.
func fallbackChannel(cfg Config, cy int) int {
	worldY := float32(cy-cfg.Pad) + cfg.YOffset
	mat := voxel.Dirt
	if worldY < cfg.WaterLevel+4 {
		mat = voxel.Sand
	}
	if ch := cfg.Channels.ChannelFor(mat); ch >= 0 {
		return ch
	}
	return 0
}
