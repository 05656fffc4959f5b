package terrain

import (
	"math"

	"github.com/lumina3d/voxelmesh/internal/mesher"
	"github.com/lumina3d/voxelmesh/internal/voxel"
)

// Settings controls the generated landscape.
type Settings struct {
	Seed int64

	// BaseHeight is the mean ground level; HeightScale the noise amplitude
	// above and below it; NoiseScale the horizontal feature frequency.
	BaseHeight  float64
	HeightScale float64
	NoiseScale  float64
	Octaves     int

	// Caves are carved where 3-D noise at CaveScale frequency exceeds
	// CaveThreshold, only below the surface shell.
	CaveScale     float64
	CaveThreshold float64
}

// DefaultSettings returns a landscape with rolling hills, shoreline water
// and occasional caves.
func DefaultSettings() Settings {
	return Settings{
		Seed:          1257,
		BaseHeight:    14,
		HeightScale:   10,
		NoiseScale:    0.015,
		Octaves:       4,
		CaveScale:     0.06,
		CaveThreshold: 0.68,
	}
}

// Generator fills padded voxel grids deterministically per (seed, chunk).
type Generator struct {
	set  Settings
	mesh mesher.Config
}

// New creates a generator for chunks of the given mesh configuration.
func New(set Settings, mesh mesher.Config) *Generator {
	return &Generator{set: set, mesh: mesh}
}

// Grid builds the padded grid for one chunk, including the wetness and
// mossiness overlays. The result is independent of generation order: any two
// chunks agree on every world voxel they both cover, which is what the
// mesher's seam ownership relies on.
func (g *Generator) Grid(chunkX, chunkZ int) *voxel.Grid {
	size := g.mesh.ChunkXZ + 2*g.mesh.Pad
	sizeY := g.mesh.ChunkY + 2*g.mesh.Pad
	grid := voxel.NewGrid(size, sizeY, size)
	grid.Wetness = make([]uint8, size*sizeY*size)
	grid.Mossiness = make([]uint8, size*sizeY*size)

	waterLevel := float64(g.mesh.WaterLevel)

	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			wx := chunkX*g.mesh.ChunkXZ + x - g.mesh.Pad
			wz := chunkZ*g.mesh.ChunkXZ + z - g.mesh.Pad

			n := fbm2(float64(wx)*g.set.NoiseScale, float64(wz)*g.set.NoiseScale, g.set.Octaves, g.set.Seed)
			height := g.set.BaseHeight + (n*2-1)*g.set.HeightScale

			for y := 0; y < sizeY; y++ {
				wy := float64(y - g.mesh.Pad)
				i := grid.Index(x, y, z)

				density := float32(height-wy) + g.mesh.IsoLevel

				cave := 0.0
				if wy < height-2 && wy > 1 {
					cave = fbm3(float64(wx)*g.set.CaveScale, wy*g.set.CaveScale, float64(wz)*g.set.CaveScale,
						3, g.set.Seed+31337)
					if cave > g.set.CaveThreshold {
						density = -float32(cave-g.set.CaveThreshold) * 20
					}
				}
				grid.Density[i] = density

				solid := density > g.mesh.IsoLevel
				switch {
				case solid:
					grid.Material[i] = g.material(height, wy, waterLevel)
				case wy <= waterLevel:
					grid.Material[i] = voxel.Water
				default:
					grid.Material[i] = voxel.Air
				}

				// Wetness saturates at the waterline and fades with height
				// above it.
				if wy <= waterLevel+1 {
					grid.Wetness[i] = 255
				} else {
					fade := 255 - (wy-waterLevel)*48
					if fade > 0 {
						grid.Wetness[i] = uint8(fade)
					}
				}

				// Moss grows where cave noise sits near the carving
				// threshold: the walls and ceilings of caverns.
				if cave > g.set.CaveThreshold-0.08 && cave <= g.set.CaveThreshold {
					m := (cave - (g.set.CaveThreshold - 0.08)) / 0.08 * 255
					grid.Mossiness[i] = uint8(math.Min(m, 255))
				}
			}
		}
	}
	return grid
}

// material layers the ground: sand at and below the shoreline band, grass on
// the surface shell, dirt beneath it, stone at depth.
func (g *Generator) material(height, wy, waterLevel float64) uint8 {
	depth := height - wy
	switch {
	case depth < 1.5 && height < waterLevel+2:
		return voxel.Sand
	case depth < 1.5:
		return voxel.Grass
	case depth < 4:
		return voxel.Dirt
	default:
		return voxel.Stone
	}
}
