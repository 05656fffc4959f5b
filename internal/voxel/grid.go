// Package voxel defines the padded voxel grid the mesh pipeline consumes.
package voxel

import "fmt"

// SentinelDensity is returned for out-of-range density reads. It is far below
// any iso level, so out-of-range voxels always read as air.
const SentinelDensity float32 = -1000

// Grid holds the dense, padded voxel fields for one chunk. All arrays share
// the same padded extent; Wetness, Mossiness and Light are optional. A Grid is
// filled once by the terrain generator and never mutated by the mesher.
type Grid struct {
	SizeX, SizeY, SizeZ int // padded dimensions

	Density   []float32
	Material  []uint8
	Wetness   []uint8 // optional, nil means all zero
	Mossiness []uint8 // optional, nil means all zero

	// Light is an optional RGBA-packed coarse light volume at a resolution of
	// LightCellSize voxels per cell.
	Light                  []uint8
	LightCellSize          int
	LightX, LightY, LightZ int
}

// NewGrid allocates density and material arrays for the given padded extent.
func NewGrid(sizeX, sizeY, sizeZ int) *Grid {
	n := sizeX * sizeY * sizeZ
	return &Grid{
		SizeX:    sizeX,
		SizeY:    sizeY,
		SizeZ:    sizeZ,
		Density:  make([]float32, n),
		Material: make([]uint8, n),
	}
}

// Index flattens a padded-grid coordinate. Callers must check bounds; the
// sampling accessors below do it for them.
func (g *Grid) Index(x, y, z int) int {
	return x + y*g.SizeX + z*g.SizeX*g.SizeY
}

// InBounds reports whether the coordinate lies inside the padded extent.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.SizeX && y < g.SizeY && z < g.SizeZ
}

// DensityAt samples the density field. Out-of-range reads return
// SentinelDensity so all sampling code can skip explicit bounds branches.
func (g *Grid) DensityAt(x, y, z int) float32 {
	if !g.InBounds(x, y, z) {
		return SentinelDensity
	}
	return g.Density[g.Index(x, y, z)]
}

// MaterialAt samples the material field. Out-of-range reads return Air.
func (g *Grid) MaterialAt(x, y, z int) uint8 {
	if !g.InBounds(x, y, z) {
		return Air
	}
	return g.Material[g.Index(x, y, z)]
}

// WetnessAt samples the wetness overlay, zero when the overlay is absent.
func (g *Grid) WetnessAt(x, y, z int) uint8 {
	if g.Wetness == nil || !g.InBounds(x, y, z) {
		return 0
	}
	return g.Wetness[g.Index(x, y, z)]
}

// MossinessAt samples the mossiness overlay, zero when the overlay is absent.
func (g *Grid) MossinessAt(x, y, z int) uint8 {
	if g.Mossiness == nil || !g.InBounds(x, y, z) {
		return 0
	}
	return g.Mossiness[g.Index(x, y, z)]
}

// LightAt samples the coarse light volume at a voxel coordinate, returning
// RGB in [0,1]. Absent or out-of-range light reads fall back to a flat
// ambient term.
func (g *Grid) LightAt(x, y, z int) (r, gr, b float32) {
	const ambient = 0.35
	if g.Light == nil || g.LightCellSize <= 0 {
		return ambient, ambient, ambient
	}
	cx := x / g.LightCellSize
	cy := y / g.LightCellSize
	cz := z / g.LightCellSize
	if cx < 0 || cy < 0 || cz < 0 || cx >= g.LightX || cy >= g.LightY || cz >= g.LightZ {
		return ambient, ambient, ambient
	}
	i := (cx + cy*g.LightX + cz*g.LightX*g.LightY) * 4
	if i+2 >= len(g.Light) {
		return ambient, ambient, ambient
	}
	return float32(g.Light[i]) / 255, float32(g.Light[i+1]) / 255, float32(g.Light[i+2]) / 255
}

// Validate checks the caller contract: every supplied array must match the
// padded extent. Violations are programmer errors and fail loudly.
func (g *Grid) Validate() error {
	n := g.SizeX * g.SizeY * g.SizeZ
	if n <= 0 {
		return fmt.Errorf("voxel: invalid grid extent %dx%dx%d", g.SizeX, g.SizeY, g.SizeZ)
	}
	if len(g.Density) != n {
		return fmt.Errorf("voxel: density length %d does not match extent %d", len(g.Density), n)
	}
	if len(g.Material) != n {
		return fmt.Errorf("voxel: material length %d does not match extent %d", len(g.Material), n)
	}
	if g.Wetness != nil && len(g.Wetness) != n {
		return fmt.Errorf("voxel: wetness length %d does not match extent %d", len(g.Wetness), n)
	}
	if g.Mossiness != nil && len(g.Mossiness) != n {
		return fmt.Errorf("voxel: mossiness length %d does not match extent %d", len(g.Mossiness), n)
	}
	if g.Light != nil {
		want := g.LightX * g.LightY * g.LightZ * 4
		if len(g.Light) != want {
			return fmt.Errorf("voxel: light length %d does not match light dims %d", len(g.Light), want)
		}
		if g.LightCellSize <= 0 {
			return fmt.Errorf("voxel: light grid present but cell size is %d", g.LightCellSize)
		}
	}
	return nil
}
