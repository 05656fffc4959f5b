package mesher

import (
	"math"
	"testing"

	"github.com/lumina3d/voxelmesh/internal/voxel"
)

func TestInterpMu(t *testing.T) {
	tests := []struct {
		name      string
		iso, a, b float32
		want      float32
	}{
		{"midpoint", 0.5, 0, 1, 0.5},
		{"quarter", 0.5, 0, 2, 0.25},
		{"clamped low", 0.5, 0.5, 100, muMin},
		{"clamped high", 0.5, 100, 0.5, muMax},
		{"guarded denominator", 0.5, 0.5, 0.5, muMin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interpMu(tt.iso, tt.a, tt.b)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("interpMu(%v,%v,%v) = %v, want %v", tt.iso, tt.a, tt.b, got, tt.want)
			}
			if got < muMin || got > muMax {
				t.Errorf("interpMu out of clamp range: %v", got)
			}
		})
	}
}

func TestSnapBoundary(t *testing.T) {
	tests := []struct {
		name string
		v    float32
		want float32
	}{
		{"near min", 0.03, 0},
		{"near max", 15.97, 16},
		{"just past max", 16.04, 16},
		{"interior untouched", 8.2, 8.2},
		{"near but outside eps", 0.3, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snapBoundary(tt.v, 16, 0.05); got != tt.want {
				t.Errorf("snapBoundary(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

// A single solid voxel with symmetric density falloff must produce one
// vertex per cell touching that voxel, every normal pointing away from it.
func TestSingleVoxelOutwardNormals(t *testing.T) {
	cfg := testConfig()
	const cx, cy, cz = 8, 16, 8
	world := func(wx, wy, wz int) (float32, uint8) {
		dx, dy, dz := float64(wx-cx), float64(wy-cy), float64(wz-cz)
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		d := float32(1.0 - 0.8*dist)
		if d > cfg.IsoLevel {
			return d, voxel.Stone
		}
		return d, voxel.Air
	}
	g := gridFromWorld(cfg, 0, 0, world)
	mesh, err := Generate(g, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Exactly the 8 cells sharing the solid lattice point are active.
	if mesh.VertexCount() != 8 {
		t.Fatalf("vertex count = %d, want 8", mesh.VertexCount())
	}

	for v := 0; v < mesh.VertexCount(); v++ {
		px := mesh.Positions[v*3] - cx
		py := mesh.Positions[v*3+1] - cy
		pz := mesh.Positions[v*3+2] - cz
		l := float32(math.Sqrt(float64(px*px + py*py + pz*pz)))
		if l == 0 {
			t.Fatalf("vertex %d sits on the voxel center", v)
		}
		dot := (px*mesh.Normals[v*3] + py*mesh.Normals[v*3+1] + pz*mesh.Normals[v*3+2]) / l
		if dot < 0.5 {
			t.Errorf("vertex %d: normal points inward or sideways (dot %v)", v, dot)
		}
	}
}

// Vertices emitted near the chunk boundary must land exactly on the boundary
// plane when within the snap epsilon, so neighboring chunks line up.
func TestBoundarySnapping(t *testing.T) {
	cfg := testConfig()
	// A vertical wall whose surface sits a hair inside the max-X plane.
	wall := float32(cfg.ChunkXZ) - 0.01
	world := func(wx, wy, wz int) (float32, uint8) {
		d := wall - float32(wx) + cfg.IsoLevel
		if d > cfg.IsoLevel {
			return d, voxel.Stone
		}
		return d, voxel.Air
	}
	g := gridFromWorld(cfg, 0, 0, world)
	mesh, err := Generate(g, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	snapped, nearMiss := 0, 0
	for v := 0; v < mesh.VertexCount(); v++ {
		x := mesh.Positions[v*3]
		if x == float32(cfg.ChunkXZ) {
			snapped++
		} else if x > float32(cfg.ChunkXZ)-cfg.SnapEpsilon {
			nearMiss++
		}
	}
	if snapped == 0 {
		t.Error("no vertices snapped onto the max-X plane")
	}
	if nearMiss != 0 {
		t.Errorf("%d vertices within snap epsilon of the plane were left unsnapped", nearMiss)
	}
}
