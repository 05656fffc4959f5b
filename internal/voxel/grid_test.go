package voxel

import "testing"

func TestSentinelReads(t *testing.T) {
	g := NewGrid(4, 4, 4)
	for i := range g.Density {
		g.Density[i] = 2.0
		g.Material[i] = Stone
	}

	tests := []struct {
		name    string
		x, y, z int
	}{
		{"negative x", -1, 0, 0},
		{"negative y", 0, -1, 0},
		{"negative z", 0, 0, -1},
		{"past x", 4, 0, 0},
		{"past y", 0, 4, 0},
		{"past z", 0, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := g.DensityAt(tt.x, tt.y, tt.z); d != SentinelDensity {
				t.Errorf("DensityAt(%d,%d,%d) = %v, want sentinel", tt.x, tt.y, tt.z, d)
			}
			if m := g.MaterialAt(tt.x, tt.y, tt.z); m != Air {
				t.Errorf("MaterialAt(%d,%d,%d) = %d, want Air", tt.x, tt.y, tt.z, m)
			}
		})
	}

	if d := g.DensityAt(2, 2, 2); d != 2.0 {
		t.Errorf("in-range density = %v, want 2.0", d)
	}
}

func TestIndexLayout(t *testing.T) {
	g := NewGrid(3, 5, 7)
	// x varies fastest, then y, then z.
	if got := g.Index(1, 0, 0); got != 1 {
		t.Errorf("Index(1,0,0) = %d, want 1", got)
	}
	if got := g.Index(0, 1, 0); got != 3 {
		t.Errorf("Index(0,1,0) = %d, want 3", got)
	}
	if got := g.Index(0, 0, 1); got != 15 {
		t.Errorf("Index(0,0,1) = %d, want 15", got)
	}
	if got := g.Index(2, 4, 6); got != 3*5*7-1 {
		t.Errorf("Index(max) = %d, want %d", got, 3*5*7-1)
	}
}

func TestValidate(t *testing.T) {
	g := NewGrid(4, 4, 4)
	if err := g.Validate(); err != nil {
		t.Fatalf("valid grid rejected: %v", err)
	}

	g.Material = g.Material[:10]
	if err := g.Validate(); err == nil {
		t.Error("mismatched material length accepted")
	}

	g = NewGrid(4, 4, 4)
	g.Wetness = make([]uint8, 3)
	if err := g.Validate(); err == nil {
		t.Error("mismatched wetness length accepted")
	}

	g = NewGrid(4, 4, 4)
	g.Light = make([]uint8, 8) // does not match dims
	g.LightX, g.LightY, g.LightZ = 2, 2, 2
	g.LightCellSize = 2
	if err := g.Validate(); err == nil {
		t.Error("mismatched light length accepted")
	}
}

func TestLightFallback(t *testing.T) {
	g := NewGrid(4, 4, 4)
	r, gr, b := g.LightAt(1, 1, 1)
	if r != 0.35 || gr != 0.35 || b != 0.35 {
		t.Errorf("absent light grid = (%v,%v,%v), want flat ambient 0.35", r, gr, b)
	}

	g.LightCellSize = 2
	g.LightX, g.LightY, g.LightZ = 2, 2, 2
	g.Light = make([]uint8, 2*2*2*4)
	i := (1 + 0*2 + 1*2*2) * 4
	g.Light[i] = 255
	g.Light[i+1] = 127
	g.Light[i+2] = 0
	r, gr, b = g.LightAt(3, 1, 2) // cell (1,0,1)
	if r != 1.0 || b != 0 {
		t.Errorf("light sample = (%v,%v,%v), want (1, ~0.5, 0)", r, gr, b)
	}
}

func TestChannelTable(t *testing.T) {
	tab := DefaultChannelTable()
	if got := tab.ChannelFor(Grass); got != 0 {
		t.Errorf("ChannelFor(Grass) = %d, want 0", got)
	}
	if got := tab.ChannelFor(Mud); got != 15 {
		t.Errorf("ChannelFor(Mud) = %d, want 15", got)
	}
	if got := tab.ChannelFor(Air); got != -1 {
		t.Errorf("ChannelFor(Air) = %d, want -1", got)
	}
	if got := tab.ChannelFor(Water); got != -1 {
		t.Errorf("ChannelFor(Water) = %d, want -1", got)
	}
}
