package server

import (
	"testing"

	"github.com/lumina3d/voxelmesh/internal/mesher"
	"github.com/lumina3d/voxelmesh/internal/terrain"
)

// eqF32 and friends treat nil and empty as equal; the decoder returns nil
// for zero-length sections.
func eqF32(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func eqU32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func eqBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func meshesEqual(a, b *mesher.ChunkMesh) bool {
	for gi := range a.Weights {
		if !eqF32(a.Weights[gi], b.Weights[gi]) {
			return false
		}
	}
	return eqF32(a.Positions, b.Positions) &&
		eqF32(a.Normals, b.Normals) &&
		eqU32(a.Indices, b.Indices) &&
		eqF32(a.Wetness, b.Wetness) &&
		eqF32(a.Mossiness, b.Mossiness) &&
		eqF32(a.Cavity, b.Cavity) &&
		eqF32(a.LightColor, b.LightColor) &&
		eqF32(a.WaterPositions, b.WaterPositions) &&
		eqF32(a.WaterNormals, b.WaterNormals) &&
		eqU32(a.WaterIndices, b.WaterIndices) &&
		eqBytes(a.WaterShoreMask, b.WaterShoreMask) &&
		a.Collider.IsHeightfield == b.Collider.IsHeightfield &&
		eqF32(a.Collider.HeightfieldSamples, b.Collider.HeightfieldSamples) &&
		eqF32(a.Collider.Positions, b.Collider.Positions) &&
		eqU32(a.Collider.Indices, b.Collider.Indices)
}

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	cfg := mesher.DefaultConfig()
	cfg.ChunkXZ = 16
	cfg.ChunkY = 32
	cfg.WaterLevel = 8

	gen := terrain.New(terrain.DefaultSettings(), cfg)
	mesh, err := mesher.Generate(gen.Grid(0, 0), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	frame, err := codec.Encode(3, -7, mesh)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := codec.Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.ChunkX != 3 || decoded.ChunkZ != -7 {
		t.Errorf("chunk coords = (%d,%d), want (3,-7)", decoded.ChunkX, decoded.ChunkZ)
	}
	if len(mesh.Positions) == 0 {
		t.Fatal("test terrain produced an empty mesh")
	}
	if !meshesEqual(&decoded.Mesh, mesh) {
		t.Error("decoded mesh differs from original")
	}
}

func TestCodecEmptyMesh(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	frame, err := codec.Encode(0, 0, &mesher.ChunkMesh{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := codec.Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n := len(decoded.Mesh.Positions); n != 0 {
		t.Errorf("expected empty positions, got %d", n)
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	if _, err := codec.Decode([]byte("not a zstd frame")); err == nil {
		t.Error("expected error for non-zstd input")
	}

	// Valid zstd, wrong payload.
	bogus := codec.enc.EncodeAll([]byte{1, 2, 3, 4, 5, 6, 7, 8}, nil)
	if _, err := codec.Decode(bogus); err == nil {
		t.Error("expected error for bogus payload")
	}
}
