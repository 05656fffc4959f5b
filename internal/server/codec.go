// Package server streams generated chunk meshes to viewer clients over
// websockets, as zstd-compressed binary frames.
package server

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/lumina3d/voxelmesh/internal/mesher"
)

// frameMagic identifies a chunk mesh frame, followed by the format version.
const (
	frameMagic   uint32 = 0x564D5348 // "VMSH"
	frameVersion uint16 = 1
)

// maxFrameElements bounds any single decoded array, so a corrupt frame
// cannot ask for an absurd allocation.
const maxFrameElements = 1 << 24

// Codec encodes chunk meshes into compressed wire frames. One Codec is safe
// for concurrent use.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewCodec creates the shared encoder/decoder pair.
func NewCodec() (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Frame is one decoded chunk mesh message.
type Frame struct {
	ChunkX, ChunkZ int32
	Mesh           mesher.ChunkMesh
}

// Encode serializes one chunk mesh into a compressed binary frame.
func (c *Codec) Encode(chunkX, chunkZ int32, mesh *mesher.ChunkMesh) ([]byte, error) {
	var buf bytes.Buffer
	w := frameWriter{w: &buf}

	w.scalar(frameMagic)
	w.scalar(frameVersion)
	w.scalar(chunkX)
	w.scalar(chunkZ)

	w.f32s(mesh.Positions)
	w.f32s(mesh.Normals)
	w.u32s(mesh.Indices)
	for gi := range mesh.Weights {
		w.f32s(mesh.Weights[gi])
	}
	w.f32s(mesh.Wetness)
	w.f32s(mesh.Mossiness)
	w.f32s(mesh.Cavity)
	w.f32s(mesh.LightColor)

	w.f32s(mesh.WaterPositions)
	w.f32s(mesh.WaterNormals)
	w.u32s(mesh.WaterIndices)
	w.bytes(mesh.WaterShoreMask)

	hf := uint8(0)
	if mesh.Collider.IsHeightfield {
		hf = 1
	}
	w.scalar(hf)
	w.f32s(mesh.Collider.HeightfieldSamples)
	w.f32s(mesh.Collider.Positions)
	w.u32s(mesh.Collider.Indices)

	if w.err != nil {
		return nil, fmt.Errorf("encoding chunk (%d,%d): %w", chunkX, chunkZ, w.err)
	}
	return c.enc.EncodeAll(buf.Bytes(), nil), nil
}

// Decode parses a compressed frame back into a chunk mesh. The viewer-side
// counterpart of Encode; the tests use it to verify frames end to end.
func (c *Codec) Decode(data []byte) (*Frame, error) {
	raw, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing frame: %w", err)
	}
	r := frameReader{r: bytes.NewReader(raw)}

	var magic uint32
	var version uint16
	r.scalar(&magic)
	r.scalar(&version)
	if r.err == nil && magic != frameMagic {
		return nil, fmt.Errorf("bad frame magic %08x", magic)
	}
	if r.err == nil && version != frameVersion {
		return nil, fmt.Errorf("unsupported frame version %d", version)
	}

	var f Frame
	r.scalar(&f.ChunkX)
	r.scalar(&f.ChunkZ)

	f.Mesh.Positions = r.f32s()
	f.Mesh.Normals = r.f32s()
	f.Mesh.Indices = r.u32s()
	for gi := range f.Mesh.Weights {
		f.Mesh.Weights[gi] = r.f32s()
	}
	f.Mesh.Wetness = r.f32s()
	f.Mesh.Mossiness = r.f32s()
	f.Mesh.Cavity = r.f32s()
	f.Mesh.LightColor = r.f32s()

	f.Mesh.WaterPositions = r.f32s()
	f.Mesh.WaterNormals = r.f32s()
	f.Mesh.WaterIndices = r.u32s()
	f.Mesh.WaterShoreMask = r.bytes()

	var hf uint8
	r.scalar(&hf)
	f.Mesh.Collider.IsHeightfield = hf == 1
	f.Mesh.Collider.HeightfieldSamples = r.f32s()
	f.Mesh.Collider.Positions = r.f32s()
	f.Mesh.Collider.Indices = r.u32s()

	if r.err != nil {
		return nil, fmt.Errorf("decoding frame: %w", r.err)
	}
	return &f, nil
}

// frameWriter writes little-endian sections, remembering the first error so
// call sites stay flat.
type frameWriter struct {
	w   io.Writer
	err error
}

func (w *frameWriter) scalar(v any) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(w.w, binary.LittleEndian, v)
}

func (w *frameWriter) f32s(s []float32) {
	w.scalar(uint32(len(s)))
	if len(s) > 0 {
		w.scalar(s)
	}
}

func (w *frameWriter) u32s(s []uint32) {
	w.scalar(uint32(len(s)))
	if len(s) > 0 {
		w.scalar(s)
	}
}

func (w *frameWriter) bytes(s []byte) {
	w.scalar(uint32(len(s)))
	if len(s) > 0 {
		w.scalar(s)
	}
}

type frameReader struct {
	r   *bytes.Reader
	err error
}

func (r *frameReader) scalar(v any) {
	if r.err != nil {
		return
	}
	r.err = binary.Read(r.r, binary.LittleEndian, v)
}

func (r *frameReader) count() int {
	var n uint32
	r.scalar(&n)
	if r.err == nil && n > maxFrameElements {
		r.err = fmt.Errorf("section length %d exceeds limit", n)
		return 0
	}
	return int(n)
}

func (r *frameReader) f32s() []float32 {
	n := r.count()
	if r.err != nil || n == 0 {
		return nil
	}
	s := make([]float32, n)
	r.scalar(s)
	return s
}

func (r *frameReader) u32s() []uint32 {
	n := r.count()
	if r.err != nil || n == 0 {
		return nil
	}
	s := make([]uint32, n)
	r.scalar(s)
	return s
}

func (r *frameReader) bytes() []byte {
	n := r.count()
	if r.err != nil || n == 0 {
		return nil
	}
	s := make([]byte, n)
	r.scalar(s)
	return s
}
