package world

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

// wireChunk is the gob-friendly representation of a Chunk: plain arrays
// instead of the live *MiniChunk pointers, so it round-trips without
// dragging along mutexes or dirty flags.
type wireChunk struct {
	Coord vec.Vec2
	Minis [MinisPerChunk]wireMini
}

type wireMini struct {
	Coord    vec.Vec3
	Blocks   [MiniSize * MiniSize * MiniSize]block.Type
	Metadata [MiniSize * MiniSize * MiniSize]block.Metadata
}

// EncodeChunk serializes c to the wire format: a gob-encoded wireChunk
// wrapped in a zstd frame. This is the format used both by the optional
// eviction cache and exercised directly by the round-trip property.
func EncodeChunk(c *Chunk) ([]byte, error) {
	wc := wireChunk{Coord: c.Coord}
	for i, mini := range c.Minis {
		snap := mini.Snapshot()
		wc.Minis[i] = wireMini{Coord: snap.Coord, Blocks: snap.Blocks, Metadata: snap.Metadata}
	}

	var gobBuf bytes.Buffer
	if err := gob.NewEncoder(&gobBuf).Encode(wc); err != nil {
		return nil, fmt.Errorf("gob encode chunk %v: %w", c.Coord, err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	defer enc.Close()

	return enc.EncodeAll(gobBuf.Bytes(), nil), nil
}

// DecodeChunk reverses EncodeChunk, reconstructing a live *Chunk whose
// minis satisfy the §3 invariants.
func DecodeChunk(data []byte) (*Chunk, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}

	var wc wireChunk
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&wc); err != nil {
		if err != io.EOF {
			return nil, fmt.Errorf("gob decode chunk: %w", err)
		}
	}

	c := &Chunk{Coord: wc.Coord}
	for i, wm := range wc.Minis {
		m := NewMiniChunk(wm.Coord)
		for idx := range wm.Blocks {
			local := vec.Vec3{X: idx % MiniSize, Y: idx / (MiniSize * MiniSize), Z: (idx / MiniSize) % MiniSize}
			m.SetBlockAt(local, wm.Blocks[idx], wm.Metadata[idx])
		}
		c.Minis[i] = m
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
