package world

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/voxelcore/worldcore/internal/logging"
	"github.com/voxelcore/worldcore/internal/vec"
)

func cacheKey(coord vec.Vec2) string {
	return fmt.Sprintf("%d:%d", coord.X, coord.Z)
}

// EvictionCache is the optional chunk cache §6 allows layering under the
// generator: Demote stores a chunk encoded per wire.go, and Reclaim decodes
// it back, so a chunk can skip regeneration. World does not evict chunks
// and does not call this cache; a caller that removes chunks from
// residency has to demote and reclaim them itself. It is strictly
// process-lifetime, never written to disk.
type EvictionCache struct {
	cache  *ristretto.Cache
	logger *logging.Logger
}

// NewEvictionCache builds a cache sized for roughly maxChunks resident
// encoded chunks (ristretto sizes by cost, so this is an estimate, not a
// hard cap).
func NewEvictionCache(maxChunks int64) (*EvictionCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxChunks * 10,
		MaxCost:     maxChunks,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &EvictionCache{cache: c, logger: logging.GetWorldLogger()}, nil
}

// Demote encodes and stores a chunk leaving residency.
func (e *EvictionCache) Demote(c *Chunk) {
	data, err := EncodeChunk(c)
	if err != nil {
		e.logger.Warn("failed to encode chunk %v for eviction cache: %v", c.Coord, err)
		return
	}
	e.cache.Set(cacheKey(c.Coord), data, 1)
}

// Reclaim looks up a previously demoted chunk by coordinate, decoding it
// back into a live *Chunk on a cache hit.
func (e *EvictionCache) Reclaim(coord vec.Vec2) (*Chunk, bool) {
	v, found := e.cache.Get(cacheKey(coord))
	if !found {
		return nil, false
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, false
	}
	c, err := DecodeChunk(data)
	if err != nil {
		if errors.Is(err, ErrInvariantViolation) {
			e.logger.Error("cached chunk %v is invalid: %v", coord, err)
			panic(err)
		}
		e.logger.Warn("failed to decode cached chunk %v: %v", coord, err)
		return nil, false
	}
	return c, true
}

// Close releases the underlying ristretto cache's background goroutines.
func (e *EvictionCache) Close() {
	e.cache.Close()
}
