package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

func TestEvictionCacheDemoteAndReclaim(t *testing.T) {
	cache, err := NewEvictionCache(64)
	require.NoError(t, err)
	defer cache.Close()

	c := NewChunk(vec.Vec2{X: 2, Z: 3})
	c.SetBlockAt(vec.Vec3{X: 4, Y: 70, Z: 4}, block.Stone, 0)

	cache.Demote(c)
	cache.cache.Wait()

	reclaimed, ok := cache.Reclaim(c.Coord)
	require.True(t, ok)
	assert.Equal(t, c.Coord, reclaimed.Coord)

	ty, _ := reclaimed.BlockAt(vec.Vec3{X: 4, Y: 70, Z: 4})
	assert.Equal(t, block.Stone, ty)
}

func TestEvictionCacheReclaimMissReturnsFalse(t *testing.T) {
	cache, err := NewEvictionCache(64)
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.Reclaim(vec.Vec2{X: 99, Z: 99})
	assert.False(t, ok)
}
