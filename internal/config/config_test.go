package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRenderDistanceDefaultsWhenNilConfig(t *testing.T) {
	var c *Config
	assert.Equal(t, defaultRenderDistance, c.GetRenderDistance())
}

func TestGetRenderDistancePrefersConfigOverDefault(t *testing.T) {
	c := &Config{RenderDistance: 12}
	assert.Equal(t, 12, c.GetRenderDistance())
}

func TestGetRenderDistanceFallsBackToEnv(t *testing.T) {
	t.Setenv("RENDER_DISTANCE", "9")
	var c *Config
	assert.Equal(t, 9, c.GetRenderDistance())
}

func TestGetWorldSeedZeroMeansUnset(t *testing.T) {
	c := &Config{WorldSeed: 0}
	assert.Equal(t, int64(0), c.GetWorldSeed())
}

func TestLoadWithNoConfiguredPathReturnsNil(t *testing.T) {
	os.Unsetenv("CONFIG_FILE")
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	content := "render_distance: 4\nworld_seed: 99\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 4, cfg.RenderDistance)
	assert.Equal(t, int64(99), cfg.WorldSeed)
}
