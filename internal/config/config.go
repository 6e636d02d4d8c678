package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the engine process. It can be
// loaded from a YAML file; every field also has an environment-variable
// override which takes precedence over a zero value left by the file.
type Config struct {
	RenderDistance  int    `yaml:"render_distance"`
	WorldSeed       int64  `yaml:"world_seed"`
	ChunkGenWorkers int    `yaml:"chunkgen_workers"`
	MeshGenWorkers  int    `yaml:"meshgen_workers"`
	LogLevel        string `yaml:"log_level"`
	MetricsAddr     string `yaml:"metrics_addr"`
}

const (
	defaultRenderDistance  = 6
	defaultChunkGenWorkers = 2
	defaultMeshGenWorkers  = 2
	defaultLogLevel        = "info"
	defaultMetricsAddr     = ":9100"
)

// GetRenderDistance returns the observer's resident-chunk radius, config ->
// env RENDER_DISTANCE, then GAME_RENDER_DISTANCE -> default.
func (c *Config) GetRenderDistance() int {
	if c != nil && c.RenderDistance > 0 {
		return c.RenderDistance
	}
	return intWithEnvFallback([]string{"RENDER_DISTANCE", "GAME_RENDER_DISTANCE"}, defaultRenderDistance)
}

// GetWorldSeed returns the world generation seed, config -> env WORLD_SEED
// -> 0, meaning unset (the caller picks a seed itself).
func (c *Config) GetWorldSeed() int64 {
	if c != nil && c.WorldSeed != 0 {
		return c.WorldSeed
	}
	if raw := os.Getenv("WORLD_SEED"); raw != "" {
		if seed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return seed
		}
	}
	return 0
}

// GetChunkGenWorkers returns the chunk-generation worker pool size.
func (c *Config) GetChunkGenWorkers() int {
	if c != nil && c.ChunkGenWorkers > 0 {
		return c.ChunkGenWorkers
	}
	return intWithEnvFallback([]string{"CHUNKGEN_WORKERS"}, defaultChunkGenWorkers)
}

// GetMeshGenWorkers returns the mesh-generation worker pool size.
func (c *Config) GetMeshGenWorkers() int {
	if c != nil && c.MeshGenWorkers > 0 {
		return c.MeshGenWorkers
	}
	return intWithEnvFallback([]string{"MESHGEN_WORKERS"}, defaultMeshGenWorkers)
}

// GetLogLevel returns the minimum console log level name.
func (c *Config) GetLogLevel() string {
	if c != nil && c.LogLevel != "" {
		return c.LogLevel
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		return v
	}
	return defaultLogLevel
}

// GetMetricsAddr returns the bind address for the Prometheus HTTP handler.
func (c *Config) GetMetricsAddr() string {
	if c != nil && c.MetricsAddr != "" {
		return c.MetricsAddr
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		return v
	}
	return defaultMetricsAddr
}

func intWithEnvFallback(envVars []string, fallback int) int {
	for _, name := range envVars {
		if raw := os.Getenv(name); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				return v
			}
		}
	}
	return fallback
}

// Load reads the YAML configuration file named by path, or by CONFIG_FILE
// if path is empty. Returns (nil, nil) when no file is configured — every
// field then falls back to its environment/default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
