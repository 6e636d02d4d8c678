package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voxelcore/worldcore/internal/config"
	"github.com/voxelcore/worldcore/internal/eventbus"
	"github.com/voxelcore/worldcore/internal/logging"
	"github.com/voxelcore/worldcore/internal/observability"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world"
)

func main() {
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("starting voxel world core")

	cfg, err := config.Load("")
	if err != nil {
		logging.Warn("failed to load config file: %v", err)
	}

	seed := cfg.GetWorldSeed()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	renderDistance := cfg.GetRenderDistance()

	logging.Info("world seed=%d render_distance=%d", seed, renderDistance)

	metrics := observability.NewPipelineMetrics()
	metrics.StartHTTP(cfg.GetMetricsAddr())

	w := world.NewWorld(seed, nil, nil)
	pipeline := world.NewPipeline(w, cfg.GetChunkGenWorkers(), cfg.GetMeshGenWorkers(), metrics)
	defer pipeline.Stop()

	bus := eventbus.NewMemoryBus(256)
	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("failed to start eventbus logging listener: %v", err)
	}

	spawn := vec.Vec3Float{X: 0, Y: 80, Z: 0}
	observer := world.NewObserver(spawn, renderDistance)
	observer.OnMovedChunks(func(newChunkXZ vec.Vec2) {
		err := bus.Publish(context.Background(), &eventbus.Envelope{
			Source:    "observer",
			EventType: eventbus.EventPlayerMovedChunks,
			Payload:   eventbus.PlayerMovedChunksPayload{NewChunkXZ: newChunkXZ},
		})
		if err != nil {
			logging.Warn("failed to publish player-moved-chunks event: %v", err)
		}
	})
	w.GenNearby(world.ChunkCoord(observer.Position.Floor()), renderDistance)

	const tickInterval = 50 * time.Millisecond // 20 logical ticks per second
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var tick int64
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logging.Info("pipeline running; ctrl-c to stop")

	for {
		select {
		case <-ticker.C:
			tick++
			pipeline.Drain()
			w.UpdateTick(tick)
			observer.UpdateTarget(w, 5.0)
			metrics.SetResidentChunks(w.ResidentCount())
			metrics.SetLiquidQueueDepth(w.LiquidQueueDepth())
		case sig := <-sigCh:
			logging.Info("received signal %v, shutting down", sig)
			return
		}
	}
}
