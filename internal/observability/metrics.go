package observability

import (
	"net/http"
	"time"

	"github.com/voxelcore/worldcore/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineMetrics holds the Prometheus instruments for the chunk-gen and
// mesh-gen pipeline. Every counter/gauge/histogram is owned by a single
// instance rather than package-level globals, so tests can construct their
// own registry instead of colliding on the default one.
type PipelineMetrics struct {
	registry *prometheus.Registry

	chunkGenRequests  prometheus.Counter
	chunkGenResponses prometheus.Counter
	chunkGenDuration  prometheus.Histogram

	meshGenRequests  prometheus.Counter
	meshGenResponses prometheus.Counter
	meshGenDuration  prometheus.Histogram
	meshGenQuads     prometheus.Counter

	liquidQueueDepth prometheus.Gauge
	residentChunks   prometheus.Gauge

	worldWriteDropped prometheus.Counter
}

// NewPipelineMetrics builds and registers a fresh metrics set.
func NewPipelineMetrics() *PipelineMetrics {
	reg := prometheus.NewRegistry()

	m := &PipelineMetrics{
		registry: reg,
		chunkGenRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldcore",
			Subsystem: "chunkgen",
			Name:      "requests_total",
			Help:      "Chunk generation requests enqueued by the world actor.",
		}),
		chunkGenResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldcore",
			Subsystem: "chunkgen",
			Name:      "responses_total",
			Help:      "Chunk generation responses accepted by the world actor.",
		}),
		chunkGenDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "worldcore",
			Subsystem: "chunkgen",
			Name:      "duration_seconds",
			Help:      "Time spent generating a single chunk.",
			Buckets:   prometheus.DefBuckets,
		}),
		meshGenRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldcore",
			Subsystem: "meshgen",
			Name:      "requests_total",
			Help:      "Mesh extraction requests enqueued by the world actor.",
		}),
		meshGenResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldcore",
			Subsystem: "meshgen",
			Name:      "responses_total",
			Help:      "Mesh extraction responses accepted by the world actor.",
		}),
		meshGenDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "worldcore",
			Subsystem: "meshgen",
			Name:      "duration_seconds",
			Help:      "Time spent extracting quads for a single mini-chunk.",
			Buckets:   prometheus.DefBuckets,
		}),
		meshGenQuads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldcore",
			Subsystem: "meshgen",
			Name:      "quads_emitted_total",
			Help:      "Total quads emitted across opaque and water lists.",
		}),
		liquidQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "worldcore",
			Subsystem: "liquid",
			Name:      "queue_depth",
			Help:      "Pending entries in the water propagation min-heap.",
		}),
		residentChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "worldcore",
			Subsystem: "world",
			Name:      "resident_chunks",
			Help:      "Chunks currently present in the world map.",
		}),
		worldWriteDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldcore",
			Subsystem: "world",
			Name:      "writes_dropped_total",
			Help:      "Block writes dropped because the target chunk was not resident.",
		}),
	}

	reg.MustRegister(
		m.chunkGenRequests, m.chunkGenResponses, m.chunkGenDuration,
		m.meshGenRequests, m.meshGenResponses, m.meshGenDuration, m.meshGenQuads,
		m.liquidQueueDepth, m.residentChunks, m.worldWriteDropped,
	)
	return m
}

func (m *PipelineMetrics) ChunkGenRequested()                { m.chunkGenRequests.Inc() }
func (m *PipelineMetrics) ChunkGenCompleted(d time.Duration)  { m.chunkGenResponses.Inc(); m.chunkGenDuration.Observe(d.Seconds()) }
func (m *PipelineMetrics) MeshGenRequested()                  { m.meshGenRequests.Inc() }
func (m *PipelineMetrics) MeshGenCompleted(d time.Duration, quadCount int) {
	m.meshGenResponses.Inc()
	m.meshGenDuration.Observe(d.Seconds())
	m.meshGenQuads.Add(float64(quadCount))
}
func (m *PipelineMetrics) SetLiquidQueueDepth(n int)  { m.liquidQueueDepth.Set(float64(n)) }
func (m *PipelineMetrics) SetResidentChunks(n int)    { m.residentChunks.Set(float64(n)) }
func (m *PipelineMetrics) WorldWriteDropped()         { m.worldWriteDropped.Inc() }

// StartHTTP serves /metrics on addr in a background goroutine.
func (m *PipelineMetrics) StartHTTP(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	go func() {
		logging.Info("metrics endpoint listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Error("metrics http server stopped: %v", err)
		}
	}()
}
