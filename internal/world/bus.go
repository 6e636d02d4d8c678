package world

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voxelcore/worldcore/internal/logging"
	"github.com/voxelcore/worldcore/internal/observability"
	"github.com/voxelcore/worldcore/internal/vec"
)

// ChunkGenRequest is CHUNK_GEN_REQUEST: world -> chunk-gen workers.
type ChunkGenRequest struct {
	ID    string
	Coord vec.Vec2
}

// ChunkGenResponse is CHUNK_GEN_RESPONSE: chunk-gen workers -> world.
type ChunkGenResponse struct {
	ID    string
	Coord vec.Vec2
	Chunk *Chunk
}

// MeshGenRequest is MESH_GEN_REQUEST: world -> mesh-gen workers. It carries
// an immutable snapshot of the target mini and its six neighbors, captured
// at request time so workers never re-read the live world map.
type MeshGenRequest struct {
	ID         string
	Target     MiniSnapshot
	Neighbors  NeighborMinis
	TargetCoord vec.Vec3
	seq        uint64
}

// MeshGenResponse is MESH_GEN_RESPONSE: mesh-gen workers -> world -> render.
type MeshGenResponse struct {
	ID        string
	MiniCoord vec.Vec3
	Result    MeshResult
	seq       uint64
}

// PlayerMovedChunksEvent is EVENT_PLAYER_MOVED_CHUNKS: world -> subscribers.
type PlayerMovedChunksEvent struct {
	NewChunkXZ vec.Vec2
}

// Pipeline wires a World to bounded chunk-gen and mesh-gen worker pools. It
// owns the dedup-by-mini-coord bookkeeping described in §5: only the most
// recently issued mesh request for a given mini is allowed to produce an
// accepted response.
type Pipeline struct {
	world *World

	chunkReqCh  chan ChunkGenRequest
	chunkRespCh chan ChunkGenResponse
	meshReqCh   chan MeshGenRequest
	meshRespCh  chan MeshGenResponse

	generator *Generator

	metrics *observability.PipelineMetrics
	logger  *logging.Logger

	mu        sync.Mutex
	meshSeq   map[vec.Vec3]uint64
	nextSeq   uint64

	meshResults map[vec.Vec3]MeshResult
	meshMu      sync.RWMutex

	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewPipeline builds the chunk-gen/mesh-gen pipeline for world, sized by
// the given worker pool counts, and launches the worker goroutines.
func NewPipeline(w *World, chunkGenWorkers, meshGenWorkers int, metrics *observability.PipelineMetrics) *Pipeline {
	p := &Pipeline{
		world:       w,
		chunkReqCh:  make(chan ChunkGenRequest, 256),
		chunkRespCh: make(chan ChunkGenResponse, 256),
		meshReqCh:   make(chan MeshGenRequest, 1024),
		meshRespCh:  make(chan MeshGenResponse, 1024),
		generator:   NewGenerator(w.Seed()),
		metrics:     metrics,
		logger:      logging.GetWorldLogger(),
		meshSeq:     make(map[vec.Vec3]uint64),
		meshResults: make(map[vec.Vec3]MeshResult),
		stopCh:      make(chan struct{}),
	}

	w.onChunkRequest = p.requestChunk
	w.onMeshRequest = p.requestMesh

	p.startChunkGenWorkers(chunkGenWorkers)
	p.startMeshGenWorkers(meshGenWorkers)
	return p
}

func (p *Pipeline) requestChunk(coord vec.Vec2) {
	req := ChunkGenRequest{ID: uuid.NewString(), Coord: coord}
	if p.metrics != nil {
		p.metrics.ChunkGenRequested()
	}
	select {
	case p.chunkReqCh <- req:
	case <-p.stopCh:
	}
}

func (p *Pipeline) requestMesh(miniCoord vec.Vec3) {
	chunkCoord := ChunkCoord(miniCoord)
	c, ok := p.world.ChunkAt(chunkCoord)
	if !ok {
		return
	}
	mini := c.MiniAt(miniCoord.Y)
	if mini == nil {
		return
	}

	p.mu.Lock()
	p.nextSeq++
	seq := p.nextSeq
	p.meshSeq[miniCoord] = seq
	p.mu.Unlock()

	nb := p.neighborSnapshotsFor(miniCoord)
	req := MeshGenRequest{
		ID:          uuid.NewString(),
		Target:      mini.Snapshot(),
		Neighbors:   nb,
		TargetCoord: miniCoord,
		seq:         seq,
	}

	if p.metrics != nil {
		p.metrics.MeshGenRequested()
	}
	select {
	case p.meshReqCh <- req:
	case <-p.stopCh:
	}
}

func (p *Pipeline) neighborSnapshotsFor(miniCoord vec.Vec3) NeighborMinis {
	get := func(offset vec.Vec3) *MiniSnapshot {
		target := vec.Vec3{X: miniCoord.X + offset.X, Y: miniCoord.Y + offset.Y, Z: miniCoord.Z + offset.Z}
		c, ok := p.world.ChunkAt(ChunkCoord(target))
		if !ok {
			return nil
		}
		m := c.MiniAt(target.Y)
		if m == nil {
			return nil
		}
		snap := m.Snapshot()
		return &snap
	}

	return NeighborMinis{
		PosX: get(vec.Vec3{X: ChunkSize}),
		NegX: get(vec.Vec3{X: -ChunkSize}),
		PosY: get(vec.Vec3{Y: MiniSize}),
		NegY: get(vec.Vec3{Y: -MiniSize}),
		PosZ: get(vec.Vec3{Z: ChunkSize}),
		NegZ: get(vec.Vec3{Z: -ChunkSize}),
	}
}

func (p *Pipeline) startChunkGenWorkers(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case req, ok := <-p.chunkReqCh:
					if !ok {
						p.logger.Error("chunk-gen request channel closed")
						return
					}
					start := time.Now()
					chunk := p.generator.Generate(req.Coord)
					if p.metrics != nil {
						p.metrics.ChunkGenCompleted(time.Since(start))
					}
					resp := ChunkGenResponse{ID: req.ID, Coord: req.Coord, Chunk: chunk}
					select {
					case p.chunkRespCh <- resp:
					case <-p.stopCh:
						return
					}
				case <-p.stopCh:
					return
				}
			}
		}()
	}
}

func (p *Pipeline) startMeshGenWorkers(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case req, ok := <-p.meshReqCh:
					if !ok {
						p.logger.Error("mesh-gen request channel closed")
						return
					}
					start := time.Now()
					result := ExtractMesh(req.Target, req.Neighbors)
					if p.metrics != nil {
						p.metrics.MeshGenCompleted(time.Since(start), len(result.Opaque)+len(result.Water))
					}
					resp := MeshGenResponse{ID: req.ID, MiniCoord: req.TargetCoord, Result: result, seq: req.seq}
					select {
					case p.meshRespCh <- resp:
					case <-p.stopCh:
						return
					}
				case <-p.stopCh:
					return
				}
			}
		}()
	}
}

// Drain processes every pending chunk-gen and mesh-gen response currently
// buffered on the bus. The world actor calls this once per frame/tick; it
// never waits for a response to arrive. Inserting a chunk enqueues mesh
// requests, and that send waits while the mesh request queue is full. A
// chunk that fails its invariant check aborts the process.
func (p *Pipeline) Drain() {
chunkLoop:
	for {
		select {
		case resp := <-p.chunkRespCh:
			if err := p.world.InsertChunk(resp.Chunk); err != nil {
				if errors.Is(err, ErrInvariantViolation) {
					p.logger.Error("generated chunk %v is invalid: %v", resp.Coord, err)
					panic(err)
				}
				p.logger.Warn("chunk insert for %v rejected: %v", resp.Coord, err)
			}
		default:
			break chunkLoop
		}
	}

meshLoop:
	for {
		select {
		case resp := <-p.meshRespCh:
			p.acceptMeshResponse(resp)
		default:
			break meshLoop
		}
	}
}

func (p *Pipeline) acceptMeshResponse(resp MeshGenResponse) {
	p.mu.Lock()
	current, tracked := p.meshSeq[resp.MiniCoord]
	stale := tracked && resp.seq < current
	p.mu.Unlock()

	if stale {
		p.logger.Trace("stale mesh response for %v dropped", resp.MiniCoord)
		return
	}

	p.meshMu.Lock()
	p.meshResults[resp.MiniCoord] = resp.Result
	p.meshMu.Unlock()
}

// MeshResultFor returns the most recently accepted mesh result for a mini,
// if any — the render thread's read path.
func (p *Pipeline) MeshResultFor(miniCoord vec.Vec3) (MeshResult, bool) {
	p.meshMu.RLock()
	defer p.meshMu.RUnlock()
	r, ok := p.meshResults[miniCoord]
	return r, ok
}

// Stop shuts down every worker goroutine and waits for them to exit.
func (p *Pipeline) Stop() {
	close(p.stopCh)
	p.wg.Wait()
}
