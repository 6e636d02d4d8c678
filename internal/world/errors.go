package world

import "errors"

// Sentinel errors for the §7 error taxonomy. Each is matched with
// errors.Is at the call site; none of them propagates as panic/exception
// control flow.
var (
	// ErrNotResident names the condition of an operation addressing a
	// chunk coordinate absent from the world map. No World method returns
	// it: reads return Air/0, writes are dropped with a Warn log line, and
	// liquid propagation checks residency with ChunkAt.
	ErrNotResident = errors.New("chunk not resident")

	// ErrDuplicateChunk means a CHUNK_GEN_RESPONSE arrived for a
	// coordinate the world map already holds.
	ErrDuplicateChunk = errors.New("duplicate chunk response")

	// ErrStaleMeshResponse means a mesh response's request has since been
	// superseded by a newer request for the same mini.
	ErrStaleMeshResponse = errors.New("stale mesh response")

	// ErrInvariantViolation marks a generated or deserialized chunk that
	// fails a §3 structural invariant. Treated as fatal: these are bugs.
	ErrInvariantViolation = errors.New("chunk invariant violation")

	// ErrBusClosed means a worker observed its bus channel close; fatal to
	// that worker.
	ErrBusClosed = errors.New("message bus closed")
)
