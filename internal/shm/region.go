// Package shm reads the simulator's physics shared-memory region.
//
// The simulator (the producer) owns a named OS shared-memory mapping and
// rewrites it on every physics step; this package only ever reads it. Region
// is the opaque byte-region provider; Source layers record decoding and a
// staleness heuristic on top.
package shm

import "errors"

var (
	// ErrNotFound reports that the named mapping does not exist, normally
	// because the simulator is not running.
	ErrNotFound = errors.New("shm: shared-memory region not found")

	// ErrStale reports that the producer is reachable but its packet id has
	// stopped advancing, e.g. the simulator is sitting at a menu. Callers
	// should treat it as "no new data", not as connection loss.
	ErrStale = errors.New("shm: producer is not updating the region")

	// ErrClosed reports a read on a closed source.
	ErrClosed = errors.New("shm: source is closed")

	// ErrUnsupported reports that this platform cannot open the producer's
	// mapping. The simulator publishes it on Windows only.
	ErrUnsupported = errors.New("shm: named shared memory requires windows")
)

// Region is a handle to an externally owned block of bytes. Implementations
// are the Windows file mapping and MockRegion for tests and dev mode.
type Region interface {
	// Read returns the current contents of the region.
	Read() ([]byte, error)

	// Close releases the region. It must be idempotent.
	Close() error
}
