package shm

import (
	"fmt"
	"sync"

	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/monitoring"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/physics"
)

// DefaultRegionName is the physics page the simulator publishes.
const DefaultRegionName = "Local\\acpmf_physics"

// DefaultStaleLimit is how many consecutive reads may return an unchanged
// packet id before the source reports ErrStale and moves to StateIdle. The
// producer rewrites the page a few hundred times per second, so at sampling
// rates up to 60 Hz a healthy session never repeats an id.
const DefaultStaleLimit = 3

// State describes where the source is in its lifecycle.
type State int

const (
	// StateConnected means the region is mapped but no packet id advance
	// has been observed yet.
	StateConnected State = iota

	// StateProducing means the last read observed an advancing packet id.
	StateProducing

	// StateIdle means the region is mapped but the packet id has stopped
	// advancing, e.g. the simulator is at a menu or paused.
	StateIdle

	// StateClosed means Close has been called.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateProducing:
		return "producing"
	case StateIdle:
		return "idle"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source reads decoded physics records from a Region and tracks producer
// liveness through the packet id. It is the single process-wide handle on
// the shared-memory resource: construct it once, pass it to the sampling
// loop, and close it on shutdown.
type Source struct {
	mu           sync.Mutex
	region       Region
	staleLimit   int
	state        State
	lastPacketID int32
	sameIDReads  int
}

// Open maps the named region and wraps it in a Source. A size of
// physics.PageSize bytes is mapped; staleLimit <= 0 selects
// DefaultStaleLimit.
func Open(name string, staleLimit int) (*Source, error) {
	region, err := OpenRegion(name, physics.PageSize)
	if err != nil {
		return nil, err
	}
	return NewSource(region, staleLimit), nil
}

// NewSource wraps an already open Region. Used directly by tests and by the
// CLI's -dev mode.
func NewSource(region Region, staleLimit int) *Source {
	if staleLimit <= 0 {
		staleLimit = DefaultStaleLimit
	}
	return &Source{
		region:     region,
		staleLimit: staleLimit,
		state:      StateConnected,
	}
}

// Read decodes the current contents of the region.
//
// A packet id equal to the previous read's is tolerated up to the stale
// limit; from then on Read returns ErrStale until the id advances again.
// Layout and region failures are returned as-is and should be treated as
// fatal by callers.
func (s *Source) Read() (physics.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return physics.Record{}, ErrClosed
	}

	buf, err := s.region.Read()
	if err != nil {
		return physics.Record{}, err
	}

	rec, err := physics.Decode(buf)
	if err != nil {
		return physics.Record{}, err
	}

	if s.state != StateConnected && rec.PacketID == s.lastPacketID {
		s.sameIDReads++
		if s.sameIDReads >= s.staleLimit {
			if s.state != StateIdle {
				s.state = StateIdle
				monitoring.Logf("shm: producer idle, packet id stuck at %d", rec.PacketID)
			}
			return physics.Record{}, ErrStale
		}
		return rec, nil
	}

	if s.state == StateIdle {
		monitoring.Logf("shm: producer resumed at packet id %d", rec.PacketID)
	}
	s.state = StateProducing
	s.lastPacketID = rec.PacketID
	s.sameIDReads = 0
	return rec, nil
}

// Producing reports whether the producer looks live: the region decodes and
// carries a positive packet id. Used as a startup probe before sampling.
func (s *Source) Producing() bool {
	rec, err := s.Read()
	if err != nil {
		return false
	}
	return rec.PacketID > 0
}

// State returns the source's lifecycle state.
func (s *Source) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close releases the underlying region. Idempotent; always safe to call on
// shutdown regardless of how the sampling loop terminated.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	return s.region.Close()
}
