package shm

import (
	"math"
	"sync"

	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/physics"
)

// MockRegion implements Region in memory. Tests drive it with SetRecord and
// SetErr; the CLI's -dev mode wraps it in a SyntheticRegion that rewrites
// the page on every read like the real producer would.
type MockRegion struct {
	mu     sync.Mutex
	buf    []byte
	err    error
	closed bool
	reads  int
}

// NewMockRegion returns a MockRegion initially serving the given record.
func NewMockRegion(rec physics.Record) *MockRegion {
	return &MockRegion{buf: physics.EncodePage(rec)}
}

// SetRecord replaces the page contents with an encoded record.
func (m *MockRegion) SetRecord(rec physics.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf = physics.EncodePage(rec)
}

// SetBytes replaces the raw page contents, e.g. with a truncated buffer.
func (m *MockRegion) SetBytes(buf []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf = append([]byte(nil), buf...)
}

// SetErr makes subsequent reads fail with err until cleared with nil.
func (m *MockRegion) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Read returns a copy of the current page contents.
func (m *MockRegion) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.err != nil {
		return nil, m.err
	}

	m.reads++
	buf := make([]byte, len(m.buf))
	copy(buf, m.buf)
	return buf, nil
}

// Reads returns how many successful reads have been served.
func (m *MockRegion) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Close marks the region closed. Idempotent.
func (m *MockRegion) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// SyntheticRegion simulates a live producer: every read advances the packet
// id and moves the suspension through a slow sine sweep. It backs the CLI's
// -dev mode so the whole capture path can run without the simulator.
type SyntheticRegion struct {
	mu       sync.Mutex
	packetID int32
	closed   bool
}

// NewSyntheticRegion returns a SyntheticRegion starting at packet id 1.
func NewSyntheticRegion() *SyntheticRegion {
	return &SyntheticRegion{packetID: 1}
}

// Read synthesizes the next physics page.
func (s *SyntheticRegion) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	phase := float64(s.packetID) / 25.0
	rec := physics.Record{
		PacketID: s.packetID,
		SpeedKmh: float32(90 + 30*math.Sin(phase/4)),
	}
	for i := range rec.SuspensionTravel {
		rec.SuspensionTravel[i] = float32(0.04 + 0.01*math.Sin(phase+float64(i)))
	}
	s.packetID++

	return physics.EncodePage(rec), nil
}

// Close marks the region closed. Idempotent.
func (s *SyntheticRegion) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
