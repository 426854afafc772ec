// Package physics decodes the Assetto Corsa physics shared-memory page.
//
// The simulator publishes an SPageFilePhysics struct (4-byte packed,
// little-endian, x86 Windows ABI) into a named shared-memory page roughly
// 300 times per second. Only three fields matter here: the packet id, the
// speed, and the per-wheel suspension travel. The layout is reproduced as an
// explicit offset table rather than a struct overlay so the ABI assumptions
// stay visible and testable.
package physics

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Field offsets into SPageFilePhysics, in bytes. Every field in the producer
// struct is a 4-byte int32 or float32, so the packed layout has no padding.
// Offsets are fixed by the simulator's ABI and must not be changed.
const (
	packetIDOffset         = 0   // int32, increments each physics step
	speedKmhOffset         = 28  // float32, already in km/h
	suspensionTravelOffset = 184 // float32[4]: FL, FR, RL, RR, metres

	// PageSize is the total size of SPageFilePhysics. Buffers shorter than
	// this cannot be decoded; longer buffers have their tail ignored.
	PageSize = 368
)

// Wheel indexes into Record.SuspensionTravel, in producer order.
const (
	FrontLeft = iota
	FrontRight
	RearLeft
	RearRight
)

// Record is one decoded snapshot of the physics page. It is immutable once
// decoded and carries only the fields this system extracts.
type Record struct {
	PacketID         int32
	SpeedKmh         float32
	SuspensionTravel [4]float32
}

// LayoutError reports a buffer too small to hold the expected page layout,
// which normally means a producer version mismatch.
type LayoutError struct {
	Got  int
	Want int
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("physics: page buffer is %d bytes, layout requires %d", e.Got, e.Want)
}

// Decode maps a raw page buffer to a Record. It is a pure function: the same
// bytes always yield the same Record and no state is retained. Bytes outside
// the known field offsets are ignored.
func Decode(buf []byte) (Record, error) {
	if len(buf) < PageSize {
		return Record{}, &LayoutError{Got: len(buf), Want: PageSize}
	}

	var r Record
	r.PacketID = int32(binary.LittleEndian.Uint32(buf[packetIDOffset:]))
	r.SpeedKmh = float32frombytes(buf[speedKmhOffset:])
	for i := range r.SuspensionTravel {
		r.SuspensionTravel[i] = float32frombytes(buf[suspensionTravelOffset+4*i:])
	}
	return r, nil
}

// EncodePage builds a synthetic page buffer carrying the given record. Only
// the fields Decode reads are populated; the rest of the page is zero. The
// mock shared-memory region uses this to simulate the producer.
func EncodePage(r Record) []byte {
	buf := make([]byte, PageSize)
	binary.LittleEndian.PutUint32(buf[packetIDOffset:], uint32(r.PacketID))
	binary.LittleEndian.PutUint32(buf[speedKmhOffset:], math.Float32bits(r.SpeedKmh))
	for i, travel := range r.SuspensionTravel {
		binary.LittleEndian.PutUint32(buf[suspensionTravelOffset+4*i:], math.Float32bits(travel))
	}
	return buf
}

func float32frombytes(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
