// Package session accumulates timestamped suspension samples and persists
// them as self-contained JSON session documents.
package session

import (
	"time"

	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/physics"
)

// FileVersion is the schema tag written into every session file.
const FileVersion = "1.0"

// isoLayout renders local times the way downstream tooling expects,
// ISO 8601 with microseconds.
const isoLayout = "2006-01-02T15:04:05.000000"

// Suspension holds per-wheel suspension travel in metres.
type Suspension struct {
	FrontLeft  float64 `json:"front_left"`
	FrontRight float64 `json:"front_right"`
	RearLeft   float64 `json:"rear_left"`
	RearRight  float64 `json:"rear_right"`
}

// Context carries the minimal non-suspension fields kept with each sample.
type Context struct {
	SpeedKmh float64 `json:"speed_kmh"`
	PacketID int32   `json:"packet_id"`
}

// Sample is one decoded physics record stamped with wall-clock time.
type Sample struct {
	Timestamp    float64    `json:"timestamp"`
	ReadableTime string     `json:"readable_time"`
	Suspension   Suspension `json:"suspension"`
	Context      Context    `json:"context"`
}

// Metadata summarises a session. Recomputed at every flush so the file on
// disk is always internally consistent.
type Metadata struct {
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	TotalSamples    int     `json:"total_samples"`
	DurationSeconds float64 `json:"duration_seconds"`
	FileVersion     string  `json:"file_version"`
}

// Document is the persisted unit: one session's metadata plus its ordered
// samples.
type Document struct {
	SessionMetadata Metadata `json:"session_metadata"`
	Data            []Sample `json:"data"`
}

// NewSample stamps a physics record with the given wall-clock time.
func NewSample(rec physics.Record, at time.Time) Sample {
	return Sample{
		Timestamp:    float64(at.UnixNano()) / float64(time.Second),
		ReadableTime: at.Format(isoLayout),
		Suspension: Suspension{
			FrontLeft:  float64(rec.SuspensionTravel[physics.FrontLeft]),
			FrontRight: float64(rec.SuspensionTravel[physics.FrontRight]),
			RearLeft:   float64(rec.SuspensionTravel[physics.RearLeft]),
			RearRight:  float64(rec.SuspensionTravel[physics.RearRight]),
		},
		Context: Context{
			SpeedKmh: float64(rec.SpeedKmh),
			PacketID: rec.PacketID,
		},
	}
}
