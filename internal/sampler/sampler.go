// Package sampler drives periodic reads of the shared-memory source and
// feeds timestamped samples to the session logger.
package sampler

import (
	"context"
	"errors"
	"time"

	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/monitoring"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/session"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/shm"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/timeutil"
)

// DefaultRateHz is the default sampling frequency. Useful rates sit between
// 10 and 60 Hz; the producer updates far faster than either.
const DefaultRateHz = 10.0

// progressEvery controls how often capture progress is logged.
const progressEvery = 50

// Sampler polls the source at a fixed frequency and appends each fresh
// reading to the logger. Single-threaded: reads, stamps, and appends all
// happen on the Run goroutine.
type Sampler struct {
	source   *shm.Source
	logger   *session.Logger
	clock    timeutil.Clock
	interval time.Duration
	captured int
}

// New creates a sampler polling at rateHz. A rate <= 0 selects
// DefaultRateHz.
func New(source *shm.Source, logger *session.Logger, clock timeutil.Clock, rateHz float64) *Sampler {
	if rateHz <= 0 {
		rateHz = DefaultRateHz
	}
	return &Sampler{
		source:   source,
		logger:   logger,
		clock:    clock,
		interval: time.Duration(float64(time.Second) / rateHz),
	}
}

// Interval returns the inter-sample interval.
func (s *Sampler) Interval() time.Duration {
	return s.interval
}

// Run polls until ctx is cancelled or a fatal read error occurs. Stale
// reads are skipped silently and polling continues; any other failure ends
// the loop and is returned. Cancellation returns nil. The caller owns
// shutdown ordering: logger.Close then source.Close after Run returns.
func (s *Sampler) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	monitoring.Logf("sampler: capturing every %v", s.interval)

	for {
		select {
		case <-ctx.Done():
			monitoring.Logf("sampler: stopped after %d samples", s.captured)
			return nil
		case <-ticker.C():
			if err := s.tick(); err != nil {
				return err
			}
		}
	}
}

// tick performs a single read-stamp-append step.
func (s *Sampler) tick() error {
	rec, err := s.source.Read()
	if errors.Is(err, shm.ErrStale) {
		// Producer is at a menu or paused; not an error, just no new data.
		return nil
	}
	if err != nil {
		return err
	}

	sample := session.NewSample(rec, s.clock.Now())
	s.logger.Append(sample)
	s.captured++

	if s.captured%progressEvery == 0 {
		monitoring.Logf("sampler: %d samples, speed %.1f km/h, travel FL %.4f FR %.4f RL %.4f RR %.4f",
			s.captured, sample.Context.SpeedKmh,
			sample.Suspension.FrontLeft, sample.Suspension.FrontRight,
			sample.Suspension.RearLeft, sample.Suspension.RearRight)
	}

	return nil
}

// Captured returns how many samples this sampler has appended.
func (s *Sampler) Captured() int {
	return s.captured
}
