package session

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/fsutil"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/monitoring"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/timeutil"
)

// DefaultFlushEvery is how many samples accumulate between automatic
// rewrites of the session file.
const DefaultFlushEvery = 100

// Logger owns one capture session: an ordered in-memory sample buffer and
// the file it is persisted to. Every flush rewrites the whole document so
// the file on disk is a complete, parseable JSON document at all times,
// never a truncated fragment. Not safe for concurrent use; the sampling
// loop is the only writer.
type Logger struct {
	fs         fsutil.FileSystem
	clock      timeutil.Clock
	path       string
	startTime  time.Time
	samples    []Sample
	sinceFlush int
	flushEvery int
	closed     bool
}

// Stats reports a session's progress.
type Stats struct {
	TotalSamples    int
	DurationSeconds float64
	FilePath        string
	StartTime       time.Time
}

// NewLogger starts a new session inside dir, creating the directory on
// demand. The session file is named from the start time, so each process
// run produces a fresh file. flushEvery <= 0 selects DefaultFlushEvery.
func NewLogger(fs fsutil.FileSystem, clock timeutil.Clock, dir string, flushEvery int) (*Logger, error) {
	if flushEvery <= 0 {
		flushEvery = DefaultFlushEvery
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: create output dir %q: %w", dir, err)
	}

	start := clock.Now()
	name := fmt.Sprintf("suspension_data_%s.json", start.Format("20060102_150405"))

	l := &Logger{
		fs:         fs,
		clock:      clock,
		path:       filepath.Join(dir, name),
		startTime:  start,
		flushEvery: flushEvery,
	}
	monitoring.Logf("session: started, writing to %s", l.path)
	return l, nil
}

// Append adds a sample to the session buffer and flushes once flushEvery
// samples have accumulated since the last flush. A failed auto-flush is
// logged and retried at the next threshold rather than aborting capture.
func (l *Logger) Append(s Sample) {
	if l.closed {
		return
	}

	l.samples = append(l.samples, s)
	l.sinceFlush++

	if l.sinceFlush >= l.flushEvery {
		if err := l.Flush(); err != nil {
			monitoring.Logf("session: auto-flush failed: %v", err)
			return
		}
		monitoring.Logf("session: auto-saved %d samples", len(l.samples))
	}
}

// Flush rewrites the session file with everything accumulated so far. A
// failed write is retried once; if the retry also fails the error is
// returned and the in-memory buffer is kept so a later flush can recover.
func (l *Logger) Flush() error {
	doc := l.document()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal document: %w", err)
	}

	if err := l.fs.WriteFile(l.path, data, 0o644); err != nil {
		monitoring.Logf("session: write %s failed, retrying once: %v", l.path, err)
		if err := l.fs.WriteFile(l.path, data, 0o644); err != nil {
			return fmt.Errorf("session: write %s: %w", l.path, err)
		}
	}

	l.sinceFlush = 0
	return nil
}

// Close finalizes the session metadata and performs the last flush. It is
// valid with zero appended samples (the file then holds an empty data array)
// and is safe to call more than once.
func (l *Logger) Close() error {
	if l.closed {
		return nil
	}

	err := l.Flush()
	if err == nil {
		l.closed = true
	}
	return err
}

// Count returns how many samples have been appended.
func (l *Logger) Count() int {
	return len(l.samples)
}

// Path returns the session file path.
func (l *Logger) Path() string {
	return l.path
}

// StartTime returns when the session began.
func (l *Logger) StartTime() time.Time {
	return l.startTime
}

// Stats summarises the session so far.
func (l *Logger) Stats() Stats {
	return Stats{
		TotalSamples:    len(l.samples),
		DurationSeconds: l.clock.Since(l.startTime).Seconds(),
		FilePath:        l.path,
		StartTime:       l.startTime,
	}
}

// document assembles the persisted form with metadata computed from the
// buffer as it stands. Data is never nil so the file always carries a JSON
// array.
func (l *Logger) document() Document {
	end := l.clock.Now()

	data := l.samples
	if data == nil {
		data = []Sample{}
	}

	return Document{
		SessionMetadata: Metadata{
			StartTime:       l.startTime.Format(isoLayout),
			EndTime:         end.Format(isoLayout),
			TotalSamples:    len(l.samples),
			DurationSeconds: end.Sub(l.startTime).Seconds(),
			FileVersion:     FileVersion,
		},
		Data: data,
	}
}
