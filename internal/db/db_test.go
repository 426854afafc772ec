package db

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	d, err := NewDB(t.TempDir() + "/sessions.db")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return d
}

func TestRecordSessionRoundTrip(t *testing.T) {
	d := newTestDB(t)

	want := SessionRecord{
		FilePath:        "data/suspension_data_20260314_150926.json",
		StartTime:       time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC),
		EndTime:         time.Date(2026, time.March, 14, 15, 14, 26, 500000000, time.UTC),
		TotalSamples:    3005,
		DurationSeconds: 300.5,
	}

	id, err := d.RecordSession(want)
	if err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	if id == "" {
		t.Fatal("RecordSession returned an empty id")
	}
	want.ID = id

	got, err := d.Sessions()
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one catalogued session, got %d", len(got))
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionsOrderedByStartDescending(t *testing.T) {
	d := newTestDB(t)

	base := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := d.RecordSession(SessionRecord{
			FilePath:  "data/run.json",
			StartTime: base.Add(time.Duration(i) * time.Hour),
			EndTime:   base.Add(time.Duration(i)*time.Hour + time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordSession %d failed: %v", i, err)
		}
	}

	sessions, err := d.Sessions()
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartTime.After(sessions[i-1].StartTime) {
			t.Errorf("sessions not in descending start order: %v after %v",
				sessions[i].StartTime, sessions[i-1].StartTime)
		}
	}
}

func TestSessionsEmptyCatalog(t *testing.T) {
	d := newTestDB(t)

	sessions, err := d.Sessions()
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected empty catalog, got %d rows", len(sessions))
	}
}
