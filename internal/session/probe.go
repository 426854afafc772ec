package session

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/fsutil"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/timeutil"
)

// WriteProbeFile writes a small fixture session into dir to verify the
// output directory and serialization path before connecting to the
// simulator. Returns the probe file path.
func WriteProbeFile(fs fsutil.FileSystem, clock timeutil.Clock, dir string) (string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("session: create output dir %q: %w", dir, err)
	}

	probe := struct {
		CreatedAt string `json:"created_at"`
		Purpose   string `json:"purpose"`
		Sample    Sample `json:"sample_data"`
	}{
		CreatedAt: clock.Now().Format(isoLayout),
		Purpose:   "logging self-test",
		Sample: Sample{
			Timestamp:    1642248600.123,
			ReadableTime: "2022-01-15T10:30:00.123000",
			Suspension: Suspension{
				FrontLeft:  0.045,
				FrontRight: 0.043,
				RearLeft:   0.038,
				RearRight:  0.040,
			},
			Context: Context{SpeedKmh: 120.5, PacketID: 12345},
		},
	}

	data, err := json.MarshalIndent(probe, "", "  ")
	if err != nil {
		return "", fmt.Errorf("session: marshal probe: %w", err)
	}

	path := filepath.Join(dir, "test_output.json")
	if err := fs.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("session: write probe %s: %w", path, err)
	}
	return path, nil
}
