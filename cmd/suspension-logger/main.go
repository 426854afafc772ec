// Command suspension-logger captures per-wheel suspension travel from the
// Assetto Corsa physics shared-memory page and writes it to timestamped JSON
// session files.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/config"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/db"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/fsutil"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/sampler"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/session"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/shm"
	"github.com/LuquiLXR/AssetoCorsa-Motion-Simulator-Data/internal/timeutil"
)

var (
	devMode  = flag.Bool("dev", false, "Run against a synthetic producer instead of the simulator")
	selftest = flag.Bool("selftest", false, "Write a probe file into the output directory and exit")
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	hz := flag.Float64("hz", cfg.SampleRateHz, "Sampling frequency in Hz")
	outDir := flag.String("out", cfg.OutputDir, "Output directory for session files")
	flushEvery := flag.Int("flush-every", cfg.FlushEvery, "Auto-flush threshold in samples")
	shmName := flag.String("shm-name", cfg.RegionName, "Shared-memory region name (ignored in dev mode)")
	staleLimit := flag.Int("stale-limit", cfg.StaleLimit, "Consecutive unchanged packet ids before reads report idle")
	dbFile := flag.String("db", cfg.DBFile, "Sqlite session catalog path (empty to disable)")
	flag.Parse()

	cfg.SampleRateHz = *hz
	cfg.OutputDir = *outDir
	cfg.FlushEvery = *flushEvery
	cfg.RegionName = *shmName
	cfg.StaleLimit = *staleLimit
	cfg.DBFile = *dbFile

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	fs := fsutil.OSFileSystem{}
	clock := timeutil.RealClock{}

	if *selftest {
		path, err := session.WriteProbeFile(fs, clock, cfg.OutputDir)
		if err != nil {
			log.Fatalf("self-test failed: %v", err)
		}
		log.Printf("self-test passed, probe written to %s", path)
		return
	}

	var source *shm.Source
	if *devMode {
		log.Print("dev mode: using synthetic producer")
		source = shm.NewSource(shm.NewSyntheticRegion(), cfg.StaleLimit)
	} else {
		source, err = shm.Open(cfg.RegionName, cfg.StaleLimit)
		if err != nil {
			log.Fatalf("failed to open shared memory %q: %v (is the simulator running?)", cfg.RegionName, err)
		}
	}
	defer source.Close()

	if !source.Producing() {
		log.Fatal("connected, but the simulator is not producing data; start a driving session and retry")
	}

	logger, err := session.NewLogger(fs, clock, cfg.OutputDir, cfg.FlushEvery)
	if err != nil {
		log.Fatalf("failed to start session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("capturing at %.1f Hz, Ctrl+C to stop", cfg.SampleRateHz)
	runErr := sampler.New(source, logger, clock, cfg.SampleRateHz).Run(ctx)
	stop()

	// Shutdown ordering: finish the session file first, then release the
	// mapping, then catalog the run. Capture errors still get a best-effort
	// flush of whatever was buffered.
	if err := logger.Close(); err != nil {
		log.Printf("failed to finalize session file: %v", err)
	}
	if err := source.Close(); err != nil {
		log.Printf("failed to close shared memory: %v", err)
	}

	stats := logger.Stats()
	recordSession(cfg.DBFile, logger, clock)

	log.Printf("session complete: %d samples over %.1fs in %s",
		stats.TotalSamples, stats.DurationSeconds, stats.FilePath)

	if runErr != nil && runErr != context.Canceled {
		log.Printf("capture ended with error: %v", runErr)
		os.Exit(1)
	}
}

// recordSession catalogs the finished run. Catalog failures are warnings:
// the JSON session file is the source of truth.
func recordSession(dbFile string, logger *session.Logger, clock timeutil.Clock) {
	if dbFile == "" {
		return
	}

	catalog, err := db.NewDB(dbFile)
	if err != nil {
		log.Printf("failed to open session catalog %q: %v", dbFile, err)
		return
	}
	defer catalog.Close()

	stats := logger.Stats()
	id, err := catalog.RecordSession(db.SessionRecord{
		FilePath:        stats.FilePath,
		StartTime:       stats.StartTime,
		EndTime:         clock.Now(),
		TotalSamples:    stats.TotalSamples,
		DurationSeconds: stats.DurationSeconds,
	})
	if err != nil {
		log.Printf("failed to catalog session: %v", err)
		return
	}
	log.Printf("session catalogued as %s", id)
}
