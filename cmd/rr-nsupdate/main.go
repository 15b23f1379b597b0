package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/haukened/rr-nsupdate/internal/dns/common/clock"
	"github.com/haukened/rr-nsupdate/internal/dns/common/log"
	"github.com/haukened/rr-nsupdate/internal/dns/common/metrics"
	"github.com/haukened/rr-nsupdate/internal/dns/config"
	"github.com/haukened/rr-nsupdate/internal/dns/domain"
	"github.com/haukened/rr-nsupdate/internal/dns/gateways/rfc2136"
	"github.com/haukened/rr-nsupdate/internal/dns/nsupdate"
	"github.com/haukened/rr-nsupdate/internal/dns/repos/history"
	"github.com/haukened/rr-nsupdate/internal/dns/repos/journal"
	"github.com/haukened/rr-nsupdate/internal/dns/repos/namefilter"
	"github.com/haukened/rr-nsupdate/internal/dns/repos/zone"
	"github.com/haukened/rr-nsupdate/internal/dns/repos/zonecache"
	"github.com/haukened/rr-nsupdate/internal/dns/services/updater"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "rr-nsupdate"

	// Exit status when the script applied but some updates failed.
	exitPartial = 2
)

// errFailedUpdates is returned by Run when at least one update was not applied.
var errFailedUpdates = errors.New("some updates were not applied")

// Application holds all the components of the updater
type Application struct {
	config   *config.AppConfig
	zones    *zonecache.ZoneCache
	journal  *journal.Journal
	history  updater.History
	registry *prometheus.Registry
	updater  *updater.Updater
}

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging
	err = log.ConfigureFile(cfg.Env, cfg.LogLevel, log.FileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSize,
		MaxAgeDays: cfg.LogMaxAge,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info(map[string]any{
		"app":          appName,
		"version":      version,
		"env":          cfg.Env,
		"log_level":    cfg.LogLevel,
		"script":       cfg.Script,
		"zone_dir":     cfg.ZoneDir,
		"journal_path": cfg.JournalPath,
		"dry_run":      cfg.DryRun,
	}, "Starting rr-nsupdate")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	// Stop between directives on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	_, runErr := app.Run(ctx)
	cancel()

	if err := app.Close(); err != nil {
		log.Warn(map[string]any{"error": err}, "Error closing journal")
	}

	switch {
	case runErr == nil:
		log.Info(nil, "Update script applied")
	case errors.Is(runErr, errFailedUpdates):
		log.Sync()
		os.Exit(exitPartial)
	default:
		log.Fatal(map[string]any{"error": runErr}, "Update script failed")
	}
}

// buildApplication constructs all components and wires them together
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	zoneCache, err := buildZoneCache(cfg)
	if err != nil {
		return nil, err
	}

	var seed []*domain.AuthoritativeRecord
	for _, root := range zoneCache.Zones() {
		seed = append(seed, zoneCache.All(root)...)
	}
	filter := namefilter.NewFromRecords(uint64(cfg.ExpectedNames), cfg.FilterFPRate, seed)
	log.Debug(map[string]any{
		"names":   filter.Added(),
		"fp_rate": filter.FalsePositiveRate(),
	}, "Name filter seeded")

	hist, err := history.New(cfg.HistorySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch history: %w", err)
	}

	app := &Application{
		config:   cfg,
		zones:    zoneCache,
		history:  hist,
		registry: registry,
	}

	opts := updater.Options{
		Zones:   zoneCache,
		Filter:  filter,
		History: hist,
		Builder: rfc2136.NewBuilder(zoneCache.ZoneFor),
		Logger:  logger,
		Clock:   clock.RealClock{},
		Metrics: m,
		DryRun:  cfg.DryRun,
	}
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
		app.journal = j
		opts.Journal = j
	}

	app.updater, err = updater.New(opts)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	if app.journal != nil && cfg.JournalReset {
		if err := app.journal.Truncate(); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("failed to reset journal: %w", err)
		}
		log.Warn(map[string]any{"path": cfg.JournalPath}, "Journal reset")
	}
	if app.journal != nil {
		if _, err := app.updater.Restore(app.journal); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("failed to replay journal: %w", err)
		}
		st := app.journal.Stats()
		log.Info(map[string]any{
			"path":    cfg.JournalPath,
			"entries": st.Count,
			"seq":     st.LastSeq,
		}, "Journal opened")
	}

	return app, nil
}

// buildZoneCache loads the configured zone directory into a fresh zone cache.
func buildZoneCache(cfg *config.AppConfig) (*zonecache.ZoneCache, error) {
	zoneCache := zonecache.New()
	if cfg.ZoneDir == "" {
		log.Info(map[string]any{"disabled": true}, "No zone directory configured")
		return zoneCache, nil
	}

	zones, err := zone.LoadZoneDirectory(cfg.ZoneDir, cfg.DefaultTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to load zone directory: %w", err)
	}
	for zoneRoot, records := range zones {
		zoneCache.PutZone(zoneRoot, records)
	}

	log.Info(map[string]any{
		"zone_dir":    cfg.ZoneDir,
		"zones":       len(zoneCache.Zones()),
		"record_sets": zoneCache.Count(),
	}, "Zone cache initialized")
	return zoneCache, nil
}

// Run reads, parses and applies the configured script.
// It returns errFailedUpdates when the script applied but some updates did not.
func (app *Application) Run(ctx context.Context) (updater.Summary, error) {
	src, err := os.ReadFile(app.config.Script)
	if err != nil {
		return updater.Summary{}, fmt.Errorf("failed to read script: %w", err)
	}

	doc, err := nsupdate.ParseBytes(src)
	if err != nil {
		var pe *nsupdate.ParseError
		if errors.As(err, &pe) {
			log.Error(map[string]any{
				"script":   app.config.Script,
				"line":     pe.Line,
				"column":   pe.Column,
				"rule":     pe.Rule,
				"expected": pe.Expected,
				"found":    pe.Found,
			}, "Script rejected")
		}
		return updater.Summary{}, fmt.Errorf("failed to parse script: %w", err)
	}
	if !doc.HasSend() {
		log.Warn(map[string]any{"directives": doc.Len()}, "Script has no send; nothing will be applied")
	}

	sum, err := app.updater.Apply(ctx, doc)
	app.report(sum)
	if err != nil {
		return sum, err
	}
	if sum.Failed > 0 {
		return sum, fmt.Errorf("%w: %d failed", errFailedUpdates, sum.Failed)
	}
	return sum, nil
}

func (app *Application) report(sum updater.Summary) {
	for _, f := range sum.Failures {
		log.Warn(map[string]any{"batch": f.Batch, "line": f.Line, "error": f.Err}, "Update failed")
	}
	if sum.Batches > 0 {
		for _, r := range app.history.Recent(sum.Batches) {
			log.Debug(map[string]any{
				"batch_id": r.ID,
				"index":    r.Index,
				"sent":     r.Sent,
				"applied":  r.Applied,
				"failed":   r.Failed,
			}, "Batch report")
		}
	}
	for _, m := range sum.Messages {
		log.Debug(map[string]any{"zone": m.Zone, "message": m.Text}, "Update message")
	}
	log.Info(map[string]any{
		"batches": sum.Batches,
		"applied": sum.Applied,
		"failed":  sum.Failed,
		"pending": sum.Pending,
		"skipped": sum.Skipped,
	}, "Update summary")

	counters, err := metrics.Summary(app.registry)
	if err != nil {
		log.Warn(map[string]any{"error": err}, "Failed to gather metrics")
		return
	}
	fields := make(map[string]any, len(counters))
	for k, v := range counters {
		fields[k] = v
	}
	log.Debug(fields, "Update metrics")
}

// Close releases the journal, if one is open.
func (app *Application) Close() error {
	if app.journal == nil {
		return nil
	}
	err := app.journal.Close()
	app.journal = nil
	return err
}
