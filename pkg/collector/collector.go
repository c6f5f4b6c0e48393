// Package collector drives the catalog collection run: it groups configured
// sources by output file, paginates each source against a shared dedup set,
// merges new items after the persisted ones, and writes the snapshots.
package collector

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/redpulseofficialscripter-dev/SHUT/pkg/catalog"
	"github.com/redpulseofficialscripter-dev/SHUT/pkg/snapshot"
)

// Prometheus metrics for collection runs.
var (
	filesSavedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_files_saved_total",
		Help: "Total snapshot save outcomes by status (ok, failed)",
	}, []string{"status"})

	snapshotItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_snapshot_items",
		Help: "Items persisted per output file after the last run",
	}, []string{"file"})
)

// FileReport is the outcome of one output file's collection.
type FileReport struct {
	// File is the output file path.
	File string

	// Success is true when the snapshot was written.
	Success bool

	// TotalItems is the item count persisted (existing plus new).
	TotalItems int

	// NewItems is the count of items added this run.
	NewItems int

	// Duplicates is the count of items suppressed by deduplication.
	Duplicates int
}

// Summary aggregates the per-file reports of one run.
type Summary struct {
	Files []FileReport
}

// OK reports whether every output file was saved.
func (s Summary) OK() bool {
	for _, f := range s.Files {
		if !f.Success {
			return false
		}
	}
	return true
}

// Collector runs the collection over a static source table.
type Collector struct {
	sources   []catalog.Source
	paginator *catalog.Paginator
	logger    zerolog.Logger
}

// New creates a collector over the given sources. The source slice is treated
// as immutable. pageDelay is the pause between page requests; non-positive
// falls back to catalog.DefaultPageDelay.
func New(sources []catalog.Source, fetcher catalog.PageFetcher, pageDelay time.Duration) *Collector {
	return &Collector{
		sources:   sources,
		paginator: catalog.NewPaginator(fetcher, pageDelay),
		logger:    log.With().Str("component", "collector").Logger(),
	}
}

// Run processes every output file group sequentially and returns the per-file
// reports. A source that fails after its retries contributes whatever it
// accumulated; a file that fails to save is marked failed without aborting the
// remaining files.
func (c *Collector) Run(ctx context.Context) Summary {
	start := time.Now()

	var summary Summary
	for _, file := range c.fileOrder() {
		summary.Files = append(summary.Files, c.collectFile(ctx, file))
	}

	ok := 0
	for _, f := range summary.Files {
		if f.Success {
			ok++
		}
	}

	c.logger.Info().
		Int("files_ok", ok).
		Int("files_failed", len(summary.Files)-ok).
		Dur("duration", time.Since(start)).
		Msg("Run complete")

	return summary
}

// collectFile runs every source mapped to file against one shared dedup set
// and persists the merged result.
func (c *Collector) collectFile(ctx context.Context, file string) FileReport {
	report := FileReport{File: file}

	existing := snapshot.Load(file)
	seen := catalog.NewDedupSet(existing)
	merged := existing

	for _, src := range c.sources {
		if src.File != file {
			continue
		}

		items, stats, err := c.paginator.FetchAll(ctx, src, seen)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("source", src.Name).
				Str("file", file).
				Int("partial_items", len(items)).
				Msg("Source failed, keeping partial results")
		}

		merged = append(merged, items...)
		report.NewItems += stats.NewItems
		report.Duplicates += stats.Duplicates
	}

	report.TotalItems = len(merged)

	if err := snapshot.Save(file, merged); err != nil {
		c.logger.Error().Err(err).Str("file", file).Msg("Failed to save snapshot")
		filesSavedTotal.WithLabelValues("failed").Inc()
	} else {
		report.Success = true
		filesSavedTotal.WithLabelValues("ok").Inc()
		snapshotItems.WithLabelValues(file).Set(float64(report.TotalItems))
	}

	c.logger.Info().
		Str("file", file).
		Bool("success", report.Success).
		Int("total_items", report.TotalItems).
		Int("new_items", report.NewItems).
		Int("duplicates", report.Duplicates).
		Msg("File processed")

	return report
}

// fileOrder returns the distinct output files in first-appearance order.
func (c *Collector) fileOrder() []string {
	var files []string
	seen := make(map[string]struct{})
	for _, src := range c.sources {
		if _, ok := seen[src.File]; ok {
			continue
		}
		seen[src.File] = struct{}{}
		files = append(files, src.File)
	}
	return files
}
