// Command shut collects catalog items from the configured search endpoints
// and writes merged JSON snapshots to disk. It exits 0 when every output file
// was saved and 1 otherwise.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/redpulseofficialscripter-dev/SHUT/pkg/cache"
	"github.com/redpulseofficialscripter-dev/SHUT/pkg/catalog"
	"github.com/redpulseofficialscripter-dev/SHUT/pkg/client"
	"github.com/redpulseofficialscripter-dev/SHUT/pkg/collector"
	"github.com/redpulseofficialscripter-dev/SHUT/pkg/config"
	"github.com/redpulseofficialscripter-dev/SHUT/pkg/logging"
)

func main() {
	cfg := config.Load()

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stdout,
	})

	sources := config.Sources(cfg.DataDir)

	summary, err := run(context.Background(), cfg, sources)
	if err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}

	if !summary.OK() {
		os.Exit(1)
	}
}

// run wires the client, cache, and collector together and executes one
// collection pass over the given sources.
func run(ctx context.Context, cfg config.Config, sources []catalog.Source) (collector.Summary, error) {
	log.Info().
		Int("sources", len(sources)).
		Str("data_dir", cfg.DataDir).
		Msg("Starting catalog collection")

	pageCache, err := setupCache(ctx, cfg)
	if err != nil {
		// The cache is an optimization; a missing redis never blocks a run.
		log.Warn().Err(err).Msg("Page cache unavailable, fetching without it")
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	retry := client.DefaultRetryConfig()
	if cfg.RetryDelay > 0 {
		retry.DelayStep = cfg.RetryDelay
	}

	catalogClient, err := client.New(client.Config{
		UserAgent: cfg.UserAgent,
		Timeout:   client.DefaultTimeout,
		Retry:     retry,
		Cache:     pageCache,
	})
	if err != nil {
		return collector.Summary{}, fmt.Errorf("create catalog client: %w", err)
	}

	c := collector.New(sources, catalogClient, cfg.PageDelay)
	return c.Run(ctx), nil
}

// setupCache connects the optional redis-backed page cache. Returns nil when
// no redis is configured.
func setupCache(ctx context.Context, cfg config.Config) (*cache.Manager, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisURL, err)
	}

	log.Info().Str("redis", cfg.RedisURL).Dur("ttl", cfg.CacheTTL).Msg("Page cache enabled")
	return cache.NewManager(redisClient, cfg.CacheTTL), nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Info().Str("addr", addr).Msg("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn().Err(err).Msg("Metrics listener stopped")
	}
}
