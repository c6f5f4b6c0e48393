// Package metrics provides the centralized Prometheus registry reference for
// the catalog collector. All metrics are defined in their respective packages
// (client, cache, catalog, collector) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the collector.
// All metrics are automatically registered via promauto in their respective
// packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - catalog_requests_total{endpoint, status} (Counter): Requests by endpoint
//     and HTTP status ("cache" for cache hits, "network_error" for transport
//     failures)
//   - catalog_request_duration_seconds{endpoint} (Histogram): Page fetch
//     duration by endpoint
//   - catalog_errors_total{class} (Counter): Fetch errors by class
//     (network, http, parse)
//
// Retry Metrics (pkg/client):
//   - catalog_retries_total{error_class} (Counter): Retry attempts by class
//   - catalog_retry_delay_seconds{error_class} (Histogram): Delay before
//     retries by class
//   - catalog_retry_exhausted_total{error_class} (Counter): Page fetches that
//     exhausted max retries
//
// Pagination Metrics (pkg/catalog):
//   - catalog_pages_fetched_total{source} (Counter): Pages fetched by source
//   - catalog_items_seen_total{source, kind} (Counter): Items classified
//     during pagination (kind: new, duplicate)
//
// Cache Metrics (pkg/cache):
//   - catalog_cache_hits_total (Counter): Page cache hits
//   - catalog_cache_misses_total (Counter): Page cache misses
//   - catalog_cache_size_bytes (Gauge): Bytes written to the page cache
//   - catalog_cache_errors_total{operation} (Counter): Cache operation errors
//
// Collection Metrics (pkg/collector):
//   - catalog_files_saved_total{status} (Counter): Snapshot save outcomes
//     (ok, failed)
//   - catalog_snapshot_items{file} (Gauge): Items persisted per output file
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   rate(catalog_cache_hits_total[5m]) /
//   (rate(catalog_cache_hits_total[5m]) + rate(catalog_cache_misses_total[5m]))
//
//   # Duplicate Ratio by Source
//   rate(catalog_items_seen_total{kind="duplicate"}[1h]) /
//   rate(catalog_items_seen_total[1h])
//
//   # Fetch Error Rate
//   rate(catalog_errors_total[5m])
//
//   # P95 Page Fetch Latency
//   histogram_quantile(0.95, rate(catalog_request_duration_seconds_bucket[5m]))
