package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog metrics
var (
	CatalogScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_catalog_scans_total",
			Help: "Total number of catalog scans",
		},
		[]string{"status"},
	)

	CatalogScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_browser_catalog_scan_duration_seconds",
			Help:    "Catalog scan duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogFilesFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_browser_catalog_files_found",
			Help:    "Number of eligible files found per scan",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	CatalogWalkerWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_browser_catalog_walker_workers",
			Help: "Number of workers used by the parallel directory walker",
		},
	)
)

// Thumbnail metrics
var (
	ThumbnailRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_thumbnail_runs_total",
			Help: "Total number of thumbnail materialization runs",
		},
		[]string{"status"}, // "ready", "error", "superseded"
	)

	ThumbnailRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_browser_thumbnail_run_duration_seconds",
			Help:    "Thumbnail materialization run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ThumbnailsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_thumbnails_generated_total",
			Help: "Total number of thumbnails decoded and encoded",
		},
	)

	ThumbnailCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_thumbnail_cache_hits_total",
			Help: "Total number of thumbnail disk cache hits",
		},
	)

	ThumbnailErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_thumbnail_errors_total",
			Help: "Total number of per-file thumbnail failures",
		},
	)
)

// Rename metrics
var (
	RenameBatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_rename_batches_total",
			Help: "Total number of committed rename batches",
		},
	)

	RenameItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_rename_items_total",
			Help: "Total number of rename items processed by outcome",
		},
		[]string{"outcome"}, // "success", "failed", "skipped", "declined"
	)

	RenameBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_browser_rename_batch_duration_seconds",
			Help:    "Rename batch commit duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Filesystem metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_filesystem_retry_attempts_total",
			Help: "Total number of filesystem operation retries",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_filesystem_stale_errors_total",
			Help: "Total number of NFS stale file handle errors encountered",
		},
		[]string{"operation"},
	)
)

// Watcher metrics
var (
	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_watcher_events_total",
			Help: "Total number of filesystem watcher events by type",
		},
		[]string{"type"},
	)

	WatcherErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_watcher_errors_total",
			Help: "Total number of filesystem watcher errors",
		},
	)
)
