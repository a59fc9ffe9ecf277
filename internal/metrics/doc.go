// Package metrics defines the Prometheus collectors for the image
// browser: catalog scans, thumbnail materialization, rename batches,
// filesystem retries, and the directory watcher. All collectors are
// registered with promauto at init time.
package metrics
