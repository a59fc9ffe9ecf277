// Package startup handles application initialization, configuration loading,
// and startup logging.
//
// This package centralizes all application configuration and provides consistent
// logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - BROWSE_DIR: Directory to browse (default: current directory)
//   - CACHE_DIR: Cache directory for thumbnails and rename history
//     (default: the user cache directory)
//   - EXTENSIONS: Comma-separated list of image extensions to include
//     (default: the built-in image extension set)
//   - RECURSIVE: Include subdirectories when scanning (default: false)
//   - THUMBNAILS: Enable thumbnail materialization (default: true)
//   - THUMBNAIL_SIZE: Bounding box for thumbnails in pixels (default: 200)
//   - METRICS_ENABLED: Serve Prometheus metrics (default: false)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - VIPS_ENABLED: Use libvips for decoding when available (default: true)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//
// # Directory Setup
//
// The browse directory must exist; it is never created. The cache
// directory is optional: thumbnails and rename history degrade to
// disabled when it cannot be created or written.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
package startup
