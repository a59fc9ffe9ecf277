package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"image-browser/internal/imagetypes"
	"image-browser/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration
type Config struct {
	BrowseDir      string
	CacheDir       string
	Extensions     imagetypes.ExtensionSet
	Recursive      bool
	ThumbnailSize  int
	MetricsPort    string
	MetricsEnabled bool
	VipsEnabled    bool

	// Derived paths
	ThumbnailDir string
	HistoryPath  string

	// Feature flags based on directory availability
	ThumbnailsEnabled bool
	HistoryEnabled    bool
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	browseDir := getEnv("BROWSE_DIR", ".")
	cacheDir := getEnv("CACHE_DIR", defaultCacheDir())
	extensionsStr := getEnv("EXTENSIONS", "")
	recursive := getEnvBool("RECURSIVE", false)
	thumbnailSize := getEnvInt("THUMBNAIL_SIZE", 200)
	thumbnailsWanted := getEnvBool("THUMBNAILS", true)
	metricsPort := getEnv("METRICS_PORT", "9090")
	metricsEnabled := getEnvBool("METRICS_ENABLED", false)
	vipsEnabled := getEnvBool("VIPS_ENABLED", true)

	extensions := imagetypes.DefaultExtensions()
	if extensionsStr != "" {
		extensions = imagetypes.ParseExtensions(extensionsStr)
	}

	logging.Info("  BROWSE_DIR:       %s", browseDir)
	logging.Info("  CACHE_DIR:        %s", cacheDir)
	logging.Info("  EXTENSIONS:       %s", extensions)
	logging.Info("  RECURSIVE:        %v", recursive)
	logging.Info("  THUMBNAILS:       %v", thumbnailsWanted)
	logging.Info("  THUMBNAIL_SIZE:   %d", thumbnailSize)
	logging.Info("  METRICS_ENABLED:  %v", metricsEnabled)
	logging.Info("  METRICS_PORT:     %s", metricsPort)
	logging.Info("  VIPS_ENABLED:     %v", vipsEnabled)
	logging.Info("  LOG_LEVEL:        %s", logging.GetLevel())

	if thumbnailSize < 16 || thumbnailSize > 1024 {
		logging.Warn("  Invalid THUMBNAIL_SIZE %d, using default: 200", thumbnailSize)
		thumbnailSize = 200
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	browseDir, err := filepath.Abs(browseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve browse directory path: %w", err)
	}
	logging.Info("  Browse directory (absolute): %s", browseDir)

	cacheDir, err = filepath.Abs(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory path: %w", err)
	}
	logging.Info("  Cache directory (absolute):  %s", cacheDir)

	if err := ensureDirectory(browseDir, "browse"); err != nil {
		return nil, fmt.Errorf("browse directory error: %w", err)
	}

	config := &Config{
		BrowseDir:      browseDir,
		CacheDir:       cacheDir,
		Extensions:     extensions,
		Recursive:      recursive,
		ThumbnailSize:  thumbnailSize,
		MetricsPort:    metricsPort,
		MetricsEnabled: metricsEnabled,
		VipsEnabled:    vipsEnabled,
		ThumbnailDir:   filepath.Join(cacheDir, "thumbnails"),
		HistoryPath:    filepath.Join(cacheDir, "history.db"),
	}

	// Thumbnail and history features degrade gracefully when the cache
	// directory is unusable.
	cacheOK := setupOptionalDir(cacheDir, "cache")
	config.HistoryEnabled = cacheOK
	config.ThumbnailsEnabled = thumbnailsWanted && cacheOK && setupOptionalDir(config.ThumbnailDir, "thumbnails")

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Thumbnails: %s", enabledString(config.ThumbnailsEnabled))
	logging.Info("    History:    %s", enabledString(config.HistoryEnabled))
	logging.Info("    Metrics:    %s", enabledString(config.MetricsEnabled))

	return config, nil
}

func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "image-browser")
	}
	return ".image-browser-cache"
}

func setupOptionalDir(path, name string) bool {
	logging.Debug("  Setting up %s directory: %s", name, path)

	if err := os.MkdirAll(path, 0o755); err != nil {
		logging.Warn("    Failed to create %s directory: %v", name, err)
		logging.Warn("    %s will be disabled", name)
		return false
	}

	testFile := filepath.Join(path, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		logging.Warn("    %s directory is not writable: %v", name, err)
		logging.Warn("    %s will be disabled", name)
		return false
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("    failed to remove test file %s: %v", testFile, err)
		// Still return true since write succeeded
	}

	logging.Debug("    [OK] %s directory ready", name)
	return true
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogScanStarted logs the beginning of a folder scan
func LogScanStarted(dir string, recursive bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SCAN")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Directory: %s", dir)
	logging.Info("  Recursive: %v", recursive)
}

// LogScanComplete logs a completed folder scan
func LogScanComplete(count int, duration time.Duration) {
	logging.Info("  [OK] Found %d files in %v", count, duration)
}

// LogHistoryInit logs rename history initialization
func LogHistoryInit(path string) {
	logging.Debug("  History journal: %s", path)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
    ____                               ____
   /  _/___ ___  ____ _____ ____      / __ )_________ _      __________  _____
   / // __ '__ \/ __ '/ __ '/ _ \    / __  / ___/ __ \ | /| / / ___/ _ \/ ___/
 _/ // / / / / / /_/ / /_/ /  __/   / /_/ / /  / /_/ / |/ |/ (__  )  __/ /
/___/_/ /_/ /_/\__,_/\__, /\___/   /_____/_/   \____/|__/|__/____/\___/_/
                    /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", path)
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
