package thumbs

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"

	"image-browser/internal/logging"
	"image-browser/internal/metrics"
)

// diskCache stores encoded thumbnails on disk, keyed by the md5 of the
// source path. Rename invalidation is free: a renamed file has a new
// path and therefore a new key.
type diskCache struct {
	dir string
}

func newDiskCache(dir string) (*diskCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating thumbnail cache dir: %w", err)
	}
	return &diskCache{dir: dir}, nil
}

func (c *diskCache) keyPath(sourcePath string) string {
	hash := md5.Sum([]byte(sourcePath))
	return filepath.Join(c.dir, fmt.Sprintf("%x.jpg", hash))
}

// load returns the cached thumbnail bytes for a source path, or nil on
// a miss.
func (c *diskCache) load(sourcePath string) []byte {
	data, err := os.ReadFile(c.keyPath(sourcePath))
	if err != nil {
		return nil
	}
	metrics.ThumbnailCacheHits.Inc()
	logging.Debug("thumbnail cache hit: %s", sourcePath)
	return data
}

// store writes thumbnail bytes for a source path. Failures are logged
// and swallowed; the cache is an optimization, not a requirement.
func (c *diskCache) store(sourcePath string, data []byte) {
	path := c.keyPath(sourcePath)
	if err := os.WriteFile(path, data, 0644); err != nil {
		logging.Warn("failed to cache thumbnail %s: %v", path, err)
	}
}
