package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	berrors "image-browser/internal/errors"
	"image-browser/internal/fsops"
	"image-browser/internal/imagetypes"
	"image-browser/internal/logging"
	"image-browser/internal/metrics"

	"github.com/maruel/natural"
)

// Entry describes one eligible file found by a scan. Entries are
// immutable once produced; a re-scan builds a fresh slice.
type Entry struct {
	Path    string // full path
	Name    string // base name including extension
	Dir     string // parent directory
	Ext     string // lowercase extension with leading dot
	Size    int64
	ModTime time.Time
}

// NewEntry derives an Entry from a path and file info.
func NewEntry(path string, info os.FileInfo) Entry {
	return Entry{
		Path:    path,
		Name:    filepath.Base(path),
		Dir:     filepath.Dir(path),
		Ext:     strings.ToLower(filepath.Ext(path)),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// WithPath returns a copy of the entry re-derived for a new path,
// keeping size and modification time. Used after a successful rename.
func (e Entry) WithPath(path string) Entry {
	return Entry{
		Path:    path,
		Name:    filepath.Base(path),
		Dir:     filepath.Dir(path),
		Ext:     strings.ToLower(filepath.Ext(path)),
		Size:    e.Size,
		ModTime: e.ModTime,
	}
}

// ScanOptions configures a catalog scan.
type ScanOptions struct {
	// Extensions filters files by extension. An empty set falls back to
	// the default image extensions.
	Extensions imagetypes.ExtensionSet
	// Recursive enables subdirectory traversal with the parallel walker.
	Recursive bool
}

// Scan builds the ordered list of eligible file paths under root.
// The result is sorted by directory, then file name, both in natural
// order so "img2" sorts before "img10". An empty directory yields an
// empty slice, not an error. A missing or unreadable root aborts the
// scan with ErrNotFound or ErrAccessDenied.
func Scan(ctx context.Context, root string, opts ScanOptions) ([]Entry, error) {
	start := time.Now()

	entries, err := scan(ctx, root, opts)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.CatalogScansTotal.WithLabelValues(status).Inc()
	metrics.CatalogScanDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		metrics.CatalogFilesFound.Observe(float64(len(entries)))
		logging.Debug("Scan of %s found %d files in %v", root, len(entries), time.Since(start))
	}

	return entries, err
}

func scan(ctx context.Context, root string, opts ScanOptions) ([]Entry, error) {
	info, err := fsops.Stat(root, fsops.DefaultRetryConfig())
	if err != nil {
		return nil, berrors.Classify(err)
	}
	if !info.IsDir() {
		return nil, berrors.NotFoundf("%s is not a directory", root)
	}

	if len(opts.Extensions) == 0 {
		opts.Extensions = imagetypes.DefaultExtensions()
	}

	var entries []Entry
	if opts.Recursive {
		entries, err = newWalker(root, opts.Extensions, defaultWalkerConfig()).walk(ctx)
	} else {
		entries, err = scanFlat(root, opts.Extensions)
	}
	if err != nil {
		return nil, err
	}

	sortEntries(entries)
	return entries, nil
}

// scanFlat lists a single directory without descending.
func scanFlat(root string, extensions imagetypes.ExtensionSet) ([]Entry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, berrors.Classify(err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		if !extensions.Matches(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			logging.Warn("Error getting info for %s: %v", de.Name(), err)
			continue
		}
		entries = append(entries, NewEntry(filepath.Join(root, de.Name()), info))
	}

	return entries, nil
}

// sortEntries orders entries directory-major in natural order, so
// numbered sequences read the way a person expects.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return naturalLess(entries[i].Dir, entries[j].Dir)
		}
		return naturalLess(entries[i].Name, entries[j].Name)
	})
}

// naturalLess compares case-insensitively first, with the raw strings
// as a deterministic tie-break.
func naturalLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return natural.Less(la, lb)
	}
	return a < b
}
