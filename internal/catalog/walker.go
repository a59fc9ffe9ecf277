package catalog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	berrors "image-browser/internal/errors"
	"image-browser/internal/imagetypes"
	"image-browser/internal/logging"
	"image-browser/internal/metrics"
	"image-browser/internal/workers"
)

// walkerConfig configures the parallel directory walker.
type walkerConfig struct {
	// numWorkers is the number of parallel workers.
	numWorkers int
	// channelBuffer is the size of the job and result channel buffers.
	channelBuffer int
}

// defaultWalkerConfig returns defaults safe for NFS and still
// performant for local filesystems.
func defaultWalkerConfig() walkerConfig {
	return walkerConfig{
		numWorkers:    workers.ForIO(8),
		channelBuffer: 1000,
	}
}

// fileJob is a file awaiting stat and filtering.
type fileJob struct {
	path string
	d    fs.DirEntry
}

// fileResult is a processed file.
type fileResult struct {
	entry Entry
	ok    bool
	err   error
}

// walker walks a directory tree in parallel: one goroutine enumerates
// paths while workers stat and filter them.
type walker struct {
	config     walkerConfig
	root       string
	extensions imagetypes.ExtensionSet

	jobs    chan fileJob
	results chan fileResult

	wg sync.WaitGroup

	errorsCount atomic.Int64
}

func newWalker(root string, extensions imagetypes.ExtensionSet, config walkerConfig) *walker {
	return &walker{
		config:     config,
		root:       root,
		extensions: extensions,
		jobs:       make(chan fileJob, config.channelBuffer),
		results:    make(chan fileResult, config.channelBuffer),
	}
}

// walk runs the parallel walk and returns all matching entries.
// Per-file errors below the root are logged and skipped; an error
// reading the root itself aborts the walk.
func (w *walker) walk(ctx context.Context) ([]Entry, error) {
	logging.Debug("Starting parallel walk of %s with %d workers", w.root, w.config.numWorkers)
	metrics.CatalogWalkerWorkers.Set(float64(w.config.numWorkers))

	for i := 0; i < w.config.numWorkers; i++ {
		w.wg.Add(1)
		go w.worker(ctx)
	}

	var entries []Entry
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		for result := range w.results {
			if result.err != nil {
				w.errorsCount.Add(1)
				logging.Debug("Error processing file: %v", result.err)
				continue
			}
			if result.ok {
				entries = append(entries, result.entry)
			}
		}
	}()

	walkErr := w.enqueue(ctx)

	close(w.jobs)
	w.wg.Wait()
	close(w.results)
	collectorWg.Wait()

	if walkErr != nil && !errors.Is(walkErr, fs.SkipAll) {
		return nil, walkErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if n := w.errorsCount.Load(); n > 0 {
		logging.Warn("Walk of %s skipped %d unreadable files", w.root, n)
	}
	return entries, nil
}

// enqueue walks the tree and sends file jobs to the workers.
func (w *walker) enqueue(ctx context.Context) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return fs.SkipAll
		default:
		}

		if err != nil {
			if path == w.root {
				return berrors.Classify(err)
			}
			logging.Warn("Error accessing path %s: %v", path, err)
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") && path != w.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		select {
		case w.jobs <- fileJob{path: path, d: d}:
		case <-ctx.Done():
			return fs.SkipAll
		}

		return nil
	})
}

// worker filters and stats files from the jobs channel.
func (w *walker) worker(ctx context.Context) {
	defer w.wg.Done()

	for job := range w.jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result := w.processFile(job)

		select {
		case w.results <- result:
		case <-ctx.Done():
			return
		}
	}
}

func (w *walker) processFile(job fileJob) fileResult {
	if !w.extensions.Matches(job.d.Name()) {
		return fileResult{}
	}

	info, err := job.d.Info()
	if err != nil {
		// The file may have been removed mid-walk.
		if os.IsNotExist(err) {
			return fileResult{}
		}
		return fileResult{err: err}
	}

	return fileResult{entry: NewEntry(job.path, info), ok: true}
}
