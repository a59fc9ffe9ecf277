package thumbs

import (
	"bytes"
	"context"
	"image/jpeg"
	"sync"
	"sync/atomic"
	"time"

	"image-browser/internal/catalog"
	"image-browser/internal/logging"
	"image-browser/internal/metrics"
	"image-browser/internal/workers"

	"github.com/disintegration/imaging"
)

// Status is the coarse state of the materializer.
type Status int32

const (
	// StatusIdle means no run has happened or thumbnails are disabled.
	StatusIdle Status = iota
	// StatusLoading means a materialization run is in flight.
	StatusLoading
	// StatusReady means the latest run finished and its thumbnails are
	// visible.
	StatusReady
	// StatusError means the latest run produced no thumbnails at all.
	StatusError
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Thumbnail is one materialized preview, already encoded as jpeg.
type Thumbnail struct {
	ID         int
	SourcePath string
	Data       []byte
}

// Options configures a Materializer.
type Options struct {
	// Enabled turns materialization on. When false every run is a no-op
	// and the status stays idle.
	Enabled bool
	// CacheDir, when non-empty, enables the on-disk thumbnail cache.
	CacheDir string
	// Width and Height bound the thumbnail size. Zero means 200.
	Width, Height int
	// Workers bounds decode concurrency. Zero picks an IO-sized pool.
	Workers int
	// Decoder overrides the image decoder. Nil means DefaultDecoder.
	Decoder Decoder
}

// Materializer produces thumbnails for collection snapshots in the
// background. Results are batch-atomic: readers see either the previous
// complete set or the new complete set, never a mix. Each run carries a
// generation number; a run that finishes after a newer one started is
// discarded whole.
type Materializer struct {
	decoder    Decoder
	cache      *diskCache
	enabled    bool
	width      int
	height     int
	numWorkers int

	generation atomic.Uint64
	status     atomic.Int32

	// publishMu serializes the stale-generation check with the store, so
	// a superseded run cannot publish over a newer run that finished
	// between its check and its store.
	publishMu sync.Mutex
	thumbs    atomic.Value // map[int]Thumbnail
}

// NewMaterializer builds a materializer from options.
func NewMaterializer(opts Options) *Materializer {
	m := &Materializer{
		decoder:    opts.Decoder,
		enabled:    opts.Enabled,
		width:      opts.Width,
		height:     opts.Height,
		numWorkers: opts.Workers,
	}
	if m.decoder == nil {
		m.decoder = DefaultDecoder{}
	}
	if m.width <= 0 {
		m.width = 200
	}
	if m.height <= 0 {
		m.height = 200
	}
	if m.numWorkers <= 0 {
		m.numWorkers = workers.ForMixed(8)
	}
	if opts.Enabled && opts.CacheDir != "" {
		cache, err := newDiskCache(opts.CacheDir)
		if err != nil {
			logging.Warn("thumbs: disk cache disabled: %v", err)
		} else {
			m.cache = cache
		}
	}
	m.thumbs.Store(map[int]Thumbnail{})
	if !opts.Enabled {
		logging.Debug("thumbs: materializer disabled")
	}
	return m
}

// Enabled reports whether materialization is active.
func (m *Materializer) Enabled() bool {
	return m.enabled
}

// Status returns the coarse state of the latest run.
func (m *Materializer) Status() Status {
	return Status(m.status.Load())
}

// Get returns the thumbnail for an id from the latest complete run.
func (m *Materializer) Get(id int) (Thumbnail, bool) {
	t, ok := m.thumbs.Load().(map[int]Thumbnail)[id]
	return t, ok
}

// Len reports how many thumbnails the latest complete run produced.
func (m *Materializer) Len() int {
	return len(m.thumbs.Load().(map[int]Thumbnail))
}

// Forget drops the thumbnail for a removed entry. The remaining set
// stays visible unchanged.
func (m *Materializer) Forget(id int) {
	m.publishMu.Lock()
	defer m.publishMu.Unlock()

	current := m.thumbs.Load().(map[int]Thumbnail)
	if _, ok := current[id]; !ok {
		return
	}
	next := make(map[int]Thumbnail, len(current))
	for k, v := range current {
		if k != id {
			next[k] = v
		}
	}
	m.thumbs.Store(next)
}

// Materialize starts a background run over the given snapshot and
// returns a channel closed when the run finishes, whether its results
// were published or superseded. Starting a new run supersedes any run
// still in flight: the older run's results are discarded in full.
//
// When the materializer is disabled the returned channel is already
// closed and nothing happens.
func (m *Materializer) Materialize(ctx context.Context, entries map[int]catalog.Entry) <-chan struct{} {
	done := make(chan struct{})
	if !m.enabled {
		close(done)
		return done
	}

	gen := m.generation.Add(1)
	m.status.Store(int32(StatusLoading))

	go func() {
		defer close(done)
		m.run(ctx, gen, entries)
	}()
	return done
}

func (m *Materializer) run(ctx context.Context, gen uint64, entries map[int]catalog.Entry) {
	start := time.Now()
	logging.Debug("thumbs: run %d over %d entries", gen, len(entries))

	type job struct {
		id    int
		entry catalog.Entry
	}
	jobs := make(chan job)
	var mu sync.Mutex
	result := make(map[int]Thumbnail, len(entries))
	var errCount atomic.Int64

	n := m.numWorkers
	if n > len(entries) && len(entries) > 0 {
		n = len(entries)
	}
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				data, err := m.materializeOne(j.entry.Path)
				if err != nil {
					errCount.Add(1)
					metrics.ThumbnailErrors.Inc()
					logging.Warn("thumbs: %s: %v", j.entry.Path, err)
					continue
				}
				mu.Lock()
				result[j.id] = Thumbnail{ID: j.id, SourcePath: j.entry.Path, Data: data}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for id, entry := range entries {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- job{id: id, entry: entry}:
		}
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(start)
	metrics.ThumbnailRunDuration.Observe(elapsed.Seconds())

	// Publish only if no newer run started meanwhile. A superseded run
	// must not overwrite the newer run's results or status. The check
	// and the store happen under publishMu so a newer run cannot slip
	// in between them.
	m.publishMu.Lock()
	defer m.publishMu.Unlock()

	if m.generation.Load() != gen {
		metrics.ThumbnailRunsTotal.WithLabelValues("superseded").Inc()
		logging.Debug("thumbs: run %d superseded, discarding %d thumbnails", gen, len(result))
		return
	}

	if err := ctx.Err(); err != nil {
		metrics.ThumbnailRunsTotal.WithLabelValues("cancelled").Inc()
		logging.Debug("thumbs: run %d cancelled after %v", gen, elapsed)
		m.status.Store(int32(StatusError))
		return
	}

	// A run that produced nothing leaves the previous set in place.
	if len(result) == 0 && len(entries) > 0 {
		metrics.ThumbnailRunsTotal.WithLabelValues("error").Inc()
		m.status.Store(int32(StatusError))
		logging.Warn("thumbs: run %d produced no thumbnails (%d errors)", gen, errCount.Load())
		return
	}

	m.thumbs.Store(result)
	metrics.ThumbnailsGenerated.Add(float64(len(result)))

	metrics.ThumbnailRunsTotal.WithLabelValues("success").Inc()
	m.status.Store(int32(StatusReady))
	logging.Info("thumbs: run %d finished in %v (%d thumbnails, %d errors)",
		gen, elapsed, len(result), errCount.Load())
}

// materializeOne returns encoded jpeg bytes for one source file,
// consulting the disk cache first.
func (m *Materializer) materializeOne(path string) ([]byte, error) {
	if m.cache != nil {
		if data := m.cache.load(path); data != nil {
			return data, nil
		}
	}

	img, err := m.decoder.Decode(path, m.width, m.height)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, m.width, m.height, imaging.Lanczos)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}

	if m.cache != nil {
		m.cache.store(path, buf.Bytes())
	}
	return buf.Bytes(), nil
}
