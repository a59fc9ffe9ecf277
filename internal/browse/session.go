package browse

import (
	"context"
	"sync"
	"sync/atomic"

	"image-browser/internal/catalog"
	"image-browser/internal/collection"
	berrors "image-browser/internal/errors"
	"image-browser/internal/fsops"
	"image-browser/internal/history"
	"image-browser/internal/logging"
	"image-browser/internal/rename"
	"image-browser/internal/thumbs"
)

// ChangeKind identifies what a Change notification describes.
type ChangeKind int

const (
	// ChangeCollectionReplaced means a folder scan finished and the
	// whole collection was swapped.
	ChangeCollectionReplaced ChangeKind = iota
	// ChangeCursorMoved means the selection moved.
	ChangeCursorMoved
	// ChangeEntryRemoved means one entry was deleted.
	ChangeEntryRemoved
	// ChangeEntryRenamed means one entry's path changed.
	ChangeEntryRenamed
	// ChangeBatchFinished means a rename batch commit completed.
	ChangeBatchFinished
	// ChangeScanFailed means a folder scan failed and the previous
	// collection was kept.
	ChangeScanFailed
)

// Change is one session event. Consumers read these from Changes()
// instead of registering callbacks.
type Change struct {
	Kind ChangeKind
	ID   int
	Path string
	Err  error
}

// scanFunc matches catalog.Scan. Tests substitute their own.
type scanFunc func(ctx context.Context, root string, opts catalog.ScanOptions) ([]catalog.Entry, error)

// Session is one browsing context: a directory, its indexed collection,
// a navigation cursor, the thumbnail materializer, and a rename engine.
// All state lives here; there are no package-level variables. Methods
// are safe for concurrent use, with collection writes serialized behind
// a single mutex.
type Session struct {
	opts    catalog.ScanOptions
	mat     *thumbs.Materializer
	journal *history.Journal
	retry   fsops.RetryConfig
	scan    scanFunc

	mu        sync.Mutex
	dir       string
	coll      *collection.Collection
	cursor    *collection.Cursor
	engine    *rename.Engine
	confirmer rename.Confirmer

	generation atomic.Uint64
	changes    chan Change
}

// NewSession builds an empty session. Call OpenFolder to load a
// directory.
func NewSession(opts catalog.ScanOptions, mat *thumbs.Materializer) *Session {
	s := &Session{
		opts:    opts,
		mat:     mat,
		retry:   fsops.DefaultRetryConfig(),
		scan:    catalog.Scan,
		coll:    collection.Build(nil),
		cursor:  collection.NewCursor(),
		changes: make(chan Change, 64),
	}
	s.engine = rename.NewEngine(s.coll)
	s.engine.SetLock(&s.mu)
	return s
}

// SetJournal installs an optional rename journal shared with the engine.
func (s *Session) SetJournal(j *history.Journal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal = j
	s.engine.SetJournal(j)
}

// SetConfirmer installs the overwrite confirmation collaborator. It is
// carried over to engines built for later folders.
func (s *Session) SetConfirmer(c rename.Confirmer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmer = c
	s.engine.SetConfirmer(c)
}

// Changes returns the event stream. Events are dropped, not blocked on,
// when the consumer falls behind.
func (s *Session) Changes() <-chan Change {
	return s.changes
}

func (s *Session) notify(c Change) {
	select {
	case s.changes <- c:
	default:
		logging.Debug("browse: dropping change notification %v", c.Kind)
	}
}

// Dir returns the currently open directory, or "".
func (s *Session) Dir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir
}

// OpenFolder scans dir in the background and swaps in the resulting
// collection. The returned channel closes when the scan settles, whether
// it was published, failed, or superseded by a newer OpenFolder call.
// On failure the previous collection and selection stay intact. A scan
// that finishes after a newer one started is discarded in full.
func (s *Session) OpenFolder(ctx context.Context, dir string) <-chan struct{} {
	gen := s.generation.Add(1)
	done := make(chan struct{})

	go func() {
		defer close(done)

		entries, err := s.scan(ctx, dir, s.opts)
		if s.generation.Load() != gen {
			logging.Debug("browse: scan of %s superseded, discarding", dir)
			return
		}
		if err != nil {
			logging.Error("browse: scan of %s: %v", dir, err)
			s.notify(Change{Kind: ChangeScanFailed, Path: dir, Err: err})
			return
		}

		coll := collection.Build(entries)
		cursor := collection.NewCursor()
		if coll.Len() > 0 {
			cursor.Next(coll.Ids())
		}

		s.mu.Lock()
		if s.generation.Load() != gen {
			s.mu.Unlock()
			return
		}
		s.dir = dir
		s.coll = coll
		s.cursor = cursor
		confirmer := s.confirmer
		s.engine = rename.NewEngine(coll)
		s.engine.SetLock(&s.mu)
		if s.journal != nil {
			s.engine.SetJournal(s.journal)
		}
		if confirmer != nil {
			s.engine.SetConfirmer(confirmer)
		}
		s.mu.Unlock()

		logging.Info("browse: opened %s (%d entries)", dir, coll.Len())
		s.notify(Change{Kind: ChangeCollectionReplaced, Path: dir})

		if s.mat != nil {
			s.mat.Materialize(ctx, coll.Snapshot())
		}
	}()
	return done
}

// Entries returns the collection entries keyed by id.
func (s *Session) Entries() map[int]catalog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Snapshot()
}

// Len reports the number of entries in the open collection.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Len()
}

// Current returns the selected entry and its id. The bool is false when
// nothing is selected.
func (s *Session) Current() (int, catalog.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.cursor.Current()
	if id == collection.NoSelection {
		return collection.NoSelection, catalog.Entry{}, false
	}
	entry, err := s.coll.Get(id)
	if err != nil {
		return collection.NoSelection, catalog.Entry{}, false
	}
	return id, entry, true
}

// Select moves the cursor to an id present in the collection.
func (s *Session) Select(id int) error {
	s.mu.Lock()
	err := s.cursor.Select(id, s.coll.Ids())
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(Change{Kind: ChangeCursorMoved, ID: id})
	return nil
}

// Next advances the selection, stopping at the last entry.
func (s *Session) Next() int {
	s.mu.Lock()
	id := s.cursor.Next(s.coll.Ids())
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeCursorMoved, ID: id})
	return id
}

// Previous moves the selection back, stopping at the first entry.
func (s *Session) Previous() int {
	s.mu.Lock()
	id := s.cursor.Previous(s.coll.Ids())
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeCursorMoved, ID: id})
	return id
}

// EdgeFlags reports whether the selection can move in each direction.
func (s *Session) EdgeFlags() (hasPrevious, hasNext bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.EdgeFlags(s.coll.Ids())
}

// DeleteCurrent deletes the selected entry's file and moves the cursor
// to its nearest surviving neighbor. Ids of the remaining entries do
// not change.
func (s *Session) DeleteCurrent(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	id := s.cursor.Current()
	if id == collection.NoSelection {
		s.mu.Unlock()
		return berrors.InvalidIDf("no selection")
	}
	entry, err := s.coll.Get(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if err := fsops.Remove(entry.Path, s.retry); err != nil {
		return berrors.Classify(err)
	}

	s.mu.Lock()
	if err := s.coll.Remove(id); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cursor.FallbackAfterRemove(id, s.coll.Ids())
	s.mu.Unlock()

	if s.mat != nil {
		s.mat.Forget(id)
	}
	logging.Info("browse: deleted %s (id %d)", entry.Path, id)
	s.notify(Change{Kind: ChangeEntryRemoved, ID: id, Path: entry.Path})
	return nil
}

// RenameCurrent renames the selected entry to newName within its
// directory. The entry keeps its id.
func (s *Session) RenameCurrent(ctx context.Context, newName string) error {
	s.mu.Lock()
	id := s.cursor.Current()
	engine := s.engine
	s.mu.Unlock()

	if id == collection.NoSelection {
		return berrors.InvalidIDf("no selection")
	}
	if err := engine.RenameOne(ctx, id, newName); err != nil {
		return err
	}

	s.mu.Lock()
	entry, err := s.coll.Get(id)
	s.mu.Unlock()
	if err == nil {
		s.notify(Change{Kind: ChangeEntryRenamed, ID: id, Path: entry.Path})
	}
	return nil
}

// OpenRenameSession snapshots the collection for a batch rename preview.
func (s *Session) OpenRenameSession() *rename.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rename.Open(s.coll)
}

// CommitRename applies a staged batch through the session's engine.
func (s *Session) CommitRename(ctx context.Context, rs *rename.Session) (rename.Summary, error) {
	s.mu.Lock()
	engine := s.engine
	s.mu.Unlock()

	summary, err := engine.Commit(ctx, rs)
	s.notify(Change{Kind: ChangeBatchFinished})
	return summary, err
}

// Thumbnail returns the materialized thumbnail for an id, if any.
func (s *Session) Thumbnail(id int) (thumbs.Thumbnail, bool) {
	if s.mat == nil {
		return thumbs.Thumbnail{}, false
	}
	return s.mat.Get(id)
}

// ThumbnailStatus reports the materializer's coarse state.
func (s *Session) ThumbnailStatus() thumbs.Status {
	if s.mat == nil {
		return thumbs.StatusIdle
	}
	return s.mat.Status()
}
