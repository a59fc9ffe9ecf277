package rename

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"image-browser/internal/collection"
	berrors "image-browser/internal/errors"
	"image-browser/internal/fsops"
	"image-browser/internal/history"
	"image-browser/internal/logging"
	"image-browser/internal/metrics"
	"image-browser/internal/workers"
)

// Confirmer decides whether a rename may overwrite an existing file.
// Implementations are asked once per conflicting target; the engine
// serializes calls so interactive implementations never interleave.
type Confirmer interface {
	ConfirmOverwrite(target string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(target string) bool

// ConfirmOverwrite implements Confirmer.
func (f ConfirmerFunc) ConfirmOverwrite(target string) bool {
	return f(target)
}

// Summary aggregates the outcome of one commit.
type Summary struct {
	Renamed   int
	Failed    int
	Declined  int
	Skipped   int
	Unchanged int
}

// String implements fmt.Stringer.
func (s Summary) String() string {
	return fmt.Sprintf("%d renamed, %d failed, %d declined, %d skipped, %d unchanged",
		s.Renamed, s.Failed, s.Declined, s.Skipped, s.Unchanged)
}

// Engine commits rename sessions against a collection. Disk renames run
// concurrently; collection updates and overwrite prompts are serialized.
type Engine struct {
	coll *collection.Collection

	mu       sync.Locker // guards coll updates and summary counters
	promptMu sync.Mutex  // serializes overwrite confirmations

	confirm    Confirmer
	journal    *history.Journal
	retry      fsops.RetryConfig
	numWorkers int
}

// NewEngine creates an engine over the given collection. Without a
// confirmer every overwrite conflict is declined.
func NewEngine(coll *collection.Collection) *Engine {
	return &Engine{
		coll:       coll,
		mu:         &sync.Mutex{},
		retry:      fsops.DefaultRetryConfig(),
		numWorkers: workers.ForIO(8),
	}
}

// SetLock shares the collection lock with the engine's owner so readers
// elsewhere never observe a half-applied update. The lock must not be
// held while calling Commit or RenameOne.
func (e *Engine) SetLock(l sync.Locker) {
	if l != nil {
		e.mu = l
	}
}

// SetConfirmer installs the overwrite confirmation collaborator.
func (e *Engine) SetConfirmer(c Confirmer) {
	e.confirm = c
}

// SetJournal installs an optional rename journal. Journal failures are
// logged and never fail a commit.
func (e *Engine) SetJournal(j *history.Journal) {
	e.journal = j
}

// SetWorkers overrides the number of concurrent rename workers.
func (e *Engine) SetWorkers(n int) {
	if n > 0 {
		e.numWorkers = n
	}
}

// SetRetryConfig overrides the filesystem retry policy.
func (e *Engine) SetRetryConfig(c fsops.RetryConfig) {
	e.retry = c
}

// Commit applies the session's staged renames to disk. Items are
// validated first: malformed candidate names and in-batch duplicate
// targets never reach the filesystem. Each surviving item is renamed
// independently; one failure marks that item failed and the batch
// continues. Re-committing the same session retries failed items and
// skips ones that already succeeded.
//
// The returned error is non-nil only when ctx is cancelled; per-item
// failures are reported through item statuses and the summary.
func (e *Engine) Commit(ctx context.Context, s *Session) (Summary, error) {
	start := time.Now()
	metrics.RenameBatchesTotal.Inc()
	defer func() {
		metrics.RenameBatchDuration.Observe(time.Since(start).Seconds())
	}()

	var summary Summary
	actionable := e.validate(s, &summary)
	if len(actionable) == 0 {
		logging.Debug("rename: nothing to commit (%s)", summary)
		return summary, ctx.Err()
	}

	logging.Info("rename: committing %d items with %d workers", len(actionable), e.numWorkers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	records := make(chan history.Record, len(actionable))

	n := e.numWorkers
	if n > len(actionable) {
		n = len(actionable)
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				e.commitItem(s, idx, &summary, records)
			}
		}()
	}

	var cancelled bool
dispatch:
	for _, idx := range actionable {
		select {
		case <-ctx.Done():
			cancelled = true
			break dispatch
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()
	close(records)

	e.appendJournal(ctx, records)

	logging.Info("rename: batch finished in %v (%s)", time.Since(start), summary)
	if cancelled {
		return summary, ctx.Err()
	}
	return summary, nil
}

// validate runs the sequential pre-pass: it filters out unchanged and
// already-successful items, fails malformed candidate names, and skips
// all but the first item targeting a given path. Returned indexes are
// safe to rename concurrently.
func (e *Engine) validate(s *Session, summary *Summary) []int {
	var actionable []int
	targets := make(map[string]int)

	for i := range s.items {
		it := &s.items[i]
		if it.Status == StatusSuccess || !it.Changed() {
			summary.Unchanged++
			continue
		}
		if reason := invalidNameReason(it.CandidateName); reason != "" {
			it.Status = StatusFailed
			it.Reason = reason
			summary.Failed++
			metrics.RenameItemsTotal.WithLabelValues("invalid").Inc()
			logging.Warn("rename: rejecting %q: %s", it.CandidateName, reason)
			continue
		}
		target := filepath.Join(filepath.Dir(it.OriginalPath), it.CandidateName)
		if first, dup := targets[target]; dup {
			it.Reason = fmt.Sprintf("duplicate target %q (also produced by item %d)", it.CandidateName, s.items[first].ID)
			summary.Skipped++
			metrics.RenameItemsTotal.WithLabelValues("duplicate").Inc()
			logging.Warn("rename: skipping item %d: %s", it.ID, it.Reason)
			continue
		}
		targets[target] = i
		actionable = append(actionable, i)
	}
	return actionable
}

// commitItem renames one staged item on disk. Safe to call from
// multiple workers: each index is dispatched at most once and shared
// state is taken under e.mu.
func (e *Engine) commitItem(s *Session, idx int, summary *Summary, records chan<- history.Record) {
	it := &s.items[idx]
	target := filepath.Join(filepath.Dir(it.OriginalPath), it.CandidateName)

	if fsops.Exists(target) {
		if !e.confirmOverwrite(target) {
			it.Reason = fmt.Sprintf("target %q exists, overwrite declined", it.CandidateName)
			e.mu.Lock()
			summary.Declined++
			e.mu.Unlock()
			metrics.RenameItemsTotal.WithLabelValues("declined").Inc()
			logging.Info("rename: %s", it.Reason)
			return
		}
	}

	if err := fsops.Rename(it.OriginalPath, target, e.retry); err != nil {
		e.failItem(it, summary, err)
		return
	}

	records <- history.Record{
		OldPath: it.OriginalPath,
		NewPath: target,
		OldName: it.OriginalName,
		NewName: it.CandidateName,
	}

	e.mu.Lock()
	if err := e.coll.Update(it.ID, target); err != nil {
		// Entry vanished between open and commit; the file is renamed
		// either way, so record success and move on.
		logging.Warn("rename: collection update for id %d: %v", it.ID, err)
	}
	summary.Renamed++
	e.mu.Unlock()

	logging.Debug("rename: %q -> %q", it.OriginalName, it.CandidateName)
	it.Status = StatusSuccess
	it.Reason = ""
	it.OriginalPath = target
	it.OriginalName = it.CandidateName
	metrics.RenameItemsTotal.WithLabelValues("success").Inc()
}

func (e *Engine) failItem(it *Item, summary *Summary, err error) {
	err = berrors.Classify(err)
	it.Status = StatusFailed
	it.Reason = err.Error()
	e.mu.Lock()
	summary.Failed++
	e.mu.Unlock()
	metrics.RenameItemsTotal.WithLabelValues("failed").Inc()
	logging.Error("rename: %q -> %q: %v", it.OriginalName, it.CandidateName, err)
}

func (e *Engine) confirmOverwrite(target string) bool {
	if e.confirm == nil {
		return false
	}
	e.promptMu.Lock()
	defer e.promptMu.Unlock()
	return e.confirm.ConfirmOverwrite(target)
}

func (e *Engine) appendJournal(ctx context.Context, records <-chan history.Record) {
	if e.journal == nil {
		return
	}
	var batch []history.Record
	for rec := range records {
		batch = append(batch, rec)
	}
	if len(batch) == 0 {
		return
	}
	if err := e.journal.Append(ctx, batch); err != nil {
		logging.Warn("rename: journal append: %v", err)
	}
}

// RenameOne renames a single collection entry to newName inside its
// current directory, with the same conflict and retry handling as a
// batch commit.
func (e *Engine) RenameOne(ctx context.Context, id int, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if reason := invalidNameReason(newName); reason != "" {
		return berrors.InvalidIDf("rename %q: %s", newName, reason)
	}

	e.mu.Lock()
	entry, err := e.coll.Get(id)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	if entry.Name == newName {
		return nil
	}

	target := filepath.Join(entry.Dir, newName)
	if fsops.Exists(target) && !e.confirmOverwrite(target) {
		return fmt.Errorf("target %q exists: %w", newName, berrors.ErrConflict)
	}

	if err := fsops.Rename(entry.Path, target, e.retry); err != nil {
		return berrors.Classify(err)
	}

	e.mu.Lock()
	err = e.coll.Update(id, target)
	e.mu.Unlock()
	if err != nil {
		logging.Warn("rename: collection update for id %d: %v", id, err)
	}

	if e.journal != nil {
		rec := history.Record{OldPath: entry.Path, NewPath: target, OldName: entry.Name, NewName: newName}
		if jerr := e.journal.Append(ctx, []history.Record{rec}); jerr != nil {
			logging.Warn("rename: journal append: %v", jerr)
		}
	}
	metrics.RenameItemsTotal.WithLabelValues("success").Inc()
	return nil
}

// invalidNameReason reports why a candidate name cannot be used, or ""
// when it is acceptable.
func invalidNameReason(name string) string {
	switch {
	case strings.TrimSpace(name) == "":
		return "empty name"
	case name == "." || name == "..":
		return "reserved name"
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return "name contains a path separator"
	case strings.ContainsRune(name, 0):
		return "name contains a NUL byte"
	}
	return ""
}
