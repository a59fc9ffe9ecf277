package rename

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"image-browser/internal/catalog"
	"image-browser/internal/collection"
	berrors "image-browser/internal/errors"
)

func writeFiles(t *testing.T, dir string, names ...string) []catalog.Entry {
	t.Helper()
	entries := make([]catalog.Entry, 0, len(names))
	for _, n := range names {
		path := filepath.Join(dir, n)
		if err := os.WriteFile(path, []byte("test"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
		entries = append(entries, catalog.Entry{
			Path: path,
			Name: n,
			Dir:  dir,
			Ext:  filepath.Ext(n),
		})
	}
	return entries
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("stat %s: %v", path, err)
	}
	return err == nil
}

func TestCommitRenamesFiles(t *testing.T) {
	dir := t.TempDir()
	coll := collection.Build(writeFiles(t, dir, "a.jpg", "b.jpg", "c.jpg"))

	s := Open(coll)
	s.Apply(AddAppendage("_v2"))

	e := NewEngine(coll)
	e.SetWorkers(2)
	summary, err := e.Commit(context.Background(), s)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if summary.Renamed != 3 || summary.Failed != 0 {
		t.Fatalf("summary = %v", summary)
	}

	for _, want := range []string{"a_v2.jpg", "b_v2.jpg", "c_v2.jpg"} {
		if !fileExists(t, filepath.Join(dir, want)) {
			t.Errorf("expected %s on disk", want)
		}
	}
	for _, it := range s.Items() {
		if it.Status != StatusSuccess {
			t.Errorf("item %d status = %v", it.ID, it.Status)
		}
	}
	for _, id := range coll.Ids() {
		entry, err := coll.Get(id)
		if err != nil {
			t.Fatalf("Get(%d): %v", id, err)
		}
		if filepath.Ext(entry.Name) != ".jpg" || entry.Dir != dir {
			t.Errorf("entry %d not updated: %+v", id, entry)
		}
		if !fileExists(t, entry.Path) {
			t.Errorf("collection path %s missing on disk", entry.Path)
		}
	}
}

func TestCommitPartialFailureIsolated(t *testing.T) {
	dir := t.TempDir()
	coll := collection.Build(writeFiles(t, dir, "a.jpg", "b.jpg", "c.jpg"))

	s := Open(coll)
	s.Apply(AddAppendage("_x"))

	// Removing b.jpg makes its rename fail with not-found while the
	// other two must still succeed.
	if err := os.Remove(filepath.Join(dir, "b.jpg")); err != nil {
		t.Fatal(err)
	}

	e := NewEngine(coll)
	e.SetWorkers(1)
	summary, err := e.Commit(context.Background(), s)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if summary.Renamed != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %v", summary)
	}

	items := s.Items()
	if items[1].Status != StatusFailed {
		t.Errorf("item 1 status = %v, want failed", items[1].Status)
	}
	if items[1].Reason == "" {
		t.Error("failed item has no reason")
	}
	if items[0].Status != StatusSuccess || items[2].Status != StatusSuccess {
		t.Errorf("sibling statuses = %v, %v", items[0].Status, items[2].Status)
	}
	if !fileExists(t, filepath.Join(dir, "a_x.jpg")) || !fileExists(t, filepath.Join(dir, "c_x.jpg")) {
		t.Error("successful renames missing on disk")
	}

	// The collection reflects the renamed siblings and keeps the failed
	// entry at its old path.
	for id, want := range map[int]string{0: "a_x.jpg", 1: "b.jpg", 2: "c_x.jpg"} {
		entry, err := coll.Get(id)
		if err != nil {
			t.Fatalf("Get(%d): %v", id, err)
		}
		if entry.Name != want || entry.Path != filepath.Join(dir, want) {
			t.Errorf("entry %d = %q (%s), want %q", id, entry.Name, entry.Path, want)
		}
	}
}

func TestCommitRerunSkipsSucceeded(t *testing.T) {
	dir := t.TempDir()
	coll := collection.Build(writeFiles(t, dir, "a.jpg", "b.jpg"))

	s := Open(coll)
	s.Apply(AddAppendage("_done"))

	e := NewEngine(coll)
	if _, err := e.Commit(context.Background(), s); err != nil {
		t.Fatalf("first Commit: %v", err)
	}

	summary, err := e.Commit(context.Background(), s)
	if err != nil {
		t.Fatalf("second Commit: %v", err)
	}
	if summary.Renamed != 0 || summary.Failed != 0 {
		t.Fatalf("re-run summary = %v", summary)
	}
	if summary.Unchanged != 2 {
		t.Errorf("Unchanged = %d, want 2", summary.Unchanged)
	}
}

func TestCommitOverwriteDeclined(t *testing.T) {
	dir := t.TempDir()
	entries := writeFiles(t, dir, "a.jpg")
	writeFiles(t, dir, "a_x.jpg")
	coll := collection.Build(entries)

	s := Open(coll)
	s.Apply(AddAppendage("_x"))

	asked := ""
	e := NewEngine(coll)
	e.SetConfirmer(ConfirmerFunc(func(target string) bool {
		asked = target
		return false
	}))

	summary, err := e.Commit(context.Background(), s)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if summary.Declined != 1 || summary.Renamed != 0 {
		t.Fatalf("summary = %v", summary)
	}
	if asked != filepath.Join(dir, "a_x.jpg") {
		t.Errorf("confirmer asked about %q", asked)
	}
	if got := s.Items()[0].Status; got != StatusPending {
		t.Errorf("declined item status = %v, want pending", got)
	}
	if !fileExists(t, filepath.Join(dir, "a.jpg")) {
		t.Error("source file moved despite declined overwrite")
	}
}

func TestCommitOverwriteConfirmed(t *testing.T) {
	dir := t.TempDir()
	entries := writeFiles(t, dir, "a.jpg")
	writeFiles(t, dir, "a_x.jpg")
	coll := collection.Build(entries)

	s := Open(coll)
	s.Apply(AddAppendage("_x"))

	e := NewEngine(coll)
	e.SetConfirmer(ConfirmerFunc(func(string) bool { return true }))

	summary, err := e.Commit(context.Background(), s)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if summary.Renamed != 1 {
		t.Fatalf("summary = %v", summary)
	}
	if fileExists(t, filepath.Join(dir, "a.jpg")) {
		t.Error("source still present after confirmed overwrite")
	}
}

func TestCommitWithoutConfirmerDeclines(t *testing.T) {
	dir := t.TempDir()
	entries := writeFiles(t, dir, "a.jpg")
	writeFiles(t, dir, "a_x.jpg")
	coll := collection.Build(entries)

	s := Open(coll)
	s.Apply(AddAppendage("_x"))

	summary, err := NewEngine(coll).Commit(context.Background(), s)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if summary.Declined != 1 {
		t.Fatalf("summary = %v", summary)
	}
}

func TestCommitDuplicateTargetsSkipped(t *testing.T) {
	dir := t.TempDir()
	coll := collection.Build(writeFiles(t, dir, "a_.jpg", "a-.jpg"))

	s := Open(coll)
	s.Apply(RemoveSubstring("_"))
	s.Apply(RemoveSubstring("-"))

	summary, err := NewEngine(coll).Commit(context.Background(), s)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if summary.Renamed != 1 || summary.Skipped != 1 {
		t.Fatalf("summary = %v", summary)
	}

	items := s.Items()
	if items[0].Status != StatusSuccess {
		t.Errorf("first item status = %v", items[0].Status)
	}
	if items[1].Status != StatusPending || items[1].Reason == "" {
		t.Errorf("duplicate item status = %v, reason = %q", items[1].Status, items[1].Reason)
	}
	if !fileExists(t, filepath.Join(dir, "a-.jpg")) {
		t.Error("skipped duplicate's source was moved")
	}
}

func TestCommitInvalidCandidateFailsWithoutDisk(t *testing.T) {
	dir := t.TempDir()
	coll := collection.Build(writeFiles(t, dir, "ab.jpg"))

	s := Open(coll)
	s.Apply(ReplaceSubstring("a", "x/y"))

	summary, err := NewEngine(coll).Commit(context.Background(), s)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if summary.Failed != 1 || summary.Renamed != 0 {
		t.Fatalf("summary = %v", summary)
	}
	if got := s.Items()[0].Status; got != StatusFailed {
		t.Errorf("status = %v, want failed", got)
	}
	if !fileExists(t, filepath.Join(dir, "ab.jpg")) {
		t.Error("file moved despite invalid candidate")
	}
}

func TestRenameOne(t *testing.T) {
	dir := t.TempDir()
	coll := collection.Build(writeFiles(t, dir, "old.jpg"))

	e := NewEngine(coll)
	if err := e.RenameOne(context.Background(), 0, "new.jpg"); err != nil {
		t.Fatalf("RenameOne: %v", err)
	}

	if !fileExists(t, filepath.Join(dir, "new.jpg")) {
		t.Error("renamed file missing")
	}
	entry, err := coll.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Name != "new.jpg" {
		t.Errorf("collection name = %q", entry.Name)
	}
}

func TestRenameOneConflictWithoutConfirmer(t *testing.T) {
	dir := t.TempDir()
	entries := writeFiles(t, dir, "old.jpg")
	writeFiles(t, dir, "taken.jpg")
	coll := collection.Build(entries)

	err := NewEngine(coll).RenameOne(context.Background(), 0, "taken.jpg")
	if !berrors.Is(err, berrors.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if !fileExists(t, filepath.Join(dir, "old.jpg")) {
		t.Error("source moved despite conflict")
	}
}

func TestRenameOneUnknownId(t *testing.T) {
	coll := collection.Build(nil)
	err := NewEngine(coll).RenameOne(context.Background(), 7, "x.jpg")
	if !berrors.Is(err, berrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestInvalidNameReason(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"photo.jpg", true},
		{"", false},
		{"   ", false},
		{".", false},
		{"..", false},
		{"a/b.jpg", false},
		{".hidden", true},
	}
	for _, tt := range tests {
		got := invalidNameReason(tt.name)
		if tt.ok && got != "" {
			t.Errorf("invalidNameReason(%q) = %q, want valid", tt.name, got)
		}
		if !tt.ok && got == "" {
			t.Errorf("invalidNameReason(%q) accepted", tt.name)
		}
	}
}
