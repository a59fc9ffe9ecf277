package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	berrors "image-browser/internal/errors"
	"image-browser/internal/imagetypes"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestScanFlat(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.png", "a.jpg", "notes.txt", ".hidden.png")

	entries, err := Scan(context.Background(), dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	got := names(entries)
	want := []string{"a.jpg", "b.png"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
}

func TestScanNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "img10.png", "img2.png", "img1.png")

	entries, err := Scan(context.Background(), dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	got := names(entries)
	want := []string{"img1.png", "img2.png", "img10.png"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}
}

func TestScanRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"top.png",
		filepath.Join("sub", "nested.jpg"),
		filepath.Join("sub", "skip.txt"),
		filepath.Join(".hiddendir", "ignored.png"),
	)

	entries, err := Scan(context.Background(), dir, ScanOptions{Recursive: true})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %v", len(entries), names(entries))
	}

	// Root dir sorts before its subdirectories.
	if entries[0].Name != "top.png" || entries[1].Name != "nested.jpg" {
		t.Errorf("Unexpected order: %v", names(entries))
	}
}

func TestScanNonRecursiveSkipsSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "top.png", filepath.Join("sub", "nested.jpg"))

	entries, err := Scan(context.Background(), dir, ScanOptions{Recursive: false})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "top.png" {
		t.Errorf("Expected only top.png, got %v", names(entries))
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	entries, err := Scan(context.Background(), t.TempDir(), ScanOptions{})
	if err != nil {
		t.Fatalf("Empty directory should not error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), ScanOptions{})
	if !berrors.Is(err, berrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestScanRootIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "f.png")

	_, err := Scan(context.Background(), filepath.Join(dir, "f.png"), ScanOptions{})
	if !berrors.Is(err, berrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for non-directory root, got %v", err)
	}
}

func TestScanCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.raw")

	entries, err := Scan(context.Background(), dir, ScanOptions{
		Extensions: imagetypes.ParseExtensions("raw"),
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "b.raw" {
		t.Errorf("Expected only b.raw, got %v", names(entries))
	}
}

func TestScanCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, filepath.Join("sub", "a.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Scan(ctx, dir, ScanOptions{Recursive: true}); err == nil {
		t.Error("Expected error from cancelled context")
	}
}

func TestEntryWithPath(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "old.png")

	info, err := os.Stat(filepath.Join(dir, "old.png"))
	if err != nil {
		t.Fatal(err)
	}

	e := NewEntry(filepath.Join(dir, "old.png"), info)
	renamed := e.WithPath(filepath.Join(dir, "new.JPG"))

	if renamed.Name != "new.JPG" {
		t.Errorf("Expected name new.JPG, got %s", renamed.Name)
	}
	if renamed.Ext != ".jpg" {
		t.Errorf("Expected ext .jpg, got %s", renamed.Ext)
	}
	if renamed.Dir != dir {
		t.Errorf("Expected dir %s, got %s", dir, renamed.Dir)
	}
	if renamed.Size != e.Size {
		t.Error("Size should carry over on rename")
	}
}
