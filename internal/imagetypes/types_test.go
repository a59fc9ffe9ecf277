package imagetypes

import "testing"

func TestParseExtensions(t *testing.T) {
	set := ParseExtensions("jpg, .PNG ,webp,,")

	if len(set) != 3 {
		t.Fatalf("Expected 3 extensions, got %d: %v", len(set), set)
	}
	for _, ext := range []string{".jpg", ".png", ".webp"} {
		if !set[ext] {
			t.Errorf("Expected %s in set", ext)
		}
	}
}

func TestMatches(t *testing.T) {
	set := DefaultExtensions()

	tests := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"archive.tar.gz", false},
		{"scan.tiff", true},
		{"noext", false},
		{"movie.mp4", false},
	}

	for _, tt := range tests {
		if got := set.Matches(tt.name); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	set := ParseExtensions("png,jpg")
	if got := set.String(); got != ".jpg,.png" {
		t.Errorf("String() = %q, want %q", got, ".jpg,.png")
	}
}

func TestGetMimeType(t *testing.T) {
	if got := GetMimeType(".png"); got != "image/png" {
		t.Errorf("GetMimeType(.png) = %q", got)
	}
	if got := GetMimeType(".xyz"); got != "application/octet-stream" {
		t.Errorf("GetMimeType(.xyz) = %q", got)
	}
}
