package imagetypes

import (
	"path/filepath"
	"sort"
	"strings"
)

// ExtensionSet is a case-insensitive set of file extensions, stored
// lowercase with the leading dot (e.g. ".jpg").
type ExtensionSet map[string]bool

// DefaultExtensions returns the extension set for supported image formats.
func DefaultExtensions() ExtensionSet {
	return ExtensionSet{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".bmp":  true,
		".webp": true,
		".ico":  true,
		".tiff": true,
		".tif":  true,
	}
}

// ParseExtensions builds an ExtensionSet from a comma-separated list.
// Entries may be given with or without the leading dot and in any case.
// An empty list yields an empty set.
func ParseExtensions(list string) ExtensionSet {
	set := ExtensionSet{}
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		set[part] = true
	}
	return set
}

// Matches reports whether the file name has an extension in the set.
func (s ExtensionSet) Matches(name string) bool {
	return s[strings.ToLower(filepath.Ext(name))]
}

// String returns the extensions as a sorted comma-separated list.
func (s ExtensionSet) String() string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ",")
}

// MimeTypes maps supported extensions to their MIME types.
var MimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".ico":  "image/x-icon",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

// GetMimeType returns the MIME type for a given file extension.
// The extension should be lowercase and include the leading dot.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
