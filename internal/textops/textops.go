package textops

import (
	"path/filepath"
	"sort"
	"strings"
)

// SplitExt splits a file name into base name and extension. The
// extension includes the leading dot and may be empty.
func SplitExt(name string) (base, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

// AddAppendage appends a token to the base name, before the extension.
// An empty token returns the name unchanged.
func AddAppendage(name, token string) string {
	if token == "" {
		return name
	}
	base, ext := SplitExt(name)
	return base + token + ext
}

// RemoveAppendage removes a trailing token from the base name if
// present. Names whose base does not end with the token are returned
// unchanged.
func RemoveAppendage(name, token string) string {
	if token == "" {
		return name
	}
	base, ext := SplitExt(name)
	if !strings.HasSuffix(base, token) {
		return name
	}
	return strings.TrimSuffix(base, token) + ext
}

// ReplacePart replaces every occurrence of old in the name with new.
// Removing a substring is ReplacePart with an empty replacement.
func ReplacePart(name, old, new string) string {
	if old == "" {
		return name
	}
	return strings.ReplaceAll(name, old, new)
}

// TrimPrefixCount removes the first n characters of the base name,
// counted in runes. A base name of n characters or fewer is returned
// unchanged.
func TrimPrefixCount(name string, n int) string {
	if n <= 0 {
		return name
	}
	base, ext := SplitExt(name)
	runes := []rune(base)
	if len(runes) <= n {
		return name
	}
	return string(runes[n:]) + ext
}

// ReorderNumbers re-sequences the numeric runs in the base name into
// ascending numeric order while keeping every non-numeric segment in
// place. "b3a1c2" becomes "b1a2c3". Digit runs keep their exact text,
// leading zeros included, and the sort is stable so equal values keep
// their relative order. The operation is deterministic and idempotent
// on already-ordered input.
func ReorderNumbers(name string) string {
	base, ext := SplitExt(name)

	segments, runs := splitNumericRuns(base)
	if len(runs) < 2 {
		return name
	}

	sorted := make([]string, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareNumeric(sorted[i], sorted[j]) < 0
	})

	var b strings.Builder
	runIdx := 0
	for _, seg := range segments {
		if seg.numeric {
			b.WriteString(sorted[runIdx])
			runIdx++
		} else {
			b.WriteString(seg.text)
		}
	}
	return b.String() + ext
}

type segment struct {
	text    string
	numeric bool
}

// splitNumericRuns tokenizes a string into alternating text and digit
// segments, returning the segment list plus the digit runs in order.
func splitNumericRuns(s string) ([]segment, []string) {
	var segments []segment
	var runs []string
	var cur strings.Builder
	curNumeric := false

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		seg := segment{text: cur.String(), numeric: curNumeric}
		segments = append(segments, seg)
		if curNumeric {
			runs = append(runs, seg.text)
		}
		cur.Reset()
	}

	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		if cur.Len() > 0 && isDigit != curNumeric {
			flush()
		}
		curNumeric = isDigit
		cur.WriteRune(r)
	}
	flush()

	return segments, runs
}

// compareNumeric compares two digit runs by numeric value without
// parsing, so arbitrarily long runs are safe. Runs with equal value
// order by zero padding, more-padded first, for determinism.
func compareNumeric(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")

	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if ta != tb {
		if ta < tb {
			return -1
		}
		return 1
	}
	if len(a) != len(b) {
		if len(a) > len(b) {
			return -1
		}
		return 1
	}
	return 0
}
