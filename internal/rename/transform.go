package rename

import (
	"fmt"

	"image-browser/internal/textops"
)

// TransformKind identifies one of the closed set of name transforms.
// Kinds are parsed once at the UI boundary; the engine never dispatches
// on user-facing strings.
type TransformKind int

const (
	// KindAddAppendage appends a token to the base name.
	KindAddAppendage TransformKind = iota
	// KindRemoveAppendage removes a trailing token from the base name.
	KindRemoveAppendage
	// KindRemoveSubstring removes every occurrence of a token.
	KindRemoveSubstring
	// KindReplaceSubstring replaces every occurrence of a token.
	KindReplaceSubstring
	// KindReorderNumbers re-sequences numeric runs in the base name.
	KindReorderNumbers
	// KindTrimPrefix removes the first n characters of the base name.
	KindTrimPrefix
)

// Transform is one preview operation over candidate names. Transforms
// are pure: they never touch disk and only the session's candidate
// names observe them.
type Transform struct {
	Kind        TransformKind
	Token       string
	Replacement string
	Count       int
}

// AddAppendage builds a transform that appends token before the extension.
func AddAppendage(token string) Transform {
	return Transform{Kind: KindAddAppendage, Token: token}
}

// RemoveAppendage builds the inverse of AddAppendage.
func RemoveAppendage(token string) Transform {
	return Transform{Kind: KindRemoveAppendage, Token: token}
}

// RemoveSubstring builds a transform that deletes every occurrence of token.
func RemoveSubstring(token string) Transform {
	return Transform{Kind: KindRemoveSubstring, Token: token}
}

// ReplaceSubstring builds a transform that replaces every occurrence of
// token with replacement.
func ReplaceSubstring(token, replacement string) Transform {
	return Transform{Kind: KindReplaceSubstring, Token: token, Replacement: replacement}
}

// ReorderNumbers builds a transform that sorts numeric runs ascending.
func ReorderNumbers() Transform {
	return Transform{Kind: KindReorderNumbers}
}

// TrimPrefix builds a transform that drops the first n characters of
// the base name.
func TrimPrefix(n int) Transform {
	return Transform{Kind: KindTrimPrefix, Count: n}
}

// apply returns the transformed name. The no-op guard (unchanged or
// empty results) lives in Session.Apply, not here.
func (t Transform) apply(name string) string {
	switch t.Kind {
	case KindAddAppendage:
		return textops.AddAppendage(name, t.Token)
	case KindRemoveAppendage:
		return textops.RemoveAppendage(name, t.Token)
	case KindRemoveSubstring:
		return textops.ReplacePart(name, t.Token, "")
	case KindReplaceSubstring:
		return textops.ReplacePart(name, t.Token, t.Replacement)
	case KindReorderNumbers:
		return textops.ReorderNumbers(name)
	case KindTrimPrefix:
		return textops.TrimPrefixCount(name, t.Count)
	default:
		return name
	}
}

// String returns a human-readable description for logs and previews.
func (t Transform) String() string {
	switch t.Kind {
	case KindAddAppendage:
		return fmt.Sprintf("add appendage %q", t.Token)
	case KindRemoveAppendage:
		return fmt.Sprintf("remove appendage %q", t.Token)
	case KindRemoveSubstring:
		return fmt.Sprintf("remove %q", t.Token)
	case KindReplaceSubstring:
		return fmt.Sprintf("replace %q with %q", t.Token, t.Replacement)
	case KindReorderNumbers:
		return "reorder numbers"
	case KindTrimPrefix:
		return fmt.Sprintf("trim first %d characters", t.Count)
	default:
		return fmt.Sprintf("unknown(%d)", t.Kind)
	}
}
