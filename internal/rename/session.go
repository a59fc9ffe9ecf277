package rename

import (
	"strings"

	"image-browser/internal/collection"
	"image-browser/internal/textops"
)

// ItemStatus tracks a single item's progress through a commit.
type ItemStatus int

const (
	// StatusPending means the item has not been renamed on disk yet.
	StatusPending ItemStatus = iota
	// StatusSuccess means the rename reached disk and the collection
	// entry was updated.
	StatusSuccess
	// StatusFailed means the rename was attempted and failed, or the
	// candidate name was rejected before touching disk.
	StatusFailed
)

// String implements fmt.Stringer.
func (s ItemStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Item is one collection entry staged in a rename session. CandidateName
// starts equal to OriginalName and accumulates transforms until commit.
type Item struct {
	ID            int
	OriginalPath  string
	OriginalName  string
	CandidateName string
	Status        ItemStatus
	Reason        string
}

// Changed reports whether the item has a pending candidate different
// from its current on-disk name.
func (it Item) Changed() bool {
	return it.CandidateName != it.OriginalName
}

// Session stages a batch rename. It snapshots the collection at open
// time, applies transforms to candidate names in memory, and is handed
// to an Engine to commit. Sessions are not safe for concurrent use;
// the commit phase owns the session until it returns.
type Session struct {
	items []Item
}

// Open snapshots every entry of the collection into a new session, in
// ascending id order.
func Open(c *collection.Collection) *Session {
	s := &Session{}
	for _, id := range c.Ids() {
		entry, err := c.Get(id)
		if err != nil {
			continue
		}
		s.items = append(s.items, Item{
			ID:            id,
			OriginalPath:  entry.Path,
			OriginalName:  entry.Name,
			CandidateName: entry.Name,
			Status:        StatusPending,
		})
	}
	return s
}

// Apply runs one transform over every item's candidate name. Transforms
// compose: each sees the output of the previous. A result that is
// unchanged, empty, or reduced to a bare extension leaves the item
// alone.
func (s *Session) Apply(t Transform) {
	for i := range s.items {
		it := &s.items[i]
		out := t.apply(it.CandidateName)
		if out == it.CandidateName || emptyName(out) {
			continue
		}
		it.CandidateName = out
	}
}

// emptyName reports whether a transform result has no usable base name.
func emptyName(name string) bool {
	base, _ := textops.SplitExt(name)
	return strings.TrimSpace(base) == ""
}

// Items returns a copy of the staged items for display.
func (s *Session) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// ChangedCount reports how many items currently have a candidate name
// different from their on-disk name.
func (s *Session) ChangedCount() int {
	n := 0
	for i := range s.items {
		if s.items[i].Changed() {
			n++
		}
	}
	return n
}

// Len reports the number of staged items.
func (s *Session) Len() int {
	return len(s.items)
}

// Close discards the session. Nothing staged reaches disk; only Commit
// does that.
func (s *Session) Close() {
	s.items = nil
}
