package collection

import (
	"sort"

	"image-browser/internal/catalog"
	berrors "image-browser/internal/errors"
)

// Collection maps stable integer ids to catalog entries. Ids are dense
// from 0 at build time, assigned once per scan, and never reused within
// that scan's lifetime: removal deletes the id outright and a rename
// updates the path for an existing id.
//
// The type is not internally synchronized. Mutations follow the
// single-writer contract; concurrent writers such as the rename engine
// serialize their updates before calling in.
type Collection struct {
	entries map[int]catalog.Entry
}

// Build assigns ids 0..n-1 to entries in input order.
func Build(entries []catalog.Entry) *Collection {
	m := make(map[int]catalog.Entry, len(entries))
	for i, e := range entries {
		m[i] = e
	}
	return &Collection{entries: m}
}

// Get returns the entry for an id, or ErrNotFound if the id is absent.
func (c *Collection) Get(id int) (catalog.Entry, error) {
	e, ok := c.entries[id]
	if !ok {
		return catalog.Entry{}, berrors.NotFoundf("id %d", id)
	}
	return e, nil
}

// Remove deletes the mapping for an id. Remaining ids keep their
// values; nothing is renumbered. Returns ErrNotFound if the id is
// absent so callers that check first stay idempotent-safe.
func (c *Collection) Remove(id int) error {
	if _, ok := c.entries[id]; !ok {
		return berrors.NotFoundf("id %d", id)
	}
	delete(c.entries, id)
	return nil
}

// Update replaces the path for an existing id, re-deriving the entry's
// name, directory, and extension. Fails with ErrNotFound if the id is
// absent. No other id's mapping is touched.
func (c *Collection) Update(id int, newPath string) error {
	e, ok := c.entries[id]
	if !ok {
		return berrors.NotFoundf("id %d", id)
	}
	c.entries[id] = e.WithPath(newPath)
	return nil
}

// Ids returns the present ids in ascending order. This is the order
// used for navigation.
func (c *Collection) Ids() []int {
	ids := make([]int, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Snapshot returns a copy of the id-to-entry mapping. The rename engine
// and thumbnail materializer work from snapshots so an in-flight batch
// never observes a half-mutated collection.
func (c *Collection) Snapshot() map[int]catalog.Entry {
	m := make(map[int]catalog.Entry, len(c.entries))
	for id, e := range c.entries {
		m[id] = e
	}
	return m
}
