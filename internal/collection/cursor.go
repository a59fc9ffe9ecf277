package collection

import (
	"sort"

	berrors "image-browser/internal/errors"
)

// NoSelection is the cursor value when no entry is selected.
const NoSelection = -1

// Cursor tracks the current id within a collection's sorted id
// sequence and computes next/previous targets plus edge visibility
// flags. Navigation is boundary-stop: at either end the cursor stays
// put instead of wrapping around.
type Cursor struct {
	currentID int
}

// NewCursor returns a cursor with no selection.
func NewCursor() *Cursor {
	return &Cursor{currentID: NoSelection}
}

// Current returns the selected id, or NoSelection.
func (cur *Cursor) Current() int {
	return cur.currentID
}

// Select moves the cursor to an id that must be present in ids.
// Selecting an absent id is a caller error; the cursor does not clamp.
func (cur *Cursor) Select(id int, ids []int) error {
	if !contains(ids, id) {
		return berrors.InvalidIDf("select %d", id)
	}
	cur.currentID = id
	return nil
}

// Clear drops the selection.
func (cur *Cursor) Clear() {
	cur.currentID = NoSelection
}

// Next moves to the id immediately following the current one in ids.
// At the last element the cursor stays there. With no selection it
// moves to the first id, if any. Returns the resulting id.
func (cur *Cursor) Next(ids []int) int {
	if len(ids) == 0 {
		cur.currentID = NoSelection
		return cur.currentID
	}
	if cur.currentID == NoSelection {
		cur.currentID = ids[0]
		return cur.currentID
	}

	i := indexOf(ids, cur.currentID)
	if i >= 0 && i+1 < len(ids) {
		cur.currentID = ids[i+1]
	}
	return cur.currentID
}

// Previous is the symmetric counterpart of Next.
func (cur *Cursor) Previous(ids []int) int {
	if len(ids) == 0 {
		cur.currentID = NoSelection
		return cur.currentID
	}
	if cur.currentID == NoSelection {
		cur.currentID = ids[len(ids)-1]
		return cur.currentID
	}

	i := indexOf(ids, cur.currentID)
	if i > 0 {
		cur.currentID = ids[i-1]
	}
	return cur.currentID
}

// EdgeFlags reports whether navigation in each direction is possible.
// Both flags are false for collections with one entry or fewer, and
// when nothing is selected.
func (cur *Cursor) EdgeFlags(ids []int) (hasPrevious, hasNext bool) {
	if len(ids) <= 1 || cur.currentID == NoSelection {
		return false, false
	}
	return cur.currentID > ids[0], cur.currentID < ids[len(ids)-1]
}

// FallbackAfterRemove repositions the cursor after removedID was
// deleted from the collection: it moves to the next id in order, then
// the previous, then NoSelection. ids is the post-removal sequence.
// Returns the resulting id.
func (cur *Cursor) FallbackAfterRemove(removedID int, ids []int) int {
	if len(ids) == 0 {
		cur.currentID = NoSelection
		return cur.currentID
	}

	// First id greater than the removed one, else the greatest smaller.
	i := sort.SearchInts(ids, removedID)
	if i < len(ids) {
		cur.currentID = ids[i]
	} else {
		cur.currentID = ids[len(ids)-1]
	}
	return cur.currentID
}

func indexOf(ids []int, id int) int {
	i := sort.SearchInts(ids, id)
	if i < len(ids) && ids[i] == id {
		return i
	}
	return -1
}

func contains(ids []int, id int) bool {
	return indexOf(ids, id) >= 0
}
