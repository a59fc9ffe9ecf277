package collection

import (
	"testing"

	berrors "image-browser/internal/errors"
)

func TestNextBoundaryStop(t *testing.T) {
	ids := []int{0, 1, 2}
	cur := NewCursor()
	if err := cur.Select(2, ids); err != nil {
		t.Fatal(err)
	}

	if got := cur.Next(ids); got != 2 {
		t.Errorf("Next at last id should stay at 2, got %d", got)
	}

	_, hasNext := cur.EdgeFlags(ids)
	if hasNext {
		t.Error("hasNext should be false at the last id")
	}
}

func TestPreviousBoundaryStop(t *testing.T) {
	ids := []int{0, 1, 2}
	cur := NewCursor()
	if err := cur.Select(0, ids); err != nil {
		t.Fatal(err)
	}

	if got := cur.Previous(ids); got != 0 {
		t.Errorf("Previous at first id should stay at 0, got %d", got)
	}

	hasPrev, _ := cur.EdgeFlags(ids)
	if hasPrev {
		t.Error("hasPrevious should be false at the first id")
	}
}

func TestNextPreviousStepping(t *testing.T) {
	ids := []int{0, 2, 5}
	cur := NewCursor()
	if err := cur.Select(0, ids); err != nil {
		t.Fatal(err)
	}

	if got := cur.Next(ids); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
	if got := cur.Next(ids); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}
	if got := cur.Previous(ids); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
}

func TestSingleEntryEdges(t *testing.T) {
	ids := []int{3}
	cur := NewCursor()
	if err := cur.Select(3, ids); err != nil {
		t.Fatal(err)
	}

	hasPrev, hasNext := cur.EdgeFlags(ids)
	if hasPrev || hasNext {
		t.Errorf("Single-entry collection should have no edges, got prev=%v next=%v", hasPrev, hasNext)
	}
}

func TestEdgeFlagsMiddle(t *testing.T) {
	ids := []int{0, 1, 2}
	cur := NewCursor()
	if err := cur.Select(1, ids); err != nil {
		t.Fatal(err)
	}

	hasPrev, hasNext := cur.EdgeFlags(ids)
	if !hasPrev || !hasNext {
		t.Errorf("Middle id should have both edges, got prev=%v next=%v", hasPrev, hasNext)
	}
}

func TestSelectInvalidId(t *testing.T) {
	cur := NewCursor()
	err := cur.Select(9, []int{0, 1})
	if !berrors.Is(err, berrors.ErrInvalidID) {
		t.Fatalf("Expected ErrInvalidID, got %v", err)
	}
	if cur.Current() != NoSelection {
		t.Error("Failed select should not move the cursor")
	}
}

func TestNextFromNoSelection(t *testing.T) {
	cur := NewCursor()
	if got := cur.Next([]int{4, 7}); got != 4 {
		t.Errorf("Next with no selection should pick first id, got %d", got)
	}

	cur.Clear()
	if got := cur.Previous([]int{4, 7}); got != 7 {
		t.Errorf("Previous with no selection should pick last id, got %d", got)
	}
}

func TestEmptyIds(t *testing.T) {
	cur := NewCursor()
	if got := cur.Next(nil); got != NoSelection {
		t.Errorf("Next on empty ids should clear selection, got %d", got)
	}

	hasPrev, hasNext := cur.EdgeFlags(nil)
	if hasPrev || hasNext {
		t.Error("Empty collection should have no edges")
	}
}

func TestFallbackAfterRemove(t *testing.T) {
	tests := []struct {
		name    string
		removed int
		ids     []int
		want    int
	}{
		{"middle removed, next wins", 1, []int{0, 2}, 2},
		{"last removed, previous wins", 2, []int{0, 1}, 1},
		{"only entry removed", 0, []int{}, NoSelection},
		{"first removed", 0, []int{1, 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewCursor()
			if got := cur.FallbackAfterRemove(tt.removed, tt.ids); got != tt.want {
				t.Errorf("FallbackAfterRemove(%d, %v) = %d, want %d", tt.removed, tt.ids, got, tt.want)
			}
		})
	}
}

func TestDeleteDuringNavigationScenario(t *testing.T) {
	c := Build(testEntries("/p/a.png", "/p/b.png", "/p/c.png"))
	cur := NewCursor()
	if err := cur.Select(1, c.Ids()); err != nil {
		t.Fatal(err)
	}

	if err := c.Remove(1); err != nil {
		t.Fatal(err)
	}

	got := cur.FallbackAfterRemove(1, c.Ids())
	if got != 0 && got != 2 {
		t.Errorf("Cursor must land on a live id, got %d", got)
	}
	if _, err := c.Get(1); !berrors.Is(err, berrors.ErrNotFound) {
		t.Errorf("Get(1) should be ErrNotFound after delete, got %v", err)
	}
}
