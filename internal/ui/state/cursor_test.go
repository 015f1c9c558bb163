package state

import (
	"testing"

	"github.com/atomicstack/searchlist/internal/display"
)

func newTestList(n int) *List {
	items := make([]*display.Value, n)
	for i := range items {
		items[i] = circle(i+1, 1)
	}
	return NewList(display.Map{{Key: circleKey("All"), Items: items}}, Options{})
}

func newLabelledList() *List {
	return NewList(display.Map{
		{Key: circleKey("A"), Items: []*display.Value{circle(1, 1), circle(2, 1)}},
		{Key: circleKey("B"), Items: []*display.Value{circle(3, 1)}},
	}, Options{})
}

func TestMoveCursorHome(t *testing.T) {
	l := newTestList(3)
	l.Cursor = 2
	if !l.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := newTestList(0)
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty list")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	l := newTestList(3)
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
}

func TestMoveCursorSkipsLabelsAndWraps(t *testing.T) {
	l := newLabelledList()
	// [label A, 1, 2, label B, 3]
	if l.Cursor != 1 {
		t.Fatalf("expected initial cursor on first item, got %d", l.Cursor)
	}
	l.MoveCursorDown()
	l.MoveCursorDown()
	if l.Cursor != 4 {
		t.Fatalf("expected label B skipped, got %d", l.Cursor)
	}
	l.MoveCursorDown()
	if l.Cursor != 1 {
		t.Fatalf("expected wrap to first item, got %d", l.Cursor)
	}
	l.MoveCursorUp()
	if l.Cursor != 4 {
		t.Fatalf("expected wrap to last item, got %d", l.Cursor)
	}
	if got := l.Current(); got == nil || got.ID != 3 {
		t.Fatalf("expected current item 3, got %#v", got)
	}
	l.MoveCursorHome()
	if l.Cursor != 1 {
		t.Fatalf("expected home to land past the label, got %d", l.Cursor)
	}
}

func TestCurrentIgnoresLabels(t *testing.T) {
	l := newLabelledList()
	l.Cursor = 0
	if l.Current() != nil {
		t.Fatalf("expected no current value on a label")
	}
	if newTestList(0).Current() != nil {
		t.Fatalf("expected no current value for empty list")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestList(5)
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on second page down")
	}
	if l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(10) {
		t.Fatalf("expected movement back to start")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestList(5)
	l.Cursor = 4
	l.ViewportOffset = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}

	l.Cursor = -1
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", l.Cursor)
	}

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}
}

func TestEnsureCursorVisibleShowsSectionLabel(t *testing.T) {
	l := newLabelledList()
	l.Cursor = 4
	l.ViewportOffset = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected label B kept in view, got offset %d", l.ViewportOffset)
	}
}
