package state

import "github.com/atomicstack/searchlist/internal/display"

// Current returns the value under the cursor, or nil when the list is empty
// or the cursor rests on a label.
func (l *List) Current() *display.Value {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return nil
	}
	v := l.Items[l.Cursor]
	if v.IsLabel() {
		return nil
	}
	return v
}

// MoveCursorUp moves to the previous selectable item, wrapping at the top.
func (l *List) MoveCursorUp() bool {
	return l.step(-1)
}

// MoveCursorDown moves to the next selectable item, wrapping at the bottom.
func (l *List) MoveCursorDown() bool {
	return l.step(1)
}

func (l *List) step(dir int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	pos := l.Cursor
	for i := 0; i < n; i++ {
		pos = (pos + dir + n) % n
		if !l.Items[pos].IsLabel() {
			l.Cursor = pos
			break
		}
	}
	return l.Cursor != old
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	l.skipLabel(1)
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	l.skipLabel(-1)
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *List) MoveCursorPageUp(maxVisible int) bool {
	moved := l.moveCursorBy(-l.pageSize(maxVisible))
	l.skipLabel(-1)
	return moved
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *List) MoveCursorPageDown(maxVisible int) bool {
	moved := l.moveCursorBy(l.pageSize(maxVisible))
	l.skipLabel(1)
	return moved
}

func (l *List) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != old
}

// skipLabel nudges the cursor off a label, preferring direction dir and
// falling back to the opposite one at the list edge.
func (l *List) skipLabel(dir int) {
	n := len(l.Items)
	if n == 0 || l.Cursor < 0 || l.Cursor >= n || !l.Items[l.Cursor].IsLabel() {
		return
	}
	for _, d := range []int{dir, -dir} {
		for pos := l.Cursor + d; pos >= 0 && pos < n; pos += d {
			if !l.Items[pos].IsLabel() {
				l.Cursor = pos
				return
			}
		}
	}
}

func (l *List) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	// keep the label heading the cursor's section in view when possible
	top := l.Cursor
	if top > 0 && l.Items[top-1].IsLabel() {
		top--
	}
	if top < l.ViewportOffset {
		l.ViewportOffset = top
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset < 0 {
			l.ViewportOffset = 0
		}
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}
