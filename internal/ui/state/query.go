package state

import "unicode"

// Query is an editable line of text with a rune-indexed cursor. It backs the
// search prompt and the picker prompts.
type Query struct {
	Text   string
	Cursor int
}

// Set replaces the text and clamps the cursor.
func (q *Query) Set(text string, cursor int) {
	q.Text = text
	q.Cursor = cursor
	q.Cursor = q.Pos()
}

// Pos returns the clamped rune offset of the cursor.
func (q *Query) Pos() int {
	runes := []rune(q.Text)
	if q.Cursor < 0 {
		return 0
	}
	if q.Cursor > len(runes) {
		return len(runes)
	}
	return q.Cursor
}

// Clear empties the query. It reports whether anything changed.
func (q *Query) Clear() bool {
	if q.Text == "" && q.Cursor == 0 {
		return false
	}
	q.Text = ""
	q.Cursor = 0
	return true
}

// Insert inserts text at the cursor.
func (q *Query) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(q.Text)
	pos := q.Pos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	q.Set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes the rune before the cursor.
func (q *Query) DeleteRuneBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	q.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (q *Query) DeleteWordBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	q.Set(string(updated), i)
	return true
}

func (q *Query) MoveStart() bool {
	if q.Pos() == 0 {
		return false
	}
	q.Cursor = 0
	return true
}

func (q *Query) MoveEnd() bool {
	end := len([]rune(q.Text))
	if q.Pos() == end {
		return false
	}
	q.Cursor = end
	return true
}

func (q *Query) MoveWordBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	q.Cursor = i
	return true
}

func (q *Query) MoveWordForward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	q.Cursor = i
	return true
}

func (q *Query) MoveRuneBackward() bool {
	pos := q.Pos()
	if pos == 0 {
		return false
	}
	q.Cursor = pos - 1
	return true
}

func (q *Query) MoveRuneForward() bool {
	pos := q.Pos()
	if pos >= len([]rune(q.Text)) {
		return false
	}
	q.Cursor = pos + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
