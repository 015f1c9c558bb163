package ui

import (
	"unicode"

	uistate "github.com/atomicstack/searchlist/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	promptSymbol      = "» "
	searchPlaceholder = "(type to search)"
	pickerPlaceholder = "(type to narrow)"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// activeQuery returns the text box receiving keystrokes: the open picker's,
// or the search box.
func (m *Model) activeQuery() *uistate.Query {
	if m.picker != nil {
		return &m.picker.query
	}
	return &m.query
}

// handleTextInput applies editing keys to the active text box. It reports
// whether the key was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	q := m.activeQuery()
	before := q.Text
	beforePos := q.Pos()
	changed := false
	switch msg.String() {
	case "ctrl+u":
		changed = q.Clear()
	case "ctrl+w":
		changed = q.DeleteWordBackward()
	case "ctrl+a":
		changed = q.MoveStart()
	case "ctrl+e":
		changed = q.MoveEnd()
	case "alt+b":
		changed = q.MoveWordBackward()
	case "alt+f":
		changed = q.MoveWordForward()
	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			changed = q.DeleteRuneBackward()
		case tea.KeyLeft:
			changed = q.MoveRuneBackward()
		case tea.KeyRight:
			changed = q.MoveRuneForward()
		case tea.KeySpace:
			changed = q.Insert(" ")
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) == 0 {
				return false, nil
			}
			for _, r := range msg.Runes {
				if unicode.IsControl(r) {
					return false, nil
				}
			}
			changed = q.Insert(string(msg.Runes))
		default:
			return false, nil
		}
	}
	if !changed {
		return true, nil
	}
	if beforePos != q.Pos() || before != q.Text {
		m.filterCursorDirty = true
	}
	if before == q.Text {
		return true, nil
	}
	return true, m.queryChanged()
}

// queryChanged reacts to an edit of the active text box.
func (m *Model) queryChanged() tea.Cmd {
	if m.picker != nil {
		m.picker.refresh()
		return nil
	}
	m.errMsg = ""
	m.forceClearInfo()
	cmd := m.executor.Input(m.list, m.query.Text, m)
	m.syncViewport()
	return cmd
}

// resetQuery empties the search box without triggering a search.
func (m *Model) resetQuery() {
	if m.query.Clear() {
		m.filterCursorDirty = true
	}
	m.executor.Cancel()
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := promptSymbol
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	q := m.activeQuery()
	if q.Text == "" {
		placeholder := searchPlaceholder
		if m.picker != nil {
			placeholder = pickerPlaceholder
		}
		runes := []rune(placeholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(q.Text)
	pos := q.Pos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
