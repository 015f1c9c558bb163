package ui

import (
	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.picker != nil {
		return m.handlePickerKey(keyMsg)
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "ctrl+p":
		return m.runBinding(bindingPrimary)
	case "ctrl+o":
		return m.runBinding(bindingAlternative)
	case "ctrl+s":
		m.openSectionPicker()
		return nil
	case "ctrl+f":
		m.openFilterPicker()
		return nil
	case "ctrl+x":
		m.clearFilter()
		return nil
	case "ctrl+r":
		m.resetPage()
		return nil
	case "tab":
		m.cycleSection(1)
		return nil
	case "shift+tab":
		m.cycleSection(-1)
		return nil
	case "up":
		m.moveCursor(m.list.MoveCursorUp)
		return nil
	case "down":
		m.moveCursor(m.list.MoveCursorDown)
		return nil
	case "pgup":
		m.moveCursor(func() bool { return m.list.MoveCursorPageUp(m.maxVisibleItems()) })
		return nil
	case "pgdown":
		m.moveCursor(func() bool { return m.list.MoveCursorPageDown(m.maxVisibleItems()) })
		return nil
	case "home":
		m.moveCursor(m.list.MoveCursorHome)
		return nil
	case "end":
		m.moveCursor(m.list.MoveCursorEnd)
		return nil
	}
	_, cmd := m.handleTextInput(keyMsg)
	return cmd
}

func (m *Model) handleEscapeKey() tea.Cmd {
	if m.query.Text == "" && !m.list.Searching() {
		return tea.Quit
	}
	m.resetQuery()
	m.list.ClearSearch()
	m.errMsg = ""
	m.forceClearInfo()
	m.syncViewport()
	return nil
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		events.UI.Cursor(m.list.Selected.Title, m.list.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	if m.list == nil {
		return
	}
	m.list.EnsureCursorVisible(m.maxVisibleItems())
}

// cycleSection steps through the section tabs in multi-list mode.
func (m *Model) cycleSection(dir int) {
	if !m.list.Options().MultiList {
		return
	}
	tabs := m.list.Tabs()
	if len(tabs) <= 1 {
		return
	}
	current := m.list.Selected.Title
	idx := 0
	for i, title := range tabs {
		if title == current {
			idx = i
			break
		}
	}
	next := ((idx+dir)%len(tabs) + len(tabs)) % len(tabs)
	m.selectSection(tabs[next])
}

func (m *Model) clearFilter() {
	if m.list.Applied == nil {
		return
	}
	m.resetQuery()
	m.list.ClearFilter()
	m.errMsg = ""
	m.syncViewport()
}

// resetPage recovers from an empty or stale view: it clears narrowing,
// forgets the last empty search and re-selects the current section.
func (m *Model) resetPage() {
	title := m.list.Selected.Title
	if m.list.Aggregate() || title == display.DefaultTitle {
		title = ""
	}
	m.resetQuery()
	if err := m.list.ResetPage(title); err != nil {
		m.notifyRejection(err)
		return
	}
	m.errMsg = ""
	m.setInfo("Page reset.")
	m.syncViewport()
}
