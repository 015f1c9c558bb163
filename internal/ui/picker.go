package ui

import (
	"fmt"

	"github.com/atomicstack/searchlist/internal/logging/events"
	uistate "github.com/atomicstack/searchlist/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type pickerKind int

const (
	pickSection pickerKind = iota
	pickFilter
)

func (k pickerKind) String() string {
	if k == pickFilter {
		return "filter"
	}
	return "section"
}

// picker is a fuzzy-narrowed choice between a fixed set of options.
type picker struct {
	kind    pickerKind
	title   string
	options []string
	matches []string
	cursor  int
	query   uistate.Query
}

func newPicker(kind pickerKind, title string, options []string, current string) *picker {
	p := &picker{kind: kind, title: title, options: options}
	p.refresh()
	for i, option := range p.matches {
		if option == current {
			p.cursor = i
			break
		}
	}
	return p
}

func (p *picker) refresh() {
	p.matches = uistate.MatchOptions(p.options, p.query.Text)
	if p.query.Text != "" {
		p.cursor = 0
	}
	if p.cursor >= len(p.matches) {
		p.cursor = len(p.matches) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *picker) move(delta int) {
	n := len(p.matches)
	if n == 0 {
		return
	}
	p.cursor = ((p.cursor+delta)%n + n) % n
}

func (p *picker) choice() (string, bool) {
	if len(p.matches) == 0 {
		return "", false
	}
	return p.matches[p.cursor], true
}

func (m *Model) openSectionPicker() {
	tabs := m.list.Tabs()
	if len(tabs) <= 1 {
		m.setInfo("This screen has a single section.")
		return
	}
	m.openPicker(newPicker(pickSection, "Section", tabs, m.list.Selected.Title))
}

func (m *Model) openFilterPicker() {
	options := m.list.Options().FilterOptions
	if len(options) == 0 {
		m.setInfo("No filters are available on this screen.")
		return
	}
	current := ""
	if m.list.Applied != nil {
		current = m.list.Applied.Option
	}
	m.openPicker(newPicker(pickFilter, "Filter", options, current))
}

func (m *Model) openPicker(p *picker) {
	m.picker = p
	m.executor.Cancel()
	m.filterCursorDirty = true
	if p.kind == pickFilter {
		m.mode = ModeFilterPicker
	} else {
		m.mode = ModeSectionPicker
	}
}

func (m *Model) closePicker() {
	m.picker = nil
	m.mode = ModeList
	m.filterCursorDirty = true
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	p := m.picker
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.closePicker()
		return nil
	case "up", "shift+tab":
		p.move(-1)
		return nil
	case "down", "tab":
		p.move(1)
		return nil
	case "enter":
		choice, ok := p.choice()
		if !ok {
			m.setInfo(fmt.Sprintf("No %s matches %q", p.kind, p.query.Text))
			return nil
		}
		m.closePicker()
		events.UI.Picker(p.kind.String(), choice)
		if p.kind == pickFilter {
			m.applyFilter(choice)
		} else {
			m.selectSection(choice)
		}
		return nil
	}
	_, cmd := m.handleTextInput(msg)
	return cmd
}

func (m *Model) selectSection(title string) {
	m.resetQuery()
	if err := m.list.SelectSection(title); err != nil {
		m.notifyRejection(err)
		return
	}
	m.errMsg = ""
	m.syncViewport()
}

func (m *Model) applyFilter(option string) {
	if err := m.list.ApplyFilter(option); err != nil {
		m.notifyRejection(err)
		return
	}
	m.errMsg = ""
	m.syncViewport()
}

func (m *Model) notifyRejection(err error) {
	if uistate.IsRejection(err) {
		m.setInfo(err.Error())
		return
	}
	m.Failure(err)
}
