package ui

import (
	"fmt"
	"sort"

	"github.com/atomicstack/searchlist/internal/backend"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent stores fresh feed data and rebinds the display map when
// a section actually changed.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[string]error)
	}
	res := m.dispatcher.Handle(evt)
	m.backendState[evt.Section] = res.Err
	if res.Err == nil && res.Updated {
		m.list.SetDisplayMap(m.buildDisplayMap())
		m.syncViewport()
	}
}

func (m *Model) hasBackendIssue() (bool, string) {
	failing := make([]string, 0, len(m.backendState))
	for section, err := range m.backendState {
		if err != nil {
			failing = append(failing, section)
		}
	}
	if len(failing) == 0 {
		return false, ""
	}
	sort.Strings(failing)
	return true, fmt.Sprintf("%s: %s", failing[0], backend.Notification(m.backendState[failing[0]]))
}
