package ui

import (
	"fmt"

	"github.com/atomicstack/searchlist/internal/backend"
	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/logging"
	"github.com/atomicstack/searchlist/internal/logging/events"
	"github.com/atomicstack/searchlist/internal/search"
	"github.com/atomicstack/searchlist/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

type bindingSlot int

const (
	bindingPrimary bindingSlot = iota
	bindingAlternative
)

func (m *Model) handleEnterKey() tea.Cmd {
	item := m.list.Current()
	if item == nil {
		return nil
	}
	events.UI.ItemPress(m.list.Selected.Title, item.Identity(), item.Title())
	if item.OnPress != nil && !item.Pending {
		if cmd := m.execute(item, item.Title(), item.OnPress); cmd != nil {
			return cmd
		}
	}
	m.showDetail(item)
	return nil
}

func (m *Model) runBinding(slot bindingSlot) tea.Cmd {
	item := m.list.Current()
	if item == nil {
		return nil
	}
	binding, name := item.Primary, "primary"
	if slot == bindingAlternative {
		binding, name = item.Alternative, "alternative"
	}
	if !binding.Bound() {
		m.setInfo(fmt.Sprintf("No %s action for %s", name, item.Title()))
		return nil
	}
	if item.Pending {
		m.setInfo(fmt.Sprintf("%s is still in progress", item.Title()))
		return nil
	}
	label := binding.Text
	if label == "" {
		label = name
	}
	return m.execute(item, label, binding.Action)
}

func (m *Model) execute(item *display.Value, label string, action display.Action) tea.Cmd {
	cmd := m.bus.Execute(command.Request{
		ID:     item.Identity(),
		Label:  label,
		Action: action,
		Value:  item,
	})
	if cmd != nil {
		m.errMsg = ""
		m.forceClearInfo()
	}
	return cmd
}

func (m *Model) showDetail(item *display.Value) {
	if detail := item.Detail(); detail != "" {
		m.setInfo(fmt.Sprintf("%s: %s", item.Title(), detail))
		return
	}
	m.setInfo(item.Title())
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.ActionResult)
	if !ok {
		return nil
	}
	if result.Value != nil {
		result.Value.Pending = false
	}
	if result.Err != nil {
		m.errMsg = backend.Notification(result.Err)
		m.forceClearInfo()
		logging.Error(result.Err)
		events.Action.Error(result.Err)
		return nil
	}
	events.Action.Success(result.Info)
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	return nil
}

func (m *Model) handleDebounceMsg(msg tea.Msg) tea.Cmd {
	debounce, ok := msg.(search.DebounceMsg)
	if !ok {
		return nil
	}
	cmd := m.executor.HandleDebounce(m.list, debounce, m)
	m.syncViewport()
	return cmd
}

func (m *Model) handleSearchResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(search.ResultMsg)
	if !ok {
		return nil
	}
	if m.executor.HandleResult(m.list, result, m) {
		m.errMsg = ""
	}
	m.syncViewport()
	return nil
}
