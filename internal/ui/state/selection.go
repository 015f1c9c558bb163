package state

import (
	"fmt"
	"strings"

	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/logging/events"
)

// SelectSection makes the titled section active, replacing the displayed
// items with that section's items and clearing any filter or search.
// Selecting display.DefaultTitle returns to the aggregate view.
func (l *List) SelectSection(title string) error {
	section, ok := l.displayMap.Find(title)
	if !ok && title != display.DefaultTitle {
		events.Section.Select(title, -1)
		return fmt.Errorf("%w: %q", ErrUnknownSection, title)
	}
	l.clearNarrowing()
	l.invalidateCache("section changed")
	if !ok {
		l.chosen = false
		l.showAggregate()
	} else {
		l.chosen = true
		l.show(section)
	}
	events.Section.Select(title, len(l.Items))
	return nil
}

// ResetToDefault clears search and filter and shows the default view: the
// single supplied section, the chosen section in multi-list mode, the
// configured default section, or the labelled aggregate of all sections.
func (l *List) ResetToDefault() {
	l.clearNarrowing()
	l.showDefault()
	events.Section.Reset(l.Selected.Title, len(l.Items), l.aggregate)
}

// ResetPage is the recovery action for an empty narrowed view. Besides the
// selection reset it drops the identity cache and the remembered empty
// search, and asks the server to bypass its cache on the next search.
func (l *List) ResetPage(title string) error {
	events.Section.ResetPage(title)
	l.invalidateCache("page reset")
	l.LastEmptyTerm = ""
	l.ignoreCache = true
	if strings.TrimSpace(title) == "" {
		l.ResetToDefault()
		return nil
	}
	return l.SelectSection(title)
}

// clearNarrowing drops filter and search state and orphans in-flight requests.
func (l *List) clearNarrowing() {
	l.Applied = nil
	l.SearchTerm = ""
	l.generation++
}
