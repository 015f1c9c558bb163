package state

import (
	"fmt"

	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/logging/events"
)

// FilterAllowed reports whether option is in the caller's allow-list.
func (l *List) FilterAllowed(option string) bool {
	if l.opts.Predicate == nil {
		return false
	}
	for _, allowed := range l.opts.FilterOptions {
		if allowed == option {
			return true
		}
	}
	return false
}

// ApplyFilter narrows the list with the caller's predicate. Without an active
// filter the currently displayed items (possibly search results) are narrowed;
// with one, the unfiltered list is narrowed instead so filters never compound.
// Disallowed options and empty lists are rejected and clear the filter.
func (l *List) ApplyFilter(option string) error {
	if !l.FilterAllowed(option) {
		l.dropFilter()
		events.Filter.Reject(option, "not allowed")
		return fmt.Errorf("%w: %q", ErrFilterNotAllowed, option)
	}
	base := l.Items
	if l.Applied != nil {
		base = l.Full
	}
	if len(base) == 0 {
		l.dropFilter()
		events.Filter.Reject(option, "empty list")
		return ErrNothingToFilter
	}
	if l.Applied == nil {
		l.Full = CloneValues(l.Items)
	}
	f := Filter{Option: option, SectionTitle: l.Selected.Title}
	l.Applied = &f
	l.setItems(l.filter(base, f))
	events.Filter.Apply(option, f.SectionTitle, len(base), len(l.Items))
	return nil
}

// ClearFilter restores the unfiltered section list and ends any search.
func (l *List) ClearFilter() {
	section := l.Selected.Title
	l.clearNarrowing()
	l.rebuild()
	events.Filter.Cleared(section)
}

func (l *List) dropFilter() {
	if l.Applied == nil {
		return
	}
	l.Applied = nil
	l.setItems(CloneValues(l.Full))
}

// filter keeps the items satisfying f. A label is kept only when at least
// one item of its section survives.
func (l *List) filter(values []*display.Value, f Filter) []*display.Value {
	out := make([]*display.Value, 0, len(values))
	var label *display.Value
	for _, v := range values {
		if v.IsLabel() {
			label = v
			continue
		}
		if l.opts.Predicate == nil || !l.opts.Predicate(v, f) {
			continue
		}
		if label != nil {
			out = append(out, label)
			label = nil
		}
		out = append(out, v)
	}
	return out
}

func countItems(values []*display.Value) int {
	n := 0
	for _, v := range values {
		if !v.IsLabel() {
			n++
		}
	}
	return n
}
