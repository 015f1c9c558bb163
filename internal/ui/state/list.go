package state

import (
	"strings"

	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/logging/events"
)

// Filter is the caller-validated narrowing currently applied to the list.
type Filter struct {
	Option       string
	SectionTitle string
}

// Predicate reports whether item satisfies filter. The list never interprets
// filter options itself.
type Predicate func(item *display.Value, filter Filter) bool

// Options configures a List.
type Options struct {
	// DefaultTitle pre-selects a section when several are supplied.
	DefaultTitle string
	// FilterOptions is the allow-list accepted by ApplyFilter.
	FilterOptions []string
	Predicate     Predicate
	// MultiList enables switching between sections with the aggregate view
	// as one of the choices.
	MultiList bool
}

// EmptyState explains why a list has nothing to show.
type EmptyState int

const (
	EmptyNone EmptyState = iota
	EmptyLoading
	EmptyNoResults
)

// List encapsulates the working state of one list screen: the rendered
// values, the active section, and the search and filter narrowing them.
// A List is owned by a single event loop and is not safe for concurrent use.
type List struct {
	Items         []*display.Value
	Full          []*display.Value
	Selected      display.Key
	Applied       *Filter
	SearchTerm    string
	LastEmptyTerm string

	Cursor         int
	LastCursor     int
	ViewportOffset int

	displayMap    display.Map
	opts          Options
	aggregate     bool
	chosen        bool
	warnedDefault bool
	cache         map[string]*display.Value
	generation    uint64
	ignoreCache   bool
}

// NewList constructs a List over m and shows its default view.
func NewList(m display.Map, opts Options) *List {
	l := &List{
		LastCursor: -1,
		displayMap: m,
		opts:       opts,
	}
	l.showDefault()
	return l
}

// DisplayMap returns the caller data the list currently works from.
func (l *List) DisplayMap() display.Map {
	return l.displayMap
}

// Options returns the configuration supplied at construction.
func (l *List) Options() Options {
	return l.opts
}

// Aggregate reports whether the flattened multi-section view is shown.
func (l *List) Aggregate() bool {
	return l.aggregate
}

// Searching reports whether the list shows remote search results.
func (l *List) Searching() bool {
	return l.SearchTerm != ""
}

// Generation returns the token of the most recently issued request.
func (l *List) Generation() uint64 {
	return l.generation
}

// Empty classifies an empty list as loading or as a confirmed empty result.
func (l *List) Empty() EmptyState {
	if len(l.Items) > 0 {
		return EmptyNone
	}
	if l.Applied != nil || l.SearchTerm != "" {
		return EmptyNoResults
	}
	return EmptyLoading
}

// Tabs lists the section choices offered in multi-list mode. The aggregate
// view comes first when more than one section exists.
func (l *List) Tabs() []string {
	titles := l.displayMap.Titles()
	if len(titles) <= 1 {
		return titles
	}
	if _, ok := l.displayMap.Find(display.DefaultTitle); ok {
		return titles
	}
	return append([]string{display.DefaultTitle}, titles...)
}

// SetDisplayMap replaces the caller data. The cache is invalidated and the
// working list rebuilt for the current selection; an applied filter is
// re-derived over the new items. Search results stay until the user clears
// or resets the search.
func (l *List) SetDisplayMap(m display.Map) {
	l.displayMap = m
	l.invalidateCache("display map changed")
	events.Section.MapChanged(len(m), m.Total())
	if l.SearchTerm != "" {
		if section, ok := m.Find(l.Selected.Title); ok && !l.aggregate {
			l.Selected = section.Key
		}
		return
	}
	l.rebuildFiltered()
}

// ClearSearch ends an active search and shows the section list again,
// keeping any applied filter.
func (l *List) ClearSearch() {
	if l.SearchTerm == "" {
		return
	}
	l.SearchTerm = ""
	l.generation++
	l.rebuildFiltered()
}

func (l *List) rebuildFiltered() {
	applied := l.Applied
	l.rebuild()
	if applied != nil {
		l.Applied = applied
		l.setItems(l.filter(l.Full, *applied))
	}
}

// rebuild shows the unfiltered items of the current selection. An aggregate
// view stays aggregate while there is more than one section.
func (l *List) rebuild() {
	if l.aggregate && len(l.displayMap) > 1 {
		l.showAggregate()
		return
	}
	if !l.aggregate {
		if section, ok := l.displayMap.Find(l.Selected.Title); ok {
			l.show(section)
			return
		}
		l.chosen = false
	}
	l.showDefault()
}

// showDefault picks the view used when no section is explicitly requested.
func (l *List) showDefault() {
	if len(l.displayMap) == 1 {
		l.show(l.displayMap[0])
		return
	}
	if l.opts.MultiList && l.chosen {
		if section, ok := l.displayMap.Find(l.Selected.Title); ok {
			l.show(section)
			return
		}
		l.chosen = false
	}
	if title := strings.TrimSpace(l.opts.DefaultTitle); title != "" && title != display.DefaultTitle {
		if section, ok := l.displayMap.Find(title); ok {
			l.show(section)
			return
		}
		if !l.warnedDefault {
			l.warnedDefault = true
			events.Section.MissingDefault(title)
		}
	}
	l.showAggregate()
}

func (l *List) show(section display.Section) {
	l.Selected = section.Key
	l.aggregate = false
	l.Full = CloneValues(section.Items)
	l.setItems(CloneValues(section.Items))
}

func (l *List) showAggregate() {
	l.Selected = display.DefaultKey()
	l.aggregate = true
	l.Full = flatten(l.displayMap.NonEmpty())
	l.setItems(CloneValues(l.Full))
}

func (l *List) setItems(items []*display.Value) {
	if items == nil {
		items = []*display.Value{}
	}
	l.Items = items
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
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
	l.skipLabel(1)
}
