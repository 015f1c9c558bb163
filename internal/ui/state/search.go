package state

import (
	"encoding/json"
	"strings"

	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/logging/events"
)

// Request describes one remote search issued by the list. Generation ties
// the eventual response back to the list state that asked for it.
type Request struct {
	Generation  uint64
	Key         display.Key
	Term        string
	Filter      string
	IgnoreCache bool

	previous string
}

// CheckSearch validates a prospective term against the current selection.
// It never mutates the list.
func (l *List) CheckSearch(term string) error {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return ErrEmptyTerm
	}
	if !l.Selected.Searchable() {
		return ErrSearchDisabled
	}
	if last := strings.ToLower(l.LastEmptyTerm); last != "" && strings.Contains(strings.ToLower(trimmed), last) {
		return ErrFutileRefinement
	}
	return nil
}

// BeginSearch records term as the active search and issues a new request
// generation. Any earlier request becomes stale.
func (l *List) BeginSearch(term string) (Request, error) {
	if err := l.CheckSearch(term); err != nil {
		events.Search.Reject(l.Selected.Title, term, err.Error())
		return Request{}, err
	}
	l.generation++
	req := Request{
		Generation:  l.generation,
		Key:         l.Selected,
		Term:        strings.TrimSpace(term),
		Filter:      l.Selected.SearchFilter,
		IgnoreCache: l.ignoreCache,
		previous:    l.SearchTerm,
	}
	l.ignoreCache = false
	l.SearchTerm = req.Term
	events.Search.Dispatch(req.Key.Title, req.Term, req.Generation)
	return req, nil
}

// Latest reports whether req is the most recently issued request.
func (l *List) Latest(req Request) bool {
	return req.Generation == l.generation
}

func (l *List) stale(req Request) bool {
	if l.Latest(req) {
		return false
	}
	events.Search.Stale(req.Term, req.Generation, l.generation)
	return true
}

// ApplyEmpty handles the server's explicit empty-result signal. The term is
// remembered so longer refinements of it are refused without a request.
func (l *List) ApplyEmpty(req Request) bool {
	if l.stale(req) {
		return false
	}
	l.LastEmptyTerm = req.Term
	l.Full = []*display.Value{}
	l.setItems(nil)
	events.Search.Empty(req.Key.Title, req.Term)
	return true
}

// ApplyResults reconciles a match list with the identity cache. Items whose
// identity is already known reuse the existing instance so bound state such
// as Pending survives; the rest are bound to the section defaults. An applied
// filter survives only when at least one result satisfies it.
func (l *List) ApplyResults(req Request, payloads []json.RawMessage) bool {
	if l.stale(req) {
		return false
	}
	cache := l.ensureCache()
	resultType := req.Key.SearchType.ResultType()
	results := make([]*display.Value, 0, len(payloads))
	reused := 0
	for _, raw := range payloads {
		id := req.Key.Identify(resultType, raw)
		if id > 0 {
			if existing, ok := cache[display.IdentityOf(resultType, id)]; ok {
				results = append(results, existing)
				reused++
				continue
			}
		}
		results = append(results, req.Key.BindResult(raw))
	}
	events.Search.Results(req.Key.Title, req.Term, len(results), reused)

	l.Full = results
	if l.Applied != nil {
		filtered := l.filter(results, *l.Applied)
		if matches := countItems(filtered); matches > 0 {
			events.Filter.Survived(l.Applied.Option, matches)
			l.setItems(filtered)
			return true
		}
		events.Filter.Dropped(l.Applied.Option)
		l.Applied = nil
	}
	l.setItems(CloneValues(results))
	return true
}

// ApplyFailure records a failed request. The displayed items are left as
// they were, the previous search term is restored and a pending cache bypass
// is carried over to the next request.
func (l *List) ApplyFailure(req Request, err error) bool {
	if l.stale(req) {
		return false
	}
	l.SearchTerm = req.previous
	if req.IgnoreCache {
		l.ignoreCache = true
	}
	events.Search.Failure(req.Key.Title, req.Term, err)
	return true
}
