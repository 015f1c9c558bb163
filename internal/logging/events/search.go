package events

import "github.com/atomicstack/searchlist/internal/logging"

type SearchTracer struct{}

type BackendTracer struct{}

var (
	Search  = SearchTracer{}
	Backend = BackendTracer{}
)

func (SearchTracer) Input(section, term string, version int) {
	logging.Trace("search.input", map[string]interface{}{"section": section, "term": term, "version": version})
}

func (SearchTracer) Reject(section, term, reason string) {
	logging.Trace("search.reject", map[string]interface{}{"section": section, "term": term, "reason": reason})
}

func (SearchTracer) Dispatch(section, term string, generation uint64) {
	logging.Trace("search.dispatch", map[string]interface{}{"section": section, "term": term, "generation": generation})
}

func (SearchTracer) Empty(section, term string) {
	logging.Trace("search.empty", map[string]interface{}{"section": section, "term": term})
}

func (SearchTracer) Results(section, term string, total, reused int) {
	logging.Trace("search.results", map[string]interface{}{
		"section": section,
		"term":    term,
		"total":   total,
		"reused":  reused,
	})
}

func (SearchTracer) Stale(term string, generation, current uint64) {
	logging.Trace("search.stale", map[string]interface{}{"term": term, "generation": generation, "current": current})
}

func (SearchTracer) Failure(section, term string, err error) {
	if err == nil {
		return
	}
	logging.Trace("search.failure", map[string]interface{}{"section": section, "term": term, "error": err.Error()})
}

func (BackendTracer) Update(section string, items int, changed bool) {
	logging.Trace("backend.update", map[string]interface{}{"section": section, "items": items, "changed": changed})
}

func (BackendTracer) Error(section string, err error) {
	if err == nil {
		return
	}
	logging.Trace("backend.error", map[string]interface{}{"section": section, "error": err.Error()})
}
