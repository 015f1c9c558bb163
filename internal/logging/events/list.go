package events

import "github.com/atomicstack/searchlist/internal/logging"

type SectionTracer struct{}

type FilterTracer struct{}

type CacheTracer struct{}

var (
	Section = SectionTracer{}
	Filter  = FilterTracer{}
	Cache   = CacheTracer{}
)

func (SectionTracer) Select(title string, items int) {
	logging.Trace("section.select", map[string]interface{}{"section": title, "items": items})
}

func (SectionTracer) Reset(title string, items int, aggregate bool) {
	logging.Trace("section.reset", map[string]interface{}{"section": title, "items": items, "aggregate": aggregate})
}

func (SectionTracer) ResetPage(title string) {
	logging.Trace("section.reset-page", map[string]interface{}{"section": title})
}

// MissingDefault is logged as a warning, not only a trace, because it points
// at a misconfigured screen.
func (SectionTracer) MissingDefault(title string) {
	logging.Warn("default section not found", "section", title)
	logging.Trace("section.missing-default", map[string]interface{}{"section": title})
}

func (SectionTracer) MapChanged(sections, items int) {
	logging.Trace("section.map", map[string]interface{}{"sections": sections, "items": items})
}

func (FilterTracer) Apply(option, section string, before, after int) {
	logging.Trace("filter.apply", map[string]interface{}{
		"option":  option,
		"section": section,
		"before":  before,
		"after":   after,
	})
}

func (FilterTracer) Reject(option, reason string) {
	logging.Trace("filter.reject", map[string]interface{}{"option": option, "reason": reason})
}

func (FilterTracer) Cleared(section string) {
	logging.Trace("filter.clear", map[string]interface{}{"section": section})
}

func (FilterTracer) Survived(option string, matches int) {
	logging.Trace("filter.survive", map[string]interface{}{"option": option, "matches": matches})
}

func (FilterTracer) Dropped(option string) {
	logging.Trace("filter.drop", map[string]interface{}{"option": option})
}

func (CacheTracer) Build(entries int) {
	logging.Trace("cache.build", map[string]interface{}{"entries": entries})
}

func (CacheTracer) Invalidate(reason string) {
	logging.Trace("cache.invalidate", map[string]interface{}{"reason": reason})
}
