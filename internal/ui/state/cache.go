package state

import (
	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/logging/events"
)

// AssembleCache builds an identity lookup over every item in m. Sections are
// walked last to first so earlier sections win when identities collide.
// Labels and items without a positive identity are skipped.
func AssembleCache(m display.Map) map[string]*display.Value {
	cache := make(map[string]*display.Value, m.Total())
	for i := len(m) - 1; i >= 0; i-- {
		for _, item := range m[i].Items {
			if item == nil || item.IsLabel() || item.ID <= 0 {
				continue
			}
			cache[item.Identity()] = item
		}
	}
	return cache
}

// CacheBuilt reports whether the identity cache is currently assembled.
func (l *List) CacheBuilt() bool {
	return l.cache != nil
}

func (l *List) ensureCache() map[string]*display.Value {
	if l.cache == nil {
		l.cache = AssembleCache(l.displayMap)
		events.Cache.Build(len(l.cache))
	}
	return l.cache
}

func (l *List) invalidateCache(reason string) {
	if l.cache == nil {
		return
	}
	l.cache = nil
	events.Cache.Invalidate(reason)
}
