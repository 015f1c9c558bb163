package events

import "github.com/atomicstack/searchlist/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Screen(name string, sections int) {
	logging.Trace("app.screen", map[string]interface{}{"screen": name, "sections": sections})
}
