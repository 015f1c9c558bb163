package dispatcher

import (
	"encoding/json"

	"github.com/atomicstack/searchlist/internal/backend"
	"github.com/atomicstack/searchlist/internal/logging"
	"github.com/atomicstack/searchlist/internal/logging/events"
	"github.com/atomicstack/searchlist/internal/state"
)

// Saver persists section payloads between runs.
type Saver interface {
	Save(screen, section string, items []json.RawMessage) error
}

type Result struct {
	Section string
	Updated bool
	Err     error
}

type Dispatcher struct {
	screen    string
	sections  state.SectionStore
	snapshots Saver
}

// New creates a dispatcher for screen. snapshots may be nil.
func New(screen string, s state.SectionStore, snapshots Saver) *Dispatcher {
	return &Dispatcher{screen: screen, sections: s, snapshots: snapshots}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	res := Result{Section: evt.Section}
	if evt.Err != nil {
		events.Backend.Error(evt.Section, evt.Err)
		res.Err = evt.Err
		return res
	}
	res.Updated = d.sections.SetItems(evt.Section, evt.Data)
	events.Backend.Update(evt.Section, len(evt.Data), res.Updated)
	if res.Updated && d.snapshots != nil {
		if err := d.snapshots.Save(d.screen, evt.Section, evt.Data); err != nil {
			logging.Error(err)
		}
	}
	return res
}
