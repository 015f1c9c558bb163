package events

import "github.com/atomicstack/searchlist/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) ItemPress(section, identity, title string) {
	logging.Trace("item.press", map[string]interface{}{
		"section":  section,
		"identity": identity,
		"title":    title,
	})
}

func (UITracer) Cursor(section string, cursor int) {
	logging.Trace("list.cursor", map[string]interface{}{"section": section, "cursor": cursor})
}

func (UITracer) Picker(kind, choice string) {
	logging.Trace("picker.choose", map[string]interface{}{"kind": kind, "choice": choice})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
