package display

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/gjson"
)

// Action runs an interaction bound to a display value.
type Action func(*Value) tea.Cmd

// Binding pairs a button caption with its action.
type Binding struct {
	Text   string
	Action Action
}

// Bound reports whether the binding can be triggered.
func (b Binding) Bound() bool {
	return b.Action != nil
}

// Key describes one named section of a display map along with the search
// configuration and default bindings applied to items fetched for it.
type Key struct {
	Title        string
	Type         Type
	SearchType   SearchType
	SearchFilter string
	Route        string
	IDPath       string
	TitlePath    string
	DetailPath   string
	OnPress      Action
	Primary      Binding
	Alternative  Binding
}

// Searchable reports whether remote search is available for the section.
func (k Key) Searchable() bool {
	return k.SearchType != SearchNone && strings.TrimSpace(k.Route) != ""
}

// idPath returns the accessor used to pull a numeric identity out of payloads
// of type t.
func (k Key) idPath(t Type) string {
	if p := strings.TrimSpace(k.IDPath); p != "" {
		return p
	}
	return t.IDField()
}

// Identify extracts the numeric identity of a raw payload using the
// section-specific accessor. Missing or non-numeric identities yield 0.
func (k Key) Identify(t Type, payload []byte) int {
	path := k.idPath(t)
	if path == "" || !gjson.ValidBytes(payload) {
		return 0
	}
	res := gjson.GetBytes(payload, path)
	switch res.Type {
	case gjson.Number:
		return int(res.Int())
	case gjson.String:
		n := gjson.Parse(strings.TrimSpace(res.Str))
		if n.Type == gjson.Number {
			return int(n.Int())
		}
	}
	return 0
}

// Bind wraps a payload of the given type in a fresh value bound to the
// section's default callbacks.
func (k Key) Bind(t Type, payload []byte) *Value {
	raw := make(json.RawMessage, len(payload))
	copy(raw, payload)
	return &Value{
		Type:        t,
		ID:          k.Identify(t, payload),
		Payload:     raw,
		TitlePath:   k.TitlePath,
		DetailPath:  k.DetailPath,
		OnPress:     k.OnPress,
		Primary:     k.Primary,
		Alternative: k.Alternative,
	}
}

// BindResult binds a remote search payload using the section's search type.
func (k Key) BindResult(payload []byte) *Value {
	return k.Bind(k.SearchType.ResultType(), payload)
}

// Value wraps one renderable item with its interaction bindings.
type Value struct {
	Type        Type
	ID          int
	Payload     json.RawMessage
	Text        string
	TitlePath   string
	DetailPath  string
	OnPress     Action
	Primary     Binding
	Alternative Binding

	// Pending is set while an action triggered from this value is in flight.
	Pending bool
}

// NewLabel builds a LABEL pseudo-item used as a section sub-header.
func NewLabel(text string) *Value {
	return &Value{Type: TypeLabel, Text: text}
}

// IsLabel reports whether v is a section sub-header.
func (v *Value) IsLabel() bool {
	return v != nil && v.Type == TypeLabel
}

// Identity returns the reconciliation key "<TYPE>-<id>".
func (v *Value) Identity() string {
	return IdentityOf(v.Type, v.ID)
}

// IdentityOf formats the reconciliation key for a type and numeric identity.
func IdentityOf(t Type, id int) string {
	return fmt.Sprintf("%s-%d", t, id)
}

// Field reads a value from the payload.
func (v *Value) Field(path string) gjson.Result {
	if v == nil || len(v.Payload) == 0 || path == "" {
		return gjson.Result{}
	}
	return gjson.GetBytes(v.Payload, path)
}

var titleFallbacks = []string{"title", "name", "displayName", "topic", "description"}

// Title returns the primary text of the value.
func (v *Value) Title() string {
	if v == nil {
		return ""
	}
	if v.IsLabel() {
		return v.Text
	}
	if v.TitlePath != "" {
		if res := v.Field(v.TitlePath); res.Exists() {
			return strings.TrimSpace(res.String())
		}
	}
	for _, path := range titleFallbacks {
		if res := v.Field(path); res.Exists() && strings.TrimSpace(res.String()) != "" {
			return strings.TrimSpace(res.String())
		}
	}
	if v.Text != "" {
		return v.Text
	}
	return v.Identity()
}

// Detail returns secondary text configured for the value, if any.
func (v *Value) Detail() string {
	if v == nil || v.DetailPath == "" {
		return ""
	}
	return strings.TrimSpace(v.Field(v.DetailPath).String())
}
