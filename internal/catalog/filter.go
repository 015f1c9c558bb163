package catalog

import (
	"fmt"
	"strings"

	"github.com/atomicstack/searchlist/internal/display"
	uistate "github.com/atomicstack/searchlist/internal/ui/state"
	"github.com/tidwall/gjson"
)

// Rule names how a filter evaluates an item payload.
type Rule string

const (
	// RuleEquals keeps items whose field equals Value, ignoring case.
	RuleEquals Rule = "equals"
	// RuleCurrentUser keeps items whose field holds the signed-in user's id.
	RuleCurrentUser Rule = "currentUser"
	// RuleNonEmpty keeps items whose field is present and not empty.
	RuleNonEmpty Rule = "nonEmpty"
)

// Filter is one option offered by the filter picker.
type Filter struct {
	Option string `yaml:"option"`
	Rule   Rule   `yaml:"rule"`
	Field  string `yaml:"field"`
	Value  string `yaml:"value,omitempty"`
}

func (f Filter) validate() error {
	if strings.TrimSpace(f.Field) == "" {
		return fmt.Errorf("field is required")
	}
	switch f.Rule {
	case RuleEquals:
		if f.Value == "" {
			return fmt.Errorf("rule %q needs a value", f.Rule)
		}
	case RuleCurrentUser, RuleNonEmpty:
	default:
		return fmt.Errorf("unknown rule %q", f.Rule)
	}
	return nil
}

func (f Filter) match(item *display.Value, userID int) bool {
	res := item.Field(f.Field)
	if !res.Exists() {
		return false
	}
	switch f.Rule {
	case RuleEquals:
		return strings.EqualFold(strings.TrimSpace(res.String()), f.Value)
	case RuleCurrentUser:
		return userID > 0 && res.Int() == int64(userID)
	case RuleNonEmpty:
		return nonEmpty(res)
	}
	return false
}

func nonEmpty(res gjson.Result) bool {
	switch res.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return strings.TrimSpace(res.Str) != ""
	case gjson.Number:
		return res.Num != 0
	case gjson.JSON:
		if res.IsArray() {
			return len(res.Array()) > 0
		}
		return len(res.Map()) > 0
	}
	return true
}

// Predicate evaluates the screen's filter rules for the signed-in user.
func (s Screen) Predicate(userID int) uistate.Predicate {
	rules := make(map[string]Filter, len(s.Filters))
	for _, f := range s.Filters {
		rules[f.Option] = f
	}
	return func(item *display.Value, applied uistate.Filter) bool {
		if item == nil || item.IsLabel() {
			return false
		}
		rule, ok := rules[applied.Option]
		if !ok {
			return false
		}
		return rule.match(item, userID)
	}
}

// FilterOptions lists the filter options in catalog order.
func (s Screen) FilterOptions() []string {
	options := make([]string, 0, len(s.Filters))
	for _, f := range s.Filters {
		options = append(options, f.Option)
	}
	return options
}

// Options builds the list configuration of the screen.
func (s Screen) Options(userID int) uistate.Options {
	opts := uistate.Options{
		DefaultTitle: s.DefaultSection,
		MultiList:    s.MultiList,
	}
	if len(s.Filters) > 0 {
		opts.FilterOptions = s.FilterOptions()
		opts.Predicate = s.Predicate(userID)
	}
	return opts
}
