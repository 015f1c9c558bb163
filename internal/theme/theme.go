package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	SectionLabel          *lipgloss.Style
	Pending               *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Warning               *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Tab                   *lipgloss.Style
	ActiveTab             *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	FilterBadge           *lipgloss.Style
	Cursor                *lipgloss.Style
	Types                 map[string]*lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	SectionLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("180")).Bold(true).Underline(true),
	),
	Pending: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Warning: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true).Padding(0, 1),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	FilterBadge: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	Types: map[string]*lipgloss.Style{
		"CIRCLE":              ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("75"))),
		"PARTNER":             ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("114"))),
		"PRAYER_REQUEST":      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("183"))),
		"CONTENT_ARCHIVE":     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("222"))),
		"CIRCLE_ANNOUNCEMENT": ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("209"))),
	},
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// ForType returns the accent style of a display type name, falling back to
// the plain item style.
func (s *Styles) ForType(name string) *lipgloss.Style {
	if style, ok := s.Types[name]; ok && style != nil {
		return style
	}
	return s.Item
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
