package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/format/table"
	"github.com/charmbracelet/lipgloss"
)

const pendingMarker = "(pending…)"

var columnLayout = []table.Column{
	{Align: table.AlignLeft, Max: 40},
	{Align: table.AlignLeft, Max: 48},
	{Align: table.AlignRight},
	{Align: table.AlignLeft},
}

// itemColumns renders one value as title, detail, metadata and action hint
// cells. LABEL values are section sub-headers and have no columns.
func itemColumns(v *display.Value) []string {
	var meta string
	switch v.Type {
	case display.TypeLabel:
		return nil
	case display.TypeCircle:
		meta = countField(v, "memberCount", "member", "members")
	case display.TypePartner:
		meta = countField(v, "mutualCircles", "shared circle", "shared circles")
	case display.TypePrayerRequest:
		meta = countField(v, "prayerCount", "prayer", "prayers")
	case display.TypeContentArchive:
		meta = strings.ToLower(strings.TrimSpace(v.Field("mediaType").String()))
	case display.TypeCircleAnnouncement:
		meta = strings.TrimSpace(v.Field("startDate").String())
	default:
		meta = v.Type.String()
	}
	return []string{v.Title(), v.Detail(), meta, actionHints(v)}
}

func countField(v *display.Value, path, singular, plural string) string {
	res := v.Field(path)
	if !res.Exists() {
		return ""
	}
	n := res.Int()
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func actionHints(v *display.Value) string {
	if v.Pending {
		return pendingMarker
	}
	hints := make([]string, 0, 2)
	for _, binding := range []display.Binding{v.Primary, v.Alternative} {
		if binding.Bound() && binding.Text != "" {
			hints = append(hints, "["+binding.Text+"]")
		}
	}
	return strings.Join(hints, " ")
}

// renderItems returns the text of each value with the columns of
// consecutive non-label values aligned.
func renderItems(items []*display.Value) []string {
	out := make([]string, len(items))
	rows := make([][]string, 0, len(items))
	idx := make([]int, 0, len(items))
	for i, item := range items {
		if item.IsLabel() {
			out[i] = item.Title()
			continue
		}
		rows = append(rows, itemColumns(item))
		idx = append(idx, i)
	}
	for i, text := range table.Format(rows, columnLayout) {
		out[idx[i]] = strings.TrimRight(text, " ")
	}
	return out
}

// itemStyle picks the style of an unselected value.
func itemStyle(v *display.Value) *lipgloss.Style {
	switch {
	case v.IsLabel():
		return styles.SectionLabel
	case v.Pending:
		return styles.Pending
	default:
		return styles.ForType(v.Type.String())
	}
}
