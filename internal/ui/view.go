package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/searchlist/internal/display"
	uistate "github.com/atomicstack/searchlist/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	itemIndicator = "▌"
	loadingText   = "Loading…"
	noResultsText = "No results. Press ctrl+r to reset."
	footerText    = "↑/↓ move  enter open  ctrl+p/ctrl+o actions  tab section  ctrl+f filter  ctrl+r reset  esc quit"
	pickerFooter  = "↑/↓ move  enter choose  esc cancel"
	infoLifetime  = 5 * time.Second
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.picker != nil {
		return m.viewPicker()
	}
	return m.viewList()
}

func (m *Model) viewList() string {
	lines := make([]styledLine, 0, 16)
	if header := m.listHeader(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if tabs := m.tabsLine(); tabs != "" {
		lines = append(lines, styledLine{text: tabs, raw: true})
	}
	m.syncViewport()
	switch m.list.Empty() {
	case uistate.EmptyLoading:
		lines = append(lines, styledLine{text: loadingText, style: styles.Loading})
	case uistate.EmptyNoResults:
		lines = append(lines, styledLine{text: noResultsText, style: styles.Info})
	default:
		start, visible := m.visibleItems()
		for i, text := range renderItems(visible) {
			lines = append(lines, m.buildItemLine(visible[i], text, start+i == m.list.Cursor))
		}
	}
	if warn, msg := m.hasBackendIssue(); warn {
		lines = append(lines, styledLine{text: "Feed error: " + msg, style: styles.Warning})
	}
	lines = m.appendTrailer(lines, footerText)
	return m.finishView(lines)
}

func (m *Model) viewPicker() string {
	p := m.picker
	lines := []styledLine{{text: fmt.Sprintf("Choose %s", strings.ToLower(p.title)), style: styles.Header}}
	if len(p.matches) == 0 {
		lines = append(lines, styledLine{text: fmt.Sprintf("No %s matches %q", p.kind, p.query.Text), style: styles.Info})
	}
	for i, option := range p.matches {
		lineStyle, indicatorStyle := styles.Item, styles.ItemIndicator
		if i == p.cursor {
			lineStyle, indicatorStyle = styles.SelectedItem, styles.SelectedItemIndicator
		}
		lines = append(lines, styledLine{
			text:          padLine(itemIndicator+" "+option, m.width),
			style:         lineStyle,
			prefixStyle:   indicatorStyle,
			highlightFrom: 1,
		})
	}
	lines = m.appendTrailer(lines, pickerFooter)
	return m.finishView(lines)
}

func (m *Model) appendTrailer(lines []styledLine, footer string) []styledLine {
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footer, style: styles.Footer})
	}
	return lines
}

// finishView fits the body above the bottom bar (status line + prompt).
func (m *Model) finishView(lines []styledLine) string {
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottomLines := []styledLine{
		statusLine,
		{text: m.filterPrompt(), raw: true},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

func (m *Model) visibleItems() (int, []*display.Value) {
	items := m.list.Items
	start := 0
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(items) > maxItems {
		start = m.list.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(items) {
			start = len(items) - maxItems
			if start < 0 {
				start = 0
			}
			m.list.ViewportOffset = start
		}
		items = items[start : start+maxItems]
	}
	return start, items
}

// buildItemLine constructs the styledLine for one value. Selected lines are
// padded so the highlight spans the full width.
func (m *Model) buildItemLine(v *display.Value, text string, selected bool) styledLine {
	if v.IsLabel() {
		return styledLine{text: text, style: styles.SectionLabel}
	}
	lineStyle := itemStyle(v)
	indicatorStyle := styles.ItemIndicator
	fullText := itemIndicator + " " + text
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
		fullText = padLine(fullText, m.width)
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func padLine(text string, width int) string {
	if width > 0 {
		if pad := width - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return text
}

func (m *Model) listHeader() string {
	segments := make([]string, 0, 2)
	if title := strings.TrimSpace(m.title); title != "" {
		segments = append(segments, title)
	}
	if !m.list.Aggregate() && len(m.list.DisplayMap()) > 1 && !m.showTabs() {
		segments = append(segments, m.list.Selected.Title)
	}
	header := strings.Join(segments, headerSeparator)
	var badges []string
	if m.list.Searching() {
		badges = append(badges, fmt.Sprintf("search %q", m.list.SearchTerm))
	}
	if m.list.Applied != nil {
		badges = append(badges, fmt.Sprintf("[%s]", m.list.Applied.Option))
	}
	if len(badges) == 0 {
		return header
	}
	if header == "" {
		return strings.Join(badges, "  ")
	}
	return header + "  " + strings.Join(badges, "  ")
}

func (m *Model) showTabs() bool {
	return m.list.Options().MultiList && len(m.list.Tabs()) > 1
}

func (m *Model) tabsLine() string {
	if !m.showTabs() {
		return ""
	}
	selected := m.list.Selected.Title
	parts := make([]string, 0, len(m.list.Tabs()))
	for _, title := range m.list.Tabs() {
		style := styles.Tab
		if title == selected {
			style = styles.ActiveTab
		}
		if style == nil {
			parts = append(parts, title)
			continue
		}
		parts = append(parts, style.Render(title))
	}
	return strings.Join(parts, " ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + prompt
	if header := m.listHeader(); header != "" {
		used++
	}
	if m.showTabs() {
		used++
	}
	if warn, _ := m.hasBackendIssue(); warn {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoLifetime)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
