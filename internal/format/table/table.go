// Package table aligns the cells of rendered list rows into columns.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes how one column is laid out. Max caps the column width;
// longer cells are truncated with an ellipsis. Zero means unbounded.
type Column struct {
	Align Alignment
	Max   int
}

const gap = "  "

// Format pads every cell to the widest cell of its column. Columns that are
// empty in every row are dropped so they do not leave a double gap.
func Format(rows [][]string, cols []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	count := 0
	for _, row := range rows {
		if len(row) > count {
			count = len(row)
		}
	}
	widths := make([]int, count)
	for _, row := range rows {
		for c, cell := range row {
			if w := fit(cell, column(cols, c)); w > widths[c] {
				widths[c] = w
			}
		}
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, 0, count)
		for c := 0; c < count; c++ {
			if widths[c] == 0 {
				continue
			}
			cell := ""
			if c < len(row) {
				cell = clip(row[c], column(cols, c))
			}
			pad := strings.Repeat(" ", widths[c]-lipgloss.Width(cell))
			if column(cols, c).Align == AlignRight {
				cells = append(cells, pad+cell)
			} else {
				cells = append(cells, cell+pad)
			}
		}
		out[i] = strings.Join(cells, gap)
	}
	return out
}

func column(cols []Column, c int) Column {
	if c < len(cols) {
		return cols[c]
	}
	return Column{}
}

func fit(cell string, col Column) int {
	w := lipgloss.Width(cell)
	if col.Max > 0 && w > col.Max {
		return col.Max
	}
	return w
}

func clip(cell string, col Column) string {
	if col.Max <= 0 || lipgloss.Width(cell) <= col.Max {
		return cell
	}
	return truncate.StringWithTail(cell, uint(col.Max), "…")
}
