package layout

import (
	"fmt"

	"github.com/dshills/clack/internal/markup"
)

// SeparatorRune fills the page separator on both sides of the label.
const SeparatorRune = '─'

// wrap appends the rows of one logical line. Runs are split at exactly
// width characters regardless of word boundaries; an empty line still
// produces one row.
func wrap(dst []VisualLine, runs []markup.Run, line int, dimmed bool, width int) []VisualLine {
	cur := VisualLine{Kind: KindText, Line: line}
	for _, run := range runs {
		for _, r := range run.Text {
			if len(cur.Cells) == width {
				dst = append(dst, cur)
				cur = VisualLine{Kind: KindText, Line: line, Cells: make([]Cell, 0, width)}
			}
			cur.Cells = append(cur.Cells, Cell{Rune: r, Emphasis: run.Emphasis, Dimmed: dimmed})
		}
	}
	return append(dst, cur)
}

func blankLine() VisualLine {
	return VisualLine{Kind: KindBlank, Line: -1}
}

// separator builds the centered " Page n " row. The label is truncated
// when the paper is narrower than it.
func separator(page, width int) VisualLine {
	label := []rune(fmt.Sprintf(" Page %d ", page))
	if len(label) > width {
		label = label[:width]
	}
	left := (width - len(label)) / 2
	right := width - len(label) - left

	cells := make([]Cell, 0, width)
	for range left {
		cells = append(cells, Cell{Rune: SeparatorRune, Emphasis: markup.Marker})
	}
	for _, r := range label {
		cells = append(cells, Cell{Rune: r, Emphasis: markup.Marker})
	}
	for range right {
		cells = append(cells, Cell{Rune: SeparatorRune, Emphasis: markup.Marker})
	}
	return VisualLine{Cells: cells, Kind: KindPageBreak, Line: -1}
}
