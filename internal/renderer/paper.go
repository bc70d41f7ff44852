package renderer

import (
	"github.com/dshills/clack/internal/renderer/core"
	"github.com/dshills/clack/internal/renderer/layout"
)

// Border and guide glyphs.
const (
	borderRune = '│'
	guideRune  = '┆'
)

// bodyTop is the first screen row below the header.
const bodyTop = 1

// paperLeft returns the screen column of the paper's left edge. The paper
// is centered when the screen is wider than it.
func paperLeft(f *layout.Frame, width int) int {
	if width > f.PaperWidth {
		return (width - f.PaperWidth) / 2
	}
	return 0
}

// textOrigin returns the screen position of the first text cell.
func (r *Renderer) textOrigin(f *layout.Frame, width int) (x, y int) {
	return paperLeft(f, width) + 1 + r.cfg.PadLeft, bodyTop + r.cfg.PadTop
}

func (r *Renderer) drawPaper(f *layout.Frame, width, height int) {
	th := r.theme
	left := paperLeft(f, width)
	right := left + f.PaperWidth // exclusive

	r.backend.Fill(core.RectFromSize(bodyTop, left, height, f.PaperWidth), core.NewStyledCell(' ', th.PaperStyle()))

	if r.cfg.FancyBorders && f.PaperWidth >= 2 {
		border := core.NewStyle(th.Border, th.Paper)
		for y := bodyTop; y < bodyTop+height; y++ {
			r.backend.SetCell(left, y, core.Cell{Rune: borderRune, Width: 1, Style: border})
			r.backend.SetCell(right-1, y, core.Cell{Rune: borderRune, Width: 1, Style: border})
		}
	}

	textX, textY := r.textOrigin(f, width)
	limit := right - 1
	rows := min(f.InnerHeight, height-r.cfg.PadTop)

	if f.MarginColumn >= 0 && textX+f.MarginColumn < limit {
		guide := core.NewStyle(th.Guide, th.Paper)
		for i := 0; i < rows; i++ {
			r.backend.SetCell(textX+f.MarginColumn, textY+i, core.Cell{Rune: guideRune, Width: 1, Style: guide})
		}
	}

	for i, line := range f.Visible() {
		if i >= rows {
			break
		}
		x := textX
		for _, c := range line.Cells {
			cw := cellWidth(c.Rune)
			if x+cw > limit {
				break
			}
			style := th.RunStyle(c.Emphasis, c.Dimmed)
			r.backend.SetCell(x, textY+i, core.Cell{Rune: displayRune(c.Rune), Width: cw, Style: style})
			x += cw
		}
	}
}

// placeCursor shows the terminal cursor at the frame's cursor, or hides it
// when the cursor row is scrolled out of view.
func (r *Renderer) placeCursor(f *layout.Frame, width, height int) {
	if f == nil || !f.CursorVisible() || f.CursorRow >= len(f.Lines) {
		r.backend.HideCursor()
		return
	}

	textX, textY := r.textOrigin(f, width)
	y := textY + f.CursorRow - f.ScrollOffset
	if y >= bodyTop+height {
		r.backend.HideCursor()
		return
	}

	x := textX
	cells := f.Lines[f.CursorRow].Cells
	for i := 0; i < f.CursorCol; i++ {
		if i < len(cells) {
			x += cellWidth(cells[i].Rune)
		} else {
			x++
		}
	}
	r.backend.ShowCursor(min(x, width-1), y)
}
