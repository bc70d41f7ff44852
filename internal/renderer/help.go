package renderer

import (
	"github.com/dshills/clack/internal/renderer/core"
)

// helpEntry is one key binding shown in the help overlay.
type helpEntry struct {
	keys   string
	action string
}

var helpEntries = []helpEntry{
	{"Esc / Ctrl+Q", "Close help, quit"},
	{"Ctrl+S", "Save"},
	{"F1", "Toggle this help"},
	{"F2", "Focus mode"},
	{"F3 / Ctrl+T", "Typewriter mode"},
	{"F4", "Sound"},
	{"F5", "Cycle theme"},
	{"F6", "Double spacing"},
	{"Ctrl+Left/Right", "Previous / next word"},
	{"Home / End", "Line start / end"},
}

const (
	helpTitle   = " Help "
	helpKeyCols = 18
)

// helpSize returns the overlay box size including its border.
func helpSize() (width, height int) {
	widest := 0
	for _, e := range helpEntries {
		widest = max(widest, core.StringWidth(e.action))
	}
	return helpKeyCols + widest + 4, len(helpEntries) + 4
}

// drawHelp paints the key binding box centered on the screen. It is
// clipped on screens smaller than the box.
func (r *Renderer) drawHelp(width, height int) {
	th := r.theme
	bw, bh := helpSize()
	bw, bh = min(bw, width), min(bh, height)
	if bw < 2 || bh < 2 {
		return
	}
	left, top := (width-bw)/2, (height-bh)/2
	right, bottom := left+bw-1, top+bh-1

	box := r.barStyle()
	frame := core.NewStyle(th.Accent, th.HeaderBg)
	r.backend.Fill(core.RectFromSize(top, left, bh, bw), core.NewStyledCell(' ', box))

	for x := left + 1; x < right; x++ {
		r.backend.SetCell(x, top, core.Cell{Rune: '─', Width: 1, Style: frame})
		r.backend.SetCell(x, bottom, core.Cell{Rune: '─', Width: 1, Style: frame})
	}
	for y := top + 1; y < bottom; y++ {
		r.backend.SetCell(left, y, core.Cell{Rune: '│', Width: 1, Style: frame})
		r.backend.SetCell(right, y, core.Cell{Rune: '│', Width: 1, Style: frame})
	}
	r.backend.SetCell(left, top, core.Cell{Rune: '┌', Width: 1, Style: frame})
	r.backend.SetCell(right, top, core.Cell{Rune: '┐', Width: 1, Style: frame})
	r.backend.SetCell(left, bottom, core.Cell{Rune: '└', Width: 1, Style: frame})
	r.backend.SetCell(right, bottom, core.Cell{Rune: '┘', Width: 1, Style: frame})

	titleX := left + (bw-core.StringWidth(helpTitle))/2
	r.text(max(titleX, left+1), top, right, helpTitle, frame.Bold())

	for i, e := range helpEntries {
		y := top + 2 + i
		if y >= bottom {
			break
		}
		r.text(left+2, y, right, e.keys, box.Bold())
		r.text(left+2+helpKeyCols, y, right, e.action, box)
	}
}
