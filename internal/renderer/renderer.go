package renderer

import (
	"github.com/dshills/clack/internal/config"
	"github.com/dshills/clack/internal/renderer/backend"
	"github.com/dshills/clack/internal/renderer/core"
	"github.com/dshills/clack/internal/renderer/layout"
	"github.com/dshills/clack/internal/renderer/theme"
)

// DefaultFileName is shown in the header when no file is bound.
const DefaultFileName = "Untitled.md"

// Screen is everything one frame shows besides the document rows.
type Screen struct {
	Frame *layout.Frame

	FileName string
	Modified bool

	Typewriter bool
	Focus      bool
	Sound      bool

	Words int
	Chars int
	Page  int

	// Status replaces the key hints while non-empty.
	Status      string
	StatusError bool

	Help bool
}

// Renderer paints screens onto a backend.
type Renderer struct {
	backend backend.Backend
	theme   *theme.Theme
	cfg     config.LayoutConfig
}

// New creates a renderer.
func New(b backend.Backend, th *theme.Theme, cfg config.LayoutConfig) *Renderer {
	if th == nil {
		th = theme.New(theme.Dark)
	}
	return &Renderer{backend: b, theme: th, cfg: cfg}
}

// SetTheme replaces the palette used by subsequent draws.
func (r *Renderer) SetTheme(th *theme.Theme) {
	if th != nil {
		r.theme = th
	}
}

// Theme returns the current palette.
func (r *Renderer) Theme() *theme.Theme {
	return r.theme
}

// BodySize returns the area between header and footer.
func (r *Renderer) BodySize() (width, height int) {
	w, h := r.backend.Size()
	return max(w, 0), max(h-2, 0)
}

// Draw paints a complete frame and flushes it.
func (r *Renderer) Draw(s Screen) {
	w, h := r.backend.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.backend.Fill(core.RectFromSize(0, 0, h, w), core.NewStyledCell(' ', core.NewStyle(r.theme.Text, r.theme.Desk)))

	r.drawHeader(s, w)
	if s.Frame != nil && h > 2 {
		r.drawPaper(s.Frame, w, h-2)
	}
	if h > 1 {
		r.drawFooter(s, w, h-1)
	}

	if s.Help {
		r.drawHelp(w, h)
		r.backend.HideCursor()
	} else {
		r.placeCursor(s.Frame, w, h-2)
	}

	r.backend.Show()
}

// text writes s from column x on row y, stopping before limit, and returns
// the column after the last cell written.
func (r *Renderer) text(x, y, limit int, s string, style core.Style) int {
	for _, ch := range s {
		cw := cellWidth(ch)
		if x+cw > limit {
			break
		}
		r.backend.SetCell(x, y, core.Cell{Rune: displayRune(ch), Width: cw, Style: style})
		x += cw
	}
	return x
}

// cellWidth is the number of terminal columns a document rune occupies.
// Control and zero-width runes take one column so every character keeps a
// visible position for the cursor.
func cellWidth(ch rune) int {
	return max(core.RuneWidth(ch), 1)
}

func displayRune(ch rune) rune {
	if core.RuneWidth(ch) == 0 {
		return ' '
	}
	return ch
}
