// Package layout re-flows the document into fixed-width visual lines.
//
// A layout pass is a pure function of the document, the cursor and the
// view flags. Each logical line is parsed for inline emphasis, optionally
// dimmed (focus mode), greedily wrapped to the effective paper width and
// followed by a blank row in double-spacing mode. A page separator is
// inserted after every LinesPerPage logical lines. The pass also maps the
// logical cursor into visual coordinates and picks the scroll offset.
//
// Widths are measured in characters. Wide runes are placed by the
// renderer, which clips at the paper edge.
package layout

import (
	"github.com/dshills/clack/internal/config"
	"github.com/dshills/clack/internal/markup"
)

// Source is the read-only view of the document a layout pass needs.
type Source interface {
	LineCount() int
	LineText(i int) string
	CursorPosition() (col, row int)
}

// View describes the body area and the presentation toggles.
type View struct {
	// Width and Height of the area between header and footer, in cells.
	Width  int
	Height int

	Typewriter    bool
	Focus         bool
	DoubleSpacing bool
}

// Kind distinguishes rows produced by a layout pass.
type Kind uint8

const (
	// KindText is a wrapped segment of a logical line.
	KindText Kind = iota
	// KindBlank is a double-spacing or separator padding row.
	KindBlank
	// KindPageBreak is the " Page n " separator row.
	KindPageBreak
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBlank:
		return "blank"
	case KindPageBreak:
		return "page-break"
	default:
		return "unknown"
	}
}

// Cell is one character position on a visual line.
type Cell struct {
	Rune     rune
	Emphasis markup.Emphasis
	Dimmed   bool
}

// VisualLine is one row of the paper.
type VisualLine struct {
	Cells []Cell
	Kind  Kind

	// Line is the logical line the row came from, or -1 for inserted rows.
	Line int
}

// Text returns the runes of the row.
func (l VisualLine) Text() string {
	rs := make([]rune, len(l.Cells))
	for i, c := range l.Cells {
		rs[i] = c.Rune
	}
	return string(rs)
}

// Frame is the result of a layout pass.
type Frame struct {
	Lines []VisualLine

	CursorRow int
	CursorCol int

	ScrollOffset int

	// PaperWidth includes borders and horizontal padding.
	PaperWidth     int
	EffectiveWidth int
	InnerHeight    int

	// MarginColumn is the column of the margin guide, -1 when hidden.
	MarginColumn int
}

// Visible returns the rows that fit in the viewport after scrolling.
func (f *Frame) Visible() []VisualLine {
	if f.ScrollOffset >= len(f.Lines) || f.InnerHeight <= 0 {
		return nil
	}
	end := f.ScrollOffset + f.InnerHeight
	if end > len(f.Lines) {
		end = len(f.Lines)
	}
	return f.Lines[f.ScrollOffset:end]
}

// CursorVisible reports whether the cursor row lies inside the viewport.
func (f *Frame) CursorVisible() bool {
	return f.CursorRow >= f.ScrollOffset && f.CursorRow < f.ScrollOffset+f.InnerHeight
}

// Engine computes frames for a fixed paper configuration.
type Engine struct {
	cfg          config.LayoutConfig
	linesPerPage int
	bellColumn   int
}

// New creates a layout engine. Invalid configuration values fall back to
// their defaults.
func New(cfg config.LayoutConfig, tw config.TypewriterConfig) *Engine {
	def := config.DefaultLayoutConfig()
	if cfg.TextWidth < 1 {
		cfg.TextWidth = def.TextWidth
	}
	cfg.PadLeft = max(cfg.PadLeft, 0)
	cfg.PadRight = max(cfg.PadRight, 0)
	cfg.PadTop = max(cfg.PadTop, 0)
	cfg.PadBottom = max(cfg.PadBottom, 0)

	lpp := tw.LinesPerPage
	if lpp < 1 {
		lpp = config.DefaultLinesPerPage
	}
	bell := tw.BellColumn
	if bell < 1 {
		bell = config.DefaultBellColumn
	}
	return &Engine{cfg: cfg, linesPerPage: lpp, bellColumn: bell}
}

// Config returns the paper configuration.
func (e *Engine) Config() config.LayoutConfig {
	return e.cfg
}

// PaperWidth returns the paper width including borders, clamped to the
// available width.
func (e *Engine) PaperWidth(available int) int {
	w := e.cfg.TextWidth + e.cfg.PadLeft + e.cfg.PadRight + 2
	return max(min(w, available), 0)
}

// EffectiveWidth returns the number of text columns for the given
// available width. It is never less than 1.
func (e *Engine) EffectiveWidth(available int) int {
	return max(e.PaperWidth(available)-2-e.cfg.PadLeft-e.cfg.PadRight, 1)
}

// InnerHeight returns the number of text rows for the given body height.
func (e *Engine) InnerHeight(height int) int {
	return max(height-e.cfg.PadTop-e.cfg.PadBottom, 0)
}

// Compute runs a full layout pass.
func (e *Engine) Compute(src Source, view View) *Frame {
	width := e.EffectiveWidth(view.Width)
	f := &Frame{
		PaperWidth:     e.PaperWidth(view.Width),
		EffectiveWidth: width,
		InnerHeight:    e.InnerHeight(view.Height),
		MarginColumn:   -1,
	}
	if e.cfg.ShowMarginGuide && e.bellColumn < width {
		f.MarginColumn = e.bellColumn
	}

	col, row := src.CursorPosition()
	n := src.LineCount()
	lines := make([]VisualLine, 0, n)

	for i := 0; i < n; i++ {
		runs := markup.ParseLine(src.LineText(i))
		dimmed := view.Focus && i != row

		start := len(lines)
		lines = wrap(lines, runs, i, dimmed, width)

		if i == row {
			vr := start + col/width
			for vr >= len(lines) {
				lines = append(lines, VisualLine{Kind: KindText, Line: i})
			}
			f.CursorRow = vr
			f.CursorCol = col % width
		}

		if view.DoubleSpacing {
			lines = append(lines, blankLine())
		}

		if (i+1)%e.linesPerPage == 0 {
			page := (i+1)/e.linesPerPage + 1
			lines = append(lines, blankLine(), separator(page, width), blankLine())
		}
	}

	f.Lines = lines
	f.ScrollOffset = scrollOffset(f.CursorRow, f.InnerHeight, view.Typewriter)
	return f
}
