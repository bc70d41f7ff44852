package renderer

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/clack/internal/renderer/core"
)

// KeyHints is the footer text shown when there is no status message.
const KeyHints = "F1:Help F2:Foc F3:TW F4:Snd F5:Thm F6:Dbl"

const badge = " Clack "

func (r *Renderer) barStyle() core.Style {
	return core.NewStyle(r.theme.HeaderFg, r.theme.HeaderBg)
}

func (r *Renderer) drawHeader(s Screen, width int) {
	th := r.theme
	bar := r.barStyle()
	r.backend.Fill(core.RectFromSize(0, 0, 1, width), core.NewStyledCell(' ', bar))

	x := r.text(0, 0, width, badge, core.NewStyle(th.BadgeFg, th.Accent).Bold())

	name := DefaultFileName
	if s.FileName != "" {
		name = filepath.Base(s.FileName)
	}
	if s.Modified {
		name += " *"
	}
	r.text(x, 0, width, " "+name, bar)
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func (r *Renderer) drawFooter(s Screen, width, y int) {
	th := r.theme
	bar := r.barStyle()
	r.backend.Fill(core.RectFromSize(y, 0, 1, width), core.NewStyledCell(' ', bar))

	x := 0
	indicator := func(label string, on bool) {
		x = r.text(x, y, width, " "+label+": ", bar)
		x = r.text(x, y, width, onOff(on), th.StatusStyle(on))
		x = r.text(x, y, width, " |", bar)
	}
	indicator("TW", s.Typewriter)
	indicator("FOC", s.Focus)
	indicator("SND", s.Sound)

	x = r.text(x, y, width, fmt.Sprintf(" %d w / %d c | Pg %d | ", s.Words, s.Chars, max(s.Page, 1)), bar)

	switch {
	case s.Status == "":
		r.text(x, y, width, KeyHints, bar)
	case s.StatusError:
		r.text(x, y, width, s.Status, core.NewStyle(th.StatusBad, th.HeaderBg).Bold())
	default:
		r.text(x, y, width, s.Status, core.NewStyle(th.Accent, th.HeaderBg))
	}
}
