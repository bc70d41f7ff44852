// Package theme defines the editor's color palettes.
package theme

import (
	"strings"

	"github.com/dshills/clack/internal/markup"
	"github.com/dshills/clack/internal/renderer/core"
)

// Type identifies a built-in palette.
type Type uint8

const (
	Dark Type = iota
	Paper
	Retro
)

// String returns the preference name of the palette.
func (t Type) String() string {
	switch t {
	case Paper:
		return "paper"
	case Retro:
		return "retro"
	default:
		return "dark"
	}
}

// Next cycles Dark -> Paper -> Retro -> Dark.
func (t Type) Next() Type {
	switch t {
	case Dark:
		return Paper
	case Paper:
		return Retro
	default:
		return Dark
	}
}

// Parse maps a preference name to a palette. "light" is an alias for
// Paper. Unknown names yield Dark and false.
func Parse(name string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return Dark, true
	case "light", "paper":
		return Paper, true
	case "retro":
		return Retro, true
	default:
		return Dark, false
	}
}

// Theme is a resolved palette.
type Theme struct {
	Type Type
	Name string

	Desk      core.Color // screen around the paper
	Text      core.Color
	Paper     core.Color
	Border    core.Color
	Guide     core.Color // margin guide column
	HeaderBg  core.Color
	HeaderFg  core.Color
	Accent    core.Color
	Dim       core.Color // focus mode inactive lines
	StatusOK  core.Color
	StatusBad core.Color
	BadgeFg   core.Color
}

// palette holds hex colors; an empty string is the terminal default.
type palette struct {
	name      string
	desk      string
	text      string
	paper     string
	border    string
	headerBg  string
	headerFg  string
	accent    string
	dim       string
	statusOK  string
	statusBad string
	badgeFg   string
}

var palettes = map[Type]palette{
	Dark: {
		name:      "Dark",
		text:      "#FFFFFF",
		border:    "#767676",
		headerBg:  "#3A3A3A",
		headerFg:  "#FFFFFF",
		accent:    "#3B78FF",
		dim:       "#323232",
		statusOK:  "#16C60C",
		statusBad: "#E74856",
		badgeFg:   "#FFFFFF",
	},
	Paper: {
		name:      "Paper",
		desk:      "#1E1E1E",
		text:      "#000000",
		paper:     "#FDF6E3",
		border:    "#B4AA96",
		headerBg:  "#EEE8D5",
		headerFg:  "#000000",
		accent:    "#268BD2",
		dim:       "#C8C8BE",
		statusOK:  "#859900",
		statusBad: "#DC322F",
		badgeFg:   "#FFFFFF",
	},
	Retro: {
		name:      "Retro",
		desk:      "#000000",
		text:      "#FFB000",
		paper:     "#000000",
		border:    "#644600",
		headerBg:  "#281E00",
		headerFg:  "#FFB000",
		accent:    "#FFB000",
		dim:       "#644600",
		statusOK:  "#FFB000",
		statusBad: "#FF0000",
		badgeFg:   "#000000",
	},
}

// New resolves the palette for t.
func New(t Type) *Theme {
	p, ok := palettes[t]
	if !ok {
		t, p = Dark, palettes[Dark]
	}
	th := &Theme{
		Type:      t,
		Name:      p.name,
		Desk:      color(p.desk),
		Text:      color(p.text),
		Paper:     color(p.paper),
		Border:    color(p.border),
		HeaderBg:  color(p.headerBg),
		HeaderFg:  color(p.headerFg),
		Accent:    color(p.accent),
		Dim:       color(p.dim),
		StatusOK:  color(p.statusOK),
		StatusBad: color(p.statusBad),
		BadgeFg:   color(p.badgeFg),
	}
	th.Guide = th.Border.Blend(th.Paper, 0.4)
	return th
}

func color(hex string) core.Color {
	if hex == "" {
		return core.ColorDefault
	}
	return core.MustHex(hex)
}

// PaperStyle is the style of empty paper.
func (t *Theme) PaperStyle() core.Style {
	return core.NewStyle(t.Text, t.Paper)
}

// RunStyle returns the style of a character with the given emphasis.
// Dimmed characters keep their emphasis attributes but take the dim color.
func (t *Theme) RunStyle(e markup.Emphasis, dimmed bool) core.Style {
	s := t.PaperStyle()
	switch e {
	case markup.Bold:
		s = s.Bold()
	case markup.Italic:
		s = s.Italic()
	case markup.Marker:
		s = s.WithForeground(t.Guide)
	}
	if dimmed {
		s = s.WithForeground(t.Dim).Dim()
	}
	return s
}

// StatusStyle colors an on/off indicator.
func (t *Theme) StatusStyle(on bool) core.Style {
	fg := t.StatusBad
	if on {
		fg = t.StatusOK
	}
	return core.NewStyle(fg, t.HeaderBg)
}
