package theme

import (
	"testing"

	"github.com/dshills/clack/internal/markup"
	"github.com/dshills/clack/internal/renderer/core"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		want   Type
		wantOK bool
	}{
		{"dark", Dark, true},
		{"Light", Paper, true},
		{"paper", Paper, true},
		{" RETRO ", Retro, true},
		{"solarized", Dark, false},
		{"", Dark, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNextCycles(t *testing.T) {
	seq := []Type{Dark, Paper, Retro, Dark}
	for i := 0; i < len(seq)-1; i++ {
		if got := seq[i].Next(); got != seq[i+1] {
			t.Errorf("%v.Next() = %v, want %v", seq[i], got, seq[i+1])
		}
	}
}

func TestStringRoundTrips(t *testing.T) {
	for _, typ := range []Type{Dark, Paper, Retro} {
		got, ok := Parse(typ.String())
		if !ok || got != typ {
			t.Errorf("Parse(%q) = %v, %v", typ.String(), got, ok)
		}
	}
}

func TestNewResolvesPalettes(t *testing.T) {
	dark := New(Dark)
	if !dark.Paper.IsDefault() || !dark.Desk.IsDefault() {
		t.Error("dark paper and desk should use the terminal default")
	}
	if !dark.Guide.Equals(dark.Border) {
		t.Errorf("dark Guide = %v, want border %v", dark.Guide, dark.Border)
	}

	paper := New(Paper)
	if paper.Name != "Paper" {
		t.Errorf("Name = %q, want Paper", paper.Name)
	}
	if !paper.Paper.Equals(core.ColorFromRGB(253, 246, 227)) {
		t.Errorf("Paper = %v", paper.Paper)
	}
	if paper.Guide.Equals(paper.Border) || paper.Guide.Equals(paper.Paper) {
		t.Errorf("Guide = %v should lie between border and paper", paper.Guide)
	}

	retro := New(Retro)
	if !retro.Text.Equals(core.ColorFromRGB(255, 176, 0)) {
		t.Errorf("retro Text = %v, want amber", retro.Text)
	}

	if New(Type(99)).Type != Dark {
		t.Error("unknown type should resolve to Dark")
	}
}

func TestRunStyle(t *testing.T) {
	th := New(Paper)

	bold := th.RunStyle(markup.Bold, false)
	if !bold.Attributes.Has(core.AttrBold) || !bold.Foreground.Equals(th.Text) {
		t.Errorf("bold style = %+v", bold)
	}

	marker := th.RunStyle(markup.Marker, false)
	if !marker.Foreground.Equals(th.Guide) {
		t.Errorf("marker fg = %v, want guide %v", marker.Foreground, th.Guide)
	}

	dimItalic := th.RunStyle(markup.Italic, true)
	if !dimItalic.Attributes.Has(core.AttrItalic) || !dimItalic.Attributes.Has(core.AttrDim) {
		t.Errorf("dimmed italic lost attributes: %+v", dimItalic)
	}
	if !dimItalic.Foreground.Equals(th.Dim) {
		t.Errorf("dimmed fg = %v, want %v", dimItalic.Foreground, th.Dim)
	}
	if !dimItalic.Background.Equals(th.Paper) {
		t.Errorf("dimmed bg = %v, want paper", dimItalic.Background)
	}
}

func TestStatusStyle(t *testing.T) {
	th := New(Dark)
	if !th.StatusStyle(true).Foreground.Equals(th.StatusOK) {
		t.Error("on status should use StatusOK")
	}
	if !th.StatusStyle(false).Foreground.Equals(th.StatusBad) {
		t.Error("off status should use StatusBad")
	}
}
