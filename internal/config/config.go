// Package config holds Clack's typed settings: the typewriter rules, the
// paper layout and the user preferences that toggle modes at startup.
//
// Settings are layered from three sources, lowest priority first: the
// built-in defaults, the TOML preferences file and CLACK_* environment
// variables. Invalid values never abort startup; they fall back to the
// default for that field.
package config

import (
	"strings"
	"time"
)

// Default values.
const (
	DefaultBellColumn      = 72
	DefaultLinesPerPage    = 54
	DefaultPageFeedPauseMS = 350

	DefaultTextWidth = 80
	DefaultPadLeft   = 2
	DefaultPadRight  = 2
	DefaultPadTop    = 1
	DefaultPadBottom = 1

	DefaultTheme       = "dark"
	DefaultSoundVoices = 4
	DefaultSoundQueue  = 16
	DefaultLogLevel    = "info"
)

// TypewriterConfig controls the margin bell and pagination.
type TypewriterConfig struct {
	// BellColumn is the line length (terminator included) at which the
	// margin bell rings; longer lines are refused.
	BellColumn int `toml:"bell_column"`
	// LinesPerPage is the number of logical lines on a page.
	LinesPerPage int `toml:"lines_per_page"`
	// PageFeedPauseMS is how long input pauses when a new page is fed.
	PageFeedPauseMS int `toml:"page_feed_pause_ms"`
}

// PageFeedPause returns the feed pause as a duration.
func (c TypewriterConfig) PageFeedPause() time.Duration {
	return time.Duration(c.PageFeedPauseMS) * time.Millisecond
}

// DefaultTypewriterConfig returns the standard typewriter rules.
func DefaultTypewriterConfig() TypewriterConfig {
	return TypewriterConfig{
		BellColumn:      DefaultBellColumn,
		LinesPerPage:    DefaultLinesPerPage,
		PageFeedPauseMS: DefaultPageFeedPauseMS,
	}
}

// Validate replaces out-of-range values with their defaults.
func (c *TypewriterConfig) Validate() []error {
	var errs []error
	if c.BellColumn < 1 {
		errs = append(errs, rangeError("typewriter.bell_column", c.BellColumn))
		c.BellColumn = DefaultBellColumn
	}
	if c.LinesPerPage < 1 {
		errs = append(errs, rangeError("typewriter.lines_per_page", c.LinesPerPage))
		c.LinesPerPage = DefaultLinesPerPage
	}
	if c.PageFeedPauseMS < 0 {
		errs = append(errs, rangeError("typewriter.page_feed_pause_ms", c.PageFeedPauseMS))
		c.PageFeedPauseMS = DefaultPageFeedPauseMS
	}
	return errs
}

// LayoutConfig describes the sheet of paper text is typed onto.
type LayoutConfig struct {
	TextWidth       int  `toml:"text_width"`
	PadLeft         int  `toml:"pad_left"`
	PadRight        int  `toml:"pad_right"`
	PadTop          int  `toml:"pad_top"`
	PadBottom       int  `toml:"pad_bottom"`
	ShowMarginGuide bool `toml:"show_margin_guide"`
	FancyBorders    bool `toml:"fancy_borders"`
}

// DefaultLayoutConfig returns the standard paper layout.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		TextWidth:       DefaultTextWidth,
		PadLeft:         DefaultPadLeft,
		PadRight:        DefaultPadRight,
		PadTop:          DefaultPadTop,
		PadBottom:       DefaultPadBottom,
		ShowMarginGuide: true,
		FancyBorders:    true,
	}
}

// Validate replaces out-of-range values with their defaults.
func (c *LayoutConfig) Validate() []error {
	var errs []error
	if c.TextWidth < 1 {
		errs = append(errs, rangeError("layout.text_width", c.TextWidth))
		c.TextWidth = DefaultTextWidth
	}
	pads := []struct {
		name string
		val  *int
		def  int
	}{
		{"layout.pad_left", &c.PadLeft, DefaultPadLeft},
		{"layout.pad_right", &c.PadRight, DefaultPadRight},
		{"layout.pad_top", &c.PadTop, DefaultPadTop},
		{"layout.pad_bottom", &c.PadBottom, DefaultPadBottom},
	}
	for _, p := range pads {
		if *p.val < 0 {
			errs = append(errs, rangeError(p.name, *p.val))
			*p.val = p.def
		}
	}
	return errs
}

// SoundConfig selects how audio triggers are played.
type SoundConfig struct {
	// Dir holds <kind>.wav samples. Empty means bell-only playback.
	Dir string `toml:"dir"`
	// Player is the external command used to play a sample. Empty picks
	// the first of the known players found on PATH.
	Player string `toml:"player"`
	// Voices is the number of sounds that may play at once.
	Voices int `toml:"voices"`
	// Queue is the number of pending sounds kept while all voices are busy.
	Queue int `toml:"queue"`
}

// Validate replaces out-of-range values with their defaults.
func (c *SoundConfig) Validate() []error {
	var errs []error
	if c.Voices < 1 {
		errs = append(errs, rangeError("sound.voices", c.Voices))
		c.Voices = DefaultSoundVoices
	}
	if c.Queue < 1 {
		errs = append(errs, rangeError("sound.queue", c.Queue))
		c.Queue = DefaultSoundQueue
	}
	return errs
}

// LogConfig configures the session log.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Preferences is the complete set of startup settings.
type Preferences struct {
	TypewriterMode bool   `toml:"typewriter_mode"`
	FocusMode      bool   `toml:"focus_mode"`
	SoundEnabled   bool   `toml:"sound_enabled"`
	DoubleSpacing  bool   `toml:"double_spacing"`
	Theme          string `toml:"theme"`

	Typewriter TypewriterConfig `toml:"typewriter"`
	Layout     LayoutConfig     `toml:"layout"`
	Sound      SoundConfig      `toml:"sound"`
	Log        LogConfig        `toml:"log"`
}

// Default returns the built-in preferences.
func Default() *Preferences {
	return &Preferences{
		TypewriterMode: true,
		FocusMode:      false,
		SoundEnabled:   true,
		DoubleSpacing:  false,
		Theme:          DefaultTheme,
		Typewriter:     DefaultTypewriterConfig(),
		Layout:         DefaultLayoutConfig(),
		Sound: SoundConfig{
			Voices: DefaultSoundVoices,
			Queue:  DefaultSoundQueue,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// themeNames lists the accepted theme names; "light" and "paper" are aliases.
var themeNames = []string{"dark", "light", "paper", "retro"}

// Validate normalizes the preferences in place, replacing each invalid
// field with its default. The returned errors describe what was replaced.
func (p *Preferences) Validate() []error {
	var errs []error

	theme := strings.ToLower(strings.TrimSpace(p.Theme))
	known := false
	for _, name := range themeNames {
		if theme == name {
			known = true
			break
		}
	}
	if known {
		p.Theme = theme
	} else {
		errs = append(errs, &FieldError{Path: "theme", Value: p.Theme, Err: ErrUnknownTheme})
		p.Theme = DefaultTheme
	}

	switch level := strings.ToLower(p.Log.Level); level {
	case "debug", "info", "warn", "error":
		p.Log.Level = level
	default:
		errs = append(errs, &FieldError{Path: "log.level", Value: p.Log.Level, Err: ErrUnknownLevel})
		p.Log.Level = DefaultLogLevel
	}

	errs = append(errs, p.Typewriter.Validate()...)
	errs = append(errs, p.Layout.Validate()...)
	errs = append(errs, p.Sound.Validate()...)
	return errs
}

func rangeError(path string, v int) error {
	return &FieldError{Path: path, Value: v, Err: ErrOutOfRange}
}
