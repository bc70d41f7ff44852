package loader

import (
	"strings"
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader(EnvPrefix).WithEnviron([]string{
		"CLACK_THEME=paper",
		"CLACK_TYPEWRITER_MODE=off",
		"CLACK_LOG_LEVEL=debug",
		"CLACK_TYPEWRITER_BELL_COLUMN=60",
		"CLACK_LAYOUT_TEXT_WIDTH=64",
		"HOME=/home/someone",
	})

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"theme", "paper"},
		{"typewriter_mode", false},
		{"log.level", "debug"},
		{"typewriter.bell_column", int64(60)},
		{"layout.text_width", int64(64)},
	}
	for _, tt := range tests {
		got, ok := getByPath(config, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variable leaked into config")
	}
}

func TestEnvLoader_LoadFromProcess(t *testing.T) {
	t.Setenv("CLACK_FOCUS_MODE", "yes")

	config, err := NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config["focus_mode"] != true {
		t.Errorf("focus_mode = %v, want true", config["focus_mode"])
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)

	tests := []struct {
		env      string
		expected string
	}{
		{"CLACK_LAYOUT_TEXT_WIDTH", "layout.text_width"},
		{"CLACK_TYPEWRITER_LINES_PER_PAGE", "typewriter.lines_per_page"},
		{"CLACK_SIMPLE", "simple"},
		{"CLACK_", ""},
	}

	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", ""},
		{"true", true},
		{"On", true},
		{"no", false},
		{"1", int64(1)},
		{"0", int64(0)},
		{"-3", int64(-3)},
		{"1.5", 1.5},
		{"dark", "dark"},
		{"v1.2.3", "v1.2.3"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}
}

func TestEnvLoader_AddRemoveMapping(t *testing.T) {
	l := NewEnvLoader(EnvPrefix).WithEnviron([]string{"CLACK_PAPER=retro"})
	l.AddMapping("CLACK_PAPER", "theme")

	config, _ := l.Load()
	if config["theme"] != "retro" {
		t.Errorf("theme = %v, want retro", config["theme"])
	}

	l.RemoveMapping("CLACK_PAPER")
	config, _ = l.Load()
	if _, ok := config["theme"]; ok {
		t.Error("theme still set after RemoveMapping")
	}
	if config["paper"] != "retro" {
		t.Errorf("paper = %v, want retro", config["paper"])
	}
}

func getByPath(data map[string]any, path string) (any, bool) {
	current := any(data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, exists := m[part]
		if !exists {
			return nil, false
		}
		current = val
	}
	return current, true
}
