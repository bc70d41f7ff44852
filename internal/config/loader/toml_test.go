package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
typewriter_mode = false
theme = "retro"

[typewriter]
bell_column = 60

[layout]
text_width = 64
fancy_borders = false
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config["typewriter_mode"] != false {
		t.Errorf("typewriter_mode = %v, want false", config["typewriter_mode"])
	}
	if config["theme"] != "retro" {
		t.Errorf("theme = %v, want retro", config["theme"])
	}

	tw, ok := config["typewriter"].(map[string]any)
	if !ok {
		t.Fatal("expected typewriter to be a map")
	}
	if tw["bell_column"] != int64(60) {
		t.Errorf("bell_column = %v (%T), want 60", tw["bell_column"], tw["bell_column"])
	}

	layout, ok := config["layout"].(map[string]any)
	if !ok {
		t.Fatal("expected layout to be a map")
	}
	if layout["fancy_borders"] != false {
		t.Errorf("fancy_borders = %v, want false", layout["fancy_borders"])
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	if err != nil {
		t.Errorf("Load of missing file returned error: %v", err)
	}
	if config != nil {
		t.Errorf("Load of missing file = %v, want nil", config)
	}
}

func TestTOMLLoader_LoadEmptyPath(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "theme = \"dark\"\n[layout\ntext_width = 3\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q, want /bad.toml", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("ParseError has no line position")
	}
	if !strings.Contains(perr.Error(), "/bad.toml") {
		t.Errorf("Error() = %q, want it to name the file", perr.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	l := NewTOMLLoader("")
	config, err := l.LoadFromReader(strings.NewReader(`sound_enabled = false`))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config["sound_enabled"] != false {
		t.Errorf("sound_enabled = %v, want false", config["sound_enabled"])
	}
}

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name     string
		dst      map[string]any
		src      map[string]any
		expected map[string]any
	}{
		{
			name:     "nil dst",
			dst:      nil,
			src:      map[string]any{"theme": "dark"},
			expected: map[string]any{"theme": "dark"},
		},
		{
			name:     "nil src",
			dst:      map[string]any{"theme": "dark"},
			src:      nil,
			expected: map[string]any{"theme": "dark"},
		},
		{
			name:     "override scalar",
			dst:      map[string]any{"theme": "dark", "focus_mode": false},
			src:      map[string]any{"theme": "retro"},
			expected: map[string]any{"theme": "retro", "focus_mode": false},
		},
		{
			name: "merge tables",
			dst: map[string]any{
				"layout": map[string]any{"text_width": int64(80), "pad_left": int64(2)},
			},
			src: map[string]any{
				"layout": map[string]any{"text_width": int64(64)},
			},
			expected: map[string]any{
				"layout": map[string]any{"text_width": int64(64), "pad_left": int64(2)},
			},
		},
		{
			name:     "table replaces scalar",
			dst:      map[string]any{"sound": "on"},
			src:      map[string]any{"sound": map[string]any{"dir": "/tmp"}},
			expected: map[string]any{"sound": map[string]any{"dir": "/tmp"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeepMerge(tt.dst, tt.src)
			if !mapsEqual(got, tt.expected) {
				t.Errorf("DeepMerge() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDeepMergeDoesNotAliasSource(t *testing.T) {
	src := map[string]any{"layout": map[string]any{"text_width": int64(64)}}
	got := DeepMerge(nil, src)
	got["layout"].(map[string]any)["text_width"] = int64(10)

	if src["layout"].(map[string]any)["text_width"] != int64(64) {
		t.Error("DeepMerge result shares tables with src")
	}
}

func TestClone(t *testing.T) {
	original := map[string]any{
		"theme":  "paper",
		"layout": map[string]any{"text_width": int64(72)},
		"list":   []any{"a", map[string]any{"b": true}},
	}

	clone := Clone(original)
	if !mapsEqual(clone, original) {
		t.Fatalf("Clone() = %v, want %v", clone, original)
	}

	clone["layout"].(map[string]any)["text_width"] = int64(1)
	if original["layout"].(map[string]any)["text_width"] != int64(72) {
		t.Error("modifying clone changed the original")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func mapsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		am, aIsMap := av.(map[string]any)
		bm, bIsMap := bv.(map[string]any)
		if aIsMap || bIsMap {
			if !aIsMap || !bIsMap || !mapsEqual(am, bm) {
				return false
			}
			continue
		}
		if as, ok := av.([]any); ok {
			bs, ok := bv.([]any)
			if !ok || len(as) != len(bs) {
				return false
			}
			continue
		}
		if av != bv {
			return false
		}
	}
	return true
}
