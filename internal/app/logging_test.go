package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   LogLevel
		wantOK bool
	}{
		{"debug", LogLevelDebug, true},
		{"DEBUG", LogLevelDebug, true},
		{"info", LogLevelInfo, true},
		{"warn", LogLevelWarn, true},
		{"warning", LogLevelWarn, true},
		{"Error", LogLevelError, true},
		{"verbose", LogLevelInfo, false},
		{"", LogLevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLogLevel(%q) = (%v, %t), want (%v, %t)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("expected DEBUG and INFO filtered out, got: %s", output)
	}
	if !strings.Contains(output, "[WARN]") || !strings.Contains(output, "[ERROR]") {
		t.Errorf("expected WARN and ERROR in output, got: %s", output)
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "clack"})

	logger.WithFields(map[string]any{"b": 2, "a": "one"}).Info("formatted %s %d", "test", 42)

	output := strings.TrimSuffix(buf.String(), "\n")
	if !strings.HasSuffix(output, " [INFO] clack: formatted test 42 {a=one, b=2}") {
		t.Errorf("log line = %q", output)
	}
}

func TestLogger_DerivedSharesSink(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})
	child := logger.WithComponent("sound")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatal("expected no output at error level")
	}

	logger.SetLevel(LogLevelInfo)
	child.Info("shown")
	if !strings.Contains(buf.String(), "component=sound") {
		t.Errorf("expected component in output, got: %s", buf.String())
	}
	if _, ok := logger.Field("component"); ok {
		t.Error("WithComponent modified the parent logger")
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Disable()
	logger.Info("should not appear")
	if buf.Len() != 0 {
		t.Error("expected no output when disabled")
	}

	logger.Enable()
	logger.Info("should appear")
	if buf.Len() == 0 {
		t.Error("expected output when enabled")
	}
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	logger.Error("nowhere")
	logger.Enable()
	logger.Error("still nowhere")

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.Info("now visible")
	if buf.Len() == 0 {
		t.Error("expected output after SetOutput")
	}
}

func TestSessionLogger(t *testing.T) {
	var buf bytes.Buffer
	a := NewSessionLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	b := NewSessionLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	idA, ok := a.Field("session")
	if !ok {
		t.Fatal("session field missing")
	}
	if _, err := uuid.Parse(idA.(string)); err != nil {
		t.Errorf("session = %v, want a UUID: %v", idA, err)
	}
	if idB, _ := b.Field("session"); idA == idB {
		t.Error("two sessions share an id")
	}

	a.Info("hello")
	if !strings.Contains(buf.String(), "session="+idA.(string)) {
		t.Errorf("log line missing session: %s", buf.String())
	}
}
