package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupLoggerLevels(t *testing.T) {
	originalLogger := defaultLogger
	defer func() { defaultLogger = originalLogger }()

	testCases := []struct {
		name       string
		level      LogLevel
		debugShown bool
	}{
		{name: "Debug level passes debug records", level: LevelDebug, debugShown: true},
		{name: "Info level filters debug records", level: LevelInfo, debugShown: false},
		{name: "Warn level filters debug records", level: LevelWarn, debugShown: false},
		{name: "Unknown level defaults to info", level: LogLevel("loud"), debugShown: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetupLogger(&buf, tc.level)

			Debug("debug probe", "key", "value")
			if got := strings.Contains(buf.String(), "debug probe"); got != tc.debugShown {
				t.Errorf("debug visibility = %v, want %v (output: %s)", got, tc.debugShown, buf.String())
			}

			buf.Reset()
			Error("error probe")
			if !strings.Contains(buf.String(), "error probe") {
				t.Errorf("error record missing from output: %s", buf.String())
			}
		})
	}
}

func TestLoggingAttributes(t *testing.T) {
	originalLogger := defaultLogger
	defer func() { defaultLogger = originalLogger }()

	var buf bytes.Buffer
	SetupLogger(&buf, LevelDebug)

	Info("syncing ticket", "ticket", "PROJ-42")
	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Errorf("expected INFO level in output, got: %s", output)
	}
	if !strings.Contains(output, "ticket") || !strings.Contains(output, "PROJ-42") {
		t.Errorf("expected attribute pair in output, got: %s", output)
	}
}

func TestSlogLevelMapping(t *testing.T) {
	testCases := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LogLevel(""), slog.LevelInfo},
	}

	for _, tc := range testCases {
		if got := slogLevel(tc.level); got != tc.expected {
			t.Errorf("slogLevel(%q) = %v, want %v", tc.level, got, tc.expected)
		}
	}
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
}

func TestMaskSensitive(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty string", input: "", expected: "<not set>"},
		{name: "Short string", input: "abc", expected: "<set>"},
		{name: "Exactly 4 characters", input: "abcd", expected: "<set>"},
		{name: "Token-like string", input: "2Dn5j8fk39Dkf0s", expected: "2Dn5...***"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaskSensitive(tc.input); got != tc.expected {
				t.Errorf("MaskSensitive(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
