package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelToken(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		if tt.level.String() != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, tt.level.String(), tt.expected)
		}
	}
}

func TestFieldCreators(t *testing.T) {
	f := String("key", "value")
	if f.Key != "key" || f.Value != "value" {
		t.Errorf("String field incorrect: %+v", f)
	}

	f = Int("count", 42)
	if f.Key != "count" || f.Value != 42 {
		t.Errorf("Int field incorrect: %+v", f)
	}

	f = Int64("bytes", 1024)
	if f.Key != "bytes" || f.Value != int64(1024) {
		t.Errorf("Int64 field incorrect: %+v", f)
	}

	f = Float64("ratio", 3.14)
	if f.Key != "ratio" || f.Value != 3.14 {
		t.Errorf("Float64 field incorrect: %+v", f)
	}

	f = Bool("enabled", true)
	if f.Key != "enabled" || f.Value != true {
		t.Errorf("Bool field incorrect: %+v", f)
	}

	err := errors.New("test error")
	f = Err(err)
	if f.Key != "error" || f.Value != "test error" {
		t.Errorf("Err field incorrect: %+v", f)
	}

	f = Err(nil)
	if f.Key != "error" || f.Value != nil {
		t.Errorf("Err(nil) field incorrect: %+v", f)
	}

	f = Duration("elapsed", 5*time.Second)
	if f.Key != "elapsed" || f.Value != "5s" {
		t.Errorf("Duration field incorrect: %+v", f)
	}
}

func TestErrFieldScrubsSecretShapedText(t *testing.T) {
	err := errors.New("decrypt failed for key deadbeefdeadbeefdeadbeefdeadbeef12345678")
	f := Err(err)
	if strings.Contains(f.Value.(string), "deadbeef") {
		t.Errorf("Err field should scrub hex-shaped substrings, got %q", f.Value)
	}
	if !strings.Contains(f.Value.(string), "[redacted]") {
		t.Errorf("Err field should mark the scrubbed region, got %q", f.Value)
	}
}

func TestNullLogger(t *testing.T) {
	logger := &nullLogger{}

	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")

	child := logger.WithFields(String("key", "value"))
	if child != logger {
		t.Error("nullLogger.WithFields should return same instance")
	}
}

func TestLogfmtLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLogger(&buf, LevelInfo)

	logger.Debug("debug message")
	if buf.Len() > 0 {
		t.Error("Debug message should be filtered at Info level")
	}

	logger.Info("info message", String("key", "value"))
	output := buf.String()
	if !strings.Contains(output, "level=info") {
		t.Error("Info message should contain level=info")
	}
	if !strings.Contains(output, "component=encimg") {
		t.Error("Info message should be tagged with its component")
	}
	if !strings.Contains(output, `msg="info message"`) {
		t.Error("Info message should contain a quoted msg field")
	}
	if !strings.Contains(output, "key=value") {
		t.Error("Info message should contain field")
	}

	buf.Reset()
	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "level=warn") {
		t.Error("Warn message should contain level=warn")
	}

	buf.Reset()
	logger.Error("error message")
	if !strings.Contains(buf.String(), "level=error") {
		t.Error("Error message should contain level=error")
	}
}

func TestLogfmtLoggerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLogger(&buf, LevelDebug)
	logger.Info("msg", String("path", "a file with spaces.txt"))
	if !strings.Contains(buf.String(), `path="a file with spaces.txt"`) {
		t.Errorf("expected quoted value with spaces, got %q", buf.String())
	}
}

func TestLogfmtLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelDebug, "pipeline")

	child := logger.WithFields(String("operation", "encrypt-files"))
	child.Info("message", String("extra", "field"))

	output := buf.String()
	if !strings.Contains(output, "component=pipeline") {
		t.Error("Output should carry the bound component name")
	}
	if !strings.Contains(output, "operation=encrypt-files") {
		t.Error("Output should contain persistent field")
	}
	if !strings.Contains(output, "extra=field") {
		t.Error("Output should contain call-specific field")
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := GetLogger()
	if _, ok := logger.(*nullLogger); !ok {
		t.Error("Default logger should be null logger")
	}

	var buf bytes.Buffer
	customLogger := NewSimpleLogger(&buf, LevelDebug)
	SetLogger(customLogger)

	Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Error("Custom logger should receive messages")
	}

	SetLogger(nil)
	if _, ok := GetLogger().(*nullLogger); !ok {
		t.Error("SetLogger(nil) should set null logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewSimpleLogger(&buf, LevelDebug))
	defer SetLogger(nil)

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")

	output := buf.String()
	for _, token := range []string{"level=debug", "level=info", "level=warn", "level=error"} {
		if !strings.Contains(output, token) {
			t.Errorf("expected output to contain %q, got %q", token, output)
		}
	}
}
