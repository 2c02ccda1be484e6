package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf)

	if l.Level() != DefaultLevel {
		t.Errorf("expected default level %v, got %v", DefaultLevel, l.Level())
	}

	if l.Format() != DefaultFormat {
		t.Errorf("expected default format %v, got %v", DefaultFormat, l.Format())
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelWarn), WithPretty(false))

	l.Info("dropped")
	l.Warn("kept")

	out := buf.String()

	if strings.Contains(out, "dropped") {
		t.Errorf("info message should be filtered: %s", out)
	}

	if !strings.Contains(out, "kept") {
		t.Errorf("warn message should pass: %s", out)
	}
}

func TestLogger_TraceLevel(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelTrace), WithPretty(false))

	l.Trace("very detailed")

	out := buf.String()

	if !strings.Contains(out, "very detailed") {
		t.Errorf("trace message should pass at trace level: %s", out)
	}

	// The level label reads TRACE, not slog's DEBUG-4
	if !strings.Contains(out, "TRACE") {
		t.Errorf("expected TRACE label: %s", out)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON))

	l.Info("structured", slog.Int("count", 3))

	var record map[string]any

	err := json.Unmarshal(buf.Bytes(), &record)
	if err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}

	if record["msg"] != "structured" {
		t.Errorf("expected msg 'structured', got %v", record["msg"])
	}

	if record["count"] != float64(3) {
		t.Errorf("expected count=3, got %v", record["count"])
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON)).
		With(slog.String("component", "emit"))

	l.Info("tagged")

	if !strings.Contains(buf.String(), `"component":"emit"`) {
		t.Errorf("expected component attribute: %s", buf.String())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	// Must not panic
	l.Info("into the void")
	l.Error("also fine")

	if l.Level() != DefaultLevel {
		t.Errorf("zero logger should report default level")
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelError))

	l2 := l.Wrap(WithLevel(LevelDebug))

	if l.Level() != LevelError {
		t.Error("wrap must not mutate the receiver")
	}

	if l2.Level() != LevelDebug {
		t.Errorf("expected wrapped level debug, got %v", l2.Level())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"trace":    LevelTrace,
		"TRACE":    LevelTrace,
		"debug":    LevelDebug,
		"info":     LevelInfo,
		"warn":     LevelWarn,
		"error":    LevelError,
		"nonsense": DefaultLevel,
		"":         DefaultLevel,
	}

	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", input, want, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"json":  FormatJSON,
		"JSON":  FormatJSON,
		"text":  FormatText,
		" text": FormatText,
		"other": DefaultFormat,
	}

	for input, want := range cases {
		if got := ParseFormat(input); got != want {
			t.Errorf("ParseFormat(%q): expected %v, got %v", input, want, got)
		}
	}
}

func TestLevels(t *testing.T) {
	var got []string
	for level := range Levels() {
		got = append(got, level)
	}

	want := []string{"trace", "debug", "info", "warn", "error"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestResolveLayout(t *testing.T) {
	if resolveLayout("RFC3339Nano") == "RFC3339Nano" {
		t.Error("named layout should resolve to its layout string")
	}

	if resolveLayout("2006-01-02") != "2006-01-02" {
		t.Error("literal layout should pass through")
	}
}

func TestPrettyHandler_Colors(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithLevel(LevelInfo))

	l.Info("colorful", slog.String("key", "value"))

	out := buf.String()

	if !strings.Contains(out, "\033[") {
		t.Errorf("expected ANSI escapes in pretty output: %q", out)
	}

	if !strings.Contains(out, "colorful") {
		t.Errorf("expected message text: %q", out)
	}

	if !strings.Contains(out, `"value"`) {
		t.Errorf("expected quoted attr value: %q", out)
	}
}

func TestPrettyHandler_NoTimestamp(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout(""))

	l.Info("bare")

	// An empty layout disables timestamps, so the level leads the line
	line := buf.String()
	if !strings.HasPrefix(stripANSI(line), "INFO") {
		t.Errorf("expected line to start with level: %q", line)
	}
}

func stripANSI(s string) string {
	var sb strings.Builder

	inEscape := false

	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}

		case r == '\033':
			inEscape = true

		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

func TestDefault_Config(t *testing.T) {
	orig := Default()

	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = orig
		defaultMu.Unlock()
	})

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelDebug), WithPretty(false))

	Debug("through the default")

	if !strings.Contains(buf.String(), "through the default") {
		t.Errorf("expected message via default logger: %s", buf.String())
	}
}
