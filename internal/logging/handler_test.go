package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("copied asset", "dest", "/tmp/x")

	output := buf.String()
	for _, want := range []string{"INFO", "copied asset", "dest=/tmp/x", now.Format(time.Kitchen)} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("output should end with newline: %q", output)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("host", "claude").WithGroup("settings")

	logger.Info("merged", "action", "configured")

	output := buf.String()
	if !strings.Contains(output, "host=claude") {
		t.Errorf("expected parent attribute, got: %q", output)
	}
	if !strings.Contains(output, "settings.action=configured") {
		t.Errorf("expected grouped attribute, got: %q", output)
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("Info should be disabled at Warn level")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("Error should be enabled at Warn level")
	}
}

func TestHandler_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "copy file")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE label, got: %q", buf.String())
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("sensitive data", "api_key", "secret12345", "Token", "ghp_abcdef")

	output := buf.String()
	if strings.Contains(output, "secret12345") || strings.Contains(output, "ghp_abcdef") {
		t.Errorf("secrets should be redacted: %q", output)
	}
	if !strings.Contains(output, "api_key=****2345") {
		t.Errorf("expected masked api_key, got: %q", output)
	}
	if !strings.Contains(output, "Token=****cdef") {
		t.Errorf("expected masked Token, got: %q", output)
	}

	buf.Reset()
	logger.Info("blocked", "command", `claude mcp add x -H "Authorization: Bearer sk-live-9999"`)
	if strings.Contains(buf.String(), "sk-live") {
		t.Errorf("bearer value should be redacted even if key is safe: %q", buf.String())
	}
}
