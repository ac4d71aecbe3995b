package logrusadapter

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogrusLogger_Levels(t *testing.T) {
	logger := NewLogrusLogger(false)
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Info("Processing workbook", map[string]interface{}{"links": 3})
	logger.Warn("Unsupported file type", map[string]interface{}{"ext": "docx"})
	logger.Error("Download failed", map[string]interface{}{"url": "https://example.com/a.jpg"})

	out := buf.String()
	for _, want := range []string{
		"Processing workbook", "links=3",
		"Unsupported file type", "ext=docx",
		"Download failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogrusLogger_DebugSuppressedByDefault(t *testing.T) {
	logger := NewLogrusLogger(false)
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Debug("noisy detail", nil)
	if buf.Len() != 0 {
		t.Errorf("debug output should be suppressed without verbose: %s", buf.String())
	}
}

func TestLogrusLogger_VerboseEnablesDebug(t *testing.T) {
	logger := NewLogrusLogger(true)
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Debug("noisy detail", map[string]interface{}{"row": 2})
	if !strings.Contains(buf.String(), "noisy detail") {
		t.Errorf("debug output missing in verbose mode: %s", buf.String())
	}
}

func TestLogrusLogger_NilFields(t *testing.T) {
	logger := NewLogrusLogger(false)
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Info("plain message", nil)
	if !strings.Contains(buf.String(), "plain message") {
		t.Errorf("log output missing message: %s", buf.String())
	}
}
