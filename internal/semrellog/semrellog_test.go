package semrellog

import (
	"bytes"
	"strings"
	"testing"

	"semrel.dev/semrel/internal/conventional"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf)

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("Info() logged below the configured level:\n%s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("Warn() did not log at the configured level:\n%s", out)
	}
}

func TestLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", &buf).Component("walker")
	logger.Info("stepping to parent")

	if !strings.Contains(buf.String(), `"component":"walker"`) {
		t.Errorf("Component() field missing from output:\n%s", buf.String())
	}
}

func TestLogger_WithRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", &buf).WithRedacted("category", conventional.Feat)
	logger.Info("resolved bump")

	if !strings.Contains(buf.String(), `"category":"feat"`) {
		t.Errorf("WithRedacted() field missing from output:\n%s", buf.String())
	}
}
