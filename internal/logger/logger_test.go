package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestVerboseGating(t *testing.T) {
	var buf bytes.Buffer
	verbose := false
	log := NewWithWriter("upload", func() bool { return verbose }, &buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("Expected no output when not verbose, got %q", buf.String())
	}

	log.Warn("visible warning")
	if !strings.Contains(buf.String(), "visible warning") {
		t.Errorf("Expected warning in output, got %q", buf.String())
	}

	verbose = true
	log.Debug("now shown %s", "debug")
	if !strings.Contains(buf.String(), "now shown debug") {
		t.Errorf("Expected debug in verbose output, got %q", buf.String())
	}
}

func TestFieldsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("live", func() bool { return true }, &buf)

	log.ErrorWithFields("request failed", []Field{Error(errors.New("boom")), F("exercise_type", "squat")})
	out := buf.String()
	for _, want := range []string{"request failed", "boom", "squat", "live"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got %q", want, out)
		}
	}

	child := log.WithComponent("watch")
	if child.Component() != "watch" {
		t.Errorf("Expected component watch, got %s", child.Component())
	}
}
