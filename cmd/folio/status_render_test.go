package main

import (
	"os"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
)

func TestRenderStatusLine(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusError, "binary \"ffmpeg\" not found in PATH", false)
	want := "  FFmpeg:          [ERROR] binary \"ffmpeg\" not found in PATH"
	if got != want {
		t.Fatalf("renderStatusLine = %q, want %q", got, want)
	}
	if got := renderStatusLine("Config", statusKind(42), "", false); !strings.HasSuffix(got, "[INFO]") {
		t.Fatalf("unknown kind rendered as %q", got)
	}
	text.EnableColors()
	t.Cleanup(text.DisableColors)
	colored := renderStatusLine("Image output", statusOK, "ready", true)
	if !strings.Contains(colored, "\x1b[") || !strings.Contains(colored, "[OK] ready") {
		t.Fatalf("expected colorized line, got %q", colored)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader(" Readiness ", false)
	if len(lines) != 2 || lines[0] != "== Readiness ==" || lines[1] != strings.Repeat("-", len(lines[0])) {
		t.Fatalf("unexpected header %q", lines)
	}
}

func TestShouldColorizeHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if shouldColorize(os.Stdout) {
		t.Fatal("NO_COLOR must disable color")
	}
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	if shouldColorize(&strings.Builder{}) {
		t.Fatal("non-file writers are never colorized")
	}
}
