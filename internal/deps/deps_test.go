package deps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present", "#!/bin/sh\nexit 0\n")
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank command status: %#v", results[2])
	}
}

func TestCheckEncoderReportsVersion(t *testing.T) {
	binDir := t.TempDir()
	writeStub(t, binDir, "ffmpeg", "#!/bin/sh\necho 'ffmpeg version 7.1 Copyright (c)'\necho 'built with gcc'\n")
	t.Setenv("PATH", binDir)

	info, err := CheckEncoder(context.Background(), "ffmpeg")
	if err != nil {
		t.Fatalf("CheckEncoder returned error: %v", err)
	}
	if info.Version != "ffmpeg version 7.1 Copyright (c)" {
		t.Fatalf("unexpected version line: %q", info.Version)
	}
	if info.Path != filepath.Join(binDir, "ffmpeg") {
		t.Fatalf("unexpected resolved path: %q", info.Path)
	}
}

func TestCheckEncoderMissingBinary(t *testing.T) {
	t.Setenv("PATH", "")
	_, err := CheckEncoder(context.Background(), "ffmpeg")
	if !errors.Is(err, ErrEncoderUnavailable) {
		t.Fatalf("expected ErrEncoderUnavailable, got %v", err)
	}
}

func TestCheckEncoderNonZeroExit(t *testing.T) {
	binDir := t.TempDir()
	writeStub(t, binDir, "ffmpeg", "#!/bin/sh\necho 'libx264 missing' >&2\nexit 3\n")
	t.Setenv("PATH", binDir)

	_, err := CheckEncoder(context.Background(), "ffmpeg")
	if !errors.Is(err, ErrEncoderUnavailable) {
		t.Fatalf("expected ErrEncoderUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "libx264 missing") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}

func TestEncoderStatus(t *testing.T) {
	t.Setenv("PATH", "")
	status := EncoderStatus(context.Background(), "ffmpeg")
	if status.Available {
		t.Fatal("expected encoder unavailable")
	}
	if !strings.Contains(status.Detail, "not found") {
		t.Fatalf("unexpected detail: %q", status.Detail)
	}
}
