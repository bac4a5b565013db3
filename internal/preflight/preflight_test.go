package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputDirectory_WillBeCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "optimized_images")
	result := CheckOutputDirectory("out", path)
	if !result.Passed || !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckSources(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "house_price.mp4"), 4)

	result := CheckSources("videos", dir, []string{"house_price.mp4", "stock_prediction.mp4"})
	if !result.Passed {
		t.Fatal("missing sources must not fail the check")
	}
	if result.Detail != "1 of 2 present (missing: stock_prediction.mp4)" {
		t.Fatalf("detail = %q", result.Detail)
	}
	if got := CheckSources("videos", dir, nil); got.Detail != "directory listing" {
		t.Fatalf("empty list detail = %q", got.Detail)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	if err := os.MkdirAll(cfg.Images.InputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.Videos.InputDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}
	if Failed(results) {
		for _, r := range results {
			t.Logf("%s: passed=%v %s", r.Name, r.Passed, r.Detail)
		}
		t.Fatal("expected all checks to pass with stubbed encoder and temp dirs")
	}
	if !strings.HasPrefix(results[0].Detail, "ffmpeg version") {
		t.Fatalf("encoder detail = %q", results[0].Detail)
	}
}

func TestRunAllReportsMissingEncoder(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFFmpegBinary("folio-no-such-ffmpeg"))
	results := RunAll(context.Background(), cfg)
	if results[0].Passed {
		t.Fatal("expected encoder check to fail")
	}
	if !Failed(results) {
		t.Fatal("Failed should report the encoder failure")
	}
}

func TestRunAllToleratesMissingSourceDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	results := RunAll(context.Background(), cfg)
	var sawOptional bool
	for _, r := range results {
		if !r.Passed {
			if !r.Optional {
				t.Fatalf("required check %s failed: %s", r.Name, r.Detail)
			}
			sawOptional = true
		}
	}
	if !sawOptional {
		t.Fatal("expected missing source directories to be reported")
	}
	if Failed(results) {
		t.Fatal("optional failures must not fail readiness")
	}
}

func TestCheckSystemDeps(t *testing.T) {
	dir := t.TempDir()
	stub := testsupport.StubBinary(t, dir, "ffmpeg", testsupport.FFmpegStub)
	statuses := CheckSystemDeps(stub)
	if len(statuses) != 1 || !statuses[0].Available || statuses[0].Command != stub {
		t.Fatalf("unexpected statuses %+v", statuses)
	}
	missing := CheckSystemDeps("folio-no-such-ffmpeg")
	if missing[0].Available || missing[0].Detail == "" {
		t.Fatalf("expected missing binary, got %+v", missing[0])
	}
}
