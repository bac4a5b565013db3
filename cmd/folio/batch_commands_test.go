package main

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"folio/internal/history"
	"folio/internal/testsupport"
)

func TestImagesCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	in := env.cfg.Images.InputDir
	testsupport.WriteImage(t, filepath.Join(in, "mlops_datacamp.png"), 400, 200, color.NRGBA{R: 200, A: 255})
	if err := os.WriteFile(filepath.Join(in, "deep_learning_coursera.png"), nil, 0o644); err != nil {
		t.Fatalf("write empty image: %v", err)
	}

	out, _, err := runCLI(t, []string{"images"}, env.configPath)
	if err != nil {
		t.Fatalf("images: %v\n%s", err, out)
	}
	requireContains(t, out, "source not found")
	requireContains(t, out, "1 succeeded, 1 skipped, 1 failed")
	requireContains(t, out, "Succeeded")
	requireContains(t, out, "Skipped")

	outDir := env.cfg.Images.OutputDir
	img, err := imaging.Open(filepath.Join(outDir, "optimized_mlops_datacamp.png"))
	if err != nil {
		t.Fatalf("open optimized image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("optimized size = %dx%d, want 200x200", b.Dx(), b.Dy())
	}
	requireMissing(t, filepath.Join(outDir, "optimized_cloud_computing_datacamp.png"))
	requireMissing(t, filepath.Join(outDir, "optimized_deep_learning_coursera.png"))

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []history.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history json: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].Kind != "images" || runs[0].Succeeded != 1 || runs[0].Skipped != 1 || runs[0].Failed != 1 {
		t.Fatalf("unexpected history %+v", runs)
	}

	out, _, err = runCLI(t, []string{"history", "show", runs[0].RunID}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "mlops_datacamp.png")
	requireContains(t, out, "Failed")

	out, _, err = runCLI(t, []string{"history", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Removed 1 run(s) from "+env.cfg.HistoryPath())
}

func TestImagesCommandJSONAndOverrides(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithImageFiles("logo.jpg"), testsupport.WithHistoryDisabled())
	alt := filepath.Join(env.baseDir, "alt")
	testsupport.WriteImage(t, filepath.Join(alt, "logo.jpg"), 64, 128, color.White)

	out, _, err := runCLI(t, []string{"images", "--json", "--input", alt, "--width", "100", "--height", "50"}, env.configPath)
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	var view reportView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if view.Succeeded != 1 || len(view.Items) != 1 || view.Items[0].Unit != "KB" {
		t.Fatalf("unexpected report %+v", view)
	}
	img, err := imaging.Open(view.Items[0].Output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("output size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
	requireMissing(t, env.cfg.HistoryPath())
}

func TestVideosCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Videos.InputDir, "house_price.mp4"), 2*1024*1024)

	out, _, err := runCLI(t, []string{"videos"}, env.configPath)
	if err != nil {
		t.Fatalf("videos: %v\n%s", err, out)
	}
	requireContains(t, out, "encoder ready")
	requireContains(t, out, "2.00 MB")
	requireContains(t, out, "1.00 MB")
	requireContains(t, out, "50.0%")
	requireContains(t, out, "1 succeeded, 3 skipped, 0 failed")

	info, err := os.Stat(filepath.Join(env.cfg.Videos.OutputDir, "optimized_house_price.mp4"))
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() != 1024*1024 {
		t.Fatalf("output size = %d", info.Size())
	}
	requireMissing(t, filepath.Join(env.cfg.Videos.OutputDir, "optimized_stock_prediction.mp4"))
}

func TestVideosCommandEncoderFailureIsNotFatal(t *testing.T) {
	env := setupCLITestEnv(t)
	stub := testsupport.StubBinary(t, filepath.Join(env.baseDir, "failing"), "ffmpeg", testsupport.FFmpegFailingStub)
	env.cfg.Videos.FFmpegBinary = stub
	env.writeConfig(t)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Videos.InputDir, "face_recognition.mp4"), 1024)

	out, _, err := runCLI(t, []string{"videos"}, env.configPath)
	if err != nil {
		t.Fatalf("per-file encoder failure must not fail the run: %v", err)
	}
	requireContains(t, out, "Invalid data found when processing input")
	requireContains(t, out, "0 succeeded, 3 skipped, 1 failed")
	requireMissing(t, filepath.Join(env.cfg.Videos.OutputDir, "optimized_face_recognition.mp4"))
}

func TestVideosCommandAbortsWithoutEncoder(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFFmpegBinary("folio-no-such-ffmpeg"))
	testsupport.WriteFile(t, filepath.Join(env.cfg.Videos.InputDir, "house_price.mp4"), 1024)

	out, _, err := runCLI(t, []string{"videos"}, env.configPath)
	if err == nil {
		t.Fatal("expected missing encoder to abort the run")
	}
	requireContains(t, err.Error(), "encoder unavailable")
	if strings.Contains(out, "house_price.mp4") {
		t.Fatalf("no per-file attempt expected after encoder check failure:\n%s", out)
	}
	requireMissing(t, env.cfg.Videos.OutputDir)
	requireMissing(t, env.cfg.Paths.StateDir)
}

func TestVideosCommandRejectsBadPreset(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"videos", "--preset", "warp"}, env.configPath)
	if err == nil {
		t.Fatal("expected invalid preset to be rejected")
	}
	requireMissing(t, env.cfg.Videos.OutputDir)
}
