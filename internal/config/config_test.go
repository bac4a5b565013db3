package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"folio/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "folio")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Images.InputDir != filepath.Join(workDir, "images") {
		t.Fatalf("unexpected images input dir: %q", cfg.Images.InputDir)
	}
	if cfg.Images.OutputDir != filepath.Join(workDir, "optimized_images") {
		t.Fatalf("unexpected images output dir: %q", cfg.Images.OutputDir)
	}
	if cfg.Videos.InputDir != workDir {
		t.Fatalf("unexpected videos input dir: %q", cfg.Videos.InputDir)
	}
	if cfg.Videos.OutputDir != filepath.Join(workDir, "optimized_videos") {
		t.Fatalf("unexpected videos output dir: %q", cfg.Videos.OutputDir)
	}
	if cfg.Images.Width != 200 || cfg.Images.Height != 200 {
		t.Fatalf("unexpected canvas: %dx%d", cfg.Images.Width, cfg.Images.Height)
	}
	if len(cfg.Images.Files) != 3 || cfg.Images.Files[0] != "mlops_datacamp.png" {
		t.Fatalf("unexpected image list: %v", cfg.Images.Files)
	}
	if len(cfg.Videos.Files) != 4 || cfg.Videos.Files[3] != "movie_recommendation.mp4" {
		t.Fatalf("unexpected video list: %v", cfg.Videos.Files)
	}
	if cfg.Videos.CRF != 23 || cfg.Videos.Preset != "medium" {
		t.Fatalf("unexpected encoder defaults: crf=%d preset=%q", cfg.Videos.CRF, cfg.Videos.Preset)
	}
	if cfg.Videos.AudioCodec != "aac" || cfg.Videos.AudioBitrate != "128k" {
		t.Fatalf("unexpected audio defaults: %q %q", cfg.Videos.AudioCodec, cfg.Videos.AudioBitrate)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "folio.toml")

	type payload struct {
		Images struct {
			InputDir string   `toml:"input_dir"`
			Files    []string `toml:"files"`
			Width    int      `toml:"width"`
		} `toml:"images"`
		Videos struct {
			CRF    int    `toml:"crf"`
			Preset string `toml:"preset"`
		} `toml:"videos"`
	}
	custom := payload{}
	custom.Images.InputDir = filepath.Join(tempDir, "certs")
	custom.Images.Files = []string{" a.png ", "a.png", "nested/b.jpg", ""}
	custom.Images.Width = 320
	custom.Videos.CRF = 28
	custom.Videos.Preset = "SLOW"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Images.InputDir != filepath.Join(tempDir, "certs") {
		t.Fatalf("unexpected input dir: %q", cfg.Images.InputDir)
	}
	if got := strings.Join(cfg.Images.Files, ","); got != "a.png,b.jpg" {
		t.Fatalf("unexpected normalized files: %q", got)
	}
	if cfg.Images.Width != 320 || cfg.Images.Height != 200 {
		t.Fatalf("unexpected canvas: %dx%d", cfg.Images.Width, cfg.Images.Height)
	}
	if cfg.Videos.CRF != 28 || cfg.Videos.Preset != "slow" {
		t.Fatalf("unexpected encoder settings: crf=%d preset=%q", cfg.Videos.CRF, cfg.Videos.Preset)
	}
}

func TestLoadEmptyFileListKeepsEmpty(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "folio.toml")
	if err := os.WriteFile(configPath, []byte("[images]\nfiles = []\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Images.Files) != 0 {
		t.Fatalf("expected empty list to request enumeration, got %v", cfg.Images.Files)
	}
	if len(cfg.Videos.Files) != 4 {
		t.Fatalf("expected video defaults untouched, got %v", cfg.Videos.Files)
	}
}

func TestFFmpegEnvFallback(t *testing.T) {
	t.Setenv("FOLIO_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "folio.toml")
	if err := os.WriteFile(configPath, []byte("[videos]\ncrf = 23\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Videos.FFmpegBinary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected env override, got %q", cfg.Videos.FFmpegBinary)
	}

	t.Setenv("FOLIO_FFMPEG", "")
	cfg, _, _, err = config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Videos.FFmpegBinary != "ffmpeg" {
		t.Fatalf("expected PATH default, got %q", cfg.Videos.FFmpegBinary)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"crf high", func(c *config.Config) { c.Videos.CRF = 52 }, "videos.crf"},
		{"crf negative", func(c *config.Config) { c.Videos.CRF = -1 }, "videos.crf"},
		{"preset", func(c *config.Config) { c.Videos.Preset = "warp" }, "videos.preset"},
		{"bitrate", func(c *config.Config) { c.Videos.AudioBitrate = "loud" }, "videos.audio_bitrate"},
		{"timeout", func(c *config.Config) { c.Videos.TimeoutSeconds = -5 }, "videos.timeout_seconds"},
		{"width", func(c *config.Config) { c.Images.Width = 0 }, "images.width"},
		{"height", func(c *config.Config) { c.Images.Height = -3 }, "images.height"},
		{"level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"prefix", func(c *config.Config) {
			c.Images.OutputDir = c.Images.InputDir
			c.Images.Prefix = ""
		}, "images.prefix"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Videos.CRF != 23 || cfg.Images.Width != 200 {
		t.Fatalf("sample config diverges from defaults: %+v", cfg)
	}
}

func TestEncodeIncludesSections(t *testing.T) {
	cfg := config.Default()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	for _, section := range []string{"[paths]", "[images]", "[videos]", "[history]", "[logging]"} {
		if !strings.Contains(string(data), section) {
			t.Fatalf("expected %s in encoded config:\n%s", section, data)
		}
	}
}
