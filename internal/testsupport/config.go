package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"folio/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Images.InputDir = filepath.Join(base, "images")
	cfgVal.Images.OutputDir = filepath.Join(base, "optimized_images")
	cfgVal.Videos.InputDir = filepath.Join(base, "videos")
	cfgVal.Videos.OutputDir = filepath.Join(base, "optimized_videos")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithImageFiles replaces the configured image list.
func WithImageFiles(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Images.Files = names
	}
}

// WithVideoFiles replaces the configured video list.
func WithVideoFiles(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Videos.Files = names
	}
}

// WithHistoryDisabled turns off run history recording.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithFFmpegBinary points the video optimizer at binary.
func WithFFmpegBinary(binary string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Videos.FFmpegBinary = binary
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. ffmpeg gets FFmpegStub; any other name exits 0. If
// names is empty, ffmpeg is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			script := "#!/bin/sh\nexit 0\n"
			if name == "ffmpeg" {
				script = FFmpegStub
			}
			StubBinary(b.t, binDir, name, script)
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
