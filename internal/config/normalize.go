package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeImages(); err != nil {
		return err
	}
	if err := c.normalizeVideos(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeImages() error {
	var err error
	if strings.TrimSpace(c.Images.InputDir) == "" {
		c.Images.InputDir = defaultImagesInputDir
	}
	if c.Images.InputDir, err = expandPath(c.Images.InputDir); err != nil {
		return fmt.Errorf("images.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Images.OutputDir) == "" {
		c.Images.OutputDir = defaultImagesOutputDir
	}
	if c.Images.OutputDir, err = expandPath(c.Images.OutputDir); err != nil {
		return fmt.Errorf("images.output_dir: %w", err)
	}
	c.Images.Files = normalizeNames(c.Images.Files)
	c.Images.Extensions = normalizeExtensions(c.Images.Extensions, defaultImageExtensions)
	return nil
}

func (c *Config) normalizeVideos() error {
	var err error
	if strings.TrimSpace(c.Videos.InputDir) == "" {
		c.Videos.InputDir = defaultVideosInputDir
	}
	if c.Videos.InputDir, err = expandPath(c.Videos.InputDir); err != nil {
		return fmt.Errorf("videos.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Videos.OutputDir) == "" {
		c.Videos.OutputDir = defaultVideosOutputDir
	}
	if c.Videos.OutputDir, err = expandPath(c.Videos.OutputDir); err != nil {
		return fmt.Errorf("videos.output_dir: %w", err)
	}
	c.Videos.Files = normalizeNames(c.Videos.Files)
	c.Videos.Extensions = normalizeExtensions(c.Videos.Extensions, defaultVideoExtensions)

	c.Videos.FFmpegBinary = strings.TrimSpace(c.Videos.FFmpegBinary)
	if c.Videos.FFmpegBinary == "" {
		if value, ok := os.LookupEnv("FOLIO_FFMPEG"); ok && strings.TrimSpace(value) != "" {
			c.Videos.FFmpegBinary = strings.TrimSpace(value)
		} else {
			c.Videos.FFmpegBinary = defaultFFmpegBinary
		}
	}
	c.Videos.Preset = strings.ToLower(strings.TrimSpace(c.Videos.Preset))
	if c.Videos.Preset == "" {
		c.Videos.Preset = defaultPreset
	}
	c.Videos.AudioCodec = strings.TrimSpace(c.Videos.AudioCodec)
	if c.Videos.AudioCodec == "" {
		c.Videos.AudioCodec = defaultAudioCodec
	}
	c.Videos.AudioBitrate = strings.ToLower(strings.TrimSpace(c.Videos.AudioBitrate))
	if c.Videos.AudioBitrate == "" {
		c.Videos.AudioBitrate = defaultAudioBitrate
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeNames trims entries, drops blanks and duplicates, and keeps only the
// base name so a list entry can never escape the input directory.
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.Base(trimmed)
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func normalizeExtensions(exts []string, fallback []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return cloneStrings(fallback)
	}
	return out
}
