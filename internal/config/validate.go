package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var audioBitratePattern = regexp.MustCompile(`^[1-9][0-9]*k?$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateVideos(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateImages() error {
	if err := ensurePositiveMap(map[string]int{
		"images.width":  c.Images.Width,
		"images.height": c.Images.Height,
	}); err != nil {
		return err
	}
	if c.Images.InputDir == c.Images.OutputDir && strings.TrimSpace(c.Images.Prefix) == "" {
		return errors.New("images.prefix must be set when images.input_dir and images.output_dir are the same")
	}
	return nil
}

func (c *Config) validateVideos() error {
	if c.Videos.CRF < 0 || c.Videos.CRF > 51 {
		return errors.New("videos.crf must be between 0 and 51")
	}
	if !slices.Contains(x264Presets, c.Videos.Preset) {
		return fmt.Errorf("videos.preset %q is not a libx264 preset (valid: %s)", c.Videos.Preset, strings.Join(x264Presets, ", "))
	}
	if !audioBitratePattern.MatchString(c.Videos.AudioBitrate) {
		return fmt.Errorf("videos.audio_bitrate %q must look like 128k", c.Videos.AudioBitrate)
	}
	if c.Videos.TimeoutSeconds < 0 {
		return errors.New("videos.timeout_seconds must be >= 0")
	}
	if c.Videos.InputDir == c.Videos.OutputDir && strings.TrimSpace(c.Videos.Prefix) == "" {
		return errors.New("videos.prefix must be set when videos.input_dir and videos.output_dir are the same")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
