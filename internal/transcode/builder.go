package transcode

import (
	"strconv"
	"time"
)

// Settings holds the encoder parameters shared by every file in a batch.
type Settings struct {
	Binary       string
	CRF          int
	Preset       string
	AudioCodec   string
	AudioBitrate string
	// Timeout bounds one encoder invocation; zero means no limit.
	Timeout time.Duration
}

// DefaultSettings mirrors the portfolio's web encoding profile.
func DefaultSettings() Settings {
	return Settings{
		Binary:       "ffmpeg",
		CRF:          23,
		Preset:       "medium",
		AudioCodec:   "aac",
		AudioBitrate: "128k",
	}
}

// BuildArgs returns the encoder argument vector (without the binary) that
// transcodes input into output.
func BuildArgs(s Settings, input, output string) []string {
	return []string{
		"-i", input,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(s.CRF),
		"-preset", s.Preset,
		"-c:a", s.AudioCodec,
		"-b:a", s.AudioBitrate,
		// Index metadata first so playback can start before the download ends.
		"-movflags", "+faststart",
		"-y",
		output,
	}
}
