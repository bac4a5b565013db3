package deps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrEncoderUnavailable marks a missing or unqueryable video encoder. Callers
// treat it as fatal for the whole batch.
var ErrEncoderUnavailable = errors.New("encoder unavailable")

// EncoderInfo describes a reachable encoder binary.
type EncoderInfo struct {
	Path    string
	Version string
}

// CheckEncoder resolves binary on PATH and runs its "-version" query. A missing
// binary or a non-zero exit yields an error wrapping ErrEncoderUnavailable.
func CheckEncoder(ctx context.Context, binary string) (EncoderInfo, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	resolved, err := resolve(binary)
	if err != nil {
		return EncoderInfo{}, fmt.Errorf("%w: %w", ErrEncoderUnavailable, err)
	}

	cmd := exec.CommandContext(ctx, resolved, "-version")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return EncoderInfo{}, fmt.Errorf("%w: %s -version: %w", ErrEncoderUnavailable, resolved, err)
		}
		return EncoderInfo{}, fmt.Errorf("%w: %s -version: %w: %s", ErrEncoderUnavailable, resolved, err, detail)
	}

	return EncoderInfo{Path: resolved, Version: firstLine(stdout.String())}, nil
}

// EncoderStatus adapts CheckEncoder to the Status shape used by status output.
func EncoderStatus(ctx context.Context, binary string) Status {
	status := Status{Requirement: Requirement{
		Name:        "FFmpeg",
		Command:     strings.TrimSpace(binary),
		Description: "Required for video optimization",
	}}
	info, err := CheckEncoder(ctx, binary)
	if err != nil {
		status.Detail = strings.TrimPrefix(err.Error(), ErrEncoderUnavailable.Error()+": ")
		return status
	}
	status.Command = info.Path
	status.Available = true
	status.Detail = info.Version
	return status
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
