package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"folio/internal/deps"
)

// waitDelay bounds how long Wait keeps draining stderr after the encoder's
// process group has been killed.
const waitDelay = 2 * time.Second

// ExitError reports a failed encoder invocation.
type ExitError struct {
	Input  string
	Err    error
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("encode %s: %v", filepath.Base(e.Input), e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Diagnostic returns the encoder's captured standard error.
func (e *ExitError) Diagnostic() string { return strings.TrimSpace(e.Stderr) }

// Encoder runs ffmpeg for one file at a time. It satisfies the batch
// Processor contract.
type Encoder struct {
	settings Settings
}

// New returns an Encoder using s, falling back to defaults for blank fields.
func New(s Settings) *Encoder {
	def := DefaultSettings()
	if strings.TrimSpace(s.Binary) == "" {
		s.Binary = def.Binary
	}
	if s.Preset == "" {
		s.Preset = def.Preset
	}
	if s.AudioCodec == "" {
		s.AudioCodec = def.AudioCodec
	}
	if s.AudioBitrate == "" {
		s.AudioBitrate = def.AudioBitrate
	}
	return &Encoder{settings: s}
}

// Settings returns the effective encoder settings.
func (e *Encoder) Settings() Settings { return e.settings }

// Check verifies the encoder binary is reachable and answers a version query.
func (e *Encoder) Check(ctx context.Context) (deps.EncoderInfo, error) {
	return deps.CheckEncoder(ctx, e.settings.Binary)
}

// Process transcodes src into dst.
func (e *Encoder) Process(ctx context.Context, src, dst string) error {
	if e.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.settings.Timeout)
		defer cancel()
	}

	partial := partialPath(dst)
	cmd := exec.CommandContext(ctx, e.settings.Binary, BuildArgs(e.settings, src, partial)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	killGroupOnCancel(cmd)

	if err := cmd.Run(); err != nil {
		_ = os.Remove(partial)
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%w)", ctxErr, err)
		}
		return &ExitError{Input: src, Err: err, Stderr: stderr.String()}
	}

	if _, err := os.Stat(partial); err != nil {
		return &ExitError{Input: src, Err: errors.New("encoder exited cleanly but wrote no output"), Stderr: stderr.String()}
	}
	if err := os.Rename(partial, dst); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("finalize %s: %w", filepath.Base(dst), err)
	}
	return nil
}

// killGroupOnCancel runs the encoder in its own process group so a wrapper
// script and everything it spawned die together on timeout or interrupt.
func killGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = waitDelay
}

// partialPath keeps the container extension so ffmpeg still infers the muxer.
func partialPath(dst string) string {
	dir, base := filepath.Split(dst)
	ext := filepath.Ext(base)
	return filepath.Join(dir, "."+strings.TrimSuffix(base, ext)+".partial"+ext)
}
