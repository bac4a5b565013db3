package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/batch"
	"folio/internal/config"
	"folio/internal/imageopt"
	"folio/internal/logging"
	"folio/internal/transcode"
)

type batchFlags struct {
	input  string
	output string
	json   bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.input, "input", "", "Override the source directory")
	cmd.Flags().StringVar(&f.output, "output", "", "Override the output directory")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the run report as JSON instead of a table")
}

// logWriter keeps stdout clean for JSON output.
func (f *batchFlags) logWriter(cmd *cobra.Command) io.Writer {
	if f.json {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// apply resolves directory overrides into absolute paths.
func (f *batchFlags) apply(input, output *string) error {
	if f.input != "" {
		expanded, err := config.ExpandPath(f.input)
		if err != nil {
			return fmt.Errorf("resolve --input: %w", err)
		}
		*input = expanded
	}
	if f.output != "" {
		expanded, err := config.ExpandPath(f.output)
		if err != nil {
			return fmt.Errorf("resolve --output: %w", err)
		}
		*output = expanded
	}
	return nil
}

func newImagesCommand(ctx *commandContext) *cobra.Command {
	var flags batchFlags
	var width, height int

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Resize certification images onto fixed-size white PNG canvases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := loaded.Images
			if err := flags.apply(&cfg.InputDir, &cfg.OutputDir); err != nil {
				return err
			}
			if width > 0 {
				cfg.Width = width
			}
			if height > 0 {
				cfg.Height = height
			}
			effective := *loaded
			effective.Images = cfg
			if err := effective.Validate(); err != nil {
				return err
			}
			logger, err := ctx.logger(flags.logWriter(cmd))
			if err != nil {
				return err
			}

			job := batch.Job{
				Kind:           batch.KindImages,
				InputDir:       cfg.InputDir,
				OutputDir:      cfg.OutputDir,
				Prefix:         cfg.Prefix,
				Names:          cfg.Files,
				Extensions:     cfg.Extensions,
				Unit:           batch.KB,
				Processor:      imageopt.NewOptimizer(cfg.Width, cfg.Height),
				CreateInputDir: true,
				MissingHint:    fmt.Sprintf("place the image in %s", cfg.InputDir),
			}
			return runBatch(cmd, ctx, logger, job, flags.json)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&width, "width", 0, "Canvas width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "Canvas height in pixels (default from config)")
	return cmd
}

func newVideosCommand(ctx *commandContext) *cobra.Command {
	var flags batchFlags
	var crf int
	var preset string

	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Re-encode demo videos as H.264/AAC faststart MP4s with ffmpeg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := loaded.Videos
			if err := flags.apply(&cfg.InputDir, &cfg.OutputDir); err != nil {
				return err
			}
			if cmd.Flags().Changed("crf") {
				cfg.CRF = crf
			}
			if preset != "" {
				cfg.Preset = preset
			}
			effective := *loaded
			effective.Videos = cfg
			if err := effective.Validate(); err != nil {
				return err
			}
			logger, err := ctx.logger(flags.logWriter(cmd))
			if err != nil {
				return err
			}

			encoder := transcode.New(transcode.Settings{
				Binary:       cfg.FFmpegBinary,
				CRF:          cfg.CRF,
				Preset:       cfg.Preset,
				AudioCodec:   cfg.AudioCodec,
				AudioBitrate: cfg.AudioBitrate,
				Timeout:      time.Duration(cfg.TimeoutSeconds) * time.Second,
			})

			job := batch.Job{
				Kind:        batch.KindVideos,
				InputDir:    cfg.InputDir,
				OutputDir:   cfg.OutputDir,
				Prefix:      cfg.Prefix,
				Names:       cfg.Files,
				Extensions:  cfg.Extensions,
				Unit:        batch.MB,
				Processor:   encoder,
				MissingHint: fmt.Sprintf("place the video in %s", cfg.InputDir),
				Precheck: func(ctx context.Context) error {
					info, err := encoder.Check(ctx)
					if err != nil {
						return err
					}
					logger.Info("encoder ready",
						logging.String("path", info.Path),
						logging.String("version", info.Version),
					)
					return nil
				},
			}
			return runBatch(cmd, ctx, logger, job, flags.json)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&crf, "crf", 0, "x264 constant rate factor (default from config)")
	cmd.Flags().StringVar(&preset, "preset", "", "x264 preset (default from config)")
	return cmd
}

func runBatch(cmd *cobra.Command, ctx *commandContext, logger *slog.Logger, job batch.Job, asJSON bool) error {
	runner, err := ctx.runner(logger)
	if err != nil {
		return err
	}

	report, err := runner.Run(cmd.Context(), job)
	if err != nil {
		if errors.Is(err, batch.ErrPrecondition) {
			return fmt.Errorf("%s optimization aborted: %w", job.Kind, err)
		}
		return err
	}

	if asJSON {
		if err := writeJSON(cmd, newReportView(report)); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
	}
	if report.Interrupted {
		return context.Canceled
	}
	return nil
}
