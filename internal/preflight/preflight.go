package preflight

import (
	"context"

	"folio/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional checks describe conditions a batch tolerates, such as a
	// missing source directory.
	Optional bool
}

// RunAll executes every readiness check for cfg.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckEncoder(ctx, cfg.Videos.FFmpegBinary),
		optional(CheckReadableDirectory("Image sources", cfg.Images.InputDir)),
		CheckSources("Image files", cfg.Images.InputDir, cfg.Images.Files),
		CheckOutputDirectory("Image output", cfg.Images.OutputDir),
		optional(CheckReadableDirectory("Video sources", cfg.Videos.InputDir)),
		CheckSources("Video files", cfg.Videos.InputDir, cfg.Videos.Files),
		CheckOutputDirectory("Video output", cfg.Videos.OutputDir),
	}
	if cfg.History.Enabled {
		results = append(results, CheckOutputDirectory("State directory", cfg.Paths.StateDir))
	}
	return results
}

func optional(r Result) Result {
	r.Optional = true
	return r
}

// Failed reports whether any required result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
