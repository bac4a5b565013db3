package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"folio/internal/fileutil"
	"folio/internal/logging"
)

// Processor turns one source file into one output file.
type Processor interface {
	Process(ctx context.Context, src, dst string) error
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, src, dst string) error

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, src, dst string) error { return f(ctx, src, dst) }

// Recorder persists finished reports.
type Recorder interface {
	Record(ctx context.Context, report Report) error
}

// Job describes one batch.
type Job struct {
	Kind       Kind
	InputDir   string
	OutputDir  string
	Prefix     string
	Names      []string
	Extensions []string
	Unit       Unit
	Processor  Processor
	// Precheck runs before anything touches the filesystem. An error aborts
	// the run with ErrPrecondition.
	Precheck func(ctx context.Context) error
	// CreateInputDir creates InputDir when absent so the user has a place to
	// drop sources.
	CreateInputDir bool
	// MissingHint is appended to the not-found notice for a missing source.
	MissingHint string
}

// OutputName is the output file name for a source name.
func (j Job) OutputName(name string) string {
	return j.Prefix + name
}

// Runner executes jobs sequentially under an optional file lock.
type Runner struct {
	logger   *slog.Logger
	lockPath string
	recorder Recorder
	newID    func() string
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLockPath makes the runner hold an exclusive lock on path for each run.
func WithLockPath(path string) Option {
	return func(r *Runner) { r.lockPath = path }
}

// WithRecorder records every finished report. Recording failures are logged.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner constructs a Runner.
func NewRunner(logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		logger: logging.NewComponentLogger(logger, "batch"),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every item of job. Item failures are reported in the
// returned Report, not as an error.
func (r *Runner) Run(ctx context.Context, job Job) (Report, error) {
	if job.Processor == nil {
		return Report{}, errors.New("batch job has no processor")
	}
	if job.Unit.Bytes == 0 {
		job.Unit = KB
	}

	if job.Precheck != nil {
		if err := job.Precheck(ctx); err != nil {
			return Report{}, fmt.Errorf("%w: %w", ErrPrecondition, err)
		}
	}

	if r.lockPath != "" {
		if err := os.MkdirAll(filepath.Dir(r.lockPath), 0o755); err != nil {
			return Report{}, fmt.Errorf("create lock directory: %w", err)
		}
		lock := flock.New(r.lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return Report{}, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return Report{}, ErrLocked
		}
		defer func() { _ = lock.Unlock() }()
	}

	report := Report{
		RunID:     r.newID(),
		Kind:      job.Kind,
		Unit:      job.Unit,
		InputDir:  job.InputDir,
		OutputDir: job.OutputDir,
		StartedAt: r.now(),
	}
	ctx = logging.WithRun(ctx, report.RunID, string(job.Kind))
	logger := logging.WithContext(ctx, r.logger)

	if job.CreateInputDir {
		if err := os.MkdirAll(job.InputDir, 0o755); err != nil {
			return Report{}, fmt.Errorf("create input directory: %w", err)
		}
	}

	names, err := r.resolveNames(job, logger)
	if err != nil {
		return Report{}, err
	}

	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("create output directory: %w", err)
	}

	logger.Info("batch started",
		logging.String("input_dir", job.InputDir),
		logging.String("output_dir", job.OutputDir),
		logging.Int("items", len(names)),
		logging.Bool("enumerated", len(job.Names) == 0),
	)

	for _, name := range names {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}
		item := r.runItem(ctx, logger, job, name)
		report.Items = append(report.Items, item)
		if item.Outcome == OutcomeFailed && ctx.Err() != nil {
			report.Interrupted = true
			break
		}
	}
	report.FinishedAt = r.now()

	succeeded, skipped, failed := report.Counts()
	attrs := []logging.Attr{
		logging.Int("succeeded", succeeded),
		logging.Int("skipped", skipped),
		logging.Int("failed", failed),
		logging.Int64("saved_bytes", report.SpaceSaved()),
		logging.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	}
	if report.Interrupted {
		logger.Warn("batch interrupted", logging.Args(attrs...)...)
	} else {
		logger.Info("batch finished", logging.Args(attrs...)...)
	}

	if r.recorder != nil {
		// The run's own context may be cancelled; history still gets the report.
		if err := r.recorder.Record(context.WithoutCancel(ctx), report); err != nil {
			logger.Warn("record run history failed", logging.Error(err))
		}
	}
	return report, nil
}

func (r *Runner) runItem(ctx context.Context, logger *slog.Logger, job Job, name string) (item ItemResult) {
	started := r.now()
	item = ItemResult{
		Name:   name,
		Source: filepath.Join(job.InputDir, name),
		Output: filepath.Join(job.OutputDir, job.OutputName(name)),
	}
	logger = logger.With(logging.String(logging.FieldItem, name))
	defer func() { item.Duration = r.now().Sub(started) }()

	original, err := fileutil.FileSize(item.Source)
	if err != nil {
		item.Outcome = OutcomeSkipped
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrSourceMissing, item.Source)
			attrs := []logging.Attr{logging.String("path", item.Source)}
			if job.MissingHint != "" {
				attrs = append(attrs, logging.String("hint", job.MissingHint))
			}
			logger.Info("source not found, skipping", logging.Args(attrs...)...)
		} else {
			item.Outcome = OutcomeFailed
			err = fmt.Errorf("%w: %w", ErrProcess, err)
			logger.Warn("source unreadable", logging.Error(err))
		}
		item.Error = err.Error()
		return item
	}
	item.OriginalBytes = original

	if err := job.Processor.Process(ctx, item.Source, item.Output); err != nil {
		item.Outcome = OutcomeFailed
		item.Error = fmt.Errorf("%w: %w", ErrProcess, err).Error()
		attrs := []logging.Attr{logging.Error(err)}
		if detail := diagnosticOf(err); detail != "" {
			attrs = append(attrs, logging.String("stderr", detail))
		}
		logger.Error("optimization failed", logging.Args(attrs...)...)
		return item
	}

	optimized, err := fileutil.FileSize(item.Output)
	if err != nil {
		item.Outcome = OutcomeFailed
		item.Error = fmt.Errorf("%w: stat output: %w", ErrProcess, err).Error()
		logger.Error("optimized output missing", logging.Error(err))
		return item
	}
	item.OptimizedBytes = optimized
	item.Outcome = OutcomeSucceeded

	unit := job.Unit
	logger.Info("optimized",
		logging.String("original", formatSize(unit, original)),
		logging.String("optimized", formatSize(unit, optimized)),
		logging.String("reduction", fmt.Sprintf("%.1f%%", item.Reduction(unit))),
		logging.String("output", item.Output),
	)
	return item
}

func formatSize(u Unit, bytes int64) string {
	return fmt.Sprintf("%.2f %s", u.Size(bytes), u.Name)
}

// resolveNames returns the configured names, or enumerates the input
// directory by extension when none are configured. Enumeration skips hidden
// files and files that already carry the output prefix.
func (r *Runner) resolveNames(job Job, logger *slog.Logger) ([]string, error) {
	if len(job.Names) > 0 {
		return slices.Clone(job.Names), nil
	}
	entries, err := os.ReadDir(job.InputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("input directory not found", logging.String("path", job.InputDir))
			return nil, nil
		}
		return nil, fmt.Errorf("list input directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, ".") {
			continue
		}
		if job.Prefix != "" && strings.HasPrefix(name, job.Prefix) {
			continue
		}
		if !MatchesExtension(name, job.Extensions) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// MatchesExtension reports whether name ends in one of exts (case-insensitive,
// with or without leading dot). An empty list matches everything.
func MatchesExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range exts {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if !strings.HasPrefix(candidate, ".") {
			candidate = "." + candidate
		}
		if ext == candidate {
			return true
		}
	}
	return false
}
