package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for batch run identifiers.
	FieldRunID = "run_id"
	// FieldKind is the standardized structured logging key for the batch kind (images, videos).
	FieldKind = "kind"
	// FieldItem is the standardized structured logging key for the file being processed.
	FieldItem = "item"
)

type contextKey int

const (
	runIDKey contextKey = iota
	kindKey
)

// WithRun stamps the batch run ID and kind onto ctx.
func WithRun(ctx context.Context, runID, kind string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	return context.WithValue(ctx, kindKey, kind)
}

// RunFromContext returns the run ID and kind stored by WithRun.
func RunFromContext(ctx context.Context) (runID, kind string, ok bool) {
	if ctx == nil {
		return "", "", false
	}
	runID, ok = ctx.Value(runIDKey).(string)
	kind, _ = ctx.Value(kindKey).(string)
	return runID, kind, ok
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	runID, kind, ok := RunFromContext(ctx)
	if !ok {
		return nil
	}
	fields := []slog.Attr{slog.String(FieldRunID, runID)}
	if kind != "" {
		fields = append(fields, slog.String(FieldKind, kind))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
