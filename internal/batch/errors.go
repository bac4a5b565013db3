package batch

import "errors"

var (
	// ErrSourceMissing marks an item whose source file does not exist.
	ErrSourceMissing = errors.New("source file missing")
	// ErrProcess marks an item whose processor failed.
	ErrProcess = errors.New("process failed")
	// ErrLocked reports that another run holds the batch lock.
	ErrLocked = errors.New("another folio run is in progress")
	// ErrPrecondition wraps a failed job precheck. The run stops before any
	// directory is created.
	ErrPrecondition = errors.New("precondition failed")
)

// diagnostic is implemented by processor errors that carry extra output,
// such as captured encoder stderr.
type diagnostic interface {
	Diagnostic() string
}

func diagnosticOf(err error) string {
	var d diagnostic
	if errors.As(err, &d) {
		return d.Diagnostic()
	}
	return ""
}
