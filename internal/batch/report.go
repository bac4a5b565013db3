package batch

import (
	"math"
	"time"
)

// Kind names the batch being run.
type Kind string

const (
	KindImages Kind = "images"
	KindVideos Kind = "videos"
)

// Outcome is the terminal state of one item.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// Unit is the size unit used when reporting a batch.
type Unit struct {
	Name  string
	Bytes int64
}

var (
	KB = Unit{Name: "KB", Bytes: 1024}
	MB = Unit{Name: "MB", Bytes: 1024 * 1024}
)

// UnitByName returns KB or MB for a stored unit name, defaulting to KB.
func UnitByName(name string) Unit {
	if name == MB.Name {
		return MB
	}
	return KB
}

// Size converts bytes to the unit, rounded to two decimals.
func (u Unit) Size(bytes int64) float64 {
	if u.Bytes <= 0 {
		return 0
	}
	return roundTo(float64(bytes)/float64(u.Bytes), 2)
}

// Reduction is the percentage saved going from original to optimized, rounded
// to one decimal. An original of zero reports zero.
func Reduction(original, optimized float64) float64 {
	if original == 0 {
		return 0
	}
	return roundTo((original-optimized)/original*100, 1)
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// ItemResult captures what happened to one source file.
type ItemResult struct {
	Name           string
	Source         string
	Output         string
	Outcome        Outcome
	OriginalBytes  int64
	OptimizedBytes int64
	Error          string
	Duration       time.Duration
}

// Reduction reports the item's size reduction in u.
func (r ItemResult) Reduction(u Unit) float64 {
	return Reduction(u.Size(r.OriginalBytes), u.Size(r.OptimizedBytes))
}

// Report summarizes a batch run.
type Report struct {
	RunID       string
	Kind        Kind
	Unit        Unit
	InputDir    string
	OutputDir   string
	StartedAt   time.Time
	FinishedAt  time.Time
	Interrupted bool
	Items       []ItemResult
}

// Counts tallies items by outcome.
func (r Report) Counts() (succeeded, skipped, failed int) {
	for _, item := range r.Items {
		switch item.Outcome {
		case OutcomeSucceeded:
			succeeded++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return succeeded, skipped, failed
}

// Totals sums original and optimized bytes over succeeded items.
func (r Report) Totals() (original, optimized int64) {
	for _, item := range r.Items {
		if item.Outcome != OutcomeSucceeded {
			continue
		}
		original += item.OriginalBytes
		optimized += item.OptimizedBytes
	}
	return original, optimized
}

// SpaceSaved is the aggregate byte difference over succeeded items. Positive
// means outputs are smaller.
func (r Report) SpaceSaved() int64 {
	original, optimized := r.Totals()
	return original - optimized
}
