// Package batch walks a list of source files and hands each one to a
// Processor, strictly one at a time.
//
// Every item ends in exactly one outcome: succeeded, skipped (source missing),
// or failed (the processor returned an error). Item failures are logged and
// recorded but never abort the run; only a failed precondition, a held run
// lock, an unusable output directory, or context cancellation ends a run
// early. Nothing is retried.
//
// Size reporting follows the portfolio scripts: sizes are rounded to two
// decimals in the job's unit (KB for images, MB for videos) and the reduction
// percentage is computed from those rounded values, to one decimal.
package batch
