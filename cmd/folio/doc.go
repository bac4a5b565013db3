// Package main hosts the folio CLI entrypoint and command graph.
//
// The Cobra command tree wires configuration, logging, and run history
// around the batch optimizers in internal/batch, internal/imageopt, and
// internal/transcode. Keep this package thin: behaviour lives in the
// internal packages and commands only translate flags into jobs and render
// the results.
package main
