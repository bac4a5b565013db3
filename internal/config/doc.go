// Package config loads, normalizes, and validates folio configuration data.
//
// It supplies the repository defaults (the fixed certification image and demo
// video lists, the 200x200 canvas, CRF 23 / medium encoder settings), expands
// user paths including tilde shortcuts, reads TOML files, and honours the
// FOLIO_FFMPEG environment fallback.
//
// Always obtain settings through this package so the batch commands receive
// absolute directories and clear validation errors.
package config
