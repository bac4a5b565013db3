// Package preflight provides readiness checks for the external encoder and
// the filesystem paths folio reads and writes.
//
// The CLI "folio status" command renders RunAll's results. The video batch
// does not use this package for its abort decision; it calls the encoder
// check directly so the failure carries the encoder's own diagnostic.
package preflight
