// Package history persists finished batch reports in a SQLite database so
// past runs can be listed and inspected.
//
// The schema is versioned the same way the rest of folio's state is: a
// schema_version table holds the expected version, and a mismatch asks the
// user to delete the database rather than migrating it.
package history
