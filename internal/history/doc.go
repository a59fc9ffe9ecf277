// Package history keeps a sqlite-backed journal of committed renames.
// Each batch commit appends one record per successfully renamed file so
// a batch can be undone by hand. The journal is best-effort: write
// failures are logged by the caller and never fail a rename batch.
package history
