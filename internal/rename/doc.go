// Package rename implements two-phase batch renaming over a collection.
//
// The preview phase is pure: a Session snapshots the collection, and a
// closed set of Transforms (appendage add/remove, substring
// remove/replace, numeric reordering, prefix trimming) rewrites the
// candidate names in memory. Nothing touches disk until the commit
// phase, when an Engine validates candidates, renames files with a
// bounded worker pool, and updates the collection under a single
// writer lock. Each item carries its own status, so one failed rename
// never aborts the rest of the batch, and re-committing a session
// retries only what has not already succeeded.
package rename
