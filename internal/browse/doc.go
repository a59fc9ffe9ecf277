// Package browse ties a scanned directory, its indexed collection, the
// navigation cursor, thumbnail materialization, and the rename engine
// into one session object.
//
// A Session owns all mutable state; nothing lives in package-level
// variables, so independent sessions never interfere. Consumers observe
// the session through the Changes channel rather than callbacks. Folder
// opens are asynchronous and generation-tagged: only the newest scan's
// result is ever published, and a failed scan leaves the previous
// collection in place.
package browse
