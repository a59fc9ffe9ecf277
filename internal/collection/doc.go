// Package collection provides the indexed file collection backing
// navigation, thumbnails, and batch rename. A Collection assigns
// stable integer ids to an ordered list of scanned paths; the
// id-to-path mapping is the single source of truth shared by every
// consumer. A Cursor tracks the current id and computes next/previous
// targets with boundary-stop semantics.
package collection
