// Package textops implements the pure string transforms the rename
// engine composes over candidate file names: appendage add/remove,
// substring replacement, prefix trimming, and numeric run reordering.
// Every function is side-effect free and operates on a file name, not
// a path; extensions are preserved unless the transform targets them.
package textops
