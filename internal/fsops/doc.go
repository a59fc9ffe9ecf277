// Package fsops wraps the filesystem primitives used by the rename and
// delete paths: stat, rename, and remove, each with retry logic for NFS
// stale file handle errors. Remove tolerates files that are already
// missing so delete flows stay idempotent.
package fsops
