// Package workers provides worker-count heuristics for the parallel
// directory walker, the thumbnail materializer, and the rename engine.
package workers
