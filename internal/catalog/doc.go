// Package catalog builds the ordered list of eligible file paths for a
// directory. Scans filter by a configurable extension set, optionally
// descend into subdirectories with a parallel walker, and sort results
// in natural order so numbered sequences ("img2", "img10") come out in
// the order a person expects.
//
// A scan has no side effects beyond reading directory metadata. The
// resulting entries seed an IndexedCollection; the catalog itself keeps
// no state between scans.
package catalog
