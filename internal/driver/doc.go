// Package driver orchestrates formatting: it enumerates one task per
// constituent file of a UFO package, fans the tasks out to a bounded worker
// pool, resolves destination paths, performs the single write per file and
// aggregates per-file results into per-package reports.
//
// Fault isolation is the central guarantee. A task failure (unreadable
// file, malformed source data, write error) is captured as a tagged Result
// and never aborts sibling tasks; a package-level failure (invalid path)
// never aborts sibling package arguments. Aggregation is race-free without
// locks: each task owns exactly one pre-allocated slot in the result slice.
package driver
