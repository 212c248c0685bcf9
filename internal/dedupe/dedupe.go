// Package dedupe provides the shared singleflight group used to
// deduplicate concurrent total-stat aggregations. Match start computes
// both players' sheets; when several rooms start at once only one
// aggregation runs per character while the other callers wait for the
// result.
package dedupe

import "golang.org/x/sync/singleflight"

// StatGroup deduplicates stat aggregation requests keyed by the
// character id (e.g. "stat:42").
var StatGroup singleflight.Group
