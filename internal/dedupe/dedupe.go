// Package dedupe provides a shared singleflight group used to deduplicate
// concurrent roster loads. Many simultaneous match starts referencing the
// same lineup collapse into a single card fetch while the other callers
// wait for the result.
package dedupe

import "golang.org/x/sync/singleflight"

// RosterGroup deduplicates card-catalog fetches keyed by the canonical
// comma-joined lineup ids.
var RosterGroup singleflight.Group
