package catalog

import (
	"errors"
	"fmt"
)

// ErrDuplicateID indicates a source ID appeared more than once in a single
// fetch. Ordinal assignment depends on each ID holding exactly one
// chronological position, so this is a data-integrity fault to surface, not
// silently resolve.
var ErrDuplicateID = errors.New("catalog: duplicate source id in fetch")

// AssignInternalIDs derives the internal ID for every fetched item as
// "{creatorKey}_{5-digit ordinal}", with ordinal 1 assigned to the oldest
// item. The input is the full fetched ID list in the source's newest-first
// order, so ordinals count from the far end of the slice.
//
// Because ordinals are recomputed from the full fetch every run, an ID's
// internal ID is stable across runs: newly published items extend the newest
// end and leave every existing position untouched.
func AssignInternalIDs(creatorKey string, newestFirst []string) (map[string]string, error) {
	ids := make(map[string]string, len(newestFirst))
	n := len(newestFirst)
	for i, id := range newestFirst {
		if _, dup := ids[id]; dup {
			return nil, fmt.Errorf("%w: %s fetched twice for %s", ErrDuplicateID, id, creatorKey)
		}
		ids[id] = fmt.Sprintf("%s_%05d", creatorKey, n-i)
	}
	return ids, nil
}
