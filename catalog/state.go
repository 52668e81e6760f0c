package catalog

import "vodsync/storage"

// MergeStatuses computes the lifecycle status of every fetched item for this
// run. The rules, in order of precedence:
//
//  1. If the item's internal ID appears as a filename stem in the remote
//     listing, the status is uploaded. This upgrade applies to every item on
//     every run, because materialization completes asynchronously between
//     runs; re-detection is idempotent and never downgrades.
//  2. A previously persisted item keeps its persisted status verbatim.
//  3. A newly fetched item becomes indexed, pending metadata fill.
//
// remoteStems is the remote storage listing keyed by filename stem.
func MergeStatuses(fetched []string, internalIDs map[string]string, known map[string]*storage.Item, remoteStems map[string]bool) map[string]storage.Status {
	statuses := make(map[string]storage.Status, len(fetched))
	for _, id := range fetched {
		if remoteStems[internalIDs[id]] {
			statuses[id] = storage.StatusUploaded
			continue
		}
		if item, ok := known[id]; ok {
			statuses[id] = item.Status
			continue
		}
		statuses[id] = storage.StatusIndexed
	}
	return statuses
}
