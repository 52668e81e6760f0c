// Package catalog implements the incremental reconciliation core: diffing a
// fresh source fetch against the persisted ledger, assigning stable internal
// IDs, merging lifecycle statuses and producing the row set to persist.
package catalog

import "vodsync/storage"

// MissingIDs returns, in fetch order, the source IDs absent from the
// persisted snapshot. With an empty snapshot every fetched ID is missing
// (first-run cold start). Pure; no I/O.
func MissingIDs(fetched []string, known map[string]*storage.Item) []string {
	var missing []string
	for _, id := range fetched {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
