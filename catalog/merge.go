package catalog

import "vodsync/storage"

// Fill carries the metadata captured for a newly discovered item during a
// run. Counter fields arrive already defaulted to "0" where the source
// omitted them.
type Fill struct {
	Title       string
	PublishDate string
	// Duration is in seconds, or storage.DurationUnusable.
	Duration     int
	Description  string
	AdTimestamps string
	Thumbnail    string
	Tags         string
	Views        string
	Likes        string
	Comments     string
}

// Merge builds the final per-creator row set from the persisted snapshot and
// the fields computed this run. Starting from the snapshot makes the merge
// rule auditable: a field is only ever replaced by an explicitly computed
// value, never blanked because the fetch omitted it.
type Merge struct {
	order       []string
	known       map[string]*storage.Item
	internalIDs map[string]string
	statuses    map[string]storage.Status
	fills       map[string]*Fill
}

// NewMerge starts a merge for a creator. order is the full fetched ID list;
// the produced rows follow it exactly, not the persisted ledger's insertion
// order. known is the persisted snapshot keyed by source ID.
func NewMerge(order []string, known map[string]*storage.Item) *Merge {
	return &Merge{
		order:       order,
		known:       known,
		internalIDs: make(map[string]string),
		statuses:    make(map[string]storage.Status),
		fills:       make(map[string]*Fill),
	}
}

// SetInternalIDs supplies the derived internal IDs. Internal IDs always
// overwrite whatever the ledger held; chronological position in the current
// fetch is the only authoritative source.
func (m *Merge) SetInternalIDs(ids map[string]string) {
	m.internalIDs = ids
}

// SetStatuses supplies the merged status map from MergeStatuses.
func (m *Merge) SetStatuses(statuses map[string]storage.Status) {
	m.statuses = statuses
}

// SetFill records the metadata captured for a missing ID.
func (m *Merge) SetFill(id string, fill *Fill) {
	m.fills[id] = fill
}

// Rows produces the merged row set in fetch order. Persisted fields survive
// untouched unless a status or fill explicitly replaced them this run. An
// unusable duration in a fill forces the invalid status unless the item was
// already detected uploaded.
func (m *Merge) Rows() []*storage.Item {
	rows := make([]*storage.Item, 0, len(m.order))
	for _, id := range m.order {
		row := &storage.Item{YouTubeID: id}
		if prev, ok := m.known[id]; ok {
			copied := *prev
			row = &copied
			row.YouTubeID = id
		}

		if internalID, ok := m.internalIDs[id]; ok {
			row.InternalID = internalID
		}
		if status, ok := m.statuses[id]; ok {
			row.Status = status
		}

		if fill, ok := m.fills[id]; ok {
			row.Title = fill.Title
			row.PublishDate = fill.PublishDate
			row.Duration = fill.Duration
			row.Description = fill.Description
			row.AdTimestamps = fill.AdTimestamps
			row.Thumbnail = fill.Thumbnail
			row.Tags = fill.Tags
			row.Views = fill.Views
			row.Likes = fill.Likes
			row.Comments = fill.Comments
			if fill.Duration == storage.DurationUnusable && row.Status != storage.StatusUploaded {
				row.Status = storage.StatusInvalid
			}
		}

		rows = append(rows, row)
	}
	return rows
}
