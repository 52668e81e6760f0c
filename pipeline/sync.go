package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"vodsync/catalog"
	"vodsync/storage"
	"vodsync/youtube"
)

// SyncCreator brings one creator's item table up to date with the source
// platform and remote storage. It fetches the full uploads feed, derives
// internal IDs from chronological position, merges lifecycle statuses
// (including uploaded detection against the remote folder), captures
// metadata and skip segments for newly discovered items, and rewrites the
// creator's section.
//
// The returned rows are the persisted table in fetch order, for use by the
// materialization stages.
func (p *Pipeline) SyncCreator(ctx context.Context, creator *storage.Creator) ([]*storage.Item, error) {
	ids, err := p.source.PlaylistVideoIDs(ctx, creator.UploadsID)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	known, err := p.store.LoadItems(ctx, creator.Key)
	if err != nil {
		if !errors.Is(err, storage.ErrSectionMissing) {
			return nil, fmt.Errorf("load items: %w", err)
		}
		known = make(map[string]*storage.Item)
	}

	internalIDs, err := catalog.AssignInternalIDs(creator.Key, ids)
	if err != nil {
		return nil, fmt.Errorf("assign internal ids: %w", err)
	}

	stems, err := p.remote.MP4Stems(ctx, creator.VideoFolderID)
	if err != nil {
		return nil, fmt.Errorf("list remote videos: %w", err)
	}

	missing := catalog.MissingIDs(ids, known)

	merge := catalog.NewMerge(ids, known)
	merge.SetInternalIDs(internalIDs)
	merge.SetStatuses(catalog.MergeStatuses(ids, internalIDs, known, stems))

	if len(missing) > 0 {
		details, err := p.source.VideoDetails(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("fetch video details: %w", err)
		}
		annotations := p.annotator.FetchAll(ctx, missing)
		for _, id := range missing {
			detail, ok := details[id]
			if !ok {
				// Listed in the feed but gone from the details
				// endpoint, usually deleted mid-run. Leave the row to
				// be filled on a later run.
				p.log.Warn().Str("video_id", id).Msg("item listed but no details returned")
				continue
			}
			ann := annotations[id]
			if !ann.Available {
				p.log.Debug().Str("video_id", id).Msg("skip segments unavailable")
			}
			merge.SetFill(id, itemFill(detail, ann.Joined()))
		}
	}

	rows := merge.Rows()
	if err := p.store.SaveItems(ctx, creator.Key, rows); err != nil {
		return nil, fmt.Errorf("save items: %w", err)
	}

	p.log.Info().
		Str("creator", creator.Key).
		Int("items", len(rows)).
		Int("new", len(missing)).
		Msg("creator synced")
	return rows, nil
}

// LoadRows reads a creator's persisted section for the standalone stage
// commands, which act on the ledger as-is without a source fetch.
func (p *Pipeline) LoadRows(ctx context.Context, creator *storage.Creator) ([]*storage.Item, error) {
	known, err := p.store.LoadItems(ctx, creator.Key)
	if err != nil {
		if errors.Is(err, storage.ErrSectionMissing) {
			return nil, nil
		}
		return nil, fmt.Errorf("load items: %w", err)
	}
	rows := make([]*storage.Item, 0, len(known))
	for _, item := range known {
		rows = append(rows, item)
	}
	// Zero-padded ordinals make string order match chronological order;
	// descending reproduces the newest-first ledger layout.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].InternalID > rows[j].InternalID
	})
	return rows, nil
}

// itemFill converts a source detail record into the merge fill for a newly
// discovered item.
func itemFill(detail *youtube.VideoDetail, adTimestamps string) *catalog.Fill {
	return &catalog.Fill{
		Title:        detail.Title,
		PublishDate:  detail.PublishedAt,
		Duration:     catalog.ParseCompactDuration(detail.Duration),
		Description:  detail.Description,
		AdTimestamps: adTimestamps,
		Thumbnail:    detail.Thumbnail,
		Tags:         youtube.FormatTags(detail.Tags),
		Views:        detail.Views,
		Likes:        detail.Likes,
		Comments:     detail.Comments,
	}
}
