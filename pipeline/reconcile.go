package pipeline

import (
	"context"
	"fmt"

	"vodsync/storage"
)

// ReconcileIndex loads the creator index, resolves every creator whose
// channel identity is not yet established, and rewrites the index once at
// the end. Resolution failures are logged per creator and leave the row
// untouched, so a bad handle never blocks the rest of the index.
//
// The returned keys and index reflect the post-reconcile state and keep the
// ledger's row order.
func (p *Pipeline) ReconcileIndex(ctx context.Context) ([]string, map[string]*storage.Creator, error) {
	keys, index, err := p.store.LoadIndex(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load index: %w", err)
	}

	resolved := 0
	for _, key := range keys {
		creator := index[key]
		if creator.Resolved() {
			continue
		}
		if err := p.resolveCreator(ctx, creator); err != nil {
			p.log.Error().Err(err).
				Str("creator", key).
				Str("handle", creator.Handle).
				Msg("creator resolution failed")
			continue
		}
		resolved++
		p.log.Info().
			Str("creator", key).
			Str("channel_id", creator.ChannelID).
			Msg("creator resolved")
	}

	if resolved > 0 {
		if err := p.store.SaveIndex(ctx, keys, index); err != nil {
			return nil, nil, fmt.Errorf("save index: %w", err)
		}
	}
	return keys, index, nil
}

// resolveCreator fills the creator's write-once profile fields from the
// source platform. A creator whose channel ID is already known but whose
// profile was never captured is completed without re-resolving the handle.
func (p *Pipeline) resolveCreator(ctx context.Context, creator *storage.Creator) error {
	channelID := creator.ChannelID
	if channelID == "" {
		id, err := p.source.ChannelIDByHandle(ctx, creator.Handle)
		if err != nil {
			return fmt.Errorf("resolve handle %q: %w", creator.Handle, err)
		}
		channelID = id
	}

	profile, err := p.source.ChannelProfile(ctx, channelID)
	if err != nil {
		return fmt.Errorf("fetch channel profile: %w", err)
	}

	creator.ChannelID = profile.ID
	creator.Title = profile.Title
	creator.Created = profile.Created
	creator.Description = profile.Description
	creator.Country = profile.Country
	creator.Keywords = profile.Keywords
	creator.Icon = profile.Icon
	creator.Banner = profile.Banner
	creator.UploadsID = profile.UploadsID
	return nil
}
