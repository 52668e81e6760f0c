package pipeline

import (
	"context"

	"github.com/google/uuid"

	"vodsync/storage"
)

// Run executes one full pass: index reconciliation followed by sync and
// materialization for every resolved creator. Unresolved creators are
// skipped with a warning. A creator failing any stage is logged and the run
// moves on to the next one; Run only returns an error when the index itself
// cannot be read or written.
func (p *Pipeline) Run(ctx context.Context) error {
	run := *p
	run.log = p.log.With().Str("run_id", uuid.NewString()).Logger()
	return run.runAll(ctx)
}

// runAll syncs every creator first, then runs the materialization stages
// globally: all downloads, one encode pass, then uploads, thumbnails and the
// status refresh per creator. A creator failing sync drops out of the later
// stages; the others proceed.
func (p *Pipeline) runAll(ctx context.Context) error {
	keys, index, err := p.ReconcileIndex(ctx)
	if err != nil {
		return err
	}
	p.warnOrphanSections(ctx, index)

	var order []string
	synced := make(map[string][]*storage.Item)
	for _, key := range keys {
		creator := index[key]
		if !creator.Resolved() {
			p.log.Warn().Str("creator", key).Msg("creator unresolved, skipping")
			continue
		}
		rows, err := p.SyncCreator(ctx, creator)
		if err != nil {
			p.log.Error().Err(err).Str("creator", key).Msg("creator sync failed")
			continue
		}
		order = append(order, key)
		synced[key] = rows
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	for _, key := range order {
		p.DownloadPending(ctx, synced[key])
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	if err := p.EncodeAll(ctx); err != nil {
		return err
	}

	for _, key := range order {
		creator := index[key]
		rows := synced[key]
		p.UploadPending(ctx, creator, rows)
		p.MirrorThumbnails(ctx, creator, rows)
		if err := p.RefreshStatuses(ctx, creator, rows); err != nil {
			p.log.Error().Err(err).Str("creator", key).Msg("status refresh failed")
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

// warnOrphanSections flags ledger sections that no index row claims. They
// are never touched, only reported, since they usually mean a creator row
// was deleted by hand.
func (p *Pipeline) warnOrphanSections(ctx context.Context, index map[string]*storage.Creator) {
	sections, err := p.store.CreatorSections(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("list sections failed")
		return
	}
	for _, section := range sections {
		if _, ok := index[section]; !ok {
			p.log.Warn().Str("section", section).Msg("section has no index row")
		}
	}
}
