// Package storage defines the ledger models and store abstractions for vodsync.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common store conditions.
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("storage: not found")
	// ErrSectionMissing indicates a creator's ledger section does not exist.
	ErrSectionMissing = errors.New("storage: section missing")
	// ErrStoreCorrupt indicates the ledger's header row does not match the
	// fixed column contract.
	ErrStoreCorrupt = errors.New("storage: ledger corrupt")
)

// StoreError wraps store errors with operation and section context.
// Use errors.As() to extract it:
//
//	var storErr *storage.StoreError
//	if errors.As(err, &storErr) {
//		fmt.Printf("failed to %s %s: %v\n", storErr.Op, storErr.Section, storErr.Err)
//	}
type StoreError struct {
	// Op is the operation that failed ("read", "write", "list").
	Op string
	// Section is the ledger section involved ("Index" or a creator key).
	Section string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the store error.
func (e *StoreError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Section, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StoreError) Unwrap() error { return e.Err }

// IndexStore handles the Index section holding creator records.
type IndexStore interface {
	// LoadIndex reads all creator records keyed by creator key. The returned
	// key slice preserves the ledger's row order so a rewrite keeps rows
	// where the operator placed them.
	LoadIndex(ctx context.Context) ([]string, map[string]*Creator, error)
	// SaveIndex rewrites the whole Index section from the given records,
	// ordered by the keys slice.
	SaveIndex(ctx context.Context, keys []string, index map[string]*Creator) error
	// CreatorSections lists the per-creator section names present in the
	// ledger, excluding the Index section itself.
	CreatorSections(ctx context.Context) ([]string, error)
}

// CatalogStore handles per-creator item sections. Sections are always
// rewritten as a whole table, never row by row, so a concurrent reader never
// observes a half-updated section.
type CatalogStore interface {
	// LoadItems reads a creator's section as records keyed by source item ID,
	// preserving nothing about row order (order is re-derived on write).
	LoadItems(ctx context.Context, creatorKey string) (map[string]*Item, error)
	// SaveItems clears the creator's section and rewrites it with the given
	// rows in order.
	SaveItems(ctx context.Context, creatorKey string, rows []*Item) error
}

// LedgerStore combines the index and catalog surfaces of the backing ledger.
type LedgerStore interface {
	IndexStore
	CatalogStore
}
