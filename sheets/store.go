// Package sheets implements the spreadsheet-backed ledger store.
//
// The ledger is a single spreadsheet: a distinguished "Index" section holds
// the creator table, and each creator has a section named by its key. Every
// write clears a section and rewrites the whole table, so a concurrent reader
// never observes a partially updated section. Concurrent writers are not
// supported; invocations must be serialized externally.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"vodsync/storage"
)

// indexSection is the reserved name of the creator table.
const indexSection = "Index"

// Store is the sheets/v4 ledger store. It implements storage.LedgerStore.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewStore creates a ledger store for the given spreadsheet, authenticated
// from a service account credentials file.
func NewStore(ctx context.Context, credentialsFile, spreadsheetID string) (*Store, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// LoadIndex reads the creator table keyed by creator key, preserving row order.
func (s *Store) LoadIndex(ctx context.Context) ([]string, map[string]*storage.Creator, error) {
	values, err := s.readSection(ctx, indexSection)
	if err != nil {
		return nil, nil, &storage.StoreError{Op: "read", Section: indexSection, Err: err}
	}

	var keys []string
	index := make(map[string]*storage.Creator)
	for _, rec := range recordsFromValues(values) {
		creator := creatorFromRecord(rec)
		if creator.Key == "" {
			continue
		}
		keys = append(keys, creator.Key)
		index[creator.Key] = creator
	}
	return keys, index, nil
}

// SaveIndex rewrites the whole Index section, rows ordered by keys.
func (s *Store) SaveIndex(ctx context.Context, keys []string, index map[string]*storage.Creator) error {
	rows := make([][]interface{}, 0, len(keys)+1)
	rows = append(rows, headerRow(storage.IndexHeader))
	for _, key := range keys {
		creator, ok := index[key]
		if !ok {
			continue
		}
		rows = append(rows, creatorRow(creator))
	}

	if err := s.rewriteSection(ctx, indexSection, rows); err != nil {
		return &storage.StoreError{Op: "write", Section: indexSection, Err: err}
	}
	return nil
}

// CreatorSections lists the per-creator sections present in the spreadsheet.
func (s *Store) CreatorSections(ctx context.Context) ([]string, error) {
	resp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &storage.StoreError{Op: "list", Err: err}
	}

	var sections []string
	for _, sheet := range resp.Sheets {
		if sheet.Properties == nil || sheet.Properties.Title == indexSection {
			continue
		}
		sections = append(sections, sheet.Properties.Title)
	}
	return sections, nil
}

// LoadItems reads a creator's section keyed by source item ID.
func (s *Store) LoadItems(ctx context.Context, creatorKey string) (map[string]*storage.Item, error) {
	values, err := s.readSection(ctx, creatorKey)
	if err != nil {
		return nil, &storage.StoreError{Op: "read", Section: creatorKey, Err: err}
	}

	items := make(map[string]*storage.Item)
	for _, rec := range recordsFromValues(values) {
		item := itemFromRecord(rec)
		if item.YouTubeID == "" {
			continue
		}
		items[item.YouTubeID] = item
	}
	return items, nil
}

// SaveItems clears the creator's section and rewrites it with rows in order.
// The section is created when it does not exist yet.
func (s *Store) SaveItems(ctx context.Context, creatorKey string, items []*storage.Item) error {
	if err := s.ensureSection(ctx, creatorKey); err != nil {
		return &storage.StoreError{Op: "write", Section: creatorKey, Err: err}
	}

	rows := make([][]interface{}, 0, len(items)+1)
	rows = append(rows, headerRow(storage.SectionHeader))
	for _, item := range items {
		rows = append(rows, itemRow(item))
	}

	if err := s.rewriteSection(ctx, creatorKey, rows); err != nil {
		return &storage.StoreError{Op: "write", Section: creatorKey, Err: err}
	}
	return nil
}

func (s *Store) readSection(ctx context.Context, section string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sectionRange(section)).
		Context(ctx).
		Do()
	if err != nil {
		// The API rejects a range naming a sheet that does not exist with
		// a 400. Surface that as the section-missing sentinel so callers
		// can treat a fresh creator as an empty table.
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", storage.ErrSectionMissing, section)
		}
		return nil, err
	}
	return resp.Values, nil
}

// ensureSection creates the named sheet when it does not exist yet, so a
// creator's first sync can write its table without manual setup.
func (s *Store) ensureSection(ctx context.Context, section string) error {
	existing, err := s.CreatorSections(ctx)
	if err != nil {
		return err
	}
	if section == indexSection {
		return nil
	}
	for _, name := range existing {
		if name == section {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: section},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add section: %w", err)
	}
	return nil
}

// rewriteSection clears the section before writing so stale rows beyond the
// new table cannot survive a shrink.
func (s *Store) rewriteSection(ctx context.Context, section string, rows [][]interface{}) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, sectionRange(section), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear section: %w", err)
	}

	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sectionRange(section)+"!A1", &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	return nil
}

// sectionRange quotes a section name for use in an A1 range.
func sectionRange(section string) string {
	return "'" + section + "'"
}

func headerRow(header []string) []interface{} {
	row := make([]interface{}, len(header))
	for i, name := range header {
		row[i] = name
	}
	return row
}
