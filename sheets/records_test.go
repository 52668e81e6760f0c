package sheets

import (
	"testing"

	"vodsync/storage"
)

func TestRecordsFromValues(t *testing.T) {
	values := [][]interface{}{
		{"YouTube ID", "Internal ID", "Status"},
		{"abc", "K_00001", "uploaded"},
		{"def"}, // short row
	}

	records := recordsFromValues(values)
	if len(records) != 2 {
		t.Fatalf("recordsFromValues() returned %d records, want 2", len(records))
	}
	if records[0]["YouTube ID"] != "abc" || records[0]["Status"] != "uploaded" {
		t.Errorf("records[0] = %v", records[0])
	}
	if records[1]["YouTube ID"] != "def" || records[1]["Internal ID"] != "" {
		t.Errorf("short row not padded: %v", records[1])
	}
}

func TestRecordsFromValuesEmpty(t *testing.T) {
	if records := recordsFromValues(nil); records != nil {
		t.Errorf("recordsFromValues(nil) = %v, want nil", records)
	}
	// Header-only section has no records.
	headerOnly := [][]interface{}{{"YouTube ID"}}
	if records := recordsFromValues(headerOnly); records != nil {
		t.Errorf("recordsFromValues(header only) = %v, want nil", records)
	}
}

func TestCreatorRoundTrip(t *testing.T) {
	creator := &storage.Creator{
		Key:               "ACME",
		Handle:            "@acme",
		VideoFolderID:     "folder-v",
		ThumbnailFolderID: "folder-t",
		ChannelID:         "UC123",
		Title:             "Acme Films",
		Created:           "2019-05-01T00:00:00Z",
		Description:       "desc",
		Country:           "US",
		Keywords:          "films acme",
		Icon:              "https://example.com/icon.jpg",
		Banner:            "https://example.com/banner.jpg",
		UploadsID:         "UU123",
	}

	row := creatorRow(creator)
	if len(row) != len(storage.IndexHeader) {
		t.Fatalf("creatorRow() has %d cells, want %d", len(row), len(storage.IndexHeader))
	}

	values := [][]interface{}{headerRow(storage.IndexHeader), row}
	records := recordsFromValues(values)
	got := creatorFromRecord(records[0])

	if *got != *creator {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, creator)
	}
}

func TestItemRoundTrip(t *testing.T) {
	item := &storage.Item{
		YouTubeID:    "abc",
		InternalID:   "ACME_00001",
		Status:       storage.StatusIndexed,
		Title:        "First",
		PublishDate:  "2024-01-01T00:00:00Z",
		Duration:     3723,
		Description:  "desc",
		AdTimestamps: "0:01:05 - 0:02:10",
		Thumbnail:    "https://example.com/t.jpg",
		Tags:         "['a', 'b']",
		Views:        "100",
		Likes:        "5",
		Comments:     "2",
	}

	values := [][]interface{}{headerRow(storage.SectionHeader), itemRow(item)}
	got := itemFromRecord(recordsFromValues(values)[0])

	if *got != *item {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, item)
	}
}

func TestItemRowUnusableDuration(t *testing.T) {
	item := &storage.Item{YouTubeID: "abc", Duration: storage.DurationUnusable}

	row := itemRow(item)
	if row[5] != "N/A" {
		t.Errorf("Duration cell = %v, want N/A", row[5])
	}

	values := [][]interface{}{headerRow(storage.SectionHeader), row}
	got := itemFromRecord(recordsFromValues(values)[0])
	if got.Duration != storage.DurationUnusable {
		t.Errorf("Duration = %d, want sentinel", got.Duration)
	}
}

func TestParseDurationCell(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"3723", 3723},
		{"N/A", storage.DurationUnusable},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parseDurationCell(tt.input); got != tt.want {
			t.Errorf("parseDurationCell(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCellString(t *testing.T) {
	if got := cellString(float64(42)); got != "42" {
		t.Errorf("cellString(42.0) = %q, want 42", got)
	}
	if got := cellString(nil); got != "" {
		t.Errorf("cellString(nil) = %q, want empty", got)
	}
	if got := cellString("x"); got != "x" {
		t.Errorf("cellString(x) = %q, want x", got)
	}
}
