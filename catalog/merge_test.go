package catalog

import (
	"testing"

	"vodsync/storage"
)

func TestMergePreservesPersistedFields(t *testing.T) {
	known := map[string]*storage.Item{
		"a": {
			YouTubeID:    "a",
			InternalID:   "K_00001",
			Status:       storage.StatusIndexed,
			Title:        "First Video",
			PublishDate:  "2024-01-02T03:04:05Z",
			Duration:     600,
			Description:  "original description",
			AdTimestamps: "0:01:05 - 0:02:10",
			Thumbnail:    "https://example.com/a.jpg",
			Tags:         "['x', 'y']",
			Views:        "123",
			Likes:        "45",
			Comments:     "6",
		},
	}

	m := NewMerge([]string{"a"}, known)
	m.SetInternalIDs(map[string]string{"a": "K_00001"})
	m.SetStatuses(map[string]storage.Status{"a": storage.StatusIndexed})

	rows := m.Rows()
	if len(rows) != 1 {
		t.Fatalf("Rows() returned %d rows, want 1", len(rows))
	}
	if *rows[0] != *known["a"] {
		t.Errorf("row mutated without a fill: got %+v, want %+v", rows[0], known["a"])
	}
}

func TestMergeRecomputesInternalID(t *testing.T) {
	known := map[string]*storage.Item{
		"a": {YouTubeID: "a", InternalID: "K_09999", Status: storage.StatusIndexed},
	}

	m := NewMerge([]string{"a"}, known)
	m.SetInternalIDs(map[string]string{"a": "K_00001"})
	m.SetStatuses(map[string]storage.Status{"a": storage.StatusIndexed})

	rows := m.Rows()
	if rows[0].InternalID != "K_00001" {
		t.Errorf("InternalID = %q, want recomputed K_00001", rows[0].InternalID)
	}
}

func TestMergeRowsFollowFetchOrder(t *testing.T) {
	known := map[string]*storage.Item{
		"old": {YouTubeID: "old", Status: storage.StatusUploaded},
	}

	m := NewMerge([]string{"new", "old"}, known)
	m.SetInternalIDs(map[string]string{"new": "K_00002", "old": "K_00001"})
	m.SetStatuses(map[string]storage.Status{
		"new": storage.StatusIndexed,
		"old": storage.StatusUploaded,
	})
	m.SetFill("new", &Fill{Title: "New Video", Duration: 100})

	rows := m.Rows()
	if len(rows) != 2 {
		t.Fatalf("Rows() returned %d rows, want 2", len(rows))
	}
	if rows[0].YouTubeID != "new" || rows[1].YouTubeID != "old" {
		t.Errorf("row order = [%s %s], want [new old]", rows[0].YouTubeID, rows[1].YouTubeID)
	}
}

func TestMergeFillPopulatesNewItem(t *testing.T) {
	m := NewMerge([]string{"a"}, nil)
	m.SetInternalIDs(map[string]string{"a": "K_00001"})
	m.SetStatuses(map[string]storage.Status{"a": storage.StatusIndexed})
	m.SetFill("a", &Fill{
		Title:       "Video",
		PublishDate: "2024-06-01T00:00:00Z",
		Duration:    90,
		Description: "desc",
		Thumbnail:   "https://example.com/t.jpg",
		Tags:        "['tag']",
		Views:       "10",
		Likes:       "0",
		Comments:    "0",
	})

	row := m.Rows()[0]
	if row.Status != storage.StatusIndexed {
		t.Errorf("Status = %q, want indexed", row.Status)
	}
	if row.Title != "Video" || row.Duration != 90 || row.Views != "10" {
		t.Errorf("fill not applied: %+v", row)
	}
}

func TestMergeUnusableDurationForcesInvalid(t *testing.T) {
	m := NewMerge([]string{"a"}, nil)
	m.SetInternalIDs(map[string]string{"a": "K_00001"})
	m.SetStatuses(map[string]storage.Status{"a": storage.StatusIndexed})
	m.SetFill("a", &Fill{Title: "Premiere", Duration: storage.DurationUnusable})

	row := m.Rows()[0]
	if row.Status != storage.StatusInvalid {
		t.Errorf("Status = %q, want invalid", row.Status)
	}
}

func TestMergeUploadedBeatsInvalid(t *testing.T) {
	// The file already exists remotely: uploaded wins even if the fetched
	// duration is unusable.
	m := NewMerge([]string{"a"}, nil)
	m.SetInternalIDs(map[string]string{"a": "K_00001"})
	m.SetStatuses(map[string]storage.Status{"a": storage.StatusUploaded})
	m.SetFill("a", &Fill{Title: "Video", Duration: storage.DurationUnusable})

	row := m.Rows()[0]
	if row.Status != storage.StatusUploaded {
		t.Errorf("Status = %q, want uploaded", row.Status)
	}
}

// TestMergeColdStart covers the first run against an empty section: every
// fetched ID is filled and ends indexed or invalid.
func TestMergeColdStart(t *testing.T) {
	fetched := []string{"c", "b", "a"}

	missing := MissingIDs(fetched, nil)
	if len(missing) != 3 {
		t.Fatalf("MissingIDs() = %v, want 3 ids", missing)
	}

	internalIDs, err := AssignInternalIDs("K", fetched)
	if err != nil {
		t.Fatalf("AssignInternalIDs() error = %v", err)
	}
	statuses := MergeStatuses(fetched, internalIDs, nil, nil)

	m := NewMerge(fetched, nil)
	m.SetInternalIDs(internalIDs)
	m.SetStatuses(statuses)
	m.SetFill("c", &Fill{Title: "C", Duration: 30})
	m.SetFill("b", &Fill{Title: "B", Duration: storage.DurationUnusable})
	m.SetFill("a", &Fill{Title: "A", Duration: 60})

	rows := m.Rows()
	wantIDs := []string{"K_00003", "K_00002", "K_00001"}
	wantStatus := []storage.Status{storage.StatusIndexed, storage.StatusInvalid, storage.StatusIndexed}
	for i, row := range rows {
		if row.InternalID != wantIDs[i] {
			t.Errorf("rows[%d].InternalID = %q, want %q", i, row.InternalID, wantIDs[i])
		}
		if row.Status != wantStatus[i] {
			t.Errorf("rows[%d].Status = %q, want %q", i, row.Status, wantStatus[i])
		}
	}
}
