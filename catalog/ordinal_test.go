package catalog

import (
	"errors"
	"testing"
)

func TestAssignInternalIDsOldestGetsOne(t *testing.T) {
	// Newest-first fetch order: "old" is the creator's first ever item.
	ids, err := AssignInternalIDs("ACME", []string{"new", "mid", "old"})
	if err != nil {
		t.Fatalf("AssignInternalIDs() error = %v", err)
	}

	want := map[string]string{
		"old": "ACME_00001",
		"mid": "ACME_00002",
		"new": "ACME_00003",
	}
	for id, internalID := range want {
		if ids[id] != internalID {
			t.Errorf("ids[%q] = %q, want %q", id, ids[id], internalID)
		}
	}
}

// TestAssignInternalIDsStability verifies that publishing a new item does not
// shift the internal IDs of any existing item.
func TestAssignInternalIDsStability(t *testing.T) {
	before, err := AssignInternalIDs("ACME", []string{"v3", "v2", "v1"})
	if err != nil {
		t.Fatalf("AssignInternalIDs() error = %v", err)
	}

	// A newer item lands at the newest end of the fetch.
	after, err := AssignInternalIDs("ACME", []string{"v4", "v3", "v2", "v1"})
	if err != nil {
		t.Fatalf("AssignInternalIDs() error = %v", err)
	}

	for id, internalID := range before {
		if after[id] != internalID {
			t.Errorf("internal ID for %q changed: %q -> %q", id, internalID, after[id])
		}
	}
	if after["v4"] != "ACME_00004" {
		t.Errorf("after[v4] = %q, want ACME_00004", after["v4"])
	}
}

func TestAssignInternalIDsZeroPadding(t *testing.T) {
	ids, err := AssignInternalIDs("K", []string{"only"})
	if err != nil {
		t.Fatalf("AssignInternalIDs() error = %v", err)
	}
	if ids["only"] != "K_00001" {
		t.Errorf("ids[only] = %q, want K_00001", ids["only"])
	}
}

func TestAssignInternalIDsDuplicate(t *testing.T) {
	_, err := AssignInternalIDs("ACME", []string{"a", "b", "a"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAssignInternalIDsEmpty(t *testing.T) {
	ids, err := AssignInternalIDs("ACME", nil)
	if err != nil {
		t.Fatalf("AssignInternalIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty map, got %v", ids)
	}
}
