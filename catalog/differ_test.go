package catalog

import (
	"reflect"
	"testing"

	"vodsync/storage"
)

func TestMissingIDsColdStart(t *testing.T) {
	fetched := []string{"c", "b", "a"}

	missing := MissingIDs(fetched, map[string]*storage.Item{})

	if !reflect.DeepEqual(missing, fetched) {
		t.Errorf("MissingIDs() = %v, want all of %v", missing, fetched)
	}
}

func TestMissingIDsPartialOverlap(t *testing.T) {
	fetched := []string{"d", "c", "b", "a"}
	known := map[string]*storage.Item{
		"a": {YouTubeID: "a"},
		"c": {YouTubeID: "c"},
	}

	missing := MissingIDs(fetched, known)

	want := []string{"d", "b"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("MissingIDs() = %v, want %v", missing, want)
	}
}

func TestMissingIDsNothingNew(t *testing.T) {
	known := map[string]*storage.Item{
		"a": {YouTubeID: "a"},
		"b": {YouTubeID: "b"},
	}

	if missing := MissingIDs([]string{"b", "a"}, known); len(missing) != 0 {
		t.Errorf("MissingIDs() = %v, want empty", missing)
	}
}
