package drive

import "testing"

func TestMP4Stems(t *testing.T) {
	files := []File{
		{Name: "ACME_00001.mp4", MimeType: "video/mp4"},
		{Name: "ACME_00002.mp4", MimeType: "video/mp4"},
		{Name: "notes.txt", MimeType: "text/plain"},
		{Name: "ACME_00003.webm", MimeType: "video/webm"},
	}

	stems := mp4Stems(files)
	if len(stems) != 2 {
		t.Fatalf("mp4Stems() has %d entries, want 2", len(stems))
	}
	if !stems["ACME_00001"] || !stems["ACME_00002"] {
		t.Errorf("mp4Stems() = %v", stems)
	}
}

func TestThumbnailStems(t *testing.T) {
	files := []File{
		{Name: "ACME_00001_TN.jpg", MimeType: "image/jpeg"},
		{Name: "ACME_00001.mp4", MimeType: "video/mp4"},
		{Name: "banner.jpg", MimeType: "image/jpeg"},
	}

	stems := thumbnailStems(files)
	if !stems["ACME_00001"] {
		t.Errorf("thumbnailStems() = %v, want ACME_00001 present", stems)
	}
	// A jpeg without the suffix still counts under its own name, never as an
	// internal ID stem.
	if stems["ACME_00001.mp4"] {
		t.Error("mp4 entry leaked into thumbnail stems")
	}
}
