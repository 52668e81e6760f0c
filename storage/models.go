package storage

// Status is the lifecycle state of a catalog item.
// Transitions are strictly forward: an absent item becomes StatusIndexed when
// first seen, StatusInvalid when its duration is unusable, and StatusUploaded
// once its materialized file is detected in remote storage. StatusUploaded and
// StatusInvalid are terminal.
type Status string

const (
	// StatusNone means the item has not been seen yet.
	StatusNone Status = ""
	// StatusIndexed means metadata has been captured and the item is a
	// candidate for download, transcode and upload.
	StatusIndexed Status = "indexed"
	// StatusInvalid means the source reported an unusable duration
	// (e.g. an upcoming premiere). Invalid items are never downloaded.
	StatusInvalid Status = "invalid"
	// StatusUploaded means a materialized file for the item's internal ID
	// exists at the remote storage location.
	StatusUploaded Status = "uploaded"
)

// Terminal reports whether the status excludes the item from further pipeline
// stages.
func (s Status) Terminal() bool {
	return s == StatusUploaded || s == StatusInvalid
}

// DurationUnusable is the sentinel for items whose source duration cannot be
// interpreted (the API reports "P0D" for premieres and live placeholders).
// It is rendered as "N/A" in the ledger.
const DurationUnusable = -1

// Creator is one tracked content creator, keyed by a stable internal key that
// is assigned externally and never changed by this system.
type Creator struct {
	// Key is the primary identity, also the name of the creator's ledger section.
	Key string
	// Handle is the human-entered source handle (e.g. "@somecreator").
	Handle string
	// VideoFolderID is the remote storage folder for materialized videos.
	VideoFolderID string
	// ThumbnailFolderID is the remote storage folder for thumbnails.
	ThumbnailFolderID string

	// ChannelID is the resolved source channel identity. Write-once: a
	// creator with a non-empty ChannelID is never re-resolved.
	ChannelID string

	// Profile fields, populated once at first resolution.
	Title       string
	Created     string
	Description string
	Country     string
	Keywords    string
	Icon        string
	Banner      string

	// UploadsID is the identifier of the creator's uploads feed. Write-once.
	UploadsID string
}

// Resolved reports whether the creator's source channel identity has been
// established. Resolved creators are skipped by the index reconciler.
func (c *Creator) Resolved() bool {
	return c.ChannelID != ""
}

// Item is one content item, keyed by its source-platform ID and scoped under
// its owning creator's ledger section.
type Item struct {
	// YouTubeID is the source-platform video ID.
	YouTubeID string
	// InternalID is "{creatorKey}_{5-digit ordinal}", ordinal 1 being the
	// creator's oldest item. Derived every run from chronological position;
	// never authoritative in the ledger.
	InternalID string
	// Status is the item's lifecycle state.
	Status Status

	Title       string
	PublishDate string
	// Duration is the item length in seconds, or DurationUnusable.
	Duration int
	Description string
	// AdTimestamps is the formatted skip-segment list ("H:MM:SS - H:MM:SS"
	// ranges joined by ", "). Best-effort; may be empty.
	AdTimestamps string
	Thumbnail    string
	// Tags is the source tag list serialized as text.
	Tags string

	// Engagement counters, each independently optional at the source and
	// defaulting to "0" when omitted.
	Views    string
	Likes    string
	Comments string
}

// Ledger column orders are fixed contracts. Reordering breaks round-trip
// compatibility with existing spreadsheets and must be versioned if changed.
var (
	// IndexHeader is the column order of the Index section.
	IndexHeader = []string{
		"Key", "Handle", "Video Drive ID", "Thumbnail Drive ID", "Channel ID",
		"Title", "Created", "Description", "Country", "Keywords", "Icon",
		"Banner", "Uploads ID",
	}

	// SectionHeader is the column order of each per-creator section.
	SectionHeader = []string{
		"YouTube ID", "Internal ID", "Status", "Title", "Publish Date",
		"Duration", "Description", "Ad Timestamps", "Thumbnail", "Tags",
		"Views", "Likes", "Comments",
	}
)
