package sheets

import (
	"strconv"

	"vodsync/catalog"
	"vodsync/storage"
)

// record is one ledger row keyed by header column name.
type record map[string]string

// recordsFromValues converts a raw value grid into header-keyed records.
// The first row is the header; short rows are padded with empty cells.
func recordsFromValues(values [][]interface{}) []record {
	if len(values) < 2 {
		return nil
	}

	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = cellString(cell)
	}

	records := make([]record, 0, len(values)-1)
	for _, row := range values[1:] {
		rec := make(record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = cellString(row[i])
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b)
	}
	return ""
}

// creatorFromRecord maps an Index row onto a Creator.
func creatorFromRecord(rec record) *storage.Creator {
	return &storage.Creator{
		Key:               rec["Key"],
		Handle:            rec["Handle"],
		VideoFolderID:     rec["Video Drive ID"],
		ThumbnailFolderID: rec["Thumbnail Drive ID"],
		ChannelID:         rec["Channel ID"],
		Title:             rec["Title"],
		Created:           rec["Created"],
		Description:       rec["Description"],
		Country:           rec["Country"],
		Keywords:          rec["Keywords"],
		Icon:              rec["Icon"],
		Banner:            rec["Banner"],
		UploadsID:         rec["Uploads ID"],
	}
}

// creatorRow renders a Creator in the Index column order.
func creatorRow(c *storage.Creator) []interface{} {
	return []interface{}{
		c.Key, c.Handle, c.VideoFolderID, c.ThumbnailFolderID, c.ChannelID,
		c.Title, c.Created, c.Description, c.Country, c.Keywords, c.Icon,
		c.Banner, c.UploadsID,
	}
}

// itemFromRecord maps a creator-section row onto an Item.
func itemFromRecord(rec record) *storage.Item {
	return &storage.Item{
		YouTubeID:    rec["YouTube ID"],
		InternalID:   rec["Internal ID"],
		Status:       storage.Status(rec["Status"]),
		Title:        rec["Title"],
		PublishDate:  rec["Publish Date"],
		Duration:     parseDurationCell(rec["Duration"]),
		Description:  rec["Description"],
		AdTimestamps: rec["Ad Timestamps"],
		Thumbnail:    rec["Thumbnail"],
		Tags:         rec["Tags"],
		Views:        rec["Views"],
		Likes:        rec["Likes"],
		Comments:     rec["Comments"],
	}
}

// itemRow renders an Item in the section column order.
func itemRow(item *storage.Item) []interface{} {
	return []interface{}{
		item.YouTubeID, item.InternalID, string(item.Status), item.Title,
		item.PublishDate, catalog.FormatDuration(item.Duration),
		item.Description, item.AdTimestamps, item.Thumbnail, item.Tags,
		item.Views, item.Likes, item.Comments,
	}
}

// parseDurationCell reads the Duration column: "N/A" is the unusable
// sentinel, anything non-numeric reads as zero.
func parseDurationCell(s string) int {
	if s == "N/A" {
		return storage.DurationUnusable
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
