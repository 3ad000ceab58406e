package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// MediaRecord is one indexed media item. Records are created and mutated by
// the indexing pipeline; the query engine only holds read-only views.
type MediaRecord struct {
	ID             surrealmodels.RecordID `json:"id"`
	URI            string                 `json:"uri"`
	DisplayName    string                 `json:"display_name"`
	Album          string                 `json:"album,omitempty"`
	CapturedAt     time.Time              `json:"captured_at"`
	ByteSize       int64                  `json:"byte_size,omitempty"`
	MimeType       string                 `json:"mime_type,omitempty"`
	ContentHash    *string                `json:"content_hash,omitempty"`
	Location       *string                `json:"location,omitempty"`
	CollectionTags string                 `json:"collection_tags,omitempty"`
	OCRText        string                 `json:"ocr_text,omitempty"`
	Labels         []RecordLabel          `json:"labels,omitempty"`
	Favorite       bool                   `json:"favorite,omitempty"`
	Trashed        bool                   `json:"trashed,omitempty"`
}

// RecordLabel is one classifier-assigned label on a media record.
type RecordLabel struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// QueryResult is the ordered outcome of one resolution: records sorted by
// capture timestamp descending, plus a human-readable facet description and
// a flag set when the caller truncated the list for display.
type QueryResult struct {
	Records       []MediaRecord `json:"records"`
	Description   string        `json:"description"`
	MoreAvailable bool          `json:"more_available,omitempty"`
}

// SearchHistoryEntry is one append-only history row.
type SearchHistoryEntry struct {
	ID        surrealmodels.RecordID `json:"id,omitempty"`
	Query     string                 `json:"query"`
	Timestamp int64                  `json:"timestamp"`
}

// MediaCounts holds the three scalar aggregates served to count requests.
type MediaCounts struct {
	Total  int `json:"total"`
	Images int `json:"images"`
	Videos int `json:"videos"`
}
