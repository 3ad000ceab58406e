package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pramudya/lensa/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// selectMedia runs one facet lookup. Trashed records never surface; results
// come back newest first so intersections stay order-stable.
func (c *Client) selectMedia(ctx context.Context, where string, vars map[string]any) ([]models.MediaRecord, error) {
	sql := fmt.Sprintf(`
		SELECT * FROM media
		WHERE trashed = false AND (%s)
		ORDER BY captured_at DESC
	`, where)

	results, err := surrealdb.Query[[]models.MediaRecord](ctx, c.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("select media: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return []models.MediaRecord{}, nil
}

// ByName matches the display name, case-insensitive substring.
func (c *Client) ByName(ctx context.Context, name string) ([]models.MediaRecord, error) {
	return c.selectMedia(ctx,
		"string::contains(string::lowercase(display_name), $v)",
		map[string]any{"v": strings.ToLower(name)})
}

// ByYear matches the capture year.
func (c *Client) ByYear(ctx context.Context, year int) ([]models.MediaRecord, error) {
	return c.selectMedia(ctx,
		"time::year(captured_at) = $v",
		map[string]any{"v": year})
}

// ByMonth matches the capture month by name ("march", "maret") or number.
func (c *Client) ByMonth(ctx context.Context, month string) ([]models.MediaRecord, error) {
	n, ok := ParseMonth(month)
	if !ok {
		return []models.MediaRecord{}, nil
	}
	return c.selectMedia(ctx,
		"time::month(captured_at) = $v",
		map[string]any{"v": n})
}

// ByDay matches the capture day of month.
func (c *Client) ByDay(ctx context.Context, day int) ([]models.MediaRecord, error) {
	return c.selectMedia(ctx,
		"time::day(captured_at) = $v",
		map[string]any{"v": day})
}

// ByLabel matches records carrying the label at or above the confidence floor.
func (c *Client) ByLabel(ctx context.Context, label string, confidenceFloor float64) ([]models.MediaRecord, error) {
	return c.selectMedia(ctx,
		"array::len(labels[WHERE name = $v AND confidence >= $floor]) > 0",
		map[string]any{"v": label, "floor": confidenceFloor})
}

// ByText matches text recognized inside the media, case-insensitive substring.
func (c *Client) ByText(ctx context.Context, substring string) ([]models.MediaRecord, error) {
	return c.selectMedia(ctx,
		"string::contains(string::lowercase(ocr_text), $v)",
		map[string]any{"v": strings.ToLower(substring)})
}

// ByFormat matches the media format against the MIME type or URI extension.
func (c *Client) ByFormat(ctx context.Context, format string) ([]models.MediaRecord, error) {
	f := strings.ToLower(format)
	return c.selectMedia(ctx,
		"string::contains(string::lowercase(mime_type), $v) OR string::ends_with(string::lowercase(uri), $v)",
		map[string]any{"v": f})
}

// ByAlbum matches the album name, case-insensitive substring.
func (c *Client) ByAlbum(ctx context.Context, substring string) ([]models.MediaRecord, error) {
	return c.selectMedia(ctx,
		"string::contains(string::lowercase(album), $v)",
		map[string]any{"v": strings.ToLower(substring)})
}

// ByLocation matches the location label, case-insensitive substring.
func (c *Client) ByLocation(ctx context.Context, substring string) ([]models.MediaRecord, error) {
	return c.selectMedia(ctx,
		"location != NONE AND string::contains(string::lowercase(location), $v)",
		map[string]any{"v": strings.ToLower(substring)})
}

// ByCollectionTag matches the comma-joined collection tags, case-insensitive
// substring.
func (c *Client) ByCollectionTag(ctx context.Context, substring string) ([]models.MediaRecord, error) {
	return c.selectMedia(ctx,
		"string::contains(string::lowercase(collection_tags), $v)",
		map[string]any{"v": strings.ToLower(substring)})
}

// ByAlbumNameSubstring is the substring-fallback album lookup.
func (c *Client) ByAlbumNameSubstring(ctx context.Context, query string) ([]models.MediaRecord, error) {
	return c.ByAlbum(ctx, query)
}

// ByCollectionTagSubstring is the substring-fallback collection lookup.
func (c *Client) ByCollectionTagSubstring(ctx context.Context, query string) ([]models.MediaRecord, error) {
	return c.ByCollectionTag(ctx, query)
}

func (c *Client) countWhere(ctx context.Context, where string) (int, error) {
	sql := fmt.Sprintf(`SELECT count() AS c FROM media WHERE %s GROUP ALL`, where)

	results, err := surrealdb.Query[[]struct {
		C int `json:"c"`
	}](ctx, c.db, sql, nil)
	if err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].C, nil
	}
	return 0, nil
}

// CountAll returns the number of non-trashed media records.
func (c *Client) CountAll(ctx context.Context) (int, error) {
	return c.countWhere(ctx, "trashed = false")
}

// CountImages returns the number of non-trashed image records.
func (c *Client) CountImages(ctx context.Context) (int, error) {
	return c.countWhere(ctx, "trashed = false AND string::starts_with(mime_type, 'image/')")
}

// CountVideos returns the number of non-trashed video records.
func (c *Client) CountVideos(ctx context.Context) (int, error) {
	return c.countWhere(ctx, "trashed = false AND string::starts_with(mime_type, 'video/')")
}

// AppendHistory writes one append-only history row.
func (c *Client) AppendHistory(ctx context.Context, query string, timestamp int64) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE history SET query = $query, timestamp = $timestamp
	`, map[string]any{"query": query, "timestamp": timestamp})
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// ListHistory returns the most recent history entries, newest first.
func (c *Client) ListHistory(ctx context.Context, limit int) ([]models.SearchHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	results, err := surrealdb.Query[[]models.SearchHistoryEntry](ctx, c.db, `
		SELECT * FROM history ORDER BY timestamp DESC LIMIT $limit
	`, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return []models.SearchHistoryEntry{}, nil
}

// UpsertMedia creates or replaces a media record keyed by URI. The indexing
// pipeline owns record contents; this exists for seeding and tests.
func (c *Client) UpsertMedia(ctx context.Context, record models.MediaRecord) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		UPSERT media SET
			uri = $uri,
			display_name = $display_name,
			album = $album,
			captured_at = $captured_at,
			byte_size = $byte_size,
			mime_type = $mime_type,
			content_hash = $content_hash,
			location = $location,
			collection_tags = $collection_tags,
			ocr_text = $ocr_text,
			labels = $labels,
			favorite = $favorite,
			trashed = $trashed
		WHERE uri = $uri
	`, map[string]any{
		"uri":             record.URI,
		"display_name":    record.DisplayName,
		"album":           record.Album,
		"captured_at":     record.CapturedAt,
		"byte_size":       record.ByteSize,
		"mime_type":       record.MimeType,
		"content_hash":    record.ContentHash,
		"location":        record.Location,
		"collection_tags": record.CollectionTags,
		"ocr_text":        record.OCRText,
		"labels":          record.Labels,
		"favorite":        record.Favorite,
		"trashed":         record.Trashed,
	})
	if err != nil {
		return fmt.Errorf("upsert media: %w", err)
	}
	return nil
}

// monthNames accepts English and Indonesian month names.
var monthNames = map[string]int{
	"january": 1, "januari": 1,
	"february": 2, "februari": 2,
	"march": 3, "maret": 3,
	"april": 4,
	"may": 5, "mei": 5,
	"june": 6, "juni": 6,
	"july": 7, "juli": 7,
	"august": 8, "agustus": 8,
	"september": 9,
	"october": 10, "oktober": 10,
	"november": 11,
	"december": 12, "desember": 12,
}

// ParseMonth resolves a month name or number to 1..12.
func ParseMonth(s string) (int, bool) {
	term := strings.ToLower(strings.TrimSpace(s))
	if n, ok := monthNames[term]; ok {
		return n, true
	}
	if n, err := strconv.Atoi(term); err == nil && n >= 1 && n <= 12 {
		return n, true
	}
	return 0, false
}
