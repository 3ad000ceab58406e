// Package engine resolves free-text media queries through cascading tiers:
// structured facet filtering, substring fallback, similarity fallback.
package engine

import (
	"context"

	"github.com/pramudya/lensa/internal/models"
)

// Store is the record-store boundary: one read-only lookup operator per
// facet type, the two substring fallbacks, and three scalar aggregates.
// Implemented by db.Client; tests inject deterministic fakes.
type Store interface {
	ByName(ctx context.Context, name string) ([]models.MediaRecord, error)
	ByYear(ctx context.Context, year int) ([]models.MediaRecord, error)
	ByMonth(ctx context.Context, month string) ([]models.MediaRecord, error)
	ByDay(ctx context.Context, day int) ([]models.MediaRecord, error)
	ByLabel(ctx context.Context, label string, confidenceFloor float64) ([]models.MediaRecord, error)
	ByText(ctx context.Context, substring string) ([]models.MediaRecord, error)
	ByFormat(ctx context.Context, format string) ([]models.MediaRecord, error)
	ByAlbum(ctx context.Context, substring string) ([]models.MediaRecord, error)
	ByLocation(ctx context.Context, substring string) ([]models.MediaRecord, error)
	ByCollectionTag(ctx context.Context, substring string) ([]models.MediaRecord, error)

	ByAlbumNameSubstring(ctx context.Context, query string) ([]models.MediaRecord, error)
	ByCollectionTagSubstring(ctx context.Context, query string) ([]models.MediaRecord, error)

	CountAll(ctx context.Context) (int, error)
	CountImages(ctx context.Context) (int, error)
	CountVideos(ctx context.Context) (int, error)
}

// HistorySink records successful searches, append-only.
type HistorySink interface {
	AppendHistory(ctx context.Context, query string, timestamp int64) error
}
