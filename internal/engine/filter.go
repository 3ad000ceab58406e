package engine

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/pramudya/lensa/internal/metrics"
	"github.com/pramudya/lensa/internal/models"
	"golang.org/x/sync/errgroup"
)

// Filter intersects per-facet record sets. Fails closed: any lookup error
// is logged and yields an empty result, never a resolution failure.
type Filter struct {
	store      Store
	labelFloor float64
	logger     *slog.Logger
	collector  *metrics.Collector
}

// NewFilter creates a faceted intersection filter. labelFloor is the
// confidence floor passed to label lookups.
func NewFilter(store Store, labelFloor float64, logger *slog.Logger, collector *metrics.Collector) *Filter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{store: store, labelFloor: labelFloor, logger: logger, collector: collector}
}

// Apply computes the intersection of the match sets of every facet in
// entities. Facets are evaluated one at a time so the running intersection
// can short-circuit: once it is empty no further facet is looked up.
// Lookups for the values within one facet run in parallel.
func (f *Filter) Apply(ctx context.Context, entities models.EntityPrediction) []models.MediaRecord {
	if len(entities) == 0 {
		return nil
	}

	var accumulator map[string]models.MediaRecord
	accumulatorSet := false

	for facetType, values := range entities {
		start := time.Now()
		matches, err := f.facetMatches(ctx, facetType, values)
		if f.collector != nil {
			f.collector.RecordTiming(metrics.OpFacetLookup, time.Since(start))
		}
		if err != nil {
			f.logger.Warn("facet lookup failed", "facet", facetType, "error", err)
			return nil
		}
		if matches == nil {
			// Every value was unusable (e.g. unparseable numbers): the
			// facet contributes no constraint.
			continue
		}

		if !accumulatorSet {
			accumulator = matches
			accumulatorSet = true
		} else {
			accumulator = intersect(accumulator, matches)
		}

		if len(accumulator) == 0 {
			return nil
		}
	}

	if !accumulatorSet {
		return nil
	}
	return sortByCaptureDesc(accumulator)
}

// facetMatches unions the lookups for every value of one facet. Returns a
// nil map (with nil error) when no value produced a usable lookup.
func (f *Filter) facetMatches(ctx context.Context, facetType models.FacetType, values []string) (map[string]models.MediaRecord, error) {
	var mu sync.Mutex
	var matches map[string]models.MediaRecord

	g, ctx := errgroup.WithContext(ctx)
	for _, value := range values {
		lookup, ok := f.lookupFor(facetType, value)
		if !ok {
			continue
		}
		g.Go(func() error {
			records, err := lookup(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if matches == nil {
				matches = make(map[string]models.MediaRecord)
			}
			for _, r := range records {
				matches[r.Key()] = r
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matches, nil
}

// lookupFor maps one (facetType, value) pair onto its store operator.
// Numeric facets whose value fails to parse are skipped per value.
func (f *Filter) lookupFor(facetType models.FacetType, value string) (func(context.Context) ([]models.MediaRecord, error), bool) {
	switch facetType {
	case models.FacetName:
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByName(ctx, value)
		}, true
	case models.FacetYear:
		year, err := strconv.Atoi(value)
		if err != nil {
			f.logger.Debug("skipping unparseable year value", "value", value)
			return nil, false
		}
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByYear(ctx, year)
		}, true
	case models.FacetMonth:
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByMonth(ctx, value)
		}, true
	case models.FacetDay:
		day, err := strconv.Atoi(value)
		if err != nil {
			f.logger.Debug("skipping unparseable day value", "value", value)
			return nil, false
		}
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByDay(ctx, day)
		}, true
	case models.FacetLabel:
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByLabel(ctx, value, f.labelFloor)
		}, true
	case models.FacetText:
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByText(ctx, value)
		}, true
	case models.FacetFormat:
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByFormat(ctx, value)
		}, true
	case models.FacetAlbum:
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByAlbum(ctx, value)
		}, true
	case models.FacetLocation:
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByLocation(ctx, value)
		}, true
	case models.FacetCollection:
		return func(ctx context.Context) ([]models.MediaRecord, error) {
			return f.store.ByCollectionTag(ctx, value)
		}, true
	default:
		f.logger.Warn("unknown facet type", "facet", facetType)
		return nil, false
	}
}

func intersect(a, b map[string]models.MediaRecord) map[string]models.MediaRecord {
	out := make(map[string]models.MediaRecord)
	for key, record := range a {
		if _, ok := b[key]; ok {
			out[key] = record
		}
	}
	return out
}

func sortByCaptureDesc(set map[string]models.MediaRecord) []models.MediaRecord {
	out := make([]models.MediaRecord, 0, len(set))
	for _, r := range set {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CapturedAt.Equal(out[j].CapturedAt) {
			return out[i].CapturedAt.After(out[j].CapturedAt)
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}
