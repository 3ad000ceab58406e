package engine

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pramudya/lensa/internal/encoder"
	"github.com/pramudya/lensa/internal/facet"
	"github.com/pramudya/lensa/internal/metrics"
	"github.com/pramudya/lensa/internal/models"
	"github.com/pramudya/lensa/internal/nlu"
	"golang.org/x/sync/errgroup"
)

// Tier names the stage that produced a resolution.
type Tier string

const (
	TierStructured Tier = "structured"
	TierSubstring  Tier = "substring"
	TierSimilarity Tier = "similarity"
	TierNone       Tier = "none"
	TierResponse   Tier = "response"
)

// Resolution is the terminal outcome of one query.
type Resolution struct {
	ID     string
	Query  string
	Tier   Tier
	Result models.QueryResult
	// Reply carries the conversational answer for non-search intents and
	// the zero-result explanation.
	Reply string
}

// SimilarityRanker ranks candidate labels for a query. Satisfied by
// encoder.Matcher; tests inject fixed rankings.
type SimilarityRanker interface {
	Rank(ctx context.Context, query string, topK int, threshold float64) []encoder.RankedLabel
}

// Options tunes a Resolver.
type Options struct {
	IntentThreshold      float64
	SimilarityThreshold  float64
	SimilarityTopK       int
	LabelConfidenceFloor float64
	CacheSize            int
	ResponseSeed         int64
	Logger               *slog.Logger
	Metrics              *metrics.Collector
}

// Resolver runs the cascading query resolution state machine.
type Resolver struct {
	store     Store
	history   HistorySink
	predictor nlu.Predictor
	canon     *facet.Canonicalizer
	ranker    SimilarityRanker
	filter    *Filter
	responses *Responses
	cache     *resultCache
	publisher *Publisher
	collector *metrics.Collector
	opts      Options
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// NewResolver wires a resolver from its collaborators. predictor and ranker
// may be nil; the corresponding tiers then never fire.
func NewResolver(
	store Store,
	history HistorySink,
	predictor nlu.Predictor,
	canon *facet.Canonicalizer,
	ranker SimilarityRanker,
	opts Options,
) *Resolver {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.IntentThreshold == 0 {
		opts.IntentThreshold = 0.7
	}
	if opts.SimilarityThreshold == 0 {
		opts.SimilarityThreshold = 0.85
	}
	if opts.SimilarityTopK == 0 {
		opts.SimilarityTopK = 5
	}
	if opts.ResponseSeed == 0 {
		opts.ResponseSeed = time.Now().UnixNano()
	}

	return &Resolver{
		store:     store,
		history:   history,
		predictor: predictor,
		canon:     canon,
		ranker:    ranker,
		filter:    NewFilter(store, opts.LabelConfidenceFloor, opts.Logger, opts.Metrics),
		responses: NewResponses(opts.ResponseSeed),
		cache:     newResultCache(opts.CacheSize),
		publisher: NewPublisher(),
		collector: opts.Metrics,
		opts:      opts,
		logger:    opts.Logger,
	}
}

// Results returns the single-latest-value channel fed by Submit.
func (r *Resolver) Results() <-chan Resolution {
	return r.publisher.Results()
}

// Submit resolves the query on a background goroutine and publishes the
// outcome. Fire-and-forget: a newer submission supersedes an unconsumed
// result, though in-flight work is only stopped by cancelling ctx.
func (r *Resolver) Submit(ctx context.Context, query string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.publisher.Publish(r.Resolve(ctx, query))
	}()
}

// Wait blocks until all submitted resolutions have been published.
func (r *Resolver) Wait() {
	r.wg.Wait()
}

// Resolve runs the full cascade for one query and returns its terminal
// resolution. Internal failures degrade tier by tier; the caller never
// sees an error.
func (r *Resolver) Resolve(ctx context.Context, query string) Resolution {
	query = strings.TrimSpace(query)
	res := Resolution{ID: uuid.New().String()[:8], Query: query}

	if query == "" {
		res.Tier = TierNone
		res.Reply = r.responses.Help()
		return res
	}

	if cached, ok := r.cache.get(query); ok {
		cached.ID = res.ID
		if len(cached.Result.Records) > 0 {
			r.appendHistory(ctx, query)
		}
		return cached
	}

	intent := r.predictIntent(ctx, query)

	if handled, ok := r.handleConversational(ctx, res, intent); ok {
		return handled
	}

	if done, ok := r.structuredTier(ctx, res, intent, query); ok {
		r.cache.add(query, done)
		return done
	}

	if done, ok := r.substringTier(ctx, res, query); ok {
		r.cache.add(query, done)
		return done
	}

	if done, ok := r.similarityTier(ctx, res, query); ok {
		r.cache.add(query, done)
		return done
	}

	res.Tier = TierNone
	res.Reply = r.responses.NoMatch(query)
	res.Result = models.QueryResult{Description: res.Reply}
	return res
}

// predictIntent consults the classifier. Unavailable or failing classifiers
// are not errors; they surface as zero confidence and the cascade moves on.
func (r *Resolver) predictIntent(ctx context.Context, query string) models.IntentPrediction {
	if r.predictor == nil {
		return models.IntentPrediction{}
	}

	start := time.Now()
	intent, err := r.predictor.PredictIntent(ctx, query)
	r.record(metrics.OpIntent, start)
	if err != nil {
		r.logger.Warn("intent prediction failed", "error", err)
		return models.IntentPrediction{}
	}
	return intent
}

// handleConversational answers non-search intents without touching the
// record store, except count which issues the three scalar aggregates.
func (r *Resolver) handleConversational(ctx context.Context, res Resolution, intent models.IntentPrediction) (Resolution, bool) {
	if intent.Confidence < r.opts.IntentThreshold {
		return res, false
	}

	res.Tier = TierResponse
	switch intent.Intent {
	case models.IntentGreeting:
		res.Reply = r.responses.Greeting()
	case models.IntentThanks:
		res.Reply = r.responses.Thanks()
	case models.IntentHelp:
		res.Reply = r.responses.Help()
	case models.IntentCount:
		res.Reply = r.responses.Count(r.countMedia(ctx))
	default:
		return res, false
	}
	return res, true
}

func (r *Resolver) countMedia(ctx context.Context) models.MediaCounts {
	var counts models.MediaCounts
	var err error

	if counts.Total, err = r.store.CountAll(ctx); err != nil {
		r.logger.Warn("count all failed", "error", err)
	}
	if counts.Images, err = r.store.CountImages(ctx); err != nil {
		r.logger.Warn("count images failed", "error", err)
	}
	if counts.Videos, err = r.store.CountVideos(ctx); err != nil {
		r.logger.Warn("count videos failed", "error", err)
	}
	return counts
}

// structuredTier runs canonicalization and the faceted intersection filter.
// Preconditions: a confident search intent and a non-empty entity map.
func (r *Resolver) structuredTier(ctx context.Context, res Resolution, intent models.IntentPrediction, query string) (Resolution, bool) {
	if r.predictor == nil ||
		intent.Intent != models.IntentSearch ||
		intent.Confidence < r.opts.IntentThreshold {
		return res, false
	}

	start := time.Now()
	entities, err := r.predictor.PredictEntities(ctx, query)
	r.record(metrics.OpEntities, start)
	if err != nil {
		r.logger.Warn("entity extraction failed", "error", err)
		return res, false
	}

	canonical := r.canon.Canonicalize(entities)
	if len(canonical) == 0 {
		return res, false
	}

	tierStart := time.Now()
	records := r.filter.Apply(ctx, canonical)
	r.record(metrics.OpStructured, tierStart)
	if len(records) == 0 {
		return res, false
	}

	r.appendHistory(ctx, query)
	res.Tier = TierStructured
	res.Result = models.QueryResult{
		Records:     records,
		Description: describeFacets(canonical),
	}
	return res, true
}

// substringTier matches the raw query against album names and collection
// tags, unions both sets and de-duplicates by record identity.
func (r *Resolver) substringTier(ctx context.Context, res Resolution, query string) (Resolution, bool) {
	start := time.Now()
	defer func() { r.record(metrics.OpSubstring, start) }()

	var mu sync.Mutex
	matches := make(map[string]models.MediaRecord)

	g, gctx := errgroup.WithContext(ctx)
	for _, lookup := range []func(context.Context, string) ([]models.MediaRecord, error){
		r.store.ByAlbumNameSubstring,
		r.store.ByCollectionTagSubstring,
	} {
		g.Go(func() error {
			records, err := lookup(gctx, query)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, rec := range records {
				matches[rec.Key()] = rec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Warn("substring lookup failed", "error", err)
		return res, false
	}
	if len(matches) == 0 {
		return res, false
	}

	r.appendHistory(ctx, query)
	res.Tier = TierSubstring
	res.Result = models.QueryResult{
		Records:     sortByCaptureDesc(matches),
		Description: "album/koleksi: " + query,
	}
	return res, true
}

// similarityTier ranks labels against the query embedding and fetches the
// records carrying the matched labels.
func (r *Resolver) similarityTier(ctx context.Context, res Resolution, query string) (Resolution, bool) {
	if r.ranker == nil {
		return res, false
	}

	start := time.Now()
	ranked := r.ranker.Rank(ctx, query, r.opts.SimilarityTopK, r.opts.SimilarityThreshold)
	r.record(metrics.OpSimilarity, start)
	if len(ranked) == 0 {
		return res, false
	}

	tierStart := time.Now()
	defer func() { r.record(metrics.OpSimilarTier, tierStart) }()

	var mu sync.Mutex
	matches := make(map[string]models.MediaRecord)
	labels := make([]string, 0, len(ranked))

	g, gctx := errgroup.WithContext(ctx)
	for _, match := range ranked {
		labels = append(labels, match.Label)
		g.Go(func() error {
			records, err := r.store.ByLabel(gctx, match.Label, r.opts.LabelConfidenceFloor)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, rec := range records {
				matches[rec.Key()] = rec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Warn("label lookup failed", "error", err)
		return res, false
	}
	if len(matches) == 0 {
		return res, false
	}

	// History keeps the user's raw query, not the resolved labels.
	r.appendHistory(ctx, query)
	res.Tier = TierSimilarity
	res.Result = models.QueryResult{
		Records:     sortByCaptureDesc(matches),
		Description: "mirip dengan label: " + strings.Join(labels, ", "),
	}
	return res, true
}

func (r *Resolver) appendHistory(ctx context.Context, query string) {
	if r.history == nil {
		return
	}
	start := time.Now()
	if err := r.history.AppendHistory(ctx, query, time.Now().UnixMilli()); err != nil {
		r.logger.Warn("history append failed", "query", query, "error", err)
	}
	r.record(metrics.OpHistory, start)
}

func (r *Resolver) record(op string, start time.Time) {
	if r.collector != nil {
		r.collector.RecordTiming(op, time.Since(start))
	}
}

// describeFacets renders canonical entities as a stable, human-readable
// facet description.
func describeFacets(entities models.EntityPrediction) string {
	facets := make([]string, 0, len(entities))
	for facetType, values := range entities {
		facets = append(facets, string(facetType)+"="+strings.Join(values, "|"))
	}
	sort.Strings(facets)
	return strings.Join(facets, ", ")
}
