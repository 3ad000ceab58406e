package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pramudya/lensa/internal/encoder"
	"github.com/pramudya/lensa/internal/facet"
	"github.com/pramudya/lensa/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePredictor struct {
	intent       models.IntentPrediction
	intentErr    error
	entities     models.EntityPrediction
	entitiesErr  error
	entityCalled bool
}

func (p *fakePredictor) PredictIntent(context.Context, string) (models.IntentPrediction, error) {
	return p.intent, p.intentErr
}

func (p *fakePredictor) PredictEntities(context.Context, string) (models.EntityPrediction, error) {
	p.entityCalled = true
	return p.entities, p.entitiesErr
}

type fakeRanker struct {
	ranked []encoder.RankedLabel
	called bool
}

func (r *fakeRanker) Rank(context.Context, string, int, float64) []encoder.RankedLabel {
	r.called = true
	return r.ranked
}

type historyRecorder struct {
	mu      sync.Mutex
	queries []string
	err     error
}

func (h *historyRecorder) AppendHistory(_ context.Context, query string, _ int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queries = append(h.queries, query)
	return h.err
}

func (h *historyRecorder) appended() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.queries...)
}

func searchPredictor(entities models.EntityPrediction) *fakePredictor {
	return &fakePredictor{
		intent:   models.IntentPrediction{Intent: models.IntentSearch, Confidence: 0.92},
		entities: entities,
	}
}

func newTestResolver(store Store, history HistorySink, predictor *fakePredictor, ranker *fakeRanker) *Resolver {
	var rk SimilarityRanker
	if ranker != nil {
		rk = ranker
	}
	r := NewResolver(store, history, nil, facet.NewCanonicalizer(facet.DefaultTables()), rk, Options{
		ResponseSeed: 42,
		CacheSize:    8,
	})
	if predictor != nil {
		r.predictor = predictor
	}
	return r
}

func TestResolveStructuredTier(t *testing.T) {
	store := &fakeStore{
		byLabel: func(label string, _ float64) ([]models.MediaRecord, error) {
			require.Equal(t, "hewan", label)
			return []models.MediaRecord{rec("cat.jpg", 5)}, nil
		},
	}
	history := &historyRecorder{}
	// "kucing" must be canonicalized to "hewan" before the lookup.
	predictor := searchPredictor(models.EntityPrediction{models.FacetLabel: {"kucing"}})
	r := newTestResolver(store, history, predictor, nil)

	res := r.Resolve(context.Background(), "foto kucing")

	assert.Equal(t, TierStructured, res.Tier)
	assert.Equal(t, []string{"cat.jpg"}, uris(res.Result.Records))
	assert.Contains(t, res.Result.Description, "label=hewan")
	assert.Equal(t, []string{"foto kucing"}, history.appended())
}

func TestResolveStructuredWinsOverSubstring(t *testing.T) {
	substringCalled := false
	store := &fakeStore{
		byLabel: func(string, float64) ([]models.MediaRecord, error) {
			return []models.MediaRecord{rec("cat.jpg", 5)}, nil
		},
		byAlbumSub: func(string) ([]models.MediaRecord, error) {
			substringCalled = true
			return []models.MediaRecord{rec("album.jpg", 1)}, nil
		},
		byCollectionSub: func(string) ([]models.MediaRecord, error) {
			substringCalled = true
			return nil, nil
		},
	}
	history := &historyRecorder{}
	predictor := searchPredictor(models.EntityPrediction{models.FacetLabel: {"hewan"}})
	r := newTestResolver(store, history, predictor, nil)

	res := r.Resolve(context.Background(), "foto hewan")

	assert.Equal(t, TierStructured, res.Tier)
	assert.False(t, substringCalled, "substring tier must not run when structured succeeds")
	assert.Len(t, history.appended(), 1)
}

func TestResolveLowConfidenceSkipsStructured(t *testing.T) {
	store := &fakeStore{
		byAlbumSub: func(string) ([]models.MediaRecord, error) {
			return []models.MediaRecord{rec("trip.jpg", 2)}, nil
		},
	}
	history := &historyRecorder{}
	predictor := &fakePredictor{
		intent:   models.IntentPrediction{Intent: models.IntentSearch, Confidence: 0.5},
		entities: models.EntityPrediction{models.FacetLabel: {"hewan"}},
	}
	r := newTestResolver(store, history, predictor, nil)

	res := r.Resolve(context.Background(), "liburan")

	assert.False(t, predictor.entityCalled, "entity extraction must not run below the intent threshold")
	assert.Equal(t, TierSubstring, res.Tier)
	assert.Equal(t, []string{"trip.jpg"}, uris(res.Result.Records))
	assert.Equal(t, []string{"liburan"}, history.appended())
}

func TestResolveIntentErrorFallsThrough(t *testing.T) {
	store := &fakeStore{
		byCollectionSub: func(string) ([]models.MediaRecord, error) {
			return []models.MediaRecord{rec("x.jpg", 1)}, nil
		},
	}
	predictor := &fakePredictor{intentErr: errors.New("model offline")}
	r := newTestResolver(store, &historyRecorder{}, predictor, nil)

	res := r.Resolve(context.Background(), "favorit")

	assert.Equal(t, TierSubstring, res.Tier)
}

func TestResolveSubstringUnionDeduplicates(t *testing.T) {
	store := &fakeStore{
		byAlbumSub: func(string) ([]models.MediaRecord, error) {
			return []models.MediaRecord{rec("a.jpg", 3), rec("b.jpg", 1)}, nil
		},
		byCollectionSub: func(string) ([]models.MediaRecord, error) {
			return []models.MediaRecord{rec("b.jpg", 1), rec("c.jpg", 2)}, nil
		},
	}
	history := &historyRecorder{}
	r := newTestResolver(store, history, nil, nil)

	res := r.Resolve(context.Background(), "liburan")

	assert.Equal(t, TierSubstring, res.Tier)
	assert.Equal(t, []string{"a.jpg", "c.jpg", "b.jpg"}, uris(res.Result.Records))
	assert.Len(t, history.appended(), 1)
}

func TestResolveSimilarityTier(t *testing.T) {
	var lookedUp []string
	var mu sync.Mutex
	store := &fakeStore{
		byLabel: func(label string, _ float64) ([]models.MediaRecord, error) {
			mu.Lock()
			lookedUp = append(lookedUp, label)
			mu.Unlock()
			if label == "pantai" {
				return []models.MediaRecord{rec("beach.jpg", 4)}, nil
			}
			return nil, nil
		},
	}
	history := &historyRecorder{}
	ranker := &fakeRanker{ranked: []encoder.RankedLabel{
		{Label: "pantai", Similarity: 0.93},
		{Label: "langit", Similarity: 0.88},
	}}
	r := newTestResolver(store, history, nil, ranker)

	res := r.Resolve(context.Background(), "pemandangan tepi laut")

	assert.Equal(t, TierSimilarity, res.Tier)
	assert.Equal(t, []string{"beach.jpg"}, uris(res.Result.Records))
	assert.ElementsMatch(t, []string{"pantai", "langit"}, lookedUp)
	assert.Contains(t, res.Result.Description, "pantai")
	// History keeps the raw query, not the resolved labels.
	assert.Equal(t, []string{"pemandangan tepi laut"}, history.appended())
}

func TestResolveEmptyTerminal(t *testing.T) {
	store := &fakeStore{}
	history := &historyRecorder{}
	ranker := &fakeRanker{}
	r := newTestResolver(store, history, nil, ranker)

	res := r.Resolve(context.Background(), "zzz")

	assert.Equal(t, TierNone, res.Tier)
	assert.Empty(t, res.Result.Records)
	assert.Contains(t, res.Reply, `"zzz"`)
	assert.Empty(t, history.appended(), "empty terminal must not touch history")
	assert.True(t, ranker.called)
}

func TestResolveGreetingBypassesTiers(t *testing.T) {
	store := &fakeStore{}
	predictor := &fakePredictor{
		intent: models.IntentPrediction{Intent: models.IntentGreeting, Confidence: 0.95},
	}
	history := &historyRecorder{}
	r := newTestResolver(store, history, predictor, nil)

	res := r.Resolve(context.Background(), "halo")

	assert.Equal(t, TierResponse, res.Tier)
	assert.NotEmpty(t, res.Reply)
	assert.Zero(t, store.callCount())
	assert.Empty(t, history.appended())
}

func TestResolveCountIntent(t *testing.T) {
	store := &fakeStore{
		countAll:    func() (int, error) { return 10, nil },
		countImages: func() (int, error) { return 7, nil },
		countVideos: func() (int, error) { return 3, nil },
	}
	predictor := &fakePredictor{
		intent: models.IntentPrediction{Intent: models.IntentCount, Confidence: 0.9},
	}
	r := newTestResolver(store, &historyRecorder{}, predictor, nil)

	res := r.Resolve(context.Background(), "berapa banyak media?")

	assert.Equal(t, TierResponse, res.Tier)
	assert.Contains(t, res.Reply, "10")
	assert.Contains(t, res.Reply, "7")
	assert.Contains(t, res.Reply, "3")
}

func TestResolveEmptyQuery(t *testing.T) {
	store := &fakeStore{}
	r := newTestResolver(store, &historyRecorder{}, nil, nil)

	res := r.Resolve(context.Background(), "   ")

	assert.Equal(t, TierNone, res.Tier)
	assert.NotEmpty(t, res.Reply)
	assert.Zero(t, store.callCount())
}

func TestResolveCachedResult(t *testing.T) {
	store := &fakeStore{
		byAlbumSub: func(string) ([]models.MediaRecord, error) {
			return []models.MediaRecord{rec("a.jpg", 1)}, nil
		},
	}
	history := &historyRecorder{}
	r := newTestResolver(store, history, nil, nil)

	first := r.Resolve(context.Background(), "liburan")
	callsAfterFirst := store.callCount()
	second := r.Resolve(context.Background(), "liburan")

	assert.Equal(t, first.Tier, second.Tier)
	assert.Equal(t, uris(first.Result.Records), uris(second.Result.Records))
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, callsAfterFirst, store.callCount(), "cache hit must not re-query the store")
	// Each successful resolution appends history, cached or not.
	assert.Equal(t, []string{"liburan", "liburan"}, history.appended())
}

func TestResolveHistoryErrorDoesNotFailQuery(t *testing.T) {
	store := &fakeStore{
		byAlbumSub: func(string) ([]models.MediaRecord, error) {
			return []models.MediaRecord{rec("a.jpg", 1)}, nil
		},
	}
	history := &historyRecorder{err: errors.New("disk full")}
	r := newTestResolver(store, history, nil, nil)

	res := r.Resolve(context.Background(), "liburan")

	assert.Equal(t, TierSubstring, res.Tier)
	assert.NotEmpty(t, res.Result.Records)
}

func TestSubmitPublishesLatest(t *testing.T) {
	store := &fakeStore{
		byAlbumSub: func(query string) ([]models.MediaRecord, error) {
			return []models.MediaRecord{rec(query+".jpg", 1)}, nil
		},
	}
	r := newTestResolver(store, &historyRecorder{}, nil, nil)

	r.Submit(context.Background(), "pantai")
	r.Wait()
	// A second submission supersedes the unconsumed first result.
	r.Submit(context.Background(), "gunung")
	r.Wait()

	res := <-r.Results()
	assert.Equal(t, "gunung", res.Query)

	select {
	case stale := <-r.Results():
		t.Fatalf("unexpected extra resolution: %q", stale.Query)
	default:
	}
}

func TestPublisherKeepsNewest(t *testing.T) {
	p := NewPublisher()

	p.Publish(Resolution{Query: "first"})
	p.Publish(Resolution{Query: "second"})

	res := <-p.Results()
	assert.Equal(t, "second", res.Query)
}

func TestDescribeFacetsStable(t *testing.T) {
	entities := models.EntityPrediction{
		models.FacetYear:  {"2023"},
		models.FacetLabel: {"hewan", "bunga"},
	}

	for range 5 {
		assert.Equal(t, "label=hewan|bunga, year=2023", describeFacets(entities))
	}
}
