package encoder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
)

// Encoder produces one embedding vector per sequence position. The model
// itself is an external artifact; tests inject deterministic stubs.
type Encoder interface {
	Encode(ctx context.Context, ids []int64, mask []int64) ([][]float32, error)
}

// RankedLabel is one similarity match, highest first in a ranking.
type RankedLabel struct {
	Label      string
	Similarity float64
}

// MatcherConfig configures a Matcher.
type MatcherConfig struct {
	// VocabPath and EmbeddingsPath locate the static assets. Ignored when
	// Vocabulary / Labels are set directly.
	VocabPath      string
	EmbeddingsPath string

	Vocabulary *Vocabulary
	Labels     map[string][]float32

	SequenceLength int

	// Encoder, when set, drives the token-level pipeline. Otherwise the
	// Embedder produces the query vector directly.
	Encoder  Encoder
	Embedder *Embedder

	Logger *slog.Logger
}

// Matcher ranks canonical labels by cosine similarity against the query
// embedding. Assets load once on first use; a failed load permanently
// disables the matcher (every Rank returns empty) without affecting the
// rest of the engine.
type Matcher struct {
	cfg      MatcherConfig
	logger   *slog.Logger
	loadOnce sync.Once

	tokenizer   *Tokenizer
	labels      map[string][]float32
	unavailable bool
}

// NewMatcher creates a matcher. Asset loading is deferred to first use so
// concurrent first callers wait on the same initialization.
func NewMatcher(cfg MatcherConfig) *Matcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SequenceLength == 0 {
		cfg.SequenceLength = 128
	}
	return &Matcher{cfg: cfg, logger: logger}
}

func (m *Matcher) load() {
	vocab := m.cfg.Vocabulary
	if vocab == nil && m.cfg.Encoder != nil {
		var err error
		vocab, err = LoadVocabulary(m.cfg.VocabPath)
		if err != nil {
			m.logger.Error("similarity matcher disabled: vocabulary load failed", "path", m.cfg.VocabPath, "error", err)
			m.unavailable = true
			return
		}
	}

	if vocab != nil {
		tok, err := NewTokenizer(vocab, m.cfg.SequenceLength)
		if err != nil {
			m.logger.Error("similarity matcher disabled: tokenizer init failed", "error", err)
			m.unavailable = true
			return
		}
		m.tokenizer = tok
	}

	labels := m.cfg.Labels
	if labels == nil {
		var err error
		labels, err = LoadLabelEmbeddings(m.cfg.EmbeddingsPath, m.logger)
		if err != nil {
			m.logger.Error("similarity matcher disabled: label embeddings load failed", "path", m.cfg.EmbeddingsPath, "error", err)
			m.unavailable = true
			return
		}
	}
	if len(labels) == 0 {
		m.logger.Error("similarity matcher disabled: label embedding table is empty")
		m.unavailable = true
		return
	}
	m.labels = labels
}

// Rank encodes the query and returns the labels whose precomputed
// embeddings score at least threshold, best first, at most topK. Ties are
// broken by lexical label order so rankings are reproducible. Failures
// degrade to an empty ranking.
func (m *Matcher) Rank(ctx context.Context, query string, topK int, threshold float64) []RankedLabel {
	m.loadOnce.Do(m.load)
	if m.unavailable || topK <= 0 {
		return nil
	}

	vec, err := m.queryVector(ctx, query)
	if err != nil {
		m.logger.Warn("query encoding failed", "error", err)
		return nil
	}
	if len(vec) == 0 || IsZero(vec) {
		return nil
	}

	ranked := make([]RankedLabel, 0, len(m.labels))
	for label, emb := range m.labels {
		if sim := Cosine(vec, emb); sim >= threshold {
			ranked = append(ranked, RankedLabel{Label: label, Similarity: sim})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Similarity != ranked[j].Similarity {
			return ranked[i].Similarity > ranked[j].Similarity
		}
		return ranked[i].Label < ranked[j].Label
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// queryVector produces the query embedding: token pipeline when an encoder
// is wired, sentence embedder otherwise.
func (m *Matcher) queryVector(ctx context.Context, query string) ([]float32, error) {
	if m.cfg.Encoder != nil && m.tokenizer != nil {
		ids, mask := m.tokenizer.Encode(query)
		vectors, err := m.cfg.Encoder.Encode(ctx, ids, mask)
		if err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		return MeanPool(vectors, mask), nil
	}

	if m.cfg.Embedder != nil {
		vec, err := m.cfg.Embedder.Embed(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("embed: %w", err)
		}
		return vec, nil
	}

	return nil, fmt.Errorf("no encoder configured")
}

// LoadLabelEmbeddings reads the label -> vector asset. Malformed entries
// are skipped with a warning, never fatal.
func LoadLabelEmbeddings(path string, logger *slog.Logger) (map[string][]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read embeddings: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse embeddings: %w", err)
	}

	labels := make(map[string][]float32, len(raw))
	for label, entry := range raw {
		var vec []float32
		if err := json.Unmarshal(entry, &vec); err != nil || len(vec) == 0 {
			logger.Warn("skipping malformed label embedding", "label", label, "error", err)
			continue
		}
		labels[label] = vec
	}
	return labels, nil
}
