package facet

import (
	"strings"

	"github.com/pramudya/lensa/internal/models"
)

// Canonicalizer maps raw extracted entity values onto the fixed facet
// vocabulary. Pure: no state beyond the two static tables.
type Canonicalizer struct {
	tables *Tables
}

// NewCanonicalizer creates a canonicalizer over the given tables.
func NewCanonicalizer(tables *Tables) *Canonicalizer {
	return &Canonicalizer{tables: tables}
}

// Canonicalize normalizes every entity value. Label values are lowercased,
// alias-resolved and checked against the vocabulary; values outside it are
// dropped. All other facet types pass through trimmed. A facet type whose
// value list ends up empty is removed from the output entirely.
func (c *Canonicalizer) Canonicalize(entities models.EntityPrediction) models.EntityPrediction {
	out := make(models.EntityPrediction, len(entities))

	for facetType, values := range entities {
		kept := make([]string, 0, len(values))
		for _, raw := range values {
			if facetType == models.FacetLabel {
				if canonical, ok := c.canonicalLabel(raw); ok {
					kept = append(kept, canonical)
				}
				continue
			}
			if trimmed := strings.TrimSpace(raw); trimmed != "" {
				kept = append(kept, trimmed)
			}
		}
		if len(kept) > 0 {
			out[facetType] = kept
		}
	}

	return out
}

// canonicalLabel resolves one raw label value. The alias table is consulted
// first; if neither the alias result nor the raw term is in the vocabulary
// the value is rejected.
func (c *Canonicalizer) canonicalLabel(raw string) (string, bool) {
	term := strings.ToLower(strings.TrimSpace(raw))
	if term == "" {
		return "", false
	}
	if canonical, ok := c.tables.Alias(term); ok && c.tables.ValidLabel(canonical) {
		return canonical, true
	}
	if c.tables.ValidLabel(term) {
		return term, true
	}
	return "", false
}
