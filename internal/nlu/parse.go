package nlu

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pramudya/lensa/internal/models"
)

// predictionPayload is the JSON shape both LLM backends are prompted to emit.
type predictionPayload struct {
	Intent     string              `json:"intent"`
	Confidence float64             `json:"confidence"`
	Entities   map[string][]string `json:"entities"`
}

const predictionPrompt = `You analyze media gallery search queries. Respond with ONLY a JSON object, no prose:
{"intent": one of "search", "greeting", "thanks", "help", "count",
 "confidence": number between 0 and 1,
 "entities": object mapping any of "name", "year", "month", "day", "label",
 "text", "format", "album", "location", "collection" to arrays of the raw
 values found in the query; omit facets with no values}`

// parsePrediction decodes a model response into predictions. Code fences
// are stripped, unknown facet types and empty value lists are dropped, and
// confidence is clamped into [0,1].
func parsePrediction(raw string) (models.IntentPrediction, models.EntityPrediction, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var payload predictionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return models.IntentPrediction{}, nil, fmt.Errorf("parse prediction: %w", err)
	}

	if payload.Confidence < 0 {
		payload.Confidence = 0
	}
	if payload.Confidence > 1 {
		payload.Confidence = 1
	}

	intent := models.IntentPrediction{
		Intent:     strings.ToLower(strings.TrimSpace(payload.Intent)),
		Confidence: payload.Confidence,
	}

	entities := make(models.EntityPrediction)
	for rawType, values := range payload.Entities {
		facetType := models.FacetType(strings.ToLower(strings.TrimSpace(rawType)))
		if !facetType.Valid() || len(values) == 0 {
			continue
		}
		entities[facetType] = values
	}

	return intent, entities, nil
}
