package nlu

import (
	"testing"

	"github.com/pramudya/lensa/internal/models"
)

func TestParsePrediction(t *testing.T) {
	raw := `{"intent": "search", "confidence": 0.93,
		"entities": {"label": ["kucing"], "year": ["2023"]}}`

	intent, entities, err := parsePrediction(raw)
	if err != nil {
		t.Fatalf("parsePrediction() error = %v", err)
	}

	if intent.Intent != models.IntentSearch {
		t.Errorf("intent = %q, want search", intent.Intent)
	}
	if intent.Confidence != 0.93 {
		t.Errorf("confidence = %v, want 0.93", intent.Confidence)
	}
	if got := entities[models.FacetLabel]; len(got) != 1 || got[0] != "kucing" {
		t.Errorf("label entities = %v, want [kucing]", got)
	}
	if got := entities[models.FacetYear]; len(got) != 1 || got[0] != "2023" {
		t.Errorf("year entities = %v, want [2023]", got)
	}
}

func TestParsePrediction_CodeFence(t *testing.T) {
	raw := "```json\n{\"intent\": \"greeting\", \"confidence\": 1.0, \"entities\": {}}\n```"

	intent, entities, err := parsePrediction(raw)
	if err != nil {
		t.Fatalf("parsePrediction() error = %v", err)
	}
	if intent.Intent != models.IntentGreeting {
		t.Errorf("intent = %q, want greeting", intent.Intent)
	}
	if len(entities) != 0 {
		t.Errorf("entities = %v, want empty", entities)
	}
}

func TestParsePrediction_DropsUnknownFacets(t *testing.T) {
	raw := `{"intent": "search", "confidence": 0.8,
		"entities": {"label": ["mobil"], "mood": ["happy"], "year": []}}`

	_, entities, err := parsePrediction(raw)
	if err != nil {
		t.Fatalf("parsePrediction() error = %v", err)
	}

	if len(entities) != 1 {
		t.Fatalf("entities = %v, want only label", entities)
	}
	if _, ok := entities[models.FacetLabel]; !ok {
		t.Error("label facet missing")
	}
}

func TestParsePrediction_ClampsConfidence(t *testing.T) {
	intent, _, err := parsePrediction(`{"intent": "search", "confidence": 1.7, "entities": {}}`)
	if err != nil {
		t.Fatalf("parsePrediction() error = %v", err)
	}
	if intent.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", intent.Confidence)
	}
}

func TestParsePrediction_Garbage(t *testing.T) {
	if _, _, err := parsePrediction("sure! here are your results"); err == nil {
		t.Fatal("parsePrediction() on prose should fail")
	}
}
