// Package nlu defines the intent and entity prediction boundary. The
// classifiers themselves are black boxes; the engine only consumes their
// result contract.
package nlu

import (
	"context"

	"github.com/pramudya/lensa/internal/models"
)

// IntentClassifier predicts the intent of a free-text query.
type IntentClassifier interface {
	PredictIntent(ctx context.Context, query string) (models.IntentPrediction, error)
}

// EntityExtractor extracts facet values from a free-text query.
type EntityExtractor interface {
	PredictEntities(ctx context.Context, query string) (models.EntityPrediction, error)
}

// Predictor combines both prediction capabilities. Both provided backends
// satisfy it.
type Predictor interface {
	IntentClassifier
	EntityExtractor
}
