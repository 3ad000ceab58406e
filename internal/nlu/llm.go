package nlu

import (
	"context"
	"fmt"

	"github.com/pramudya/lensa/internal/config"
	"github.com/pramudya/lensa/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// LLMPredictor resolves intents and entities through a langchaingo model.
type LLMPredictor struct {
	llm       llms.Model
	modelName string
}

// Compile-time check that LLMPredictor satisfies the prediction contract.
var _ Predictor = (*LLMPredictor)(nil)

// NewLLMPredictor creates a predictor based on configuration.
func NewLLMPredictor(cfg config.Config) (*LLMPredictor, error) {
	var model llms.Model
	var err error

	switch cfg.NLUProvider {
	case config.ProviderOllama, "":
		model, err = ollama.New(
			ollama.WithModel(cfg.NLUModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.NLUModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported NLU provider: %s", cfg.NLUProvider)
	}

	return &LLMPredictor{llm: model, modelName: cfg.NLUModel}, nil
}

// Model returns the model name.
func (p *LLMPredictor) Model() string {
	return p.modelName
}

func (p *LLMPredictor) predict(ctx context.Context, query string) (models.IntentPrediction, models.EntityPrediction, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, predictionPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, query),
	}

	response, err := p.llm.GenerateContent(ctx, messages)
	if err != nil {
		return models.IntentPrediction{}, nil, fmt.Errorf("generate prediction: %w", err)
	}
	if len(response.Choices) == 0 {
		return models.IntentPrediction{}, nil, fmt.Errorf("no response choices")
	}

	return parsePrediction(response.Choices[0].Content)
}

// PredictIntent classifies the query's intent.
func (p *LLMPredictor) PredictIntent(ctx context.Context, query string) (models.IntentPrediction, error) {
	intent, _, err := p.predict(ctx, query)
	return intent, err
}

// PredictEntities extracts facet values from the query.
func (p *LLMPredictor) PredictEntities(ctx context.Context, query string) (models.EntityPrediction, error) {
	_, entities, err := p.predict(ctx, query)
	return entities, err
}
