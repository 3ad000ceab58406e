package nlu

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/pramudya/lensa/internal/config"
	"github.com/pramudya/lensa/internal/models"
)

// BedrockPredictor resolves intents and entities through an Anthropic model
// on AWS Bedrock. This is the cloud-only classifier variant; it plugs into
// the same resolver as the local one.
type BedrockPredictor struct {
	client  *bedrockruntime.Client
	modelID string
}

var _ Predictor = (*BedrockPredictor)(nil)

// NewBedrockPredictor creates a Bedrock-backed predictor using the default
// AWS credential chain.
func NewBedrockPredictor(ctx context.Context, cfg config.Config) (*BedrockPredictor, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &BedrockPredictor{
		client:  bedrockruntime.NewFromConfig(awsCfg),
		modelID: cfg.BedrockModel,
	}, nil
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *BedrockPredictor) predict(ctx context.Context, query string) (models.IntentPrediction, models.EntityPrediction, error) {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        512,
		System:           predictionPrompt,
		Messages:         []anthropicMessage{{Role: "user", Content: query}},
	})
	if err != nil {
		return models.IntentPrediction{}, nil, fmt.Errorf("marshal request: %w", err)
	}

	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return models.IntentPrediction{}, nil, fmt.Errorf("invoke model: %w", err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return models.IntentPrediction{}, nil, fmt.Errorf("parse response: %w", err)
	}
	if len(resp.Content) == 0 {
		return models.IntentPrediction{}, nil, fmt.Errorf("empty response")
	}

	return parsePrediction(resp.Content[0].Text)
}

// PredictIntent classifies the query's intent.
func (p *BedrockPredictor) PredictIntent(ctx context.Context, query string) (models.IntentPrediction, error) {
	intent, _, err := p.predict(ctx, query)
	return intent, err
}

// PredictEntities extracts facet values from the query.
func (p *BedrockPredictor) PredictEntities(ctx context.Context, query string) (models.EntityPrediction, error) {
	_, entities, err := p.predict(ctx, query)
	return entities, err
}

// NewPredictor selects a backend from configuration.
func NewPredictor(ctx context.Context, cfg config.Config) (Predictor, error) {
	if cfg.NLUProvider == config.ProviderBedrock {
		return NewBedrockPredictor(ctx, cfg)
	}
	return NewLLMPredictor(cfg)
}
