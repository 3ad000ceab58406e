package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// NLUProvider identifies which classifier backend resolves intents and entities.
type NLUProvider string

const (
	ProviderOllama  NLUProvider = "ollama"
	ProviderOpenAI  NLUProvider = "openai"
	ProviderBedrock NLUProvider = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// NLU classifier backend
	NLUProvider  NLUProvider
	NLUModel     string
	OllamaHost   string
	OpenAIAPIKey string
	BedrockModel string
	AWSRegion    string

	// Query-vector embedding fallback (used when no token encoder is wired)
	EmbedModel     string
	EmbedDimension int

	// Resolution thresholds
	IntentThreshold      float64
	SimilarityThreshold  float64
	SimilarityTopK       int
	SequenceLength       int
	ResultCacheSize      int
	LabelConfidenceFloor float64

	// Static assets
	VocabPath      string
	AliasPath      string
	LabelPath      string
	EmbeddingsPath string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "lensa"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "media"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		NLUProvider:  NLUProvider(getEnv("LENSA_NLU_PROVIDER", "ollama")),
		NLUModel:     getEnv("LENSA_NLU_MODEL", "llama3.2"),
		OllamaHost:   getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		BedrockModel: getEnv("LENSA_BEDROCK_MODEL", "anthropic.claude-3-haiku-20240307-v1:0"),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),

		EmbedModel:     getEnv("LENSA_EMBED_MODEL", "nomic-embed-text"),
		EmbedDimension: getEnvInt("LENSA_EMBED_DIMENSION", 768),

		IntentThreshold:      getEnvFloat("LENSA_INTENT_THRESHOLD", 0.7),
		SimilarityThreshold:  getEnvFloat("LENSA_SIMILARITY_THRESHOLD", 0.85),
		SimilarityTopK:       getEnvInt("LENSA_SIMILARITY_TOPK", 5),
		SequenceLength:       getEnvInt("LENSA_SEQUENCE_LENGTH", 128),
		ResultCacheSize:      getEnvInt("LENSA_RESULT_CACHE_SIZE", 64),
		LabelConfidenceFloor: getEnvFloat("LENSA_LABEL_CONFIDENCE_FLOOR", 0.55),

		VocabPath:      getEnv("LENSA_VOCAB_PATH", "assets/vocab.txt"),
		AliasPath:      getEnv("LENSA_ALIAS_PATH", "assets/aliases.yaml"),
		LabelPath:      getEnv("LENSA_LABEL_PATH", "assets/labels.yaml"),
		EmbeddingsPath: getEnv("LENSA_EMBEDDINGS_PATH", "assets/label_embeddings.json"),

		LogFile:  getEnv("LENSA_LOG_FILE", "/tmp/lensa.log"),
		LogLevel: parseLogLevel(getEnv("LENSA_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
