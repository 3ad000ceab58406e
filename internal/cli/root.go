// Package cli provides the command-line interface for lensa.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pramudya/lensa/internal/config"
	"github.com/pramudya/lensa/internal/db"
	"github.com/pramudya/lensa/internal/encoder"
	"github.com/pramudya/lensa/internal/engine"
	"github.com/pramudya/lensa/internal/facet"
	"github.com/pramudya/lensa/internal/metrics"
	"github.com/pramudya/lensa/internal/nlu"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, logger and db client
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	dbClient   *db.Client
)

// The db client backs both engine boundaries.
var (
	_ engine.Store       = (*db.Client)(nil)
	_ engine.HistorySink = (*db.Client)(nil)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lensa",
	Short: "Semantic media query engine",
	Long: `Lensa resolves natural-language queries against a local media library.

Queries cascade through structured facet filtering (intent and entity
prediction), album and collection substring matching, and label embedding
similarity, returning the first tier that produces results.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)

		// Connect to database
		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// newResolver builds a fully wired resolver. Classifier and matcher
// failures degrade to a resolver without those tiers instead of aborting,
// so substring matching keeps working with no model backend at all.
func newResolver(ctx context.Context, collector *metrics.Collector) *engine.Resolver {
	predictor, err := nlu.NewPredictor(ctx, cfg)
	if err != nil {
		logger.Warn("nlu backend unavailable, structured tier disabled", "error", err)
		predictor = nil
	}

	tables, err := facet.LoadTables(cfg.AliasPath, cfg.LabelPath)
	if err != nil {
		logger.Warn("facet tables not loadable, using built-in vocabulary", "error", err)
		tables = facet.DefaultTables()
	}

	var ranker engine.SimilarityRanker
	if embedder, err := encoder.NewEmbedder(cfg); err != nil {
		logger.Warn("embedder unavailable, similarity tier disabled", "error", err)
	} else {
		ranker = encoder.NewMatcher(encoder.MatcherConfig{
			VocabPath:      cfg.VocabPath,
			EmbeddingsPath: cfg.EmbeddingsPath,
			SequenceLength: cfg.SequenceLength,
			Embedder:       embedder,
			Logger:         logger,
		})
	}

	return engine.NewResolver(
		dbClient,
		dbClient,
		predictor,
		facet.NewCanonicalizer(tables),
		ranker,
		engine.Options{
			IntentThreshold:      cfg.IntentThreshold,
			SimilarityThreshold:  cfg.SimilarityThreshold,
			SimilarityTopK:       cfg.SimilarityTopK,
			LabelConfidenceFloor: cfg.LabelConfidenceFloor,
			CacheSize:            cfg.ResultCacheSize,
			Logger:               logger,
			Metrics:              collector,
		},
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(embedLabelsCmd)
	rootCmd.AddCommand(initCmd)
}
