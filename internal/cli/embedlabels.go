package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pramudya/lensa/internal/encoder"
	"github.com/pramudya/lensa/internal/facet"
	"github.com/spf13/cobra"
)

var embedLabelsOutput string

var embedLabelsCmd = &cobra.Command{
	Use:   "embed-labels",
	Short: "Precompute embedding vectors for the label vocabulary",
	Long: `Embed every valid label through the configured embedding model and
write the label -> vector map consumed by the similarity tier.

Run this once after changing the label vocabulary or the embedding model.`,
	RunE: runEmbedLabels,
}

func init() {
	embedLabelsCmd.Flags().StringVarP(&embedLabelsOutput, "output", "o", "", "output path (defaults to the configured embeddings path)")
}

func runEmbedLabels(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tables, err := facet.LoadTables(cfg.AliasPath, cfg.LabelPath)
	if err != nil {
		logger.Warn("facet tables not loadable, using built-in vocabulary", "error", err)
		tables = facet.DefaultTables()
	}
	labels := tables.Labels()
	if len(labels) == 0 {
		return fmt.Errorf("label vocabulary is empty")
	}

	embedder, err := encoder.NewEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("init embedder: %w", err)
	}

	fmt.Printf("Embedding %d labels with %s...\n", len(labels), embedder.Model())
	vectors, err := embedder.EmbedBatch(ctx, labels)
	if err != nil {
		return fmt.Errorf("embed labels: %w", err)
	}

	out := make(map[string][]float32, len(labels))
	for i, label := range labels {
		out[label] = vectors[i]
	}

	path := embedLabelsOutput
	if path == "" {
		path = cfg.EmbeddingsPath
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal embeddings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write embeddings: %w", err)
	}

	fmt.Printf("Wrote %s (%d labels, dimension %d)\n", path, len(out), embedder.Dimension())
	return nil
}
