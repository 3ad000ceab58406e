package cli

import (
	"context"
	"fmt"

	"github.com/pramudya/lensa/internal/metrics"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <query>...",
	Short: "Resolve queries and report per-stage timings",
	Long: `Resolve one or more queries and print aggregated timings per
resolution stage. Useful for checking which tier answers a query and what
it costs.

Example:
  lensa stats "foto kucing 2023" "album liburan"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	collector := metrics.NewCollector()
	resolver := newResolver(ctx, collector)

	for _, query := range args {
		res := resolver.Resolve(ctx, query)
		fmt.Printf("%-40q tier=%s records=%d\n", query, res.Tier, len(res.Result.Records))
	}

	snap := collector.Snapshot()
	fmt.Println()
	printOp("intent predict", snap.Intent)
	printOp("entity extract", snap.Entities)
	printOp("structured tier", snap.Structured)
	printOp("substring tier", snap.Substring)
	printOp("similarity rank", snap.Similarity)
	printOp("similarity tier", snap.SimilarTier)
	printOp("history append", snap.History)
	return nil
}

func printOp(name string, op *metrics.OperationSnapshot) {
	if op == nil || op.Count == 0 {
		return
	}
	fmt.Printf("%-16s count=%-3d avg=%.1fms min=%dms max=%dms\n",
		name, op.Count, op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}
