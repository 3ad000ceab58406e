package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent successful searches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	entries, err := dbClient.ListHistory(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No search history yet.")
		return nil
	}

	for _, e := range entries {
		ts := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
		fmt.Printf("%s  %s\n", ts, e.Query)
	}
	return nil
}
