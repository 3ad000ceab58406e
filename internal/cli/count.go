package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Show media library totals",
	RunE:  runCount,
}

func runCount(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	total, err := dbClient.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("count media: %w", err)
	}
	images, err := dbClient.CountImages(ctx)
	if err != nil {
		return fmt.Errorf("count images: %w", err)
	}
	videos, err := dbClient.CountVideos(ctx)
	if err != nil {
		return fmt.Errorf("count videos: %w", err)
	}

	fmt.Printf("Total:  %d\nImages: %d\nVideos: %d\n", total, images, videos)
	return nil
}
