package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var initWipe bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database schema",
	Long: `Create the media and history tables with their indexes. Safe to run
repeatedly; existing data is untouched unless --wipe is given.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initWipe, "wipe", false, "delete all media and history records first (testing only)")
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if initWipe {
		if err := dbClient.WipeData(ctx); err != nil {
			return fmt.Errorf("wipe data: %w", err)
		}
		fmt.Println("Wiped existing data.")
	}

	// Schema is already applied by the connection hook; running it again
	// here confirms it succeeds on its own.
	if err := dbClient.InitSchema(ctx); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	fmt.Println("Schema ready.")
	return nil
}
