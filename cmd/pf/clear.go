package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm removing every item")
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every item from the collection",
	Long: `Remove every item and category assignment. Notes, ratings, reading
status and favorites are kept, so re-importing the same records restores
the triage state.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		exitWithError(ExitError, "refusing to clear the collection without --yes")
	}

	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	n := s.Len()
	mustSave(s.Clear(), "clearing items")
	invalidateIndex(repoRoot)

	if humanOutput {
		fmt.Printf("Removed %d items\n", n)
		return nil
	}
	outputJSON(StatusResponse{Status: "cleared", Count: intPtr(n)})
	return nil
}
