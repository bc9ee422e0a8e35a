package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search index from the collection",
	Long: `Rebuild the SQLite full-text index in .paperfeed/cache from the stored
items. The index is disposable; "pf search" also rebuilds it when it is
out of step with the collection.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()
	idx := mustOpenIndex(repoRoot)
	defer idx.Close()

	count, err := idx.RebuildFromItems(s.Items())
	if err != nil {
		exitWithError(ExitError, "rebuilding index: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt search index with %d items\n", count)
		return nil
	}
	outputJSON(RebuildResult{Status: "rebuilt", Items: count})
	return nil
}
