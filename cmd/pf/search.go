package main

import (
	"fmt"

	"github.com/matsen/paperfeed/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchAuthors  []string
	searchTitle    string
	searchJournal  string
	searchType     string
	searchYearFrom int
	searchYearTo   int
	searchLimit    int
)

func init() {
	searchCmd.Flags().StringArrayVarP(&searchAuthors, "author", "a", nil, "Author name, prefix match (repeatable, AND)")
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "Search titles only")
	searchCmd.Flags().StringVar(&searchJournal, "journal", "", "Journal key (e.g. PRL)")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Item type")
	searchCmd.Flags().IntVar(&searchYearFrom, "year-from", 0, "Minimum year")
	searchCmd.Flags().IntVar(&searchYearTo, "year-to", 0, "Maximum year")
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over titles, abstracts, authors and journals",
	Long: `Full-text search backed by the SQLite index in .paperfeed/cache.
Imports and other bulk changes drop the index and the next search
rebuilds it; "pf rebuild" forces a rebuild.

Examples:
  pf search "flat bands"
  pf search -a Zhang -a Doe --year-from 2023
  pf search --title graphene --journal PRL`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	filters := storage.SearchFilters{
		Authors:    searchAuthors,
		Title:      searchTitle,
		JournalKey: searchJournal,
		Type:       searchType,
		YearFrom:   searchYearFrom,
		YearTo:     searchYearTo,
	}
	if len(args) == 1 {
		filters.Keyword = args[0]
	}
	if filters.Keyword == "" && filters.Title == "" && len(filters.Authors) == 0 &&
		filters.JournalKey == "" && filters.Type == "" && filters.YearFrom == 0 && filters.YearTo == 0 {
		exitWithError(ExitError, "a query or at least one filter is required")
	}

	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()
	idx := mustOpenIndex(repoRoot)
	defer idx.Close()

	if n, err := idx.Count(); err != nil || n != s.Len() {
		if _, err := idx.RebuildFromItems(s.Items()); err != nil {
			exitWithError(ExitError, "rebuilding index: %v", err)
		}
	}

	items, err := idx.SearchWithFilters(filters, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		if len(items) == 0 {
			fmt.Println("No results")
			return nil
		}
		fmt.Printf("%d results:\n\n", len(items))
		kw := highlightKeywords(s)
		for i, it := range items {
			printItemSummary(i+1, it, kw)
		}
		return nil
	}

	outputJSON(viewsOf(s, items, activeKeywords(s)))
	return nil
}
