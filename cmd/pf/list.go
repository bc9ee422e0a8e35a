package main

import (
	"fmt"
	"time"

	"github.com/matsen/paperfeed/internal/author"
	"github.com/matsen/paperfeed/internal/query"
	"github.com/matsen/paperfeed/internal/reference"
	"github.com/matsen/paperfeed/internal/store"
	"github.com/spf13/cobra"
)

var (
	listQuery    string
	listWindow   string
	listCategory string
	listType     string
	listJournal  string
	listView     string
	listSort     string
	listLimit    int
	listAuthors  []string
)

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Substring match on title, authors, journal, DOI, abstract")
	listCmd.Flags().StringVar(&listWindow, "window", "", "Only items dated within this many days, or \"all\" (default from config)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only items in this category (id or name)")
	listCmd.Flags().StringVar(&listType, "type", "", "Only items of this type (article, preprint, accepted, misc)")
	listCmd.Flags().StringVar(&listJournal, "journal", "", "Only items with this journal key (e.g. PRL)")
	listCmd.Flags().StringVar(&listView, "view", "all", "View: all, new (since last visit), kw (keyword hits), fav")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort: date_desc, date_asc, title_asc, title_desc (default from config)")
	listCmd.Flags().StringArrayVarP(&listAuthors, "author", "a", nil, "Author name, e.g. \"Doe\" or \"Jane Doe\" (repeatable, AND)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List items with filters",
	Long: `List items, filtered and sorted.

Examples:
  pf list
  pf list --window 7 --journal PRL
  pf list --view kw --sort title_asc
  pf list --category "Read later" -q graphene
  pf list -a "Doe, Jane" -a Zhang`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	if listWindow == "" {
		listWindow = cfg.DefaultWindow
	}
	if listSort == "" {
		listSort = cfg.DefaultSort
	}

	f, order := mustBuildFilter(s)
	items := query.Sort(filterAuthors(query.Apply(s.Items(), f), listAuthors), order)
	total := len(items)
	if listLimit > 0 && listLimit < total {
		items = items[:listLimit]
	}

	if humanOutput {
		if total == 0 {
			fmt.Println("No items match")
			return nil
		}
		if len(items) < total {
			fmt.Printf("%d items (showing first %d):\n\n", total, len(items))
		} else {
			fmt.Printf("%d items:\n\n", total)
		}
		kw := highlightKeywords(s)
		for i, it := range items {
			printItemSummary(i+1, it, kw)
		}
		return nil
	}

	outputJSON(viewsOf(s, items, activeKeywords(s)))
	return nil
}

// mustBuildFilter turns the list flags into a filter and sort order.
func mustBuildFilter(s *store.Store) (query.Filter, query.Order) {
	window, err := query.ParseWindow(listWindow)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	view, err := query.ParseView(listView)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	order, err := query.ParseOrder(listSort)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	f := query.Filter{
		Query:      listQuery,
		Window:     window,
		View:       view,
		Now:        time.Now(),
		LastVisit:  s.LastVisit(),
		Keywords:   activeKeywords(s),
		CategoryOf: s.CategoryOf,
		IsFavorite: s.IsFavorite,
	}

	if listCategory != "" {
		f.Category = mustFindCategory(s, listCategory).ID
	}
	if listType != "" {
		t := reference.Type(listType)
		if !t.Valid() {
			exitWithError(ExitError, "invalid type %q: want article, preprint, accepted or misc", listType)
		}
		f.Type = t
	}
	if listJournal != "" {
		f.JournalKey = reference.JournalKey(listJournal)
	}
	return f, order
}

// filterAuthors keeps items that have a match for every author query.
func filterAuthors(items []reference.Item, names []string) []reference.Item {
	if len(names) == 0 {
		return items
	}
	queries := make([]author.Query, 0, len(names))
	for _, n := range names {
		if q := author.ParseQuery(n); !q.IsZero() {
			queries = append(queries, q)
		}
	}
	var out []reference.Item
	for _, it := range items {
		if author.AllMatch(queries, it.Authors) {
			out = append(out, it)
		}
	}
	return out
}
