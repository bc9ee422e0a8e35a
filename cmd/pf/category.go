package main

import (
	"fmt"

	"github.com/matsen/paperfeed/internal/reference"
	"github.com/matsen/paperfeed/internal/store"
	"github.com/spf13/cobra"
)

var categoryColor string

func init() {
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "Display color, e.g. #22c55e")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage triage categories",
	Long: `Manage the categories items are sorted into. Every item without an
assignment is in "Unsorted", which can be renamed but not deleted.`,
}

// CategoryView is a category with its item count.
type CategoryView struct {
	reference.Category
	Count int `json:"count"`
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repoRoot := mustFindRepository()
		s, closer := mustOpenStore(repoRoot)
		defer closer.Close()

		cat, err := s.AddCategory(args[0], categoryColor)
		mustSave(err, "adding category")

		if humanOutput {
			fmt.Printf("Created %s (%s)\n", cat.Name, cat.ID)
			return nil
		}
		outputJSON(cat)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with item counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repoRoot := mustFindRepository()
		s, closer := mustOpenStore(repoRoot)
		defer closer.Close()

		counts := make(map[string]int)
		for _, it := range s.Items() {
			counts[s.CategoryOf(it.UID)]++
		}
		cats := s.Categories()
		views := make([]CategoryView, len(cats))
		for i, c := range cats {
			views[i] = CategoryView{Category: c, Count: counts[c.ID]}
		}

		if humanOutput {
			for _, v := range views {
				fmt.Printf("%-24s %4d  %s\n", truncateString(v.Name, 24), v.Count, v.ID)
			}
			return nil
		}
		outputJSON(views)
		return nil
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <category> <new-name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repoRoot := mustFindRepository()
		s, closer := mustOpenStore(repoRoot)
		defer closer.Close()

		cat := mustFindCategory(s, args[0])
		mustSave(s.RenameCategory(cat.ID, args[1]), "renaming category")

		if humanOutput {
			fmt.Printf("Renamed %s to %s\n", cat.Name, args[1])
			return nil
		}
		outputJSON(UpdateResponse{Status: "updated", Key: cat.ID, Value: args[1]})
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <category>",
	Short: "Delete a category; its items return to Unsorted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repoRoot := mustFindRepository()
		s, closer := mustOpenStore(repoRoot)
		defer closer.Close()

		cat := mustFindCategory(s, args[0])
		n, err := s.DeleteCategory(cat.ID)
		mustSave(err, "deleting category")

		if humanOutput {
			fmt.Printf("Deleted %s; %d items moved to Unsorted\n", cat.Name, n)
			return nil
		}
		outputJSON(StatusResponse{Status: "deleted", Count: intPtr(n)})
		return nil
	},
}

func mustFindCategory(s *store.Store, idOrName string) reference.Category {
	cat, ok := s.FindCategory(idOrName)
	if !ok {
		exitWithError(ExitDataError, "%v: %s", store.ErrUnknownCategory, idOrName)
	}
	return cat
}
