package main

import (
	"fmt"

	"github.com/matsen/paperfeed/internal/reference"
	"github.com/spf13/cobra"
)

var favClearYes bool

func init() {
	favClearCmd.Flags().BoolVar(&favClearYes, "yes", false, "Confirm removing every favorite")
	favExportCmd.Flags().BoolVar(&exportAnnotate, "annotate", false, "Add status, keyword hits and notes as a BibTeX note")
	favExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	favExportCmd.Flags().BoolVar(&exportCopy, "copy", false, "Copy the BibTeX to the clipboard")

	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRmCmd)
	favCmd.AddCommand(favToggleCmd)
	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favClearCmd)
	favCmd.AddCommand(favExportCmd)
	rootCmd.AddCommand(favCmd)
}

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorites",
	Long: `Manage favorites. A favorite keeps a snapshot of its item, so it
survives "pf clear" and re-imports that drop the item.`,
}

// FavoriteResponse reports the favorite state of one item.
type FavoriteResponse struct {
	UID      string `json:"uid"`
	Favorite bool   `json:"favorite"`
	Changed  bool   `json:"changed"`
}

var favAddCmd = &cobra.Command{
	Use:   "add <uid|doi|arxiv>...",
	Short: "Add items to the favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFavChange(args, true)
	},
}

var favRmCmd = &cobra.Command{
	Use:     "rm <uid|doi|arxiv>...",
	Aliases: []string{"remove"},
	Short:   "Remove items from the favorites",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFavChange(args, false)
	},
}

func runFavChange(args []string, add bool) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	var results []FavoriteResponse
	for _, arg := range args {
		uid := mustResolveUID(s, arg)
		var changed bool
		var err error
		if add {
			changed, err = s.AddFavorite(uid)
		} else {
			changed, err = s.RemoveFavorite(uid)
		}
		mustSave(err, "saving favorites")
		results = append(results, FavoriteResponse{UID: uid, Favorite: add, Changed: changed})
	}

	if humanOutput {
		for _, r := range results {
			switch {
			case !r.Changed && add:
				fmt.Printf("%s is already a favorite\n", r.UID)
			case !r.Changed:
				fmt.Printf("%s is not a favorite\n", r.UID)
			case add:
				fmt.Printf("Added %s\n", r.UID)
			default:
				fmt.Printf("Removed %s\n", r.UID)
			}
		}
		return nil
	}
	outputJSON(results)
	return nil
}

var favToggleCmd = &cobra.Command{
	Use:   "toggle <uid|doi|arxiv>",
	Short: "Flip the favorite state of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repoRoot := mustFindRepository()
		s, closer := mustOpenStore(repoRoot)
		defer closer.Close()

		uid := mustResolveUID(s, args[0])
		fav, err := s.ToggleFavorite(uid)
		mustSave(err, "saving favorites")

		if humanOutput {
			if fav {
				fmt.Printf("Added %s\n", uid)
			} else {
				fmt.Printf("Removed %s\n", uid)
			}
			return nil
		}
		outputJSON(FavoriteResponse{UID: uid, Favorite: fav, Changed: true})
		return nil
	},
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites, including ones whose item is gone",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repoRoot := mustFindRepository()
		s, closer := mustOpenStore(repoRoot)
		defer closer.Close()

		favs := s.Favorites()
		if humanOutput {
			if len(favs) == 0 {
				fmt.Println("No favorites")
				return nil
			}
			kw := highlightKeywords(s)
			for i, f := range favs {
				printItemSummary(i+1, f.Item(), kw)
			}
			return nil
		}
		if favs == nil {
			favs = []reference.Favorite{}
		}
		outputJSON(favs)
		return nil
	},
}

var favClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !favClearYes {
			exitWithError(ExitError, "refusing to clear favorites without --yes")
		}
		repoRoot := mustFindRepository()
		s, closer := mustOpenStore(repoRoot)
		defer closer.Close()

		n := len(s.Favorites())
		mustSave(s.ClearFavorites(), "clearing favorites")

		if humanOutput {
			fmt.Printf("Removed %d favorites\n", n)
			return nil
		}
		outputJSON(StatusResponse{Status: "cleared", Count: intPtr(n)})
		return nil
	},
}

var favExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the favorites as BibTeX",
	Long: `Export the favorites as BibTeX. Same as "pf export --favorites".

Example:
  pf fav export --annotate --copy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exportFavorites = true
		exportFormat = ExportBibTeX
		return runExport(cmd, args)
	},
}
