package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <uid|doi|arxiv>",
	Short: "Show one item with its notes, rating and category",
	Long: `Show one item by uid, DOI or arXiv id. Favorites whose item left the
collection are shown from their saved snapshot.

Example:
  pf get doi:10.1103/physrevlett.132.010001
  pf get 2408.01234`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	uid := mustResolveUID(s, args[0])
	it, _ := lookupItem(s, uid)
	view := viewOf(s, it, activeKeywords(s))

	if !humanOutput {
		outputJSON(view)
		return nil
	}

	kw := highlightKeywords(s)
	cat, _ := s.FindCategory(view.Category)

	fmt.Println(highlight(it.Title, kw))
	fmt.Println(strings.Repeat("=", min(len([]rune(it.Title)), DetailTextWrapWidth)))
	fmt.Printf("Authors:  %s\n", wrapText(strings.Join(it.Authors, ", "), DetailTextWrapWidth-10, "          "))
	fmt.Printf("Venue:    %s (%s)\n", venueLine(it), it.Type.Label())
	if link := it.BestLink(); link != "" {
		fmt.Printf("Link:     %s\n", link)
	}
	fmt.Printf("UID:      %s\n", it.UID)
	fmt.Printf("Category: %s\n", cat.Name)
	fmt.Printf("Rating:   %.1f (auto %.1f)\n", view.Rating.Manual, view.Rating.Auto)
	if view.Status != "" {
		fmt.Printf("Status:   %s\n", view.Status)
	}
	if view.Favorite {
		fmt.Println("Favorite: yes")
	}
	if len(view.Hits) > 0 {
		fmt.Printf("Keywords: %s\n", strings.Join(view.Hits, ", "))
	}
	if it.Abstract != "" {
		abstract := it.Abstract
		if s.Prefs().HighlightSummary {
			abstract = highlight(abstract, kw)
		}
		fmt.Printf("\n%s\n", wrapText(abstract, DetailTextWrapWidth, ""))
	}
	if view.Note != "" {
		fmt.Printf("\nNote:\n  %s\n", wrapText(view.Note, DetailTextWrapWidth-2, "  "))
	}
	return nil
}
