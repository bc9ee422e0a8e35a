package main

import (
	"fmt"

	"github.com/matsen/paperfeed/internal/browser"
	"github.com/matsen/paperfeed/internal/reference"
	"github.com/spf13/cobra"
)

var (
	openPrint bool
	openMark  bool
)

func init() {
	openCmd.Flags().BoolVar(&openPrint, "print", false, "Print the link instead of opening it")
	openCmd.Flags().BoolVar(&openMark, "mark-reading", false, "Also set the reading status to \"reading\"")
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <uid|doi|arxiv>",
	Short: "Open an item's link in the browser",
	Long: `Open an item's link in the web browser: the arXiv abstract page, the
item's URL, or the DOI resolver, in that order.

Examples:
  pf open 2408.01234
  pf open doi:10.1103/physrevlett.132.010001 --mark-reading
  pf open 2408.01234 --print`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

// OpenResult is the response for the open command.
type OpenResult struct {
	Status string `json:"status"`
	UID    string `json:"uid"`
	URL    string `json:"url"`
}

func runOpen(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	uid := mustResolveUID(s, args[0])
	it, _ := lookupItem(s, uid)
	link := it.BestLink()
	if link == "" {
		exitWithError(ExitDataError, "%s has no link", uid)
	}

	status := "printed"
	if !openPrint {
		if err := browser.Open(link); err != nil {
			exitWithError(ExitError, "opening %s: %v", link, err)
		}
		status = "opened"
	}
	if openMark {
		mustSave(s.SetStatus(uid, reference.StatusReading), "saving status")
	}

	if humanOutput {
		fmt.Println(link)
		return nil
	}
	outputJSON(OpenResult{Status: status, UID: uid, URL: link})
	return nil
}
