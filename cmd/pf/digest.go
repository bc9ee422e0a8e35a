package main

import (
	"fmt"
	"os"
	"time"

	"github.com/matsen/paperfeed/internal/clipboard"
	"github.com/matsen/paperfeed/internal/query"
	"github.com/spf13/cobra"
)

var (
	digestDays   int
	digestOutput string
	digestCopy   bool
)

func init() {
	digestCmd.Flags().IntVar(&digestDays, "days", int(query.DigestWindow.Hours()/24), "Look back this many days")
	digestCmd.Flags().StringVarP(&digestOutput, "output", "o", "", "Write the markdown to a file")
	digestCmd.Flags().BoolVar(&digestCopy, "copy", false, "Copy the markdown to the clipboard")
	rootCmd.AddCommand(digestCmd)
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Summarize what you read this week as markdown",
	Long: `Build a markdown digest of the items whose status or note changed
recently, grouped by reading status, with keyword hit counts.

Examples:
  pf digest --human
  pf digest --days 14 -o digest.md
  pf digest --copy`,
	Args: cobra.NoArgs,
	RunE: runDigest,
}

// DigestResponse is the JSON form of digest.
type DigestResponse struct {
	Since    time.Time `json:"since"`
	Count    int       `json:"count"`
	Markdown string    `json:"markdown"`
}

func runDigest(cmd *cobra.Command, args []string) error {
	if digestDays <= 0 {
		exitWithError(ExitError, "--days must be positive")
	}

	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	now := time.Now()
	since := now.Add(-time.Duration(digestDays) * 24 * time.Hour)

	var entries []query.DigestEntry
	for _, t := range s.UpdatedSince(since) {
		it, ok := lookupItem(s, t.UID)
		if !ok {
			logger.Debug("digest skips state without item")
			continue
		}
		entries = append(entries, query.DigestEntry{Item: it, State: t.UserState, Note: s.Note(t.UID)})
	}
	md := query.Digest(entries, activeKeywords(s), now) + "\n"

	switch {
	case digestOutput != "":
		if err := os.WriteFile(digestOutput, []byte(md), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", digestOutput, err)
		}
		if humanOutput {
			fmt.Printf("Wrote %s (%d items)\n", digestOutput, len(entries))
		} else {
			outputJSON(StatusResponse{Status: "written", Path: digestOutput, Count: intPtr(len(entries))})
		}
	case digestCopy:
		copied, err := clipboard.CopyOrPrint(os.Stdout, md)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if copied {
			fmt.Fprintln(os.Stderr, "Copied digest to clipboard")
		}
	case humanOutput:
		fmt.Print(md)
	default:
		outputJSON(DigestResponse{Since: since.UTC(), Count: len(entries), Markdown: md})
	}
	return nil
}
