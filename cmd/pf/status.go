package main

import (
	"fmt"

	"github.com/matsen/paperfeed/internal/reference"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status <uid|doi|arxiv> [todo|reading|done|none]",
	Short: "Show or set the reading status of an item",
	Long: `Show or set the reading status of an item. Setting a status stamps
the item as touched, which feeds the weekly digest.

Examples:
  pf status 2408.01234
  pf status 2408.01234 reading
  pf status 2408.01234 none`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	uid := mustResolveUID(s, args[0])

	if len(args) == 1 {
		st := s.Status(uid)
		if humanOutput {
			if st.Status == reference.StatusNone {
				fmt.Println("(no status)")
			} else {
				fmt.Println(st.Status)
			}
			return nil
		}
		outputJSON(st)
		return nil
	}

	arg := args[1]
	if arg == "none" {
		arg = ""
	}
	status, ok := reference.ParseStatus(arg)
	if !ok {
		exitWithError(ExitError, "invalid status %q: want todo, reading, done or none", args[1])
	}
	mustSave(s.SetStatus(uid, status), "saving status")

	if humanOutput {
		fmt.Printf("Set %s to %q\n", uid, status)
		return nil
	}
	outputJSON(UpdateResponse{Status: "updated", UID: uid, Key: "status", Value: s.Status(uid)})
	return nil
}
