package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(assignCmd)
}

var assignCmd = &cobra.Command{
	Use:   "assign <category> <uid|doi|arxiv>...",
	Short: "Move items into a category",
	Long: `Move one or more items into a category, given by id or name.

Example:
  pf assign "Read later" 2408.01234 10.1103/PhysRevLett.132.010001`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAssign,
}

func runAssign(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	cat := mustFindCategory(s, args[0])

	uids := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		uid := mustResolveUID(s, arg)
		mustSave(s.Assign(uid, cat.ID), "assigning "+uid)
		uids = append(uids, uid)
	}

	if humanOutput {
		fmt.Printf("Assigned %d items to %s\n", len(uids), cat.Name)
		return nil
	}
	outputJSON(AssignResponse{Category: cat.ID, UIDs: uids})
	return nil
}

// AssignResponse is the result of assign.
type AssignResponse struct {
	Category string   `json:"category"`
	UIDs     []string `json:"uids"`
}
