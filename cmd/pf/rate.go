package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rateCmd)
}

var rateCmd = &cobra.Command{
	Use:   "rate <uid|doi|arxiv> <0-5>",
	Short: "Set the manual rating of an item",
	Long: `Set the manual rating of an item, from 0 to 5 in steps of 0.5.

Example:
  pf rate 2408.01234 4.5`,
	Args: cobra.ExactArgs(2),
	RunE: runRate,
}

func runRate(cmd *cobra.Command, args []string) error {
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		exitWithError(ExitError, "invalid rating %q: want a number from 0 to 5", args[1])
	}

	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	uid := mustResolveUID(s, args[0])
	mustSave(s.SetManualRating(uid, v), "saving rating")

	if humanOutput {
		fmt.Printf("Rated %s %.1f\n", uid, v)
		return nil
	}
	outputJSON(UpdateResponse{Status: "updated", UID: uid, Key: "rating", Value: s.Rating(uid)})
	return nil
}
