package main

import (
	"fmt"
	"time"

	"github.com/matsen/paperfeed/internal/query"
	"github.com/spf13/cobra"
)

var visitPeek bool

func init() {
	visitCmd.Flags().BoolVar(&visitPeek, "peek", false, "Report without recording a new visit")
	rootCmd.AddCommand(visitCmd)
}

var visitCmd = &cobra.Command{
	Use:   "visit",
	Short: "Record a visit and report what is new since the last one",
	Long: `Record the current time as the last visit, reporting the previous
visit and how many items are dated after it. "pf list --view new" lists
those items until the next visit.`,
	Args: cobra.NoArgs,
	RunE: runVisit,
}

// VisitResponse is the response for the visit command.
type VisitResponse struct {
	Previous *time.Time `json:"previous,omitempty"`
	Current  time.Time  `json:"current"`
	New      int        `json:"new"`
}

func runVisit(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	now := time.Now()
	prev := s.LastVisit()
	fresh := query.Apply(s.Items(), query.Filter{View: query.ViewNew, Now: now, LastVisit: prev})

	resp := VisitResponse{Current: now.UTC(), New: len(fresh)}
	if !prev.IsZero() {
		p := prev.UTC()
		resp.Previous = &p
	}
	if !visitPeek {
		mustSave(s.SetLastVisit(now), "recording visit")
		resp.Current = s.LastVisit().UTC()
	}

	if humanOutput {
		if resp.Previous == nil {
			fmt.Println("First visit")
		} else {
			fmt.Printf("Last visit %s; %d new items since\n", resp.Previous.Format(time.RFC3339), resp.New)
		}
		return nil
	}
	outputJSON(resp)
	return nil
}
