package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(noteCmd)
}

var noteCmd = &cobra.Command{
	Use:   "note <uid|doi|arxiv> [text...]",
	Short: "Show or set the note on an item",
	Long: `Show or set the free-text note on an item. Setting a note also
recomputes the automatic rating from its length. An empty text deletes
the note.

Examples:
  pf note doi:10.1103/physrevlett.132.010001
  pf note 2408.01234 "Check the flat-band argument in section III"
  pf note 2408.01234 ""`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNote,
}

func runNote(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	uid := mustResolveUID(s, args[0])

	if len(args) == 1 {
		note := s.Note(uid)
		if humanOutput {
			if note == "" {
				fmt.Println("(no note)")
			} else {
				fmt.Println(wrapText(note, DetailTextWrapWidth, ""))
			}
			return nil
		}
		outputJSON(UpdateResponse{Status: "ok", UID: uid, Key: "note", Value: note})
		return nil
	}

	text := strings.Join(args[1:], " ")
	mustSave(s.SetNote(uid, text), "saving note")
	logger.Debug("note saved")

	rating := s.Rating(uid)
	if humanOutput {
		if strings.TrimSpace(text) == "" {
			fmt.Printf("Deleted note on %s\n", uid)
		} else {
			fmt.Printf("Saved note on %s (auto rating %.1f)\n", uid, rating.Auto)
		}
		return nil
	}
	outputJSON(UpdateResponse{Status: "updated", UID: uid, Key: "note", Value: s.Note(uid)})
	return nil
}
