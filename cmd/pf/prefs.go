package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/paperfeed/internal/query"
	"github.com/matsen/paperfeed/internal/reference"
	"github.com/matsen/paperfeed/internal/store"
	"github.com/spf13/cobra"
)

var prefsStatsTop int

func init() {
	prefsKeywordsCmd.Flags().IntVar(&prefsStatsTop, "stats", 0, "Also report the top N keyword and pair hit counts over the collection")

	prefsCmd.AddCommand(prefsKeywordsCmd)
	prefsCmd.AddCommand(prefsHighlightCmd)
	prefsCmd.AddCommand(prefsHighlightSummaryCmd)
	prefsCmd.AddCommand(prefsThemeCmd)
	rootCmd.AddCommand(prefsCmd)
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change keyword and display preferences",
	Long: `Show or change the per-repository preferences: tracked keywords,
keyword highlighting in titles and abstracts, and the display theme.

Until keywords are saved here, the keywords from the global config file
are used.`,
	Args: cobra.NoArgs,
	RunE: runPrefs,
}

// PrefsResponse is the JSON form of prefs.
type PrefsResponse struct {
	reference.Prefs
	Active []string    `json:"activeKeywords"`
	Theme  store.Theme `json:"theme"`
}

func runPrefs(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	p := s.Prefs()
	if humanOutput {
		fmt.Printf("keywords:          %s\n", strings.Join(activeKeywords(s), ", "))
		fmt.Printf("highlight:         %t\n", p.Highlight)
		fmt.Printf("highlight-summary: %t\n", p.HighlightSummary)
		fmt.Printf("theme:             %s\n", s.Theme())
		return nil
	}
	outputJSON(PrefsResponse{Prefs: p, Active: activeKeywords(s), Theme: s.Theme()})
	return nil
}

var prefsKeywordsCmd = &cobra.Command{
	Use:   "keywords [keyword,keyword,...]",
	Short: "Show or replace the tracked keywords",
	Long: `Show or replace the tracked keywords. Pass a comma-separated list to
replace them, or "" to fall back to the global config keywords.

Examples:
  pf prefs keywords
  pf prefs keywords "graphene, moire, flat band"
  pf prefs keywords --stats 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrefsKeywords,
}

// KeywordStatsResponse reports keyword hit counts over the collection.
type KeywordStatsResponse struct {
	Keywords []string    `json:"keywords"`
	Stats    query.Stats `json:"stats"`
}

func runPrefsKeywords(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	if len(args) == 1 {
		p := s.Prefs()
		p.Keywords = splitList(args[0])
		mustSave(s.SetPrefs(p), "saving keywords")
	}

	keywords := activeKeywords(s)
	if prefsStatsTop > 0 {
		stats := query.KeywordStats(s.Items(), keywords, prefsStatsTop, prefsStatsTop)
		if humanOutput {
			for _, c := range stats.Keywords {
				fmt.Printf("%-30s %d\n", c.Key, c.Count)
			}
			for _, c := range stats.Pairs {
				fmt.Printf("%-30s %d\n", c.Key, c.Count)
			}
			return nil
		}
		outputJSON(KeywordStatsResponse{Keywords: keywords, Stats: stats})
		return nil
	}

	if humanOutput {
		if len(keywords) == 0 {
			fmt.Println("(no keywords)")
		}
		for _, k := range keywords {
			fmt.Println(k)
		}
		return nil
	}
	if keywords == nil {
		keywords = []string{}
	}
	outputJSON(keywords)
	return nil
}

var prefsHighlightCmd = &cobra.Command{
	Use:   "highlight [on|off]",
	Short: "Show or toggle keyword highlighting in titles",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrefsBool(args, "highlight", func(p *reference.Prefs) *bool { return &p.Highlight })
	},
}

var prefsHighlightSummaryCmd = &cobra.Command{
	Use:   "highlight-summary [on|off]",
	Short: "Show or toggle keyword highlighting in abstracts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrefsBool(args, "highlight_summary", func(p *reference.Prefs) *bool { return &p.HighlightSummary })
	},
}

func runPrefsBool(args []string, key string, field func(*reference.Prefs) *bool) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	p := s.Prefs()
	if len(args) == 1 {
		v, err := parseSwitch(args[0])
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		*field(&p) = v
		mustSave(s.SetPrefs(p), "saving preferences")
	}

	v := *field(&p)
	if humanOutput {
		fmt.Printf("%s: %t\n", key, v)
		return nil
	}
	outputJSON(UpdateResponse{Status: "ok", Key: key, Value: v})
	return nil
}

// parseSwitch accepts on/off in addition to strconv.ParseBool forms.
func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid value %q: want on or off", s)
	}
	return v, nil
}

var prefsThemeCmd = &cobra.Command{
	Use:   "theme [light|dark|auto]",
	Short: "Show or set the display theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repoRoot := mustFindRepository()
		s, closer := mustOpenStore(repoRoot)
		defer closer.Close()

		if len(args) == 1 {
			t, err := store.ParseTheme(args[0])
			if err != nil {
				exitWithError(ExitError, "%v", err)
			}
			mustSave(s.SetTheme(t), "saving theme")
		}

		if humanOutput {
			fmt.Println(s.Theme())
			return nil
		}
		outputJSON(UpdateResponse{Status: "ok", Key: "theme", Value: s.Theme()})
		return nil
	},
}
