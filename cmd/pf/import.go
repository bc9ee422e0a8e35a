package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/paperfeed/internal/importer"
	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/reference"
	"github.com/matsen/paperfeed/internal/storage"
	"github.com/matsen/paperfeed/internal/store"
	"github.com/spf13/cobra"
)

// Import formats
const (
	FormatBibTeX   = "bibtex"
	FormatFeed     = "feed"
	FormatRSS      = "rss"
	FormatJSONL    = "jsonl"
	FormatSnapshot = "snapshot"
)

var (
	importFormat  string
	importDryRun  bool
	importJournal string
	importType    string
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Input format: bibtex, feed, rss, jsonl, snapshot (default: from extension)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	importCmd.Flags().StringVar(&importJournal, "journal", "", "Journal name or key for every RSS entry")
	importCmd.Flags().StringVar(&importType, "type", "", "Declared type for every RSS entry (e.g. published, accepted)")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import items from a feed, RSS/Atom, BibTeX or snapshot file",
	Long: `Import items into the collection.

An item whose uid is already stored overwrites the stored fields and keeps
its notes, rating, category and position. New items go to Unsorted.
A snapshot replaces the whole state.

Examples:
  pf import articles.json
  pf import refs.bib --dry-run
  pf import prl.xml --format rss --journal PRL
  pf import backup.json --format snapshot`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResponse is the result of an import.
type ImportResponse struct {
	Format   string   `json:"format"`
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Errors   []string `json:"errors,omitempty"`
}

// DryRunResponse is the result of a dry-run import.
type DryRunResponse struct {
	Format      string         `json:"format"`
	WouldImport int            `json:"would_import"`
	WouldUpdate int            `json:"would_update"`
	Details     []ImportDetail `json:"details,omitempty"`
}

// ImportDetail describes a single import action.
type ImportDetail struct {
	UID    string `json:"uid"`
	Action string `json:"action"` // import, update
	Title  string `json:"title"`
}

// detectFormat picks the import format from the file extension and content.
func detectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bib", ".bibtex":
		return FormatBibTeX
	case ".xml", ".rss", ".atom":
		return FormatRSS
	case ".jsonl", ".ndjson":
		return FormatJSONL
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("@")):
		return FormatBibTeX
	case bytes.HasPrefix(trimmed, []byte("<")):
		return FormatRSS
	case bytes.HasPrefix(trimmed, []byte("{")) && bytes.Contains(trimmed, []byte(`"categories"`)) && bytes.Contains(trimmed, []byte(`"assign"`)):
		return FormatSnapshot
	}
	return FormatFeed
}

// classifyImport reports whether an item would be added or update an existing one.
func classifyImport(s *store.Store, it reference.Item) string {
	if _, ok := s.Item(it.UID); ok {
		return "update"
	}
	return "import"
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading file: %v", err)
	}

	format := importFormat
	if format == "" {
		format = detectFormat(args[0], data)
	}

	if format == FormatSnapshot {
		return runRestore(repoRoot, s, data)
	}

	items, errs := parseImport(format, data)
	if len(items) == 0 {
		if len(errs) > 0 {
			exitWithError(ExitDataError, "no entries imported from %s: %v", args[0], errs[0])
		}
		exitWithError(ExitDataError, "no entries imported from %s: %v", args[0], importer.ErrNoEntries)
	}

	errStrs := make([]string, len(errs))
	for i, e := range errs {
		errStrs[i] = e.Error()
	}

	if importDryRun {
		resp := DryRunResponse{Format: format}
		seen := make(map[string]bool)
		for _, it := range items {
			action := classifyImport(s, it)
			if seen[it.UID] {
				action = "update"
			}
			seen[it.UID] = true
			if action == "import" {
				resp.WouldImport++
			} else {
				resp.WouldUpdate++
			}
			resp.Details = append(resp.Details, ImportDetail{
				UID:    it.UID,
				Action: action,
				Title:  truncateString(it.Title, ImportTitleMaxLen),
			})
		}
		if humanOutput {
			fmt.Printf("Dry run - would import from %s...\n", format)
			fmt.Printf("  Would import: %d new items\n", resp.WouldImport)
			fmt.Printf("  Would update: %d existing items\n", resp.WouldUpdate)
			for _, e := range errStrs {
				fmt.Printf("  skipped: %s\n", e)
			}
		} else {
			outputJSON(resp)
		}
		return nil
	}

	res, err := s.Import(items)
	mustSave(err, "saving imported items")
	invalidateIndex(repoRoot)

	if humanOutput {
		fmt.Printf("Imported %d new, updated %d existing items (%s)\n", res.Added, res.Updated, format)
		for _, e := range errStrs {
			fmt.Printf("  skipped: %s\n", e)
		}
	} else {
		outputJSON(ImportResponse{
			Format:   format,
			Imported: res.Added,
			Updated:  res.Updated,
			Errors:   errStrs,
		})
	}
	return nil
}

// parseImport normalizes data in the given format. Per-record failures come
// back as errors alongside the usable items.
func parseImport(format string, data []byte) ([]reference.Item, []error) {
	im := importer.New(logger)

	switch format {
	case FormatBibTeX:
		items, err := im.BibTeX(data)
		if err != nil {
			return nil, []error{err}
		}
		return items, nil
	case FormatFeed:
		return importer.ParseFeed(data)
	case FormatRSS:
		items, err := im.RSS(bytes.NewReader(data), rssSource())
		if err != nil {
			return nil, []error{err}
		}
		return items, nil
	case FormatJSONL:
		items, err := storage.ReadItems(bytes.NewReader(data))
		if err != nil {
			return nil, []error{err}
		}
		return items, nil
	}
	return nil, []error{fmt.Errorf("unknown format: %s (valid: bibtex, feed, rss, jsonl, snapshot)", format)}
}

// rssSource builds the RSS venue from --journal and --type.
func rssSource() importer.Source {
	src := importer.Source{Type: importType}
	if importJournal == "" {
		return src
	}
	if key := reference.JournalKey(importJournal); key.Known() {
		if _, ok := normalize.JournalInfo(key); ok {
			src.JournalKey = key
			return src
		}
	}
	src.Journal = importJournal
	return src
}

func runRestore(repoRoot string, s *store.Store, data []byte) error {
	if importDryRun {
		exitWithError(ExitError, "--dry-run is not supported for snapshots")
	}
	if err := s.RestoreSnapshot(data); err != nil {
		exitWithError(exitCodeFor(err), "restoring snapshot: %v", err)
	}
	invalidateIndex(repoRoot)
	if humanOutput {
		fmt.Printf("Restored snapshot: %d items, %d categories\n", s.Len(), len(s.Categories()))
	} else {
		outputJSON(StatusResponse{Status: "restored", Count: intPtr(s.Len())})
	}
	return nil
}
