package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/paperfeed/internal/clipboard"
	"github.com/matsen/paperfeed/internal/export"
	"github.com/matsen/paperfeed/internal/query"
	"github.com/matsen/paperfeed/internal/reference"
	"github.com/matsen/paperfeed/internal/storage"
	"github.com/matsen/paperfeed/internal/store"
	"github.com/spf13/cobra"
)

// Export formats
const (
	ExportBibTeX = "bibtex"
	ExportJSON   = "json"
	ExportJSONL  = "jsonl"
)

var (
	exportFormat    string
	exportUIDs      string
	exportFavorites bool
	exportCategory  string
	exportQuery     string
	exportAnnotate  bool
	exportAppend    string
	exportOutput    string
	exportCopy      bool
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", ExportBibTeX, "Output format: bibtex, json (snapshot), jsonl")
	exportCmd.Flags().StringVar(&exportUIDs, "uids", "", "Export only these items (comma-separated uids, DOIs or arXiv ids)")
	exportCmd.Flags().BoolVar(&exportFavorites, "favorites", false, "Export the favorites")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "Export one category (id or name)")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Export items matching a substring query")
	exportCmd.Flags().BoolVar(&exportAnnotate, "annotate", false, "Add status, keyword hits and notes as a BibTeX note")
	exportCmd.Flags().StringVar(&exportAppend, "append", "", "Append new entries to this .bib (or .jsonl with --format jsonl) file, skipping ones it has")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportCopy, "copy", false, "Copy the output to the clipboard")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export items as BibTeX or JSON",
	Long: `Export items as BibTeX, a JSON snapshot of the whole state, or JSONL.

Citation keys are surname + year + journal abbreviation, suffixed a, b, ...
on collision within one export.

Examples:
  pf export > refs.bib
  pf export --favorites --annotate --copy
  pf export --uids 10.1103/PhysRevLett.132.010001,2408.01234
  pf export --append ~/papers/main.bib
  pf export --format jsonl --append archive.jsonl
  pf export --format json -o backup.json`,
	RunE: runExport,
}

// AppendResponse is the result of export --append.
type AppendResponse struct {
	Path     string   `json:"path"`
	Appended int      `json:"appended"`
	Skipped  int      `json:"skipped"`
	Keys     []string `json:"keys"`
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	s, closer := mustOpenStore(repoRoot)
	defer closer.Close()

	if exportFormat == ExportJSON {
		data, err := s.MarshalSnapshot()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		writeExport(string(data) + "\n")
		return nil
	}

	items := selectExportItems(s)

	switch exportFormat {
	case ExportJSONL:
		if exportAppend != "" {
			resp, err := appendJSONL(exportAppend, items)
			if err != nil {
				exitWithError(ExitError, "appending to %s: %v", exportAppend, err)
			}
			printAppend(resp)
			return nil
		}
		if exportOutput != "" {
			if err := storage.WriteAll(exportOutput, items); err != nil {
				exitWithError(ExitError, "writing %s: %v", exportOutput, err)
			}
			printWritten(exportOutput, len(items))
			return nil
		}
		var buf bytes.Buffer
		if err := storage.WriteItems(&buf, items); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		writeExport(buf.String())
	case ExportBibTeX:
		var annotate func(reference.Item) string
		if exportAnnotate {
			keywords := activeKeywords(s)
			annotate = func(it reference.Item) string {
				return export.ComposeNote(s.Status(it.UID).Status, query.Hits(it, keywords), s.Note(it.UID))
			}
		}
		if exportAppend != "" {
			appendBibTeX(items, annotate)
			return nil
		}
		bib := export.ToBibTeXList(items, annotate)
		if bib != "" {
			bib += "\n"
		}
		writeExport(bib)
	default:
		exitWithError(ExitError, "unknown format: %s (valid: bibtex, json, jsonl)", exportFormat)
	}
	return nil
}

// selectExportItems applies the selection flags.
func selectExportItems(s *store.Store) []reference.Item {
	var items []reference.Item
	switch {
	case exportUIDs != "":
		for _, arg := range splitList(exportUIDs) {
			uid := mustResolveUID(s, arg)
			it, _ := lookupItem(s, uid)
			items = append(items, it)
		}
	case exportFavorites:
		for _, f := range s.Favorites() {
			items = append(items, f.Item())
		}
	default:
		items = s.Items()
	}

	if exportCategory != "" {
		cat := mustFindCategory(s, exportCategory)
		items = query.Apply(items, query.Filter{Category: cat.ID, CategoryOf: s.CategoryOf})
	}
	return query.FilterQuery(items, exportQuery)
}

// appendBibTeX appends entries missing from the --append file, keeping
// new keys clear of the keys it already uses.
func appendBibTeX(items []reference.Item, annotate func(reference.Item) string) {
	path := exportAppend
	idx, err := export.ParseBibTeXFile(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}

	keys := export.NewKeyGenerator()
	keys.Reserve(idx.KeyList()...)

	var entries []string
	resp := AppendResponse{Path: path, Keys: []string{}}
	for _, it := range items {
		if it.DOI != "" && idx.HasEntry("", it.DOI) {
			resp.Skipped++
			continue
		}
		key := keys.Key(it)
		var note string
		if annotate != nil {
			note = annotate(it)
		}
		entries = append(entries, export.ToBibTeXWithKey(it, key, note))
		idx.Add(key, it.DOI)
		resp.Keys = append(resp.Keys, key)
	}
	resp.Appended = len(entries)

	if len(entries) > 0 {
		if err := export.AppendToBibFile(path, strings.Join(entries, "\n\n")); err != nil {
			exitWithError(ExitError, "appending to %s: %v", path, err)
		}
	}

	printAppend(resp)
}

// appendJSONL appends items missing from the JSONL file at path, matching
// on uid and then DOI. Keys lists the appended uids.
func appendJSONL(path string, items []reference.Item) (AppendResponse, error) {
	resp := AppendResponse{Path: path, Keys: []string{}}
	existing, err := storage.ReadAll(path)
	if err != nil {
		return resp, err
	}
	for _, it := range items {
		if _, ok := storage.FindByUID(existing, it.UID); ok {
			resp.Skipped++
			continue
		}
		if _, ok := storage.FindByDOI(existing, it.DOI); ok {
			resp.Skipped++
			continue
		}
		if err := storage.Append(path, it); err != nil {
			return resp, err
		}
		existing = append(existing, it)
		resp.Keys = append(resp.Keys, it.UID)
		resp.Appended++
	}
	return resp, nil
}

func printAppend(resp AppendResponse) {
	if humanOutput {
		fmt.Printf("Appended %d entries to %s (%d already present)\n", resp.Appended, resp.Path, resp.Skipped)
		for _, k := range resp.Keys {
			fmt.Printf("  %s\n", k)
		}
		return
	}
	outputJSON(resp)
}

func printWritten(path string, n int) {
	if humanOutput {
		fmt.Printf("Wrote %s\n", path)
		return
	}
	outputJSON(StatusResponse{Status: "written", Path: path, Count: intPtr(n)})
}

// writeExport sends text to --output, the clipboard, or stdout.
func writeExport(text string) {
	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(text), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportOutput, err)
		}
		if humanOutput {
			fmt.Printf("Wrote %s\n", exportOutput)
		} else {
			outputJSON(StatusResponse{Status: "written", Path: exportOutput})
		}
		return
	}
	if exportCopy {
		copied, err := clipboard.CopyOrPrint(os.Stdout, text)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if copied {
			fmt.Fprintln(os.Stderr, "Copied to clipboard")
		} else {
			fmt.Fprintln(os.Stderr, "Clipboard unavailable; copy the text above")
		}
		return
	}
	fmt.Print(text)
}
