package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matsen/paperfeed/internal/reference"
	_ "modernc.org/sqlite"
)

// Index is a disposable SQLite full-text index over items.
// It is rebuilt from the store and never holds the only copy of anything.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates an index database at the given path.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createIndexSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

func createIndexSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS items (
			uid TEXT PRIMARY KEY,
			pos INTEGER NOT NULL,
			title TEXT NOT NULL,
			journal TEXT,
			journal_key TEXT NOT NULL,
			type TEXT NOT NULL,
			year TEXT,
			doi TEXT,
			item_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_items_doi ON items(doi) WHERE doi IS NOT NULL AND doi != '';

		-- Standalone FTS table, not external content
		CREATE VIRTUAL TABLE IF NOT EXISTS items_fts USING fts5(
			uid,
			title,
			abstract,
			authors_text,
			journal
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromItems clears the index and fills it from items, preserving order.
func (x *Index) RebuildFromItems(items []reference.Item) (int, error) {
	tx, err := x.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return 0, fmt.Errorf("clearing items table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM items_fts"); err != nil {
		return 0, fmt.Errorf("clearing items_fts table: %w", err)
	}

	itemStmt, err := tx.Prepare(`
		INSERT INTO items (uid, pos, title, journal, journal_key, type, year, doi, item_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing items insert: %w", err)
	}
	defer itemStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO items_fts (uid, title, abstract, authors_text, journal)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for pos, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			return 0, fmt.Errorf("marshaling item %s: %w", it.UID, err)
		}

		_, err = itemStmt.Exec(
			it.UID, pos, it.Title,
			nullableStringValue(it.Journal), string(it.JournalKey), string(it.Type),
			nullableStringValue(it.Year), nullableStringValue(it.DOI),
			string(data),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting item %s: %w", it.UID, err)
		}

		_, err = ftsStmt.Exec(it.UID, it.Title, it.Abstract, strings.Join(it.Authors, ", "), it.Journal)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", it.UID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(items), nil
}

// Get retrieves an item by uid. Returns nil when absent.
func (x *Index) Get(uid string) (*reference.Item, error) {
	row := x.db.QueryRow(`SELECT item_json FROM items WHERE uid = ?`, uid)
	return scanItem(row)
}

// Search performs a full-text search over title, abstract, authors and journal.
func (x *Index) Search(query string, limit int) ([]reference.Item, error) {
	return x.SearchWithFilters(SearchFilters{Keyword: query}, limit)
}

// SearchFilters contains optional filters for SearchWithFilters.
// Text filters go through FTS5, the rest through SQL WHERE.
type SearchFilters struct {
	Keyword    string   // General keyword search across all indexed text
	Authors    []string // Author names (AND logic, prefix matching)
	Title      string   // Search in title only
	JournalKey string   // Exact journal key
	Type       string   // Exact item type
	YearFrom   int      // Minimum year (0 = no minimum)
	YearTo     int      // Maximum year (0 = no maximum)
}

// SearchWithFilters returns items matching ALL specified criteria,
// in store order.
func (x *Index) SearchWithFilters(filters SearchFilters, limit int) ([]reference.Item, error) {
	var ftsTerms []string
	var args []interface{}

	if q := prepareFTSQuery(filters.Keyword); q != "" {
		ftsTerms = append(ftsTerms, q)
	}
	if q := prepareFTSQuery(filters.Title); q != "" {
		ftsTerms = append(ftsTerms, "title:"+q)
	}
	for _, author := range filters.Authors {
		if q := prepareAuthorQuery(author); q != "" {
			ftsTerms = append(ftsTerms, "authors_text:"+q)
		}
	}

	query := `SELECT item_json FROM items WHERE 1=1`
	if len(ftsTerms) > 0 {
		query += ` AND uid IN (SELECT uid FROM items_fts WHERE items_fts MATCH ?)`
		args = append(args, strings.Join(ftsTerms, " AND "))
	}
	if filters.JournalKey != "" {
		query += " AND journal_key = ?"
		args = append(args, filters.JournalKey)
	}
	if filters.Type != "" {
		query += " AND type = ?"
		args = append(args, filters.Type)
	}
	if filters.YearFrom > 0 {
		query += " AND CAST(year AS INTEGER) >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND CAST(year AS INTEGER) <= ?"
		args = append(args, filters.YearTo)
	}

	query += " ORDER BY pos"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := x.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching with filters: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// Count returns the number of indexed items.
func (x *Index) Count() (int, error) {
	var count int
	err := x.db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count)
	return count, err
}

// prepareAuthorQuery prepares an author name for FTS5 search with prefix matching,
// so "Tim" matches "Timothy".
func prepareAuthorQuery(author string) string {
	parts := strings.Fields(author)
	if len(parts) == 0 {
		return ""
	}

	var terms []string
	for _, part := range parts {
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}

	// Multi-word author queries match any part
	return "(" + strings.Join(terms, " OR ") + ")"
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching
	if strings.ContainsAny(query, "\"*+-:(){}[]^~./") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(s scanner) (*reference.Item, error) {
	var data string
	if err := s.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var it reference.Item
	if err := json.Unmarshal([]byte(data), &it); err != nil {
		return nil, fmt.Errorf("parsing item JSON: %w", err)
	}
	return &it, nil
}

func scanItems(rows *sql.Rows) ([]reference.Item, error) {
	var items []reference.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		if it != nil {
			items = append(items, *it)
		}
	}
	return items, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
