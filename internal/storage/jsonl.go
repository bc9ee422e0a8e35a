// Package storage handles persistence: the key/value state backends,
// JSONL item files and the SQLite search index.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/paperfeed/internal/reference"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadItems reads one item per line, skipping blank lines.
func ReadItems(r io.Reader) ([]reference.Item, error) {
	var items []reference.Item
	scanner := bufio.NewScanner(r)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var it reference.Item
		if err := json.Unmarshal(line, &it); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		items = append(items, it)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}

	return items, nil
}

// ReadAll reads all items from a JSONL file. A missing file yields no items.
func ReadAll(path string) ([]reference.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening items file: %w", err)
	}
	defer f.Close()

	return ReadItems(f)
}

// WriteItems writes items one JSON object per line.
func WriteItems(w io.Writer, items []reference.Item) error {
	for i, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("encoding item %d: %w", i, err)
		}

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing item %d: %w", i, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return nil
}

// WriteAll writes all items to a JSONL file, replacing existing content.
func WriteAll(path string, items []reference.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating items file: %w", err)
	}
	defer f.Close()

	if err := WriteItems(f, items); err != nil {
		return err
	}
	return f.Close()
}

// Append adds an item to the end of a JSONL file.
func Append(path string, it reference.Item) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening items file for append: %w", err)
	}
	defer f.Close()

	return WriteItems(f, []reference.Item{it})
}

// FindByDOI searches for an item by DOI, ignoring case.
func FindByDOI(items []reference.Item, doi string) (int, bool) {
	if doi == "" {
		return -1, false
	}
	for i, it := range items {
		if strings.EqualFold(it.DOI, doi) {
			return i, true
		}
	}
	return -1, false
}

// FindByUID searches for an item by uid.
func FindByUID(items []reference.Item, uid string) (int, bool) {
	for i, it := range items {
		if it.UID == uid {
			return i, true
		}
	}
	return -1, false
}
