package main

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/paperfeed/internal/reference"
	"github.com/matsen/paperfeed/internal/storage"
)

func TestAppendJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.jsonl")
	a := reference.Item{UID: "doi:10.1/a", DOI: "10.1/A", Title: "A"}
	b := reference.Item{UID: "arxiv:2401.00001", ArXiv: "2401.00001", Title: "B"}

	// Missing file starts empty.
	resp, err := appendJSONL(path, []reference.Item{a})
	if err != nil {
		t.Fatalf("appendJSONL() error = %v", err)
	}
	if resp.Appended != 1 || resp.Skipped != 0 {
		t.Errorf("first append = %+v, want 1 appended", resp)
	}

	// Same uid, same DOI under a different uid, and one new item.
	sameDOI := reference.Item{UID: "u1legacy", DOI: "10.1/a", Title: "A again"}
	resp, err = appendJSONL(path, []reference.Item{a, sameDOI, b, b})
	if err != nil {
		t.Fatalf("appendJSONL() error = %v", err)
	}
	if resp.Appended != 1 || resp.Skipped != 3 {
		t.Errorf("second append = %+v, want 1 appended, 3 skipped", resp)
	}
	if !reflect.DeepEqual(resp.Keys, []string{"arxiv:2401.00001"}) {
		t.Errorf("Keys = %v", resp.Keys)
	}

	items, err := storage.ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(items) != 2 || items[0].UID != a.UID || items[1].UID != b.UID {
		t.Errorf("file holds %+v", items)
	}
}

func TestAppendJSONL_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.jsonl")
	if err := storage.WriteAll(path, []reference.Item{{UID: "doi:10.1/a"}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := storage.Append(path, reference.Item{UID: "doi:10.1/b"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	resp, err := appendJSONL(path, []reference.Item{{UID: "doi:10.1/b"}})
	if err != nil {
		t.Fatalf("appendJSONL() error = %v", err)
	}
	if resp.Appended != 0 || resp.Skipped != 1 {
		t.Errorf("append = %+v, want 1 skipped", resp)
	}
}
