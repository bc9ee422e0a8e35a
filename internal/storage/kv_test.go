package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// exerciseKV runs the contract every KV backend must satisfy.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := kv.Set("pf_theme", `"dark"`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, ok, err := kv.Get("pf_theme")
	if err != nil || !ok || v != `"dark"` {
		t.Fatalf("Get() = %q, %v, %v", v, ok, err)
	}

	if err := kv.Set("pf_theme", `"light"`); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if v, _, _ := kv.Get("pf_theme"); v != `"light"` {
		t.Errorf("Get() after overwrite = %q", v)
	}

	if err := kv.Delete("pf_theme"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := kv.Get("pf_theme"); ok {
		t.Error("Get() after Delete found the key")
	}
	if err := kv.Delete("pf_theme"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
}

func TestMemKV(t *testing.T) {
	kv := NewMemKV()
	exerciseKV(t, kv)
}

func TestFileKV(t *testing.T) {
	kv, err := OpenFileKV(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("OpenFileKV() error = %v", err)
	}
	exerciseKV(t, kv)
}

func TestFileKV_Persists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	kv, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("OpenFileKV() error = %v", err)
	}
	if err := kv.Set("pf_notes_v1", `{"doi:10.1/abc":"read me"}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	v, ok, _ := reopened.Get("pf_notes_v1")
	if !ok || v != `{"doi:10.1/abc":"read me"}` {
		t.Errorf("Get() after reopen = %q, %v", v, ok)
	}

	// No temp files left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFileKV(path); err == nil {
		t.Error("OpenFileKV() expected error for corrupt file")
	}
}

func TestFileKV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	kv, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("OpenFileKV() error = %v", err)
	}
	if _, ok, _ := kv.Get("anything"); ok {
		t.Error("empty file produced a key")
	}
}

func TestSQLiteKV(t *testing.T) {
	kv, err := OpenSQLiteKV(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteKV() error = %v", err)
	}
	defer kv.Close()
	exerciseKV(t, kv)
}

func TestSQLiteKV_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	kv, err := OpenSQLiteKV(path)
	if err != nil {
		t.Fatalf("OpenSQLiteKV() error = %v", err)
	}
	if err := kv.Set("pf_last_visit_ts", "1700000000000"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	kv.Close()

	reopened, err := OpenSQLiteKV(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get("pf_last_visit_ts")
	if err != nil || !ok || v != "1700000000000" {
		t.Errorf("Get() after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestCopy(t *testing.T) {
	src := NewMemKV()
	src.Set("a", "1")
	src.Set("b", "2")
	src.Set("ignored", "x")

	dst, err := OpenSQLiteKV(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteKV() error = %v", err)
	}
	defer dst.Close()
	dst.Set("c", "stale")

	n, err := Copy(dst, src, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Copy() = %d, want 2", n)
	}
	if v, _, _ := dst.Get("b"); v != "2" {
		t.Errorf("dst b = %q, want 2", v)
	}
	if _, ok, _ := dst.Get("c"); ok {
		t.Error("key absent from src survived in dst")
	}
	if _, ok, _ := dst.Get("ignored"); ok {
		t.Error("unlisted key was copied")
	}
}
