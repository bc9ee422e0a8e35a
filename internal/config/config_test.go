package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	root := "/test/repo"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"PaperfeedPath", PaperfeedPath, "/test/repo/.paperfeed"},
		{"ConfigPath", ConfigPath, "/test/repo/.paperfeed/config.json"},
		{"CachePath", CachePath, "/test/repo/.paperfeed/cache"},
		{"IndexPath", IndexPath, "/test/repo/.paperfeed/cache/index.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(root)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, root, got, tt.want)
			}
		})
	}
}

func TestStatePath(t *testing.T) {
	root := "/test/repo"
	file := &Config{Backend: BackendFile}
	if got := file.StatePath(root); got != "/test/repo/.paperfeed/state.json" {
		t.Errorf("file StatePath = %q", got)
	}
	sq := &Config{Backend: BackendSQLite}
	if got := sq.StatePath(root); got != "/test/repo/.paperfeed/state.db" {
		t.Errorf("sqlite StatePath = %q", got)
	}
}

func TestIsRepository(t *testing.T) {
	tmpDir := t.TempDir()

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true for non-repo directory")
	}

	if err := os.Mkdir(filepath.Join(tmpDir, PaperfeedDir), 0755); err != nil {
		t.Fatalf("Failed to create .paperfeed: %v", err)
	}

	if !IsRepository(tmpDir) {
		t.Error("IsRepository() = false for repo directory")
	}
}

func TestIsRepository_FileNotDir(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, PaperfeedDir), []byte("not a dir"), 0644); err != nil {
		t.Fatalf("Failed to create .paperfeed file: %v", err)
	}

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true when .paperfeed is a file")
	}
}

func TestFindRepository(t *testing.T) {
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, "repo")
	nestedDir := filepath.Join(repoDir, "notes", "2024")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	if err := os.Mkdir(filepath.Join(repoDir, PaperfeedDir), 0755); err != nil {
		t.Fatalf("Failed to create .paperfeed: %v", err)
	}

	for _, start := range []string{repoDir, nestedDir} {
		got, err := FindRepository(start)
		if err != nil {
			t.Fatalf("FindRepository(%q) error = %v", start, err)
		}
		if got != repoDir {
			t.Errorf("FindRepository(%q) = %q, want %q", start, got, repoDir)
		}
	}
}

func TestFindRepository_NotFound(t *testing.T) {
	_, err := FindRepository(t.TempDir())
	if err == nil {
		t.Fatal("FindRepository() expected error")
	}
	if !strings.Contains(err.Error(), "not in a paperfeed repository") {
		t.Errorf("error = %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(PaperfeedPath(root), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Backend: BackendSQLite, DefaultWindow: "7", DefaultSort: "title_asc"}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(PaperfeedPath(root), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(root), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *Default() {
		t.Errorf("Load() = %+v, want defaults", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad json", `{`},
		{"bad backend", `{"backend":"postgres"}`},
		{"bad window", `{"default_window":"soon"}`},
		{"bad sort", `{"default_sort":"random"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if err := os.Mkdir(PaperfeedPath(root), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(ConfigPath(root), []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(root); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestSet(t *testing.T) {
	cfg := Default()
	if err := cfg.Set("backend", BackendSQLite); err != nil {
		t.Fatalf("Set(backend) error = %v", err)
	}
	if err := cfg.Set("default_window", "30"); err != nil {
		t.Fatalf("Set(default_window) error = %v", err)
	}
	if err := cfg.Set("default_sort", "date_asc"); err != nil {
		t.Fatalf("Set(default_sort) error = %v", err)
	}
	want := Config{Backend: BackendSQLite, DefaultWindow: "30", DefaultSort: "date_asc"}
	if *cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}

	if err := cfg.Set("backend", "redis"); err == nil {
		t.Error("Set(backend, redis) expected error")
	}
	if err := cfg.Set("color", "red"); err == nil {
		t.Error("Set(color) expected error")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~/feeds", filepath.Join(home, "feeds")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
