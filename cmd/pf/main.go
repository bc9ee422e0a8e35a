// Package main provides the pf CLI entry point.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/paperfeed/internal/config"
	"github.com/matsen/paperfeed/internal/storage"
	"github.com/matsen/paperfeed/internal/store"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// verbose enables development logging on stderr
	verbose bool

	logger = zap.NewNop()
)

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors hides cobra's own errors (bad flags, missing args)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pf",
	Short: "Triage article feeds from the command line",
	Long: `pf ingests bibliographic records (feed JSON, RSS/Atom, BibTeX),
lets you filter, categorize, rate, annotate and favorite them, and exports
curated subsets as BibTeX or JSON.

State lives in a .paperfeed directory found by walking up from the current
directory (or PF_ROOT). All commands output JSON by default; use --human
for text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
}

func init() {
	// Load .env file if present (for PF_ROOT)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a repository.
// PF_ROOT wins over the working directory.
func getStartingDirectory() (string, int) {
	if root := os.Getenv(config.RootEnvVar); root != "" {
		return config.ExpandPath(root), 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository finds and validates the repository, exits on error.
// Falls back to the root in the global config.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err == nil {
		return repoRoot
	}
	if root, gerr := config.ValidateRoot(); gerr == nil {
		return root
	}

	fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
	os.Exit(ExitConfigError)
	return ""
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// openKV opens the state backend selected by the repository config.
func openKV(repoRoot string, cfg *config.Config) (storage.KV, io.Closer, error) {
	path := cfg.StatePath(repoRoot)
	switch cfg.Backend {
	case config.BackendSQLite:
		kv, err := storage.OpenSQLiteKV(path)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	default:
		kv, err := storage.OpenFileKV(path)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	}
}

// mustOpenStore opens the repository's store, exits on error.
// The caller is responsible for calling Close() on the returned closer.
func mustOpenStore(repoRoot string) (*store.Store, io.Closer) {
	cfg := mustLoadConfig(repoRoot)
	kv, closer, err := openKV(repoRoot, cfg)
	if err != nil {
		exitWithError(ExitDataError, "opening state: %v", err)
	}
	s, err := store.Open(kv, store.WithLogger(logger))
	if err != nil {
		closer.Close()
		exitWithError(ExitDataError, "loading state: %v", err)
	}
	return s, closer
}

// mustOpenIndex opens the search index, exits on error.
// The caller is responsible for calling Close() on the returned Index.
func mustOpenIndex(repoRoot string) *storage.Index {
	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	idx, err := storage.OpenIndex(config.IndexPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	return idx
}

// invalidateIndex drops the search index after the collection changed;
// search rebuilds it on demand.
func invalidateIndex(repoRoot string) {
	if err := os.Remove(config.IndexPath(repoRoot)); err != nil && !os.IsNotExist(err) {
		logger.Warn("removing stale search index", zap.Error(err))
	}
}

// mustSave exits when a store mutation failed to persist.
func mustSave(err error, what string) {
	if err != nil {
		exitWithError(exitCodeFor(err), "%s: %v", what, err)
	}
}
