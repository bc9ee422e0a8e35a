package main

import (
	"fmt"
	"strings"

	"github.com/matsen/paperfeed/internal/config"
	"github.com/matsen/paperfeed/internal/storage"
	"github.com/matsen/paperfeed/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set repository configuration values",
	Long: `Get or set repository configuration values.

Usage:
  pf config                       # Show all config
  pf config default-window        # Get specific value
  pf config default-window 30     # Set value
  pf config backend sqlite        # Switch backend, moving the state over

Keys:
  backend         State backend (file, sqlite)
  default-window  Date window for list when --window is absent (days or "all")
  default-sort    Sort order for list (date_desc, date_asc, title_asc, title_desc)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	values := configValues(cfg)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("backend:        %s\n", cfg.Backend)
			fmt.Printf("default_window: %s\n", cfg.DefaultWindow)
			fmt.Printf("default_sort:   %s\n", cfg.DefaultSort)
		} else {
			outputJSON(cfg)
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		v, ok := values[key]
		if !ok {
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(v)
		} else {
			outputJSON(map[string]string{key: v})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	previous := *cfg
	if err := cfg.Set(key, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if cfg.Backend != previous.Backend {
		n, err := migrateBackend(repoRoot, &previous, cfg)
		if err != nil {
			exitWithError(ExitError, "moving state to %s backend: %v", cfg.Backend, err)
		}
		logger.Debug("state moved between backends")
		if humanOutput {
			fmt.Printf("Moved %d state keys to %s\n", n, cfg.StatePath(repoRoot))
		}
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}
	return nil
}

// configValues maps each key to its current value.
func configValues(cfg *config.Config) map[string]string {
	return map[string]string{
		"backend":        cfg.Backend,
		"default_window": cfg.DefaultWindow,
		"default_sort":   cfg.DefaultSort,
	}
}

// normalizeKey converts key formats (default-window, Default_Window) to
// the snake_case names used in config.json.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "-", "_")
}

// migrateBackend copies the persisted state from the old backend to the
// new one. The old file is left in place.
func migrateBackend(repoRoot string, from, to *config.Config) (int, error) {
	src, srcCloser, err := openKV(repoRoot, from)
	if err != nil {
		return 0, err
	}
	defer srcCloser.Close()

	dst, dstCloser, err := openKV(repoRoot, to)
	if err != nil {
		return 0, err
	}
	defer dstCloser.Close()

	return storage.Copy(dst, src, store.AllKeys)
}
