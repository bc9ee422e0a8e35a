package main

import (
	"fmt"
	"os"

	"github.com/matsen/paperfeed/internal/config"
	"github.com/spf13/cobra"
)

var initBackend string

func init() {
	initCmd.Flags().StringVar(&initBackend, "backend", config.BackendFile, "State backend (file, sqlite)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new paperfeed repository",
	Long: `Initialize a new paperfeed repository in the current directory.

Creates:
  .paperfeed/
  ├── config.json     # Default config
  └── cache/          # Search index (disposable)

State (state.json or state.db) is created on first write.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a paperfeed repository")
	}

	cfg := config.Default()
	if err := config.ValidateBackend(initBackend); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	cfg.Backend = initBackend

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .paperfeed directory: %v", err)
	}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized paperfeed repository in %s (%s backend)\n", root, cfg.Backend)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
