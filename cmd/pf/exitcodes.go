package main

import (
	"errors"

	"github.com/matsen/paperfeed/internal/importer"
	"github.com/matsen/paperfeed/internal/store"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing repository, invalid config)
	ExitDataError   = 3 // Data error (malformed input, unknown item, validation failure)
)

// exitCodeFor maps domain errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidSnapshot),
		errors.Is(err, store.ErrUnknownItem),
		errors.Is(err, store.ErrUnknownCategory),
		errors.Is(err, store.ErrUnsortedCategory),
		errors.Is(err, store.ErrInvalidRating),
		errors.Is(err, importer.ErrNoEntries):
		return ExitDataError
	}
	return ExitError
}
