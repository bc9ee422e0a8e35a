// Package clipboard provides cross-platform clipboard access via shell commands.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when clipboard access is not available.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// command returns the clipboard writer argv for this system.
func command() ([]string, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := lookPath("pbcopy"); err == nil {
			return []string{"pbcopy"}, nil
		}
	case "linux", "freebsd", "openbsd":
		candidates := [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
		for _, c := range candidates {
			if _, err := lookPath(c[0]); err == nil {
				return c, nil
			}
		}
	case "windows":
		if _, err := lookPath("clip"); err == nil {
			return []string{"clip"}, nil
		}
	}
	return nil, ErrClipboardUnavailable
}

// IsAvailable checks if clipboard functionality is available on this system.
func IsAvailable() bool {
	_, err := command()
	return err == nil
}

// Copy copies the given text to the system clipboard.
// Returns ErrClipboardUnavailable if clipboard access is not available.
func Copy(text string) error {
	argv, err := command()
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrClipboardUnavailable, argv[0], err)
	}
	return nil
}

// copyFn is swapped in tests.
var copyFn = Copy

// CopyOrPrint copies text to the clipboard, or writes it to w for manual
// copying when no clipboard works. It reports whether the copy succeeded;
// only a failure to write to w is an error.
func CopyOrPrint(w io.Writer, text string) (bool, error) {
	if err := copyFn(text); err == nil {
		return true, nil
	}
	if _, err := io.WriteString(w, text); err != nil {
		return false, err
	}
	if !strings.HasSuffix(text, "\n") {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return false, err
		}
	}
	return false, nil
}
