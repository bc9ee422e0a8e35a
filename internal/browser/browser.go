// Package browser opens item links in the system web browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// start launches argv without waiting; swapped in tests.
var start = func(argv []string) error {
	return exec.Command(argv[0], argv[1:]...).Start()
}

// command returns the opener argv for rawURL on goos.
func command(goos, rawURL string) []string {
	switch goos {
	case "darwin":
		return []string{"open", rawURL}
	case "windows":
		// rundll32 avoids cmd's shell parsing of the URL
		return []string{"rundll32", "url.dll,FileProtocolHandler", rawURL}
	default:
		return []string{"xdg-open", rawURL}
	}
}

// Validate accepts only absolute http and https URLs.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", rawURL)
	}
	return nil
}

// Open validates rawURL and hands it to the platform opener.
func Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	argv := command(runtime.GOOS, rawURL)
	if err := start(argv); err != nil {
		return fmt.Errorf("running %s: %w", argv[0], err)
	}
	return nil
}
