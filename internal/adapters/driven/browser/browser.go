// Package browser provides driven.Navigator implementations.
package browser

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
)

// Ensure implementations satisfy the interface.
var (
	_ driven.Navigator = (*System)(nil)
	_ driven.Navigator = (*Printer)(nil)
)

// Launcher starts a process without waiting for it.
type Launcher func(name string, args ...string) error

// startCommand is the default Launcher.
func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// System opens URLs with the platform's default browser.
// Desktop launchers always open a new tab or window, which is the only
// browsing context the navigator port asks for.
type System struct {
	goos   string
	launch Launcher
}

// NewSystem creates a navigator for the current platform.
func NewSystem() *System {
	return &System{goos: runtime.GOOS, launch: startCommand}
}

// Open starts the platform launcher for rawURL.
// The placeholder and anything that is not an absolute http(s) URL are
// ignored without error.
func (s *System) Open(_ context.Context, rawURL string, _ domain.BrowsingContext) error {
	if !openable(rawURL) {
		return nil
	}

	name, args, err := launchCommand(s.goos, rawURL)
	if err != nil {
		return err
	}
	return s.launch(name, args...)
}

// launchCommand returns the command that opens rawURL on goos.
func launchCommand(goos, rawURL string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{rawURL}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// openable reports whether rawURL is worth handing to a launcher.
func openable(rawURL string) bool {
	if rawURL == "" || domain.IsPlaceholder(rawURL) {
		return false
	}
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Printer writes the URL instead of opening it, for headless hosts.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a navigator that prints to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Open writes rawURL and its target on one line.
func (p *Printer) Open(_ context.Context, rawURL string, target domain.BrowsingContext) error {
	_, err := fmt.Fprintf(p.w, "%s\t%s\n", rawURL, target)
	return err
}
