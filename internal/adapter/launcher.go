// Package adapter connects the dashboard to the desktop: it opens links in
// a browser.
package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens URLs in the configured browser or the system default,
// the terminal counterpart of a link with target=_blank
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments placed before the URL
	logger  *slog.Logger

	// start runs a command without waiting for it; swapped in tests
	start func(name string, args ...string) error
}

// NewLauncher creates a launcher. An empty command uses the system default.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: strings.TrimSpace(command),
		args:    args,
		logger:  logger,
		start:   startCommand,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Launch opens url
func (l *Launcher) Launch(url string) error {
	if url == "" {
		return fmt.Errorf("no URL to open")
	}
	name, args := l.commandFor(url)
	l.logger.Info("opening link", "command", name, "url", url)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s with %s: %w", url, name, err)
	}
	return nil
}

// commandFor returns the command line that opens url
func (l *Launcher) commandFor(url string) (string, []string) {
	if l.command != "" {
		// Copy args to avoid modifying the configured slice
		args := make([]string, len(l.args), len(l.args)+1)
		copy(args, l.args)
		return l.command, append(args, url)
	}

	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
