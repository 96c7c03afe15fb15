package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mmcdole/queuewatch/internal/adapter"
	"github.com/mmcdole/queuewatch/internal/config"
	"github.com/mmcdole/queuewatch/internal/log"
	"github.com/mmcdole/queuewatch/internal/service"
	"github.com/mmcdole/queuewatch/internal/store"
	"github.com/mmcdole/queuewatch/internal/tui"
	"github.com/mmcdole/queuewatch/internal/yacy"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	configPath string
	server     string
	once       bool
	match      string
	history    int
}

func main() {
	var opts options
	var showVersion bool
	flag.BoolVarP(&showVersion, "version", "v", false, "print version")
	flag.StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.config/queuewatch/config.yaml)")
	flag.StringVarP(&opts.server, "server", "s", "", "peer base URL, overrides server.url")
	flag.BoolVar(&opts.once, "once", false, "fetch once, print as text and exit")
	flag.StringVarP(&opts.match, "match", "m", "", "with --once, only print entries whose URL or initiator fuzzy-matches")
	flag.IntVar(&opts.history, "history", 0, "print the last N poll outcomes per poller and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("queuewatch %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load configuration
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.server != "" {
		cfg.Server.URL = opts.server
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	// Setup logger
	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting queuewatch", "version", Version, "server", cfg.Server.URL)

	journal := openJournal(cfg, logger)
	defer journal.Close()

	if opts.history > 0 {
		return printHistory(os.Stdout, journal, opts.history)
	}

	policy, err := cfg.StylePolicy()
	if err != nil {
		return err
	}

	client := yacy.NewClient(cfg.Server.URL, logger)
	session := service.NewSession(client, client, journal, sessionConfig(cfg), logger)

	if opts.once || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runOnce(os.Stdout, session, policy, opts.match)
	}

	launcher := adapter.NewLauncher(cfg.Browser.Command, cfg.Browser.Args, logger)
	links, err := service.NewLinkService(launcher, cfg.Server.URL, logger)
	if err != nil {
		return err
	}

	// Create TUI model
	model := tui.NewModel(session, links, cfg.Server.URL, policy)

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := session.Start(ctx, func(msg any) { p.Send(msg) }); err != nil {
		return err
	}
	defer session.Stop()

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// openJournal opens the on-disk poll journal, falling back to memory when
// the store cannot be opened
func openJournal(cfg *config.Config, logger *slog.Logger) *store.PollJournal {
	journal, err := store.NewPollJournal(cfg.Journal.Path, cfg.Server.URL, cfg.Journal.Retention)
	if err == nil {
		return journal
	}
	logger.Warn("poll journal unavailable, keeping outcomes in memory", "error", err)
	journal, _ = store.NewPollJournal("", cfg.Server.URL, cfg.Journal.Retention)
	return journal
}

func sessionConfig(cfg *config.Config) service.SessionConfig {
	return service.SessionConfig{
		StatusInterval: cfg.Poll.StatusInterval,
		QueueInterval:  cfg.Poll.QueueInterval,
		Timeout:        cfg.Poll.Timeout,
		InFlightGuard:  cfg.Poll.InFlightGuard,
		Immediate:      cfg.Poll.Immediate,
	}
}
