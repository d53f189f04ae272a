package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stefanclaw/infofetch/internal/channel"
	"github.com/stefanclaw/infofetch/internal/config"
	"github.com/stefanclaw/infofetch/internal/controller"
	"github.com/stefanclaw/infofetch/internal/info"
	"github.com/stefanclaw/infofetch/internal/onboard"
	"github.com/stefanclaw/infofetch/internal/search"
	"github.com/stefanclaw/infofetch/internal/tui"
)

var (
	dataFlag  string
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "infofetch",
	Short: "Keep short bits of info at hand and copy them by title",
	Long: `infofetch stores title/content notes such as e-mail addresses or account
numbers in a JSON file. Type a keyword and part of a title to fuzzy-search the
list, then press Enter to copy the content to the clipboard.

Run without a subcommand to open the terminal launcher, or use "serve" to let
another launcher drive infofetch over stdin/stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runLauncher,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "path of the info list (overrides store.path)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

// app holds the wired core shared by every command.
type app struct {
	cfg    config.Config
	store  *info.Store
	ctrl   *controller.Controller
	logger *slog.Logger
}

// newApp loads the config and wires store, search engine and controller.
// Logs go to logOut.
func newApp(logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", config.ConfigFile(), err)
	}
	if dataFlag != "" {
		cfg.Store.Path = dataFlag
	}

	logger := newLogger(logOut, cfg.Log.Level)

	filter, err := search.NewFilter(cfg.Search.Filter, cfg.Search.FzfPath)
	if err != nil {
		return nil, fmt.Errorf("search.filter: %w", err)
	}
	logger.Debug("search filter selected", "filter", fmt.Sprintf("%T", filter))

	store := info.NewStore(cfg.DataFile())
	ctrl := controller.New(controller.Options{
		Store:      store,
		Searcher:   search.NewEngine(filter, cfg.SearchTimeout(), logger),
		Keywords:   cfg.Keywords,
		MaxResults: cfg.Search.MaxResults,
		Logger:     logger,
	})
	logger.Debug("info list", "path", store.Path())

	return &app{cfg: cfg, store: store, ctrl: ctrl, logger: logger}, nil
}

// newLogger builds a text logger at the configured level; --debug wins.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if debugFlag {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// runChannel starts ch and stops it on SIGINT/SIGTERM.
func runChannel(ch channel.Channel, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("channel starting", "channel", ch.Name())
	err := ch.Start(ctx)
	if stopErr := ch.Stop(); stopErr != nil {
		logger.Warn("channel stop failed", "channel", ch.Name(), "err", stopErr)
	}
	logger.Debug("channel stopped", "channel", ch.Name())
	return err
}

func runLauncher(cmd *cobra.Command, args []string) error {
	if config.IsFirstRun() {
		if _, err := onboard.NewRunner().Run(); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}

	// The terminal belongs to the launcher, so logs go to a file.
	if err := os.MkdirAll(config.Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	logFile, err := os.OpenFile(config.LogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	a, err := newApp(logFile)
	if err != nil {
		return err
	}

	launcher := tui.NewLauncher(tui.Options{
		Controller: a.ctrl,
		DataFile:   a.store.Path(),
		Watch:      a.cfg.TUI.Watch,
		Version:    version,
		Logger:     a.logger,
	})
	return runChannel(launcher, a.logger)
}
