package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mmcdole/bitreel/internal/adapter"
	"github.com/mmcdole/bitreel/internal/store"
)

var (
	cfgFile    string
	display    string
	exactCount bool
	bufferSize int
	noHistory  bool

	appCtx *appContext
)

// appContext holds the dependencies shared by subcommands
type appContext struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	history *store.HistoryStore
	closers []func() error
}

func (a *appContext) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

// Execute runs the CLI; an interrupt cancels the running job
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, version, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// execute runs the command tree with explicit arguments and streams and
// releases shared resources afterwards, whatever the outcome.
func execute(ctx context.Context, version string, args []string, in io.Reader, out, errOut io.Writer) error {
	root := newRootCmd(version)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if appCtx != nil {
		appCtx.close()
		appCtx = nil
	}
	return err
}

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "bitreel",
		Short:         "Convert files to and from 8-bit binary text",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/bitreel/config.yaml)")
	root.PersistentFlags().StringVar(&display, "display", "", "progress display: auto, tui, bar, plain or none")
	root.PersistentFlags().BoolVar(&exactCount, "exact-count", false, "decode: count lines first instead of estimating the total")
	root.PersistentFlags().IntVar(&bufferSize, "buffer-size", 0, "read/write chunk size in bytes")
	root.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record or read job history on disk")

	root.AddCommand(encodeCmd(), decodeCmd(), historyCmd(), configCmd())
	return root
}

// annotationNewConfig marks commands that may run before --config exists
const annotationNewConfig = "bitreel/new-config"

// setup loads configuration, applies flag overrides and opens shared resources
func setup(cmd *cobra.Command) error {
	path := cfgFile
	if cmd.Annotations[annotationNewConfig] == "true" && path != "" {
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}

	cfg, err := adapter.LoadConfig(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("display") {
		cfg.Convert.Display = adapter.Display(display)
	}
	if flags.Changed("exact-count") {
		cfg.Convert.ExactCount = exactCount
	}
	if flags.Changed("buffer-size") {
		cfg.Convert.BufferSize = bufferSize
	}
	if noHistory {
		cfg.History.Path = ""
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := &appContext{cfg: cfg}

	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		ctx.closers = append(ctx.closers, closeLog)
	}
	slog.SetDefault(logger)
	ctx.logger = logger

	history, err := store.NewHistoryStore(cfg.History.Path)
	if err != nil {
		logger.Warn("job history unavailable, keeping it in memory", "path", cfg.History.Path, "error", err)
		history, _ = store.NewHistoryStore("")
	}
	ctx.history = history
	ctx.closers = append(ctx.closers, history.Close)

	appCtx = ctx
	return nil
}
