package commands

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/bitreel/internal/adapter"
	"github.com/mmcdole/bitreel/internal/domain"
	"github.com/mmcdole/bitreel/internal/progress"
	"github.com/mmcdole/bitreel/internal/service"
	"github.com/mmcdole/bitreel/internal/tui"
)

// encode <source> <dest>: bytes to binary text
func encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <source> <dest>",
		Short: "Write every byte of a file as an 8-digit binary line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runJob(cmd, domain.Job{Source: args[0], Dest: args[1], Direction: domain.DirectionEncode})
			return err
		},
	}
}

// decode <source> <dest>: binary text back to bytes
func decodeCmd() *cobra.Command {
	var play bool
	cmd := &cobra.Command{
		Use:   "decode <source> <dest>",
		Short: "Rebuild the original bytes from binary text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := domain.Job{Source: args[0], Dest: args[1], Direction: domain.DirectionDecode}
			if _, err := runJob(cmd, job); err != nil {
				return err
			}
			if play {
				return adapter.NewPlayer(appCtx.cfg.Player, appCtx.logger).Open(job.Dest)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&play, "play", false, "open the rebuilt file in a media player")
	return cmd
}

// runJob runs one conversion with the configured progress display
func runJob(cmd *cobra.Command, job domain.Job) (domain.Result, error) {
	cfg := appCtx.cfg
	svc := service.NewConvertService(service.ConvertOptions{
		BufferSize: cfg.Convert.BufferSize,
		ExactCount: cfg.Convert.ExactCount,
	}, appCtx.history, appCtx.logger)

	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	mode := resolveDisplay(cfg.Convert.Display, out)

	if mode == adapter.DisplayTUI {
		run := func(ctx context.Context, hooks service.Hooks) (domain.Result, error) {
			return svc.Run(ctx, job, hooks)
		}
		return tui.Run(ctx, job, run, tea.WithOutput(out), tea.WithInput(cmd.InOrStdin()))
	}

	console := progress.NewConsole(out, errOut)
	hooks := service.Hooks{Started: console.Start, Warning: console.Warn}
	switch mode {
	case adapter.DisplayBar:
		hooks.Progress = progress.NewBarObserver(errOut, string(job.Direction))
	case adapter.DisplayNone:
		console.Quiet = true
		hooks.Progress = console
	default:
		hooks.Progress = console
	}

	res, err := svc.Run(ctx, job, hooks)
	if err != nil {
		return res, err
	}
	console.Complete(res)
	return res, nil
}

// resolveDisplay picks tui on an interactive terminal and plain otherwise
func resolveDisplay(d adapter.Display, out io.Writer) adapter.Display {
	if d != adapter.DisplayAuto && d != "" {
		return d
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return adapter.DisplayTUI
	}
	return adapter.DisplayPlain
}
