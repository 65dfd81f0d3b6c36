package tui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/bitreel/internal/domain"
	"github.com/mmcdole/bitreel/internal/service"
)

// RunFunc executes the job with the given hooks
type RunFunc func(ctx context.Context, hooks service.Hooks) (domain.Result, error)

// jobChannels connects the job goroutine to the UI
type jobChannels struct {
	progress chan domain.ProgressUpdate
	warnings chan domain.TokenWarning
	done     chan JobDoneMsg
	started  atomic.Bool
}

func newJobChannels() *jobChannels {
	return &jobChannels{
		progress: make(chan domain.ProgressUpdate, 16),
		warnings: make(chan domain.TokenWarning, 16),
		done:     make(chan JobDoneMsg, 1),
	}
}

// startJobCmd launches the job and returns its first event
func startJobCmd(ctx context.Context, run RunFunc, ch *jobChannels) tea.Cmd {
	return func() tea.Msg {
		ch.started.Store(true)
		go func() {
			res, err := run(ctx, service.Hooks{
				Progress: NewChannelObserver(ch.progress),
				Warning:  channelWarnings(ch.warnings),
			})
			ch.done <- JobDoneMsg{Result: res, Err: err}
		}()
		return readJobEvent(ch)
	}
}

// listenJobCmd returns a command that reads the next job event
func listenJobCmd(ch *jobChannels) tea.Cmd {
	return func() tea.Msg {
		return readJobEvent(ch)
	}
}

// readJobEvent blocks until the job reports something. Pending progress
// is drained before the done event so the final percentage is shown.
func readJobEvent(ch *jobChannels) tea.Msg {
	select {
	case u := <-ch.progress:
		return ProgressMsg{Update: u}
	case w := <-ch.warnings:
		return WarningMsg{Warning: w}
	default:
	}

	select {
	case u := <-ch.progress:
		return ProgressMsg{Update: u}
	case w := <-ch.warnings:
		return WarningMsg{Warning: w}
	case d := <-ch.done:
		return d
	}
}
