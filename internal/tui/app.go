// Package tui renders a running conversion job as a Bubble Tea progress
// screen. The job itself runs on its own goroutine; the model only
// consumes the updates it emits.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/bitreel/internal/domain"
	"github.com/mmcdole/bitreel/internal/service"
	"github.com/mmcdole/bitreel/internal/tui/styles"
)

// Layout bounds for the progress bar
const (
	MinBarWidth = 10
	MaxBarWidth = 60
	barPadding  = 8
)

// Model is the Bubble Tea model for one conversion job
type Model struct {
	Job domain.Job

	keys    KeyMap
	bar     progress.Model
	spinner spinner.Model

	ctx    context.Context
	cancel context.CancelFunc
	run    RunFunc
	ch     *jobChannels

	// Job state
	last      domain.ProgressUpdate
	warnings  int64
	lastWarn  string
	canceling bool
	done      bool
	result    domain.Result
	err       error
	notice    domain.Notification
}

// NewModel creates the model; the job starts when the program runs
func NewModel(ctx context.Context, job domain.Job, run RunFunc) Model {
	ctx, cancel := context.WithCancel(ctx)
	return Model{
		Job:  job,
		keys: DefaultKeyMap(),
		bar: progress.New(
			progress.WithGradient(styles.ProgressStart, styles.ProgressEnd),
			progress.WithWidth(40),
		),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		ctx:    ctx,
		cancel: cancel,
		run:    run,
		ch:     newJobChannels(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, startJobCmd(m.ctx, m.run, m.ch))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(MinBarWidth, min(MaxBarWidth, msg.Width-barPadding))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Cancel) && !m.done {
			m.canceling = true
			m.cancel()
		}
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		// Updates can be dropped but never reordered; keep the newest.
		if msg.Update.Processed >= m.last.Processed {
			m.last = msg.Update
		}
		return m, listenJobCmd(m.ch)

	case WarningMsg:
		m.warnings++
		m.lastWarn = msg.Warning.Content
		return m, listenJobCmd(m.ch)

	case JobDoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		m.warnings = msg.Result.Skipped
		m.notice = service.Notify(msg.Result, msg.Err)
		m.cancel()
		return m, tea.Quit
	}

	return m, nil
}

// Result returns the job outcome once the program has exited
func (m Model) Result() (domain.Result, error) {
	return m.result, m.err
}

// Done reports whether the job has returned
func (m Model) Done() bool { return m.done }

// Run shows the progress screen until the job finishes or is cancelled
// and returns the job's own result.
func Run(ctx context.Context, job domain.Job, run RunFunc, opts ...tea.ProgramOption) (domain.Result, error) {
	m := NewModel(ctx, job, run)
	final, err := tea.NewProgram(m, opts...).Run()

	if fm, ok := final.(Model); ok && fm.done {
		return fm.Result()
	}

	// The program stopped before the job reported back
	m.cancel()
	if m.ch.started.Load() {
		d := <-m.ch.done
		if err == nil {
			return d.Result, d.Err
		}
		return d.Result, errors.Join(d.Err, fmt.Errorf("TUI error: %w", err))
	}
	if err == nil {
		err = errors.New("program exited before the job started")
	}
	return domain.Result{Job: job}, fmt.Errorf("TUI error: %w", err)
}
