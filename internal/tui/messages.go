package tui

import "github.com/mmcdole/bitreel/internal/domain"

// Message types for the TUI

// ProgressMsg carries a progress update from the running job
type ProgressMsg struct {
	Update domain.ProgressUpdate
}

// WarningMsg carries a skipped-token warning from the running job
type WarningMsg struct {
	Warning domain.TokenWarning
}

// JobDoneMsg signals that the job returned
type JobDoneMsg struct {
	Result domain.Result
	Err    error
}
