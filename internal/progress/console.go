package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/mmcdole/bitreel/internal/domain"
)

// TimeLayout renders estimated end times like C's ctime()
const TimeLayout = time.ANSIC

// FormatLine renders an update as a console progress line
func FormatLine(u domain.ProgressUpdate) string {
	if u.HasETA() {
		return fmt.Sprintf("Progress: %.2f%% | Estimated End Time: %s", u.Percent, u.ETA.Format(TimeLayout))
	}
	return fmt.Sprintf("Progress: %.2f%%", u.Percent)
}

// Notice returns the reminder printed after a successful job
func Notice(dir domain.Direction) string {
	if dir == domain.DirectionDecode {
		return "Note: This file contains the raw binary data. It is likely NOT a playable video file."
	}
	return "Note: The output file contains the raw binary data of the source as text and is likely very large and not usable for standard video playback."
}

// Console prints the plain-text job transcript: a start line, progress
// lines, token warnings and a completion or failure line.
type Console struct {
	Out io.Writer
	Err io.Writer

	// Quiet suppresses progress lines but keeps start/finish output
	Quiet bool
}

// NewConsole creates a console transcript writer
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{Out: out, Err: errOut}
}

// Start prints the start line for a job
func (c *Console) Start(job domain.Job) {
	fmt.Fprintf(c.Out, "Starting conversion from %s to %s...\n", job.Source, job.Dest)
}

// OnProgress implements domain.ProgressObserver
func (c *Console) OnProgress(u domain.ProgressUpdate) {
	if c.Quiet || u.Done {
		return
	}
	fmt.Fprintln(c.Out, FormatLine(u))
}

// Warn prints a skipped-token warning
func (c *Console) Warn(w domain.TokenWarning) {
	fmt.Fprintf(c.Err, "Warning: Could not convert line to byte: %s\n", w.Content)
}

// Complete prints the success lines for a finished job
func (c *Console) Complete(res domain.Result) {
	job := res.Job
	fmt.Fprintf(c.Out, "\nSuccessfully converted %s to %s\n", job.Source, job.Dest)
	if res.Skipped > 0 {
		fmt.Fprintf(c.Out, "Skipped %d invalid line(s).\n", res.Skipped)
	}
	fmt.Fprintln(c.Out, Notice(job.Direction))
}
