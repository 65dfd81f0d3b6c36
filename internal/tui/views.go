package tui

import (
	"fmt"
	"strings"

	"github.com/mmcdole/bitreel/internal/domain"
	"github.com/mmcdole/bitreel/internal/progress"
	"github.com/mmcdole/bitreel/internal/tui/styles"
)

// pathWidth bounds how much of each path the header shows
const pathWidth = 56

func (m Model) View() string {
	if m.done {
		return m.renderNotice()
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("bitreel " + string(m.Job.Direction)))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(m.Job.Source, pathWidth)))
	b.WriteString(styles.DimStyle.Render(" → "))
	b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(m.Job.Dest, pathWidth)))
	b.WriteString("\n\n")

	pct := m.last.Percent / 100
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.bar.ViewAs(min(max(pct, 0), 1)))
	b.WriteString(" ")
	b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("%.2f%%", m.last.Percent)))
	b.WriteString("\n")

	b.WriteString(styles.DimStyle.Render(m.unitsLine()))
	b.WriteString("\n")
	if m.last.HasETA() {
		b.WriteString(styles.DimStyle.Render("Estimated End Time: " + m.last.ETA.Format(progress.TimeLayout)))
		b.WriteString("\n")
	}

	if m.warnings > 0 {
		b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("%d invalid line(s) skipped, last: %q", m.warnings, m.lastWarn)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.canceling {
		b.WriteString(styles.WarningStyle.Render("Cancelling..."))
	} else {
		b.WriteString(styles.HelpKeyStyle.Render(m.keys.Cancel.Help().Key))
		b.WriteString(" ")
		b.WriteString(styles.HelpDescStyle.Render(m.keys.Cancel.Help().Desc))
	}
	b.WriteString("\n")

	return styles.PanelStyle.Render(b.String())
}

// unitsLine describes processed against total units
func (m Model) unitsLine() string {
	unit := "bytes"
	if m.Job.Direction == domain.DirectionDecode {
		unit = "lines"
	}
	if m.last.Estimated {
		return fmt.Sprintf("%d of ~%.0f %s", m.last.Processed, m.last.Total, unit)
	}
	return fmt.Sprintf("%d of %.0f %s", m.last.Processed, m.last.Total, unit)
}

func (m Model) renderNotice() string {
	title := styles.SuccessStyle.Render(m.notice.Title)
	panel := styles.SuccessPanelStyle
	if !m.notice.OK() {
		title = styles.ErrorStyle.Render(m.notice.Title)
		panel = styles.FailurePanelStyle
	}
	return panel.Render(title+"\n\n"+m.notice.Message) + "\n"
}
