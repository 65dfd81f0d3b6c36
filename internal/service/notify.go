package service

import (
	"fmt"

	"github.com/mmcdole/bitreel/internal/domain"
	"github.com/mmcdole/bitreel/internal/progress"
)

// Notify maps a job outcome to the message a UI shows when it ends
func Notify(res domain.Result, err error) domain.Notification {
	if err != nil {
		msg := fmt.Sprintf("An error occurred: %v", err)
		if domain.KindOf(err) == domain.KindNotFound {
			msg = fmt.Sprintf("Source file not found at %s", res.Job.Source)
		}
		return domain.Notification{Kind: domain.NoticeFailure, Title: "Conversion Error", Message: msg}
	}

	msg := "File successfully converted to binary text."
	if res.Job.Direction == domain.DirectionDecode {
		msg = "Binary text successfully converted to file."
		if res.Skipped > 0 {
			msg += fmt.Sprintf(" %d invalid line(s) were skipped.", res.Skipped)
		}
	}
	return domain.Notification{
		Kind:    domain.NoticeSuccess,
		Title:   "Conversion Complete",
		Message: msg + "\n" + progress.Notice(res.Job.Direction),
	}
}
