package domain

import "time"

// Direction selects which way a job converts
type Direction string

const (
	// DirectionEncode turns raw bytes into binary text
	DirectionEncode Direction = "encode"
	// DirectionDecode turns binary text back into raw bytes
	DirectionDecode Direction = "decode"
)

// Job is a single conversion request. It holds no state once the call returns.
type Job struct {
	Source    string
	Dest      string
	Direction Direction
}

// Result summarizes a finished (or aborted) job
type Result struct {
	Job       Job
	Units     int64 // lines written (encode) or bytes written (decode)
	Skipped   int64 // invalid tokens skipped, decode only
	BytesRead int64
	Started   time.Time
	Finished  time.Time
}

// Elapsed returns the wall time the job took
func (r Result) Elapsed() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// TokenWarning describes a decode line that produced no byte
type TokenWarning struct {
	Line    int64  // 1-based line number in the source
	Content string // stripped line content, possibly truncated
	Err     error
}

// WarningFunc receives recoverable per-line failures
type WarningFunc func(w TokenWarning)

// NoticeKind distinguishes success from failure notifications
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeFailure
)

// Notification is what a presentation layer shows once a job ends
type Notification struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// OK reports whether the notification signals success
func (n Notification) OK() bool { return n.Kind == NoticeSuccess }
