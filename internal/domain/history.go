package domain

import "time"

// JobRecord is a persisted summary of a finished job
type JobRecord struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
	Source    string    `json:"source"`
	Dest      string    `json:"dest"`
	Units     int64     `json:"units"`
	Skipped   int64     `json:"skipped"`
	BytesRead int64     `json:"bytes_read"`
	Started   time.Time `json:"started"`
	Finished  time.Time `json:"finished"`
	Error     string    `json:"error,omitempty"`
}

// Succeeded reports whether the job ended without a terminal error
func (r JobRecord) Succeeded() bool { return r.Error == "" }

// HistoryStore persists job records, newest first on read
type HistoryStore interface {
	Save(rec JobRecord) error
	Recent(limit int) ([]JobRecord, error)
	Clear() error
	Close() error
}
