// Package progress turns per-unit conversion steps into periodic progress
// updates with an estimated completion time.
package progress

import (
	"time"

	"github.com/mmcdole/bitreel/internal/domain"
)

// ChunkUnits forces an update every 10 MiB of processed units
const ChunkUnits = 10 * 1024 * 1024

// decodeLineWidth is the assumed size of one text line: 8 digits + '\n'
const decodeLineWidth = 9

// EstimateLines approximates the number of tokens in a text file of the
// given size. It drifts when line widths or terminators vary.
func EstimateLines(size int64) float64 {
	return float64(size) / decodeLineWidth
}

// Option configures a Reporter
type Option func(*Reporter)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// Reporter tracks units processed against a total and emits an update when
// the percentage has grown by at least one point since the last emission,
// or when the processed count reaches a multiple of ChunkUnits.
type Reporter struct {
	direction domain.Direction
	total     float64
	estimated bool
	scale     float64 // percent per unit, 0 when total is 0

	processed int64
	last      float64
	start     time.Time

	now      func() time.Time
	observer domain.ProgressObserver
}

// NewReporter starts the clock for a job. A nil observer discards updates.
func NewReporter(direction domain.Direction, total float64, estimated bool, observer domain.ProgressObserver, opts ...Option) *Reporter {
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	r := &Reporter{
		direction: direction,
		total:     total,
		estimated: estimated,
		last:      -1,
		now:       time.Now,
		observer:  observer,
	}
	for _, opt := range opts {
		opt(r)
	}
	if total > 0 {
		r.scale = 100 / total
	}
	r.start = r.now()
	return r
}

// Step records one processed unit
func (r *Reporter) Step() {
	r.processed++
	pct := float64(r.processed) * r.scale
	if pct >= r.last+1 || r.processed%ChunkUnits == 0 {
		r.emit(pct, false)
	}
}

// Finish emits a final update flagged Done
func (r *Reporter) Finish() {
	r.emit(float64(r.processed)*r.scale, true)
}

// Processed returns the number of units recorded so far
func (r *Reporter) Processed() int64 { return r.processed }

func (r *Reporter) emit(pct float64, done bool) {
	u := domain.ProgressUpdate{
		Direction: r.direction,
		Processed: r.processed,
		Total:     r.total,
		Estimated: r.estimated,
		Percent:   pct,
		Done:      done,
	}

	now := r.now()
	elapsed := now.Sub(r.start).Seconds()
	if r.processed > 0 && elapsed > 0 {
		rate := float64(r.processed) / elapsed
		remaining := (r.total - float64(r.processed)) / rate
		u.ETA = now.Add(time.Duration(remaining * float64(time.Second)))
	}

	r.last = pct
	r.observer.OnProgress(u)
}
