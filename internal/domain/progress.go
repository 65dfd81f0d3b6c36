package domain

import "time"

// ProgressUpdate is one emitted progress line.
// Total is estimated (size/9) for decode unless an exact count was requested,
// so Percent may exceed 100 near the end of a decode.
type ProgressUpdate struct {
	Direction Direction
	Processed int64
	Total     float64
	Estimated bool
	Percent   float64
	ETA       time.Time // zero when throughput is not computable
	Done      bool
}

// HasETA reports whether an estimated completion time was computed
func (p ProgressUpdate) HasETA() bool { return !p.ETA.IsZero() }

// ProgressObserver receives progress updates during a conversion
type ProgressObserver interface {
	OnProgress(update ProgressUpdate)
}

// ProgressFunc adapts a function to ProgressObserver
type ProgressFunc func(update ProgressUpdate)

func (f ProgressFunc) OnProgress(update ProgressUpdate) { f(update) }

// NoOpObserver discards progress updates (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnProgress(ProgressUpdate) {}

// MultiObserver fans an update out to several observers
type MultiObserver []ProgressObserver

func (m MultiObserver) OnProgress(update ProgressUpdate) {
	for _, o := range m {
		if o != nil {
			o.OnProgress(update)
		}
	}
}
