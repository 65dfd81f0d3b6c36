package progress

import (
	"io"
	"math"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mmcdole/bitreel/internal/domain"
)

// BarObserver draws updates on a terminal progress bar. The bar is
// created on the first update, once the job total is known.
type BarObserver struct {
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// NewBarObserver creates a bar observer writing to w
func NewBarObserver(w io.Writer, description string) *BarObserver {
	return &BarObserver{w: w, description: description}
}

func (b *BarObserver) init(total float64) {
	limit := int64(math.Ceil(total))
	if limit <= 0 {
		limit = -1 // indeterminate spinner
	}
	b.bar = progressbar.NewOptions64(limit,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(b.w, "\n") }),
	)
}

// OnProgress implements domain.ProgressObserver
func (b *BarObserver) OnProgress(u domain.ProgressUpdate) {
	if b.bar == nil {
		b.init(u.Total)
	}
	// Decode totals are estimates; grow the bar instead of erroring.
	if limit := b.bar.GetMax64(); limit > 0 && u.Processed > limit {
		b.bar.ChangeMax64(u.Processed)
	}
	_ = b.bar.Set64(u.Processed)
	if u.Done {
		_ = b.bar.Finish()
	}
}
