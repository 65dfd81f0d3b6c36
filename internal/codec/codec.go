// Package codec converts between raw byte streams and binary text, one
// 8-digit line per byte. It works on io.Reader/io.Writer only; opening
// files, logging and presentation belong to callers.
package codec

import (
	"context"

	"github.com/mmcdole/bitreel/internal/domain"
)

const (
	// DefaultBufferSize is the read/write chunk size used when none is set
	DefaultBufferSize = 64 * 1024

	// DefaultPreviewLength caps how much of an invalid line a warning shows
	DefaultPreviewLength = 4 * 1024
)

// Meter is advanced once per processed unit
type Meter interface {
	Step()
}

type nopMeter struct{}

func (nopMeter) Step() {}

// Stats counts what a stream conversion did
type Stats struct {
	Units     int64 // lines written (encode) or bytes written (decode)
	Skipped   int64 // invalid tokens, decode only
	BytesRead int64
}

func meterOrNop(m Meter) Meter {
	if m == nil {
		return nopMeter{}
	}
	return m
}

func bufferSize(n int) int {
	if n <= 0 {
		return DefaultBufferSize
	}
	return n
}

func ioError(op string, err error) error {
	return domain.NewError(domain.KindIO, op, "", err)
}

// canceled returns a read error if ctx is done
func canceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ioError("read", ctx.Err())
	default:
		return nil
	}
}
