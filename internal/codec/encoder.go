package codec

import (
	"context"
	"errors"
	"io"
)

// Encoder writes one binary-text line per input byte
type Encoder struct {
	// BufferSize is the number of source bytes handled per chunk
	BufferSize int
}

// NewEncoder creates an encoder with the given chunk size (0 = default)
func NewEncoder(bufferSize int) *Encoder {
	return &Encoder{BufferSize: bufferSize}
}

// Encode streams r into w. The meter is stepped once per byte.
// Every byte value maps to a valid line, so the only failures are I/O
// errors and cancellation.
func (e *Encoder) Encode(ctx context.Context, r io.Reader, w io.Writer, meter Meter) (Stats, error) {
	meter = meterOrNop(meter)
	size := bufferSize(e.BufferSize)

	var stats Stats
	in := make([]byte, size)
	out := make([]byte, 0, size*(TokenWidth+1))

	for {
		if err := canceled(ctx); err != nil {
			return stats, err
		}

		n, rerr := r.Read(in)
		if n > 0 {
			stats.BytesRead += int64(n)
			out = out[:0]
			for _, b := range in[:n] {
				out = AppendLine(out, b)
				meter.Step()
			}
			if _, err := w.Write(out); err != nil {
				return stats, ioError("write", err)
			}
			stats.Units += int64(n)
		}

		if errors.Is(rerr, io.EOF) {
			return stats, nil
		}
		if rerr != nil {
			return stats, ioError("read", rerr)
		}
	}
}
