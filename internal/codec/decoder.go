package codec

import (
	"bufio"
	"context"
	"io"

	"github.com/mmcdole/bitreel/internal/domain"
)

// cancelCheckLines is how many lines pass between context checks
const cancelCheckLines = 4096

// Decoder writes one byte per non-empty binary-text line
type Decoder struct {
	BufferSize int

	// PreviewLength caps the line content carried by a warning
	PreviewLength int

	// OnWarning is called for every line that is not a valid token.
	// The job continues; the line contributes no output byte.
	OnWarning domain.WarningFunc
}

// NewDecoder creates a decoder with the given chunk size (0 = default)
func NewDecoder(bufferSize int, onWarning domain.WarningFunc) *Decoder {
	return &Decoder{BufferSize: bufferSize, OnWarning: onWarning}
}

// Decode streams the text in r into bytes on w. Each line is stripped of
// surrounding whitespace; empty lines are ignored and invalid tokens are
// reported through OnWarning and skipped. Lines may be arbitrarily long.
// The meter is stepped once per byte written.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, w io.Writer, meter Meter) (stats Stats, err error) {
	meter = meterOrNop(meter)
	size := bufferSize(d.BufferSize)

	sc := newLineScanner(r, size, d.PreviewLength)
	bw := bufio.NewWriterSize(w, size)
	defer func() {
		stats.BytesRead = sc.bytesRead()
		// Partial output is kept on failure, so flush on every path.
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = ioError("write", ferr)
		}
	}()

	var lineNo int64
	for {
		if lineNo%cancelCheckLines == 0 {
			if err := canceled(ctx); err != nil {
				return stats, err
			}
		}

		line, ok, rerr := sc.next()
		if rerr != nil {
			return stats, ioError("read", rerr)
		}
		if !ok {
			return stats, nil
		}
		lineNo++

		if line.empty {
			continue
		}
		if line.err != nil {
			stats.Skipped++
			if d.OnWarning != nil {
				d.OnWarning(domain.TokenWarning{Line: lineNo, Content: line.content(), Err: line.err})
			}
			continue
		}

		if werr := bw.WriteByte(line.value); werr != nil {
			return stats, ioError("write", werr)
		}
		stats.Units++
		meter.Step()
	}
}

// CountTokens returns the number of valid tokens in r, which is the number
// of bytes Decode will write. It is the exact-total alternative to
// estimating from the file size.
func CountTokens(ctx context.Context, r io.Reader, size int) (int64, error) {
	sc := newLineScanner(r, bufferSize(size), DefaultPreviewLength)

	var lines, count int64
	for {
		if lines%cancelCheckLines == 0 {
			if err := canceled(ctx); err != nil {
				return count, err
			}
		}
		line, ok, err := sc.next()
		if err != nil {
			return count, ioError("read", err)
		}
		if !ok {
			return count, nil
		}
		lines++
		if !line.empty && line.err == nil {
			count++
		}
	}
}
