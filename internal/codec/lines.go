package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mmcdole/bitreel/internal/domain"
)

// tokenParser folds the digits of one line into a byte value as the line
// streams past. Surrounding ASCII whitespace is ignored; anything else
// that is not 0 or 1, or a value above 255, makes the token invalid.
type tokenParser struct {
	value  uint
	digits bool
	sep    byte // first whitespace after the digits, 0 while none
	err    error
}

func (p *tokenParser) feed(b []byte) {
	if p.err != nil {
		return
	}
	for _, c := range b {
		switch c {
		case '0', '1':
			if p.sep != 0 {
				p.err = fmt.Errorf("%w: unexpected character %q", domain.ErrInvalidToken, p.sep)
				return
			}
			p.value = p.value<<1 | uint(c-'0')
			p.digits = true
			if p.value > 0xFF {
				p.err = fmt.Errorf("%w: value exceeds 255", domain.ErrInvalidToken)
				return
			}
		case ' ', '\t', '\n', '\v', '\f', '\r':
			if p.digits && p.sep == 0 {
				p.sep = c
			}
		default:
			p.err = fmt.Errorf("%w: unexpected character %q", domain.ErrInvalidToken, c)
			return
		}
	}
}

// scannedLine is one parsed input line
type scannedLine struct {
	value   byte
	empty   bool  // only whitespace
	err     error // invalid token
	text    []byte
	clipped bool // text misses non-whitespace content past the preview
}

// content returns the stripped preview shown in warnings
func (l scannedLine) content() string {
	s := string(bytes.TrimSpace(l.text))
	if l.clipped {
		s += "..."
	}
	return s
}

// lineScanner reads '\n' terminated lines of any length and parses each
// while it streams, so memory stays bounded by the buffer and preview
// sizes. Only the first preview bytes of a line are kept.
type lineScanner struct {
	br      *bufio.Reader
	preview int
	text    []byte
	read    int64
}

func newLineScanner(r io.Reader, bufSize, preview int) *lineScanner {
	if preview <= 0 {
		preview = DefaultPreviewLength
	}
	return &lineScanner{br: bufio.NewReaderSize(r, bufSize), preview: preview}
}

// next parses the following line. The line's text is only valid until the
// next call. ok is false at end of input.
func (s *lineScanner) next() (line scannedLine, ok bool, err error) {
	var p tokenParser
	s.text = s.text[:0]
	seen := false

	for {
		frag, rerr := s.br.ReadSlice('\n')
		s.read += int64(len(frag))

		if len(frag) > 0 {
			seen = true
			p.feed(frag)

			room := s.preview - len(s.text)
			if room > len(frag) {
				room = len(frag)
			}
			s.text = append(s.text, frag[:room]...)
			if !line.clipped && len(bytes.TrimSpace(frag[room:])) > 0 {
				line.clipped = true
			}
		}

		if errors.Is(rerr, bufio.ErrBufferFull) {
			continue
		}
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return scannedLine{}, false, rerr
		}
		if !seen {
			return scannedLine{}, false, nil
		}

		line.value = byte(p.value)
		line.empty = !p.digits && p.err == nil
		line.err = p.err
		line.text = s.text
		return line, true, nil
	}
}

// bytesRead reports how many source bytes have been consumed
func (s *lineScanner) bytesRead() int64 { return s.read }
