package codec

import (
	"fmt"

	"github.com/mmcdole/bitreel/internal/domain"
)

// TokenWidth is the number of binary digits written per byte
const TokenWidth = 8

// lineTable holds the rendered line (8 digits + '\n') for every byte value
var lineTable [256][TokenWidth + 1]byte

func init() {
	for v := 0; v < 256; v++ {
		for bit := 0; bit < TokenWidth; bit++ {
			if v&(0x80>>bit) != 0 {
				lineTable[v][bit] = '1'
			} else {
				lineTable[v][bit] = '0'
			}
		}
		lineTable[v][TokenWidth] = '\n'
	}
}

// FormatByte renders b as 8 binary digits, most significant bit first
func FormatByte(b byte) string {
	return string(lineTable[b][:TokenWidth])
}

// AppendLine appends the token for b followed by '\n' to dst
func AppendLine(dst []byte, b byte) []byte {
	return append(dst, lineTable[b][:]...)
}

// ParseToken parses a stripped line as a base-2 byte value.
// Any number of digits is accepted as long as the value fits in [0,255];
// signs, prefixes and separators are rejected.
func ParseToken(tok []byte) (byte, error) {
	if len(tok) == 0 {
		return 0, fmt.Errorf("%w: empty token", domain.ErrInvalidToken)
	}

	var v uint
	for _, c := range tok {
		switch c {
		case '0':
			v <<= 1
		case '1':
			v = v<<1 | 1
		default:
			return 0, fmt.Errorf("%w: unexpected character %q", domain.ErrInvalidToken, c)
		}
		if v > 0xFF {
			return 0, fmt.Errorf("%w: value exceeds 255", domain.ErrInvalidToken)
		}
	}
	return byte(v), nil
}
