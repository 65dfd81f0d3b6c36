package codec

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/bitreel/internal/domain"
)

var tokenPattern = regexp.MustCompile(`^[01]{8}$`)

func TestFormatByte_AllValues(t *testing.T) {
	for v := 0; v < 256; v++ {
		got := FormatByte(byte(v))
		require.Regexp(t, tokenPattern, got)
		require.Equal(t, fmt.Sprintf("%08b", v), got)
	}
}

func TestAppendLine(t *testing.T) {
	var buf []byte
	buf = AppendLine(buf, 0)
	buf = AppendLine(buf, 255)
	buf = AppendLine(buf, 170)
	assert.Equal(t, "00000000\n11111111\n10101010\n", string(buf))
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    byte
		wantErr bool
	}{
		{name: "zero", in: "00000000", want: 0},
		{name: "max", in: "11111111", want: 255},
		{name: "pattern", in: "10101010", want: 170},
		{name: "short token", in: "101", want: 5},
		{name: "single digit", in: "1", want: 1},
		{name: "leading zeros beyond eight", in: "0000000000001", want: 1},
		{name: "out of range", in: "100000000", wantErr: true},
		{name: "bad digit", in: "1010102", wantErr: true},
		{name: "letters", in: "xyzxyzxy", wantErr: true},
		{name: "sign", in: "+1", wantErr: true},
		{name: "prefix", in: "0b101", wantErr: true},
		{name: "separator", in: "1_0", wantErr: true},
		{name: "inner space", in: "10 10", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken([]byte(tt.in))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseToken_InvertsFormat(t *testing.T) {
	for v := 0; v < 256; v++ {
		got, err := ParseToken([]byte(FormatByte(byte(v))))
		require.NoError(t, err)
		require.Equal(t, byte(v), got)
	}
}
