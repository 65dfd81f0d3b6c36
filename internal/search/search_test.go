package search

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/bitreel/internal/domain"
)

func TestFilterHistory(t *testing.T) {
	records := []domain.JobRecord{
		{Direction: domain.DirectionEncode, Source: "Holiday.MP4", Dest: "holiday.txt"},
		{Direction: domain.DirectionDecode, Source: "notes.txt", Dest: "notes.bin"},
	}

	t.Run("empty query keeps order", func(t *testing.T) {
		got := FilterHistory("  ", records)
		require.Len(t, got, 2)
		assert.Equal(t, "notes.txt", got[1].Record.Source)
		assert.Equal(t, "decode notes.txt -> notes.bin", got[1].Haystack)
		assert.Empty(t, got[0].MatchedIndexes)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := FilterHistory("HOLIDAY", records)
		require.Len(t, got, 1)
		assert.Equal(t, "Holiday.MP4", got[0].Record.Source)
		assert.NotEmpty(t, got[0].MatchedIndexes)
	})

	t.Run("direction", func(t *testing.T) {
		got := FilterHistory("decode", records)
		require.NotEmpty(t, got)
		assert.Equal(t, domain.DirectionDecode, got[0].Record.Direction)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FilterHistory("xyzzy", records))
	})
}

func TestSuggestFrom(t *testing.T) {
	names := []string{"holiday.mp4", "holiday.txt", "concert.mov", "a.b"}

	t.Run("typo", func(t *testing.T) {
		got := SuggestFrom("holliday.mp4", names, "videos")
		require.NotEmpty(t, got)
		assert.Equal(t, filepath.Join("videos", "holiday.mp4"), got[0])
	})

	t.Run("subsequence", func(t *testing.T) {
		got := SuggestFrom("concert", names, ".")
		assert.Equal(t, []string{"concert.mov"}, got)
	})

	t.Run("short names need an exact subsequence", func(t *testing.T) {
		assert.Empty(t, SuggestFrom("x.b", names, "."))
	})

	t.Run("bounded", func(t *testing.T) {
		many := []string{"clip1.mp4", "clip2.mp4", "clip3.mp4", "clip4.mp4"}
		got := SuggestFrom("clip", many, "d")
		assert.Len(t, got, maxSuggestions)
		assert.Equal(t, filepath.Join("d", "clip1.mp4"), got[0])
	})
}

func TestSuggest_ReadsDirectory(t *testing.T) {
	assert.Nil(t, Suggest(filepath.Join(t.TempDir(), "missing", "file.mp4")))
}
