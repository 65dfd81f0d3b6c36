package service

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/bitreel/internal/domain"
	"github.com/mmcdole/bitreel/internal/progress"
	"github.com/mmcdole/bitreel/internal/store"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func newTestService(t *testing.T, opts ConvertOptions) (*ConvertService, *store.HistoryStore) {
	t.Helper()
	hist, err := store.NewHistoryStore("")
	require.NoError(t, err)
	return NewConvertService(opts, hist, nil), hist
}

type updates struct{ list []domain.ProgressUpdate }

func (u *updates) OnProgress(p domain.ProgressUpdate) { u.list = append(u.list, p) }

func TestEncode_WritesOneLinePerByte(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.bin", []byte{0x00, 0xFF, 0xAA})
	dst := filepath.Join(dir, "out.txt")
	svc, _ := newTestService(t, ConvertOptions{})

	var started []domain.Job
	res, err := svc.Encode(context.Background(), src, dst, Hooks{
		Started: func(job domain.Job) {
			assert.NoFileExists(t, dst)
			started = append(started, job)
		},
	})
	require.NoError(t, err)

	require.Len(t, started, 1)
	assert.Equal(t, src, started[0].Source)
	assert.Equal(t, "00000000\n11111111\n10101010\n", string(readFile(t, dst)))
	assert.Equal(t, int64(3), res.Units)
	assert.Equal(t, int64(3), res.BytesRead)
	assert.Zero(t, res.Skipped)
}

func TestDecode_ConcreteLines(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.txt", []byte("00000000\n11111111\n10101010\n"))
	dst := filepath.Join(dir, "out.bin")
	svc, _ := newTestService(t, ConvertOptions{})

	res, err := svc.Decode(context.Background(), src, dst, Hooks{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xFF, 0xAA}, readFile(t, dst))
	assert.Equal(t, int64(3), res.Units)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 1<<20)
	rand.New(rand.NewSource(7)).Read(data)
	src := writeFile(t, dir, "movie.mp4", data)
	text := filepath.Join(dir, "movie.txt")
	back := filepath.Join(dir, "movie.out")
	svc, _ := newTestService(t, ConvertOptions{BufferSize: 4096})

	_, err := svc.Encode(context.Background(), src, text, Hooks{})
	require.NoError(t, err)
	info, err := os.Stat(text)
	require.NoError(t, err)
	assert.Equal(t, int64(9*len(data)), info.Size())

	res, err := svc.Decode(context.Background(), text, back, Hooks{})
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	assert.True(t, bytes.Equal(data, readFile(t, back)))
}

func TestRun_SourceNotFound(t *testing.T) {
	for _, dir := range []domain.Direction{domain.DirectionEncode, domain.DirectionDecode} {
		t.Run(string(dir), func(t *testing.T) {
			tmp := t.TempDir()
			dst := filepath.Join(tmp, "out")
			svc, hist := newTestService(t, ConvertOptions{})

			started := 0
			_, err := svc.Run(context.Background(), domain.Job{
				Source:    filepath.Join(tmp, "missing.mp4"),
				Dest:      dst,
				Direction: dir,
			}, Hooks{Started: func(domain.Job) { started++ }})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
			assert.NoFileExists(t, dst)
			assert.Zero(t, started)

			recs, err := hist.Recent(0)
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.False(t, recs[0].Succeeded())
		})
	}
}

func TestRun_NotFoundSuggestsSimilarFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "holiday.mp4", []byte{1})
	svc, _ := newTestService(t, ConvertOptions{})

	_, err := svc.Encode(context.Background(), filepath.Join(dir, "holliday.mp4"), filepath.Join(dir, "out.txt"), Hooks{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean "+filepath.Join(dir, "holiday.mp4"))
}

func TestDecode_SkipsInvalidLines(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.txt", []byte("00000001\nhello\n00000010\n100000000\n"))
	dst := filepath.Join(dir, "out.bin")
	svc, hist := newTestService(t, ConvertOptions{})

	var warnings []domain.TokenWarning
	res, err := svc.Decode(context.Background(), src, dst, Hooks{
		Warning: func(w domain.TokenWarning) { warnings = append(warnings, w) },
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{0x01, 0x02}, readFile(t, dst))
	assert.Equal(t, int64(2), res.Skipped)
	require.Len(t, warnings, 2)
	assert.Equal(t, "hello", warnings[0].Content)
	assert.ErrorIs(t, warnings[1].Err, domain.ErrInvalidToken)

	recs, err := hist.Recent(1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Succeeded())
	assert.Equal(t, int64(2), recs[0].Skipped)
}

func TestEncode_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "empty.bin", nil)
	dst := filepath.Join(dir, "out.txt")
	svc, _ := newTestService(t, ConvertOptions{})
	ups := &updates{}

	res, err := svc.Encode(context.Background(), src, dst, Hooks{Progress: ups})
	require.NoError(t, err)

	assert.Zero(t, res.Units)
	assert.Empty(t, readFile(t, dst))
	require.Len(t, ups.list, 1)
	assert.True(t, ups.list[0].Done)
}

func TestEncode_ProgressLines(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.bin", bytes.Repeat([]byte{0x5A}, 100))
	dst := filepath.Join(dir, "out.txt")
	svc, _ := newTestService(t, ConvertOptions{})

	var out bytes.Buffer
	console := progress.NewConsole(&out, &out)
	ups := &updates{}
	_, err := svc.Encode(context.Background(), src, dst, Hooks{
		Progress: domain.MultiObserver{console, ups},
	})
	require.NoError(t, err)

	line := regexp.MustCompile(`^Progress: \d+\.\d{2}%( \| Estimated End Time: \w{3} \w{3} [ \d]\d \d{2}:\d{2}:\d{2} \d{4})?$`)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 100)
	for _, l := range lines {
		assert.Regexp(t, line, l)
	}
	for i := 1; i < len(ups.list); i++ {
		assert.GreaterOrEqual(t, ups.list[i].Percent, ups.list[i-1].Percent)
	}
	assert.True(t, ups.list[len(ups.list)-1].Done)
}

func TestDecode_ExactCount(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.txt", []byte("1\n10\n\n11\n"))
	dst := filepath.Join(dir, "out.bin")
	svc, _ := newTestService(t, ConvertOptions{ExactCount: true})
	ups := &updates{}

	_, err := svc.Decode(context.Background(), src, dst, Hooks{Progress: ups})
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 2, 3}, readFile(t, dst))
	last := ups.list[len(ups.list)-1]
	assert.False(t, last.Estimated)
	assert.Equal(t, 3.0, last.Total)
	assert.InDelta(t, 100.0, last.Percent, 1e-9)
}

func TestDecode_ExactCountSkipsInvalidLines(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.txt", []byte("1\nbad\n11\n100000000\n"))
	dst := filepath.Join(dir, "out.bin")
	svc, _ := newTestService(t, ConvertOptions{ExactCount: true})
	ups := &updates{}

	res, err := svc.Decode(context.Background(), src, dst, Hooks{Progress: ups})
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.Skipped)
	last := ups.list[len(ups.list)-1]
	assert.Equal(t, 2.0, last.Total)
	assert.InDelta(t, 100.0, last.Percent, 1e-9)
}

func TestDecode_EstimatedTotal(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.txt", []byte("1\n1\n1\n"))
	dst := filepath.Join(dir, "out.bin")
	svc, _ := newTestService(t, ConvertOptions{})
	ups := &updates{}

	_, err := svc.Decode(context.Background(), src, dst, Hooks{Progress: ups})
	require.NoError(t, err)

	last := ups.list[len(ups.list)-1]
	assert.True(t, last.Estimated)
	assert.Greater(t, last.Percent, 100.0)
}

func TestRun_RefusesToOverwriteSource(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.bin", []byte{1, 2, 3})
	svc, _ := newTestService(t, ConvertOptions{})

	_, err := svc.Encode(context.Background(), src, src, Hooks{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.Equal(t, []byte{1, 2, 3}, readFile(t, src))
}

func TestRun_DestinationDirectoryMissing(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.bin", []byte{1})
	dst := filepath.Join(dir, "nope", "out.txt")
	svc, _ := newTestService(t, ConvertOptions{})

	_, err := svc.Encode(context.Background(), src, dst, Hooks{})
	require.Error(t, err)
	assert.Equal(t, domain.KindIO, domain.KindOf(err))

	var ce *domain.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, dst, ce.Path)
}

func TestRun_SourceIsDirectory(t *testing.T) {
	dir := t.TempDir()
	svc, _ := newTestService(t, ConvertOptions{})

	_, err := svc.Decode(context.Background(), dir, filepath.Join(dir, "out.bin"), Hooks{})
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestRun_Canceled(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.bin", []byte{1, 2, 3})
	dst := filepath.Join(dir, "out.txt")
	svc, _ := newTestService(t, ConvertOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Encode(ctx, src, dst, Hooks{})

	assert.ErrorIs(t, err, context.Canceled)
	var ce *domain.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, src, ce.Path)
}

func TestRun_UnknownDirection(t *testing.T) {
	svc, _ := newTestService(t, ConvertOptions{})
	_, err := svc.Run(context.Background(), domain.Job{Direction: "sideways"}, Hooks{})
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestRun_RecordsTimestamps(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.bin", []byte{1})
	svc, hist := newTestService(t, ConvertOptions{})

	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	res, err := svc.Encode(context.Background(), src, filepath.Join(dir, "out.txt"), Hooks{})
	require.NoError(t, err)
	assert.True(t, res.Elapsed() > 0)

	recs, err := hist.Recent(0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.NotEmpty(t, recs[0].ID)
	assert.Equal(t, res.Started, recs[0].Started)
	assert.Equal(t, res.Finished, recs[0].Finished)
}

func TestPackageLevelHelpers(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.bin", []byte("hi"))
	text := filepath.Join(dir, "in.txt")
	back := filepath.Join(dir, "in.out")

	require.NoError(t, Encode(src, text))
	require.NoError(t, Decode(text, back))
	assert.Equal(t, "hi", string(readFile(t, back)))

	assert.ErrorIs(t, Encode(filepath.Join(dir, "nope"), text), domain.ErrNotFound)
}
