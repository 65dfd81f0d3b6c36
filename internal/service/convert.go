package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/bitreel/internal/codec"
	"github.com/mmcdole/bitreel/internal/domain"
	"github.com/mmcdole/bitreel/internal/progress"
	"github.com/mmcdole/bitreel/internal/search"
)

// ConvertOptions tunes the codec for every job run by a service
type ConvertOptions struct {
	BufferSize int  // read/write chunk size, 0 = codec default
	ExactCount bool // decode: pre-count lines instead of estimating size/9
}

// Hooks receive the observable side effects of one job
type Hooks struct {
	// Started is called once the source is known to exist, before any
	// output is created
	Started  func(job domain.Job)
	Progress domain.ProgressObserver
	Warning  domain.WarningFunc
}

// ConvertService runs encode and decode jobs over file paths.
// Jobs run synchronously on the calling goroutine.
type ConvertService struct {
	opts    ConvertOptions
	history domain.HistoryStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewConvertService creates a conversion service. history may be nil.
func NewConvertService(opts ConvertOptions, history domain.HistoryStore, logger *slog.Logger) *ConvertService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConvertService{
		opts:    opts,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the wall clock used for timestamps and estimates
func (s *ConvertService) WithClock(now func() time.Time) *ConvertService {
	s.now = now
	return s
}

// Encode writes one 8-digit binary line per byte of source into dest
func (s *ConvertService) Encode(ctx context.Context, source, dest string, hooks Hooks) (domain.Result, error) {
	return s.Run(ctx, domain.Job{Source: source, Dest: dest, Direction: domain.DirectionEncode}, hooks)
}

// Decode writes one byte per valid binary line of source into dest
func (s *ConvertService) Decode(ctx context.Context, source, dest string, hooks Hooks) (domain.Result, error) {
	return s.Run(ctx, domain.Job{Source: source, Dest: dest, Direction: domain.DirectionDecode}, hooks)
}

// Run executes a job to completion. NotFound and IO failures abort the job
// and are returned as *domain.ConversionError; a partially written
// destination is left in place. Invalid tokens only reach hooks.Warning.
func (s *ConvertService) Run(ctx context.Context, job domain.Job, hooks Hooks) (res domain.Result, err error) {
	res = domain.Result{Job: job, Started: s.now()}
	log := s.logger.With("direction", job.Direction, "source", job.Source, "dest", job.Dest)
	log.Info("starting conversion")

	defer func() {
		res.Finished = s.now()
		if err != nil {
			log.Error("conversion failed", "error", err)
		} else {
			log.Info("conversion complete",
				"units", res.Units,
				"skipped", res.Skipped,
				"elapsed", res.Elapsed(),
			)
		}
		s.record(res, err)
	}()

	if job.Direction != domain.DirectionEncode && job.Direction != domain.DirectionDecode {
		return res, domain.NewError(domain.KindIO, "run", "", fmt.Errorf("unknown direction %q", job.Direction))
	}

	info, err := s.statSource(job.Source)
	if err != nil {
		return res, err
	}
	if err := checkDistinct(info, job.Dest); err != nil {
		return res, err
	}
	if hooks.Started != nil {
		hooks.Started(job)
	}

	src, err := os.Open(job.Source)
	if err != nil {
		return res, domain.NewError(domain.KindIO, "open", job.Source, err)
	}
	defer src.Close()

	total, estimated, err := s.total(ctx, job.Direction, src, info.Size())
	if err != nil {
		return res, withPath(err, job)
	}

	dst, err := os.Create(job.Dest)
	if err != nil {
		return res, domain.NewError(domain.KindIO, "open", job.Dest, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = domain.NewError(domain.KindIO, "close", job.Dest, cerr)
		}
	}()

	reporter := progress.NewReporter(job.Direction, total, estimated, hooks.Progress, progress.WithClock(s.now))

	var stats codec.Stats
	switch job.Direction {
	case domain.DirectionEncode:
		stats, err = codec.NewEncoder(s.opts.BufferSize).Encode(ctx, src, dst, reporter)
	case domain.DirectionDecode:
		dec := codec.NewDecoder(s.opts.BufferSize, s.warnFunc(log, hooks.Warning))
		stats, err = dec.Decode(ctx, src, dst, reporter)
	}

	res.Units = stats.Units
	res.Skipped = stats.Skipped
	res.BytesRead = stats.BytesRead
	if err != nil {
		return res, withPath(err, job)
	}

	reporter.Finish()
	return res, nil
}

// statSource fails with NotFound before any file is opened or created
func (s *ConvertService) statSource(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if hints := search.Suggest(path); len(hints) > 0 {
			err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(hints, ", "))
		}
		return nil, domain.NewError(domain.KindNotFound, "stat", path, err)
	}
	if err != nil {
		return nil, domain.NewError(domain.KindIO, "stat", path, err)
	}
	if info.IsDir() {
		return nil, domain.NewError(domain.KindIO, "open", path, errors.New("is a directory"))
	}
	return info, nil
}

// checkDistinct refuses to truncate the source by writing over it
func checkDistinct(source os.FileInfo, dest string) error {
	di, err := os.Stat(dest)
	if err != nil {
		return nil
	}
	if os.SameFile(source, di) {
		return domain.NewError(domain.KindIO, "open", dest, errors.New("destination is the source file"))
	}
	return nil
}

// total returns the progress denominator for a job. Encode knows it
// exactly; decode estimates size/9 unless ExactCount is set.
func (s *ConvertService) total(ctx context.Context, dir domain.Direction, src io.ReadSeeker, size int64) (float64, bool, error) {
	if dir == domain.DirectionEncode {
		return float64(size), false, nil
	}
	if !s.opts.ExactCount {
		return progress.EstimateLines(size), true, nil
	}

	n, err := codec.CountTokens(ctx, src, s.opts.BufferSize)
	if err != nil {
		return 0, false, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, false, domain.NewError(domain.KindIO, "seek", "", err)
	}
	return float64(n), false, nil
}

func (s *ConvertService) warnFunc(log *slog.Logger, next domain.WarningFunc) domain.WarningFunc {
	return func(w domain.TokenWarning) {
		log.Warn("could not convert line to byte", "line", w.Line, "content", w.Content, "error", w.Err)
		if next != nil {
			next(w)
		}
	}
}

func (s *ConvertService) record(res domain.Result, err error) {
	if s.history == nil {
		return
	}
	rec := domain.JobRecord{
		Direction: res.Job.Direction,
		Source:    res.Job.Source,
		Dest:      res.Job.Dest,
		Units:     res.Units,
		Skipped:   res.Skipped,
		BytesRead: res.BytesRead,
		Started:   res.Started,
		Finished:  res.Finished,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	if herr := s.history.Save(rec); herr != nil {
		s.logger.Warn("failed to record job history", "error", herr)
	}
}

// withPath fills in the file a codec error refers to
func withPath(err error, job domain.Job) error {
	var ce *domain.ConversionError
	if errors.As(err, &ce) && ce.Path == "" {
		if ce.Op == "write" {
			ce.Path = job.Dest
		} else {
			ce.Path = job.Source
		}
	}
	return err
}

// Encode converts source to binary text at dest with default options
func Encode(source, dest string) error {
	_, err := NewConvertService(ConvertOptions{}, nil, nil).
		Encode(context.Background(), source, dest, Hooks{})
	return err
}

// Decode converts binary text at source back to bytes at dest with default options
func Decode(source, dest string) error {
	_, err := NewConvertService(ConvertOptions{}, nil, nil).
		Decode(context.Background(), source, dest, Hooks{})
	return err
}
