package search

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/internal/options"
	"github.com/arloliu/pngmin/param"
)

// Source supplies the refiltered stream for a filter key.
//
// Stream must be safe for concurrent use and the returned slice must not change.
type Source interface {
	Stream(key format.FilterStrategy) ([]byte, error)
}

// Trial reports one evaluated combination.
type Trial struct {
	// Index is the position of the combination in the searched list.
	Index int
	// Combination is the evaluated combination.
	Combination param.Combination
	// InputSize is the length of the refiltered stream.
	InputSize int
	// OutputSize is the length of the compressed stream.
	OutputSize int
	// Best marks the final report of the overall best trial.
	Best bool
}

// ProgressFunc receives one Trial per combination in order, then the best Trial.
type ProgressFunc func(Trial)

// Result is the outcome of a search.
type Result struct {
	// Index is the position of the winning combination.
	Index int
	// Combination is the winning combination.
	Combination param.Combination
	// Compressed is the winning compressed stream.
	Compressed []byte
	// Size is len(Compressed).
	Size int
	// InputSize is the length of the winning refiltered stream.
	InputSize int
	// Trials is the number of evaluated combinations.
	Trials int
	// MemoHits is the number of trials answered from the memo.
	MemoHits int
}

// Searcher evaluates parameter combinations against a Source.
type Searcher struct {
	engine   compress.Deflater
	workers  int
	progress ProgressFunc
	memo     bool
	logger   zerolog.Logger
}

// Option configures a Searcher.
type Option = options.Option[*Searcher]

// WithEngine sets the deflate engine. The default is compress.ZlibEngine.
func WithEngine(engine compress.Deflater) Option {
	return options.New(func(s *Searcher) error {
		if engine == nil {
			return errs.NewConfigError("engine", nil, errs.ErrUnknownCodec)
		}
		s.engine = engine

		return nil
	})
}

// WithWorkers sets the number of concurrent trials. 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return options.New(func(s *Searcher) error {
		if n < 0 {
			return errs.NewConfigError("workers", n, errs.ErrInvalidWorkers)
		}
		if n == 0 {
			n = runtime.GOMAXPROCS(0)
		}
		s.workers = n

		return nil
	})
}

// WithProgress sets the progress callback. Calls are never concurrent.
func WithProgress(fn ProgressFunc) Option {
	return options.NoError(func(s *Searcher) {
		s.progress = fn
	})
}

// WithMemo enables or disables reuse of outputs for identical streams. It is on by
// default and never changes the result.
func WithMemo(enabled bool) Option {
	return options.NoError(func(s *Searcher) {
		s.memo = enabled
	})
}

// WithLogger sets the logger for search summaries.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(s *Searcher) {
		s.logger = logger
	})
}

// NewSearcher creates a sequential Searcher with the zlib engine and the memo enabled.
func NewSearcher(opts ...Option) (*Searcher, error) {
	s := &Searcher{
		engine:  compress.NewZlibEngine(),
		workers: 1,
		memo:    true,
		logger:  zerolog.Nop(),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Search evaluates every combination and returns the smallest output.
//
// All combinations are validated before the first trial.
//
// Returns:
//   - Result: The winning combination and its compressed stream
//   - error: ConfigError for an empty or invalid combination list, or a source or
//     engine error
func (s *Searcher) Search(src Source, combos []param.Combination) (Result, error) {
	if len(combos) == 0 {
		return Result{}, errs.NewConfigError("combinations", 0, errs.ErrNoMatrices)
	}
	for _, c := range combos {
		if err := validate(c); err != nil {
			return Result{}, err
		}
	}

	start := time.Now()
	run := newRun(s, src, len(combos))

	var err error
	if s.workers <= 1 || len(combos) == 1 {
		err = s.sequential(run, combos)
	} else {
		err = s.parallel(run, combos)
	}
	if err != nil {
		return Result{}, err
	}

	res := run.red.result()
	if s.progress != nil {
		s.progress(Trial{
			Index:       res.Index,
			Combination: res.Combination,
			InputSize:   res.InputSize,
			OutputSize:  res.Size,
			Best:        true,
		})
	}

	s.logger.Debug().
		Int("trials", res.Trials).
		Int("memoHits", res.MemoHits).
		Int("workers", s.workers).
		Int("best", res.Size).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")

	return res, nil
}

func (s *Searcher) sequential(r *run, combos []param.Combination) error {
	for i, c := range combos {
		out := r.trial(i, c)
		if out.err != nil {
			return out.err
		}
		r.red.submit(out)
	}

	return nil
}

func (s *Searcher) parallel(r *run, combos []param.Combination) error {
	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, c := range combos {
		g.Go(func() error {
			out := r.trial(i, c)
			if out.err != nil {
				return out.err
			}
			r.red.submit(out)

			return nil
		})
	}

	return g.Wait()
}

func validate(c param.Combination) error {
	if !c.Filter.IsValid() {
		return &errs.ConfigError{Matrix: -1, Field: "filter", Value: int(c.Filter), Err: errs.ErrValueOutOfRange}
	}
	if c.Interlace != 0 {
		return &errs.ConfigError{Matrix: -1, Field: "interlace", Value: c.Interlace, Err: errs.ErrValueOutOfRange}
	}

	return c.DeflateParams().Validate()
}
