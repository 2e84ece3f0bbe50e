package pngmin

import (
	"github.com/rs/zerolog"

	"github.com/arloliu/pngmin/chunk"
	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/internal/options"
	"github.com/arloliu/pngmin/param"
	"github.com/arloliu/pngmin/search"
)

// Option configures an Optimizer.
type Option = options.Option[*Optimizer]

// WithMatrices sets the parameter grid. The default is param.DefaultMatrices().
func WithMatrices(matrices ...param.Matrix) Option {
	return options.NoError(func(o *Optimizer) {
		o.matrices = matrices
	})
}

// WithMaxRecordPayloadSize caps the payload of each emitted IDAT record.
// 0 (the default) means the format maximum, 2^31-1.
func WithMaxRecordPayloadSize(n int) Option {
	return options.New(func(o *Optimizer) error {
		if n < 0 || n > chunk.MaxLength {
			return errs.NewConfigError("maxRecordPayloadSize", n, errs.ErrInvalidChunkSize)
		}
		o.maxRecordPayloadSize = n

		return nil
	})
}

// WithWorkers sets the number of concurrent compression trials. 0 means GOMAXPROCS;
// the default is 1. The result does not depend on it.
func WithWorkers(n int) Option {
	return options.New(func(o *Optimizer) error {
		if n < 0 {
			return errs.NewConfigError("workers", n, errs.ErrInvalidWorkers)
		}
		o.workers = n

		return nil
	})
}

// WithProgress sets a callback invoked once per trial in combination order, then
// once with the best trial.
func WithProgress(fn search.ProgressFunc) Option {
	return options.NoError(func(o *Optimizer) {
		o.progress = fn
	})
}

// WithVerbosity sets how much is logged: 1 logs the best combination, 2 also logs
// every trial.
func WithVerbosity(level int) Option {
	return options.NoError(func(o *Optimizer) {
		o.verbosity = level
	})
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(o *Optimizer) {
		o.logger = logger
	})
}

// WithName sets a name, typically the file name, attached to logs and the Report.
func WithName(name string) Option {
	return options.NoError(func(o *Optimizer) {
		o.name = name
	})
}

// WithCandidateCompression packs refiltered streams in memory during the search.
// format.CompressionNone (the default) keeps them as is.
func WithCandidateCompression(ct format.CompressionType) Option {
	return options.New(func(o *Optimizer) error {
		if _, err := compress.CreateCodec(ct, "candidateCompression"); err != nil {
			return err
		}
		o.candidateCompression = ct

		return nil
	})
}

// WithChecksumVerification rejects input files with a wrong record checksum.
func WithChecksumVerification(enabled bool) Option {
	return options.NoError(func(o *Optimizer) {
		o.verifyChecksums = enabled
	})
}

// WithEngine replaces the deflate/inflate engine.
func WithEngine(engine compress.Engine) Option {
	return options.New(func(o *Optimizer) error {
		if engine == nil {
			return errs.NewConfigError("engine", nil, errs.ErrUnknownCodec)
		}
		o.engine = engine

		return nil
	})
}
