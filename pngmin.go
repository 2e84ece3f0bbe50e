// Package pngmin losslessly re-encodes PNG images to minimize their size.
//
// pngmin parses a PNG file, reverses the scanline filtering to recover the pixel
// bytes, drops an alpha channel that is fully opaque and collapses RGB to grayscale
// when every pixel is gray, then refilters the pixels and tries every combination of
// a configurable grid of filter and deflate settings. The smallest compressed stream
// replaces the original IDAT records; every other record is kept.
//
// # Basic Usage
//
//	out, err := pngmin.Optimize(data)
//
// With options:
//
//	opt, err := pngmin.New(
//	    pngmin.WithWorkers(0),                       // use every CPU
//	    pngmin.WithMaxRecordPayloadSize(1<<20),      // split IDAT at 1 MiB
//	    pngmin.WithCandidateCompression(format.CompressionLZ4),
//	)
//	out, report, err := opt.Optimize(data)
//	fmt.Println(report.Combination, report.InputSize, report.OutputSize)
//
// # Parameter grid
//
// The grid is a list of param.Matrix values. Each matrix lists admissible values for
// filter (0-4 fixed filter type, 5 adaptive), interlace (0), windowBits (8-15),
// level (0-9), memLevel (1-9) and strategy (0-4). The default grid is
// param.DefaultMatrices.
//
// # Package Structure
//
//   - chunk: record framing and checksums
//   - section: the IHDR header
//   - container: parsing and rebuilding files
//   - filter: unfiltering, canonicalization and refiltering
//   - param: parameter grid expansion
//   - search: the compression search
//   - compress: deflate engine and candidate codecs
//   - config: YAML/JSON configuration files
package pngmin

import (
	"encoding/base64"
	"time"

	"github.com/rs/zerolog"

	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/container"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/filter"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/internal/options"
	"github.com/arloliu/pngmin/param"
	"github.com/arloliu/pngmin/search"
	"github.com/arloliu/pngmin/section"
)

// Optimizer re-encodes PNG files. It is safe for concurrent use; each Optimize call
// owns its buffers.
type Optimizer struct {
	matrices             []param.Matrix
	combos               []param.Combination
	maxRecordPayloadSize int
	workers              int
	progress             search.ProgressFunc
	verbosity            int
	logger               zerolog.Logger
	candidateCompression format.CompressionType
	verifyChecksums      bool
	engine               compress.Engine
	name                 string
}

// Report describes one Optimize call.
type Report struct {
	// Name is the name set with WithName, if any.
	Name string
	// InputSize and OutputSize are the file sizes.
	InputSize  int
	OutputSize int
	// OriginalHeader is the parsed header; Header is the header written.
	OriginalHeader section.Header
	Header         section.Header
	// Combination is the winning parameter combination.
	Combination param.Combination
	// OriginalPixelDataSize and PixelDataSize are the total IDAT payload sizes.
	OriginalPixelDataSize int
	PixelDataSize         int
	// Trials is the number of evaluated combinations.
	Trials int
	// MemoHits is the number of trials answered from the memo.
	MemoHits int
	// Elapsed is the wall time of the call.
	Elapsed time.Duration
}

// Stats returns the file sizes as compression statistics.
func (r Report) Stats() compress.CompressionStats {
	return compress.CompressionStats{OriginalSize: int64(r.InputSize), CompressedSize: int64(r.OutputSize)}
}

// Smaller reports whether the output is smaller than the input.
func (r Report) Smaller() bool {
	return r.OutputSize < r.InputSize
}

// New creates an Optimizer.
//
// The parameter grid is expanded and validated here, so a returned Optimizer never
// fails with a ConfigError.
//
// Returns:
//   - *Optimizer: Configured optimizer
//   - error: ConfigError for an invalid grid or setting
func New(opts ...Option) (*Optimizer, error) {
	o := &Optimizer{
		matrices:             param.DefaultMatrices(),
		workers:              1,
		logger:               zerolog.Nop(),
		candidateCompression: format.CompressionNone,
		engine:               compress.NewZlibEngine(),
	}
	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	combos, err := param.Expand(o.matrices)
	if err != nil {
		return nil, err
	}
	o.combos = combos

	return o, nil
}

// Combinations returns the expanded parameter grid in evaluation order.
func (o *Optimizer) Combinations() []param.Combination {
	return o.combos
}

// Optimize re-encodes a PNG file.
//
// The output is returned even if it is not smaller than the input; see
// Report.Smaller.
//
// Returns:
//   - []byte: The rebuilt file
//   - Report: Sizes and the winning combination
//   - error: FormatError, DecompressionError, or an engine error
func (o *Optimizer) Optimize(buf []byte) ([]byte, Report, error) {
	start := time.Now()

	parser, err := container.NewParser(
		container.WithInflater(o.engine),
		container.WithChecksumVerification(o.verifyChecksums),
		container.WithParserLogger(o.logger),
	)
	if err != nil {
		return nil, Report{}, err
	}

	decoded, err := parser.Parse(buf)
	if err != nil {
		return nil, Report{}, err
	}

	img, err := filter.NewImage(decoded.Header, decoded.Pixels, filter.WithCandidateCompression(o.candidateCompression))
	if err != nil {
		return nil, Report{}, err
	}
	decoded.Pixels = nil
	defer img.Release()

	if err := img.Unfilter(); err != nil {
		return nil, Report{}, err
	}

	if img.Canonicalize(container.GrayCompatible(decoded.Records)) {
		o.logger.Debug().
			Str("file", o.name).
			Stringer("from", decoded.Header.ColorType).
			Stringer("to", img.Header().ColorType).
			Msg("color type reduced")
	}

	if err := img.RefilterAll(param.FilterKeys(o.combos)); err != nil {
		return nil, Report{}, err
	}

	searcher, err := search.NewSearcher(
		search.WithEngine(o.engine),
		search.WithWorkers(o.workers),
		search.WithProgress(o.reportTrial),
		search.WithLogger(o.logger),
	)
	if err != nil {
		return nil, Report{}, err
	}

	res, err := searcher.Search(img, o.combos)
	if err != nil {
		return nil, Report{}, err
	}

	out, err := container.Rebuild(decoded.Records, img.Header(), res.Compressed, o.maxRecordPayloadSize)
	if err != nil {
		return nil, Report{}, err
	}

	return out, Report{
		Name:                  o.name,
		InputSize:             len(buf),
		OutputSize:            len(out),
		OriginalHeader:        decoded.Header,
		Header:                img.Header(),
		Combination:           res.Combination,
		OriginalPixelDataSize: decoded.CompressedSize,
		PixelDataSize:         res.Size,
		Trials:                res.Trials,
		MemoHits:              res.MemoHits,
		Elapsed:               time.Since(start),
	}, nil
}

// OptimizeBase64 re-encodes a base64-encoded PNG file and returns the result in
// standard base64.
func (o *Optimizer) OptimizeBase64(encoded string) (string, Report, error) {
	buf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", Report{}, &errs.FormatError{Offset: errs.NoOffset, Field: "base64", Value: err.Error(), Err: errs.ErrInvalidBase64}
	}

	out, report, err := o.Optimize(buf)
	if err != nil {
		return "", Report{}, err
	}

	return base64.StdEncoding.EncodeToString(out), report, nil
}

// reportTrial logs trials according to verbosity and forwards them to the progress
// callback.
func (o *Optimizer) reportTrial(tr search.Trial) {
	if (tr.Best && o.verbosity >= 1) || (!tr.Best && o.verbosity >= 2) {
		ev := o.logger.Info()
		if o.name != "" {
			ev = ev.Str("file", o.name)
		}
		msg := "trial"
		if tr.Best {
			msg = "best"
		}
		ev.Stringer("params", tr.Combination).
			Int("in", tr.InputSize).
			Int("out", tr.OutputSize).
			Msg(msg)
	}

	if o.progress != nil {
		o.progress(tr)
	}
}

// Optimize re-encodes a PNG file with an Optimizer built from opts.
func Optimize(buf []byte, opts ...Option) ([]byte, error) {
	o, err := New(opts...)
	if err != nil {
		return nil, err
	}

	out, _, err := o.Optimize(buf)

	return out, err
}
