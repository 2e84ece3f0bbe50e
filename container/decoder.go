package container

import (
	"github.com/rs/zerolog"

	"github.com/arloliu/pngmin/chunk"
	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/internal/options"
	"github.com/arloliu/pngmin/internal/pool"
	"github.com/arloliu/pngmin/section"
)

// Decoded is the result of parsing one PNG file.
type Decoded struct {
	// Header is the parsed IHDR section.
	Header section.Header
	// Records are all records in file order. They alias the parsed buffer.
	Records []chunk.Record
	// Pixels is the inflated IDAT stream: filtered scanlines.
	Pixels []byte
	// PixelRecords is the number of IDAT records.
	PixelRecords int
	// CompressedSize is the total IDAT payload size.
	CompressedSize int
}

// Parser validates PNG files and extracts their pixel data.
type Parser struct {
	inflater        compress.Inflater
	verifyChecksums bool
	logger          zerolog.Logger
}

// ParserOption configures a Parser.
type ParserOption = options.Option[*Parser]

// WithInflater sets the engine used to inflate the IDAT stream.
func WithInflater(inflater compress.Inflater) ParserOption {
	return options.New(func(p *Parser) error {
		if inflater == nil {
			return errs.NewConfigError("inflater", nil, errs.ErrUnknownCodec)
		}
		p.inflater = inflater

		return nil
	})
}

// WithChecksumVerification rejects records whose stored CRC is wrong.
//
// It is off by default: records are copied verbatim, so a wrong checksum on an
// ancillary record does not affect the output.
func WithChecksumVerification(enabled bool) ParserOption {
	return options.NoError(func(p *Parser) {
		p.verifyChecksums = enabled
	})
}

// WithParserLogger sets the logger for per-record debug output.
func WithParserLogger(logger zerolog.Logger) ParserOption {
	return options.NoError(func(p *Parser) {
		p.logger = logger
	})
}

// NewParser creates a Parser. The default inflater is compress.ZlibEngine.
func NewParser(opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		inflater: compress.NewZlibEngine(),
		logger:   zerolog.Nop(),
	}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// parseState accumulates handler results across records.
type parseState struct {
	header     section.Header
	seenHeader bool
	idat       *pool.ByteBuffer
	idatCount  int
}

// recordHandler validates one record of a known type.
type recordHandler func(st *parseState, rec chunk.Record) error

// handlers maps critical record types to their handler; other types pass through.
var handlers = map[chunk.Type]recordHandler{
	chunk.TypeIHDR: handleHeader,
	chunk.TypeIDAT: handlePixelData,
	chunk.TypeIEND: handleEnd,
}

func handleHeader(st *parseState, rec chunk.Record) error {
	if st.seenHeader {
		return errs.NewFormatError(rec.Offset, errs.ErrDuplicateHeader)
	}

	h, err := section.ParseHeader(rec.Data)
	if err != nil {
		return err
	}

	st.header = h
	st.seenHeader = true

	return nil
}

func handlePixelData(st *parseState, rec chunk.Record) error {
	_, _ = st.idat.Write(rec.Data)
	st.idatCount++

	return nil
}

func handleEnd(_ *parseState, rec chunk.Record) error {
	if len(rec.Data) != 0 {
		return errs.NewFieldError("length", len(rec.Data), errs.ErrNonEmptyEnd)
	}

	return nil
}

// Parse validates buf and returns its header, records and inflated pixel stream.
//
// Framing is decoded in one pass; the record order (at least two records, IHDR
// first, IEND last) is checked before any record is interpreted.
//
// Returns:
//   - *Decoded: Parsed file; Records alias buf
//   - error: FormatError for structural problems, DecompressionError for a corrupt
//     IDAT stream
func (p *Parser) Parse(buf []byte) (*Decoded, error) {
	if len(buf) < chunk.MinFileSize {
		return nil, errs.NewFieldError("length", len(buf), errs.ErrTooShort)
	}
	if !chunk.HasSignature(buf) {
		return nil, errs.NewFormatError(0, errs.ErrInvalidSignature)
	}

	records := make([]chunk.Record, 0, 8)
	for rec, err := range chunk.Records(buf, chunk.SignatureSize) {
		if err != nil {
			return nil, err
		}
		if p.verifyChecksums && !rec.Valid() {
			return nil, &errs.FormatError{Offset: rec.Offset, Field: "type", Value: rec.Type.String(), Err: errs.ErrChecksumMismatch}
		}
		records = append(records, rec)
	}

	if len(records) < 2 {
		return nil, errs.NewFieldError("records", len(records), errs.ErrTooFewRecords)
	}
	if records[0].Type != chunk.TypeIHDR {
		return nil, errs.NewFormatError(records[0].Offset, errs.ErrMissingHeader)
	}
	if last := records[len(records)-1]; last.Type != chunk.TypeIEND {
		return nil, errs.NewFormatError(last.Offset, errs.ErrMissingEnd)
	}

	st := &parseState{idat: pool.GetStreamBuffer()}
	defer pool.PutStreamBuffer(st.idat)

	for _, rec := range records {
		handler, ok := handlers[rec.Type]
		if !ok {
			p.logger.Debug().
				Str("type", rec.Type.String()).
				Bool("critical", rec.Type.IsCritical()).
				Int("offset", rec.Offset).
				Int("length", rec.Length()).
				Msg("pass through")
			continue
		}
		if err := handler(st, rec); err != nil {
			if fe, ok := err.(*errs.FormatError); ok && fe.Offset == errs.NoOffset { //nolint: errorlint
				fe.Offset = rec.Offset
			}

			return nil, err
		}
	}

	if st.idatCount == 0 {
		return nil, errs.NewFormatError(errs.NoOffset, errs.ErrNoPixelData)
	}

	// Unfilter reads at most FilteredSize bytes; inflating more only costs memory.
	pixels, err := p.inflater.Inflate(st.idat.Bytes(), st.header.FilteredSize())
	if err != nil {
		return nil, err
	}

	p.logger.Debug().
		Int("idatRecords", st.idatCount).
		Int("compressed", st.idat.Len()).
		Int("inflated", len(pixels)).
		Msg("pixel data inflated")

	return &Decoded{
		Header:         st.header,
		Records:        records,
		Pixels:         pixels,
		PixelRecords:   st.idatCount,
		CompressedSize: st.idat.Len(),
	}, nil
}
