package filter

import (
	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/internal/options"
	"github.com/arloliu/pngmin/internal/pool"
	"github.com/arloliu/pngmin/section"
)

// Image owns the pixel bytes of one optimization run.
//
// An Image moves through three states: filtered (as inflated from the container),
// canonical (after Unfilter) and released. Canonicalize and the refilter methods
// require the canonical state. Stream may be called from several goroutines once
// RefilterAll has returned.
type Image struct {
	header     section.Header
	filtered   []byte
	pixels     []byte
	unfiltered bool
	codec      compress.Codec
	store      *store
}

// ImageOption configures an Image.
type ImageOption = options.Option[*Image]

// WithCodec packs stored candidate streams with codec.
func WithCodec(codec compress.Codec) ImageOption {
	return options.NoError(func(img *Image) {
		img.codec = codec
	})
}

// WithCandidateCompression packs stored candidate streams with the shared built-in
// codec for ct.
func WithCandidateCompression(ct format.CompressionType) ImageOption {
	return options.New(func(img *Image) error {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}
		img.codec = codec

		return nil
	})
}

// NewImage creates an Image from a validated header and the inflated pixel stream.
//
// The Image takes ownership of filtered; it is reused as the canonical buffer by
// Unfilter.
func NewImage(header section.Header, filtered []byte, opts ...ImageOption) (*Image, error) {
	if err := header.Validate(); err != nil {
		return nil, err
	}

	img := &Image{
		header:   header,
		filtered: filtered,
		codec:    compress.NewNoOpCompressor(),
	}
	if err := options.Apply(img, opts...); err != nil {
		return nil, err
	}
	img.store = newStore(img.codec)

	return img, nil
}

// Header returns the current header, reflecting any canonicalization.
func (img *Image) Header() section.Header {
	return img.header
}

// Pixels returns the canonical pixel bytes, rows concatenated without filter tags.
//
// It returns nil before Unfilter and after Release.
func (img *Image) Pixels() []byte {
	return img.pixels
}

// Unfilter reverses the per-row prediction of the filtered stream.
//
// Bytes beyond height*(1+rowBytes) are ignored.
//
// Returns:
//   - error: FormatError wrapping ErrPixelDataTooShort, or ErrInvalidFilterType with the row index
func (img *Image) Unfilter() error {
	if img.unfiltered {
		return nil
	}

	h := img.header

	// FilteredSize saturates, so oversized headers fail here before any allocation.
	if need := h.FilteredSize(); len(img.filtered) < need {
		return errs.NewFieldError("length", len(img.filtered), errs.ErrPixelDataTooShort)
	}

	rowBytes := h.RowBytes()
	stride := rowBytes + 1
	height := int(h.Height)
	bpp := h.BytesPerPixel()

	// Rows are compacted in place: row y moves from y*stride+1 to y*rowBytes, which is
	// never past its source, and the previous row is already final when read.
	buf := img.filtered
	zero, release := pool.GetByteSlice(rowBytes)
	defer release()

	prev := zero
	for y := range height {
		src := y * stride
		ft := format.FilterType(buf[src])
		if !ft.IsValid() {
			return errs.NewFieldError("row", y, errs.ErrInvalidFilterType)
		}

		row := buf[y*rowBytes : (y+1)*rowBytes]
		copy(row, buf[src+1:src+stride])
		decodeRow(row, prev, ft, bpp)
		prev = row
	}

	img.pixels = buf[: height*rowBytes : height*rowBytes]
	img.filtered = nil
	img.unfiltered = true

	return nil
}

// Refilter returns a new stream with every row filtered according to strategy.
//
// Returns:
//   - []byte: Filtered stream of Header().FilteredSize() bytes
//   - error: ConfigError for an unknown strategy
func (img *Image) Refilter(strategy format.FilterStrategy) ([]byte, error) {
	if !strategy.IsValid() {
		return nil, errs.NewConfigError("filter", int(strategy), errs.ErrValueOutOfRange)
	}
	if !img.unfiltered {
		if err := img.Unfilter(); err != nil {
			return nil, err
		}
	}

	h := img.header
	rowBytes := h.RowBytes()
	stride := rowBytes + 1
	bpp := h.BytesPerPixel()
	out := make([]byte, h.FilteredSize())

	zero, release := pool.GetByteSlice(rowBytes)
	defer release()

	var scratch []byte
	if strategy.IsAdaptive() {
		var releaseScratch func()
		scratch, releaseScratch = pool.GetByteSlice(rowBytes * format.NumFilterTypes)
		defer releaseScratch()
	}

	prev := zero
	for y := range int(h.Height) {
		cur := img.pixels[y*rowBytes : (y+1)*rowBytes]
		dst := out[y*stride : (y+1)*stride]

		ft := strategy.FilterType()
		if strategy.IsAdaptive() {
			ft = pickFilter(scratch, cur, prev, bpp)
			copy(dst[1:], scratch[int(ft)*rowBytes:(int(ft)+1)*rowBytes])
		} else {
			encodeRow(dst[1:], cur, prev, ft, bpp)
		}
		dst[0] = byte(ft)

		prev = cur
	}

	return out, nil
}

// pickFilter filters cur with every filter type into consecutive rows of scratch and
// returns the type with the smallest signed sum, lowest type on ties.
func pickFilter(scratch, cur, prev []byte, bpp int) format.FilterType {
	n := len(cur)
	best := format.FilterNone
	bestSum := -1

	for ft := format.FilterNone; ft < format.NumFilterTypes; ft++ {
		dst := scratch[int(ft)*n : (int(ft)+1)*n]
		encodeRow(dst, cur, prev, ft, bpp)

		if sum := signedSum(dst); bestSum < 0 || sum < bestSum {
			best, bestSum = ft, sum
		}
	}

	return best
}

// RefilterAll computes and stores the stream of every distinct key exactly once.
func (img *Image) RefilterAll(keys []format.FilterStrategy) error {
	for _, key := range keys {
		if img.store.has(key) {
			continue
		}

		stream, err := img.Refilter(key)
		if err != nil {
			return err
		}
		if err := img.store.put(key, stream); err != nil {
			return err
		}
	}

	return nil
}

// Stream returns the stored stream for key.
//
// The returned slice must not be modified.
func (img *Image) Stream(key format.FilterStrategy) ([]byte, error) {
	return img.store.get(key)
}

// StreamSize returns the unpacked length of the stored stream for key, or 0.
func (img *Image) StreamSize(key format.FilterStrategy) int {
	img.store.mu.RLock()
	defer img.store.mu.RUnlock()

	return img.store.sizes[key]
}

// ResidentSize returns the bytes held by stored streams.
func (img *Image) ResidentSize() int {
	return img.store.resident()
}

// Release drops every pixel buffer and stored stream.
func (img *Image) Release() {
	img.filtered = nil
	img.pixels = nil
	img.store.reset()
}
