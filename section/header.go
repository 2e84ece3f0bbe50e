package section

import (
	"math"
	"math/bits"

	"github.com/arloliu/pngmin/endian"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
)

// Header represents the IHDR section.
type Header struct {
	Width             uint32           // byte offset 0-3
	Height            uint32           // byte offset 4-7
	BitDepth          uint8            // byte offset 8
	ColorType         format.ColorType // byte offset 9
	CompressionMethod uint8            // byte offset 10
	FilterMethod      uint8            // byte offset 11
	InterlaceMethod   uint8            // byte offset 12
}

// Parse parses and validates the header from an IHDR payload.
//
// Parameters:
//   - data: IHDR payload (must be exactly 13 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 13 bytes, or the first field validation error
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.NewFieldError("length", len(data), errs.ErrInvalidHeaderSize)
	}

	engine := endian.GetNetworkEngine()

	h.Width = engine.Uint32(data[0:4])
	h.Height = engine.Uint32(data[4:8])
	h.BitDepth = data[8]
	h.ColorType = format.ColorType(data[9])
	h.CompressionMethod = data[10]
	h.FilterMethod = data[11]
	h.InterlaceMethod = data[12]

	return h.Validate()
}

// Bytes serializes the header into a 13-byte IHDR payload.
func (h Header) Bytes() []byte {
	engine := endian.GetNetworkEngine()

	b := make([]byte, 0, HeaderSize)
	b = engine.AppendUint32(b, h.Width)
	b = engine.AppendUint32(b, h.Height)

	return append(b, h.BitDepth, uint8(h.ColorType), h.CompressionMethod, h.FilterMethod, h.InterlaceMethod)
}

// Validate checks the field invariants, in the order a decoder needs them.
func (h Header) Validate() error {
	if h.Width == 0 || h.Width > MaxDimension {
		return errs.NewFieldError("width", h.Width, errs.ErrInvalidDimensions)
	}
	if h.Height == 0 || h.Height > MaxDimension {
		return errs.NewFieldError("height", h.Height, errs.ErrInvalidDimensions)
	}

	switch h.BitDepth {
	case 1, 2, 4, 8, 16:
	default:
		return errs.NewFieldError("bitDepth", h.BitDepth, errs.ErrUnsupportedDepth)
	}

	if !h.ColorType.IsValid() {
		return errs.NewFieldError("colorType", uint8(h.ColorType), errs.ErrUnsupportedColor)
	}
	if h.BitDepth < 8 && h.ColorType != format.ColorGray && h.ColorType != format.ColorIndexed {
		return errs.NewFieldError("bitDepth", h.BitDepth, errs.ErrSubByteMultiSample)
	}
	if h.ColorType == format.ColorIndexed && h.BitDepth > 8 {
		return errs.NewFieldError("bitDepth", h.BitDepth, errs.ErrMultiBytePalette)
	}
	if h.CompressionMethod != CompressionDeflate {
		return errs.NewFieldError("compressionMethod", h.CompressionMethod, errs.ErrUnsupportedCompress)
	}
	if h.FilterMethod != FilterAdaptive {
		return errs.NewFieldError("filterMethod", h.FilterMethod, errs.ErrUnsupportedFilter)
	}
	if h.InterlaceMethod != InterlaceNone {
		return errs.NewFieldError("interlaceMethod", h.InterlaceMethod, errs.ErrInterlaced)
	}

	return nil
}

// Channels returns the number of samples per pixel.
func (h Header) Channels() int {
	return h.ColorType.Channels()
}

// BitsPerPixel returns the number of bits per pixel.
func (h Header) BitsPerPixel() int {
	return int(h.BitDepth) * h.Channels()
}

// BytesPerPixel returns the predictor distance in bytes, at least 1.
func (h Header) BytesPerPixel() int {
	return (h.BitsPerPixel() + 7) / 8
}

// SampleBytes returns the size of one sample, 2 for 16-bit images and 1 otherwise.
func (h Header) SampleBytes() int {
	if h.BitDepth == 16 {
		return 2
	}

	return 1
}

// RowBytes returns the number of pixel bytes in one scanline, without the filter byte.
//
// It saturates at math.MaxInt on platforms where the row does not fit in an int.
func (h Header) RowBytes() int {
	n := (uint64(h.Width)*uint64(h.BitsPerPixel()) + 7) / 8 //nolint: gosec
	if n > math.MaxInt {
		return math.MaxInt
	}

	return int(n)
}

// FilteredSize returns the size of the decompressed pixel stream: one filter byte
// plus RowBytes per row.
//
// The product saturates at math.MaxInt, so a header too large for memory yields a
// size no buffer can reach.
func (h Header) FilteredSize() int {
	hi, lo := bits.Mul64(uint64(h.Height), uint64(h.RowBytes())+1) //nolint: gosec
	if hi != 0 || lo > math.MaxInt {
		return math.MaxInt
	}

	return int(lo)
}

// WithColorType returns a copy of the header with a different color type.
func (h Header) WithColorType(c format.ColorType) Header {
	h.ColorType = c
	return h
}

// ParseHeader parses a Header from an IHDR payload.
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or a field validation error
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
