package section

import (
	"math"
	"testing"

	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
	"github.com/stretchr/testify/require"
)

func validHeader() Header {
	return Header{Width: 3, Height: 2, BitDepth: 8, ColorType: format.ColorRGBA}
}

func TestHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := Header{Width: 640, Height: 480, BitDepth: 16, ColorType: format.ColorRGB}

		data := original.Bytes()
		require.Len(t, data, HeaderSize)

		parsed := &Header{}
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, original, *parsed)
	})

	t.Run("Invalid size", func(t *testing.T) {
		_, err := ParseHeader(make([]byte, 12))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("Bit depth 3", func(t *testing.T) {
		h := validHeader()
		h.BitDepth = 3

		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrUnsupportedDepth)

		var fe *errs.FormatError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, "bitDepth", fe.Field)
		require.Equal(t, uint8(3), fe.Value)
	})

	t.Run("Indexed 16-bit", func(t *testing.T) {
		h := Header{Width: 1, Height: 1, BitDepth: 16, ColorType: format.ColorIndexed}
		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrMultiBytePalette)
	})
}

func TestHeader_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(h *Header)
		want   error
	}{
		{"zero width", func(h *Header) { h.Width = 0 }, errs.ErrInvalidDimensions},
		{"zero height", func(h *Header) { h.Height = 0 }, errs.ErrInvalidDimensions},
		{"huge width", func(h *Header) { h.Width = 1 << 31 }, errs.ErrInvalidDimensions},
		{"depth 0", func(h *Header) { h.BitDepth = 0 }, errs.ErrUnsupportedDepth},
		{"color 1", func(h *Header) { h.ColorType = 1 }, errs.ErrUnsupportedColor},
		{"color 5", func(h *Header) { h.ColorType = 5 }, errs.ErrUnsupportedColor},
		{"rgb depth 4", func(h *Header) { h.ColorType = format.ColorRGB; h.BitDepth = 4 }, errs.ErrSubByteMultiSample},
		{"gray alpha depth 2", func(h *Header) { h.ColorType = format.ColorGrayAlpha; h.BitDepth = 2 }, errs.ErrSubByteMultiSample},
		{"compression 1", func(h *Header) { h.CompressionMethod = 1 }, errs.ErrUnsupportedCompress},
		{"filter 1", func(h *Header) { h.FilterMethod = 1 }, errs.ErrUnsupportedFilter},
		{"interlaced", func(h *Header) { h.InterlaceMethod = 1 }, errs.ErrInterlaced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHeader()
			tt.mutate(&h)
			require.ErrorIs(t, h.Validate(), tt.want)
		})
	}

	t.Run("sub-byte gray and indexed", func(t *testing.T) {
		for _, depth := range []uint8{1, 2, 4, 8} {
			h := Header{Width: 5, Height: 1, BitDepth: depth, ColorType: format.ColorGray}
			require.NoError(t, h.Validate())
			h.ColorType = format.ColorIndexed
			require.NoError(t, h.Validate())
		}
	})
}

func TestHeader_Geometry(t *testing.T) {
	tests := []struct {
		name     string
		header   Header
		bpp      int
		rowBytes int
	}{
		{"gray1", Header{Width: 10, Height: 2, BitDepth: 1, ColorType: format.ColorGray}, 1, 2},
		{"gray4", Header{Width: 3, Height: 2, BitDepth: 4, ColorType: format.ColorGray}, 1, 2},
		{"gray8", Header{Width: 3, Height: 2, BitDepth: 8, ColorType: format.ColorGray}, 1, 3},
		{"gray16", Header{Width: 3, Height: 2, BitDepth: 16, ColorType: format.ColorGray}, 2, 6},
		{"rgb8", Header{Width: 3, Height: 2, BitDepth: 8, ColorType: format.ColorRGB}, 3, 9},
		{"rgba16", Header{Width: 3, Height: 2, BitDepth: 16, ColorType: format.ColorRGBA}, 8, 24},
		{"gray alpha8", Header{Width: 3, Height: 2, BitDepth: 8, ColorType: format.ColorGrayAlpha}, 2, 6},
		{"indexed2", Header{Width: 5, Height: 2, BitDepth: 2, ColorType: format.ColorIndexed}, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.bpp, tt.header.BytesPerPixel())
			require.Equal(t, tt.rowBytes, tt.header.RowBytes())
			require.Equal(t, 2*(tt.rowBytes+1), tt.header.FilteredSize())
		})
	}
}

func TestHeader_GeometrySaturates(t *testing.T) {
	huge := Header{Width: 1<<31 - 1, Height: 1<<31 - 1, BitDepth: 16, ColorType: format.ColorRGBA}
	require.NoError(t, huge.Validate())

	require.Equal(t, (1<<31-1)*8, huge.RowBytes())
	require.Equal(t, math.MaxInt, huge.FilteredSize())

	tall := Header{Width: 1, Height: 1<<31 - 1, BitDepth: 8, ColorType: format.ColorGray}
	require.Equal(t, (1<<31-1)*2, tall.FilteredSize())
}

func TestHeader_WithColorType(t *testing.T) {
	h := validHeader()
	g := h.WithColorType(format.ColorGray)

	require.Equal(t, format.ColorRGBA, h.ColorType)
	require.Equal(t, format.ColorGray, g.ColorType)
	require.Equal(t, 1, g.BytesPerPixel())
}
