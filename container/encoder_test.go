package container

import (
	"bytes"
	"testing"

	"github.com/arloliu/pngmin/chunk"
	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/section"
	"github.com/stretchr/testify/require"
)

func recompress(t *testing.T, data []byte, level int) []byte {
	t.Helper()

	out, err := compress.NewZlibEngine().Deflate(data, compress.DeflateParams{WindowBits: 15, Level: level, MemLevel: 8})
	require.NoError(t, err)

	return out
}

func TestRebuild_RoundTrip(t *testing.T) {
	for _, idats := range []int{1, 4} {
		buf, filtered := validFile(t, idats)
		parser := newTestParser(t, WithChecksumVerification(true))

		decoded, err := parser.Parse(buf)
		require.NoError(t, err)

		for _, level := range []int{0, 1, 9} {
			payload := recompress(t, decoded.Pixels, level)
			out, err := Rebuild(decoded.Records, decoded.Header, payload, 0)
			require.NoError(t, err)

			again, err := parser.Parse(out)
			require.NoError(t, err)
			require.Equal(t, decoded.Header, again.Header)
			require.Equal(t, filtered, again.Pixels)
			require.Equal(t, 1, again.PixelRecords)
			require.Equal(t, payload, again.Records[2].Data)
		}
	}
}

func TestRebuild_Verbatim(t *testing.T) {
	buf, _ := validFile(t, 3)

	// A bad CRC on an ancillary record survives the rebuild untouched.
	records, err := chunk.Split(buf)
	require.NoError(t, err)
	text := records[1]
	buf[text.Offset+chunk.Overhead+text.Length()-1] ^= 0x55

	decoded, err := newTestParser(t).Parse(buf)
	require.NoError(t, err)

	out, err := Rebuild(decoded.Records, decoded.Header, recompress(t, decoded.Pixels, 9), 0)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, chunk.Signature[:]))
	require.True(t, bytes.Contains(out, decoded.Records[0].Bytes()))
	require.True(t, bytes.Contains(out, decoded.Records[1].Bytes()))
	require.True(t, bytes.HasSuffix(out, decoded.Records[len(decoded.Records)-1].Bytes()))

	rebuilt, err := chunk.Split(out)
	require.NoError(t, err)
	require.Len(t, rebuilt, 4)
	require.False(t, rebuilt[1].Valid())
	require.True(t, rebuilt[2].Valid())
}

func TestRebuild_SizeCeiling(t *testing.T) {
	h := grayHeader(40, 40)
	filtered := filteredRamp(h)
	text := chunk.Type{'t', 'E', 'X', 't'}
	z := recompress(t, filtered, 9)
	third := len(z) / 3
	buf := newFile(h).
		header13().
		add(chunk.TypeIDAT, z[:third]).
		add(chunk.TypeIDAT, z[third:2*third]).
		add(text, []byte("between\x00idats")).
		add(chunk.TypeIDAT, z[2*third:]).
		end().
		bytes()

	decoded, err := newTestParser(t).Parse(buf)
	require.NoError(t, err)

	payload := recompress(t, decoded.Pixels, 1)
	for _, maxSize := range []int{1, 7, 100, len(payload), len(payload) + 1} {
		out, err := Rebuild(decoded.Records, decoded.Header, payload, maxSize)
		require.NoError(t, err)

		records, err := chunk.Split(out)
		require.NoError(t, err)

		var joined []byte
		idats := 0
		firstIDAT := -1
		for i, rec := range records {
			if rec.Type != chunk.TypeIDAT {
				continue
			}
			if firstIDAT < 0 {
				firstIDAT = i
			}
			idats++
			require.LessOrEqual(t, rec.Length(), maxSize)
			require.True(t, rec.Valid())
			joined = append(joined, rec.Data...)
		}

		require.Equal(t, 1, firstIDAT)
		require.Equal(t, (len(payload)+maxSize-1)/maxSize, idats)
		require.Equal(t, payload, joined)
		require.Equal(t, text, records[len(records)-2].Type)

		again, err := newTestParser(t).Parse(out)
		require.NoError(t, err)
		require.Equal(t, filtered, again.Pixels)
	}
}

func TestRebuild_Errors(t *testing.T) {
	buf, _ := validFile(t, 1)
	decoded, err := newTestParser(t).Parse(buf)
	require.NoError(t, err)

	for _, size := range []int{-1, chunk.MaxLength + 1} {
		_, err := Rebuild(decoded.Records, decoded.Header, []byte{1}, size)
		require.ErrorIs(t, err, errs.ErrInvalidChunkSize)
		require.ErrorIs(t, err, errs.ErrConfig)
	}

	_, err = Rebuild(decoded.Records[1:], decoded.Header, []byte{1}, 0)
	require.ErrorIs(t, err, errs.ErrMissingHeader)

	bad := decoded.Header
	bad.BitDepth = 3
	_, err = Rebuild(decoded.Records, bad, []byte{1}, 0)
	require.ErrorIs(t, err, errs.ErrUnsupportedDepth)
}

func TestRebuild_HeaderChange(t *testing.T) {
	rgb := section.Header{Width: 2, Height: 2, BitDepth: 8, ColorType: format.ColorRGB}
	gray := rgb.WithColorType(format.ColorGray)
	filtered := filteredRamp(rgb)
	gama := chunk.Type{'g', 'A', 'M', 'A'}

	buf := newFile(rgb).
		header13().
		add(gama, []byte{0, 0, 0xB1, 0x8F}).
		add(chunk.TypeSBIT, []byte{5, 6, 5}).
		add(chunk.TypePLTE, []byte{1, 1, 1, 2, 2, 2}).
		add(chunk.TypeTRNS, []byte{0, 9, 0, 9, 0, 9}).
		add(chunk.TypeBKGD, []byte{0, 3, 0, 3, 0, 3}).
		add(chunk.TypeHIST, []byte{0, 1, 0, 1}).
		pixels(t, filtered, 1).
		end().
		bytes()

	decoded, err := newTestParser(t).Parse(buf)
	require.NoError(t, err)
	require.True(t, GrayCompatible(decoded.Records))

	grayPixels := filteredRamp(gray)
	out, err := Rebuild(decoded.Records, gray, recompress(t, grayPixels, 9), 0)
	require.NoError(t, err)

	again, err := newTestParser(t, WithChecksumVerification(true)).Parse(out)
	require.NoError(t, err)
	require.Equal(t, gray, again.Header)
	require.Equal(t, grayPixels, again.Pixels)

	byType := map[chunk.Type][]byte{}
	for _, rec := range again.Records {
		byType[rec.Type] = rec.Data
	}

	require.Equal(t, []byte{0, 0, 0xB1, 0x8F}, byType[gama])
	require.Equal(t, []byte{6}, byType[chunk.TypeSBIT])
	require.Equal(t, []byte{0, 9}, byType[chunk.TypeTRNS])
	require.Equal(t, []byte{0, 3}, byType[chunk.TypeBKGD])
	require.NotContains(t, byType, chunk.TypePLTE)
	require.NotContains(t, byType, chunk.TypeHIST)
}

func TestAdapters(t *testing.T) {
	rgba := section.Header{Width: 1, Height: 1, BitDepth: 8, ColorType: format.ColorRGBA}
	rgb := rgba.WithColorType(format.ColorRGB)
	grayAlpha := rgba.WithColorType(format.ColorGrayAlpha)
	gray := rgba.WithColorType(format.ColorGray)

	t.Run("sBIT", func(t *testing.T) {
		tests := []struct {
			from, to section.Header
			in, want []byte
		}{
			{rgba, rgb, []byte{5, 6, 7, 8}, []byte{5, 6, 7}},
			{rgba, grayAlpha, []byte{5, 6, 7, 8}, []byte{7, 8}},
			{rgba, gray, []byte{5, 6, 7, 8}, []byte{7}},
			{grayAlpha, gray, []byte{4, 2}, []byte{4}},
			{rgb, gray, []byte{3, 8, 1}, []byte{8}},
		}
		for _, tt := range tests {
			got, keep := adaptSignificantBits(tt.in, tt.from, tt.to)
			require.True(t, keep)
			require.Equal(t, tt.want, got)
		}

		_, keep := adaptSignificantBits([]byte{1, 2}, rgb, gray)
		require.False(t, keep)
	})

	t.Run("tRNS", func(t *testing.T) {
		_, keep := adaptTransparency([]byte{0, 1, 0, 2, 0, 1}, rgb, gray)
		require.False(t, keep)

		_, keep = adaptTransparency([]byte{0, 1}, gray, grayAlpha)
		require.False(t, keep)

		got, keep := adaptTransparency([]byte{0, 4, 0, 4, 0, 4}, rgb, gray)
		require.True(t, keep)
		require.Equal(t, []byte{0, 4}, got)
	})

	t.Run("bKGD", func(t *testing.T) {
		got, keep := adaptBackground([]byte{0, 1, 0, 2, 0, 3}, rgba, rgb)
		require.True(t, keep)
		require.Equal(t, []byte{0, 1, 0, 2, 0, 3}, got)

		_, keep = adaptBackground([]byte{0, 1, 0, 2, 0, 3}, rgba, gray)
		require.False(t, keep)
	})

	t.Run("PLTE", func(t *testing.T) {
		_, keep := dropWhenGray([]byte{1, 2, 3}, rgba, rgb)
		require.True(t, keep)
		_, keep = dropWhenGray([]byte{1, 2, 3}, rgba, grayAlpha)
		require.False(t, keep)
	})
}

func TestGrayCompatible(t *testing.T) {
	require.True(t, GrayCompatible(nil))
	require.True(t, GrayCompatible([]chunk.Record{chunk.New(chunk.TypeBKGD, []byte{0, 7})}))
	require.True(t, GrayCompatible([]chunk.Record{chunk.New(chunk.TypeBKGD, []byte{1, 7, 1, 7, 1, 7})}))
	require.False(t, GrayCompatible([]chunk.Record{chunk.New(chunk.TypeBKGD, []byte{1, 7, 1, 7, 1, 8})}))
}
