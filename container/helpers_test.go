package container

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/arloliu/pngmin/chunk"
	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/section"
	"github.com/stretchr/testify/require"
)

type fileBuilder struct {
	header  section.Header
	records []chunk.Record
}

func grayHeader(w, h uint32) section.Header {
	return section.Header{Width: w, Height: h, BitDepth: 8, ColorType: format.ColorGray}
}

// filteredRamp returns FilterNone scanlines for h.
func filteredRamp(h section.Header) []byte {
	rowBytes := h.RowBytes()
	out := make([]byte, 0, h.FilteredSize())
	for y := range int(h.Height) {
		out = append(out, 0)
		for x := range rowBytes {
			out = append(out, byte(x+y*3))
		}
	}

	return out
}

func newFile(h section.Header) *fileBuilder {
	return &fileBuilder{header: h}
}

func (b *fileBuilder) add(t chunk.Type, data []byte) *fileBuilder {
	b.records = append(b.records, chunk.New(t, data))
	return b
}

func (b *fileBuilder) header13() *fileBuilder {
	return b.add(chunk.TypeIHDR, b.header.Bytes())
}

// pixels appends the compressed filtered stream split into n IDAT records.
func (b *fileBuilder) pixels(t *testing.T, filtered []byte, n int) *fileBuilder {
	t.Helper()

	z, err := compress.NewZlibEngine().Compress(filtered)
	require.NoError(t, err)

	step := (len(z) + n - 1) / n
	for start := 0; start < len(z); start += step {
		b.add(chunk.TypeIDAT, z[start:min(start+step, len(z))])
	}

	return b
}

func (b *fileBuilder) end() *fileBuilder {
	return b.add(chunk.TypeIEND, nil)
}

func (b *fileBuilder) bytes() []byte {
	out := append([]byte(nil), chunk.Signature[:]...)
	for _, rec := range b.records {
		out = chunk.AppendRecord(out, rec)
	}

	return out
}

// validFile returns a small gray file with a text record and its filtered stream.
func validFile(t *testing.T, idats int) ([]byte, []byte) {
	t.Helper()

	h := grayHeader(16, 8)
	filtered := filteredRamp(h)
	buf := newFile(h).
		header13().
		add(chunk.Type{'t', 'E', 'X', 't'}, []byte("Comment\x00fixture")).
		pixels(t, filtered, idats).
		end().
		bytes()

	return buf, filtered
}

// stdlibPNG encodes img with the standard library encoder.
func stdlibPNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func stdlibImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 9, 5))
	for y := range 5 {
		for x := range 9 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 40), B: 7, A: uint8(100 + x)})
		}
	}

	return img
}
