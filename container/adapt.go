package container

import (
	"bytes"

	"github.com/arloliu/pngmin/chunk"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/section"
)

// adapter translates a color-dependent payload from one header to another.
// It returns false if the record must be dropped.
type adapter func(data []byte, from, to section.Header) ([]byte, bool)

var adapters = map[chunk.Type]adapter{
	chunk.TypeTRNS: adaptTransparency,
	chunk.TypeBKGD: adaptBackground,
	chunk.TypeSBIT: adaptSignificantBits,
	chunk.TypePLTE: dropWhenGray,
	chunk.TypeHIST: dropWhenGray,
}

// adaptRecord appends rec translated for the new header, or nothing if it is dropped.
// Records without an adapter, and records the adapter leaves unchanged, are copied
// verbatim.
func adaptRecord(dst []byte, rec chunk.Record, from, to section.Header) []byte {
	adapt, ok := adapters[rec.Type]
	if !ok {
		return chunk.AppendRecord(dst, rec)
	}

	data, keep := adapt(rec.Data, from, to)
	switch {
	case !keep:
		return dst
	case bytes.Equal(data, rec.Data):
		return chunk.AppendRecord(dst, rec)
	default:
		return chunk.Append(dst, rec.Type, data)
	}
}

// GrayCompatible reports whether the records allow collapsing an RGB image to
// grayscale: a bKGD color, if any, must itself be gray.
func GrayCompatible(records []chunk.Record) bool {
	for _, rec := range records {
		if rec.Type == chunk.TypeBKGD && len(rec.Data) == 6 && !isGrayRGB(rec.Data) {
			return false
		}
	}

	return true
}

// isGrayRGB reports whether a 6-byte 16-bit RGB triple has equal samples.
func isGrayRGB(data []byte) bool {
	return bytes.Equal(data[0:2], data[2:4]) && bytes.Equal(data[0:2], data[4:6])
}

func becomesGray(from, to section.Header) bool {
	return from.ColorType.IsTrueColor() && !to.ColorType.IsTrueColor()
}

// adaptTransparency handles tRNS. A transparent RGB color becomes a gray level when
// it is gray; otherwise no gray pixel can match it and the record is dropped. Types
// with an alpha channel cannot carry tRNS.
func adaptTransparency(data []byte, from, to section.Header) ([]byte, bool) {
	if to.ColorType.HasAlpha() {
		return nil, false
	}
	if !becomesGray(from, to) {
		return data, true
	}
	if len(data) != 6 || !isGrayRGB(data) {
		return nil, false
	}

	return data[0:2], true
}

// adaptBackground handles bKGD, which is 6 bytes for truecolor and 2 for gray.
func adaptBackground(data []byte, from, to section.Header) ([]byte, bool) {
	if !becomesGray(from, to) {
		return data, true
	}
	if len(data) != 6 || !isGrayRGB(data) {
		return nil, false
	}

	return data[0:2], true
}

// adaptSignificantBits handles sBIT, which has one byte per channel. Gray takes the
// largest of the color values; alpha is kept only if the new type has alpha.
func adaptSignificantBits(data []byte, from, to section.Header) ([]byte, bool) {
	if len(data) != from.Channels() {
		return nil, false
	}

	colorCh := from.Channels()
	if from.ColorType.HasAlpha() {
		colorCh--
	}

	out := make([]byte, 0, to.Channels())
	if becomesGray(from, to) {
		out = append(out, max(data[0], data[1], data[2]))
	} else {
		out = append(out, data[:colorCh]...)
	}
	if to.ColorType.HasAlpha() {
		out = append(out, data[colorCh])
	}

	return out, true
}

// dropWhenGray drops records that only exist for palette or truecolor images.
func dropWhenGray(data []byte, from, to section.Header) ([]byte, bool) {
	if to.ColorType == format.ColorGray || to.ColorType == format.ColorGrayAlpha {
		return nil, false
	}

	return data, true
}
