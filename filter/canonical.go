package filter

import (
	"bytes"

	"github.com/arloliu/pngmin/format"
)

// Canonicalize applies DropOpaqueAlpha and then, if allowGray is set, CollapseGray.
//
// It returns true if the header changed. Calling it again is a no-op.
func (img *Image) Canonicalize(allowGray bool) bool {
	changed := img.DropOpaqueAlpha()
	if allowGray && img.CollapseGray() {
		changed = true
	}

	return changed
}

// DropOpaqueAlpha removes the alpha channel when every alpha sample is fully opaque.
//
// Applies to gray+alpha and RGBA images of depth 8 or 16, which become gray and RGB
// respectively. It returns true if the alpha channel was dropped.
func (img *Image) DropOpaqueAlpha() bool {
	h := img.header
	if !img.unfiltered || !h.ColorType.HasAlpha() || h.BitDepth < 8 {
		return false
	}

	sb := h.SampleBytes()
	pixelBytes := h.BytesPerPixel()
	colorBytes := pixelBytes - sb

	for i := colorBytes; i < len(img.pixels); i += pixelBytes {
		for _, b := range img.pixels[i : i+sb] {
			if b != 0xFF {
				return false
			}
		}
	}

	img.pixels = compactPixels(img.pixels, pixelBytes, colorBytes, func(dst, px []byte) []byte {
		return append(dst, px[:colorBytes]...)
	})

	if h.ColorType == format.ColorRGBA {
		img.header = h.WithColorType(format.ColorRGB)
	} else {
		img.header = h.WithColorType(format.ColorGray)
	}

	return true
}

// CollapseGray keeps a single color sample when every pixel has equal red, green and
// blue samples.
//
// Applies to RGB and RGBA images, which become gray and gray+alpha respectively. It
// returns true if the image was collapsed.
func (img *Image) CollapseGray() bool {
	h := img.header
	if !img.unfiltered || !h.ColorType.IsTrueColor() {
		return false
	}

	sb := h.SampleBytes()
	pixelBytes := h.BytesPerPixel()

	for i := 0; i < len(img.pixels); i += pixelBytes {
		r := img.pixels[i : i+sb]
		if !bytes.Equal(r, img.pixels[i+sb:i+2*sb]) || !bytes.Equal(r, img.pixels[i+2*sb:i+3*sb]) {
			return false
		}
	}

	hasAlpha := h.ColorType.HasAlpha()
	outBytes := sb
	if hasAlpha {
		outBytes += sb
	}

	img.pixels = compactPixels(img.pixels, pixelBytes, outBytes, func(dst, px []byte) []byte {
		dst = append(dst, px[:sb]...)
		if hasAlpha {
			dst = append(dst, px[3*sb:4*sb]...)
		}

		return dst
	})

	if hasAlpha {
		img.header = h.WithColorType(format.ColorGrayAlpha)
	} else {
		img.header = h.WithColorType(format.ColorGray)
	}

	return true
}

// compactPixels rewrites src pixel by pixel in place, keeping outBytes per pixel as
// produced by keep.
//
// Output pixel i ends at (i+1)*outBytes, which never passes the start of input pixel
// i+1, so later pixels are read before they are overwritten.
func compactPixels(src []byte, pixelBytes, outBytes int, keep func(dst, px []byte) []byte) []byte {
	n := len(src) / pixelBytes
	dst := src[:0]

	for i := range n {
		px := src[i*pixelBytes : (i+1)*pixelBytes]
		dst = keep(dst, px)
	}

	return dst[:n*outBytes : n*outBytes]
}
