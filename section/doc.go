// Package section defines the fixed-size IHDR section of a PNG file and the pixel
// geometry derived from it.
//
// The IHDR payload is always 13 bytes:
//
//	┌──────────┬──────────┬───────┬───────┬─────────────┬────────┬───────────┐
//	│ width    │ height   │ depth │ color │ compression │ filter │ interlace │
//	│ 4 (BE)   │ 4 (BE)   │ 1     │ 1     │ 1           │ 1      │ 1         │
//	└──────────┴──────────┴───────┴───────┴─────────────┴────────┴───────────┘
//
// Header.Parse validates every field and reports the first violation as an
// errs.FormatError naming the field and its value. Header.Bytes serializes the
// header back into the same layout.
//
// The geometry helpers (BytesPerPixel, RowBytes, FilteredSize) give the scanline
// layout used by the filter package: each row is one filter-type byte followed by
// RowBytes pixel bytes, and BytesPerPixel is the distance used by the Sub, Average
// and Paeth predictors (rounded up to 1 for sub-byte depths).
package section
