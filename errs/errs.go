// Package errs defines the error taxonomy shared by every pngmin package.
//
// Errors fall into three categories, each with a sentinel usable with errors.Is:
//
//   - ErrFormat: malformed or unsupported container, header or scanline data
//   - ErrConfig: invalid parameter matrices or writer settings
//   - ErrDecompression: the compressed pixel stream could not be inflated
//
// The structured types FormatError, ConfigError and DecompressionError carry the
// context (byte offset, field name, value) needed to act on the failure, and unwrap
// to both their category sentinel and a specific sentinel such as ErrTooShort.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Category sentinels.
var (
	ErrFormat        = errors.New("format error")
	ErrConfig        = errors.New("config error")
	ErrDecompression = errors.New("decompression error")
)

// Container framing errors.
var (
	ErrTooShort         = errors.New("too short to be a PNG file")
	ErrInvalidSignature = errors.New("PNG signature missing")
	ErrIncompleteRecord = errors.New("incomplete chunk")
	ErrRecordTooLong    = errors.New("chunk too long")
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")
	ErrTooFewRecords    = errors.New("less than two chunks")
	ErrMissingHeader    = errors.New("file doesn't start with IHDR chunk")
	ErrMissingEnd       = errors.New("file does not end with IEND chunk")
	ErrDuplicateHeader  = errors.New("multiple IHDR chunks")
	ErrNonEmptyEnd      = errors.New("IEND chunk should have 0 data bytes")
	ErrNoPixelData      = errors.New("file does not contain any IDAT chunks")
	ErrInvalidBase64    = errors.New("invalid base64 input")
)

// Header validation errors.
var (
	ErrInvalidHeaderSize   = errors.New("IHDR chunk should have 13 data bytes")
	ErrInvalidDimensions   = errors.New("invalid image dimensions")
	ErrUnsupportedDepth    = errors.New("unsupported bit depth")
	ErrUnsupportedColor    = errors.New("unsupported color type")
	ErrSubByteMultiSample  = errors.New("multi-sample sub-byte images are disallowed")
	ErrMultiBytePalette    = errors.New("multi-byte palette images are disallowed")
	ErrUnsupportedCompress = errors.New("unsupported compression method")
	ErrUnsupportedFilter   = errors.New("unsupported filter method")
	ErrInterlaced          = errors.New("interlacing not supported")
)

// Scanline errors.
var (
	ErrInvalidFilterType = errors.New("bad filter type")
	ErrPixelDataTooShort = errors.New("decompressed pixel data too short")
)

// Configuration errors.
var (
	ErrNoMatrices       = errors.New("no parameter matrices")
	ErrEmptyField       = errors.New("empty parameter list")
	ErrValueOutOfRange  = errors.New("parameter value out of range")
	ErrInvalidChunkSize = errors.New("invalid maximum chunk payload size")
	ErrInvalidWorkers   = errors.New("invalid worker count")
	ErrUnknownCodec     = errors.New("unknown candidate compression")
	ErrMissingFilterKey = errors.New("no refiltered stream for filter key")
)

// NoOffset marks a FormatError that is not tied to a byte position.
const NoOffset = -1

// FormatError reports a malformed or unsupported container.
type FormatError struct {
	// Offset is the byte offset of the offending record, or NoOffset.
	Offset int
	// Field names the offending header field or scanline, if any.
	Field string
	// Value is the offending value, if any.
	Value any
	// Err is the specific sentinel.
	Err error
}

// NewFormatError creates a FormatError anchored at a byte offset.
func NewFormatError(offset int, err error) *FormatError {
	return &FormatError{Offset: offset, Err: err}
}

// NewFieldError creates a FormatError for an invalid field value.
func NewFieldError(field string, value any, err error) *FormatError {
	return &FormatError{Offset: NoOffset, Field: field, Value: value, Err: err}
}

func (e *FormatError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Field != "" {
		fmt.Fprintf(&sb, ": %s=%v", e.Field, e.Value)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&sb, " at offset 0x%x", e.Offset)
	}

	return sb.String()
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}

// ConfigError reports an invalid configuration detected before any compression work.
type ConfigError struct {
	// Matrix is the index of the offending parameter matrix, or -1.
	Matrix int
	// Field names the offending setting.
	Field string
	// Value is the offending value, if any.
	Value any
	// Err is the specific sentinel.
	Err error
}

// NewConfigError creates a ConfigError for a setting outside any matrix.
func NewConfigError(field string, value any, err error) *ConfigError {
	return &ConfigError{Matrix: -1, Field: field, Value: value, Err: err}
}

func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Matrix >= 0 {
		fmt.Fprintf(&sb, ": matrix %d", e.Matrix)
	}
	if e.Field != "" {
		if e.Value != nil {
			fmt.Fprintf(&sb, ": %s=%v", e.Field, e.Value)
		} else {
			fmt.Fprintf(&sb, ": %s", e.Field)
		}
	}

	return sb.String()
}

func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfig, e.Err}
}

// DecompressionError reports a corrupt compressed pixel stream.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string {
	return "inflate failed: " + e.Err.Error()
}

func (e *DecompressionError) Unwrap() []error {
	return []error{ErrDecompression, e.Err}
}
