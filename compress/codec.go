package compress

import (
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
)

// Compressor packs a byte stream.
//
// Memory management:
//   - Returned slice is owned by the caller unless documented otherwise (NoOp)
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a byte stream packed by the matching Compressor.
//
// Implementations must be safe for concurrent use; the candidate store expands
// streams from several search workers at once.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Deflater produces a zlib stream from data using tunable engine parameters.
//
// This is the engine boundary driven by the search: every trial is one Deflate
// call, and the output length is the trial's score. Implementations must be
// deterministic (identical input and params give identical output) and safe for
// concurrent use.
type Deflater interface {
	Deflate(data []byte, params DeflateParams) ([]byte, error)
}

// Inflater restores the raw bytes of a zlib stream.
//
// When limit is positive, output beyond limit bytes is not needed: implementations
// must stop inflating shortly after it and return at most limit bytes. Malformed
// input must be reported as *errs.DecompressionError.
type Inflater interface {
	Inflate(data []byte, limit int) ([]byte, error)
}

// ParamNormalizer is implemented by engines whose output depends on fewer settings
// than DeflateParams carries.
//
// EffectiveParams maps params to a representative that yields byte-identical output
// for any input of inputLen bytes. The search keys its memo on the representative.
type ParamNormalizer interface {
	EffectiveParams(params DeflateParams, inputLen int) DeflateParams
}

// Engine is a complete compression engine.
type Engine interface {
	Deflater
	Inflater
}

// CompressionStats summarizes one compression operation.
type CompressionStats struct {
	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec creates a Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ConfigError wrapping ErrUnknownCodec for an invalid type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, errs.NewConfigError(target, compressionType, errs.ErrUnknownCodec)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec for the specified compression type.
//
// Built-in codecs keep their encoders in pools and are safe to share between
// candidate stores.
//
// Returns:
//   - Codec: Shared codec instance
//   - error: ConfigError wrapping ErrUnknownCodec for an invalid type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, errs.NewConfigError("compression", compressionType, errs.ErrUnknownCodec)
}
