package compress

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/internal/pool"
)

// zlibWriterPools holds one pool per flate level, indexed by level - flate.HuffmanOnly.
// A zlib.Writer is bound to its level at construction, so writers cannot be shared
// across levels; Reset rebinds the output only.
var zlibWriterPools [MaxLevel - flate.HuffmanOnly + 1]sync.Pool

// ZlibEngine is the deflate/inflate engine backed by klauspost/compress.
//
// Strategy mapping:
//   - DeflateHuffmanOnly: flate.HuffmanOnly (no match finding)
//   - DeflateDefault, DeflateFiltered, DeflateRLE, DeflateFixed: the level's encoder
//
// klauspost/compress exposes neither memLevel nor a bounded match distance, so
// MemLevel is only validated, and WindowBits is honored in the zlib header (CINFO)
// whenever the input fits in the declared window. Larger inputs declare 32 KiB.
// EffectiveParams reports which settings produce the same stream.
type ZlibEngine struct{}

var (
	_ Engine          = ZlibEngine{}
	_ Codec           = ZlibEngine{}
	_ ParamNormalizer = ZlibEngine{}
)

// NewZlibEngine creates a new zlib engine.
func NewZlibEngine() ZlibEngine {
	return ZlibEngine{}
}

// Deflate compresses data into a zlib stream using params.
//
// Returns:
//   - []byte: Newly allocated zlib stream owned by the caller
//   - error: ConfigError for out-of-range params, or a writer error
func (e ZlibEngine) Deflate(data []byte, params DeflateParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	level := flateLevel(params)
	writers := &zlibWriterPools[level-flate.HuffmanOnly]

	bb := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(bb)

	zw, _ := writers.Get().(*zlib.Writer)
	if zw == nil {
		var err error
		if zw, err = zlib.NewWriterLevel(bb, level); err != nil {
			return nil, fmt.Errorf("zlib writer level %d: %w", level, err)
		}
	} else {
		zw.Reset(bb)
	}
	defer writers.Put(zw)

	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("zlib deflate failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib deflate failed: %w", err)
	}

	out := bytes.Clone(bb.Bytes())
	writeZlibHeader(out, params, len(data))

	return out, nil
}

// Inflate decompresses a zlib stream, verifying its Adler-32 trailer.
//
// A positive limit caps the output: at most limit+1 bytes are inflated and the
// result is truncated to limit. The trailer is only verified when the stream ends
// within the limit. A limit of 0 or less inflates everything.
func (e ZlibEngine) Inflate(data []byte, limit int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &errs.DecompressionError{Err: err}
	}
	defer zr.Close()

	var r io.Reader = zr
	bounded := limit > 0 && limit < math.MaxInt
	if bounded {
		r = io.LimitReader(zr, int64(limit)+1)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, &errs.DecompressionError{Err: err}
	}
	if bounded && len(out) > limit {
		out = out[:limit:limit]
	}

	return out, nil
}

// Compress deflates data with DefaultDeflateParams.
func (e ZlibEngine) Compress(data []byte) ([]byte, error) {
	return e.Deflate(data, DefaultDeflateParams())
}

// Decompress inflates data without a size limit.
func (e ZlibEngine) Decompress(data []byte) ([]byte, error) {
	return e.Inflate(data, 0)
}

// EffectiveParams returns the representative of the settings that Deflate treats
// identically for an input of inputLen bytes:
//   - MemLevel is always DefaultMemLevel
//   - Filtered, RLE and Fixed become Default
//   - HuffmanOnly ignores Level, which becomes 0
//   - WindowBits becomes MaxWindowBits when the input exceeds the window
//
// Invalid params are returned unchanged.
func (e ZlibEngine) EffectiveParams(params DeflateParams, inputLen int) DeflateParams {
	if params.Validate() != nil {
		return params
	}

	eff := params
	eff.MemLevel = DefaultMemLevel
	if eff.Strategy == format.DeflateHuffmanOnly {
		eff.Level = MinLevel
	} else {
		eff.Strategy = format.DeflateDefault
	}
	if eff.WindowBits < MaxWindowBits && inputLen > 1<<eff.WindowBits {
		eff.WindowBits = MaxWindowBits
	}

	return eff
}

func flateLevel(params DeflateParams) int {
	if params.Strategy == format.DeflateHuffmanOnly {
		return flate.HuffmanOnly
	}

	return params.Level
}

// writeZlibHeader rewrites the 2-byte zlib header (CMF, FLG) so that it reflects
// params rather than the writer's defaults.
//
// CINFO declares the window; it is lowered to params.WindowBits only when no
// back-reference can exceed it, i.e. when the input is no longer than the window.
// FLEVEL follows zlib's level buckets and FCHECK makes CMF*256+FLG a multiple of 31.
func writeZlibHeader(out []byte, params DeflateParams, inputLen int) {
	if len(out) < 2 {
		return
	}

	bits := params.WindowBits
	if bits < MaxWindowBits && inputLen > 1<<bits {
		bits = MaxWindowBits
	}

	cmf := byte((bits-8)<<4 | 8)

	var flevel byte
	switch {
	case params.Strategy == format.DeflateHuffmanOnly || params.Level < 2:
		flevel = 0
	case params.Level < 6:
		flevel = 1
	case params.Level == 6:
		flevel = 2
	default:
		flevel = 3
	}

	flg := flevel << 6
	if rem := (uint16(cmf)<<8 | uint16(flg)) % 31; rem != 0 {
		flg |= byte(31 - rem)
	}

	out[0] = cmf
	out[1] = flg
}
