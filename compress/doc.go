// Package compress provides the compression engines used by pngmin.
//
// # Overview
//
// Two families live here:
//
//  1. The deflate engine (Deflater / Inflater / Engine). Every search trial is one
//     Deflate call with a DeflateParams value, and the parser inflates IDAT data
//     through Inflate. ZlibEngine implements both on top of klauspost/compress.
//  2. Candidate codecs (Compressor / Decompressor / Codec). The filter package can
//     keep refiltered streams packed in memory while the search runs; these codecs
//     do the packing:
//     - None: streams are kept as-is (default)
//     - Zstd: smallest resident size, slowest expansion
//     - S2: balanced
//     - LZ4: fastest expansion
//
// # Deflate parameters
//
// DeflateParams mirrors zlib's deflateInit2 arguments:
//
//	params := compress.DeflateParams{WindowBits: 15, Level: 9, MemLevel: 8, Strategy: format.DeflateDefault}
//	stream, err := compress.NewZlibEngine().Deflate(filtered, params)
//
// Out-of-range parameters are rejected with an errs.ConfigError. See ZlibEngine for
// how each parameter maps onto the klauspost encoders.
//
// # Thread Safety
//
// All engines and codecs are stateless values backed by sync.Pool caches of
// encoders and are safe for concurrent use.
//
// # Custom engines
//
// Any type implementing Engine can replace ZlibEngine, for example a cgo binding to
// libz that honors memLevel and every strategy:
//
//	type libzEngine struct{}
//
//	func (libzEngine) Deflate(data []byte, p compress.DeflateParams) ([]byte, error) { ... }
//	func (libzEngine) Inflate(data []byte, limit int) ([]byte, error) { ... }
package compress
