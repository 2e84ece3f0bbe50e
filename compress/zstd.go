package compress

// MaxStoredStream bounds the size of a stream the candidate codecs will expand.
const MaxStoredStream = 1 << 31

// ZstdCompressor packs candidate streams with Zstandard.
//
// It gives the smallest resident size of the candidate codecs and is the right
// choice for very large images with many filter keys, at the cost of slower
// expansion on every trial. The implementation is selected at build time:
// klauspost/compress/zstd by default, valyala/gozstd with cgo and the
// cgozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
