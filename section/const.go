package section

const (
	// HeaderSize is the IHDR payload size in bytes.
	HeaderSize = 13
	// MaxDimension is the largest legal width or height.
	MaxDimension = 1<<31 - 1
)

// Fixed method values; zero is the only method defined for each.
const (
	CompressionDeflate = 0
	FilterAdaptive     = 0
	InterlaceNone      = 0
)
