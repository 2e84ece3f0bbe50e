package format

import "strconv"

type (
	ColorType       uint8
	FilterType      uint8
	FilterStrategy  int
	DeflateStrategy int
	CompressionType uint8
)

const (
	ColorGray      ColorType = 0 // ColorGray represents single-sample grayscale pixels.
	ColorRGB       ColorType = 2 // ColorRGB represents red, green, blue samples.
	ColorIndexed   ColorType = 3 // ColorIndexed represents palette indices.
	ColorGrayAlpha ColorType = 4 // ColorGrayAlpha represents grayscale followed by alpha.
	ColorRGBA      ColorType = 6 // ColorRGBA represents red, green, blue, alpha samples.
)

const (
	FilterNone    FilterType = 0 // FilterNone stores the row unchanged.
	FilterSub     FilterType = 1 // FilterSub predicts from the byte one pixel to the left.
	FilterUp      FilterType = 2 // FilterUp predicts from the byte directly above.
	FilterAverage FilterType = 3 // FilterAverage predicts from the mean of left and up.
	FilterPaeth   FilterType = 4 // FilterPaeth predicts with the Paeth predictor.

	NumFilterTypes = 5
)

const (
	StrategyNone     FilterStrategy = FilterStrategy(FilterNone)    // StrategyNone applies FilterNone to every row.
	StrategySub      FilterStrategy = FilterStrategy(FilterSub)     // StrategySub applies FilterSub to every row.
	StrategyUp       FilterStrategy = FilterStrategy(FilterUp)      // StrategyUp applies FilterUp to every row.
	StrategyAverage  FilterStrategy = FilterStrategy(FilterAverage) // StrategyAverage applies FilterAverage to every row.
	StrategyPaeth    FilterStrategy = FilterStrategy(FilterPaeth)   // StrategyPaeth applies FilterPaeth to every row.
	StrategyAdaptive FilterStrategy = 5                             // StrategyAdaptive picks the minimal-sum filter per row.
)

const (
	DeflateDefault     DeflateStrategy = 0 // DeflateDefault is the normal match-finding strategy.
	DeflateFiltered    DeflateStrategy = 1 // DeflateFiltered favors literals for filtered data.
	DeflateHuffmanOnly DeflateStrategy = 2 // DeflateHuffmanOnly disables match finding.
	DeflateRLE         DeflateStrategy = 3 // DeflateRLE limits matches to distance one.
	DeflateFixed       DeflateStrategy = 4 // DeflateFixed forces fixed Huffman codes.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Channels returns the number of samples per pixel, or 0 for an unknown color type.
func (c ColorType) Channels() int {
	switch c {
	case ColorGray, ColorIndexed:
		return 1
	case ColorGrayAlpha:
		return 2
	case ColorRGB:
		return 3
	case ColorRGBA:
		return 4
	default:
		return 0
	}
}

// HasAlpha reports whether the color type carries an alpha sample.
func (c ColorType) HasAlpha() bool {
	return c == ColorGrayAlpha || c == ColorRGBA
}

// IsTrueColor reports whether the color type carries separate red, green and blue samples.
func (c ColorType) IsTrueColor() bool {
	return c == ColorRGB || c == ColorRGBA
}

// IsValid reports whether c is one of the five defined color types.
func (c ColorType) IsValid() bool {
	return c.Channels() != 0
}

func (c ColorType) String() string {
	switch c {
	case ColorGray:
		return "Gray"
	case ColorRGB:
		return "RGB"
	case ColorIndexed:
		return "Indexed"
	case ColorGrayAlpha:
		return "GrayAlpha"
	case ColorRGBA:
		return "RGBA"
	default:
		return "Unknown(" + strconv.Itoa(int(c)) + ")"
	}
}

func (f FilterType) String() string {
	switch f {
	case FilterNone:
		return "None"
	case FilterSub:
		return "Sub"
	case FilterUp:
		return "Up"
	case FilterAverage:
		return "Average"
	case FilterPaeth:
		return "Paeth"
	default:
		return "Unknown(" + strconv.Itoa(int(f)) + ")"
	}
}

// IsValid reports whether f is one of the five scanline filter types.
func (f FilterType) IsValid() bool {
	return f < NumFilterTypes
}

// IsAdaptive reports whether the strategy selects a filter per row.
func (s FilterStrategy) IsAdaptive() bool {
	return s == StrategyAdaptive
}

// IsValid reports whether s is a fixed filter type or the adaptive strategy.
func (s FilterStrategy) IsValid() bool {
	return s >= StrategyNone && s <= StrategyAdaptive
}

// FilterType returns the fixed filter type of a non-adaptive strategy.
func (s FilterStrategy) FilterType() FilterType {
	return FilterType(s)
}

func (s FilterStrategy) String() string {
	if s.IsAdaptive() {
		return "Adaptive"
	}
	if !s.IsValid() {
		return "Unknown(" + strconv.Itoa(int(s)) + ")"
	}

	return s.FilterType().String()
}

// IsValid reports whether s is one of the zlib strategies.
func (s DeflateStrategy) IsValid() bool {
	return s >= DeflateDefault && s <= DeflateFixed
}

func (s DeflateStrategy) String() string {
	switch s {
	case DeflateDefault:
		return "Default"
	case DeflateFiltered:
		return "Filtered"
	case DeflateHuffmanOnly:
		return "HuffmanOnly"
	case DeflateRLE:
		return "RLE"
	case DeflateFixed:
		return "Fixed"
	default:
		return "Unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-sensitive lower-case codec name to its CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
