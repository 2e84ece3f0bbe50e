package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColorType_Channels(t *testing.T) {
	tests := []struct {
		color    ColorType
		channels int
		alpha    bool
	}{
		{ColorGray, 1, false},
		{ColorRGB, 3, false},
		{ColorIndexed, 1, false},
		{ColorGrayAlpha, 2, true},
		{ColorRGBA, 4, true},
		{ColorType(1), 0, false},
		{ColorType(7), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.color.String(), func(t *testing.T) {
			require.Equal(t, tt.channels, tt.color.Channels())
			require.Equal(t, tt.alpha, tt.color.HasAlpha())
			require.Equal(t, tt.channels != 0, tt.color.IsValid())
		})
	}
}

func TestFilterStrategy(t *testing.T) {
	require.True(t, StrategyAdaptive.IsAdaptive())
	require.False(t, StrategyPaeth.IsAdaptive())
	require.True(t, StrategyAdaptive.IsValid())
	require.False(t, FilterStrategy(6).IsValid())
	require.False(t, FilterStrategy(-1).IsValid())
	require.Equal(t, FilterSub, StrategySub.FilterType())
	require.Equal(t, "Adaptive", StrategyAdaptive.String())
	require.Equal(t, "Paeth", StrategyPaeth.String())
	require.Equal(t, "Unknown(9)", FilterStrategy(9).String())
}

func TestDeflateStrategy(t *testing.T) {
	require.True(t, DeflateFixed.IsValid())
	require.False(t, DeflateStrategy(5).IsValid())
	require.Equal(t, "HuffmanOnly", DeflateHuffmanOnly.String())
}

func TestParseCompressionType(t *testing.T) {
	for name, want := range map[string]CompressionType{
		"":     CompressionNone,
		"none": CompressionNone,
		"zstd": CompressionZstd,
		"s2":   CompressionS2,
		"lz4":  CompressionLZ4,
	} {
		got, ok := ParseCompressionType(name)
		require.True(t, ok, name)
		require.Equal(t, want, got)
	}

	_, ok := ParseCompressionType("brotli")
	require.False(t, ok)
}
