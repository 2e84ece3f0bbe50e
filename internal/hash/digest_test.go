package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStream(t *testing.T) {
	a := []byte{0, 1, 2, 3, 4, 5}
	b := []byte{0, 1, 2, 3, 4, 6}

	require.Equal(t, Stream(a), Stream(append([]byte(nil), a...)))
	require.NotEqual(t, Stream(a), Stream(b))

	// Known xxHash64 value of the empty input.
	require.Equal(t, uint64(0xef46db3751d8e999), Stream(nil))
	require.Equal(t, uint64(0x4fdcca5ddb678139), Stream([]byte("test")))
}

func TestKeyOf(t *testing.T) {
	k := KeyOf([]byte("scanline"))
	require.Equal(t, 8, k.Size)
	require.Equal(t, Stream([]byte("scanline")), k.Digest)
	require.Equal(t, k, KeyOf([]byte("scanline")))
	require.NotEqual(t, k, KeyOf([]byte("scanlinf")))
}
