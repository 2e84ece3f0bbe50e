package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetByteSlice(t *testing.T) {
	s, cleanup := GetByteSlice(10)
	require.Len(t, s, 10)
	for i := range s {
		s[i] = 0xff
	}
	cleanup()

	s, cleanup = GetByteSlice(5)
	defer cleanup()
	require.Len(t, s, 5)
	require.Equal(t, make([]byte, 5), s)
}
