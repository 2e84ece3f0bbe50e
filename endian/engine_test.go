package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetNetworkEngine(t *testing.T) {
	engine := GetNetworkEngine()
	require.Equal(t, binary.BigEndian, engine)

	buf := engine.AppendUint32(nil, 0x0000000d)
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x0d}, buf)
	require.Equal(t, uint32(13), engine.Uint32(buf))
}

func TestEngines(t *testing.T) {
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())

	buf := GetBigEndianEngine().AppendUint16(nil, 0xff00)
	require.Equal(t, []byte{0xff, 0x00}, buf)
}
