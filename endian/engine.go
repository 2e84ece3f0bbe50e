// Package endian provides the byte order engine used for PNG binary fields.
//
// PNG stores every multi-byte integer (chunk lengths, CRCs, IHDR dimensions, 16-bit
// samples) in network byte order. The EndianEngine interface combines the
// ByteOrder and AppendByteOrder interfaces from encoding/binary so that readers
// and writers of the container can share one value:
//
//	engine := endian.GetNetworkEngine()
//	length := engine.Uint32(buf[0:4])
//	out = engine.AppendUint32(out, crc)
//
// All functions and methods in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetNetworkEngine returns the engine for PNG fields (big-endian).
func GetNetworkEngine() EndianEngine {
	return binary.BigEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
