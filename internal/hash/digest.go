// Package hash provides content digests used to recognize byte-identical streams.
package hash

import "github.com/cespare/xxhash/v2"

// Stream computes the xxHash64 digest of a byte stream.
func Stream(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Key identifies a stream by digest and length.
//
// The length is kept alongside the digest so that a collision would also need
// two streams of the same size.
type Key struct {
	Digest uint64
	Size   int
}

// KeyOf returns the Key of data.
func KeyOf(data []byte) Key {
	return Key{Digest: Stream(data), Size: len(data)}
}
