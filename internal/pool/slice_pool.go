package pool

import "sync"

var byteSlicePool = sync.Pool{
	New: func() any { return &[]byte{} },
}

// GetByteSlice retrieves a zeroed byte slice of the given length from the pool.
//
// The caller must call the returned cleanup function to return the slice to the pool.
//
// Example:
//
//	scratch, cleanup := pool.GetByteSlice(rowBytes * 5)
//	defer cleanup()
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := byteSlicePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
	} else {
		slice = slice[:size]
		clear(slice)
	}
	*ptr = slice

	return slice, func() { byteSlicePool.Put(ptr) }
}
