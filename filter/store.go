package filter

import (
	"fmt"
	"sync"

	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
)

// store maps filter strategies to refiltered streams, packed with codec.
type store struct {
	mu      sync.RWMutex
	codec   compress.Codec
	streams map[format.FilterStrategy][]byte
	sizes   map[format.FilterStrategy]int
}

func newStore(codec compress.Codec) *store {
	return &store{
		codec:   codec,
		streams: make(map[format.FilterStrategy][]byte),
		sizes:   make(map[format.FilterStrategy]int),
	}
}

func (s *store) has(key format.FilterStrategy) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.streams[key]

	return ok
}

func (s *store) put(key format.FilterStrategy, stream []byte) error {
	packed, err := s.codec.Compress(stream)
	if err != nil {
		return fmt.Errorf("pack stream for filter %s: %w", key, err)
	}

	s.mu.Lock()
	s.streams[key] = packed
	s.sizes[key] = len(stream)
	s.mu.Unlock()

	return nil
}

func (s *store) get(key format.FilterStrategy) ([]byte, error) {
	s.mu.RLock()
	packed, ok := s.streams[key]
	s.mu.RUnlock()

	if !ok {
		return nil, errs.NewConfigError("filter", key, errs.ErrMissingFilterKey)
	}

	stream, err := s.codec.Decompress(packed)
	if err != nil {
		return nil, fmt.Errorf("unpack stream for filter %s: %w", key, err)
	}

	return stream, nil
}

// resident returns the number of bytes held by packed streams.
func (s *store) resident() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, b := range s.streams {
		n += len(b)
	}

	return n
}

func (s *store) reset() {
	s.mu.Lock()
	clear(s.streams)
	clear(s.sizes)
	s.mu.Unlock()
}
