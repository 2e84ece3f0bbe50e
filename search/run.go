package search

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/internal/hash"
	"github.com/arloliu/pngmin/param"
)

// outcome is the result of one trial before reduction.
type outcome struct {
	index      int
	combo      param.Combination
	compressed []byte
	inputSize  int
	memoHit    bool
	err        error
}

// run holds the state shared by the trials of one Search call.
type run struct {
	s   *Searcher
	src Source
	red *reducer

	digestMu sync.Mutex
	digests  map[format.FilterStrategy]hash.Key

	memoMu sync.Mutex
	memo   map[memoKey][]byte
	flight singleflight.Group
}

// memoKey identifies a trial output by stream content and the engine settings that
// affect it.
type memoKey struct {
	stream hash.Key
	params compress.DeflateParams
}

func (k memoKey) String() string {
	return fmt.Sprintf("%016x/%d/%s", k.stream.Digest, k.stream.Size, k.params)
}

func newRun(s *Searcher, src Source, n int) *run {
	return &run{
		s:       s,
		src:     src,
		red:     newReducer(n, s.progress),
		digests: make(map[format.FilterStrategy]hash.Key),
		memo:    make(map[memoKey][]byte),
	}
}

// trial compresses the stream of c.Filter with the engine settings of c.
func (r *run) trial(idx int, c param.Combination) outcome {
	out := outcome{index: idx, combo: c}

	stream, err := r.src.Stream(c.Filter)
	if err != nil {
		out.err = err
		return out
	}
	out.inputSize = len(stream)

	params := c.DeflateParams()
	if !r.s.memo {
		out.compressed, out.err = r.deflate(stream, params, idx)
		return out
	}

	effective := params
	if n, ok := r.s.engine.(compress.ParamNormalizer); ok {
		effective = n.EffectiveParams(params, len(stream))
	}
	key := memoKey{stream: r.digest(c.Filter, stream), params: effective}

	r.memoMu.Lock()
	cached, ok := r.memo[key]
	r.memoMu.Unlock()
	if ok {
		out.compressed, out.memoHit = cached, true
		return out
	}

	v, err, _ := r.flight.Do(key.String(), func() (any, error) {
		compressed, err := r.deflate(stream, params, idx)
		if err != nil {
			return nil, err
		}

		r.memoMu.Lock()
		r.memo[key] = compressed
		r.memoMu.Unlock()

		return compressed, nil
	})
	if err != nil {
		out.err = err
		return out
	}

	out.compressed, _ = v.([]byte)

	return out
}

func (r *run) deflate(stream []byte, params compress.DeflateParams, idx int) ([]byte, error) {
	compressed, err := r.s.engine.Deflate(stream, params)
	if err != nil {
		return nil, fmt.Errorf("trial %d (%s): %w", idx, params, err)
	}

	return compressed, nil
}

// digest returns the content key of the stream for filter, computing it once.
func (r *run) digest(filter format.FilterStrategy, stream []byte) hash.Key {
	r.digestMu.Lock()
	defer r.digestMu.Unlock()

	if k, ok := r.digests[filter]; ok {
		return k
	}
	k := hash.KeyOf(stream)
	r.digests[filter] = k

	return k
}
