package search

import "sync"

// reducer folds trial outcomes in index order, whatever order they arrive in.
//
// Outcomes ahead of the next expected index wait in pending. Each fold replaces
// the best only on a strictly smaller output, and progress is reported as each
// index is folded, so both follow the combination order.
type reducer struct {
	mu       sync.Mutex
	pending  map[int]outcome
	next     int
	progress ProgressFunc

	best     outcome
	hasBest  bool
	trials   int
	memoHits int
}

func newReducer(n int, progress ProgressFunc) *reducer {
	return &reducer{
		pending:  make(map[int]outcome, min(n, 64)),
		progress: progress,
	}
}

func (r *reducer) submit(out outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending[out.index] = out
	for {
		o, ok := r.pending[r.next]
		if !ok {
			return
		}
		delete(r.pending, r.next)
		r.fold(o)
		r.next++
	}
}

func (r *reducer) fold(o outcome) {
	r.trials++
	if o.memoHit {
		r.memoHits++
	}

	if !r.hasBest || len(o.compressed) < len(r.best.compressed) {
		r.best = o
		r.hasBest = true
	}

	if r.progress != nil {
		r.progress(Trial{
			Index:       o.index,
			Combination: o.combo,
			InputSize:   o.inputSize,
			OutputSize:  len(o.compressed),
		})
	}
}

func (r *reducer) result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Result{
		Index:       r.best.index,
		Combination: r.best.combo,
		Compressed:  r.best.compressed,
		Size:        len(r.best.compressed),
		InputSize:   r.best.inputSize,
		Trials:      r.trials,
		MemoHits:    r.memoHits,
	}
}
