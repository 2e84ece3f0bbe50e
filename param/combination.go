package param

import (
	"fmt"

	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
)

// Combination is one concrete assignment of filter and engine settings.
type Combination struct {
	Filter     format.FilterStrategy
	Interlace  int
	WindowBits int
	Level      int
	MemLevel   int
	Strategy   format.DeflateStrategy
}

// DeflateParams returns the engine part of the combination.
func (c Combination) DeflateParams() compress.DeflateParams {
	return compress.DeflateParams{
		WindowBits: c.WindowBits,
		Level:      c.Level,
		MemLevel:   c.MemLevel,
		Strategy:   c.Strategy,
	}
}

func (c Combination) String() string {
	return fmt.Sprintf("filter=%d interlace=%d windowBits=%d level=%d memLevel=%d strategy=%d",
		c.Filter, c.Interlace, c.WindowBits, c.Level, c.MemLevel, c.Strategy)
}

// Expand returns the concatenated cartesian products of matrices.
//
// Within a matrix the last field (strategy) varies fastest. Repeated values inside a
// field list are collapsed, keeping the first occurrence, so one matrix never yields
// the same combination twice; identical combinations from different matrices are
// all kept.
//
// Returns:
//   - []Combination: Combinations in evaluation order
//   - error: ConfigError when matrices is empty, a field list is empty, or a value is
//     out of range
func Expand(matrices []Matrix) ([]Combination, error) {
	if len(matrices) == 0 {
		return nil, errs.NewConfigError("matrices", nil, errs.ErrNoMatrices)
	}

	total := 0
	for i, m := range matrices {
		if err := m.validate(i); err != nil {
			return nil, err
		}
		total += m.Size()
	}

	combos := make([]Combination, 0, total)
	for _, m := range matrices {
		combos = expandOne(combos, m)
	}

	return combos, nil
}

func expandOne(dst []Combination, m Matrix) []Combination {
	filters := uniq(m.Filter)
	interlaces := uniq(m.Interlace)
	windows := uniq(m.WindowBits)
	levels := uniq(m.Level)
	memLevels := uniq(m.MemLevel)
	strategies := uniq(m.Strategy)

	for _, f := range filters {
		for _, il := range interlaces {
			for _, wb := range windows {
				for _, lv := range levels {
					for _, ml := range memLevels {
						for _, st := range strategies {
							dst = append(dst, Combination{
								Filter:     format.FilterStrategy(f),
								Interlace:  il,
								WindowBits: wb,
								Level:      lv,
								MemLevel:   ml,
								Strategy:   format.DeflateStrategy(st),
							})
						}
					}
				}
			}
		}
	}

	return dst
}

// FilterKeys returns the distinct filter strategies referenced by combos, in
// first-seen order.
func FilterKeys(combos []Combination) []format.FilterStrategy {
	var keys []format.FilterStrategy
	seen := make(map[format.FilterStrategy]struct{}, format.NumFilterTypes+1)

	for _, c := range combos {
		if _, ok := seen[c.Filter]; ok {
			continue
		}
		seen[c.Filter] = struct{}{}
		keys = append(keys, c.Filter)
	}

	return keys
}
