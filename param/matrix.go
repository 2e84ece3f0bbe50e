package param

import (
	"github.com/arloliu/pngmin/compress"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
)

// Matrix is one declarative block of admissible values per field.
type Matrix struct {
	Filter     []int `yaml:"filter" json:"filter"`
	Interlace  []int `yaml:"interlace" json:"interlace"`
	WindowBits []int `yaml:"windowBits" json:"windowBits"`
	Level      []int `yaml:"level" json:"level"`
	MemLevel   []int `yaml:"memLevel" json:"memLevel"`
	Strategy   []int `yaml:"strategy" json:"strategy"`
}

// DefaultMatrices returns the grid used when no matrices are configured: fixed None
// and adaptive filtering at maximum level, both memory levels, and the four main
// deflate strategies.
func DefaultMatrices() []Matrix {
	return []Matrix{{
		Filter:     []int{int(format.StrategyNone), int(format.StrategyAdaptive)},
		Interlace:  []int{0},
		WindowBits: []int{compress.MaxWindowBits},
		Level:      []int{compress.MaxLevel},
		MemLevel:   []int{8, 9},
		Strategy: []int{
			int(format.DeflateDefault), int(format.DeflateFiltered),
			int(format.DeflateHuffmanOnly), int(format.DeflateRLE),
		},
	}}
}

type field struct {
	name     string
	values   []int
	min, max int
}

func (m Matrix) fields() [6]field {
	return [6]field{
		{"filter", m.Filter, int(format.StrategyNone), int(format.StrategyAdaptive)},
		{"interlace", m.Interlace, 0, 0},
		{"windowBits", m.WindowBits, compress.MinWindowBits, compress.MaxWindowBits},
		{"level", m.Level, compress.MinLevel, compress.MaxLevel},
		{"memLevel", m.MemLevel, compress.MinMemLevel, compress.MaxMemLevel},
		{"strategy", m.Strategy, int(format.DeflateDefault), int(format.DeflateFixed)},
	}
}

// Size returns the number of combinations the matrix expands to, ignoring
// duplicate values.
func (m Matrix) Size() int {
	n := 1
	for _, f := range m.fields() {
		n *= len(uniq(f.values))
	}

	return n
}

// validate checks every field of the matrix at position idx.
func (m Matrix) validate(idx int) error {
	for _, f := range m.fields() {
		if len(f.values) == 0 {
			return &errs.ConfigError{Matrix: idx, Field: f.name, Err: errs.ErrEmptyField}
		}

		for _, v := range f.values {
			if v < f.min || v > f.max {
				return &errs.ConfigError{Matrix: idx, Field: f.name, Value: v, Err: errs.ErrValueOutOfRange}
			}
		}
	}

	return nil
}

// uniq returns values with repeats removed, keeping first occurrences in order.
func uniq(values []int) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		dup := false
		for _, seen := range out {
			if seen == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}

	return out
}
