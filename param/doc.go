// Package param expands declarative parameter matrices into the concrete list of
// combinations evaluated by the search.
//
// A Matrix lists admissible values per field. Expand takes the cartesian product of
// the fields of each matrix, in the order filter, interlace, windowBits, level,
// memLevel, strategy, with the last field varying fastest, and concatenates the
// products of successive matrices. Matrices are never crossed with each other.
//
//	combos, err := param.Expand(param.DefaultMatrices())
//	// 2 filters x 2 memLevels x 4 strategies = 16 combinations
package param
