// Package filter converts between the filtered scanline layout stored in a PNG and
// canonical pixel bytes, and produces refiltered candidate streams.
//
// # Pipeline
//
//	img, err := filter.NewImage(header, inflated)
//	err = img.Unfilter()                // reverse per-row prediction
//	img.Canonicalize(allowGray)         // drop opaque alpha, collapse gray
//	err = img.RefilterAll(keys)         // one stream per filter strategy
//	stream, err := img.Stream(format.StrategyAdaptive)
//	img.Release()
//
// Filter strategies 0-4 apply one filter type to every row. Strategy 5 (adaptive)
// picks, per row, the filter type whose output has the smallest sum of absolute
// values when each byte is read as a signed difference; ties go to the lowest type.
//
// # Candidate store
//
// Refiltered streams are kept in a store keyed by filter strategy. The store can pack
// streams with any compress.Codec to lower resident memory on large images; Stream
// expands them on demand and is safe for concurrent use.
package filter
