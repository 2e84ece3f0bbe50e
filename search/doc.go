// Package search runs the exhaustive compression search over parameter combinations.
//
// For each combination the Searcher fetches the refiltered stream for its filter
// key, deflates it with the combination's engine settings and keeps the smallest
// output. A candidate replaces the current best only when it is strictly smaller,
// so on ties the earliest combination wins.
//
// With WithWorkers(n) trials run on up to n goroutines. Their outcomes are reduced
// in combination order through a reorder buffer, so the result and the sequence of
// progress callbacks are identical to a sequential run.
//
// Byte-identical streams (for example an adaptive stream that chose None on every
// row) are recognized by digest, and a trial whose stream and engine settings were
// already seen reuses the earlier output.
package search
