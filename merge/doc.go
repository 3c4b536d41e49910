// Package merge combines ordered key streams with set operations.
//
// Any number of core.Streamer sources, typically searches or ranges over
// different stores, are merged in a single pass by a min-heap of their
// current keys:
//
//   - Union: keys in at least one source.
//   - Intersection: keys in every source.
//   - Difference: keys of the first source in no other source.
//   - SymmetricDifference: keys in an odd number of sources.
//
// Each emitted key carries the outputs it has in the sources that hold it,
// tagged with the source index and ordered by it. Flatten folds those into
// one output per key (Sum, First, Last, Min, or any FoldFunc), giving a
// plain core.Streamer again.
//
// Streams are pull-based and start no goroutines: stopping early is just
// not calling Next again.
//
// Example:
//
//	s := merge.NewOpBuilder().
//		Add(core.Range(a).Stream(), core.Range(b).Stream()).
//		Union()
//	for k, outs := range merge.All(s) {
//		fmt.Println(string(k), outs)
//	}
package merge
