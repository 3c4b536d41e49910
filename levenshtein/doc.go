// Package levenshtein provides a bounded edit-distance automaton over UTF-8
// keys, for fuzzy search of a transducer.
//
// Given a query q and a distance k, New precomputes a deterministic automaton
// accepting exactly the keys whose Levenshtein distance to q, counted in
// Unicode scalar values, is at most k. Driving it alongside a transducer
// traversal prunes every branch that has already drifted more than k edits
// away, so a fuzzy search visits a tiny part of a large index.
//
// Key features:
//
//   - Distances count runes, not bytes: "snowman" and "snoman" are one edit
//     apart however the characters are encoded.
//   - Construction is bounded: the number of DFA states is capped (default
//     10000, WithStateLimit) and exceeding it fails with
//     ErrAutomatonTooLarge instead of exhausting memory.
//   - Invalid UTF-8 in a key never matches.
//   - The automaton is immutable; states are small values, so any number of
//     concurrent searches may share one automaton.
//
// Also provided: Distance, the plain two-row edit distance between two
// strings, handy for ranking fuzzy results.
//
// Example:
//
//	lev, err := levenshtein.New("woog", 1)
//	if err != nil { ... }
//	s := core.Search[levenshtein.State](store, lev).Stream()
package levenshtein
