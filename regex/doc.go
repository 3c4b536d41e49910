// Package regex compiles regular expressions into byte-level DFAs usable as
// transducer search automata.
//
// Patterns use Go's regexp/syntax grammar with Perl flags, so classes such as
// \d, [[:alpha:]], \pL and flags like (?i) work as they do in package regexp.
// Matching is implicitly anchored at both ends, since a search asks whether
// a whole key matches.
//
// Compilation runs in three steps:
//
//  1. Parse and simplify the pattern, rejecting empty-width assertions.
//  2. Build a Thompson NFA over bytes, splitting every rune range into the
//     byte-range sequences of its UTF-8 encodings.
//  3. Determinise by subset construction, then fold every state that can no
//     longer reach a match into the dead state 0, which lets a search prune.
//
// The DFA size is bounded (DefaultSizeLimit, WithSizeLimit); exceeding it
// fails with ErrAutomatonTooLarge.
//
// Example:
//
//	re, err := regex.New(`fo[a-z]*`)
//	if err != nil { ... }
//	s := core.Search[int](store, re).Stream()
package regex
