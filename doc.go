// Package lvfst is a library for compact, immutable, ordered indexes of
// byte-string keys, built as minimal acyclic finite-state transducers.
//
// What is lvfst?
//
//	A sorted set of keys, or a map from keys to uint64 values, compiled
//	into one contiguous buffer that you can write to disk, load back
//	instantly and query without unpacking:
//		• Point lookups and ordered range scans
//		• Fuzzy search within an edit distance, counted in Unicode characters
//		• Regular-expression search
//		• Any automaton you write, and combinations of automata
//		• Union, intersection and differences across many indexes in one pass
//
// Why lvfst?
//
//   - Small: keys sharing prefixes share paths and keys sharing suffixes
//     share nodes, so a large word list often takes less space than the
//     plain text.
//   - Fast searches: an automaton drives the traversal and prunes every
//     branch that can no longer match.
//   - Safe to share: indexes are immutable and hold no locks; any number of
//     goroutines may query one concurrently.
//   - Checked: files carry a checksum verified on load.
//
// Everything is organized under these packages:
//
//	core/        - the Store, its binary format, ordered search streams
//	builder/     - streaming construction with suffix sharing
//	automaton/   - the Automaton contract and combinators
//	levenshtein/ - bounded edit-distance automaton
//	regex/       - regular expressions compiled to byte-level DFAs
//	merge/       - k-way set operations over streams
//	index/       - Set and Map views, with OpenTelemetry instrumentation
//	cmd/lvfst    - command-line tool over all of the above
//
// Quick ASCII example: the set {mon, tues, thurs} shares its "t" prefix and
// its "s" suffix:
//
//	(root)─m─o─n──────────┐
//	   └───t─┬─u─e────s──(final)
//	         └─h─u─r──┘
//
//	go get github.com/katalvlaran/lvfst
package lvfst
