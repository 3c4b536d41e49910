// Package core provides the immutable transducer store at the heart of lvfst:
// a minimal acyclic finite-state transducer mapping byte-string keys to
// uint64 outputs, serialized in one contiguous buffer.
//
// What:
//
//   - Store: Load a buffer produced by package builder, then Get, Contains,
//     Len, and navigate it node by node (Root, Node, FindInput, Transition).
//   - Search/Range: ordered traversal of the keys, optionally bounded
//     (Ge/Gt/Le/Lt) and filtered by any automaton.Automaton[S].
//   - A Store is itself an automaton over its own keys (StoreState), so one
//     index can filter a search over another.
//   - All, Keys, Collect: range-over-func adapters for any Streamer.
//
// Why:
//
//   - Keys sharing prefixes share paths and keys sharing suffixes share
//     nodes, so large sorted key sets occupy a small fraction of their raw
//     size while staying directly searchable without decompression.
//   - Outputs are distributed along paths: the value of a key is the sum of
//     the outputs of its transitions plus the final output of its last node.
//
// Binary layout (version 1, little endian):
//
//	header : "LVFS" | version u32 | kind u64
//	nodes  : children before parents; node address = byte offset
//	footer : key count u64 | root address u64 | xxhash64 of all previous bytes
//
// See format.go for the node record.
//
// Traversal semantics:
//
//	Keys are produced in ascending byte order. A subtree is skipped as soon as
//	the automaton reports CanMatch == false; a key is produced when its node is
//	final and the automaton reports IsMatch. The lower bound is applied by
//	seeking, the upper bound ends the stream at the first key past it.
//
// Complexity:
//
//   - Load: O(n) for the checksum (hashing only, no decoding).
//   - Get/Contains: O(|key| · log σ), σ ≤ 256.
//   - Stream: O(depth) memory; every transition is followed at most once.
//
// Errors:
//
//	ErrCorrupt   – any invalid buffer; joined with one of
//	ErrTruncated, ErrBadMagic, ErrVersion, ErrBadRoot, ErrChecksum, ErrBadNode.
//
// Concurrency:
//
//	A Store is read-only and safe for any number of goroutines. A Stream is a
//	single-goroutine cursor.
package core
