// Package builder constructs minimal finite-state transducers in the binary
// format read by package core, from keys supplied in strictly increasing
// byte order.
//
// The package offers the following key components:
//
//   - Builder: New(w) streams records to any io.Writer; Memory() keeps them
//     in memory and exposes Bytes() after Finish.
//     – Add(key, out):  key with an output.
//     – Insert(key):    key with output zero (sets).
//     – Finish():       freeze what is left, write the footer, flush.
//     – Stats():        keys, records, registry hits, bytes.
//   - One-call helpers: Build (sets) and BuildMap (maps) return a loaded
//     *core.Store.
//   - Options:
//     – WithRegistry(table, mru): suffix-sharing memo geometry; (0, 0) disables it.
//     – WithKind(tag):            user type tag stored in the header.
//     – WithLogger(l):            slog destination for debug records.
//
// Guarantees:
//
//   - Prefixes are always shared. Suffixes are shared whenever the registry
//     still remembers an identical node, which with the default geometry
//     gives a minimal or near-minimal transducer.
//   - Outputs are exact for the whole uint64 range. Each frozen node gives
//     its smallest output to the transition that enters it, so common output
//     mass sits as close to the root as possible.
//   - Nodes are written children first, so a Builder needs memory only for
//     the current key's path and the registry, never for the whole set.
//   - Fail fast: the first error poisons the builder and every later call
//     returns it. Option constructors panic on meaningless values.
//
// Errors:
//
//	ErrOutOfOrder   – key not strictly greater than the previous one.
//	ErrDuplicateKey – key equal to the previous one (also ErrOutOfOrder).
//	ErrFinished     – call after a successful Finish.
//	write errors from the underlying io.Writer are wrapped with %w.
package builder
