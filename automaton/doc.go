// Package automaton defines the Automaton capability set used to prune and
// filter transducer traversals, together with the fixed family of
// combinators built on top of it.
//
// What:
//
//   - Automaton[S]: Start, IsMatch, CanMatch and Accept over a byte alphabet.
//     S is the automaton's own state type; states are plain values and are
//     never shared between searches.
//   - Base automata: AlwaysMatch, Str (one exact key), Subsequence.
//   - Combinators: Complement, Intersection, Union, StartsWith, and Prefix
//     (StartsWith over Str).
//
// Why:
//
//   - A search walks a transducer and an automaton in lockstep. CanMatch is
//     the pruning signal: once it reports false, no continuation of the
//     current prefix can ever match and the whole subtree is skipped.
//   - Combinators compose any two automata (edit distance, regular
//     expressions, another index) without materialising their product.
//
// Semantics of the combinators:
//
//   - Complement: IsMatch negated; CanMatch is always true, because a dead
//     branch of the wrapped automaton is a live branch of its complement.
//   - Intersection: matches when both sides match; pruned as soon as either
//     side can no longer match.
//   - Union: matches when either side matches; pruned only when both sides
//     can no longer match.
//   - StartsWith: once the wrapped automaton reaches a match, the state
//     becomes Satisfied, which matches every continuation and never prunes.
//
// Complexity:
//
//   - Every combinator adds O(1) work per Accept on top of its children.
//
// Concurrency:
//
//   - Automata in this package are immutable values and may be shared by any
//     number of concurrent searches.
package automaton
