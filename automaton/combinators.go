// SPDX-License-Identifier: MIT
// Package: lvfst/automaton
//
// combinators.go: complement, intersection, union and starts-with.
//
// The combinator set is closed: these four (plus Prefix, which is
// StartsWith over Str) are the only ways automata are composed. Each
// combinator is a small generic struct whose state is a plain value built
// from its children's states, so composing never allocates per byte.

package automaton

// Pair is the state of a binary combinator: one state per child.
type Pair[SA, SB any] struct {
	A SA
	B SB
}

// ComplementAutomaton matches exactly the keys its inner automaton rejects.
type ComplementAutomaton[S any] struct {
	inner Automaton[S]
}

// Complement returns the complement of a.
//
// CanMatch of the result is always true: a branch the inner automaton has
// given up on is, under complement, a branch where every key matches.
func Complement[S any](a Automaton[S]) *ComplementAutomaton[S] {
	return &ComplementAutomaton[S]{inner: a}
}

// Start returns the inner start state.
func (c *ComplementAutomaton[S]) Start() S { return c.inner.Start() }

// IsMatch negates the inner automaton.
func (c *ComplementAutomaton[S]) IsMatch(s S) bool { return !c.inner.IsMatch(s) }

// CanMatch is always true.
func (c *ComplementAutomaton[S]) CanMatch(S) bool { return true }

// Accept delegates to the inner automaton.
func (c *ComplementAutomaton[S]) Accept(s S, b byte) S { return c.inner.Accept(s, b) }

// IntersectionAutomaton matches keys accepted by both children.
type IntersectionAutomaton[SA, SB any] struct {
	a Automaton[SA]
	b Automaton[SB]
}

// Intersection returns the product automaton accepting keys matched by both
// a and b.
func Intersection[SA, SB any](a Automaton[SA], b Automaton[SB]) *IntersectionAutomaton[SA, SB] {
	return &IntersectionAutomaton[SA, SB]{a: a, b: b}
}

// Start pairs both start states.
func (x *IntersectionAutomaton[SA, SB]) Start() Pair[SA, SB] {
	return Pair[SA, SB]{A: x.a.Start(), B: x.b.Start()}
}

// IsMatch requires both children to match.
func (x *IntersectionAutomaton[SA, SB]) IsMatch(s Pair[SA, SB]) bool {
	return x.a.IsMatch(s.A) && x.b.IsMatch(s.B)
}

// CanMatch is false as soon as either child can no longer match. IsMatch
// needs both children, so a branch one child has given up on can never be
// accepted; pruning it changes no result. Do not relax this to "both
// children dead", which only slows searches down.
func (x *IntersectionAutomaton[SA, SB]) CanMatch(s Pair[SA, SB]) bool {
	return x.a.CanMatch(s.A) && x.b.CanMatch(s.B)
}

// Accept advances both children.
func (x *IntersectionAutomaton[SA, SB]) Accept(s Pair[SA, SB], b byte) Pair[SA, SB] {
	return Pair[SA, SB]{A: x.a.Accept(s.A, b), B: x.b.Accept(s.B, b)}
}

// UnionAutomaton matches keys accepted by either child.
type UnionAutomaton[SA, SB any] struct {
	a Automaton[SA]
	b Automaton[SB]
}

// Union returns the product automaton accepting keys matched by a or b.
func Union[SA, SB any](a Automaton[SA], b Automaton[SB]) *UnionAutomaton[SA, SB] {
	return &UnionAutomaton[SA, SB]{a: a, b: b}
}

// Start pairs both start states.
func (u *UnionAutomaton[SA, SB]) Start() Pair[SA, SB] {
	return Pair[SA, SB]{A: u.a.Start(), B: u.b.Start()}
}

// IsMatch requires either child to match.
func (u *UnionAutomaton[SA, SB]) IsMatch(s Pair[SA, SB]) bool {
	return u.a.IsMatch(s.A) || u.b.IsMatch(s.B)
}

// CanMatch is false only when both children can no longer match.
func (u *UnionAutomaton[SA, SB]) CanMatch(s Pair[SA, SB]) bool {
	return u.a.CanMatch(s.A) || u.b.CanMatch(s.B)
}

// Accept advances both children.
func (u *UnionAutomaton[SA, SB]) Accept(s Pair[SA, SB], b byte) Pair[SA, SB] {
	return Pair[SA, SB]{A: u.a.Accept(s.A, b), B: u.b.Accept(s.B, b)}
}

// StartsWithState is either Pending (still running the inner automaton) or
// Satisfied (a prefix already matched). Satisfied is absorbing.
type StartsWithState[S any] struct {
	Satisfied bool
	Inner     S // meaningful only while pending
}

// StartsWithAutomaton matches every key that has a prefix accepted by its
// inner automaton.
type StartsWithAutomaton[S any] struct {
	inner Automaton[S]
}

// StartsWith returns an automaton matching all extensions of keys matched by a.
func StartsWith[S any](a Automaton[S]) *StartsWithAutomaton[S] {
	return &StartsWithAutomaton[S]{inner: a}
}

// Prefix returns an automaton matching every key that starts with prefix.
func Prefix(prefix string) *StartsWithAutomaton[int] {
	return StartsWith[int](Str(prefix))
}

// Start is Satisfied right away when the inner automaton accepts the empty key.
func (w *StartsWithAutomaton[S]) Start() StartsWithState[S] {
	return w.wrap(w.inner.Start())
}

// IsMatch holds once Satisfied.
func (w *StartsWithAutomaton[S]) IsMatch(s StartsWithState[S]) bool { return s.Satisfied }

// CanMatch never prunes a satisfied state and defers to the inner automaton otherwise.
func (w *StartsWithAutomaton[S]) CanMatch(s StartsWithState[S]) bool {
	return s.Satisfied || w.inner.CanMatch(s.Inner)
}

// Accept keeps Satisfied and otherwise advances the inner automaton.
func (w *StartsWithAutomaton[S]) Accept(s StartsWithState[S], b byte) StartsWithState[S] {
	if s.Satisfied {
		return s
	}

	return w.wrap(w.inner.Accept(s.Inner, b))
}

// wrap turns an inner state into Pending or Satisfied.
func (w *StartsWithAutomaton[S]) wrap(inner S) StartsWithState[S] {
	if w.inner.IsMatch(inner) {
		return StartsWithState[S]{Satisfied: true}
	}

	return StartsWithState[S]{Inner: inner}
}
