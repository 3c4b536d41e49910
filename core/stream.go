// SPDX-License-Identifier: MIT
// Package: lvfst/core
//
// stream.go: ordered, automaton-filtered traversal of a Store.
//
// Algorithm (iterative depth-first search with an explicit frame stack):
//  1. Each frame holds a node, the index of the next transition to try, the
//     output accumulated on the way to the node, and the automaton state
//     reached there. The key consumed so far lives in one shared buffer whose
//     length always equals the depth of the top frame.
//  2. Next pops frames that are exhausted or whose automaton state cannot
//     match, and otherwise follows the next transition in ascending label
//     order, pushing the child frame.
//  3. A child is emitted when its node is final and its automaton state
//     matches.
//  4. The lower bound is applied once, by seeking: the stack is built as if
//     the traversal had just consumed everything below the bound.
//  5. The upper bound is a hard stop: the first key (or prefix) past it ends
//     the stream, since everything after it in DFS order is larger.
//
// Complexity: O(depth) space; each transition is followed at most once.

package core

import (
	"bytes"

	"github.com/katalvlaran/lvfst/automaton"
)

// Streamer is a pull-based ordered stream of (key, output) pairs.
//
// The returned key aliases an internal buffer and is only valid until the
// next call to Next; copy it to retain it.
type Streamer interface {
	Next() (key []byte, out Output, ok bool)
}

// bound is one side of a range.
type bound struct {
	key       []byte
	inclusive bool
	set       bool
}

func included(k []byte) bound { return bound{key: bytes.Clone(k), inclusive: true, set: true} }
func excluded(k []byte) bound { return bound{key: bytes.Clone(k), set: true} }

// exceededBy reports whether k lies past an upper bound.
func (b bound) exceededBy(k []byte) bool {
	if !b.set {
		return false
	}
	c := bytes.Compare(k, b.key)
	if b.inclusive {
		return c > 0
	}

	return c >= 0
}

// StreamBuilder configures a search before it starts.
// For each side only the last bound set wins.
type StreamBuilder[S any] struct {
	store    *Store
	aut      automaton.Automaton[S]
	min, max bound
}

// Search starts configuring a traversal of s filtered by aut.
func Search[S any](s *Store, aut automaton.Automaton[S]) *StreamBuilder[S] {
	return &StreamBuilder[S]{store: s, aut: aut}
}

// Range starts configuring an unfiltered traversal of s.
func Range(s *Store) *StreamBuilder[struct{}] {
	return Search[struct{}](s, automaton.AlwaysMatch{})
}

// Ge restricts the stream to keys >= k.
func (b *StreamBuilder[S]) Ge(k []byte) *StreamBuilder[S] { b.min = included(k); return b }

// Gt restricts the stream to keys > k.
func (b *StreamBuilder[S]) Gt(k []byte) *StreamBuilder[S] { b.min = excluded(k); return b }

// Le restricts the stream to keys <= k.
func (b *StreamBuilder[S]) Le(k []byte) *StreamBuilder[S] { b.max = included(k); return b }

// Lt restricts the stream to keys < k.
func (b *StreamBuilder[S]) Lt(k []byte) *StreamBuilder[S] { b.max = excluded(k); return b }

// Stream creates the cursor. The builder may be reused afterwards.
func (b *StreamBuilder[S]) Stream() *Stream[S] {
	st := &Stream[S]{store: b.store, aut: b.aut, max: b.max}
	st.seekMin(b.min)

	return st
}

// frame is one level of the traversal stack.
type frame[S any] struct {
	node  Node
	trans int
	out   Output
	state S
}

// Stream is a cursor over the keys of a Store accepted by an automaton, in
// ascending byte order. It is not safe for concurrent use; run one stream per
// goroutine over a shared Store instead.
type Stream[S any] struct {
	store *Store
	aut   automaton.Automaton[S]
	max   bound

	inp   []byte
	stack []frame[S]

	emptyPending bool   // the empty key is final and still to be reported
	emptyOut     Output // its output
}

var _ Streamer = (*Stream[struct{}])(nil)

// seekMin positions the stack just before the first key >= (or >) min.
func (s *Stream[S]) seekMin(min bound) {
	root := s.store.Root()
	if !min.set || len(min.key) == 0 {
		if root.IsFinal() && (!min.set || min.inclusive) {
			s.emptyPending, s.emptyOut = true, root.FinalOutput()
		}
		s.stack = append(s.stack, frame[S]{node: root, state: s.aut.Start()})
		return
	}

	// 1) Walk the bound as far as the store allows, leaving one frame per
	//    consumed byte positioned after the byte's transition.
	node, out, state := root, Zero, s.aut.Start()
	for _, b := range min.key {
		i, ok := node.FindInput(b)
		if !ok {
			// The bound leaves the store here: resume at the first label above b.
			s.stack = append(s.stack, frame[S]{node: node, trans: node.firstAbove(b), out: out, state: state})
			return
		}
		t := node.Transition(i)
		s.stack = append(s.stack, frame[S]{node: node, trans: i + 1, out: out, state: state})
		s.inp = append(s.inp, b)
		state = s.aut.Accept(state, b)
		out = out.Add(t.Out)
		node = s.store.Node(t.Target)
	}

	// 2) The whole bound is a path in the store.
	last := len(s.stack) - 1
	if min.inclusive {
		// Re-take the last transition so the bound itself is reported.
		s.stack[last].trans--
		s.inp = s.inp[:len(s.inp)-1]
		return
	}
	// Skip the bound but keep everything that extends it.
	s.stack = append(s.stack, frame[S]{node: node, out: out, state: state})
}

// Next returns the next matching key and its output.
func (s *Stream[S]) Next() ([]byte, Output, bool) {
	if s.emptyPending {
		s.emptyPending = false
		if s.max.exceededBy(nil) {
			s.stack = s.stack[:0]
			return nil, Zero, false
		}
		if s.aut.IsMatch(s.aut.Start()) {
			return s.inp[:0], s.emptyOut, true
		}
	}

	for len(s.stack) > 0 {
		top := len(s.stack) - 1
		f := &s.stack[top]

		// 1) Exhausted or pruned: leave this node.
		if f.trans >= f.node.Len() || !s.aut.CanMatch(f.state) {
			s.stack = s.stack[:top]
			if top > 0 {
				s.inp = s.inp[:len(s.inp)-1]
			}
			continue
		}

		// 2) Follow the next transition.
		t := f.node.Transition(f.trans)
		f.trans++
		out := f.out.Add(t.Out)
		state := s.aut.Accept(f.state, t.Label)
		child := s.store.Node(t.Target)
		s.inp = append(s.inp, t.Label)
		s.stack = append(s.stack, frame[S]{node: child, out: out, state: state})

		// 3) Past the upper bound: nothing later can qualify.
		if s.max.exceededBy(s.inp) {
			s.stack = s.stack[:0]
			return nil, Zero, false
		}

		// 4) Report.
		if child.IsFinal() && s.aut.IsMatch(state) {
			return s.inp, out.Add(child.FinalOutput()), true
		}
	}

	return nil, Zero, false
}
