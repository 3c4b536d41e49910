// SPDX-License-Identifier: MIT
// Package: lvfst/core
//
// automaton.go: a Store viewed as an automaton over its own keys.

package core

import "github.com/katalvlaran/lvfst/automaton"

// StoreState is the automaton state of a Store: the node reached so far, or
// dead once the input left the store.
type StoreState struct {
	Addr Addr
	Live bool
}

var _ automaton.Automaton[StoreState] = (*Store)(nil)

// Start returns the root.
func (s *Store) Start() StoreState { return StoreState{Addr: s.root, Live: true} }

// IsMatch reports whether the input consumed so far is a key of s.
func (s *Store) IsMatch(st StoreState) bool {
	return st.Live && s.Node(st.Addr).IsFinal()
}

// CanMatch reports whether the input is still a prefix of some key.
func (s *Store) CanMatch(st StoreState) bool { return st.Live }

// Accept follows the transition labelled b.
func (s *Store) Accept(st StoreState, b byte) StoreState {
	if !st.Live {
		return st
	}
	n := s.Node(st.Addr)
	i, ok := n.FindInput(b)
	if !ok {
		return StoreState{}
	}

	return StoreState{Addr: n.Transition(i).Target, Live: true}
}
