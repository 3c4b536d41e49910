// SPDX-License-Identifier: MIT
// Package: lvfst/index
//
// search.go: automaton searches over either view.

package index

import (
	"github.com/katalvlaran/lvfst/automaton"
	"github.com/katalvlaran/lvfst/core"
)

// View is a Set or a Map.
type View interface {
	Store() *core.Store
	Len() int
}

var (
	_ View = (*Set)(nil)
	_ View = (*Map)(nil)
)

// Search returns a builder for the keys of v accepted by aut, in order,
// with their outputs. Add bounds with Ge/Gt/Le/Lt, then call Stream.
//
// The state type usually has to be spelled out:
//
//	index.Search[levenshtein.State](m, lev)
func Search[S any](v View, aut automaton.Automaton[S]) *core.StreamBuilder[S] {
	return core.Search(v.Store(), aut)
}
