// SPDX-License-Identifier: MIT
// Package: lvfst/index
//
// set.go: an ordered set of byte-string keys.

package index

import (
	"slices"

	"github.com/katalvlaran/lvfst/builder"
	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/merge"
)

// Set is an immutable ordered set of keys backed by a transducer whose
// outputs are all zero. It is safe for concurrent use.
type Set struct {
	st *core.Store
}

// NewSet builds a set from strictly increasing keys.
func NewSet[K builder.Key](keys []K, opts ...builder.Option) (*Set, error) {
	st, err := observe("build", "set", func() (*core.Store, error) {
		return builder.Build(keys, withKind(opts, KindSet)...)
	})
	if err != nil {
		return nil, err
	}

	return &Set{st: st}, nil
}

// NewSetFromUnsorted builds a set from keys in any order, with duplicates
// collapsed. keys is not modified.
func NewSetFromUnsorted[K builder.Key](keys []K, opts ...builder.Option) (*Set, error) {
	sorted := make([]string, len(keys))
	for i, k := range keys {
		sorted[i] = string(k)
	}
	slices.Sort(sorted)

	return NewSet(slices.Compact(sorted), opts...)
}

// NewSetFromStream builds a set from the keys of an ordered stream, such
// as a search or a flattened merge. Outputs are dropped.
func NewSetFromStream(s core.Streamer, opts ...builder.Option) (*Set, error) {
	st, err := observe("build", "set", func() (*core.Store, error) {
		b := builder.Memory(withKind(opts, KindSet)...)
		for k := range core.Keys(s) {
			if err := b.Insert(k); err != nil {
				return nil, err
			}
		}
		return finish(b)
	})
	if err != nil {
		return nil, err
	}

	return &Set{st: st}, nil
}

// LoadSet opens a serialized set. data is retained, not copied.
//
// Errors: core.ErrCorrupt for damaged input, ErrKind for a map.
func LoadSet(data []byte, opts ...core.LoadOption) (*Set, error) {
	st, err := observe("load", "set", func() (*core.Store, error) {
		st, err := core.Load(data, opts...)
		if err != nil {
			return nil, err
		}
		if err := checkKind(st, KindSet); err != nil {
			return nil, err
		}
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	return &Set{st: st}, nil
}

// Len returns the number of keys.
func (s *Set) Len() int { return s.st.Len() }

// Contains reports whether key is in the set.
func (s *Set) Contains(key []byte) bool { return s.st.Contains(key) }

// Stream returns every key in order.
func (s *Set) Stream() *core.Stream[struct{}] { return core.Range(s.st).Stream() }

// Range returns a builder for a bounded stream of keys.
func (s *Set) Range() *core.StreamBuilder[struct{}] { return core.Range(s.st) }

// Op starts a merge with this set's keys as source 0.
func (s *Set) Op() *merge.OpBuilder { return merge.NewOpBuilder().Add(s.Stream()) }

// IsDisjoint reports whether s and other share no key.
func (s *Set) IsDisjoint(other *Set) bool {
	_, _, ok := s.Op().Add(other.Stream()).Intersection().Next()
	return !ok
}

// IsSubset reports whether every key of s is in other.
func (s *Set) IsSubset(other *Set) bool {
	if s.Len() > other.Len() {
		return false
	}
	_, _, ok := s.Op().Add(other.Stream()).Difference().Next()

	return !ok
}

// IsSuperset reports whether every key of other is in s.
func (s *Set) IsSuperset(other *Set) bool { return other.IsSubset(s) }

// Bytes returns the serialized set.
func (s *Set) Bytes() []byte { return s.st.Bytes() }

// Store returns the underlying transducer. A store is also an automaton
// accepting exactly its keys, so a set can drive a search of another view.
func (s *Set) Store() *core.Store { return s.st }

// withKind appends the view's tag so it overrides any caller WithKind.
func withKind(opts []builder.Option, kind uint64) []builder.Option {
	return append(slices.Clip(opts), builder.WithKind(kind))
}
