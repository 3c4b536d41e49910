// SPDX-License-Identifier: MIT
// Package: lvfst/index
//
// map.go: an ordered map from byte-string keys to uint64 outputs.

package index

import (
	"fmt"
	"maps"
	"slices"

	"github.com/katalvlaran/lvfst/builder"
	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/merge"
)

// Map is an immutable ordered map backed by a transducer. It is safe for
// concurrent use.
type Map struct {
	st *core.Store
}

// NewMap builds a map sending keys[i] to outs[i]. keys must be strictly
// increasing and as many as outs.
func NewMap[K builder.Key](keys []K, outs []core.Output, opts ...builder.Option) (*Map, error) {
	st, err := observe("build", "map", func() (*core.Store, error) {
		return builder.BuildMap(keys, outs, withKind(opts, KindMap)...)
	})
	if err != nil {
		return nil, err
	}

	return &Map{st: st}, nil
}

// NewMapFromUnsorted builds a map from a Go map.
func NewMapFromUnsorted(m map[string]core.Output, opts ...builder.Option) (*Map, error) {
	keys := slices.Sorted(maps.Keys(m))
	outs := make([]core.Output, len(keys))
	for i, k := range keys {
		outs[i] = m[k]
	}

	return NewMap(keys, outs, opts...)
}

// NewMapFromStream builds a map from an ordered stream, such as a search or
// a flattened merge.
func NewMapFromStream(s core.Streamer, opts ...builder.Option) (*Map, error) {
	st, err := observe("build", "map", func() (*core.Store, error) {
		b := builder.Memory(withKind(opts, KindMap)...)
		for k, out := range core.All(s) {
			if err := b.Add(k, out); err != nil {
				return nil, err
			}
		}
		return finish(b)
	})
	if err != nil {
		return nil, err
	}

	return &Map{st: st}, nil
}

// LoadMap opens a serialized map. data is retained, not copied.
//
// Errors: core.ErrCorrupt for damaged input, ErrKind for a set.
func LoadMap(data []byte, opts ...core.LoadOption) (*Map, error) {
	st, err := observe("load", "map", func() (*core.Store, error) {
		st, err := core.Load(data, opts...)
		if err != nil {
			return nil, err
		}
		if err := checkKind(st, KindMap); err != nil {
			return nil, err
		}
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	return &Map{st: st}, nil
}

// Len returns the number of keys.
func (m *Map) Len() int { return m.st.Len() }

// Get returns the output stored for key.
func (m *Map) Get(key []byte) (core.Output, bool) { return m.st.Get(key) }

// Contains reports whether key is in the map.
func (m *Map) Contains(key []byte) bool { return m.st.Contains(key) }

// Stream returns every entry in key order.
func (m *Map) Stream() *core.Stream[struct{}] { return core.Range(m.st).Stream() }

// Range returns a builder for a bounded stream of entries.
func (m *Map) Range() *core.StreamBuilder[struct{}] { return core.Range(m.st) }

// Op starts a merge with this map's entries as source 0.
func (m *Map) Op() *merge.OpBuilder { return merge.NewOpBuilder().Add(m.Stream()) }

// Keys returns the map's keys as a set sharing no memory with m.
func (m *Map) Keys() (*Set, error) {
	return NewSetFromStream(m.Stream())
}

// Bytes returns the serialized map.
func (m *Map) Bytes() []byte { return m.st.Bytes() }

// Store returns the underlying transducer.
func (m *Map) Store() *core.Store { return m.st }

// String returns a short description such as map(3 keys).
func (m *Map) String() string { return fmt.Sprintf("map(%d keys)", m.Len()) }
