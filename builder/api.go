// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// api.go: one-call entry points over Memory + core.Load.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvfst/core"
)

// Key is any byte-string type accepted by the one-call builders.
type Key interface {
	~string | ~[]byte
}

// Build builds a set transducer from keys, which must be strictly increasing,
// and loads it.
//
// Complexity: O(Σ|key|) time; memory proportional to the output size.
func Build[K Key](keys []K, opts ...Option) (*core.Store, error) {
	b := Memory(opts...)
	for _, k := range keys {
		if err := b.Insert([]byte(k)); err != nil {
			return nil, fmt.Errorf("%s: %w", MethodBuild, err)
		}
	}

	return finishAndLoad(b)
}

// BuildMap builds a transducer mapping keys[i] to outs[i]. keys must be
// strictly increasing and len(outs) must equal len(keys).
func BuildMap[K Key](keys []K, outs []core.Output, opts ...Option) (*core.Store, error) {
	if len(keys) != len(outs) {
		return nil, fmt.Errorf("%s: %d keys but %d outputs", MethodBuild, len(keys), len(outs))
	}
	b := Memory(opts...)
	for i, k := range keys {
		if err := b.Add([]byte(k), outs[i]); err != nil {
			return nil, fmt.Errorf("%s: %w", MethodBuild, err)
		}
	}

	return finishAndLoad(b)
}

func finishAndLoad(b *Builder) (*core.Store, error) {
	if err := b.Finish(); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodBuild, err)
	}

	// The buffer was produced in this process; its checksum is known good.
	return core.Load(b.Bytes(), core.WithSkipChecksum())
}
