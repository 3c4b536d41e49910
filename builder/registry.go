// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// registry.go: bounded memo of frozen nodes for suffix sharing.
//
// Design:
//   • A fixed number of buckets, chosen by xxhash64 of the node's canonical
//     shape bytes. Each bucket is a tiny most-recently-used list.
//   • A lookup hit moves the entry to the front; an insert into a full bucket
//     evicts the least recently used entry.
//   • Eviction only costs minimality, never correctness: an evicted shape is
//     simply written again.
//   • A nil *registry is a valid, always-missing registry.

package builder

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/lvfst/core"
)

type regEntry struct {
	shape []byte
	addr  core.Addr
}

type registry struct {
	table [][]regEntry
	mru   int
	hits  int
}

// newRegistry returns nil when either size is zero.
func newRegistry(tableSize, mruSize int) *registry {
	if tableSize == 0 || mruSize == 0 {
		return nil
	}

	return &registry{table: make([][]regEntry, tableSize), mru: mruSize}
}

func (r *registry) bucket(shape []byte) int {
	return int(xxhash.Sum64(shape) % uint64(len(r.table)))
}

// lookup returns the address of a node previously written with this shape.
func (r *registry) lookup(shape []byte) (core.Addr, bool) {
	if r == nil {
		return core.NoAddr, false
	}
	b := r.table[r.bucket(shape)]
	for i, e := range b {
		if bytes.Equal(e.shape, shape) {
			copy(b[1:i+1], b[:i])
			b[0] = e
			r.hits++
			return e.addr, true
		}
	}

	return core.NoAddr, false
}

// insert remembers shape at the front of its bucket.
func (r *registry) insert(shape []byte, addr core.Addr) {
	if r == nil {
		return
	}
	i := r.bucket(shape)
	b := r.table[i]
	if len(b) < r.mru {
		b = append(b, regEntry{})
	}
	copy(b[1:], b[:len(b)-1])
	b[0] = regEntry{shape: bytes.Clone(shape), addr: addr}
	r.table[i] = b
}

// appendShape appends the canonical shape of a frozen node: everything that
// determines its record, independent of where it will be written.
func appendShape(dst []byte, n core.NodeSpec) []byte {
	var flags byte
	if n.Final {
		flags = 1
	}
	dst = append(dst, flags)
	dst = binary.AppendUvarint(dst, uint64(n.FinalOutput))
	for _, t := range n.Trans {
		dst = append(dst, t.Label)
		dst = binary.AppendUvarint(dst, uint64(t.Out))
		dst = binary.AppendUvarint(dst, uint64(t.Target))
	}

	return dst
}
