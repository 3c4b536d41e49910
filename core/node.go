// SPDX-License-Identifier: MIT
// Package: lvfst/core
//
// node.go: zero-copy view over one node record.

package core

import (
	"encoding/binary"
	"slices"
)

// Node is a decoded view of a node record. It aliases the store buffer and
// is cheap to copy.
//
// A Node obtained for an address that does not hold a well-formed record is
// the empty, non-final node: it has no transitions and matches nothing.
type Node struct {
	addr     Addr
	final    bool
	finalOut Output
	labels   []byte
	outs     []byte
	deltas   []byte
	ow, aw   int
	size     int // encoded size in bytes; 0 for the empty node
}

// decodeNode decodes the record at addr, reading only inside data[:end].
// ok is false when the record is malformed; the returned node is then empty.
func decodeNode(data []byte, end int, addr Addr) (n Node, ok bool) {
	n = Node{addr: addr}
	p := int(addr)
	if p < HeaderSize || p >= end || end > len(data) || end-p < 2 {
		return n, false
	}

	// 1) Flags and column widths.
	flags, widths := data[p], data[p+1]
	ow, aw := int(widths>>4), int(widths&0x0f)
	if flags&^(flagFinal|flagFinalOut) != 0 || ow > 8 || aw > 8 {
		return n, false
	}
	if flags&flagFinalOut != 0 && flags&flagFinal == 0 {
		return n, false
	}
	p += 2

	// 2) Transition count and optional final output.
	count, k := binary.Uvarint(data[p:end])
	if k <= 0 || count > maxTransitions {
		return n, false
	}
	p += k
	var finalOut uint64
	if flags&flagFinalOut != 0 {
		finalOut, k = binary.Uvarint(data[p:end])
		if k <= 0 {
			return n, false
		}
		p += k
	}

	// 3) Columns.
	c := int(count)
	if end-p < c*(1+ow+aw) {
		return n, false
	}
	lo, oo, do := p, p+c, p+c+c*ow
	stop := do + c*aw

	return Node{
		addr:     addr,
		final:    flags&flagFinal != 0,
		finalOut: Output(finalOut),
		labels:   data[lo:oo:oo],
		outs:     data[oo:do:do],
		deltas:   data[do:stop:stop],
		ow:       ow,
		aw:       aw,
		size:     stop - int(addr),
	}, true
}

// Addr returns the node's address.
func (n Node) Addr() Addr { return n.addr }

// IsFinal reports whether a key ends at this node.
func (n Node) IsFinal() bool { return n.final }

// FinalOutput returns the output added when a key ends here (Zero if not final).
func (n Node) FinalOutput() Output { return n.finalOut }

// Len returns the number of transitions.
func (n Node) Len() int { return len(n.labels) }

// FindInput returns the index of the transition labelled b.
// Complexity: O(log Len()).
func (n Node) FindInput(b byte) (int, bool) {
	return slices.BinarySearch(n.labels, b)
}

// Label returns the label of transition i without decoding the rest of it.
func (n Node) Label(i int) byte { return n.labels[i] }

// Transition decodes transition i. It panics if i is outside [0, Len()).
func (n Node) Transition(i int) Transition {
	out := readUint(n.outs[i*n.ow:], n.ow)
	delta := readUint(n.deltas[i*n.aw:], n.aw)

	target := NoAddr
	if delta != 0 && delta <= uint64(n.addr) {
		target = n.addr - Addr(delta)
	}

	return Transition{Label: n.labels[i], Out: Output(out), Target: target}
}

// firstAbove returns the index of the first transition whose label is > b,
// or Len() when there is none.
func (n Node) firstAbove(b byte) int {
	i, found := slices.BinarySearch(n.labels, b)
	if found {
		i++
	}

	return i
}
