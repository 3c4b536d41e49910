// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// unfinished.go: the path of not-yet-frozen nodes for the last key.
//
// Invariant: nodes[i] is the node reached after the first i bytes of the
// last key; for i < len(nodes)-1 its pending transition (last) leads to
// nodes[i+1] and still carries output Zero until nodes[i+1] is frozen.

package builder

import "github.com/katalvlaran/lvfst/core"

type unfinishedNode struct {
	final    bool
	finalOut core.Output
	trans    []core.Transition // frozen transitions, ascending labels

	hasLast bool
	last    core.Transition // pending transition to the next unfinished node
}

type unfinished struct {
	nodes []unfinishedNode
}

func newUnfinished() *unfinished {
	return &unfinished{nodes: []unfinishedNode{{}}}
}

// depth returns the number of bytes on the unfinished path.
func (u *unfinished) depth() int { return len(u.nodes) - 1 }

// root returns the root node.
func (u *unfinished) root() *unfinishedNode { return &u.nodes[0] }

// commonPrefix returns how many leading bytes of key follow pending transitions.
func (u *unfinished) commonPrefix(key []byte) int {
	i := 0
	for i < len(key) && i < u.depth() {
		if n := &u.nodes[i]; !n.hasLast || n.last.Label != key[i] {
			break
		}
		i++
	}

	return i
}

// push appends an empty node, reusing the transition storage of a node that
// previously lived at this depth.
func (u *unfinished) push() *unfinishedNode {
	if len(u.nodes) < cap(u.nodes) {
		u.nodes = u.nodes[:len(u.nodes)+1]
		n := &u.nodes[len(u.nodes)-1]
		*n = unfinishedNode{trans: n.trans[:0]}
		return n
	}
	u.nodes = append(u.nodes, unfinishedNode{})

	return &u.nodes[len(u.nodes)-1]
}

// addSuffix extends the path below the deepest node with suffix and marks the
// new terminal node final with out as its final output.
func (u *unfinished) addSuffix(suffix []byte, out core.Output) {
	for _, b := range suffix {
		parent := &u.nodes[len(u.nodes)-1]
		parent.hasLast = true
		parent.last = core.Transition{Label: b}
		u.push()
	}
	tail := &u.nodes[len(u.nodes)-1]
	tail.final = true
	tail.finalOut = out
}

// pop removes and returns the deepest node. The returned value shares its
// transition slice with the stack slot; it is valid until the next push.
func (u *unfinished) pop() unfinishedNode {
	n := u.nodes[len(u.nodes)-1]
	u.nodes = u.nodes[:len(u.nodes)-1]

	return n
}

// attach completes the pending transition of the deepest node: it receives
// the output pushed up by the frozen child and the child's address.
func (u *unfinished) attach(pushed core.Output, target core.Addr) {
	n := &u.nodes[len(u.nodes)-1]
	n.last.Out = n.last.Out.Add(pushed)
	n.last.Target = target
	n.trans = append(n.trans, n.last)
	n.hasLast = false
	n.last = core.Transition{}
}

// compress factors the smallest output of n (over its transitions, and its
// final output when final) out of the node and returns it. The caller adds
// the returned value to the transition leading into n.
func compress(n *unfinishedNode) core.Output {
	m, seen := core.MaxOutput, false
	if n.final {
		m, seen = n.finalOut, true
	}
	for _, t := range n.trans {
		m, seen = m.Min(t.Out), true
	}
	if !seen || m == core.Zero {
		return core.Zero
	}

	if n.final {
		n.finalOut = n.finalOut.Sub(m)
	}
	for i := range n.trans {
		n.trans[i].Out = n.trans[i].Out.Sub(m)
	}

	return m
}
