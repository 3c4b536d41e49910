package regex

import (
	"encoding/binary"
	"fmt"
	"slices"
)

// dead is the DFA state with no way to acceptance.
const dead = 0

// dfa is a byte-level DFA: trans[s*256+b] is the successor of s on b.
type dfa struct {
	trans []int32
	match []bool
	start int32
}

// determinizer runs the subset construction over an NFA.
type determinizer struct {
	nfa   []nfaState
	seen  []uint32
	stamp uint32
	stack []int
	key   []byte
}

// closure returns the sorted set of consuming and accepting NFA states
// reachable from roots through epsilon edges.
func (d *determinizer) closure(roots []int) []int {
	d.stamp++
	d.stack = append(d.stack[:0], roots...)

	var out []int
	for len(d.stack) > 0 {
		s := d.stack[len(d.stack)-1]
		d.stack = d.stack[:len(d.stack)-1]
		if d.seen[s] == d.stamp {
			continue
		}
		d.seen[s] = d.stamp

		switch st := &d.nfa[s]; st.kind {
		case nfaSplit:
			d.stack = append(d.stack, st.eps...)
		case nfaRange, nfaMatch:
			out = append(out, s)
		}
	}
	slices.Sort(out)

	return out
}

func (d *determinizer) setKey(set []int) string {
	d.key = d.key[:0]
	for _, s := range set {
		d.key = binary.AppendUvarint(d.key, uint64(s))
	}

	return string(d.key)
}

// determinize builds the DFA of nfa from start, failing once it would hold
// more than limit states. The result has every state that cannot reach a
// match folded into dead.
func determinize(nfa []nfaState, start, limit int) (*dfa, error) {
	d := &determinizer{nfa: nfa, seen: make([]uint32, len(nfa))}

	var (
		sets  = [][]int{nil}
		ids   = map[string]int32{"": dead}
		trans = make([]int32, 256)
		match = []bool{false}
	)
	intern := func(set []int) (int32, error) {
		k := d.setKey(set)
		if id, ok := ids[k]; ok {
			return id, nil
		}
		if len(sets) >= limit {
			return 0, fmt.Errorf("%w: more than %d states", ErrAutomatonTooLarge, limit)
		}
		id := int32(len(sets))
		ids[k] = id
		sets = append(sets, set)
		trans = append(trans, make([]int32, 256)...)
		isMatch := false
		for _, s := range set {
			if nfa[s].kind == nfaMatch {
				isMatch = true
				break
			}
		}
		match = append(match, isMatch)

		return id, nil
	}

	startID, err := intern(d.closure([]int{start}))
	if err != nil {
		return nil, err
	}

	var (
		cuts    [257]bool
		targets []int
	)
	for cur := 1; cur < len(sets); cur++ {
		set := sets[cur]

		// Bytes between two cuts lead to the same successor set.
		clear(cuts[:])
		cuts[0] = true
		for _, s := range set {
			if st := &nfa[s]; st.kind == nfaRange {
				cuts[st.lo] = true
				cuts[int(st.hi)+1] = true
			}
		}

		for lo := 0; lo < 256; {
			hi := lo + 1
			for hi < 256 && !cuts[hi] {
				hi++
			}

			targets = targets[:0]
			b := byte(lo)
			for _, s := range set {
				if st := &nfa[s]; st.kind == nfaRange && st.lo <= b && b <= st.hi {
					targets = append(targets, st.next)
				}
			}
			if len(targets) > 0 {
				id, err := intern(d.closure(targets))
				if err != nil {
					return nil, err
				}
				row := trans[cur*256:]
				for i := lo; i < hi; i++ {
					row[i] = id
				}
			}
			lo = hi
		}
	}

	return prune(trans, match, startID), nil
}

// prune folds every state that cannot reach a match into dead and renumbers
// the rest densely.
func prune(trans []int32, match []bool, start int32) *dfa {
	n := len(match)
	rev := make([][]int32, n)
	for s := 0; s < n; s++ {
		for b := 0; b < 256; b++ {
			t := trans[s*256+b]
			if t == dead {
				continue
			}
			if r := rev[t]; len(r) == 0 || r[len(r)-1] != int32(s) {
				rev[t] = append(rev[t], int32(s))
			}
		}
	}

	alive := make([]bool, n)
	var queue []int32
	for s, m := range match {
		if m {
			alive[s] = true
			queue = append(queue, int32(s))
		}
	}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, s := range rev[t] {
			if !alive[s] {
				alive[s] = true
				queue = append(queue, s)
			}
		}
	}

	remap := make([]int32, n)
	next := int32(1)
	for s := 1; s < n; s++ {
		if alive[s] {
			remap[s] = next
			next++
		}
	}

	out := &dfa{
		trans: make([]int32, int(next)*256),
		match: make([]bool, next),
		start: remap[start],
	}
	for s := 1; s < n; s++ {
		ns := remap[s]
		if ns == dead {
			continue
		}
		out.match[ns] = match[s]
		for b := 0; b < 256; b++ {
			out.trans[int(ns)*256+b] = remap[trans[s*256+b]]
		}
	}

	return out
}
