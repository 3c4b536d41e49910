// SPDX-License-Identifier: MIT
// Package: lvfst/merge
//
// fold.go: collapse multi-source outputs back into a plain stream.

package merge

import "github.com/katalvlaran/lvfst/core"

// FoldFunc combines the outputs one key carries across sources. outs is
// never empty and is ordered by source index.
type FoldFunc func(outs []IndexedOutput) core.Output

// Sum adds all outputs.
func Sum(outs []IndexedOutput) core.Output {
	var total core.Output
	for _, o := range outs {
		total = total.Add(o.Output)
	}

	return total
}

// First keeps the output of the lowest-indexed source.
func First(outs []IndexedOutput) core.Output { return outs[0].Output }

// Last keeps the output of the highest-indexed source.
func Last(outs []IndexedOutput) core.Output { return outs[len(outs)-1].Output }

// Min keeps the smallest output.
func Min(outs []IndexedOutput) core.Output {
	m := outs[0].Output
	for _, o := range outs[1:] {
		m = m.Min(o.Output)
	}

	return m
}

// Flattened is a Stream whose outputs are folded to one per key, so it
// satisfies core.Streamer and can feed a builder or another merge.
type Flattened struct {
	s    *Stream
	fold FoldFunc
}

// Flatten folds s with fold.
func Flatten(s *Stream, fold FoldFunc) *Flattened {
	return &Flattened{s: s, fold: fold}
}

// Next returns the next key and its folded output.
func (f *Flattened) Next() ([]byte, core.Output, bool) {
	k, outs, ok := f.s.Next()
	if !ok {
		return nil, core.Zero, false
	}

	return k, f.fold(outs), true
}
