// SPDX-License-Identifier: MIT
// Package: lvfst/merge
//
// merge.go: k-way set operations over ordered streams.
//
// Algorithm:
//  1. Every source contributes its current front to a min-heap ordered by
//     (key, source index).
//  2. Next pops the smallest front, then every other front with the same
//     key, collecting one IndexedOutput per source in index order. Each
//     popped source is advanced and pushed back unless exhausted.
//  3. The operation decides from the collected sources whether the key is
//     emitted; if not, Next moves on to the following key.
//
// Complexity: O(log k) per source element for k streams; O(k) space plus
// one key buffer per source.

package merge

import (
	"bytes"
	"container/heap"
	"iter"

	"github.com/katalvlaran/lvfst/core"
)

// IndexedOutput is the output a key carries in one source stream, tagged
// with that stream's position in the builder.
type IndexedOutput struct {
	Index  int
	Output core.Output
}

type op uint8

const (
	opUnion op = iota
	opIntersection
	opDifference
	opSymmetricDifference
)

// OpBuilder collects source streams for a set operation.
type OpBuilder struct {
	sources []core.Streamer
}

// NewOpBuilder returns an empty builder.
func NewOpBuilder() *OpBuilder { return &OpBuilder{} }

// Add appends streams. A stream's index is its position across all Add
// calls, starting at 0.
func (b *OpBuilder) Add(streams ...core.Streamer) *OpBuilder {
	b.sources = append(b.sources, streams...)
	return b
}

// Len returns the number of streams added so far.
func (b *OpBuilder) Len() int { return len(b.sources) }

// Union streams every key present in at least one source.
func (b *OpBuilder) Union() *Stream { return b.stream(opUnion) }

// Intersection streams every key present in all sources.
func (b *OpBuilder) Intersection() *Stream { return b.stream(opIntersection) }

// Difference streams the keys of source 0 present in no other source.
func (b *OpBuilder) Difference() *Stream { return b.stream(opDifference) }

// SymmetricDifference streams the keys present in an odd number of sources.
func (b *OpBuilder) SymmetricDifference() *Stream { return b.stream(opSymmetricDifference) }

// stream consumes the builder's sources; the builder should not be reused.
func (b *OpBuilder) stream(o op) *Stream {
	s := &Stream{
		op:      o,
		sources: b.sources,
		heap:    make(frontHeap, 0, len(b.sources)),
	}
	for i, src := range b.sources {
		s.refill(&front{index: i}, src)
	}
	heap.Init(&s.heap)
	b.sources = nil

	return s
}

// Stream is the result of a set operation. It is pull-based and not safe
// for concurrent use.
type Stream struct {
	op        op
	sources   []core.Streamer
	heap      frontHeap
	exhausted []bool
	key       []byte
	outs      []IndexedOutput
	done      bool
}

// refill advances src into f and pushes it back on the heap, or marks the
// source exhausted. An exhausted source has no front left in the heap.
func (s *Stream) refill(f *front, src core.Streamer) {
	k, out, ok := src.Next()
	if !ok {
		if s.exhausted == nil {
			s.exhausted = make([]bool, len(s.sources))
		}
		s.exhausted[f.index] = true
		return
	}
	f.key = append(f.key[:0], k...)
	f.out = out
	heap.Push(&s.heap, f)
}

// Next returns the next key and the outputs it carries, one per source
// holding it, ordered by source index. Both slices are reused by the next
// call.
func (s *Stream) Next() ([]byte, []IndexedOutput, bool) {
	for !s.done {
		if s.cannotEmit() || s.heap.Len() == 0 {
			s.done = true
			break
		}

		top := heap.Pop(&s.heap).(*front)
		s.key = append(s.key[:0], top.key...)
		s.outs = append(s.outs[:0], IndexedOutput{Index: top.index, Output: top.out})
		s.refill(top, s.sources[top.index])

		for s.heap.Len() > 0 && bytes.Equal(s.heap[0].key, s.key) {
			f := heap.Pop(&s.heap).(*front)
			s.outs = append(s.outs, IndexedOutput{Index: f.index, Output: f.out})
			s.refill(f, s.sources[f.index])
		}

		if s.emits() {
			return s.key, s.outs, true
		}
	}

	return nil, nil, false
}

// cannotEmit reports whether no further key can be emitted whatever the
// remaining sources hold.
func (s *Stream) cannotEmit() bool {
	switch s.op {
	case opIntersection:
		if len(s.sources) == 0 {
			return true
		}
		for _, e := range s.exhausted {
			if e {
				return true
			}
		}
	case opDifference:
		return len(s.sources) == 0 || (s.exhausted != nil && s.exhausted[0])
	}

	return false
}

func (s *Stream) emits() bool {
	switch s.op {
	case opIntersection:
		return len(s.outs) == len(s.sources)
	case opDifference:
		return len(s.outs) == 1 && s.outs[0].Index == 0
	case opSymmetricDifference:
		return len(s.outs)%2 == 1
	default:
		return true
	}
}

// All adapts s to a range-over-func sequence. Both yielded slices are only
// valid during their iteration step.
func All(s *Stream) iter.Seq2[[]byte, []IndexedOutput] {
	return func(yield func([]byte, []IndexedOutput) bool) {
		for {
			k, outs, ok := s.Next()
			if !ok || !yield(k, outs) {
				return
			}
		}
	}
}
