// SPDX-License-Identifier: MIT
// Package: lvfst/merge
//
// heap.go: min-heap of stream fronts.

package merge

import (
	"bytes"

	"github.com/katalvlaran/lvfst/core"
)

// front is the current head of one source stream. key is owned by the front
// and reused across refills.
type front struct {
	key   []byte
	out   core.Output
	index int
}

// frontHeap is a min-heap of *front ordered by key, then by source index, so
// equal keys pop in source order.
type frontHeap []*front

// Len returns the number of fronts in the heap.
func (h frontHeap) Len() int { return len(h) }

// Less orders by key, ties by index.
func (h frontHeap) Less(i, j int) bool {
	if c := bytes.Compare(h[i].key, h[j].key); c != 0 {
		return c < 0
	}

	return h[i].index < h[j].index
}

// Swap swaps two fronts.
func (h frontHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push adds x, which must be a *front. Called by heap.Push.
func (h *frontHeap) Push(x any) { *h = append(*h, x.(*front)) }

// Pop removes the last front. Called by heap.Pop.
func (h *frontHeap) Pop() any {
	old := *h
	n := len(old)
	f := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]

	return f
}
