// SPDX-License-Identifier: MIT
// Package: lvfst/core
//
// iter.go: range-over-func adapters for Streamer.

package core

import (
	"bytes"
	"iter"
)

// Entry is a key copied out of a stream together with its output.
type Entry struct {
	Key    []byte
	Output Output
}

// All adapts s to a range-over-func sequence. Keys alias the stream buffer
// and are only valid during their iteration step.
func All(s Streamer) iter.Seq2[[]byte, Output] {
	return func(yield func([]byte, Output) bool) {
		for {
			k, out, ok := s.Next()
			if !ok || !yield(k, out) {
				return
			}
		}
	}
}

// Keys is All without outputs.
func Keys(s Streamer) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for {
			k, _, ok := s.Next()
			if !ok || !yield(k) {
				return
			}
		}
	}
}

// Collect drains s into a slice of owned entries.
func Collect(s Streamer) []Entry {
	var es []Entry
	for k, out := range All(s) {
		es = append(es, Entry{Key: bytes.Clone(k), Output: out})
	}

	return es
}

// CollectStrings drains s and returns its keys as strings.
func CollectStrings(s Streamer) []string {
	var ks []string
	for k := range Keys(s) {
		ks = append(ks, string(k))
	}

	return ks
}
