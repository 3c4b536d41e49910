// SPDX-License-Identifier: MIT
// Package: lvfst/core
//
// types.go: Output, Addr and Transition.

package core

import "math"

// Output is the value carried by a transducer: the sum of the transition
// outputs on a key's path plus the final output of the node it ends in.
//
// Output forms a monoid under addition with identity Zero. Output compression
// only ever subtracts a value that is known to be <= the minuend, so Sub never
// underflows on builder paths.
type Output uint64

// Zero is the identity output.
const Zero Output = 0

// MaxOutput is the largest value a key can carry.
const MaxOutput Output = math.MaxUint64

// Add returns o + p.
func (o Output) Add(p Output) Output { return o + p }

// Sub returns o - p. p must not exceed o.
func (o Output) Sub(p Output) Output { return o - p }

// Min returns the smaller of o and p.
func (o Output) Min(p Output) Output {
	if p < o {
		return p
	}

	return o
}

// IsZero reports whether o is the identity.
func (o Output) IsZero() bool { return o == 0 }

// Addr is the address of a node: the byte offset of its record inside the
// store buffer. Addresses below HeaderSize never name a node.
type Addr int

// NoAddr is the address of no node. Decoding it yields an empty, non-final node.
const NoAddr Addr = 0

// Transition is one labelled edge of a node.
type Transition struct {
	// Label is the input byte consumed by the edge.
	Label byte
	// Out is the output increment contributed by the edge.
	Out Output
	// Target is the address of the node reached.
	Target Addr
}
