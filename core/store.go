// SPDX-License-Identifier: MIT
// Package: lvfst/core
//
// store.go: the immutable transducer store.
//
// Contract:
//   • Load validates a constant number of structural facts plus the checksum;
//     it never decodes the node region.
//   • A *Store is read-only after Load and safe for concurrent use.
//   • Lookups never fail and never panic, even on buffers accepted with
//     WithSkipChecksum: malformed records decode as empty nodes.

package core

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Store is an immutable finite-state transducer over byte-string keys.
type Store struct {
	data  []byte
	end   int // end of the node region (start of the footer)
	kind  uint64
	count int
	root  Addr
}

// LoadOption customizes Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	skipChecksum bool
}

// WithSkipChecksum disables checksum verification in Load. Use it only for
// buffers produced by a trusted builder in the same process.
func WithSkipChecksum() LoadOption {
	return func(c *loadConfig) { c.skipChecksum = true }
}

// Load opens a transducer serialized in data. data is aliased, not copied,
// and must not be modified while the Store is in use.
//
// Errors: every failure satisfies errors.Is(err, ErrCorrupt) and also the
// specific reason (ErrTruncated, ErrBadMagic, ErrVersion, ErrBadRoot,
// ErrChecksum).
// Complexity: O(len(data)) for the checksum, O(1) otherwise.
//
// Load checks the header, the footer and the root address only. Node
// records are decoded lazily, so a buffer whose checksum matches but whose
// transitions point outside it still loads, and lookups through a bad
// record report the key as absent. Call Verify to check every node once
// when the buffer does not come from a trusted builder.
func Load(data []byte, opts ...LoadOption) (*Store, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1) Header.
	if len(data) < HeaderSize+FooterSize {
		return nil, corrupt(ErrTruncated, "%d bytes", len(data))
	}
	if string(data[:4]) != Magic {
		return nil, corrupt(ErrBadMagic, "")
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != Version {
		return nil, corrupt(ErrVersion, "version %d", v)
	}
	kind := binary.LittleEndian.Uint64(data[8:16])

	// 2) Footer.
	end := len(data) - FooterSize
	count := binary.LittleEndian.Uint64(data[end : end+8])
	root := binary.LittleEndian.Uint64(data[end+8 : end+16])
	sum := binary.LittleEndian.Uint64(data[end+16:])
	if root < HeaderSize || root >= uint64(end) {
		return nil, corrupt(ErrBadRoot, "root %d outside [%d,%d)", root, HeaderSize, end)
	}
	if count > math.MaxInt {
		return nil, corrupt(ErrTruncated, "key count %d", count)
	}

	// 3) Checksum over everything but itself.
	if !cfg.skipChecksum {
		if got := xxhash.Sum64(data[:len(data)-ChecksumSize]); got != sum {
			return nil, corrupt(ErrChecksum, "want %016x, got %016x", sum, got)
		}
	}

	return &Store{data: data, end: end, kind: kind, count: int(count), root: Addr(root)}, nil
}

// Len returns the number of keys.
func (s *Store) Len() int { return s.count }

// Kind returns the user type tag stored in the header.
func (s *Store) Kind() uint64 { return s.kind }

// Bytes returns the serialized form. The slice aliases the store.
func (s *Store) Bytes() []byte { return s.data }

// Size returns the serialized size in bytes.
func (s *Store) Size() int { return len(s.data) }

// Root returns the root node.
func (s *Store) Root() Node { return s.Node(s.root) }

// RootAddr returns the address of the root node.
func (s *Store) RootAddr() Addr { return s.root }

// Node decodes the node at addr. A malformed or out-of-range address yields
// the empty, non-final node.
func (s *Store) Node(addr Addr) Node {
	n, _ := decodeNode(s.data, s.end, addr)
	return n
}

// Get returns the output associated with key and whether key is present.
// Complexity: O(len(key) · log σ) where σ ≤ 256 is the alphabet size.
func (s *Store) Get(key []byte) (Output, bool) {
	node := s.Root()
	out := Zero
	for _, b := range key {
		i, ok := node.FindInput(b)
		if !ok {
			return Zero, false
		}
		t := node.Transition(i)
		out = out.Add(t.Out)
		node = s.Node(t.Target)
	}
	if !node.IsFinal() {
		return Zero, false
	}

	return out.Add(node.FinalOutput()), true
}

// Contains reports whether key is present.
func (s *Store) Contains(key []byte) bool {
	_, ok := s.Get(key)
	return ok
}

// Stats describes the shape of a store.
type Stats struct {
	Keys        int // number of keys
	Nodes       int // node records
	FinalNodes  int // records with the final flag
	Transitions int // total transitions over all records
	Bytes       int // serialized size
}

// Verify decodes every node record in address order and checks the
// invariants Load does not: each record is well-formed, labels strictly
// ascend, every transition targets an earlier record, and the root is a
// record. It returns the store statistics when the store is sound.
//
// Complexity: O(len(data) · log n) time, O(n) space for n records.
func (s *Store) Verify() (Stats, error) {
	st := Stats{Keys: s.count, Bytes: len(s.data)}
	starts := make(map[Addr]struct{})

	for p := HeaderSize; p < s.end; {
		n, ok := decodeNode(s.data, s.end, Addr(p))
		if !ok {
			return st, fmt.Errorf("%w: %w: record at %d", ErrCorrupt, ErrBadNode, p)
		}
		for i := 0; i < n.Len(); i++ {
			if i > 0 && n.labels[i-1] >= n.labels[i] {
				return st, fmt.Errorf("%w: %w: labels out of order at %d", ErrCorrupt, ErrBadNode, p)
			}
			t := n.Transition(i)
			if _, ok := starts[t.Target]; !ok {
				return st, fmt.Errorf("%w: %w: record at %d targets %d", ErrCorrupt, ErrBadNode, p, t.Target)
			}
		}
		starts[n.addr] = struct{}{}
		st.Nodes++
		st.Transitions += n.Len()
		if n.final {
			st.FinalNodes++
		}
		p += n.size
	}
	if _, ok := starts[s.root]; !ok {
		return st, fmt.Errorf("%w: %w: root %d is not a record", ErrCorrupt, ErrBadRoot, s.root)
	}

	return st, nil
}
