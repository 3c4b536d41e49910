// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// builder.go: streaming construction of a minimal transducer.
//
// Algorithm (per key, keys in strictly increasing byte order):
//  1. p = length of the common prefix with the previous key.
//  2. Freeze every unfinished node deeper than p, deepest first: factor the
//     node's smallest output onto its incoming transition, then either reuse
//     an identical node from the registry or write a new record.
//  3. Extend the unfinished path with the rest of the key; the key's output
//     becomes the final output of its terminal node.
//
// Finish freezes the remaining path down to the root and writes the footer.

package builder

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/lvfst/core"
)

// Stats counts the work done by a Builder.
type Stats struct {
	Keys         int // keys added
	Nodes        int // node records written
	RegistryHits int // frozen nodes replaced by an earlier identical record
	Bytes        int // bytes written, header and footer included
}

// Builder constructs a transducer from keys added in increasing order.
// A Builder is single-owner and one-shot: it is not safe for concurrent use
// and cannot be reused after Finish.
type Builder struct {
	cfg builderConfig

	bw     *bufio.Writer
	digest *xxhash.Digest
	mem    *bytes.Buffer // non-nil for Memory builders
	addr   core.Addr     // bytes written so far, i.e. the next record address

	reg  *registry
	path *unfinished
	last []byte

	keys  int
	nodes int
	err   error // first failure, or ErrFinished; returned by every later call

	rec   []byte // scratch: encoded record
	shape []byte // scratch: registry key
}

// New returns a Builder that streams the serialized transducer to w.
// The header is written immediately.
func New(w io.Writer, opts ...Option) (*Builder, error) {
	cfg := newBuilderConfig(opts...)
	b := &Builder{
		cfg:    cfg,
		bw:     bufio.NewWriter(w),
		digest: xxhash.New(),
		reg:    newRegistry(cfg.tableSize, cfg.mruSize),
		path:   newUnfinished(),
	}
	if err := b.write(core.AppendHeader(nil, cfg.kind)); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodNew, err)
	}

	return b, nil
}

// Memory returns a Builder writing to an internal buffer, available through
// Bytes after Finish.
func Memory(opts ...Option) *Builder {
	mem := new(bytes.Buffer)
	b, err := New(mem, opts...)
	if err != nil {
		// unreachable: the header only reaches the bufio buffer
		panic(err)
	}
	b.mem = mem

	return b
}

// Insert adds key with output Zero. It is the set form of Add.
func (b *Builder) Insert(key []byte) error {
	return b.add(MethodInsert, key, core.Zero)
}

// Add adds key with output out. Keys must be strictly increasing in byte
// order; otherwise ErrOutOfOrder (or ErrDuplicateKey) is returned and the
// builder is poisoned.
//
// Complexity: amortized O(|key|) plus the cost of freezing nodes.
func (b *Builder) Add(key []byte, out core.Output) error {
	return b.add(MethodAdd, key, out)
}

func (b *Builder) add(method string, key []byte, out core.Output) error {
	if b.err != nil {
		return b.err
	}

	// 1) Order check against the previous key.
	if b.keys > 0 {
		switch c := bytes.Compare(key, b.last); {
		case c == 0:
			return b.fail(builderErrorf(method, ErrDuplicateKey, "%q", key))
		case c < 0:
			return b.fail(builderErrorf(method, ErrOutOfOrder, "%q after %q", key, b.last))
		}
	}

	// 2) The empty key can only be first; it lives on the root.
	if len(key) == 0 {
		root := b.path.root()
		root.final, root.finalOut = true, out
		b.keys++
		b.last = b.last[:0]
		return nil
	}

	// 3) Freeze below the common prefix, then extend.
	p := b.path.commonPrefix(key)
	if err := b.freezeFrom(p); err != nil {
		return b.fail(fmt.Errorf("%s: %w", method, err))
	}
	b.path.addSuffix(key[p:], out)
	b.last = append(b.last[:0], key...)
	b.keys++

	return nil
}

// Finish freezes the remaining nodes, writes the footer and flushes the
// writer. Zero keys produce a valid empty transducer.
func (b *Builder) Finish() error {
	if b.err != nil {
		return b.err
	}
	if err := b.freezeFrom(0); err != nil {
		return b.fail(fmt.Errorf("%s: %w", MethodFinish, err))
	}

	// The root is never compressed or shared.
	root := b.path.pop()
	rootAddr, err := b.writeNode(spec(&root))
	if err != nil {
		return b.fail(fmt.Errorf("%s: %w", MethodFinish, err))
	}

	if err := b.write(core.AppendFooterPrefix(nil, uint64(b.keys), rootAddr)); err != nil {
		return b.fail(fmt.Errorf("%s: %w", MethodFinish, err))
	}
	sum := core.AppendChecksum(nil, b.digest.Sum64())
	if _, err := b.bw.Write(sum); err != nil {
		return b.fail(fmt.Errorf("%s: %w", MethodFinish, err))
	}
	b.addr += core.Addr(len(sum))
	if err := b.bw.Flush(); err != nil {
		return b.fail(fmt.Errorf("%s: %w", MethodFinish, err))
	}

	st := b.Stats()
	b.cfg.logger.Debug("transducer finished",
		"keys", st.Keys,
		"nodes", st.Nodes,
		"registry_hits", st.RegistryHits,
		"bytes", st.Bytes,
		"kind", b.cfg.kind,
	)
	b.err = ErrFinished

	return nil
}

// Bytes returns the serialized transducer of a Memory builder after a
// successful Finish, and nil otherwise.
func (b *Builder) Bytes() []byte {
	if b.mem == nil || !errors.Is(b.err, ErrFinished) {
		return nil
	}

	return b.mem.Bytes()
}

// Stats reports the work done so far.
func (b *Builder) Stats() Stats {
	st := Stats{Keys: b.keys, Nodes: b.nodes, Bytes: int(b.addr)}
	if b.reg != nil {
		st.RegistryHits = b.reg.hits
	}

	return st
}

// freezeFrom freezes every unfinished node deeper than depth.
func (b *Builder) freezeFrom(depth int) error {
	for b.path.depth() > depth {
		n := b.path.pop()
		pushed := compress(&n)
		addr, err := b.compile(spec(&n))
		if err != nil {
			return err
		}
		b.path.attach(pushed, addr)
	}

	return nil
}

// compile returns the address of a record equal to n, writing it if the
// registry does not know one.
func (b *Builder) compile(n core.NodeSpec) (core.Addr, error) {
	b.shape = appendShape(b.shape[:0], n)
	if addr, ok := b.reg.lookup(b.shape); ok {
		return addr, nil
	}
	addr, err := b.writeNode(n)
	if err != nil {
		return core.NoAddr, err
	}
	b.reg.insert(b.shape, addr)

	return addr, nil
}

// writeNode encodes n at the current address.
func (b *Builder) writeNode(n core.NodeSpec) (core.Addr, error) {
	addr := b.addr
	b.rec = core.AppendNode(b.rec[:0], addr, n)
	if err := b.write(b.rec); err != nil {
		return core.NoAddr, err
	}
	b.nodes++

	return addr, nil
}

// write sends p to the output and the running checksum.
func (b *Builder) write(p []byte) error {
	if _, err := b.bw.Write(p); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	_, _ = b.digest.Write(p)
	b.addr += core.Addr(len(p))

	return nil
}

// fail poisons the builder with err.
func (b *Builder) fail(err error) error {
	b.err = err
	return err
}

func spec(n *unfinishedNode) core.NodeSpec {
	return core.NodeSpec{Final: n.final, FinalOutput: n.finalOut, Trans: n.trans}
}
