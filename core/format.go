// SPDX-License-Identifier: MIT
// Package: lvfst/core
//
// format.go: binary layout, version 1 (little endian).
//
//	header : magic "LVFS" (4) | version u32 | kind u64                  16 bytes
//	nodes  : node records; a record is written after every record it targets
//	footer : key count u64 | root address u64 | xxhash64(all bytes before it) 24 bytes
//
//	node   : flags u8             bit0 final, bit1 has final output
//	         widths u8            hi nibble output width, lo nibble delta width (0..8)
//	         count uvarint        number of transitions (0..256)
//	         final output uvarint present only when bit1 is set
//	         labels  [count]u8    strictly ascending
//	         outputs [count]uint  output width bytes each
//	         deltas  [count]uint  delta width bytes each; target = address - delta
//
// The encoder lives here, next to the decoder, so that the builder never
// needs to know the record layout.

package core

import (
	"encoding/binary"
	"math/bits"
)

// Format constants.
const (
	Magic      = "LVFS" // first four bytes of every buffer
	Version    = 1      // current format version
	HeaderSize = 16     // magic + version + kind
	FooterSize = 24     // count + root + checksum

	// ChecksumSize is the trailing part of the footer not covered by the checksum.
	ChecksumSize = 8
)

const (
	flagFinal    = 1 << 0
	flagFinalOut = 1 << 1

	maxTransitions = 256
)

// NodeSpec describes a frozen node about to be encoded.
type NodeSpec struct {
	Final       bool
	FinalOutput Output
	Trans       []Transition // ascending labels, every Target < the node's address
}

// AppendHeader appends the 16 byte header to dst.
func AppendHeader(dst []byte, kind uint64) []byte {
	dst = append(dst, Magic...)
	dst = binary.LittleEndian.AppendUint32(dst, Version)

	return binary.LittleEndian.AppendUint64(dst, kind)
}

// AppendFooterPrefix appends the checksummed part of the footer: key count
// and root address.
func AppendFooterPrefix(dst []byte, count uint64, root Addr) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, count)

	return binary.LittleEndian.AppendUint64(dst, uint64(root))
}

// AppendChecksum appends the final 8 footer bytes.
func AppendChecksum(dst []byte, sum uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, sum)
}

// AppendNode encodes n as the record that starts at address addr and appends
// it to dst. Output and delta widths are the smallest that fit the largest
// value of the node.
func AppendNode(dst []byte, addr Addr, n NodeSpec) []byte {
	// 1) Size the fixed-width columns.
	var maxOut, maxDelta uint64
	for _, t := range n.Trans {
		maxOut = max(maxOut, uint64(t.Out))
		maxDelta = max(maxDelta, uint64(addr-t.Target))
	}
	ow, aw := byteWidth(maxOut), byteWidth(maxDelta)

	// 2) Flags, widths, count and the optional final output.
	var flags byte
	if n.Final {
		flags |= flagFinal
		if n.FinalOutput != Zero {
			flags |= flagFinalOut
		}
	}
	dst = append(dst, flags, byte(ow<<4|aw))
	dst = binary.AppendUvarint(dst, uint64(len(n.Trans)))
	if flags&flagFinalOut != 0 {
		dst = binary.AppendUvarint(dst, uint64(n.FinalOutput))
	}

	// 3) Columns: labels, outputs, deltas.
	for _, t := range n.Trans {
		dst = append(dst, t.Label)
	}
	for _, t := range n.Trans {
		dst = appendUint(dst, uint64(t.Out), ow)
	}
	for _, t := range n.Trans {
		dst = appendUint(dst, uint64(addr-t.Target), aw)
	}

	return dst
}

// byteWidth returns the number of bytes needed to hold v (0 for v == 0).
func byteWidth(v uint64) int {
	return (bits.Len64(v) + 7) / 8
}

// appendUint appends the w low bytes of v, least significant first.
func appendUint(dst []byte, v uint64, w int) []byte {
	for i := 0; i < w; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}

	return dst
}

// readUint reads a w byte little-endian integer from b; len(b) >= w.
func readUint(b []byte, w int) uint64 {
	var v uint64
	for i := w - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v
}
