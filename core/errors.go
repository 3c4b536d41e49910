// SPDX-License-Identifier: MIT
// Package: lvfst/core
//
// errors.go: sentinel errors for the core package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Every load failure is ErrCorrupt joined with the precise reason, so
//     errors.Is(err, ErrCorrupt) and errors.Is(err, ErrChecksum) both hold.
//   • Lookups and traversals never fail: a buffer accepted by Load is
//     decoded defensively and never panics.

package core

import (
	"errors"
	"fmt"
)

// ErrCorrupt indicates a buffer that is not a valid transducer.
var ErrCorrupt = errors.New("core: corrupt transducer")

// ErrBadMagic indicates the buffer does not start with the LVFS magic.
var ErrBadMagic = errors.New("core: bad magic")

// ErrVersion indicates a format version this package cannot read.
var ErrVersion = errors.New("core: unsupported format version")

// ErrTruncated indicates a buffer shorter than its header and footer, or a
// node region that ends in the middle of a record.
var ErrTruncated = errors.New("core: truncated buffer")

// ErrBadRoot indicates a root address outside the node region.
var ErrBadRoot = errors.New("core: root address out of range")

// ErrChecksum indicates the footer checksum does not match the buffer.
var ErrChecksum = errors.New("core: checksum mismatch")

// ErrBadNode indicates a node record that does not decode inside the node
// region, or a transition that does not point at an earlier record.
// It is reported by Verify only.
var ErrBadNode = errors.New("core: malformed node record")

// corrupt joins reason under ErrCorrupt and adds a short context.
func corrupt(reason error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%w: %w", ErrCorrupt, reason)
	}

	return fmt.Errorf("%w: %w: %s", ErrCorrupt, reason, fmt.Sprintf(format, args...))
}
