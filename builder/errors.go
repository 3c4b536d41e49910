// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context using `%w` via builderErrorf.
//   • The first error poisons a Builder: every later Add, Insert or Finish
//     returns that same error.
//   • Validation panics are confined to option constructors (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrOutOfOrder indicates a key that is not strictly greater, byte-wise,
// than the key added before it.
// Usage: if errors.Is(err, ErrOutOfOrder) { /* sort the input */ }.
var ErrOutOfOrder = errors.New("builder: keys out of order")

// ErrDuplicateKey indicates a key equal to the previous one. It is a special
// case of ErrOutOfOrder: errors.Is(err, ErrOutOfOrder) also holds.
var ErrDuplicateKey = fmt.Errorf("%w: duplicate key", ErrOutOfOrder)

// ErrFinished indicates a call on a builder whose Finish already succeeded.
var ErrFinished = errors.New("builder: already finished")

// builderErrorf wraps sentinel with the method context and a formatted
// detail: "<Method>: <detail>: <sentinel>".
//
// Complexity: O(len(format) + Σlen(args)), negligible for our use.
func builderErrorf(method string, sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
