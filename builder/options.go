// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// options.go: functional options for the builder package.
//
// Contract (strict):
//   • Options are functional (type Option func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Builder methods themselves never panic.
//   • No hidden globals; everything flows through builderConfig.

package builder

import "log/slog"

// Option customizes a Builder before the first key is added.
// Complexity: applying N options costs O(N) time, O(1) space.
type Option func(*builderConfig)

// WithRegistry sets the registry geometry: tableSize hash buckets, each
// remembering the mruSize most recently used nodes. WithRegistry(0, 0)
// disables suffix sharing; the result is correct but not minimal.
// Panics on negative sizes.
func WithRegistry(tableSize, mruSize int) Option {
	if tableSize < 0 || mruSize < 0 {
		panic("builder: WithRegistry(negative size)")
	}
	return func(c *builderConfig) {
		c.tableSize, c.mruSize = tableSize, mruSize
	}
}

// WithKind stores a user-defined type tag in the header (see core.Store.Kind).
func WithKind(kind uint64) Option {
	return func(c *builderConfig) {
		c.kind = kind
	}
}

// WithLogger routes the builder's debug records to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(c *builderConfig) {
		c.logger = l
	}
}
