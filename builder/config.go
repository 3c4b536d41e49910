// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults (no surprises):
//   • registry = DefaultRegistryTable buckets × DefaultRegistryMRU entries
//   • kind     = DefaultKind
//   • logger   = discards everything

package builder

import "log/slog"

// builderConfig aggregates all knobs used by New and Memory.
type builderConfig struct {
	// Registry geometry; either value 0 disables suffix sharing.
	tableSize int
	mruSize   int
	// Type tag written in the header.
	kind uint64
	// Destination for debug records.
	logger *slog.Logger
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		tableSize: DefaultRegistryTable,
		mruSize:   DefaultRegistryMRU,
		kind:      DefaultKind,
		logger:    slog.New(slog.DiscardHandler),
	}

	// Apply options in the given order; last-wins semantics.
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
