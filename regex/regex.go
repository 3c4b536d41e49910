// SPDX-License-Identifier: MIT
// Package: lvfst/regex
//
// regex.go: the compiled automaton and its Automaton[int] methods.

package regex

import (
	"fmt"
	"strconv"
)

// Regex is an immutable byte-level DFA matching whole keys against a
// pattern. States are ints; 0 is the dead state.
type Regex struct {
	pattern string
	dfa     *dfa
}

// New compiles pattern. The match is anchored at both ends: a key matches
// only if the pattern matches all of it.
//
// Errors:
//   - ErrUnsupportedPattern if pattern does not parse or uses an empty-width
//     assertion.
//   - ErrAutomatonTooLarge if the DFA needs more states than the size limit.
func New(pattern string, opts ...Option) (*Regex, error) {
	cfg := config{sizeLimit: DefaultSizeLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	nfa, start, err := compileNFA(pattern)
	if err != nil {
		return nil, fmt.Errorf("regex %q: %w", pattern, err)
	}
	d, err := determinize(nfa, start, cfg.sizeLimit)
	if err != nil {
		return nil, fmt.Errorf("regex %q: %w", pattern, err)
	}

	return &Regex{pattern: pattern, dfa: d}, nil
}

// Pattern returns the source pattern.
func (r *Regex) Pattern() string { return r.pattern }

// States returns the number of DFA states, the dead state included.
func (r *Regex) States() int { return len(r.dfa.match) }

// Start returns the initial state. It is the dead state when the pattern
// matches nothing.
func (r *Regex) Start() int { return int(r.dfa.start) }

// IsMatch reports whether s accepts.
func (r *Regex) IsMatch(s int) bool { return r.dfa.match[s] }

// CanMatch reports whether some continuation from s can still match.
func (r *Regex) CanMatch(s int) bool { return s != dead }

// Accept returns the successor of s on b.
func (r *Regex) Accept(s int, b byte) int { return int(r.dfa.trans[s*256+int(b)]) }

// String returns a short description such as regex("a[a-z]*").
func (r *Regex) String() string { return "regex(" + strconv.Quote(r.pattern) + ")" }
