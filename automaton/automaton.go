// SPDX-License-Identifier: MIT
// Package: lvfst/automaton
//
// automaton.go: the Automaton contract and the base automata.

package automaton

// Automaton is a deterministic automaton over bytes with state type S.
//
// Contract:
//   - Start returns the initial state.
//   - IsMatch reports whether the key consumed so far is accepted.
//   - CanMatch returns false only when no continuation of the key consumed so
//     far can ever be accepted. It is a pruning signal, distinct from
//     !IsMatch.
//   - Accept returns the state reached by consuming b. It must not mutate s.
type Automaton[S any] interface {
	Start() S
	IsMatch(s S) bool
	CanMatch(s S) bool
	Accept(s S, b byte) S
}

// AlwaysMatch accepts every key. It is the automaton behind plain range
// queries.
type AlwaysMatch struct{}

// Start returns the only state.
func (AlwaysMatch) Start() struct{} { return struct{}{} }

// IsMatch always reports true.
func (AlwaysMatch) IsMatch(struct{}) bool { return true }

// CanMatch always reports true.
func (AlwaysMatch) CanMatch(struct{}) bool { return true }

// Accept ignores b.
func (AlwaysMatch) Accept(s struct{}, _ byte) struct{} { return s }

// StrAutomaton accepts exactly one key.
// State is the number of bytes matched so far, or -1 once the input diverged.
type StrAutomaton struct {
	key []byte
}

// Str returns an automaton matching exactly key.
// Combine it with StartsWith (see Prefix) for prefix queries.
func Str(key string) *StrAutomaton {
	return &StrAutomaton{key: []byte(key)}
}

// Start returns position 0.
func (a *StrAutomaton) Start() int { return 0 }

// IsMatch reports whether the whole key has been consumed.
func (a *StrAutomaton) IsMatch(pos int) bool { return pos == len(a.key) }

// CanMatch reports whether the input still follows the key.
func (a *StrAutomaton) CanMatch(pos int) bool { return pos >= 0 }

// Accept advances when b is the next key byte and dies otherwise.
func (a *StrAutomaton) Accept(pos int, b byte) int {
	if pos >= 0 && pos < len(a.key) && a.key[pos] == b {
		return pos + 1
	}

	return -1
}

// SubsequenceAutomaton accepts every key that contains its needle as a
// (not necessarily contiguous) subsequence of bytes.
type SubsequenceAutomaton struct {
	needle []byte
}

// Subsequence returns an automaton matching keys that contain the bytes of
// needle in order, e.g. "fb" matches "foobar".
func Subsequence(needle string) *SubsequenceAutomaton {
	return &SubsequenceAutomaton{needle: []byte(needle)}
}

// Start returns 0 needle bytes seen.
func (a *SubsequenceAutomaton) Start() int { return 0 }

// IsMatch reports whether the whole needle was seen.
func (a *SubsequenceAutomaton) IsMatch(n int) bool { return n == len(a.needle) }

// CanMatch is always true: any key can still be extended with the needle.
func (a *SubsequenceAutomaton) CanMatch(int) bool { return true }

// Accept consumes the next needle byte when b equals it.
func (a *SubsequenceAutomaton) Accept(n int, b byte) int {
	if n < len(a.needle) && a.needle[n] == b {
		return n + 1
	}

	return n
}
