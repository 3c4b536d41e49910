package levenshtein

import "errors"

var (
	// ErrAutomatonTooLarge indicates that the query and distance produce more
	// DFA states than the configured limit (see WithStateLimit).
	ErrAutomatonTooLarge = errors.New("levenshtein: automaton exceeds state limit")

	// ErrInvalidDistance indicates a negative edit distance.
	ErrInvalidDistance = errors.New("levenshtein: distance must be non-negative")
)

// DefaultStateLimit bounds the number of DFA states built by New.
const DefaultStateLimit = 10000

// maxDistance is the largest distance whose clipped rows, plus one, still
// fit a byte.
const maxDistance = 253

// Option customizes New.
type Option func(*config)

type config struct {
	stateLimit int
}

// WithStateLimit sets the largest number of DFA states New may build before
// failing with ErrAutomatonTooLarge. Panics if n < 1.
func WithStateLimit(n int) Option {
	if n < 1 {
		panic("levenshtein: WithStateLimit(n<1)")
	}
	return func(c *config) { c.stateLimit = n }
}

// State is the automaton state: a DFA row id plus the bytes of a UTF-8
// sequence that is not complete yet.
//
// The zero State is the dead state.
type State struct {
	row int32
	buf [4]byte
	n   uint8
}

// Pending reports whether the state is in the middle of a UTF-8 sequence.
func (s State) Pending() bool { return s.n > 0 }
