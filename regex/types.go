package regex

import "errors"

var (
	// ErrUnsupportedPattern indicates a pattern that does not parse, or that
	// uses a construct a byte-level DFA cannot express: empty-width
	// assertions (^ $ \A \z \b \B).
	ErrUnsupportedPattern = errors.New("regex: unsupported pattern")

	// ErrAutomatonTooLarge indicates that determinisation produced more states
	// than the configured limit (see WithSizeLimit).
	ErrAutomatonTooLarge = errors.New("regex: automaton exceeds size limit")
)

// DefaultSizeLimit bounds the number of DFA states built by New.
const DefaultSizeLimit = 10000

// maxNFAStates bounds the intermediate NFA, mostly hit by huge Unicode
// classes under large counted repetitions.
const maxNFAStates = 1 << 20

// Option customizes New.
type Option func(*config)

type config struct {
	sizeLimit int
}

// WithSizeLimit sets the largest number of DFA states New may build before
// failing with ErrAutomatonTooLarge. Panics if n < 1.
func WithSizeLimit(n int) Option {
	if n < 1 {
		panic("regex: WithSizeLimit(n<1)")
	}
	return func(c *config) { c.sizeLimit = n }
}
