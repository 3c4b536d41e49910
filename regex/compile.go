package regex

import (
	"fmt"
	"regexp/syntax"
	"slices"
	"unicode"
	"unicode/utf8"
)

type nfaKind uint8

const (
	nfaSplit nfaKind = iota // epsilon edges to every state in eps
	nfaRange                // consumes one byte in [lo, hi], then next
	nfaMatch                // accepting
	nfaFail                 // no way out
)

// nfaState is one Thompson NFA state over bytes.
type nfaState struct {
	kind   nfaKind
	lo, hi byte
	next   int
	eps    []int
}

// compiler builds the NFA back to front: every node is compiled knowing
// the state that follows it, and returns its own entry state.
type compiler struct {
	states []nfaState
}

// compileNFA parses pattern and returns the NFA and its start state.
func compileNFA(pattern string) ([]nfaState, int, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrUnsupportedPattern, err)
	}
	re = re.Simplify()

	c := &compiler{}
	match := c.add(nfaState{kind: nfaMatch})
	start, err := c.compile(re, match)
	if err != nil {
		return nil, 0, err
	}

	return c.states, start, nil
}

func (c *compiler) add(s nfaState) int {
	c.states = append(c.states, s)
	return len(c.states) - 1
}

func (c *compiler) compile(re *syntax.Regexp, next int) (int, error) {
	if len(c.states) > maxNFAStates {
		return 0, fmt.Errorf("%w: more than %d NFA states", ErrAutomatonTooLarge, maxNFAStates)
	}

	switch re.Op {
	case syntax.OpNoMatch:
		return c.add(nfaState{kind: nfaFail}), nil

	case syntax.OpEmptyMatch:
		return next, nil

	case syntax.OpLiteral:
		fold := re.Flags&syntax.FoldCase != 0
		for i := len(re.Rune) - 1; i >= 0; i-- {
			r := re.Rune[i]
			if fold {
				next = c.ranges(foldRanges(r), next)
			} else {
				next = c.ranges([]rune{r, r}, next)
			}
		}
		return next, nil

	case syntax.OpCharClass:
		return c.ranges(re.Rune, next), nil

	case syntax.OpAnyCharNotNL:
		return c.ranges([]rune{0, '\n' - 1, '\n' + 1, unicode.MaxRune}, next), nil

	case syntax.OpAnyChar:
		return c.ranges([]rune{0, unicode.MaxRune}, next), nil

	case syntax.OpCapture:
		return c.compile(re.Sub[0], next)

	case syntax.OpConcat:
		for i := len(re.Sub) - 1; i >= 0; i-- {
			var err error
			if next, err = c.compile(re.Sub[i], next); err != nil {
				return 0, err
			}
		}
		return next, nil

	case syntax.OpAlternate:
		starts := make([]int, 0, len(re.Sub))
		for _, sub := range re.Sub {
			s, err := c.compile(sub, next)
			if err != nil {
				return 0, err
			}
			starts = append(starts, s)
		}
		return c.add(nfaState{kind: nfaSplit, eps: starts}), nil

	case syntax.OpStar, syntax.OpPlus:
		loop := c.add(nfaState{kind: nfaSplit})
		body, err := c.compile(re.Sub[0], loop)
		if err != nil {
			return 0, err
		}
		c.states[loop].eps = []int{body, next}
		if re.Op == syntax.OpPlus {
			return body, nil
		}
		return loop, nil

	case syntax.OpQuest:
		body, err := c.compile(re.Sub[0], next)
		if err != nil {
			return 0, err
		}
		return c.add(nfaState{kind: nfaSplit, eps: []int{body, next}}), nil

	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return 0, fmt.Errorf("%w: empty-width assertion %q", ErrUnsupportedPattern, re.String())

	default:
		// OpRepeat is gone after Simplify; anything else is new to us.
		return 0, fmt.Errorf("%w: operator %v", ErrUnsupportedPattern, re.Op)
	}
}

// ranges compiles a rune class given as [lo0, hi0, lo1, hi1, ...] into an
// alternation of UTF-8 byte-range chains ending in next.
func (c *compiler) ranges(pairs []rune, next int) int {
	var starts []int
	for i := 0; i+1 < len(pairs); i += 2 {
		for _, seq := range utf8Sequences(pairs[i], pairs[i+1]) {
			s := next
			for j := len(seq) - 1; j >= 0; j-- {
				s = c.add(nfaState{kind: nfaRange, lo: seq[j].lo, hi: seq[j].hi, next: s})
			}
			starts = append(starts, s)
		}
	}

	switch len(starts) {
	case 0:
		return c.add(nfaState{kind: nfaFail})
	case 1:
		return starts[0]
	default:
		return c.add(nfaState{kind: nfaSplit, eps: starts})
	}
}

// foldRanges returns r and every rune that simple-folds to it, as pairs.
func foldRanges(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	slices.Sort(orbit)

	pairs := make([]rune, 0, 2*len(orbit))
	for _, f := range orbit {
		if f > utf8.MaxRune {
			continue
		}
		pairs = append(pairs, f, f)
	}

	return pairs
}
