package levenshtein

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Levenshtein: bounded edit-distance automaton
//
// Description:
//
//	Accepts every key within edit distance k of a query, where insertions,
//	deletions and substitutions each cost 1 and operate on Unicode scalar
//	values, not bytes.
//
// Algorithm Outline (determinised DP rows):
//  1. Let q = query runes, m = len(q). A DP row has m+1 cells; cell i holds
//     the distance between the key read so far and q[:i], clipped at k+1
//     since larger values can never come back under k.
//  2. Start row: [0, 1, ..., m].
//  3. Reading rune c from row R gives row N:
//     N[0] = R[0] + 1
//     N[i] = min(R[i-1] + (q[i-1] != c), R[i] + 1, N[i-1] + 1)
//  4. Runes not in q all behave identically, so the alphabet is the distinct
//     runes of q plus one "other" symbol. A breadth-first walk from the start
//     row over that alphabet enumerates every reachable row once; each row is
//     a DFA state.
//  5. A row whose cells all exceed k is the dead state, id 0. Every other
//     state can still reach a match, so CanMatch is simply "not dead".
//  6. Keys arrive as bytes: the automaton state buffers an incomplete UTF-8
//     sequence and advances the row only once a rune is complete. Invalid
//     UTF-8 leads to the dead state.
//
// Complexity:
//
//	Build  = O(S · σ · m) for S states and σ = distinct runes + 1
//	Accept = O(1) per byte (plus a map lookup per non-ASCII rune)
//	Memory = O(S · σ) transition table
//
// Errors:
//   - ErrInvalidDistance: distance < 0.
//   - ErrAutomatonTooLarge: more states than the limit, or distance > 253.

// Levenshtein is an immutable automaton; share it freely between searches.
type Levenshtein struct {
	query    string
	distance int

	ascii  [utf8.RuneSelf]int32 // symbol of each ASCII rune
	symbol map[rune]int32       // symbol of each non-ASCII query rune
	nsym   int32                // distinct runes + 1; the last symbol is "other"

	trans []int32 // trans[state*nsym+symbol] = next state
	match []bool
}

// New builds the automaton for query and the maximum edit distance distance.
func New(query string, distance int, opts ...Option) (*Levenshtein, error) {
	cfg := config{stateLimit: DefaultStateLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if distance < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDistance, distance)
	}
	if distance > maxDistance {
		return nil, fmt.Errorf("%w: distance %d above %d", ErrAutomatonTooLarge, distance, maxDistance)
	}

	// 1) Alphabet.
	q := []rune(query)
	distinct := slices.Clone(q)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	l := &Levenshtein{
		query:    query,
		distance: distance,
		symbol:   make(map[rune]int32),
		nsym:     int32(len(distinct)) + 1,
	}
	other := l.nsym - 1
	for i := range l.ascii {
		l.ascii[i] = other
	}
	for i, r := range distinct {
		if r < utf8.RuneSelf {
			l.ascii[r] = int32(i)
		} else {
			l.symbol[r] = int32(i)
		}
	}

	// 2) Breadth-first enumeration of rows.
	m, k := len(q), distance
	clip := byte(k + 1)
	dead := make([]byte, m+1)
	for i := range dead {
		dead[i] = clip
	}
	start := make([]byte, m+1)
	for i := range start {
		start[i] = byte(min(i, k+1))
	}

	ids := map[string]int32{string(dead): 0, string(start): 1}
	rows := [][]byte{dead, start}
	next := make([]byte, m+1)

	for id := 0; id < len(rows); id++ {
		row := rows[id]
		for sym := int32(0); sym < l.nsym; sym++ {
			// 2a) Advance the row by one symbol.
			next[0] = min(row[0]+1, clip)
			for i := 1; i <= m; i++ {
				cost := byte(1)
				if sym != other && distinct[sym] == q[i-1] {
					cost = 0
				}
				next[i] = min(row[i-1]+cost, row[i]+1, next[i-1]+1, clip)
			}

			// 2b) Intern it. Clipping makes every dead row equal to dead, so
			//     dead rows always hit id 0 here.
			to, ok := ids[string(next)]
			if !ok {
				if len(rows) >= cfg.stateLimit {
					return nil, fmt.Errorf("%w: %q at distance %d needs more than %d states",
						ErrAutomatonTooLarge, query, distance, cfg.stateLimit)
				}
				to = int32(len(rows))
				rows = append(rows, slices.Clone(next))
				ids[string(next)] = to
			}
			l.trans = append(l.trans, to)
		}
	}

	// 3) Acceptance.
	l.match = make([]bool, len(rows))
	for id, row := range rows {
		l.match[id] = id != 0 && row[m] <= byte(k)
	}

	return l, nil
}

// Query returns the query the automaton was built for.
func (l *Levenshtein) Query() string { return l.query }

// Distance returns the maximum edit distance.
func (l *Levenshtein) Distance() int { return l.distance }

// States returns the number of DFA states, the dead state included.
func (l *Levenshtein) States() int { return len(l.match) }

// Start returns the state for the empty key.
func (l *Levenshtein) Start() State { return State{row: 1} }

// IsMatch reports whether the key read so far is within the distance.
// A key ending inside a UTF-8 sequence never matches.
func (l *Levenshtein) IsMatch(s State) bool { return s.n == 0 && l.match[s.row] }

// CanMatch reports whether some continuation can still match.
func (l *Levenshtein) CanMatch(s State) bool { return s.row != 0 }

// Accept consumes one byte of UTF-8 input.
func (l *Levenshtein) Accept(s State, b byte) State {
	if s.row == 0 {
		return State{}
	}

	// 1) ASCII fast path.
	if s.n == 0 && b < utf8.RuneSelf {
		return State{row: l.step(s.row, l.ascii[b])}
	}

	// 2) Buffer until the sequence is complete (or proven invalid).
	s.buf[s.n] = b
	s.n++
	if !utf8.FullRune(s.buf[:s.n]) {
		return s
	}
	r, size := utf8.DecodeRune(s.buf[:s.n])
	if (r == utf8.RuneError && size <= 1) || size != int(s.n) {
		return State{}
	}

	sym, ok := l.symbol[r]
	if !ok {
		sym = l.nsym - 1
	}

	return State{row: l.step(s.row, sym)}
}

func (l *Levenshtein) step(row, sym int32) int32 {
	return l.trans[row*l.nsym+sym]
}

// String describes the automaton, e.g. `levenshtein("foo", 1)`.
func (l *Levenshtein) String() string {
	return fmt.Sprintf("levenshtein(%q, %d)", l.query, l.distance)
}
