package regex

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func (s utf8Sequence) matches(b []byte) bool {
	if len(b) != len(s) {
		return false
	}
	for i, r := range s {
		if b[i] < r.lo || b[i] > r.hi {
			return false
		}
	}

	return true
}

func TestUTF8Sequences_Small(t *testing.T) {
	assert.Equal(t, []utf8Sequence{{{'a', 'z'}}}, utf8Sequences('a', 'z'))
	assert.Equal(t,
		[]utf8Sequence{{{0x00, 0x7F}}, {{0xC2, 0xDF}, {0x80, 0xBF}}},
		utf8Sequences(0, 0x7FF))
	assert.Empty(t, utf8Sequences(0xD800, 0xDFFF))
}

// TestUTF8Sequences_Exact checks, around every interesting boundary, that
// each scalar in range is matched by exactly one sequence and nothing else
// is matched at all.
func TestUTF8Sequences_Exact(t *testing.T) {
	ranges := [][2]rune{
		{0, utf8.MaxRune},
		{'a', 'z'},
		{0x7F, 0x80},
		{0x3B1, 0x3C9},
		{0x7FF, 0x800},
		{0xD000, 0xE100},
		{0x1234, 0x10FFF},
		{0xFFFF, 0x10000},
		{0x10400, 0x1044F},
		{0x2FFFF, 0x10FFFF},
	}
	probes := []rune{0, 0x7F, 0x80, 0x7FF, 0x800, 0xD7FF, 0xD800, 0xDFFF, 0xE000, 0xFFFF, 0x10000, 0x10FFFF}

	for _, rg := range ranges {
		seqs := utf8Sequences(rg[0], rg[1])

		var candidates []rune
		for _, p := range append(probes, rg[0], rg[1]) {
			for d := rune(-70); d <= 70; d++ {
				if c := p + d; c >= 0 && c <= utf8.MaxRune {
					candidates = append(candidates, c)
				}
			}
		}

		var buf [utf8.UTFMax]byte
		for _, c := range candidates {
			if !utf8.ValidRune(c) {
				continue
			}
			n := utf8.EncodeRune(buf[:], c)
			hits := 0
			for _, s := range seqs {
				if s.matches(buf[:n]) {
					hits++
				}
			}
			want := 0
			if c >= rg[0] && c <= rg[1] {
				want = 1
			}
			assert.Equal(t, want, hits, "range %X-%X rune %X", rg[0], rg[1], c)
		}
	}
}
