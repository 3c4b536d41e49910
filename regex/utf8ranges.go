package regex

import "unicode/utf8"

// byteRange is an inclusive range of byte values.
type byteRange struct {
	lo, hi byte
}

// utf8Sequence is a sequence of 1 to 4 byte ranges matching the UTF-8
// encodings of a contiguous block of scalar values.
type utf8Sequence []byteRange

// maxScalar[i] is the largest scalar value encoded with i+1 bytes.
var maxScalar = [utf8.UTFMax]rune{0x7F, 0x7FF, 0xFFFF, utf8.MaxRune}

// utf8Sequences splits the scalar range [lo, hi] into byte-range sequences
// that together match exactly the UTF-8 encodings of its scalar values, in
// ascending order. Surrogates are never matched.
//
// Algorithm (split until each piece encodes as a cross product):
//  1. Cut out the surrogate block D800..DFFF.
//  2. Split at every encoded-length boundary so both ends have the same
//     length.
//  3. Split wherever the ends differ above a continuation-byte boundary
//     without covering that boundary completely.
//  4. What is left encodes to start and end byte strings whose positions
//     pair up into independent byte ranges.
func utf8Sequences(lo, hi rune) []utf8Sequence {
	if hi > utf8.MaxRune {
		hi = utf8.MaxRune
	}
	if lo < 0 {
		lo = 0
	}

	type scalarRange struct{ lo, hi rune }
	var (
		out   []utf8Sequence
		stack = []scalarRange{{lo, hi}}
	)

top:
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

	inner:
		for {
			// 1) Surrogates.
			if r.lo < 0xE000 && r.hi > 0xD7FF {
				stack = append(stack, scalarRange{0xE000, r.hi})
				r.hi = 0xD7FF
				continue inner
			}
			if r.lo > r.hi {
				continue top
			}

			// 2) Encoded length.
			for _, limit := range maxScalar[:utf8.UTFMax-1] {
				if r.lo <= limit && limit < r.hi {
					stack = append(stack, scalarRange{limit + 1, r.hi})
					r.hi = limit
					continue inner
				}
			}
			if r.hi < utf8.RuneSelf {
				out = append(out, utf8Sequence{{byte(r.lo), byte(r.hi)}})
				continue top
			}

			// 3) Continuation boundaries.
			for i := 1; i < utf8.UTFMax; i++ {
				m := rune(1)<<(6*i) - 1
				if r.lo&^m != r.hi&^m {
					if r.lo&m != 0 {
						stack = append(stack, scalarRange{(r.lo | m) + 1, r.hi})
						r.hi = r.lo | m
						continue inner
					}
					if r.hi&m != m {
						stack = append(stack, scalarRange{r.hi &^ m, r.hi})
						r.hi = r.hi&^m - 1
						continue inner
					}
				}
			}

			// 4) Encode both ends.
			var a, b [utf8.UTFMax]byte
			n := utf8.EncodeRune(a[:], r.lo)
			utf8.EncodeRune(b[:], r.hi)
			seq := make(utf8Sequence, n)
			for i := range seq {
				seq[i] = byteRange{a[i], b[i]}
			}
			out = append(out, seq)
			continue top
		}
	}

	return out
}
