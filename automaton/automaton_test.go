package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvfst/automaton"
)

// run feeds key through a and reports (IsMatch, CanMatch) of the final state.
func run[S any](a automaton.Automaton[S], key string) (bool, bool) {
	s := a.Start()
	for i := 0; i < len(key); i++ {
		s = a.Accept(s, key[i])
	}

	return a.IsMatch(s), a.CanMatch(s)
}

func TestAlwaysMatch(t *testing.T) {
	for _, k := range []string{"", "a", "anything at all"} {
		m, c := run[struct{}](automaton.AlwaysMatch{}, k)
		assert.True(t, m, k)
		assert.True(t, c, k)
	}
}

func TestStr(t *testing.T) {
	a := automaton.Str("foo")

	m, c := run[int](a, "foo")
	assert.True(t, m)
	assert.True(t, c)

	m, c = run[int](a, "fo")
	assert.False(t, m)
	assert.True(t, c, "a strict prefix can still match")

	m, c = run[int](a, "fob")
	assert.False(t, m)
	assert.False(t, c, "diverged input can never match")

	m, c = run[int](a, "food")
	assert.False(t, m)
	assert.False(t, c, "overlong input can never match")
}

func TestSubsequence(t *testing.T) {
	a := automaton.Subsequence("fb")

	m, _ := run[int](a, "foobar")
	assert.True(t, m)

	m, c := run[int](a, "foo")
	assert.False(t, m)
	assert.True(t, c)

	m, _ = run[int](a, "bf")
	assert.False(t, m)
}

func TestComplement(t *testing.T) {
	a := automaton.Complement[int](automaton.Str("foo"))

	m, c := run[int](a, "foo")
	assert.False(t, m)
	assert.True(t, c)

	m, c = run[int](a, "fob")
	assert.True(t, m)
	assert.True(t, c, "complement never prunes")
}

func TestIntersectionAndUnion(t *testing.T) {
	foo := automaton.Str("foo")
	sub := automaton.Subsequence("oo")

	and := automaton.Intersection[int, int](foo, sub)
	or := automaton.Union[int, int](foo, sub)

	tests := []struct {
		key           string
		and, or       bool
		andCan, orCan bool
	}{
		{key: "foo", and: true, or: true, andCan: true, orCan: true},
		// Only Str is dead here; the product still prunes.
		{key: "boo", and: false, or: true, andCan: false, orCan: true},
		{key: "fo", and: false, or: false, andCan: true, orCan: true},
		{key: "x", and: false, or: false, andCan: false, orCan: true},
	}
	for _, tc := range tests {
		m, c := run[automaton.Pair[int, int]](and, tc.key)
		assert.Equal(t, tc.and, m, "and match %q", tc.key)
		assert.Equal(t, tc.andCan, c, "and can %q", tc.key)

		m, c = run[automaton.Pair[int, int]](or, tc.key)
		assert.Equal(t, tc.or, m, "or match %q", tc.key)
		assert.Equal(t, tc.orCan, c, "or can %q", tc.key)
	}
}

func TestUnionPrunesWhenBothDead(t *testing.T) {
	or := automaton.Union[int, int](automaton.Str("ab"), automaton.Str("ac"))

	_, c := run[automaton.Pair[int, int]](or, "ad")
	assert.False(t, c)
}

func TestStartsWith(t *testing.T) {
	a := automaton.Prefix("fo")

	for _, k := range []string{"fo", "foo", "fox", "fo\xff"} {
		m, c := run[automaton.StartsWithState[int]](a, k)
		assert.True(t, m, k)
		assert.True(t, c, k)
	}

	m, c := run[automaton.StartsWithState[int]](a, "f")
	assert.False(t, m)
	assert.True(t, c)

	m, c = run[automaton.StartsWithState[int]](a, "fa")
	assert.False(t, m)
	assert.False(t, c)
}

func TestStartsWithEmptyMatchIsSatisfiedAtStart(t *testing.T) {
	a := automaton.StartsWith[int](automaton.Str(""))
	s := a.Start()
	assert.True(t, s.Satisfied)
	assert.True(t, a.IsMatch(a.Accept(s, 'z')))
}
