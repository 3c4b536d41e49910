package index_test

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfst/automaton"
	"github.com/katalvlaran/lvfst/builder"
	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/index"
	"github.com/katalvlaran/lvfst/levenshtein"
	"github.com/katalvlaran/lvfst/merge"
	"github.com/katalvlaran/lvfst/regex"
)

var months = map[string]core.Output{
	"april": 30, "august": 31, "december": 31, "february": 28,
	"january": 31, "july": 31, "june": 30, "march": 31,
}

func TestSet_Basics(t *testing.T) {
	s, err := index.NewSetFromUnsorted([]string{"c", "a", "b", "a"})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains([]byte("b")))
	assert.False(t, s.Contains([]byte("d")))
	assert.Equal(t, []string{"a", "b", "c"}, core.CollectStrings(s.Stream()))
	assert.Equal(t, []string{"b", "c"}, core.CollectStrings(s.Range().Gt([]byte("a")).Stream()))
	assert.Equal(t, index.KindSet, s.Store().Kind())

	_, err = index.NewSet([]string{"b", "a"})
	assert.ErrorIs(t, err, builder.ErrOutOfOrder)
}

func TestMap_Basics(t *testing.T) {
	m, err := index.NewMapFromUnsorted(months)
	require.NoError(t, err)

	assert.Equal(t, len(months), m.Len())
	for k, want := range months {
		got, ok := m.Get([]byte(k))
		assert.True(t, ok, k)
		assert.Equal(t, want, got, k)
	}
	_, ok := m.Get([]byte("ju"))
	assert.False(t, ok)
	assert.True(t, m.Contains([]byte("march")))
	assert.Equal(t, "map(8 keys)", m.String())

	es := core.Collect(m.Range().Ge([]byte("j")).Lt([]byte("k")).Stream())
	require.Len(t, es, 3)
	assert.Equal(t, "january", string(es[0].Key))
	assert.Equal(t, core.Output(31), es[0].Output)

	keys, err := m.Keys()
	require.NoError(t, err)
	assert.Equal(t, m.Len(), keys.Len())

	_, err = index.NewMap([]string{"a"}, nil)
	assert.Error(t, err)
}

func TestLoad_RoundTripAndKind(t *testing.T) {
	s, err := index.NewSet([]string{"x", "y"})
	require.NoError(t, err)
	m, err := index.NewMap([]string{"x"}, []core.Output{9})
	require.NoError(t, err)

	s2, err := index.LoadSet(slices.Clone(s.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, core.CollectStrings(s2.Stream()))

	m2, err := index.LoadMap(slices.Clone(m.Bytes()))
	require.NoError(t, err)
	v, _ := m2.Get([]byte("x"))
	assert.Equal(t, core.Output(9), v)

	_, err = index.LoadSet(m.Bytes())
	assert.ErrorIs(t, err, index.ErrKind)
	_, err = index.LoadMap(s.Bytes())
	assert.ErrorIs(t, err, index.ErrKind)

	// Untagged stores load as either view.
	plain, err := builder.Build([]string{"p"})
	require.NoError(t, err)
	_, err = index.LoadSet(plain.Bytes())
	assert.NoError(t, err)
	_, err = index.LoadMap(plain.Bytes())
	assert.NoError(t, err)

	bad := slices.Clone(s.Bytes())
	bad[len(bad)/2] ^= 0xFF
	_, err = index.LoadSet(bad)
	assert.ErrorIs(t, err, core.ErrCorrupt)
}

// TestSearch_SetInMap uses a set's store as the automaton filtering a map.
func TestSearch_SetInMap(t *testing.T) {
	m, err := index.NewMapFromUnsorted(months)
	require.NoError(t, err)
	s, err := index.NewSetFromUnsorted([]string{"june", "july", "smarch", "april"})
	require.NoError(t, err)

	got := core.Collect(index.Search[core.StoreState](m, s.Store()).Stream())
	require.Len(t, got, 3)
	assert.Equal(t, []core.Entry{
		{Key: []byte("april"), Output: 30},
		{Key: []byte("july"), Output: 31},
		{Key: []byte("june"), Output: 30},
	}, got)
}

func TestSearch_Automata(t *testing.T) {
	m, err := index.NewMapFromUnsorted(months)
	require.NoError(t, err)

	lev, err := levenshtein.New("jume", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"june"}, core.CollectStrings(index.Search[levenshtein.State](m, lev).Stream()))

	re, err := regex.New(`.*ber`)
	require.NoError(t, err)
	assert.Equal(t, []string{"december"}, core.CollectStrings(index.Search[int](m, re).Stream()))

	pre := automaton.Prefix("ju")
	got := core.CollectStrings(index.Search[automaton.StartsWithState[int]](m, pre).Stream())
	assert.Equal(t, []string{"july", "june"}, got)
}

func TestSet_Relations(t *testing.T) {
	abc, _ := index.NewSet([]string{"a", "b", "c"})
	ab, _ := index.NewSet([]string{"a", "b"})
	bd, _ := index.NewSet([]string{"b", "d"})
	xy, _ := index.NewSet([]string{"x", "y"})

	assert.True(t, ab.IsSubset(abc))
	assert.False(t, abc.IsSubset(ab))
	assert.True(t, abc.IsSuperset(ab))
	assert.False(t, bd.IsSubset(abc))
	assert.True(t, abc.IsDisjoint(xy))
	assert.False(t, abc.IsDisjoint(bd))
	assert.True(t, abc.IsSubset(abc))
}

func TestOp_RebuildFromMerge(t *testing.T) {
	a, _ := index.NewMap([]string{"k", "m"}, []core.Output{1, 2})
	b, _ := index.NewMap([]string{"k", "z"}, []core.Output{10, 20})

	sum, err := index.NewMapFromStream(merge.Flatten(a.Op().Add(b.Stream()).Union(), merge.Sum))
	require.NoError(t, err)
	v, _ := sum.Get([]byte("k"))
	assert.Equal(t, core.Output(11), v)
	assert.Equal(t, 3, sum.Len())

	both, err := index.NewSetFromStream(merge.Flatten(a.Op().Add(b.Stream()).Intersection(), merge.First))
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, core.CollectStrings(both.Stream()))
}

func TestInstrument(t *testing.T) {
	s, _ := index.NewSet([]string{"a", "b", "c"})

	st := index.Instrument(context.Background(), "range", s.Stream())
	assert.Equal(t, []string{"a", "b", "c"}, core.CollectStrings(st))
	assert.Equal(t, 3, st.Count())
	_, _, ok := st.Next()
	assert.False(t, ok)

	early := index.Instrument(context.Background(), "range", s.Stream())
	_, _, ok = early.Next()
	assert.True(t, ok)
	early.Close()
	early.Close()
	_, _, ok = early.Next()
	assert.False(t, ok)
	assert.Equal(t, 1, early.Count())
}
