package merge_test

import (
	"bytes"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfst/automaton"
	"github.com/katalvlaran/lvfst/builder"
	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/levenshtein"
	"github.com/katalvlaran/lvfst/merge"
	"github.com/katalvlaran/lvfst/regex"
)

// mapOf builds a map store where each key's output is its position times
// mul, plus one.
func mapOf(t *testing.T, mul core.Output, keys ...string) *core.Store {
	t.Helper()
	slices.Sort(keys)
	outs := make([]core.Output, len(keys))
	for i := range outs {
		outs[i] = core.Output(i+1) * mul
	}
	st, err := builder.BuildMap(keys, outs)
	require.NoError(t, err)

	return st
}

func streams(stores ...*core.Store) []core.Streamer {
	out := make([]core.Streamer, len(stores))
	for i, st := range stores {
		out[i] = core.Range(st).Stream()
	}

	return out
}

type row struct {
	key  string
	outs []merge.IndexedOutput
}

func drain(s *merge.Stream) []row {
	var rows []row
	for k, outs := range merge.All(s) {
		rows = append(rows, row{string(k), slices.Clone(outs)})
	}

	return rows
}

func keysOf(rows []row) []string {
	ks := make([]string, len(rows))
	for i, r := range rows {
		ks[i] = r.key
	}

	return ks
}

func TestOps(t *testing.T) {
	a := []string{"a", "b", "c", "d"}
	b := []string{"b", "d", "e"}
	c := []string{"c", "d", "e", "f"}

	tests := []struct {
		name string
		run  func(*merge.OpBuilder) *merge.Stream
		want []string
	}{
		{"union", (*merge.OpBuilder).Union, []string{"a", "b", "c", "d", "e", "f"}},
		{"intersection", (*merge.OpBuilder).Intersection, []string{"d"}},
		{"difference", (*merge.OpBuilder).Difference, []string{"a"}},
		{"symmetric difference", (*merge.OpBuilder).SymmetricDifference, []string{"a", "d", "f"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ob := merge.NewOpBuilder().Add(streams(mapOf(t, 1, a...), mapOf(t, 10, b...), mapOf(t, 100, c...))...)
			assert.Equal(t, 3, ob.Len())
			assert.Equal(t, tc.want, keysOf(drain(tc.run(ob))))
		})
	}
}

func TestUnion_OutputsOrderedByIndex(t *testing.T) {
	s := merge.NewOpBuilder().
		Add(streams(mapOf(t, 1, "x", "y"), mapOf(t, 10, "y"), mapOf(t, 100, "w", "y"))...).
		Union()

	assert.Equal(t, []row{
		{"w", []merge.IndexedOutput{{Index: 2, Output: 100}}},
		{"x", []merge.IndexedOutput{{Index: 0, Output: 1}}},
		{"y", []merge.IndexedOutput{{Index: 0, Output: 2}, {Index: 1, Output: 10}, {Index: 2, Output: 200}}},
	}, drain(s))
}

func TestOps_Degenerate(t *testing.T) {
	empty := merge.NewOpBuilder()
	_, _, ok := empty.Union().Next()
	assert.False(t, ok)
	_, _, ok = merge.NewOpBuilder().Intersection().Next()
	assert.False(t, ok)
	_, _, ok = merge.NewOpBuilder().Difference().Next()
	assert.False(t, ok)

	one := mapOf(t, 1, "a", "b")
	for _, run := range []func(*merge.OpBuilder) *merge.Stream{
		(*merge.OpBuilder).Union,
		(*merge.OpBuilder).Intersection,
		(*merge.OpBuilder).Difference,
		(*merge.OpBuilder).SymmetricDifference,
	} {
		got := keysOf(drain(run(merge.NewOpBuilder().Add(streams(one)...))))
		assert.Equal(t, []string{"a", "b"}, got)
	}

	withEmpty := merge.NewOpBuilder().Add(streams(one, mapOf(t, 1))...)
	assert.Empty(t, drain(withEmpty.Intersection()))

	// The empty key sorts first and takes part like any other.
	s := merge.NewOpBuilder().Add(streams(mapOf(t, 1, "", "a"), mapOf(t, 1, ""))...).Intersection()
	assert.Equal(t, []string{""}, keysOf(drain(s)))

	// Once exhausted, a stream keeps reporting the end.
	_, _, ok = s.Next()
	assert.False(t, ok)
}

func TestOps_SelfMergeIsIdentity(t *testing.T) {
	st := mapOf(t, 3, "", "ant", "bee", "beetle", "cat")
	want := core.CollectStrings(core.Range(st).Stream())

	for name, run := range map[string]func(*merge.OpBuilder) *merge.Stream{
		"union":        (*merge.OpBuilder).Union,
		"intersection": (*merge.OpBuilder).Intersection,
	} {
		t.Run(name, func(t *testing.T) {
			rows := drain(run(merge.NewOpBuilder().Add(core.Range(st).Stream(), core.Range(st).Stream())))
			require.Equal(t, want, keysOf(rows))
			for _, r := range rows {
				out, ok := st.Get([]byte(r.key))
				require.True(t, ok, r.key)
				assert.Equal(t, []merge.IndexedOutput{{Index: 0, Output: out}, {Index: 1, Output: out}}, r.outs, r.key)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	a := mapOf(t, 1, "k", "m")  // k=1 m=2
	b := mapOf(t, 10, "k", "z") // k=10 z=20

	tests := []struct {
		name string
		fold merge.FoldFunc
		want []core.Output
	}{
		{"sum", merge.Sum, []core.Output{11, 2, 20}},
		{"first", merge.First, []core.Output{1, 2, 20}},
		{"last", merge.Last, []core.Output{10, 2, 20}},
		{"min", merge.Min, []core.Output{1, 2, 20}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := merge.Flatten(merge.NewOpBuilder().Add(streams(a, b)...).Union(), tc.fold)
			var got []core.Output
			for _, e := range core.Collect(f) {
				got = append(got, e.Output)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestFlatten_Rebuild feeds a merged stream back into a builder.
func TestFlatten_Rebuild(t *testing.T) {
	a := mapOf(t, 1, "apple", "pear")
	b := mapOf(t, 1, "fig", "pear")
	f := merge.Flatten(merge.NewOpBuilder().Add(streams(a, b)...).Union(), merge.Sum)

	bld := builder.Memory()
	for k, out := range core.All(f) {
		require.NoError(t, bld.Add(k, out))
	}
	require.NoError(t, bld.Finish())
	st, err := core.Load(bld.Bytes())
	require.NoError(t, err)

	assert.Equal(t, 3, st.Len())
	v, ok := st.Get([]byte("pear"))
	assert.True(t, ok)
	assert.Equal(t, core.Output(4), v)
}

// TestOps_AgreeWithAutomata checks that merging two searches gives what the
// combined automaton gives, on a random word list.
func TestOps_AgreeWithAutomata(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[string]bool{}
	var words []string
	for len(words) < 3000 {
		n := 1 + rng.Intn(7)
		var w bytes.Buffer
		for i := 0; i < n; i++ {
			w.WriteByte("fodcuxl"[rng.Intn(7)])
		}
		if !seen[w.String()] {
			seen[w.String()] = true
			words = append(words, w.String())
		}
	}
	st := mapOf(t, 1, words...)

	lev, err := levenshtein.New("foo", 3)
	require.NoError(t, err)
	re, err := regex.New(`(..)*`)
	require.NoError(t, err)

	type pair = automaton.Pair[levenshtein.State, int]
	both := func() *merge.OpBuilder {
		return merge.NewOpBuilder().Add(
			core.Search[levenshtein.State](st, lev).Stream(),
			core.Search[int](st, re).Stream(),
		)
	}

	want := core.CollectStrings(core.Search[pair](st, automaton.Intersection[levenshtein.State, int](lev, re)).Stream())
	assert.NotEmpty(t, want)
	assert.Equal(t, want, keysOf(drain(both().Intersection())))

	want = core.CollectStrings(core.Search[pair](st, automaton.Union[levenshtein.State, int](lev, re)).Stream())
	assert.Equal(t, want, keysOf(drain(both().Union())))
}

func ExampleOpBuilder_Union() {
	a, _ := builder.BuildMap([]string{"apple", "pear"}, []core.Output{3, 5})
	b, _ := builder.BuildMap([]string{"fig", "pear"}, []core.Output{7, 11})

	s := merge.NewOpBuilder().
		Add(core.Range(a).Stream(), core.Range(b).Stream()).
		Union()
	for k, outs := range merge.All(s) {
		fmt.Println(string(k), outs)
	}
	// Output:
	// apple [{0 3}]
	// fig [{1 7}]
	// pear [{0 5} {1 11}]
}
