// Package core_test provides benchmarks for core.Store lookups and streams.
package core_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvfst/builder"
	"github.com/katalvlaran/lvfst/core"
)

// benchKeys returns n sorted, fixed-width decimal keys.
func benchKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%08d", i)
	}

	return keys
}

// BenchmarkGet measures point lookups on a 100k-key set.
func BenchmarkGet(b *testing.B) {
	keys := benchKeys(100_000)
	st, err := builder.Build(keys)
	if err != nil {
		b.Fatal(err)
	}
	probe := []byte(keys[len(keys)/2])
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Get(probe)
	}
}

// BenchmarkRange measures a full ordered scan.
func BenchmarkRange(b *testing.B) {
	st, err := builder.Build(benchKeys(100_000))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := core.Range(st).Stream()
		for _, _, ok := s.Next(); ok; _, _, ok = s.Next() {
		}
	}
}

// BenchmarkLoad measures Load, dominated by the checksum.
func BenchmarkLoad(b *testing.B) {
	st, err := builder.Build(benchKeys(100_000))
	if err != nil {
		b.Fatal(err)
	}
	data := st.Bytes()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := core.Load(data); err != nil {
			b.Fatal(err)
		}
	}
}
