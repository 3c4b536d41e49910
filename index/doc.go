// Package index provides the typed views most programs use: Set, an ordered
// set of keys, and Map, an ordered map from keys to uint64 values. Both are
// thin, immutable wrappers over a core.Store.
//
// What:
//
//   - Construction from sorted slices, from unsorted input (NewSetFromUnsorted,
//     NewMapFromUnsorted), or from any ordered stream such as a search or a
//     merge (NewSetFromStream, NewMapFromStream).
//   - LoadSet/LoadMap open serialized bytes and check the header tag, so a
//     map file is not silently read as a set.
//   - Point queries, bounded ranges, and Search with any automaton.
//   - Set algebra through package merge (Op, IsDisjoint, IsSubset,
//     IsSuperset).
//
// Telemetry:
//
// Builds and loads run inside OpenTelemetry spans and feed latency, count
// and key-count instruments from the global providers. Instrument wraps a
// search stream the same way, recording the number of results when the
// stream ends. With no provider installed all of this is a no-op.
//
// Example:
//
//	m, err := index.NewMapFromUnsorted(map[string]core.Output{"june": 30, "july": 31})
//	if err != nil { ... }
//	lev, _ := levenshtein.New("jume", 1)
//	for k, v := range core.All(index.Search[levenshtein.State](m, lev).Stream()) {
//		fmt.Println(string(k), v)
//	}
package index
