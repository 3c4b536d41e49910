// Package builder defines shared constants used by the transducer builder.
package builder

//-----------------------------------------------------------------------------
// Method Name Constants
//   used to prefix errors with the operation name for context.
//-----------------------------------------------------------------------------

const (
	// MethodAdd is the canonical name for Builder.Add.
	MethodAdd = "Add"
	// MethodInsert is the canonical name for Builder.Insert.
	MethodInsert = "Insert"
	// MethodFinish is the canonical name for Builder.Finish.
	MethodFinish = "Finish"
	// MethodNew is the canonical name for New.
	MethodNew = "New"
	// MethodBuild is the canonical name for Build.
	MethodBuild = "Build"
)

//-----------------------------------------------------------------------------
// Registry Defaults
//-----------------------------------------------------------------------------

const (
	// DefaultRegistryTable is the number of hash buckets in the registry.
	DefaultRegistryTable = 10000
	// DefaultRegistryMRU is the number of nodes remembered per bucket.
	DefaultRegistryMRU = 2
)

// DefaultKind is the type tag written when WithKind is not given.
const DefaultKind uint64 = 0
