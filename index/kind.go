// SPDX-License-Identifier: MIT
// Package: lvfst/index
//
// kind.go: header type tags and errors shared by Set and Map.

package index

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvfst/builder"
	"github.com/katalvlaran/lvfst/core"
)

// Header type tags written by this package. Stores built without a tag
// (builder.DefaultKind) load as either view.
const (
	KindSet uint64 = 1
	KindMap uint64 = 2
)

// ErrKind indicates that a store was built as a different view.
var ErrKind = errors.New("index: wrong transducer kind")

// kindName names a header tag for messages and telemetry.
func kindName(kind uint64) string {
	switch kind {
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case builder.DefaultKind:
		return "untyped"
	default:
		return fmt.Sprintf("kind(%d)", kind)
	}
}

// checkKind accepts stores tagged want or left untagged.
func checkKind(st *core.Store, want uint64) error {
	if k := st.Kind(); k != want && k != builder.DefaultKind {
		return fmt.Errorf("%w: want %s, have %s", ErrKind, kindName(want), kindName(k))
	}

	return nil
}

// finish completes a memory builder and loads its output.
func finish(b *builder.Builder) (*core.Store, error) {
	if err := b.Finish(); err != nil {
		return nil, err
	}

	return core.Load(b.Bytes(), core.WithSkipChecksum())
}
