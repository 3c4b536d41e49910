package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/index"
)

// normalizer returns the function applied to keys and queries for form.
func normalizer(form string) func(string) string {
	var f norm.Form
	switch form {
	case "nfc":
		f = norm.NFC
	case "nfd":
		f = norm.NFD
	case "nfkc":
		f = norm.NFKC
	case "nfkd":
		f = norm.NFKD
	default:
		return func(s string) string { return s }
	}

	return f.String
}

// normalize applies the configured normalization form to s.
func (o *RootOptions) normalize(s string) string {
	return normalizer(o.Config.Normalize)(s)
}

// line is one non-blank input line and its 1-based number.
type line struct {
	text string
	num  int
}

// readLines reads path ("-" for cmd's stdin) and returns its non-blank
// lines with trailing CR removed.
func readLines(cmd *cobra.Command, path string) ([]line, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "open input", err)
		}
		defer f.Close()
		r = f
	}

	var lines []line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; sc.Scan(); n++ {
		t := strings.TrimSuffix(sc.Text(), "\r")
		if t == "" {
			continue
		}
		lines = append(lines, line{text: t, num: n})
	}
	if err := sc.Err(); err != nil {
		return nil, WrapExitError(ExitCommandError, "read input", err)
	}

	return lines, nil
}

// opened is an index file loaded as the view its header names.
type opened struct {
	path  string
	view  index.View
	isSet bool
}

// openIndex reads and loads an index file. Untagged files open as maps.
func (o *RootOptions) openIndex(path string) (*opened, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open index", err)
	}

	m, err := index.LoadMap(data, o.Config.LoadOptions()...)
	if errors.Is(err, index.ErrKind) {
		s, serr := index.LoadSet(data, o.Config.LoadOptions()...)
		if serr != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("load %s", path), serr)
		}
		o.logger().Debug("index loaded", "path", path, "kind", "set", "keys", s.Len())
		return &opened{path: path, view: s, isSet: true}, nil
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("load %s", path), err)
	}
	o.logger().Debug("index loaded", "path", path, "kind", "map", "keys", m.Len())

	return &opened{path: path, view: m}, nil
}

// store returns the opened index's transducer.
func (x *opened) store() *core.Store { return x.view.Store() }

// row makes a listing row for key, with its output unless x is a set.
func (x *opened) row(key []byte, out core.Output) Row {
	r := Row{Key: string(key)}
	if !x.isSet {
		r.Output = &out
	}
	return r
}

// writeFileAtomic writes data to path through a temporary file in the same
// directory, so a failed write never leaves a truncated index behind.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return WrapExitError(ExitCommandError, "create output", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	if err = tmp.Close(); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	return nil
}
