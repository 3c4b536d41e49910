package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfst/builder"
	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/index"
)

// BuildResult describes a written index.
type BuildResult struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Keys  int    `json:"keys"`
	Nodes int    `json:"nodes"`
	Bytes int    `json:"bytes"`
}

func (r BuildResult) String() string {
	return fmt.Sprintf("wrote %s: %s, %d keys, %d nodes, %d bytes", r.Path, r.Kind, r.Keys, r.Nodes, r.Bytes)
}

// BuildOptions holds flags for the build commands.
type BuildOptions struct {
	Sorted bool
}

// NewBuildCommand creates the build command and its set and map children.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an index from a text file",
	}
	cmd.AddCommand(newBuildSetCommand(rootOpts), newBuildMapCommand(rootOpts))

	return cmd
}

func newBuildSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{}
	cmd := &cobra.Command{
		Use:   "set <keys.txt|-> <out.fst>",
		Short: "Build a set from one key per line",
		Long: `Build a set from one key per line. Blank lines are skipped.

Input is sorted and deduplicated in memory unless --sorted promises it is
already strictly increasing, in which case keys stream straight to disk.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildSet(rootOpts, opts, args[0], args[1], cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.Sorted, "sorted", false, "input is strictly increasing; stream it")

	return cmd
}

func newBuildMapCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{}
	cmd := &cobra.Command{
		Use:   "map <pairs.tsv|-> <out.fst>",
		Short: "Build a map from key<TAB>value lines",
		Long: `Build a map from lines of the form key<TAB>value, where value is an
unsigned 64-bit integer. Blank lines are skipped; a repeated key is an
error.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildMap(rootOpts, opts, args[0], args[1], cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.Sorted, "sorted", false, "input is strictly increasing; stream it")

	return cmd
}

func runBuildSet(rootOpts *RootOptions, opts *BuildOptions, in, out string, cmd *cobra.Command) error {
	lines, err := readLines(cmd, in)
	if err != nil {
		return err
	}
	keys := make([]string, len(lines))
	for i, l := range lines {
		keys[i] = rootOpts.normalize(l.text)
	}

	var res BuildResult
	if opts.Sorted {
		res, err = rootOpts.streamBuild(out, index.KindSet, lines, func(b *builder.Builder, i int) error {
			return b.Insert([]byte(keys[i]))
		})
	} else {
		var s *index.Set
		if s, err = index.NewSetFromUnsorted(keys, rootOpts.builderOptions()...); err != nil {
			return WrapExitError(ExitCommandError, "build set", err)
		}
		res, err = writeStore(out, "set", s.Store())
	}
	if err != nil {
		return err
	}

	return rootOpts.formatter(cmd).Success(res)
}

func runBuildMap(rootOpts *RootOptions, opts *BuildOptions, in, out string, cmd *cobra.Command) error {
	lines, err := readLines(cmd, in)
	if err != nil {
		return err
	}

	keys := make([]string, len(lines))
	outs := make([]core.Output, len(lines))
	for i, l := range lines {
		k, v, ok := strings.Cut(l.text, "\t")
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("%s:%d: want key<TAB>value", in, l.num))
		}
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s:%d: bad value", in, l.num), err)
		}
		keys[i], outs[i] = rootOpts.normalize(k), core.Output(n)
	}

	var res BuildResult
	if opts.Sorted {
		res, err = rootOpts.streamBuild(out, index.KindMap, lines, func(b *builder.Builder, i int) error {
			return b.Add([]byte(keys[i]), outs[i])
		})
	} else {
		pairs := make(map[string]core.Output, len(keys))
		for i, k := range keys {
			if _, dup := pairs[k]; dup {
				return NewExitError(ExitCommandError, fmt.Sprintf("%s:%d: duplicate key %q", in, lines[i].num, k))
			}
			pairs[k] = outs[i]
		}
		var m *index.Map
		if m, err = index.NewMapFromUnsorted(pairs, rootOpts.builderOptions()...); err != nil {
			return WrapExitError(ExitCommandError, "build map", err)
		}
		res, err = writeStore(out, "map", m.Store())
	}
	if err != nil {
		return err
	}

	return rootOpts.formatter(cmd).Success(res)
}

// builderOptions returns the configured builder options plus the logger.
func (o *RootOptions) builderOptions() []builder.Option {
	return append(o.Config.BuilderOptions(), builder.WithLogger(o.logger()))
}

// streamBuild writes an index of kind to path, adding lines[i] with add in
// input order.
func (o *RootOptions) streamBuild(path string, kind uint64, lines []line, add func(*builder.Builder, int) error) (BuildResult, error) {
	var st builder.Stats
	err := writeFileAtomic(path, func(w io.Writer) error {
		b, err := builder.New(w, append(o.builderOptions(), builder.WithKind(kind))...)
		if err != nil {
			return WrapExitError(ExitCommandError, "write output", err)
		}
		for i, l := range lines {
			if err := add(b, i); err != nil {
				if errors.Is(err, builder.ErrOutOfOrder) {
					return WrapExitError(ExitCommandError, fmt.Sprintf("line %d: input not sorted (drop --sorted)", l.num), err)
				}
				return WrapExitError(ExitCommandError, "write output", err)
			}
		}
		if err := b.Finish(); err != nil {
			return WrapExitError(ExitCommandError, "write output", err)
		}
		st = b.Stats()
		return nil
	})
	if err != nil {
		return BuildResult{}, err
	}

	name := "set"
	if kind == index.KindMap {
		name = "map"
	}

	return BuildResult{Path: path, Kind: name, Keys: st.Keys, Nodes: st.Nodes, Bytes: st.Bytes}, nil
}

// writeStore writes an in-memory store to path.
func writeStore(path, kind string, st *core.Store) (BuildResult, error) {
	stats, err := st.Verify()
	if err != nil {
		return BuildResult{}, WrapExitError(ExitCommandError, "verify built index", err)
	}
	err = writeFileAtomic(path, func(w io.Writer) error {
		if _, err := w.Write(st.Bytes()); err != nil {
			return WrapExitError(ExitCommandError, "write output", err)
		}
		return nil
	})
	if err != nil {
		return BuildResult{}, err
	}

	return BuildResult{Path: path, Kind: kind, Keys: stats.Keys, Nodes: stats.Nodes, Bytes: stats.Bytes}, nil
}
