package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/index"
	"github.com/katalvlaran/lvfst/merge"
)

// setOp names one merge operation exposed as a command.
type setOp struct {
	name  string
	short string
	run   func(*merge.OpBuilder) *merge.Stream
}

var setOps = []setOp{
	{"union", "List keys present in any index", (*merge.OpBuilder).Union},
	{"intersect", "List keys present in every index", (*merge.OpBuilder).Intersection},
	{"difference", "List keys of the first index absent from the others", (*merge.OpBuilder).Difference},
	{"symdiff", "List keys present in an odd number of indexes", (*merge.OpBuilder).SymmetricDifference},
}

// folds maps --fold values to output folds.
var folds = map[string]merge.FoldFunc{
	"sum":   merge.Sum,
	"first": merge.First,
	"last":  merge.Last,
	"min":   merge.Min,
}

// SetOpOptions holds flags for the set operation commands.
type SetOpOptions struct {
	Output string
	Fold   string
	Limit  int
}

// NewSetOpCommand creates the command for op.
func NewSetOpCommand(rootOpts *RootOptions, op setOp) *cobra.Command {
	opts := &SetOpOptions{}
	cmd := &cobra.Command{
		Use:   op.name + " <a.fst> <b.fst> [more.fst...]",
		Short: op.short,
		Long: op.short + `.

A key present in several maps gets their values combined with --fold.
With -o the result is written as a new index, a set when every input is a
set and a map otherwise, instead of being listed.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetOp(rootOpts, opts, op, args, cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the result to this index file")
	cmd.Flags().StringVar(&opts.Fold, "fold", "sum", "combine values of a shared key (sum|first|last|min)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "stop after this many keys (0: no limit)")

	return cmd
}

func runSetOp(rootOpts *RootOptions, opts *SetOpOptions, op setOp, paths []string, cmd *cobra.Command) error {
	fold, ok := folds[opts.Fold]
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid fold %q: must be one of sum, first, last, min", opts.Fold))
	}

	ob := merge.NewOpBuilder()
	allSets := true
	for _, p := range paths {
		x, err := rootOpts.openIndex(p)
		if err != nil {
			return err
		}
		allSets = allSets && x.isSet
		ob.Add(core.Range(x.store()).Stream())
	}
	flat := merge.Flatten(op.run(ob), fold)

	if opts.Output != "" {
		return writeMerged(rootOpts, opts.Output, allSets, flat, cmd)
	}

	result := &opened{isSet: allSets}
	rows := collect(cmd, op.name, result, flat, opts.Limit, nil)

	return rootOpts.formatter(cmd).Rows(rows)
}

// writeMerged builds an index from a merged stream and writes it.
func writeMerged(rootOpts *RootOptions, path string, asSet bool, s core.Streamer, cmd *cobra.Command) error {
	var (
		st   *core.Store
		kind = "map"
	)
	if asSet {
		set, err := index.NewSetFromStream(s, rootOpts.builderOptions()...)
		if err != nil {
			return WrapExitError(ExitCommandError, "build result", err)
		}
		st, kind = set.Store(), "set"
	} else {
		m, err := index.NewMapFromStream(s, rootOpts.builderOptions()...)
		if err != nil {
			return WrapExitError(ExitCommandError, "build result", err)
		}
		st = m.Store()
	}

	res, err := writeStore(path, kind, st)
	if err != nil {
		return err
	}

	return rootOpts.formatter(cmd).Success(res)
}
