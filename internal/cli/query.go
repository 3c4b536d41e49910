package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfst/automaton"
	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/index"
	"github.com/katalvlaran/lvfst/levenshtein"
	"github.com/katalvlaran/lvfst/regex"
)

// BoundOptions holds the range flags shared by listing commands.
type BoundOptions struct {
	Ge, Gt, Le, Lt string
	Limit          int
}

func (b *BoundOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.Ge, "ge", "", "only keys >= this")
	cmd.Flags().StringVar(&b.Gt, "gt", "", "only keys > this")
	cmd.Flags().StringVar(&b.Le, "le", "", "only keys <= this")
	cmd.Flags().StringVar(&b.Lt, "lt", "", "only keys < this")
	cmd.Flags().IntVar(&b.Limit, "limit", 0, "stop after this many keys (0: no limit)")
}

// apply sets the bounds whose flags were given on cmd, normalized like keys.
func apply[S any](rootOpts *RootOptions, b *BoundOptions, cmd *cobra.Command, sb *core.StreamBuilder[S]) *core.StreamBuilder[S] {
	set := func(name, v string, f func([]byte) *core.StreamBuilder[S]) {
		if cmd.Flags().Changed(name) {
			f([]byte(rootOpts.normalize(v)))
		}
	}
	set("ge", b.Ge, sb.Ge)
	set("gt", b.Gt, sb.Gt)
	set("le", b.Le, sb.Le)
	set("lt", b.Lt, sb.Lt)

	return sb
}

// collect drains s into rows, at most limit of them when limit > 0, and
// reports the search through telemetry as operation.
func collect(cmd *cobra.Command, operation string, x *opened, s core.Streamer, limit int, row func([]byte, core.Output) Row) []Row {
	if row == nil {
		row = x.row
	}
	st := index.Instrument(ctx(cmd), operation, s)
	defer st.Close()

	var rows []Row
	for k, out := range core.All(st) {
		rows = append(rows, row(k, out))
		if limit > 0 && len(rows) == limit {
			break
		}
	}

	return rows
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <index.fst> <key>",
		Short: "Look up one key",
		Long: `Look up one key. Prints the key and, for maps, its value. Exits with
status 1 when the key is absent.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := rootOpts.openIndex(args[0])
			if err != nil {
				return err
			}
			key := []byte(rootOpts.normalize(args[1]))
			out, ok := x.store().Get(key)
			if !ok {
				return NewExitError(ExitFailure, fmt.Sprintf("key %q not found", key))
			}
			return rootOpts.formatter(cmd).Rows([]Row{x.row(key, out)})
		},
	}
}

// NewRangeCommand creates the range command.
func NewRangeCommand(rootOpts *RootOptions) *cobra.Command {
	bounds := &BoundOptions{}
	cmd := &cobra.Command{
		Use:           "range <index.fst>",
		Short:         "List keys in order, optionally bounded",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := rootOpts.openIndex(args[0])
			if err != nil {
				return err
			}
			sb := apply(rootOpts, bounds, cmd, core.Range(x.store()))
			rows := collect(cmd, "range", x, sb.Stream(), bounds.Limit, nil)
			return rootOpts.formatter(cmd).Rows(rows)
		},
	}
	bounds.register(cmd)

	return cmd
}

// FuzzyOptions holds flags for the fuzzy command.
type FuzzyOptions struct {
	BoundOptions
	Distance int
	Prefix   bool
}

// NewFuzzyCommand creates the fuzzy command.
func NewFuzzyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FuzzyOptions{}
	cmd := &cobra.Command{
		Use:   "fuzzy <index.fst> <query>",
		Short: "List keys within an edit distance of a query",
		Long: `List keys within an edit distance of a query, counted in Unicode
characters. Each line ends with the key's distance to the query.

With --prefix, keys are listed when some prefix of theirs is within the
distance; distances are then omitted.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFuzzy(rootOpts, opts, args[0], args[1], cmd)
		},
	}
	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.Distance, "distance", "d", -1, "maximum edit distance (default from config, 1)")
	cmd.Flags().BoolVar(&opts.Prefix, "prefix", false, "match keys starting with something close to the query")

	return cmd
}

func runFuzzy(rootOpts *RootOptions, opts *FuzzyOptions, path, query string, cmd *cobra.Command) error {
	x, err := rootOpts.openIndex(path)
	if err != nil {
		return err
	}
	query = rootOpts.normalize(query)
	d := opts.Distance
	if d < 0 {
		d = rootOpts.Config.Levenshtein.Distance
	}

	lev, err := levenshtein.New(query, d, rootOpts.Config.LevenshteinOptions()...)
	if err != nil {
		return WrapExitError(ExitCommandError, "fuzzy query", err)
	}
	rootOpts.logger().Debug("automaton built", "automaton", lev.String(), "states", lev.States())

	var rows []Row
	if opts.Prefix {
		aut := automaton.StartsWith[levenshtein.State](lev)
		sb := apply(rootOpts, &opts.BoundOptions, cmd, index.Search[automaton.StartsWithState[levenshtein.State]](x.view, aut))
		rows = collect(cmd, "fuzzy", x, sb.Stream(), opts.Limit, nil)
	} else {
		sb := apply(rootOpts, &opts.BoundOptions, cmd, index.Search[levenshtein.State](x.view, lev))
		rows = collect(cmd, "fuzzy", x, sb.Stream(), opts.Limit, func(k []byte, out core.Output) Row {
			r := x.row(k, out)
			dist := levenshtein.Distance(query, string(k))
			r.Distance = &dist
			return r
		})
	}

	return rootOpts.formatter(cmd).Rows(rows)
}

// NewGrepCommand creates the grep command.
func NewGrepCommand(rootOpts *RootOptions) *cobra.Command {
	bounds := &BoundOptions{}
	cmd := &cobra.Command{
		Use:   "grep <index.fst> <pattern>",
		Short: "List keys matching a regular expression",
		Long: `List keys matching a regular expression in Go syntax. The pattern must
match the whole key; anchors (^ $ \A \z) and word boundaries are not
supported. The pattern is used as given: --normalize applies to the bounds
only, since folding it could turn literals into metacharacters.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := rootOpts.openIndex(args[0])
			if err != nil {
				return err
			}
			re, err := regex.New(args[1], rootOpts.Config.RegexOptions()...)
			if err != nil {
				return WrapExitError(ExitCommandError, "grep pattern", err)
			}
			rootOpts.logger().Debug("automaton built", "automaton", re.String(), "states", re.States())

			sb := apply(rootOpts, bounds, cmd, index.Search[int](x.view, re))
			rows := collect(cmd, "grep", x, sb.Stream(), bounds.Limit, nil)
			return rootOpts.formatter(cmd).Rows(rows)
		},
	}
	bounds.register(cmd)

	return cmd
}
