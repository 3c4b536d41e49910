package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/index"
)

// StatsResult describes an index file.
type StatsResult struct {
	Path        string  `json:"path"`
	Kind        string  `json:"kind"`
	Keys        int     `json:"keys"`
	Nodes       int     `json:"nodes"`
	FinalNodes  int     `json:"final_nodes"`
	Transitions int     `json:"transitions"`
	Bytes       int     `json:"bytes"`
	BytesPerKey float64 `json:"bytes_per_key"`
}

func (r StatsResult) String() string {
	return fmt.Sprintf(`path         %s
kind         %s
keys         %d
nodes        %d
final nodes  %d
transitions  %d
bytes        %d
bytes/key    %.2f`,
		r.Path, r.Kind, r.Keys, r.Nodes, r.FinalNodes, r.Transitions, r.Bytes, r.BytesPerKey)
}

// VerifyResult reports a successful verification.
type VerifyResult struct {
	Path  string `json:"path"`
	OK    bool   `json:"ok"`
	Keys  int    `json:"keys"`
	Nodes int    `json:"nodes"`
}

func (r VerifyResult) String() string {
	return fmt.Sprintf("%s: ok, %d keys, %d nodes", r.Path, r.Keys, r.Nodes)
}

// inspect loads path with its checksum checked, whatever the configuration
// says, and decodes every node.
func inspect(path string) (*core.Store, core.Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.Stats{}, WrapExitError(ExitCommandError, "open index", err)
	}
	st, err := core.Load(data)
	if err != nil {
		return nil, core.Stats{}, WrapExitError(ExitFailure, fmt.Sprintf("%s: verification failed", path), err)
	}
	stats, err := st.Verify()
	if err != nil {
		return nil, core.Stats{}, WrapExitError(ExitFailure, fmt.Sprintf("%s: verification failed", path), err)
	}

	return st, stats, nil
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <index.fst>",
		Short: "Check an index file for corruption",
		Long: `Check an index file: header, checksum and every node record. Exits with
status 1 when the file is damaged.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, stats, err := inspect(args[0])
			if err != nil {
				return err
			}
			rootOpts.logger().Debug("index verified", "path", args[0], "keys", stats.Keys, "nodes", stats.Nodes)
			return rootOpts.formatter(cmd).Success(VerifyResult{Path: args[0], OK: true, Keys: stats.Keys, Nodes: stats.Nodes})
		},
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats <index.fst>",
		Short:         "Describe an index file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, stats, err := inspect(args[0])
			if err != nil {
				return err
			}
			res := StatsResult{
				Path:        args[0],
				Kind:        kindName(st.Kind()),
				Keys:        stats.Keys,
				Nodes:       stats.Nodes,
				FinalNodes:  stats.FinalNodes,
				Transitions: stats.Transitions,
				Bytes:       stats.Bytes,
			}
			if stats.Keys > 0 {
				res.BytesPerKey = float64(stats.Bytes) / float64(stats.Keys)
			}
			return rootOpts.formatter(cmd).Success(res)
		},
	}
}

func kindName(kind uint64) string {
	switch kind {
	case index.KindSet:
		return "set"
	case index.KindMap:
		return "map"
	default:
		return fmt.Sprintf("untyped (%d)", kind)
	}
}
