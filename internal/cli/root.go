package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfst/internal/config"
	"github.com/katalvlaran/lvfst/internal/logging"
	"github.com/katalvlaran/lvfst/internal/telemetry"
)

// Version is reported by --version and attached to telemetry.
var Version = "dev"

// RootOptions holds global flags and what PersistentPreRunE derives from
// them.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Normalize  string // overrides the config file when set
	Telemetry  string // overrides the config file when set

	Config   config.Config
	Logger   *slog.Logger
	shutdown telemetry.ShutdownFunc
}

// NewRootOptions returns options with default configuration, as used by
// subcommands run without the root command.
func NewRootOptions() *RootOptions {
	return &RootOptions{Format: "text", Config: config.Default(), Logger: logging.NewNop()}
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lvfst",
		Short: "Build and query finite-state transducer indexes",
		Long: `lvfst builds compact, immutable indexes of sorted keys (sets) or of
keys with uint64 values (maps), and queries them by key, range, edit
distance or regular expression, or combines several with set operations.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.Normalize, "normalize", "", "Unicode normalization of keys, bounds and queries; grep patterns are used as given (none|nfc|nfd|nfkc|nfkd)")
	cmd.PersistentFlags().StringVar(&opts.Telemetry, "telemetry", "", "telemetry exporter written to stderr (none|stdout|prometheus)")

	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewRangeCommand(opts))
	cmd.AddCommand(NewFuzzyCommand(opts))
	cmd.AddCommand(NewGrepCommand(opts))
	for _, op := range setOps {
		cmd.AddCommand(NewSetOpCommand(opts, op))
	}
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// setup validates the global flags, loads the configuration and installs
// the logger and telemetry.
func (o *RootOptions) setup(stderr io.Writer) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load configuration", err)
	}
	if o.Normalize != "" {
		cfg.Normalize = o.Normalize
	}
	if o.Telemetry != "" {
		cfg.Telemetry = o.Telemetry
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}
	o.Config = cfg

	o.Logger = logging.New(stderr, logging.Level(o.Verbose))
	o.Logger.Debug("configuration loaded", "path", o.ConfigPath, "normalize", cfg.Normalize, "telemetry", cfg.Telemetry)

	shutdown, err := telemetry.Setup(cfg.Telemetry, Version, stderr)
	if err != nil {
		return WrapExitError(ExitCommandError, "set up telemetry", err)
	}
	o.shutdown = shutdown

	return nil
}

// Execute runs the CLI with args and returns the process exit code. Errors
// are reported on stdout (JSON) or stderr (text).
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := NewRootOptions()
	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if opts.shutdown != nil {
		if serr := opts.shutdown(context.WithoutCancel(ctx)); serr != nil {
			opts.Logger.Warn("telemetry shutdown failed", "error", serr)
		}
	}
	if err != nil {
		f := &OutputFormatter{Format: opts.Format, Writer: stdout, ErrWriter: stderr}
		if !slices.Contains(ValidFormats, opts.Format) {
			f.Format = "text"
		}
		_ = f.Error(err)
	}

	return GetExitCode(err)
}

// formatter returns the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr()}
}

// logger returns the configured logger, or a no-op one.
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.NewNop()
	}
	return o.Logger
}

// ctx returns cmd's context, or Background when run without one.
func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
