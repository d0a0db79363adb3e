package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/qcsched/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// Execute runs the command line given by args. Reports go to outW, logs and
// errors to errW. Every returned error is an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return usageError(err)
}

// NewRootCommand builds the qcsched command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "qcsched",
		Short: "Resource-constrained scheduling of quantum kernels",
		Long: `qcsched assigns a start cycle to every statement of a quantum program
while honoring data dependencies and the hardware resource constraints
declared by the target platform.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(scheduleCmd(outW, errW))
	root.AddCommand(resourcesCmd(outW))
	return root
}

func scheduleCmd(outW, errW io.Writer) *cobra.Command {
	cfg := app.DefaultConfig()
	noResources := false

	cmd := &cobra.Command{
		Use:   "schedule [flags] PROGRAM_PATH...",
		Short: "Schedule every kernel of a program",
		Long: `Schedule reads kernels (and optionally the platform) from .hcl files or
directories and prints the resulting schedule of every block.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ProgramPaths = args
			cfg.ResourceConstraints = !noResources
			validated, err := app.NewConfig(cfg)
			if err != nil {
				return usageError(err)
			}
			a, err := app.NewApp(outW, errW, validated)
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			if _, err := a.Run(cmd.Context()); err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.PlatformPath, "platform", "p", "", "Platform file (.hcl, .yaml, .yml or .json).")
	f.StringVar(&cfg.ProgramName, "name", "", "Program name. Defaults to the first program path.")
	f.StringVarP(&cfg.Target, "target", "t", cfg.Target, "Scheduling target: 'asap' or 'alap'.")
	f.StringVar(&cfg.Heuristic, "heuristic", cfg.Heuristic, "Priority heuristic: 'none', 'critical_path' or 'deep_criticality'.")
	f.BoolVar(&noResources, "no-resources", false, "Ignore the platform resources and schedule on dependencies only.")
	f.BoolVar(&cfg.CommuteSingleQubit, "commute-single-qubit", false, "Let commuting single-qubit gates reorder.")
	f.BoolVar(&cfg.CommuteMultiQubit, "commute-multi-qubit", false, "Let commuting multi-qubit gates reorder.")
	f.IntVar(&cfg.MaxBlockCycles, "max-block-cycles", cfg.MaxBlockCycles, "Cycles a statement may wait for resources before failing. 0 waits forever.")
	f.IntVar(&cfg.Origin, "origin", 0, "Cycle of the first statement of every block.")
	f.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Number of blocks scheduled concurrently.")
	f.BoolVar(&cfg.WriteDOT, "dot", false, "Write a DOT graph of every block.")
	f.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "Directory for DOT graphs.")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log output format: 'text' or 'json'.")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Logging level: 'debug', 'info', 'warn' or 'error'.")
	return cmd
}

func resourcesCmd(outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "Describe the compiled-in resource types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := app.NewFactory()
			if _, err := fmt.Fprintln(outW, "Resource types:"); err != nil {
				return err
			}
			f.DumpDocs(outW)
			return nil
		},
	}
}
