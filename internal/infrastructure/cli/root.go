package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const envUser = "PLANCRAFT_USER"

// rootOptions holds the persistent flags and the logger built from them.
type rootOptions struct {
	root    string
	verbose bool
	user    string
	logger  *zap.Logger
	errOut  io.Writer
}

// NewRootCmd builds the plancraft command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop(), errOut: os.Stderr}

	cmd := &cobra.Command{
		Use:     "plancraft",
		Version: Version,
		Short:   "Turn a project idea into a structured, AI-generated plan",
		Long: `Plancraft turns a short project questionnaire into a project plan:
tasks with priorities and durations, an overall estimate, an approach
breakdown, technology recommendations and learning resources.

When the AI backend is unavailable a fixed fallback plan is used instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			opts.errOut = cmd.ErrOrStderr()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.root, "root", "", "Project directory holding .plancraft (defaults to the working directory)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable development logging")
	cmd.PersistentFlags().StringVar(&opts.user, "user", "", "Acting user id (defaults to $"+envUser+")")

	cmd.AddCommand(
		newPlanCmd(opts),
		newProjectCmd(opts),
		newTaskCmd(opts),
		newAICmd(opts),
	)
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return config.Build()
}

// Execute runs the command tree and prints mapped errors with their hints.
// This is called by main.main().
func Execute() error {
	err := NewRootCmd().Execute()
	if err == nil {
		return nil
	}

	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Hint != "" {
		fmt.Fprintln(os.Stderr, hintStyle.Render("Hint: "+cliErr.Hint))
	}
	return err
}

// ExitCode returns the process exit code for an Execute error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.ExitCode != 0 {
		return cliErr.ExitCode
	}
	return 1
}
