package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stroynorm/egress/internal/evaluator"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	loadOpts := LoadOptions{}

	cmd := &cobra.Command{
		Use:   "validate <project-file>",
		Short: "Validate a project file without evaluating it",
		Long: `Validate a project description without running the rule modules.

Performs schema validation of the file and the structural checks of the
evaluation context (unique space ids, route and exit references,
required dataset tables). Faster feedback than a full evaluation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, loadOpts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&loadOpts.DatasetPath, "dataset", "", "dataset YAML file (default: embedded Iз-1971 tables)")
	cmd.Flags().StringVar(&loadOpts.SnapshotPath, "snapshot", "", "dataset SQLite snapshot")

	return cmd
}

func runValidate(opts *RootOptions, loadOpts LoadOptions, projectPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ctx, err := loadContext(projectPath, loadOpts, formatter)
	if err != nil {
		return err
	}

	result := evaluator.ValidateContext(ctx)
	if !result.Valid {
		if formatter.Format == "json" {
			_ = formatter.Error(ErrCodeInvalid, "project failed structural validation", result.Errors)
		} else {
			fmt.Fprintln(formatter.Writer, "✗ Validation failed")
			fmt.Fprintln(formatter.Writer)
			for _, e := range result.Errors {
				fmt.Fprintf(formatter.Writer, "  %s\n", e)
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}

	if formatter.Format == "json" {
		return formatter.Success(result, "")
	}
	fmt.Fprintln(formatter.Writer, "✓ Project is structurally valid")
	return nil
}
