package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stroynorm/egress/internal/evaluator"
	"github.com/stroynorm/egress/internal/finding"
)

// NewEvaluateCommand creates the evaluate command.
func NewEvaluateCommand(rootOpts *RootOptions) *cobra.Command {
	loadOpts := LoadOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate <project-file>",
		Short: "Evaluate a project against the egress requirements",
		Long: `Evaluate a building description against the quantitative egress
requirements and print the findings report.

The project is validated structurally first; evaluation only runs on a
valid context. Without --dataset or --snapshot the embedded Iз-1971
dataset applies.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(rootOpts, loadOpts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&loadOpts.DatasetPath, "dataset", "", "dataset YAML file (default: embedded Iз-1971 tables)")
	cmd.Flags().StringVar(&loadOpts.SnapshotPath, "snapshot", "", "dataset SQLite snapshot")

	return cmd
}

func runEvaluate(opts *RootOptions, loadOpts LoadOptions, projectPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	runID := uuid.Must(uuid.NewV7()).String()
	formatter.VerboseLog("Run %s", runID)

	ctx, err := loadContext(projectPath, loadOpts, formatter)
	if err != nil {
		return err
	}

	if v := evaluator.ValidateContext(ctx); !v.Valid {
		_ = formatter.Error(ErrCodeInvalid, "project failed structural validation", v.Errors)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(v.Errors)))
	}

	result := evaluator.Evaluate(ctx)

	if formatter.Format == "json" {
		enc := json.NewEncoder(formatter.Writer)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(CLIResponse{Status: "ok", Data: result, RunID: runID}); err != nil {
			return err
		}
	} else {
		printReport(formatter, result)
	}

	if result.Summary.Blockers > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d blocker(s) found", result.Summary.Blockers))
	}
	return nil
}

// printReport renders the human-readable report.
func printReport(f *OutputFormatter, result *finding.EvaluationResult) {
	fmt.Fprintf(f.Writer, "Project %s — dataset %s\n", result.ProjectID, result.DatasetVersion)
	fmt.Fprintf(f.Writer, "Rules: %d  Passed: %d  Failed: %d  Review: %d  Blockers: %d\n\n",
		result.Summary.TotalRules, result.Summary.Passed, result.Summary.Failed,
		result.Summary.Review, result.Summary.Blockers)

	for _, fd := range result.Findings {
		mark := "✓"
		switch fd.Status {
		case finding.StatusFail:
			mark = "✗"
		case finding.StatusReview:
			mark = "?"
		}
		fmt.Fprintf(f.Writer, "%s [%s/%s] %s %s: %s\n",
			mark, fd.Severity, fd.Status, fd.RuleID, fd.SubjectID, fd.Explanation)
		if f.Verbose {
			fmt.Fprintf(f.Writer, "    %s\n", fd.LegalReference)
		}
	}
}
