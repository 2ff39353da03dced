package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stroynorm/egress/internal/dataset"
)

// NewDatasetCommand creates the dataset command.
func NewDatasetCommand(rootOpts *RootOptions) *cobra.Command {
	loadOpts := LoadOptions{}

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Show the regulatory dataset in use",
		Long:  "Prints the ordinance id, version and per-table row counts of the selected dataset.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(rootOpts, loadOpts, cmd)
		},
	}

	cmd.Flags().StringVar(&loadOpts.DatasetPath, "dataset", "", "dataset YAML file (default: embedded Iз-1971 tables)")
	cmd.Flags().StringVar(&loadOpts.SnapshotPath, "snapshot", "", "dataset SQLite snapshot")

	return cmd
}

// datasetInfo is the payload of the dataset command.
type datasetInfo struct {
	OrdinanceID string         `json:"ordinance_id"`
	Version     string         `json:"version"`
	Tables      map[string]int `json:"tables"`
}

func runDataset(opts *RootOptions, loadOpts LoadOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if loadOpts.DatasetPath != "" && loadOpts.SnapshotPath != "" {
		return NewExitError(ExitCommandError, "--dataset and --snapshot are mutually exclusive")
	}

	ds, err := loadDataset(loadOpts)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot load dataset", err)
	}

	info := datasetInfo{
		OrdinanceID: ds.Meta.OrdinanceID,
		Version:     ds.Meta.Version,
		Tables:      ds.TableCounts(),
	}

	if formatter.Format == "json" {
		return formatter.Success(info, "")
	}

	fmt.Fprintf(formatter.Writer, "%s (%s)\n\n", info.OrdinanceID, info.Version)
	for _, name := range dataset.RequiredTables {
		fmt.Fprintf(formatter.Writer, "  %-22s %d rows\n", name, info.Tables[name])
	}
	sortUnknownTables(formatter, info.Tables)
	return nil
}

// sortUnknownTables prints any table not in the required list, sorted
// by name. Future dataset revisions may carry extra tables.
func sortUnknownTables(f *OutputFormatter, tables map[string]int) {
	known := make(map[string]bool, len(dataset.RequiredTables))
	for _, name := range dataset.RequiredTables {
		known[name] = true
	}
	var extra []string
	for name := range tables {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		fmt.Fprintf(f.Writer, "  %-22s %d rows\n", name, tables[name])
	}
}
