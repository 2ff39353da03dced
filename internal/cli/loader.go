package cli

import (
	"errors"
	"strings"

	"github.com/stroynorm/egress/internal/dataset"
	"github.com/stroynorm/egress/internal/project"
	"github.com/stroynorm/egress/internal/rules"
)

// LoadOptions selects the dataset source for a command. At most one of
// DatasetPath and SnapshotPath may be set; with neither, the embedded
// default dataset applies.
type LoadOptions struct {
	DatasetPath  string
	SnapshotPath string
}

// loadContext assembles the evaluation context from a project file and
// the selected dataset source.
func loadContext(projectPath string, opts LoadOptions, formatter *OutputFormatter) (rules.Context, error) {
	if opts.DatasetPath != "" && opts.SnapshotPath != "" {
		return rules.Context{}, NewExitError(ExitCommandError, "--dataset and --snapshot are mutually exclusive")
	}

	p, err := project.Load(projectPath)
	if err != nil {
		var schemaErr *project.SchemaError
		if errors.As(err, &schemaErr) {
			_ = formatter.Error(ErrCodeSchema, "project schema validation failed", schemaErr.Errors)
			return rules.Context{}, NewExitError(ExitFailure,
				"schema validation failed: "+strings.Join(schemaErr.Errors, "; "))
		}
		return rules.Context{}, WrapExitError(ExitCommandError, "cannot load project", err)
	}
	formatter.VerboseLog("Loaded project %s (%d spaces, %d exits, %d routes, %d stairs)",
		p.ID, len(p.Spaces), len(p.Exits), len(p.Routes), len(p.Stairs))

	ds, err := loadDataset(opts)
	if err != nil {
		return rules.Context{}, WrapExitError(ExitCommandError, "cannot load dataset", err)
	}
	formatter.VerboseLog("Loaded dataset %s %s", ds.Meta.OrdinanceID, ds.Meta.Version)

	return rules.Context{Project: p, Dataset: ds}, nil
}

func loadDataset(opts LoadOptions) (*dataset.Dataset, error) {
	switch {
	case opts.SnapshotPath != "":
		return dataset.OpenSnapshot(opts.SnapshotPath)
	case opts.DatasetPath != "":
		return dataset.Load(opts.DatasetPath)
	default:
		return dataset.Default()
	}
}
