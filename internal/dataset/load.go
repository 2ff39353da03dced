package dataset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/iz1971.yaml
var defaultYAML []byte

// RequiredTables names the tables every loaded dataset must expose,
// in report order.
var RequiredTables = []string{
	"occupant_load_factors",
	"min_exit_rules",
	"travel_distances",
	"dead_end_limits",
	"min_widths",
	"functional_classes",
	"height_categories",
}

// Default returns the embedded Iз-1971 dataset. Each call decodes a
// fresh value so callers can never alias (and so never mutate) a shared
// instance.
func Default() (*Dataset, error) {
	return Parse(defaultYAML)
}

// Load reads and parses a dataset YAML file.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes dataset YAML and normalizes absent tables to empty
// lists, so downstream lookups can range over them without nil checks.
// Metadata must be present: an unversioned dataset cannot be cited.
func Parse(raw []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if d.Meta.OrdinanceID == "" || d.Meta.Version == "" {
		return nil, fmt.Errorf("parse dataset: meta.ordinance_id and meta.version are required")
	}
	d.normalize()
	return &d, nil
}

// normalize replaces nil table slices with empty ones. A missing table
// is legal (it yields REVIEW findings downstream), an absent list is
// not.
func (d *Dataset) normalize() {
	if d.OccupantLoadFactors == nil {
		d.OccupantLoadFactors = []OccupantLoadFactor{}
	}
	if d.MinExitRules == nil {
		d.MinExitRules = []MinExitRule{}
	}
	if d.TravelDistances == nil {
		d.TravelDistances = []TravelDistanceRule{}
	}
	if d.DeadEndLimits == nil {
		d.DeadEndLimits = []DeadEndLimit{}
	}
	if d.MinWidths == nil {
		d.MinWidths = []MinWidthRule{}
	}
	if d.FunctionalClasses == nil {
		d.FunctionalClasses = []FunctionalClass{}
	}
	if d.HeightCategories == nil {
		d.HeightCategories = []HeightCategoryBound{}
	}
}

// TableCounts returns the row count per required table, keyed by table
// name. Used by the CLI dataset command.
func (d *Dataset) TableCounts() map[string]int {
	return map[string]int{
		"occupant_load_factors": len(d.OccupantLoadFactors),
		"min_exit_rules":        len(d.MinExitRules),
		"travel_distances":      len(d.TravelDistances),
		"dead_end_limits":       len(d.DeadEndLimits),
		"min_widths":            len(d.MinWidths),
		"functional_classes":    len(d.FunctionalClasses),
		"height_categories":     len(d.HeightCategories),
	}
}
