package evaluator

import (
	"fmt"

	"github.com/stroynorm/egress/internal/rules"
)

// ValidationResult holds the outcome of a structural context check.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateContext performs the structural pre-check of an evaluation
// context, independent of rule evaluation: presence of project,
// building class and dataset, uniqueness of space ids, and referential
// integrity of route→space, route→exit and exit→space links.
//
// A missing project short-circuits with a single error so unrelated
// checks don't cascade. Rule evaluation itself performs none of these
// checks and must not be invoked on an invalid context.
func ValidateContext(ctx rules.Context) ValidationResult {
	if ctx.Project == nil {
		return ValidationResult{Errors: []string{"project is missing"}}
	}

	var errs []string

	if ctx.Project.Building.FunctionalClass == "" {
		errs = append(errs, "building: functional_class is required")
	}

	if ctx.Dataset == nil {
		errs = append(errs, "dataset is missing")
	} else if ctx.Dataset.OccupantLoadFactors == nil {
		errs = append(errs, "dataset: occupant_load_factors table is missing")
	}

	if len(ctx.Project.Spaces) == 0 {
		errs = append(errs, "project has no spaces")
	}

	spaceIDs := make(map[string]bool, len(ctx.Project.Spaces))
	for _, sp := range ctx.Project.Spaces {
		if sp.ID == "" {
			errs = append(errs, "space: id is required")
			continue
		}
		if spaceIDs[sp.ID] {
			errs = append(errs, fmt.Sprintf("space %q: duplicate id", sp.ID))
		}
		spaceIDs[sp.ID] = true
	}

	exitIDs := make(map[string]bool, len(ctx.Project.Exits))
	for _, ex := range ctx.Project.Exits {
		exitIDs[ex.ID] = true
		for _, sid := range ex.ServesSpaces {
			if !spaceIDs[sid] {
				errs = append(errs, fmt.Sprintf("exit %q: serves unknown space %q", ex.ID, sid))
			}
		}
	}

	for _, rt := range ctx.Project.Routes {
		if !spaceIDs[rt.FromSpace] {
			errs = append(errs, fmt.Sprintf("route %q: unknown source space %q", rt.ID, rt.FromSpace))
		}
		if !exitIDs[rt.ToExit] {
			errs = append(errs, fmt.Sprintf("route %q: unknown destination exit %q", rt.ID, rt.ToExit))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
