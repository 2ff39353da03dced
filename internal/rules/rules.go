// Package rules implements the egress rule modules. Each module is a
// pure function from an evaluation context to a list of findings: no
// module keeps state between calls, mutates its input, or returns an
// error — a missing dataset row degrades to a REVIEW finding with a nil
// required value.
package rules

import (
	"github.com/stroynorm/egress/internal/dataset"
	"github.com/stroynorm/egress/internal/finding"
	"github.com/stroynorm/egress/internal/project"
)

// Stable rule identifiers. These are part of the public report format
// and must never be renamed.
const (
	RuleOccupantLoad    = "EGR-OCC-001"
	RuleOccupantDefault = "EGR-OCC-002"
	RuleExitCount       = "EGR-EXIT-001"
	RulePanicHardware   = "EGR-EXIT-003"
	RuleExitWidth       = "EGR-WIDTH-001"
	RuleExitLeafWidth   = "EGR-WIDTH-002"
	RuleTravelDistance  = "EGR-TRAVEL-001"
	RuleDeadEnd         = "EGR-TRAVEL-002"
	RuleStairWidth      = "EGR-STAIR-001"
	RuleStairHandrail   = "EGR-STAIR-002"
	RuleStepWidth       = "EGR-STAIR-003"
	RuleStepHeight      = "EGR-STAIR-004"
	RuleStairLighting   = "EGR-STAIR-005"
)

// Context is the immutable input of one evaluation: the building
// description and the regulatory dataset. Rule modules read it and
// never write it.
type Context struct {
	Project *project.Project
	Dataset *dataset.Dataset
}

// Module is a rule module: context in, findings out.
type Module func(Context) []finding.Finding

// Modules lists the rule modules in their fixed evaluation order.
func Modules() []Module {
	return []Module{OccupantLoad, Exits, TravelDistance, Stairs}
}

// travelConditions extracts the building-level circumstances consulted
// by the special travel-distance rows.
func travelConditions(b *project.Building) dataset.TravelConditions {
	return dataset.TravelConditions{
		SingleStorey: b.IsSingleStorey,
		Sprinklers:   b.HasSprinklers,
		FireAlarm:    b.HasFireAlarm,
	}
}

// subjectName prefers the entity's display name, falling back to its id.
func subjectName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
