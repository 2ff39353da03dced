package rules

import (
	"fmt"

	"github.com/stroynorm/egress/internal/dataset"
	"github.com/stroynorm/egress/internal/finding"
	"github.com/stroynorm/egress/internal/occupancy"
	"github.com/stroynorm/egress/internal/project"
)

const (
	panicHardwareRef       = "чл. 47, ал. 5 от Наредба № Iз-1971"
	exitWidthFloor         = 0.9
	panicHardwareThreshold = 100
	leafWidthThreshold     = 50
)

// Exits checks, per space, that enough exits serve it (EGR-EXIT-001)
// and, per exit, that its width fits the occupants it serves
// (EGR-WIDTH-001), that a single leaf is not overloaded (EGR-WIDTH-002)
// and that exits for over 100 occupants carry panic hardware
// (EGR-EXIT-003).
func Exits(ctx Context) []finding.Finding {
	var out []finding.Finding

	_, loads := occupancy.Total(ctx.Project, ctx.Dataset)

	for i := range ctx.Project.Spaces {
		out = append(out, checkExitCount(ctx, &ctx.Project.Spaces[i], loads))
	}

	for i := range ctx.Project.Exits {
		out = append(out, checkExit(ctx, &ctx.Project.Exits[i], loads)...)
	}

	return out
}

// checkExitCount compares the number of exits serving a space against
// the dataset's minimum-exit rule for its occupant load and area.
func checkExitCount(ctx Context, sp *project.Space, loads map[string]occupancy.Load) finding.Finding {
	occ := loads[sp.ID].Occupants
	actual := len(ctx.Project.ExitsServing(sp.ID))

	rule := ctx.Dataset.LookupMinExits(ctx.Project.Building.FunctionalClass,
		occ, sp.Area, sp.Underground, sp.FireHazardCategory)
	if rule == nil {
		return finding.Finding{
			RuleID:      RuleExitCount,
			Status:      finding.StatusReview,
			Severity:    finding.SeverityWarning,
			Scope:       finding.ScopeSpace,
			SubjectID:   sp.ID,
			SubjectName: subjectName(sp.Name, sp.ID),
			Measured:    finding.Num(float64(actual)),
			Required:    nil,
			Explanation: fmt.Sprintf("В набора от данни няма изискване за минимален брой изходи за помещение с %d обитатели. Проверете ръчно.", occ),
			LegalReference: "Наредба № Iз-1971, глава седма",
		}
	}

	status := finding.StatusPass
	severity := finding.SeverityInfo
	explanation := fmt.Sprintf("Помещението разполага с %d евакуационни изхода при изискуеми %d.", actual, rule.RequiredExits)
	if actual < rule.RequiredExits {
		status = finding.StatusFail
		severity = finding.SeverityBlocker
		explanation = fmt.Sprintf("Помещението разполага само с %d евакуационни изхода при изискуеми %d за %d обитатели.",
			actual, rule.RequiredExits, occ)
	}

	return finding.Finding{
		RuleID:         RuleExitCount,
		Status:         status,
		Severity:       severity,
		Scope:          finding.ScopeSpace,
		SubjectID:      sp.ID,
		SubjectName:    subjectName(sp.Name, sp.ID),
		Measured:       finding.Num(float64(actual)),
		Required:       finding.Num(float64(rule.RequiredExits)),
		Explanation:    explanation,
		LegalReference: rule.LegalRef,
		Details:        map[string]any{"occupants": occ},
	}
}

// checkExit evaluates one exit's width and hardware against the total
// occupant load of the spaces it serves.
func checkExit(ctx Context, ex *project.Exit, loads map[string]occupancy.Load) []finding.Finding {
	var out []finding.Finding

	occ := 0
	underground := false
	for _, sid := range ex.ServesSpaces {
		occ += loads[sid].Occupants
		if sp := ctx.Project.SpaceByID(sid); sp != nil && sp.Underground {
			underground = true
		}
	}

	row := ctx.Dataset.LookupMinWidth(dataset.ElementExitDoor, occ, underground)
	if row == nil {
		out = append(out, finding.Finding{
			RuleID:      RuleExitWidth,
			Status:      finding.StatusReview,
			Severity:    finding.SeverityWarning,
			Scope:       finding.ScopeExit,
			SubjectID:   ex.ID,
			SubjectName: subjectName(ex.Name, ex.ID),
			Measured:    finding.Num(ex.Width),
			Required:    nil,
			Explanation: fmt.Sprintf("В набора от данни няма изискване за широчина на изход за %d обитатели. Проверете ръчно.", occ),
			LegalReference: "Наредба № Iз-1971, глава седма",
			Details:        map[string]any{"occupants": occ},
		})
	} else {
		required := exitWidthFloor
		if row.MinWidth != nil {
			required = *row.MinWidth
		}

		status := finding.StatusPass
		severity := finding.SeverityInfo
		explanation := fmt.Sprintf("Светлата широчина на изхода е %.2f м при изискуеми %.2f м за %d обитатели.",
			ex.Width, required, occ)
		if ex.Width < required {
			status = finding.StatusFail
			severity = finding.SeverityBlocker
			explanation = fmt.Sprintf("Светлата широчина на изхода е %.2f м при изискуеми минимум %.2f м за %d обитатели.",
				ex.Width, required, occ)
		}

		out = append(out, finding.Finding{
			RuleID:         RuleExitWidth,
			Status:         status,
			Severity:       severity,
			Scope:          finding.ScopeExit,
			SubjectID:      ex.ID,
			SubjectName:    subjectName(ex.Name, ex.ID),
			Measured:       finding.Num(ex.Width),
			Required:       finding.Num(required),
			Explanation:    explanation,
			LegalReference: row.LegalRef,
			Details:        map[string]any{"occupants": occ},
		})

		// Oversized single leaves are an ergonomic problem, not a
		// capacity one: recommend splitting instead of blocking.
		if occ > leafWidthThreshold && row.MaxWidth != nil && ex.Width > *row.MaxWidth {
			out = append(out, finding.Finding{
				RuleID:      RuleExitLeafWidth,
				Status:      finding.StatusReview,
				Severity:    finding.SeverityWarning,
				Scope:       finding.ScopeExit,
				SubjectID:   ex.ID,
				SubjectName: subjectName(ex.Name, ex.ID),
				Measured:    finding.Num(ex.Width),
				Required:    finding.Num(*row.MaxWidth),
				Explanation: fmt.Sprintf("Широчината на крилото %.2f м надвишава максималните %.2f м; препоръчва се разделяне на два изхода.",
					ex.Width, *row.MaxWidth),
				LegalReference: row.LegalRef,
				Details:        map[string]any{"occupants": occ},
			})
		}
	}

	if occ > panicHardwareThreshold && !ex.HasPanicHardware {
		out = append(out, finding.Finding{
			RuleID:      RulePanicHardware,
			Status:      finding.StatusFail,
			Severity:    finding.SeverityBlocker,
			Scope:       finding.ScopeExit,
			SubjectID:   ex.ID,
			SubjectName: subjectName(ex.Name, ex.ID),
			Measured:    finding.Num(float64(occ)),
			Required:    finding.Num(float64(panicHardwareThreshold)),
			Explanation: fmt.Sprintf("Изходът обслужва %d обитатели и вратата трябва да е съоръжена с антипаник обков.", occ),
			LegalReference: panicHardwareRef,
		})
	}

	return out
}
