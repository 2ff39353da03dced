package rules

import (
	"fmt"

	"github.com/stroynorm/egress/internal/finding"
	"github.com/stroynorm/egress/internal/occupancy"
)

const occupantLoadRef = "чл. 36 от Наредба № Iз-1971"

// OccupantLoad reports the computed occupant count of every space
// (EGR-OCC-001) and flags spaces whose count had to fall back to the
// default area-per-person norm because the dataset has no factor for
// them (EGR-OCC-002).
func OccupantLoad(ctx Context) []finding.Finding {
	var out []finding.Finding

	for i := range ctx.Project.Spaces {
		sp := &ctx.Project.Spaces[i]
		load := occupancy.Calculate(sp, &ctx.Project.Building, ctx.Dataset)

		ref := load.LegalRef
		if ref == "" {
			ref = occupantLoadRef
		}

		var explanation string
		details := map[string]any{"source": load.Source}
		switch {
		case load.Source == occupancy.SourceOverride:
			explanation = fmt.Sprintf("Брой обитатели: %d души (зададен ръчно от проектанта).", load.Occupants)
		case load.UsedDefault:
			explanation = fmt.Sprintf("Изчислен брой обитатели: %d души при подразбираща се норма %.1f м²/човек.",
				load.Occupants, *load.AreaPerPerson)
			details["area_per_person"] = *load.AreaPerPerson
		default:
			explanation = fmt.Sprintf("Изчислен брой обитатели: %d души при норма %.1f м²/човек.",
				load.Occupants, *load.AreaPerPerson)
			details["area_per_person"] = *load.AreaPerPerson
		}

		out = append(out, finding.Finding{
			RuleID:         RuleOccupantLoad,
			Status:         finding.StatusPass,
			Severity:       finding.SeverityInfo,
			Scope:          finding.ScopeSpace,
			SubjectID:      sp.ID,
			SubjectName:    subjectName(sp.Name, sp.ID),
			Measured:       finding.Num(float64(load.Occupants)),
			Required:       nil,
			Explanation:    explanation,
			LegalReference: ref,
			Details:        details,
		})

		if load.UsedDefault {
			out = append(out, finding.Finding{
				RuleID:         RuleOccupantDefault,
				Status:         finding.StatusReview,
				Severity:       finding.SeverityWarning,
				Scope:          finding.ScopeSpace,
				SubjectID:      sp.ID,
				SubjectName:    subjectName(sp.Name, sp.ID),
				Measured:       finding.Num(float64(load.Occupants)),
				Required:       nil,
				Explanation: fmt.Sprintf("В набора от данни няма норма за обитаемост за клас %q; приложена е подразбираща се норма %.1f м²/човек. Проверете ръчно.",
					ctx.Project.Building.FunctionalClass, occupancy.DefaultAreaPerPerson),
				LegalReference: occupantLoadRef,
			})
		}
	}

	return out
}
