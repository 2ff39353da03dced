package rules

import (
	"fmt"

	"github.com/stroynorm/egress/internal/dataset"
	"github.com/stroynorm/egress/internal/finding"
	"github.com/stroynorm/egress/internal/project"
)

// deadEndRef is cited when the dead-end table is missing entirely; the
// numeric limit itself always comes from a dataset row.
const deadEndRef = "чл. 45 от Наредба № Iз-1971"

// TravelDistance checks every route's length against the maximum
// travel distance for its evacuation type and the source space's
// hazard category (EGR-TRAVEL-001), and dead-end segments against the
// dead-end limit (EGR-TRAVEL-002). Routes without a dead end produce no
// dead-end finding.
func TravelDistance(ctx Context) []finding.Finding {
	var out []finding.Finding

	cond := travelConditions(&ctx.Project.Building)

	for i := range ctx.Project.Routes {
		rt := &ctx.Project.Routes[i]

		hazard := ""
		if sp := ctx.Project.SpaceByID(rt.FromSpace); sp != nil {
			hazard = sp.FireHazardCategory
		}

		out = append(out, checkTravelDistance(ctx, rt, hazard, cond))

		if rt.HasDeadEnd {
			out = append(out, checkDeadEnd(ctx, rt, hazard))
		}
	}

	return out
}

func checkTravelDistance(ctx Context, rt *project.Route, hazard string, cond dataset.TravelConditions) finding.Finding {
	rule := ctx.Dataset.LookupMaxTravelDistance(string(rt.EvacuationType),
		dataset.ContextToStair, hazard, cond)
	if rule == nil {
		return finding.Finding{
			RuleID:      RuleTravelDistance,
			Status:      finding.StatusReview,
			Severity:    finding.SeverityWarning,
			Scope:       finding.ScopeRoute,
			SubjectID:   rt.ID,
			SubjectName: rt.ID,
			Measured:    finding.Num(rt.Length),
			Required:    nil,
			Explanation: "В набора от данни няма максимална дължина на евакуационния път за този маршрут. Проверете ръчно.",
			LegalReference: "Наредба № Iз-1971, глава седма",
		}
	}

	status := finding.StatusPass
	severity := finding.SeverityInfo
	explanation := fmt.Sprintf("Дължината на евакуационния път е %.1f м при допустими %.1f м.",
		rt.Length, rule.MaxDistance)
	if rt.Length > rule.MaxDistance {
		status = finding.StatusFail
		severity = finding.SeverityBlocker
		explanation = fmt.Sprintf("Дължината на евакуационния път е %.1f м и надвишава допустимите %.1f м.",
			rt.Length, rule.MaxDistance)
	}

	return finding.Finding{
		RuleID:         RuleTravelDistance,
		Status:         status,
		Severity:       severity,
		Scope:          finding.ScopeRoute,
		SubjectID:      rt.ID,
		SubjectName:    rt.ID,
		Measured:       finding.Num(rt.Length),
		Required:       finding.Num(rule.MaxDistance),
		Explanation:    explanation,
		LegalReference: rule.LegalRef,
		Details:        map[string]any{"evacuation_type": string(rt.EvacuationType)},
	}
}

func checkDeadEnd(ctx Context, rt *project.Route, hazard string) finding.Finding {
	limit := ctx.Dataset.LookupDeadEndLimit(hazard)
	if limit == nil {
		return finding.Finding{
			RuleID:      RuleDeadEnd,
			Status:      finding.StatusReview,
			Severity:    finding.SeverityWarning,
			Scope:       finding.ScopeRoute,
			SubjectID:   rt.ID,
			SubjectName: rt.ID,
			Measured:    finding.Num(rt.DeadEndLength),
			Required:    nil,
			Explanation: "В набора от данни няма ограничение за дължина на задънен коридор. Проверете ръчно.",
			LegalReference: deadEndRef,
		}
	}

	status := finding.StatusPass
	severity := finding.SeverityInfo
	explanation := fmt.Sprintf("Задъненият участък е %.1f м при допустими %.1f м.",
		rt.DeadEndLength, limit.MaxLength)
	if rt.DeadEndLength > limit.MaxLength {
		status = finding.StatusFail
		severity = finding.SeverityBlocker
		explanation = fmt.Sprintf("Задъненият участък е %.1f м и надвишава допустимите %.1f м.",
			rt.DeadEndLength, limit.MaxLength)
	}

	return finding.Finding{
		RuleID:         RuleDeadEnd,
		Status:         status,
		Severity:       severity,
		Scope:          finding.ScopeRoute,
		SubjectID:      rt.ID,
		SubjectName:    rt.ID,
		Measured:       finding.Num(rt.DeadEndLength),
		Required:       finding.Num(limit.MaxLength),
		Explanation:    explanation,
		LegalReference: limit.LegalRef,
	}
}
