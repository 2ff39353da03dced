package rules

import (
	"fmt"
	"math"

	"github.com/stroynorm/egress/internal/finding"
	"github.com/stroynorm/egress/internal/occupancy"
	"github.com/stroynorm/egress/internal/project"
)

const (
	stairWidthRef    = "чл. 48, ал. 1 от Наредба № Iз-1971"
	spiralStairRef   = "чл. 48, ал. 3 от Наредба № Iз-1971"
	handrailRef      = "чл. 48, ал. 2 от Наредба № Iз-1971"
	stepWidthRef     = "чл. 49, ал. 1 от Наредба № Iз-1971"
	stepHeightRef    = "чл. 49, ал. 2 от Наредба № Iз-1971"
	stairLightingRef = "чл. 50, ал. 1 от Наредба № Iз-1971"
)

// Stair geometry limits in metres.
const (
	stairWidthFloor      = 0.9
	spiralWidthSmall     = 1.2
	spiralWidthLarge     = 1.5
	spiralOccThreshold   = 50
	handrailSplitWidth   = 2.4
	largeStairThreshold  = 200
	stepWidthInternal    = 0.25
	stepWidthSpiral      = 0.23
	stepHeightInternal   = 0.22
	stepHeightExternal   = 0.25
	lightingFloorsLimit  = 3
	widthPer100Above     = 0.8
	widthPer100Undergrnd = 1.2
)

// Stairs evaluates every stair: width against the occupants it serves
// (EGR-STAIR-001), a handrail-split recommendation for very wide
// flights (EGR-STAIR-002), step geometry (EGR-STAIR-003/004), and
// natural lighting or smoke venting of tall enclosed stairs
// (EGR-STAIR-005).
func Stairs(ctx Context) []finding.Finding {
	var out []finding.Finding

	_, loads := occupancy.Total(ctx.Project, ctx.Dataset)

	for i := range ctx.Project.Stairs {
		st := &ctx.Project.Stairs[i]
		occ, underground := stairOccupants(ctx.Project, st, loads)

		out = append(out, checkStairWidth(st, occ, underground))

		if st.Width > handrailSplitWidth {
			out = append(out, finding.Finding{
				RuleID:      RuleStairHandrail,
				Status:      finding.StatusReview,
				Severity:    finding.SeverityWarning,
				Scope:       finding.ScopeStair,
				SubjectID:   st.ID,
				SubjectName: subjectName(st.Name, st.ID),
				Measured:    finding.Num(st.Width),
				Required:    finding.Num(handrailSplitWidth),
				Explanation: fmt.Sprintf("Широчината на стълбищното рамо %.2f м надвишава %.2f м; препоръчва се разделяне с междинен парапет.",
					st.Width, handrailSplitWidth),
				LegalReference: handrailRef,
			})
		}

		if st.StepWidth > 0 {
			out = append(out, checkStepWidth(st))
		}
		if st.StepHeight > 0 {
			out = append(out, checkStepHeight(st))
		}

		if f := checkStairLighting(st); f != nil {
			out = append(out, *f)
		}
	}

	return out
}

// stairOccupants sums the occupant load of all spaces on the floors the
// stair serves, and reports whether any of them is underground.
func stairOccupants(p *project.Project, st *project.Stair, loads map[string]occupancy.Load) (int, bool) {
	floors := make(map[int]bool, len(st.ServesFloors))
	for _, f := range st.ServesFloors {
		floors[f] = true
	}

	occ := 0
	underground := false
	for i := range p.Spaces {
		sp := &p.Spaces[i]
		if !floors[sp.Floor] {
			continue
		}
		occ += loads[sp.ID].Occupants
		if sp.Underground {
			underground = true
		}
	}
	return occ, underground
}

// checkStairWidth compares the stair width against its required
// minimum: fixed thresholds for spiral stairs, the 0.9 m floor for
// regular ones, scaled by occupants per 100 above 200 served.
func checkStairWidth(st *project.Stair, occ int, underground bool) finding.Finding {
	var required float64
	ref := stairWidthRef

	if st.Type == project.StairSpiral {
		required = spiralWidthSmall
		if occ > spiralOccThreshold {
			required = spiralWidthLarge
		}
		ref = spiralStairRef
	} else {
		required = stairWidthFloor
		if occ > largeStairThreshold {
			per100 := widthPer100Above
			if underground {
				per100 = widthPer100Undergrnd
			}
			required = math.Max(stairWidthFloor, math.Round(float64(occ)/100*per100*100)/100)
		}
	}

	status := finding.StatusPass
	severity := finding.SeverityInfo
	explanation := fmt.Sprintf("Широчината на стълбището е %.2f м при изискуеми %.2f м за %d обитатели.",
		st.Width, required, occ)
	if st.Width < required {
		status = finding.StatusFail
		severity = finding.SeverityBlocker
		explanation = fmt.Sprintf("Широчината на стълбището е %.2f м при изискуеми минимум %.2f м за %d обитатели.",
			st.Width, required, occ)
	}

	return finding.Finding{
		RuleID:         RuleStairWidth,
		Status:         status,
		Severity:       severity,
		Scope:          finding.ScopeStair,
		SubjectID:      st.ID,
		SubjectName:    subjectName(st.Name, st.ID),
		Measured:       finding.Num(st.Width),
		Required:       finding.Num(required),
		Explanation:    explanation,
		LegalReference: ref,
		Details:        map[string]any{"occupants": occ, "stair_type": string(st.Type)},
	}
}

func checkStepWidth(st *project.Stair) finding.Finding {
	required := stepWidthInternal
	if st.Type == project.StairSpiral {
		// Spiral steps are measured at the walking-line inset.
		required = stepWidthSpiral
	}

	status := finding.StatusPass
	severity := finding.SeverityInfo
	explanation := fmt.Sprintf("Широчината на стъпалото е %.2f м при изискуеми %.2f м.", st.StepWidth, required)
	if st.StepWidth < required {
		status = finding.StatusFail
		severity = finding.SeverityBlocker
		explanation = fmt.Sprintf("Широчината на стъпалото е %.2f м при изискуеми минимум %.2f м.", st.StepWidth, required)
	}

	return finding.Finding{
		RuleID:         RuleStepWidth,
		Status:         status,
		Severity:       severity,
		Scope:          finding.ScopeStair,
		SubjectID:      st.ID,
		SubjectName:    subjectName(st.Name, st.ID),
		Measured:       finding.Num(st.StepWidth),
		Required:       finding.Num(required),
		Explanation:    explanation,
		LegalReference: stepWidthRef,
	}
}

func checkStepHeight(st *project.Stair) finding.Finding {
	allowed := stepHeightInternal
	if st.Type == project.StairExternal {
		allowed = stepHeightExternal
	}

	status := finding.StatusPass
	severity := finding.SeverityInfo
	explanation := fmt.Sprintf("Височината на стъпалото е %.2f м при допустими %.2f м.", st.StepHeight, allowed)
	if st.StepHeight > allowed {
		status = finding.StatusFail
		severity = finding.SeverityBlocker
		explanation = fmt.Sprintf("Височината на стъпалото е %.2f м и надвишава допустимите %.2f м.", st.StepHeight, allowed)
	}

	return finding.Finding{
		RuleID:         RuleStepHeight,
		Status:         status,
		Severity:       severity,
		Scope:          finding.ScopeStair,
		SubjectID:      st.ID,
		SubjectName:    subjectName(st.Name, st.ID),
		Measured:       finding.Num(st.StepHeight),
		Required:       finding.Num(allowed),
		Explanation:    explanation,
		LegalReference: stepHeightRef,
	}
}

// checkStairLighting flags enclosed stairs serving more than three
// floors with neither natural lighting nor smoke venting. Either
// measure satisfies the requirement, in which case no finding is
// emitted at all.
func checkStairLighting(st *project.Stair) *finding.Finding {
	if st.Type != project.StairEnclosed {
		return nil
	}
	if len(st.ServesFloors) <= lightingFloorsLimit {
		return nil
	}
	if st.IsNaturallyLit || st.HasSmokeVent {
		return nil
	}

	return &finding.Finding{
		RuleID:      RuleStairLighting,
		Status:      finding.StatusFail,
		Severity:    finding.SeverityBlocker,
		Scope:       finding.ScopeStair,
		SubjectID:   st.ID,
		SubjectName: subjectName(st.Name, st.ID),
		Measured:    finding.Num(float64(len(st.ServesFloors))),
		Required:    finding.Num(float64(lightingFloorsLimit)),
		Explanation: fmt.Sprintf("Затвореното стълбище обслужва %d етажа без естествено осветление и без отвор за отвеждане на дим.",
			len(st.ServesFloors)),
		LegalReference: stairLightingRef,
		Details: map[string]any{
			"is_naturally_lit": st.IsNaturallyLit,
			"has_smoke_vent":   st.HasSmokeVent,
		},
	}
}
