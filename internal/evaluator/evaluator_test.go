package evaluator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroynorm/egress/internal/dataset"
	"github.com/stroynorm/egress/internal/finding"
	"github.com/stroynorm/egress/internal/project"
	"github.com/stroynorm/egress/internal/rules"
)

func evalDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Meta: dataset.Meta{OrdinanceID: "Наредба № Iз-1971", Version: "test-1"},
		OccupantLoadFactors: []dataset.OccupantLoadFactor{
			{FunctionalClass: "Ф2.1", Description: "зрителни зали", AreaPerPerson: 2.0, LegalRef: "чл. 36, т. 2"},
		},
		MinExitRules: []dataset.MinExitRule{
			{ClassGroup: "Ф2", MinOccupants: 0, RequiredExits: 2, LegalRef: "чл. 39, ал. 1"},
		},
		TravelDistances: []dataset.TravelDistanceRule{
			{EvacuationType: "single", Context: "разстояние до стълбище или краен изход", MaxDistance: 20, LegalRef: "чл. 44, ал. 1"},
		},
		MinWidths: []dataset.MinWidthRule{
			{ElementType: "exit_door", Context: "врати за от 16 до 50 души", MinWidth: num(0.9), LegalRef: "чл. 47, ал. 2"},
			{ElementType: "exit_door", Context: "врати за от 51 до 200 души", MinWidth: num(1.2), LegalRef: "чл. 47, ал. 2"},
		},
	}
}

func num(v float64) *float64 { return &v }

// evalContext describes a hall whose single undersized exit trips the
// exit-count rule, plus a too-long route.
func evalContext() rules.Context {
	return rules.Context{
		Project: &project.Project{
			ID:       "p1",
			Building: project.Building{FunctionalClass: "Ф2.1"},
			Spaces:   []project.Space{{ID: "hall", Name: "Зала", Area: 200}},
			Exits: []project.Exit{
				{ID: "e1", Width: 1.3, ServesSpaces: []string{"hall"}},
			},
			Routes: []project.Route{
				{ID: "r1", FromSpace: "hall", ToExit: "e1", Length: 100, EvacuationType: project.EvacuationSingle},
			},
		},
		Dataset: evalDataset(),
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	ctx := evalContext()

	a := Evaluate(ctx, WithNow(func() time.Time { return time.Time{} }))
	b := Evaluate(ctx, WithNow(func() time.Time { return time.Time{} }))

	rawA, err := finding.MarshalStable(a)
	require.NoError(t, err)
	rawB, err := finding.MarshalStable(b)
	require.NoError(t, err)
	assert.Equal(t, rawA, rawB, "identical input must serialize identically")
}

func TestEvaluate_SummaryInvariant(t *testing.T) {
	res := Evaluate(evalContext())

	s := res.Summary
	assert.Equal(t, len(res.Findings), s.TotalRules)
	assert.Equal(t, s.TotalRules, s.Passed+s.Failed+s.Review)
	assert.Greater(t, s.Failed, 0, "fixture has a missing second exit and an overlong route")
	assert.Equal(t, s.Failed, s.Blockers, "every failure in the fixture is a blocker")
}

func TestEvaluate_SortOrder(t *testing.T) {
	res := Evaluate(evalContext())
	require.NotEmpty(t, res.Findings)

	for i := 1; i < len(res.Findings); i++ {
		prev, cur := res.Findings[i-1], res.Findings[i]
		if prev.Severity.Rank() != cur.Severity.Rank() {
			assert.Less(t, prev.Severity.Rank(), cur.Severity.Rank())
			continue
		}
		if prev.Status.Rank() != cur.Status.Rank() {
			assert.Less(t, prev.Status.Rank(), cur.Status.Rank())
			continue
		}
		assert.LessOrEqual(t, prev.RuleID, cur.RuleID)
	}

	// Blocker failures lead the report.
	assert.Equal(t, finding.SeverityBlocker, res.Findings[0].Severity)
	assert.Equal(t, finding.StatusFail, res.Findings[0].Status)
}

func TestEvaluate_ReportMetadata(t *testing.T) {
	stamp := time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("EET", 2*3600))
	res := Evaluate(evalContext(), WithNow(func() time.Time { return stamp }))

	assert.Equal(t, "p1", res.ProjectID)
	assert.Equal(t, "test-1", res.DatasetVersion)
	assert.Equal(t, stamp.UTC(), res.EvaluatedAt, "timestamps are normalized to UTC")
}

func TestHasBlockers(t *testing.T) {
	assert.True(t, HasBlockers(evalContext()))

	clean := evalContext()
	clean.Project.Exits = append(clean.Project.Exits,
		project.Exit{ID: "e2", Width: 1.3, ServesSpaces: []string{"hall"}})
	clean.Project.Routes[0].Length = 15
	assert.False(t, HasBlockers(clean))
}

func TestFailedFindings(t *testing.T) {
	failed := FailedFindings(evalContext())
	require.NotEmpty(t, failed)
	for _, f := range failed {
		assert.Equal(t, finding.StatusFail, f.Status)
	}

	ruleIDs := make([]string, len(failed))
	for i, f := range failed {
		ruleIDs[i] = f.RuleID
	}
	assert.Contains(t, ruleIDs, rules.RuleExitCount)
	assert.Contains(t, ruleIDs, rules.RuleTravelDistance)
}
