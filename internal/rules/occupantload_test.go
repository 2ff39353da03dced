package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroynorm/egress/internal/dataset"
	"github.com/stroynorm/egress/internal/finding"
	"github.com/stroynorm/egress/internal/project"
)

func occupantDataset() *dataset.Dataset {
	return &dataset.Dataset{OccupantLoadFactors: []dataset.OccupantLoadFactor{
		{FunctionalClass: "Ф2.1", Description: "зрителни зали", AreaPerPerson: 2.0, LegalRef: "чл. 36, т. 2"},
	}}
}

func findByRule(t *testing.T, findings []finding.Finding, ruleID, subjectID string) *finding.Finding {
	t.Helper()
	for i := range findings {
		if findings[i].RuleID == ruleID && findings[i].SubjectID == subjectID {
			return &findings[i]
		}
	}
	return nil
}

func TestOccupantLoad_PerSpaceInfo(t *testing.T) {
	ctx := Context{
		Project: &project.Project{
			Building: project.Building{FunctionalClass: "Ф2.1"},
			Spaces: []project.Space{
				{ID: "hall", Name: "Зала 1", Area: 100},
				{ID: "stage", Area: 20, OccupantsOverride: 8},
			},
		},
		Dataset: occupantDataset(),
	}

	out := OccupantLoad(ctx)
	require.Len(t, out, 2, "one finding per space, no defaults used")

	hall := findByRule(t, out, RuleOccupantLoad, "hall")
	require.NotNil(t, hall)
	assert.Equal(t, finding.StatusPass, hall.Status)
	assert.Equal(t, finding.SeverityInfo, hall.Severity)
	assert.Equal(t, finding.ScopeSpace, hall.Scope)
	assert.Equal(t, "Зала 1", hall.SubjectName)
	require.NotNil(t, hall.Measured)
	assert.Equal(t, 50.0, *hall.Measured)
	assert.Equal(t, "чл. 36, т. 2", hall.LegalReference)
	assert.Equal(t, "calculated", hall.Details["source"])
	assert.Equal(t, 2.0, hall.Details["area_per_person"])

	stage := findByRule(t, out, RuleOccupantLoad, "stage")
	require.NotNil(t, stage)
	require.NotNil(t, stage.Measured)
	assert.Equal(t, 8.0, *stage.Measured)
	assert.Equal(t, "override", stage.Details["source"])
	assert.NotContains(t, stage.Details, "area_per_person")
}

func TestOccupantLoad_DefaultFactorAddsReview(t *testing.T) {
	ctx := Context{
		Project: &project.Project{
			Building: project.Building{FunctionalClass: "Ф9.9"},
			Spaces:   []project.Space{{ID: "s1", Area: 40}},
		},
		Dataset: &dataset.Dataset{},
	}

	out := OccupantLoad(ctx)
	require.Len(t, out, 2)

	info := findByRule(t, out, RuleOccupantLoad, "s1")
	require.NotNil(t, info)
	assert.Equal(t, finding.StatusPass, info.Status)

	review := findByRule(t, out, RuleOccupantDefault, "s1")
	require.NotNil(t, review)
	assert.Equal(t, finding.StatusReview, review.Status)
	assert.Equal(t, finding.SeverityWarning, review.Severity)
	assert.Contains(t, review.Explanation, "Ф9.9")
}

func TestOccupantLoad_NoReviewWhenFactorMatches(t *testing.T) {
	ctx := Context{
		Project: &project.Project{
			Building: project.Building{FunctionalClass: "Ф2.1"},
			Spaces:   []project.Space{{ID: "s1", Area: 40}},
		},
		Dataset: occupantDataset(),
	}

	out := OccupantLoad(ctx)
	require.Len(t, out, 1)
	assert.Nil(t, findByRule(t, out, RuleOccupantDefault, "s1"))
}
