package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroynorm/egress/internal/dataset"
	"github.com/stroynorm/egress/internal/project"
	"github.com/stroynorm/egress/internal/rules"
)

func validContext() rules.Context {
	return rules.Context{
		Project: &project.Project{
			ID:       "p1",
			Building: project.Building{FunctionalClass: "Ф2.1"},
			Spaces:   []project.Space{{ID: "hall", Area: 100}},
			Exits:    []project.Exit{{ID: "e1", Width: 1.2, ServesSpaces: []string{"hall"}}},
			Routes: []project.Route{
				{ID: "r1", FromSpace: "hall", ToExit: "e1", Length: 10, EvacuationType: project.EvacuationSingle},
			},
		},
		Dataset: &dataset.Dataset{OccupantLoadFactors: []dataset.OccupantLoadFactor{}},
	}
}

func TestValidateContext_Valid(t *testing.T) {
	res := ValidateContext(validContext())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateContext_NilProjectShortCircuits(t *testing.T) {
	res := ValidateContext(rules.Context{})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"project is missing"}, res.Errors,
		"no cascading errors for a missing project")
}

func TestValidateContext_StructuralErrors(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*rules.Context)
		wantErr string
	}{
		{
			"missing functional class",
			func(c *rules.Context) { c.Project.Building.FunctionalClass = "" },
			"building: functional_class is required",
		},
		{
			"missing dataset",
			func(c *rules.Context) { c.Dataset = nil },
			"dataset is missing",
		},
		{
			"missing occupant table",
			func(c *rules.Context) { c.Dataset = &dataset.Dataset{} },
			"dataset: occupant_load_factors table is missing",
		},
		{
			"no spaces",
			func(c *rules.Context) {
				c.Project.Spaces = nil
				c.Project.Exits = nil
				c.Project.Routes = nil
			},
			"project has no spaces",
		},
		{
			"duplicate space id",
			func(c *rules.Context) {
				c.Project.Spaces = append(c.Project.Spaces, project.Space{ID: "hall", Area: 1})
			},
			`space "hall": duplicate id`,
		},
		{
			"empty space id",
			func(c *rules.Context) {
				c.Project.Spaces = append(c.Project.Spaces, project.Space{Area: 1})
			},
			"space: id is required",
		},
		{
			"exit serves unknown space",
			func(c *rules.Context) {
				c.Project.Exits[0].ServesSpaces = []string{"ghost"}
			},
			`exit "e1": serves unknown space "ghost"`,
		},
		{
			"route from unknown space",
			func(c *rules.Context) { c.Project.Routes[0].FromSpace = "ghost" },
			`route "r1": unknown source space "ghost"`,
		},
		{
			"route to unknown exit",
			func(c *rules.Context) { c.Project.Routes[0].ToExit = "ghost" },
			`route "r1": unknown destination exit "ghost"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := validContext()
			tc.mutate(&ctx)

			res := ValidateContext(ctx)
			require.False(t, res.Valid)
			assert.Contains(t, res.Errors, tc.wantErr)
		})
	}
}
