package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroynorm/egress/internal/dataset"
	"github.com/stroynorm/egress/internal/project"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{OccupantLoadFactors: []dataset.OccupantLoadFactor{
		{FunctionalClass: "Ф2.1", Description: "зрителни зали", AreaPerPerson: 2.0, LegalRef: "чл. 36, т. 2"},
		{FunctionalClass: "Ф3.1", Description: "търговски зали на първи етаж", AreaPerPerson: 3.0, LegalRef: "чл. 36, т. 3"},
		{FunctionalClass: "Ф3.1", Description: "търговски зали над първия етаж", AreaPerPerson: 5.0, LegalRef: "чл. 36, т. 3"},
	}}
}

func TestCalculate_Rounding(t *testing.T) {
	ds := testDataset()
	b := &project.Building{FunctionalClass: "Ф2.1"}

	testCases := []struct {
		name string
		area float64
		want int
	}{
		{"exact division", 100, 50},
		{"fraction rounds up", 101, 51},
		{"tiny room still rounds up", 0.5, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := Calculate(&project.Space{ID: "s1", Area: tc.area}, b, ds)
			assert.Equal(t, tc.want, l.Occupants)
			assert.Equal(t, SourceCalculated, l.Source)
			require.NotNil(t, l.AreaPerPerson)
			assert.Equal(t, 2.0, *l.AreaPerPerson)
			assert.False(t, l.UsedDefault)
			assert.Equal(t, "чл. 36, т. 2", l.LegalRef)
		})
	}
}

func TestCalculate_Override(t *testing.T) {
	ds := testDataset()
	b := &project.Building{FunctionalClass: "Ф2.1"}

	l := Calculate(&project.Space{ID: "s1", Area: 100, OccupantsOverride: 37}, b, ds)
	assert.Equal(t, 37, l.Occupants)
	assert.Equal(t, SourceOverride, l.Source)
	assert.Nil(t, l.AreaPerPerson, "overrides carry no norm")
	assert.False(t, l.UsedDefault)
}

func TestCalculate_DefaultFactor(t *testing.T) {
	ds := &dataset.Dataset{OccupantLoadFactors: []dataset.OccupantLoadFactor{}}
	b := &project.Building{FunctionalClass: "Ф1.1"}

	l := Calculate(&project.Space{ID: "s1", Area: 12}, b, ds)
	assert.Equal(t, 3, l.Occupants, "12 m² at the 5 m²/person default")
	assert.True(t, l.UsedDefault)
	require.NotNil(t, l.AreaPerPerson)
	assert.Equal(t, DefaultAreaPerPerson, *l.AreaPerPerson)
	assert.Empty(t, l.LegalRef)
}

func TestCalculate_GroundFloorVariant(t *testing.T) {
	ds := testDataset()
	b := &project.Building{FunctionalClass: "Ф3.1"}

	ground := Calculate(&project.Space{ID: "s1", Area: 150, Floor: 0}, b, ds)
	require.NotNil(t, ground.AreaPerPerson)
	assert.Equal(t, 3.0, *ground.AreaPerPerson)
	assert.Equal(t, 50, ground.Occupants)

	upper := Calculate(&project.Space{ID: "s2", Area: 150, Floor: 2}, b, ds)
	require.NotNil(t, upper.AreaPerPerson)
	assert.Equal(t, 5.0, *upper.AreaPerPerson)
	assert.Equal(t, 30, upper.Occupants)
}

func TestTotal(t *testing.T) {
	ds := testDataset()
	p := &project.Project{
		Building: project.Building{FunctionalClass: "Ф2.1"},
		Spaces: []project.Space{
			{ID: "hall", Area: 100},
			{ID: "stage", Area: 30, OccupantsOverride: 12},
		},
	}

	total, loads := Total(p, ds)
	assert.Equal(t, 62, total)
	require.Len(t, loads, 2)
	assert.Equal(t, 50, loads["hall"].Occupants)
	assert.Equal(t, 12, loads["stage"].Occupants)
	assert.Equal(t, SourceOverride, loads["stage"].Source)
}
