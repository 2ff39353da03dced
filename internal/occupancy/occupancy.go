// Package occupancy derives per-space occupant counts from floor area
// and the dataset's area-per-person norms, honoring manual overrides.
package occupancy

import (
	"math"

	"github.com/stroynorm/egress/internal/dataset"
	"github.com/stroynorm/egress/internal/project"
)

// DefaultAreaPerPerson is the safe norm applied when the dataset has no
// factor for a space. Using it is not an error; the occupant-load rule
// reports it as a REVIEW finding.
const DefaultAreaPerPerson = 5.0

// Source of an occupant count.
const (
	SourceOverride   = "override"
	SourceCalculated = "calculated"
)

// Load is the computed occupant load of one space.
type Load struct {
	Occupants     int
	Source        string
	AreaPerPerson *float64
	LegalRef      string
	// UsedDefault marks loads computed with DefaultAreaPerPerson
	// because no dataset factor matched.
	UsedDefault bool
}

// Calculate returns the occupant load of a space.
//
// A positive manual override wins verbatim and carries no
// area-per-person value. Otherwise the dataset factor for the space's
// class and type applies (ground-floor variant selected by floor 0) and
// occupants = ceil(area / factor); a lookup miss degrades to
// DefaultAreaPerPerson with UsedDefault set.
func Calculate(sp *project.Space, b *project.Building, ds *dataset.Dataset) Load {
	if sp.OccupantsOverride > 0 {
		return Load{
			Occupants: sp.OccupantsOverride,
			Source:    SourceOverride,
		}
	}

	ground := sp.Floor == 0
	factor := ds.LookupOccupantLoadFactor(b.FunctionalClass, sp.SpaceType, &ground)
	if factor == nil {
		per := DefaultAreaPerPerson
		return Load{
			Occupants:     ceilDiv(sp.Area, per),
			Source:        SourceCalculated,
			AreaPerPerson: &per,
			UsedDefault:   true,
		}
	}

	per := factor.AreaPerPerson
	return Load{
		Occupants:     ceilDiv(sp.Area, per),
		Source:        SourceCalculated,
		AreaPerPerson: &per,
		LegalRef:      factor.LegalRef,
	}
}

// Total sums the occupant load over all spaces and returns the total
// with the per-space breakdown keyed by space id.
func Total(p *project.Project, ds *dataset.Dataset) (int, map[string]Load) {
	loads := make(map[string]Load, len(p.Spaces))
	total := 0
	for i := range p.Spaces {
		l := Calculate(&p.Spaces[i], &p.Building, ds)
		loads[p.Spaces[i].ID] = l
		total += l.Occupants
	}
	return total, loads
}

// ceilDiv rounds area/factor up to whole persons. A non-positive
// factor would divide by zero; treat it as the default norm.
func ceilDiv(area, factor float64) int {
	if factor <= 0 {
		factor = DefaultAreaPerPerson
	}
	return int(math.Ceil(area / factor))
}
