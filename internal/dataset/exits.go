package dataset

// LookupMinExits resolves the minimum-exit rule applying to a space.
//
// Rows are filtered by class group (industrial rows additionally by
// fire-hazard category when both the row and the query specify one),
// underground applicability, the inclusive occupant range (nil max =
// open-ended), and the area ceiling (nil = unlimited). Among all
// matching rows the one demanding the fewest exits wins; ties keep the
// first row in table order, so resolution is deterministic for a given
// dataset.
//
// Returns nil when no row matches; the exit rule reports that as a
// REVIEW finding rather than assuming a requirement.
func (d *Dataset) LookupMinExits(class string, occupants int, area float64, isUnderground bool, fireHazardCategory string) *MinExitRule {
	group := FunctionalClassGroup(class)
	industrial := IsIndustrialClass(class)

	var best *MinExitRule
	for i := range d.MinExitRules {
		r := &d.MinExitRules[i]
		if !equalFold(r.ClassGroup, group) {
			continue
		}
		if industrial && r.FireHazardCategory != "" && fireHazardCategory != "" &&
			!equalFold(r.FireHazardCategory, fireHazardCategory) {
			continue
		}
		if r.Underground != nil && *r.Underground != isUnderground {
			continue
		}
		if occupants < r.MinOccupants {
			continue
		}
		if r.MaxOccupants != nil && occupants > *r.MaxOccupants {
			continue
		}
		if r.MaxArea != nil && area > *r.MaxArea {
			continue
		}
		if best == nil || r.RequiredExits < best.RequiredExits {
			best = r
		}
	}
	return best
}
