package dataset

import "math"

// Occupant-band markers used by the exit-door width rows.
const (
	bandUpTo15   = "до 15"
	band16To50   = "от 16 до 50"
	band51To200  = "от 51 до 200"
	bandOver200  = "над 200"
	spiralUpTo50 = "до 50"
)

// Underground/above-ground qualifiers used by corridor and stair rows.
const (
	undergroundMarker = "подземн"
	aboveGroundMarker = "надземн"
)

// Width-per-100-occupants factors for exits above 200 occupants, by
// floor type.
const (
	widthPer100Ground      = 0.6
	widthPer100Above       = 0.8
	widthPer100Underground = 1.2
)

// LookupMinWidth resolves the minimum clear width row for an
// evacuation element.
//
// Dispatch is per element type: corridors and large-occupancy stairs by
// the underground/above-ground qualifier in the row context; exit doors
// by occupant band; spiral stairs by the 50-occupant threshold; any
// other element type takes its first row. Returns nil when the element
// type or occupant band has no corresponding row.
//
// Known dataset quirk, preserved deliberately: for spiral stairs above
// 50 occupants the threshold is resolved by scanning for the "50"
// marker, which hits the "до 50" row before the "над 50" row and so
// returns 1.2 m where 1.5 m was apparently intended. Reports must stay
// comparable with ones produced against the same tables by existing
// tooling, so the scan order is pinned by tests. See DESIGN.md.
func (d *Dataset) LookupMinWidth(elementType string, occupants int, isUnderground bool) *MinWidthRule {
	switch elementType {
	case ElementCorridor, ElementStair:
		marker := aboveGroundMarker
		if isUnderground {
			marker = undergroundMarker
		}
		return d.firstWidthRow(elementType, marker)

	case ElementExitDoor:
		return d.firstWidthRow(elementType, exitDoorBand(occupants))

	case ElementSpiralStair:
		if occupants <= 50 {
			return d.firstWidthRow(elementType, spiralUpTo50)
		}
		return d.firstWidthRow(elementType, "50")

	default:
		for i := range d.MinWidths {
			if equalFold(d.MinWidths[i].ElementType, elementType) {
				return &d.MinWidths[i]
			}
		}
		return nil
	}
}

// exitDoorBand maps an occupant count to the band marker of the
// exit-door width rows.
func exitDoorBand(occupants int) string {
	switch {
	case occupants <= 15:
		return bandUpTo15
	case occupants <= 50:
		return band16To50
	case occupants <= 200:
		return band51To200
	default:
		return bandOver200
	}
}

// firstWidthRow returns the first row of the element type whose context
// contains the marker.
func (d *Dataset) firstWidthRow(elementType, marker string) *MinWidthRule {
	for i := range d.MinWidths {
		if equalFold(d.MinWidths[i].ElementType, elementType) &&
			containsFold(d.MinWidths[i].Context, marker) {
			return &d.MinWidths[i]
		}
	}
	return nil
}

// CalculateMinTotalWidth computes the minimum total exit width for a
// number of occupants on a floor type.
//
// Up to 200 occupants the single exit-door row applies, with a 0.9 m
// floor when the row carries no minimum. Above 200 the width scales
// linearly: (occupants/100) × widthPer100, where widthPer100 depends on
// the floor type (ground 0.6, above 0.8, underground 1.2).
func (d *Dataset) CalculateMinTotalWidth(occupants int, floorType string) float64 {
	if occupants <= 200 {
		r := d.LookupMinWidth(ElementExitDoor, occupants, floorType == FloorUnderground)
		if r != nil && r.MinWidth != nil {
			return *r.MinWidth
		}
		return 0.9
	}

	per100 := widthPer100Above
	switch floorType {
	case FloorGround:
		per100 = widthPer100Ground
	case FloorUnderground:
		per100 = widthPer100Underground
	}
	return math.Round(float64(occupants)/100*per100*100) / 100
}
