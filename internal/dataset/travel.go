package dataset

// TravelConditions carries the building-level circumstances consulted
// by the special travel-distance rows.
type TravelConditions struct {
	SingleStorey bool
	Sprinklers   bool
	FireAlarm    bool
}

// Marker identifying the single-storey special rows. Row text uses
// forms like "едноетажна производствена сграда".
const singleStoreyMarker = "едноетажн"

// Marker identifying the installed-protection special rows (automatic
// suppression plus detection).
const protectionMarker = "пожарогасителна"

// Dead-end hazard categories that get their own limit row; everything
// else resolves to the general Ф1–Ф4 row.
const generalDeadEndMarker = "Ф1"

// LookupMaxTravelDistance resolves the maximum allowed egress travel
// distance for a route.
//
// Special-case rows are consulted first, in this order:
//  1. single-storey buildings with a hazard-category row carrying the
//     single-storey marker;
//  2. hazard-category rows conditioned on installed automatic
//     suppression and detection, when the building has both.
//
// When no special row applies, the default row is selected by
// evacuation type and context phrase (ContextInRoom or ContextToStair).
// Returns nil when not even a default row matches.
func (d *Dataset) LookupMaxTravelDistance(evacuationType, context, fireHazardCategory string, cond TravelConditions) *TravelDistanceRule {
	rows := d.TravelDistances

	if cond.SingleStorey && fireHazardCategory != "" {
		for i := range rows {
			if containsFold(rows[i].Conditions, singleStoreyMarker) &&
				equalFold(rows[i].FireHazardCategory, fireHazardCategory) {
				return &rows[i]
			}
		}
	}

	if cond.Sprinklers && cond.FireAlarm && fireHazardCategory != "" {
		for i := range rows {
			if containsFold(rows[i].Conditions, protectionMarker) &&
				equalFold(rows[i].FireHazardCategory, fireHazardCategory) {
				return &rows[i]
			}
		}
	}

	for i := range rows {
		if rows[i].Conditions != "" {
			continue
		}
		if equalFold(rows[i].EvacuationType, evacuationType) &&
			containsFold(rows[i].Context, context) {
			return &rows[i]
		}
	}

	return nil
}

// LookupDeadEndLimit resolves the maximum dead-end corridor length.
// Hazard categories with a dedicated row (Ф5Г, Ф5Д) match by category
// marker in the row context; all other classes use the general Ф1–Ф4
// row. Returns nil when the table has neither.
func (d *Dataset) LookupDeadEndLimit(fireHazardCategory string) *DeadEndLimit {
	rows := d.DeadEndLimits

	if fireHazardCategory != "" {
		for i := range rows {
			if containsFold(rows[i].Context, fireHazardCategory) {
				return &rows[i]
			}
		}
	}

	for i := range rows {
		if containsFold(rows[i].Context, generalDeadEndMarker) {
			return &rows[i]
		}
	}

	return nil
}
