package dataset

// Markers splitting the retail class Ф3.1 into ground-floor and
// upper-floor factor variants. The upper marker must be checked first:
// "над първия етаж" also contains the ground marker.
const (
	retailClass       = "Ф3.1"
	groundFloorMarker = "първи"
	upperFloorMarker  = "над първия"
)

// occupantFallbackClass designates the general/office row used when no
// class-specific factor exists.
const occupantFallbackClass = "Ф4.3"

// LookupOccupantLoadFactor resolves the area-per-person factor for a
// space. isGroundFloor may be nil (unspecified), which defaults the
// retail split to the ground-floor variant.
//
// Resolution order:
//  1. spaceType substring match within the descriptions of rows for the
//     given class;
//  2. for Ф3.1, the ground/upper-floor variant selected by
//     isGroundFloor, falling back to the first Ф3.1 row when the
//     requested variant is absent;
//  3. first row with an exact class match;
//  4. the general/office fallback row (class Ф4.3).
//
// Returns nil when nothing matches; callers apply the 5.0 m²/person
// default and report the miss as a REVIEW finding.
func (d *Dataset) LookupOccupantLoadFactor(class, spaceType string, isGroundFloor *bool) *OccupantLoadFactor {
	rows := d.OccupantLoadFactors

	if spaceType != "" {
		for i := range rows {
			if equalFold(rows[i].FunctionalClass, class) && containsFold(rows[i].Description, spaceType) {
				return &rows[i]
			}
		}
	}

	if equalFold(class, retailClass) {
		if r := d.lookupRetailVariant(isGroundFloor); r != nil {
			return r
		}
	}

	for i := range rows {
		if equalFold(rows[i].FunctionalClass, class) {
			return &rows[i]
		}
	}

	for i := range rows {
		if equalFold(rows[i].FunctionalClass, occupantFallbackClass) {
			return &rows[i]
		}
	}

	return nil
}

// lookupRetailVariant selects the Ф3.1 ground/upper variant. The
// ground-floor variant is the default; a missing ground variant falls
// back to the first Ф3.1 row. A missing upper variant returns nil so
// the caller falls through to the exact-class step.
func (d *Dataset) lookupRetailVariant(isGroundFloor *bool) *OccupantLoadFactor {
	rows := d.OccupantLoadFactors
	wantGround := isGroundFloor == nil || *isGroundFloor

	var first *OccupantLoadFactor
	for i := range rows {
		if !equalFold(rows[i].FunctionalClass, retailClass) {
			continue
		}
		if first == nil {
			first = &rows[i]
		}
		upper := containsFold(rows[i].Description, upperFloorMarker)
		if wantGround && !upper && containsFold(rows[i].Description, groundFloorMarker) {
			return &rows[i]
		}
		if !wantGround && upper {
			return &rows[i]
		}
	}

	if wantGround {
		return first
	}
	return nil
}
