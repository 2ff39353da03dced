// Package dataset holds the versioned regulatory tables of the egress
// ordinance and the lookup functions that resolve requirements from
// them. A Dataset is loaded once (embedded default, YAML file, or
// SQLite snapshot) and passed read-only into every evaluation; the
// package never caches or mutates one.
//
// Table rows key their applicability on free Bulgarian text (space-type
// descriptions, context phrases) rather than categorical columns, so
// every lookup matches by case-folded substring. The fallback
// precedence per lookup is part of the compliance contract and must not
// be reordered.
package dataset

// Meta identifies the ordinance revision the tables were taken from.
type Meta struct {
	OrdinanceID string `json:"ordinance_id" yaml:"ordinance_id"`
	Version     string `json:"version" yaml:"version"`
}

// OccupantLoadFactor maps a functional class (and optionally a
// space-type description) to an area-per-person norm in m².
type OccupantLoadFactor struct {
	FunctionalClass string  `json:"functional_class" yaml:"functional_class"`
	Description     string  `json:"description" yaml:"description"`
	AreaPerPerson   float64 `json:"area_per_person" yaml:"area_per_person"`
	LegalRef        string  `json:"legal_ref" yaml:"legal_ref"`
}

// MinExitRule gives the minimum number of evacuation exits for a class
// group within an occupant range and area ceiling. A nil MaxOccupants
// means the range is open-ended; a nil Underground applies to both
// underground and above-ground spaces.
type MinExitRule struct {
	ClassGroup         string   `json:"class_group" yaml:"class_group"`
	FireHazardCategory string   `json:"fire_hazard_category,omitempty" yaml:"fire_hazard_category,omitempty"`
	Underground        *bool    `json:"underground,omitempty" yaml:"underground,omitempty"`
	MinOccupants       int      `json:"min_occupants" yaml:"min_occupants"`
	MaxOccupants       *int     `json:"max_occupants,omitempty" yaml:"max_occupants,omitempty"`
	MaxArea            *float64 `json:"max_area,omitempty" yaml:"max_area,omitempty"`
	RequiredExits      int      `json:"required_exits" yaml:"required_exits"`
	LegalRef           string   `json:"legal_ref" yaml:"legal_ref"`
}

// TravelDistanceRule gives a maximum egress travel distance. Special
// rows carry a Conditions phrase (single-storey marker, installed
// protection systems) and are consulted before the default rows, which
// key on evacuation type and context text only.
type TravelDistanceRule struct {
	EvacuationType     string  `json:"evacuation_type,omitempty" yaml:"evacuation_type,omitempty"`
	Context            string  `json:"context,omitempty" yaml:"context,omitempty"`
	FireHazardCategory string  `json:"fire_hazard_category,omitempty" yaml:"fire_hazard_category,omitempty"`
	Conditions         string  `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	MaxDistance        float64 `json:"max_distance" yaml:"max_distance"`
	LegalRef           string  `json:"legal_ref" yaml:"legal_ref"`
}

// DeadEndLimit caps the length of a dead-end corridor segment. Context
// names the classes or hazard categories the row applies to.
type DeadEndLimit struct {
	Context   string  `json:"context" yaml:"context"`
	MaxLength float64 `json:"max_length" yaml:"max_length"`
	LegalRef  string  `json:"legal_ref" yaml:"legal_ref"`
}

// MinWidthRule gives the minimum (and occasionally maximum) clear width
// for an evacuation element. Context carries the occupant band or
// underground/above-ground qualifier as text.
type MinWidthRule struct {
	ElementType string   `json:"element_type" yaml:"element_type"`
	Context     string   `json:"context,omitempty" yaml:"context,omitempty"`
	MinWidth    *float64 `json:"min_width" yaml:"min_width"`
	MaxWidth    *float64 `json:"max_width,omitempty" yaml:"max_width,omitempty"`
	LegalRef    string   `json:"legal_ref" yaml:"legal_ref"`
}

// FunctionalClass names a regulatory building-use class.
type FunctionalClass struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// HeightCategoryBound maps a building-height interval [Min, Max) to a
// height category. Rows are ordered ascending; a nil Max is open.
type HeightCategoryBound struct {
	Category string   `json:"category" yaml:"category"`
	Min      float64  `json:"min" yaml:"min"`
	Max      *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Dataset is the immutable collection of regulatory tables plus
// ordinance metadata. All table fields must be present (possibly empty)
// on a loaded dataset.
type Dataset struct {
	Meta                Meta                  `json:"meta" yaml:"meta"`
	OccupantLoadFactors []OccupantLoadFactor  `json:"occupant_load_factors" yaml:"occupant_load_factors"`
	MinExitRules        []MinExitRule         `json:"min_exit_rules" yaml:"min_exit_rules"`
	TravelDistances     []TravelDistanceRule  `json:"travel_distances" yaml:"travel_distances"`
	DeadEndLimits       []DeadEndLimit        `json:"dead_end_limits" yaml:"dead_end_limits"`
	MinWidths           []MinWidthRule        `json:"min_widths" yaml:"min_widths"`
	FunctionalClasses   []FunctionalClass     `json:"functional_classes" yaml:"functional_classes"`
	HeightCategories    []HeightCategoryBound `json:"height_categories" yaml:"height_categories"`
}

// Element types used by the minimum-width table.
const (
	ElementCorridor    = "corridor"
	ElementExitDoor    = "exit_door"
	ElementStair       = "stair"
	ElementSpiralStair = "spiral_stair"
	ElementDoor        = "door"
	ElementPassage     = "passage"
)

// Evacuation types used by the travel-distance table. They mirror the
// project route types and are kept as plain strings so the dataset does
// not depend on the project model.
const (
	EvacuationSingle   = "single"
	EvacuationMultiple = "multiple"
)

// Travel-distance context phrases. Queries are matched as substrings of
// row context text, so these must stay contiguous fragments of the
// table phrasing.
const (
	ContextInRoom  = "в помещението"
	ContextToStair = "до стълбище"
)

// Floor types used by CalculateMinTotalWidth.
const (
	FloorGround      = "ground"
	FloorAbove       = "above"
	FloorUnderground = "underground"
)
