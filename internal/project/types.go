// Package project defines the building-description input model for an
// egress evaluation: one Building plus its Spaces, Exits, Routes and
// Stairs. Values are constructed by a loader (or directly in tests) and
// passed by reference into the evaluation core, which never mutates them.
package project

// Project is the immutable input to one evaluation run.
type Project struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Building Building `json:"building" yaml:"building"`
	Spaces   []Space  `json:"spaces" yaml:"spaces"`
	Exits    []Exit   `json:"exits" yaml:"exits"`
	Routes   []Route  `json:"routes" yaml:"routes"`
	Stairs   []Stair  `json:"stairs" yaml:"stairs"`
}

// Building carries the building-level attributes that select regulatory
// rows: functional class (Ф1.1..Ф5.4), height category and the fire
// protection measures present.
type Building struct {
	FunctionalClass    string  `json:"functional_class" yaml:"functional_class"`
	HeightCategory     string  `json:"height_category,omitempty" yaml:"height_category,omitempty"`
	Height             float64 `json:"height,omitempty" yaml:"height,omitempty"`
	FireResistance     string  `json:"fire_resistance,omitempty" yaml:"fire_resistance,omitempty"`
	HasSprinklers      bool    `json:"has_sprinklers" yaml:"has_sprinklers"`
	HasSmokeControl    bool    `json:"has_smoke_control" yaml:"has_smoke_control"`
	HasFireAlarm       bool    `json:"has_fire_alarm" yaml:"has_fire_alarm"`
	IsSingleStorey     bool    `json:"is_single_storey" yaml:"is_single_storey"`
}

// Space is one room or functional area. Floor 0 is the ground floor;
// negative floors are below grade regardless of the Underground flag,
// which marks spaces the ordinance treats as underground.
type Space struct {
	ID                 string  `json:"id" yaml:"id"`
	Name               string  `json:"name,omitempty" yaml:"name,omitempty"`
	Floor              int     `json:"floor" yaml:"floor"`
	Area               float64 `json:"area" yaml:"area"`
	Underground        bool    `json:"underground" yaml:"underground"`
	SpaceType          string  `json:"space_type,omitempty" yaml:"space_type,omitempty"`
	FireHazardCategory string  `json:"fire_hazard_category,omitempty" yaml:"fire_hazard_category,omitempty"`
	// OccupantsOverride, when positive, replaces the computed occupant
	// load for this space verbatim.
	OccupantsOverride int `json:"occupants_override,omitempty" yaml:"occupants_override,omitempty"`
}

// ExitType classifies an evacuation exit.
type ExitType string

const (
	ExitDoor      ExitType = "door"
	ExitCorridor  ExitType = "corridor"
	ExitStairwell ExitType = "stairwell"
	ExitExternal  ExitType = "external"
)

// ValidExitTypes defines the allowed exit types.
var ValidExitTypes = map[ExitType]bool{
	ExitDoor:      true,
	ExitCorridor:  true,
	ExitStairwell: true,
	ExitExternal:  true,
}

// Exit is an evacuation exit serving one or more spaces.
type Exit struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type             ExitType `json:"type" yaml:"type"`
	Width            float64  `json:"width" yaml:"width"`
	ServesSpaces     []string `json:"serves_spaces" yaml:"serves_spaces"`
	ServesFloors     []int    `json:"serves_floors" yaml:"serves_floors"`
	HasPanicHardware bool     `json:"has_panic_hardware" yaml:"has_panic_hardware"`
}

// EvacuationType distinguishes routes with one escape direction from
// routes offering two or more.
type EvacuationType string

const (
	EvacuationSingle   EvacuationType = "single"
	EvacuationMultiple EvacuationType = "multiple"
)

// ValidEvacuationTypes defines the allowed evacuation types.
var ValidEvacuationTypes = map[EvacuationType]bool{
	EvacuationSingle:   true,
	EvacuationMultiple: true,
}

// Route is a scalar egress path from a space to an exit. Length is
// supplied by the designer, not derived from geometry.
type Route struct {
	ID             string         `json:"id" yaml:"id"`
	FromSpace      string         `json:"from_space" yaml:"from_space"`
	ToExit         string         `json:"to_exit" yaml:"to_exit"`
	Length         float64        `json:"length" yaml:"length"`
	EvacuationType EvacuationType `json:"evacuation_type" yaml:"evacuation_type"`
	HasDeadEnd     bool           `json:"has_dead_end" yaml:"has_dead_end"`
	DeadEndLength  float64        `json:"dead_end_length,omitempty" yaml:"dead_end_length,omitempty"`
}

// StairType classifies an evacuation stair.
type StairType string

const (
	StairEnclosed       StairType = "enclosed"
	StairOpen           StairType = "open"
	StairExternal       StairType = "external"
	StairSmokeProtected StairType = "smoke_protected"
	StairSpiral         StairType = "spiral"
)

// ValidStairTypes defines the allowed stair types.
var ValidStairTypes = map[StairType]bool{
	StairEnclosed:       true,
	StairOpen:           true,
	StairExternal:       true,
	StairSmokeProtected: true,
	StairSpiral:         true,
}

// Stair is an evacuation staircase. StepWidth/StepHeight are zero when
// not surveyed; the step-geometry rules skip unmeasured stairs.
type Stair struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name,omitempty" yaml:"name,omitempty"`
	Type           StairType `json:"type" yaml:"type"`
	Width          float64   `json:"width" yaml:"width"`
	ServesFloors   []int     `json:"serves_floors" yaml:"serves_floors"`
	StepWidth      float64   `json:"step_width,omitempty" yaml:"step_width,omitempty"`
	StepHeight     float64   `json:"step_height,omitempty" yaml:"step_height,omitempty"`
	IsNaturallyLit bool      `json:"is_naturally_lit" yaml:"is_naturally_lit"`
	HasSmokeVent   bool      `json:"has_smoke_vent" yaml:"has_smoke_vent"`
}

// SpaceByID returns the space with the given id, or nil.
func (p *Project) SpaceByID(id string) *Space {
	for i := range p.Spaces {
		if p.Spaces[i].ID == id {
			return &p.Spaces[i]
		}
	}
	return nil
}

// ExitByID returns the exit with the given id, or nil.
func (p *Project) ExitByID(id string) *Exit {
	for i := range p.Exits {
		if p.Exits[i].ID == id {
			return &p.Exits[i]
		}
	}
	return nil
}

// ExitsServing returns the exits whose serves_spaces list includes the
// given space id, in declaration order.
func (p *Project) ExitsServing(spaceID string) []Exit {
	var out []Exit
	for _, e := range p.Exits {
		for _, sid := range e.ServesSpaces {
			if sid == spaceID {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
