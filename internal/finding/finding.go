// Package finding defines the result model of an egress evaluation:
// individual rule findings, the aggregated report, and the closed
// status/severity/scope enumerations they use.
package finding

import "time"

// Status is the outcome of one rule application.
type Status string

const (
	StatusPass   Status = "PASS"
	StatusFail   Status = "FAIL"
	StatusReview Status = "REVIEW"
)

// ValidStatuses defines the allowed statuses.
var ValidStatuses = map[Status]bool{
	StatusPass:   true,
	StatusFail:   true,
	StatusReview: true,
}

// statusRank orders statuses for report sorting: failures first,
// items needing review second, confirmations last.
var statusRank = map[Status]int{
	StatusFail:   0,
	StatusReview: 1,
	StatusPass:   2,
}

// Rank returns the sort rank of the status (FAIL < REVIEW < PASS).
// Unknown statuses sort last.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return len(statusRank)
}

// Severity grades how binding a finding is. BLOCKER marks a
// non-negotiable compliance failure.
type Severity string

const (
	SeverityBlocker Severity = "BLOCKER"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// ValidSeverities defines the allowed severities.
var ValidSeverities = map[Severity]bool{
	SeverityBlocker: true,
	SeverityWarning: true,
	SeverityInfo:    true,
}

var severityRank = map[Severity]int{
	SeverityBlocker: 0,
	SeverityWarning: 1,
	SeverityInfo:    2,
}

// Rank returns the sort rank of the severity (BLOCKER < WARNING < INFO).
// Unknown severities sort last.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// Scope names the kind of entity a finding is about.
type Scope string

const (
	ScopeBuilding Scope = "building"
	ScopeStorey   Scope = "storey"
	ScopeSpace    Scope = "space"
	ScopeRoute    Scope = "route"
	ScopeExit     Scope = "exit"
	ScopeStair    Scope = "stair"
)

// ValidScopes defines the allowed scopes.
var ValidScopes = map[Scope]bool{
	ScopeBuilding: true,
	ScopeStorey:   true,
	ScopeSpace:    true,
	ScopeRoute:    true,
	ScopeExit:     true,
	ScopeStair:    true,
}

// Finding is one evaluated rule outcome for one subject entity.
//
// Measured and Required are nil when the rule has no numeric dimension
// or when the dataset had no matching requirement row (a lookup miss is
// reported as REVIEW, never as an error). Findings are value objects:
// created fresh per evaluation and never mutated after return.
type Finding struct {
	RuleID         string         `json:"rule_id"`
	Status         Status         `json:"status"`
	Severity       Severity       `json:"severity"`
	Scope          Scope          `json:"scope"`
	SubjectID      string         `json:"subject_id"`
	SubjectName    string         `json:"subject_name,omitempty"`
	Measured       *float64       `json:"measured"`
	Required       *float64       `json:"required"`
	Explanation    string         `json:"explanation"`
	LegalReference string         `json:"legal_reference"`
	Details        map[string]any `json:"details,omitempty"`
}

// Summary holds the aggregate counts of a report.
//
// Invariant: Passed+Failed+Review == TotalRules == len(findings).
// Blockers counts findings with severity BLOCKER and status FAIL.
type Summary struct {
	TotalRules int `json:"total_rules"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Review     int `json:"review"`
	Blockers   int `json:"blockers"`
}

// EvaluationResult is the complete report of one evaluation run.
// EvaluatedAt is the only non-deterministic field: identical inputs
// produce byte-identical Findings and Summary.
type EvaluationResult struct {
	ProjectID      string    `json:"project_id"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
	DatasetVersion string    `json:"dataset_version"`
	Summary        Summary   `json:"summary"`
	Findings       []Finding `json:"findings"`
}

// Num is a convenience for the nullable Measured/Required fields.
func Num(v float64) *float64 { return &v }
