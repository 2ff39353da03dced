// Package evaluator orchestrates the rule modules: it runs them in a
// fixed order, sorts and summarizes their findings, and exposes the
// structural pre-check for evaluation contexts.
//
// Determinism contract: for identical (project, dataset) input two
// Evaluate calls produce byte-identical findings and summary; the
// timestamp is the only non-deterministic field. There is no shared
// state, so concurrent Evaluate calls need no locking.
package evaluator

import (
	"slices"
	"strings"
	"time"

	"github.com/stroynorm/egress/internal/finding"
	"github.com/stroynorm/egress/internal/rules"
)

// Option configures an evaluation run.
type Option func(*config)

type config struct {
	now func() time.Time
}

// WithNow injects the clock used to stamp the report. Tests use a
// fixed clock for reproducible output.
func WithNow(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// Evaluate runs all rule modules over the context and returns the
// aggregated, sorted report.
//
// Module order is fixed (occupant load, exits, travel distance,
// stairs) and findings are sorted by severity (BLOCKER < WARNING <
// INFO), then status (FAIL < REVIEW < PASS), then rule id, with a
// stable sort preserving emission order within equal keys.
//
// Evaluate performs no structural checks; run ValidateContext first on
// untrusted input.
func Evaluate(ctx rules.Context, opts ...Option) *finding.EvaluationResult {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	var findings []finding.Finding
	for _, mod := range rules.Modules() {
		findings = append(findings, mod(ctx)...)
	}

	slices.SortStableFunc(findings, compareFindings)

	return &finding.EvaluationResult{
		ProjectID:      ctx.Project.ID,
		EvaluatedAt:    cfg.now().UTC(),
		DatasetVersion: ctx.Dataset.Meta.Version,
		Summary:        summarize(findings),
		Findings:       findings,
	}
}

// compareFindings is the report ordering: severity rank, status rank,
// rule id.
func compareFindings(a, b finding.Finding) int {
	if d := a.Severity.Rank() - b.Severity.Rank(); d != 0 {
		return d
	}
	if d := a.Status.Rank() - b.Status.Rank(); d != 0 {
		return d
	}
	return strings.Compare(a.RuleID, b.RuleID)
}

// summarize computes the aggregate counts.
// Passed+Failed+Review always equals TotalRules.
func summarize(findings []finding.Finding) finding.Summary {
	s := finding.Summary{TotalRules: len(findings)}
	for _, f := range findings {
		switch f.Status {
		case finding.StatusPass:
			s.Passed++
		case finding.StatusFail:
			s.Failed++
		case finding.StatusReview:
			s.Review++
		}
		if f.Severity == finding.SeverityBlocker && f.Status == finding.StatusFail {
			s.Blockers++
		}
	}
	return s
}

// HasBlockers reports whether an evaluation of the context yields any
// blocker failure. Derived from Evaluate; no independent logic.
func HasBlockers(ctx rules.Context) bool {
	return Evaluate(ctx).Summary.Blockers > 0
}

// FailedFindings evaluates the context and returns only the FAIL
// findings, in report order.
func FailedFindings(ctx rules.Context) []finding.Finding {
	var out []finding.Finding
	for _, f := range Evaluate(ctx).Findings {
		if f.Status == finding.StatusFail {
			out = append(out, f)
		}
	}
	return out
}
