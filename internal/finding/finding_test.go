package finding

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRank(t *testing.T) {
	assert.Less(t, StatusFail.Rank(), StatusReview.Rank())
	assert.Less(t, StatusReview.Rank(), StatusPass.Rank())
	assert.Greater(t, Status("BOGUS").Rank(), StatusPass.Rank(), "unknown statuses sort last")
}

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityBlocker.Rank(), SeverityWarning.Rank())
	assert.Less(t, SeverityWarning.Rank(), SeverityInfo.Rank())
	assert.Greater(t, Severity("BOGUS").Rank(), SeverityInfo.Rank())
}

func sampleResult() *EvaluationResult {
	return &EvaluationResult{
		ProjectID:      "p1",
		EvaluatedAt:    time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
		DatasetVersion: "v1",
		Summary:        Summary{TotalRules: 1, Passed: 1},
		Findings: []Finding{{
			RuleID:         "EGR-OCC-001",
			Status:         StatusPass,
			Severity:       SeverityInfo,
			Scope:          ScopeSpace,
			SubjectID:      "s1",
			SubjectName:    "Зала",
			Measured:       Num(50),
			Explanation:    "Изчислен брой обитатели: 50 души.",
			LegalReference: "чл. 36 от Наредба № Iз-1971",
		}},
	}
}

func TestMarshalStable_ZeroesTimestamp(t *testing.T) {
	raw, err := MarshalStable(sampleResult())
	require.NoError(t, err)

	var decoded EvaluationResult
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.EvaluatedAt.IsZero())
	assert.Equal(t, "p1", decoded.ProjectID)
}

func TestMarshalStable_DoesNotMutateInput(t *testing.T) {
	res := sampleResult()
	stamp := res.EvaluatedAt

	_, err := MarshalStable(res)
	require.NoError(t, err)
	assert.Equal(t, stamp, res.EvaluatedAt)
}

func TestMarshalStable_NoHTMLEscaping(t *testing.T) {
	res := sampleResult()
	res.Findings[0].Explanation = "широчина < 0.9 м"

	raw, err := MarshalStable(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "широчина < 0.9 м")
	assert.NotContains(t, string(raw), `\u003c`, "no unicode escaping of angle brackets")
}

func TestMarshalStable_NormalizesUnicode(t *testing.T) {
	res := sampleResult()
	// "й" written as base letter + combining breve (NFD).
	res.Findings[0].SubjectName = "стълбище нй"

	raw, err := MarshalStable(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ний", "decomposed input comes out composed")
}

func TestMarshalStable_TrailingNewline(t *testing.T) {
	raw, err := MarshalStable(sampleResult())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), "}\n"))
}

func TestMarshalStable_StableAcrossCalls(t *testing.T) {
	a, err := MarshalStable(sampleResult())
	require.NoError(t, err)
	b, err := MarshalStable(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
