package finding

import (
	"bytes"
	"encoding/json"
	"time"

	"golang.org/x/text/unicode/norm"
)

// MarshalStable serializes a report for byte-level comparison.
//
// The timestamp is zeroed (it is the report's only non-deterministic
// field), string fields are NFC normalized, and HTML escaping is
// disabled so Cyrillic explanations and legal citations stay readable
// in golden files. Everything else is plain json struct encoding,
// which already has a fixed field order.
func MarshalStable(res *EvaluationResult) ([]byte, error) {
	clone := *res
	clone.EvaluatedAt = time.Time{}
	clone.DatasetVersion = norm.NFC.String(clone.DatasetVersion)
	clone.ProjectID = norm.NFC.String(clone.ProjectID)

	if res.Findings != nil {
		clone.Findings = make([]Finding, len(res.Findings))
		for i, f := range res.Findings {
			f.SubjectName = norm.NFC.String(f.SubjectName)
			f.Explanation = norm.NFC.String(f.Explanation)
			f.LegalReference = norm.NFC.String(f.LegalReference)
			clone.Findings[i] = f
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&clone); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
