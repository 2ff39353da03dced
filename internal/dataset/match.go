package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// fold produces the canonical comparison form of table text: NFC
// normalized, then Unicode case-folded. Cyrillic class codes in input
// files arrive in mixed case and occasionally in decomposed form, so
// plain strings.EqualFold is not enough here.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// containsFold reports whether needle occurs in haystack under case
// folding. Empty needles never match.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(fold(haystack), fold(needle))
}

// equalFold reports case-folded equality.
func equalFold(a, b string) bool {
	return fold(a) == fold(b)
}
