package suitability

import (
	"strconv"
	"strings"

	"github.com/landgrid/suitability-cli/internal/dataset"
)

// Result column names shared by both aggregation algebras.
const (
	ColSuitabilityScore = "suitability_score"
	ColCriteriaMetCount = "criteria_met_count"
	ColIsSuitable       = "is_suitable"
)

// AnalysisResult is the finished result table: the boundary layer's
// geometry and original attributes plus one score column per criterion
// and the final score/decision columns. Immutable once produced —
// re-running an analysis replaces it wholesale.
type AnalysisResult struct {
	// Boundary is a copy of the boundary dataset with the result columns
	// appended to each feature's attribute map.
	Boundary *dataset.Dataset

	// Type is the algebra that produced the result.
	Type AnalysisType

	// ScoreColumns holds the per-criterion score column names in
	// criteria order.
	ScoreColumns []string

	// SuitabilityScore is the final score per feature.
	SuitabilityScore []float64

	// CriteriaMetCount and IsSuitable are populated in Boolean mode only.
	CriteriaMetCount []int
	IsSuitable       []bool
}

// sanitizeColumn derives a result-column stem from a criterion name:
// lowercased, non-alphanumerics folded to underscores.
func sanitizeColumn(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		s = "criterion"
	}
	return s
}

// columnNamer hands out unique sanitized column names. Duplicate
// criterion names get a numeric suffix so result columns never collide.
type columnNamer struct {
	seen map[string]int
}

func newColumnNamer() *columnNamer {
	return &columnNamer{seen: map[string]int{}}
}

func (n *columnNamer) name(criterionName, suffix string) string {
	stem := sanitizeColumn(criterionName)
	key := stem + suffix
	n.seen[key]++
	if n.seen[key] > 1 {
		return stem + "_" + strconv.Itoa(n.seen[key]) + suffix
	}
	return key
}
