package suitability

import (
	"math"

	"github.com/rotisserie/eris"
)

// CriterionResult pairs a criterion with its normalized score vector,
// aligned 1:1 with boundary feature order. Produced per criterion during
// a run and consumed by the aggregator.
type CriterionResult struct {
	Criterion Criterion
	Scores    []float64
}

// CombineWeightedSum merges per-criterion normalized scores into one
// suitability score per feature. Weights are normalized to sum to 1; if
// every weight is zero the criteria contribute equally instead of
// dividing by zero. With normalized inputs the result lies in [0,1].
func CombineWeightedSum(results []CriterionResult, featureCount int) ([]float64, error) {
	if len(results) == 0 {
		return nil, eris.Wrap(ErrValidation, "weighted sum requires at least one criterion")
	}

	var totalWeight float64
	for _, r := range results {
		totalWeight += r.Criterion.Weight
	}

	scores := make([]float64, featureCount)
	for _, r := range results {
		share := 1 / float64(len(results))
		if totalWeight > 0 {
			share = r.Criterion.Weight / totalWeight
		}
		for i, s := range r.Scores {
			scores[i] += s * share
		}
	}
	return scores, nil
}

// BooleanOutcome is the result of boolean-quorum aggregation.
type BooleanOutcome struct {
	// Met[c][i] reports whether feature i met criterion c.
	Met [][]bool
	// MetCount[i] is the number of criteria feature i met.
	MetCount []int
	// Suitable[i] is the final eligibility decision per the quorum rule.
	Suitable []bool
	// Scores[i] = MetCount[i] / criteria count, a continuous proxy
	// alongside the discrete decision.
	Scores []float64
}

// CombineBoolean thresholds each criterion's normalized scores and applies
// the configured quorum rule.
func CombineBoolean(results []CriterionResult, cfg AnalysisConfig, featureCount int) (*BooleanOutcome, error) {
	if len(results) == 0 {
		return nil, eris.Wrap(ErrValidation, "boolean aggregation requires at least one criterion")
	}

	n := len(results)
	out := &BooleanOutcome{
		Met:      make([][]bool, n),
		MetCount: make([]int, featureCount),
		Suitable: make([]bool, featureCount),
		Scores:   make([]float64, featureCount),
	}

	for c, r := range results {
		met := make([]bool, featureCount)
		for i, s := range r.Scores {
			if s >= cfg.Threshold {
				met[i] = true
				out.MetCount[i]++
			}
		}
		out.Met[c] = met
	}

	quorum := quorumFor(cfg, n)
	for i, count := range out.MetCount {
		out.Suitable[i] = quorum(count)
		out.Scores[i] = float64(count) / float64(n)
	}
	return out, nil
}

// quorumFor returns the met-count predicate for the configured mode.
func quorumFor(cfg AnalysisConfig, total int) func(int) bool {
	switch cfg.BooleanMode {
	case BooleanAny:
		return func(met int) bool { return met > 0 }
	case BooleanMajority:
		// Strict: ties at exactly half do not pass.
		return func(met int) bool { return float64(met) > float64(total)/2 }
	case BooleanPercentage:
		need := int(math.Round(float64(total) * cfg.Threshold))
		if need < 1 {
			need = 1
		}
		return func(met int) bool { return met >= need }
	default: // BooleanAll
		return func(met int) bool { return met == total }
	}
}
