package suitability

// Normalize maps a raw value vector into [0,1] honoring the preference
// direction. The returned allZero flag marks the "no signal" case (every
// raw value exactly zero, typically meaning nothing intersected) so the
// orchestrator can surface a diagnostic instead of treating it as a tie.
//
// Degenerate constant vectors are preserved when the constant is already
// a meaningful proportion: percent-coverage constants in [0,100] are
// rescaled by /100, constants already in [0,1] pass through, and only
// truly ambiguous constants collapse to the preference-driven extreme.
func Normalize(values []float64, method Method, pref Preference) (scores []float64, allZero bool) {
	if len(values) == 0 {
		return nil, false
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	scores = make([]float64, len(values))

	switch {
	case max != min:
		span := max - min
		for i, v := range values {
			if pref == LowerIsBetter {
				// Reflect within the original range, then min-max scale.
				v = max - v + min
			}
			scores[i] = (v - min) / span
		}
		return scores, false

	case max == 0:
		// All zeros: no signal. Scores stay zero; caller emits a warning.
		return scores, true

	default:
		// Constant, non-zero.
		constant := max
		var fill float64
		switch {
		case method == MethodPercentCoverage && constant >= 0 && constant <= 100:
			fill = constant / 100
		case constant >= 0 && constant <= 1:
			fill = constant
		case pref == HigherIsBetter:
			fill = 1
		default:
			fill = 0
		}
		for i := range scores {
			scores[i] = fill
		}
		return scores, false
	}
}
