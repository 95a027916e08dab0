// Package suitability implements the criterion evaluation and aggregation
// engine: per-boundary-feature spatial joins, score normalization, and the
// weighted-sum / boolean-quorum combination algebras.
package suitability

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// Method is a closed enum of per-feature processing methods. String
// parsing happens once at the project boundary; the engine dispatches on
// the enum only.
type Method int

const (
	MethodUnknown Method = iota
	// MethodDirectValue reads a column from the boundary layer itself.
	MethodDirectValue
	// MethodCountFeatures counts dataset features intersecting the boundary.
	MethodCountFeatures
	// MethodSumValues sums a column over intersecting features.
	MethodSumValues
	// MethodAverageValues averages a column over intersecting features.
	MethodAverageValues
	// MethodMinimumValue takes the column minimum over intersecting features.
	MethodMinimumValue
	// MethodMaximumValue takes the column maximum over intersecting features.
	MethodMaximumValue
	// MethodAreaWithin sums intersection areas inside the boundary.
	MethodAreaWithin
	// MethodLengthWithin sums intersection lengths inside the boundary.
	MethodLengthWithin
	// MethodDistanceToNearest measures centroid distance to the nearest
	// dataset feature, ignoring the intersects filter.
	MethodDistanceToNearest
	// MethodPercentCoverage is intersection area over boundary area, x100.
	MethodPercentCoverage
)

var methodNames = map[Method]string{
	MethodDirectValue:       "Direct Value",
	MethodCountFeatures:     "Count Features",
	MethodSumValues:         "Sum Values",
	MethodAverageValues:     "Average Values",
	MethodMinimumValue:      "Minimum Value",
	MethodMaximumValue:      "Maximum Value",
	MethodAreaWithin:        "Area Within Boundary",
	MethodLengthWithin:      "Length Within Boundary",
	MethodDistanceToNearest: "Distance to Nearest",
	MethodPercentCoverage:   "Percent Coverage",
}

// String returns the display name of the method.
func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return "Unknown"
}

// ParseMethod maps a display name to a Method.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}
	return MethodUnknown, eris.Wrapf(ErrConfiguration, "unknown processing method %q", s)
}

// RequiresColumn reports whether the method needs a value column.
func (m Method) RequiresColumn() bool {
	switch m {
	case MethodDirectValue, MethodSumValues, MethodAverageValues,
		MethodMinimumValue, MethodMaximumValue:
		return true
	}
	return false
}

// RequiresProjected reports whether the method computes areas or lengths
// and therefore must run in a projected CRS, never geographic degrees.
func (m Method) RequiresProjected() bool {
	switch m {
	case MethodAreaWithin, MethodLengthWithin, MethodPercentCoverage:
		return true
	}
	return false
}

// Preference states whether high or low raw values score well.
type Preference int

const (
	// HigherIsBetter maps the maximum raw value to score 1.
	HigherIsBetter Preference = iota
	// LowerIsBetter maps the minimum raw value to score 1.
	LowerIsBetter
)

// String returns the display name of the preference.
func (p Preference) String() string {
	if p == LowerIsBetter {
		return "Lower is better"
	}
	return "Higher is better"
}

// ParsePreference maps a display name to a Preference.
func ParsePreference(s string) (Preference, error) {
	switch s {
	case "Higher is better", "higher", "":
		return HigherIsBetter, nil
	case "Lower is better", "lower":
		return LowerIsBetter, nil
	}
	return HigherIsBetter, eris.Wrapf(ErrConfiguration, "unknown preference %q", s)
}

// Criterion is one weighted analysis rule: a data source, a processing
// method, and a preference direction. DataSource binds late — the dataset
// may be registered after the criterion is built, and an unresolved name
// only fails at evaluation time.
type Criterion struct {
	ID         string
	Name       string
	DataSource string
	Method     Method
	Column     string
	Weight     float64
	Preference Preference
}

// NewCriterion builds a criterion with a fresh unique ID.
func NewCriterion(name, dataSource string, method Method) Criterion {
	return Criterion{
		ID:         uuid.NewString(),
		Name:       name,
		DataSource: dataSource,
		Method:     method,
		Weight:     0.5,
	}
}

// AnalysisType selects the aggregation algebra.
type AnalysisType int

const (
	// WeightedSum combines normalized scores by normalized weights.
	WeightedSum AnalysisType = iota
	// Boolean thresholds each criterion and applies a quorum rule.
	Boolean
)

// ParseAnalysisType maps a config string to an AnalysisType.
func ParseAnalysisType(s string) (AnalysisType, error) {
	switch s {
	case "weighted_sum", "":
		return WeightedSum, nil
	case "boolean":
		return Boolean, nil
	}
	return WeightedSum, eris.Wrapf(ErrConfiguration, "unknown analysis type %q", s)
}

// String returns the config name of the analysis type.
func (t AnalysisType) String() string {
	if t == Boolean {
		return "boolean"
	}
	return "weighted_sum"
}

// BooleanMode is the quorum rule deciding final eligibility.
type BooleanMode int

const (
	// BooleanAll requires every criterion to be met.
	BooleanAll BooleanMode = iota
	// BooleanAny requires at least one criterion to be met.
	BooleanAny
	// BooleanMajority requires strictly more than half.
	BooleanMajority
	// BooleanPercentage requires met_count >= max(1, round(n*threshold)).
	BooleanPercentage
)

// ParseBooleanMode maps a config string to a BooleanMode.
func ParseBooleanMode(s string) (BooleanMode, error) {
	switch s {
	case "all", "":
		return BooleanAll, nil
	case "any":
		return BooleanAny, nil
	case "majority":
		return BooleanMajority, nil
	case "percentage":
		return BooleanPercentage, nil
	}
	return BooleanAll, eris.Wrapf(ErrConfiguration, "unknown boolean mode %q", s)
}

// String returns the config name of the boolean mode.
func (m BooleanMode) String() string {
	switch m {
	case BooleanAny:
		return "any"
	case BooleanMajority:
		return "majority"
	case BooleanPercentage:
		return "percentage"
	}
	return "all"
}

// AnalysisConfig selects and parameterizes the aggregation algebra.
type AnalysisConfig struct {
	Type        AnalysisType
	BooleanMode BooleanMode
	// Threshold is the per-criterion pass mark in boolean mode and the
	// quorum fraction in percentage mode. Must lie in [0,1].
	Threshold float64
}

// DefaultAnalysisConfig returns a weighted-sum config with the boolean
// parameters the engine uses when the type is switched to Boolean.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{Type: WeightedSum, BooleanMode: BooleanAll, Threshold: 0.5}
}
