package suitability

import (
	"math"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"

	"github.com/landgrid/suitability-cli/internal/dataset"
)

// Engine is the geometry-provider contract the evaluator computes
// against. All operations are planar; operands must already share a CRS,
// and area/length calls must receive projected coordinates.
type Engine interface {
	Intersects(a, b geom.Geometry) bool
	Intersection(a, b geom.Geometry) (geom.Geometry, error)
	Area(g geom.Geometry) float64
	Length(g geom.Geometry) float64
	Distance(a, b geom.Geometry) (float64, error)
	Centroid(g geom.Geometry) geom.Geometry
	Simplify(g geom.Geometry, tolerance float64) (geom.Geometry, error)
}

// Reprojector transforms a dataset into a target CRS. The orchestrator
// uses it to align criterion datasets with the boundary layer and to
// move area/length computations into Web Mercator.
type Reprojector interface {
	Reproject(d *dataset.Dataset, toSRID int) (*dataset.Dataset, error)
}

// Evaluate computes one raw value per boundary feature for a criterion.
// The boundary and the criterion dataset must already be in the same CRS
// (projected, for area/length methods). Output order matches boundary
// feature order. No-intersection cases yield 0 for every method except
// Distance to Nearest, which measures against the whole dataset.
func Evaluate(c Criterion, boundary, ds *dataset.Dataset, eng Engine) ([]float64, error) {
	if c.Method.RequiresColumn() && c.Column == "" {
		return nil, eris.Wrapf(ErrConfiguration, "criterion %q: method %s requires a column", c.Name, c.Method)
	}

	// Direct Value reads the boundary's own attribute table; every other
	// column-based method reads the criterion dataset.
	if c.Method == MethodDirectValue {
		if !boundary.HasColumn(c.Column) {
			return nil, eris.Wrapf(ErrConfiguration, "criterion %q: column %q not in boundary layer", c.Name, c.Column)
		}
		values := make([]float64, boundary.Len())
		for i, f := range boundary.Features {
			v, _ := dataset.NumericAttr(f, c.Column)
			values[i] = v
		}
		return values, nil
	}

	if c.Method.RequiresColumn() && !ds.HasColumn(c.Column) {
		return nil, eris.Wrapf(ErrConfiguration, "criterion %q: column %q not in dataset %q", c.Name, c.Column, ds.Name)
	}

	values := make([]float64, boundary.Len())
	for i, bf := range boundary.Features {
		v, err := evaluateFeature(c, bf, ds, eng)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// evaluateFeature computes the raw value for one boundary feature.
func evaluateFeature(c Criterion, bf dataset.Feature, ds *dataset.Dataset, eng Engine) (float64, error) {
	// Distance to Nearest ignores the intersects filter entirely.
	if c.Method == MethodDistanceToNearest {
		return distanceToNearest(bf, ds, eng)
	}

	intersecting := make([]dataset.Feature, 0)
	for _, f := range ds.Features {
		if eng.Intersects(f.Geom, bf.Geom) {
			intersecting = append(intersecting, f)
		}
	}
	if len(intersecting) == 0 {
		// Minimum/Maximum default to 0 here as well; the normalizer
		// treats an all-zero vector as "no signal".
		return 0, nil
	}

	switch c.Method {
	case MethodCountFeatures:
		return float64(len(intersecting)), nil

	case MethodSumValues:
		var sum float64
		for _, f := range intersecting {
			v, _ := dataset.NumericAttr(f, c.Column)
			sum += v
		}
		return sum, nil

	case MethodAverageValues:
		var sum float64
		for _, f := range intersecting {
			v, _ := dataset.NumericAttr(f, c.Column)
			sum += v
		}
		return sum / float64(len(intersecting)), nil

	case MethodMinimumValue:
		min := math.Inf(1)
		for _, f := range intersecting {
			if v, ok := dataset.NumericAttr(f, c.Column); ok && v < min {
				min = v
			}
		}
		if math.IsInf(min, 1) {
			return 0, nil
		}
		return min, nil

	case MethodMaximumValue:
		max := math.Inf(-1)
		for _, f := range intersecting {
			if v, ok := dataset.NumericAttr(f, c.Column); ok && v > max {
				max = v
			}
		}
		if math.IsInf(max, -1) {
			return 0, nil
		}
		return max, nil

	case MethodAreaWithin:
		return intersectionSum(bf, intersecting, eng, eng.Area)

	case MethodLengthWithin:
		return intersectionSum(bf, intersecting, eng, eng.Length)

	case MethodPercentCoverage:
		boundaryArea := eng.Area(bf.Geom)
		if boundaryArea <= 0 {
			return 0, nil
		}
		covered, err := intersectionSum(bf, intersecting, eng, eng.Area)
		if err != nil {
			return 0, err
		}
		return covered / boundaryArea * 100, nil
	}

	return 0, eris.Wrapf(ErrConfiguration, "criterion %q: unsupported method %s", c.Name, c.Method)
}

// intersectionSum computes the geometric intersection of each
// intersecting feature with the boundary and sums a measure over them.
func intersectionSum(bf dataset.Feature, intersecting []dataset.Feature, eng Engine, measure func(geom.Geometry) float64) (float64, error) {
	var total float64
	for _, f := range intersecting {
		clipped, err := eng.Intersection(f.Geom, bf.Geom)
		if err != nil {
			return 0, eris.Wrapf(ErrGeometry, "intersection with feature %d: %v", f.Index, err)
		}
		total += measure(clipped)
	}
	return total, nil
}

// distanceToNearest measures from the boundary feature's centroid to the
// nearest dataset feature. Defined whenever the dataset is non-empty,
// even if nothing intersects; an empty dataset yields 0.
func distanceToNearest(bf dataset.Feature, ds *dataset.Dataset, eng Engine) (float64, error) {
	if ds.Len() == 0 {
		return 0, nil
	}
	centroid := eng.Centroid(bf.Geom)
	nearest := math.Inf(1)
	for _, f := range ds.Features {
		d, err := eng.Distance(centroid, f.Geom)
		if err != nil {
			return 0, eris.Wrapf(ErrGeometry, "distance to feature %d: %v", f.Index, err)
		}
		if d < nearest {
			nearest = d
		}
	}
	return nearest, nil
}
