package suitability

import (
	"math"
	"testing"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landgrid/suitability-cli/internal/dataset"
	"github.com/landgrid/suitability-cli/internal/geometry"
)

func wkt(t *testing.T, s string) geom.Geometry {
	t.Helper()
	g, err := geom.UnmarshalWKT(s)
	require.NoError(t, err)
	return g
}

// testBoundary returns two 10x10 squares: A at (0,0)-(10,10) and B at
// (20,20)-(30,30). Coordinates are treated as already projected.
func testBoundary(t *testing.T) *dataset.Dataset {
	t.Helper()
	b := dataset.New("parcels", dataset.SRIDWebMercator)
	b.Append(wkt(t, "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))"), map[string]any{"zone": "A", "base_score": 0.9})
	b.Append(wkt(t, "POLYGON((20 20, 30 20, 30 30, 20 30, 20 20))"), map[string]any{"zone": "B", "base_score": 0.3})
	return b
}

// testPoints returns three points: two inside square A, one inside B.
func testPoints(t *testing.T) *dataset.Dataset {
	t.Helper()
	d := dataset.New("points", dataset.SRIDWebMercator)
	d.Append(wkt(t, "POINT(1 1)"), map[string]any{"value": 4.0})
	d.Append(wkt(t, "POINT(2 2)"), map[string]any{"value": 6.0})
	d.Append(wkt(t, "POINT(21 21)"), map[string]any{"value": 9.0})
	return d
}

func TestEvaluate_CountFeatures(t *testing.T) {
	c := NewCriterion("nearby points", "points", MethodCountFeatures)

	values, err := Evaluate(c, testBoundary(t), testPoints(t), geometry.NewPlanar())
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1}, values)
}

func TestEvaluate_ColumnAggregates(t *testing.T) {
	tests := []struct {
		method Method
		want   []float64
	}{
		{MethodSumValues, []float64{10, 9}},
		{MethodAverageValues, []float64{5, 9}},
		{MethodMinimumValue, []float64{4, 9}},
		{MethodMaximumValue, []float64{6, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			c := NewCriterion("points stat", "points", tt.method)
			c.Column = "value"

			values, err := Evaluate(c, testBoundary(t), testPoints(t), geometry.NewPlanar())
			require.NoError(t, err)
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestEvaluate_DirectValueReadsBoundary(t *testing.T) {
	c := NewCriterion("existing score", "parcels", MethodDirectValue)
	c.Column = "base_score"

	values, err := Evaluate(c, testBoundary(t), testPoints(t), geometry.NewPlanar())
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9, 0.3}, values)
}

func TestEvaluate_MissingColumn(t *testing.T) {
	eng := geometry.NewPlanar()

	c := NewCriterion("no column set", "points", MethodSumValues)
	_, err := Evaluate(c, testBoundary(t), testPoints(t), eng)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrConfiguration))

	c.Column = "elevation"
	_, err = Evaluate(c, testBoundary(t), testPoints(t), eng)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrConfiguration))

	d := NewCriterion("direct", "parcels", MethodDirectValue)
	d.Column = "not_there"
	_, err = Evaluate(d, testBoundary(t), testPoints(t), eng)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrConfiguration))
}

func TestEvaluate_AreaWithinAndPercentCoverage(t *testing.T) {
	// One polygon covering the right half of square A and nothing of B.
	cover := dataset.New("wetlands", dataset.SRIDWebMercator)
	cover.Append(wkt(t, "POLYGON((5 0, 15 0, 15 10, 5 10, 5 0))"), nil)

	eng := geometry.NewPlanar()
	boundary := testBoundary(t)

	area := NewCriterion("wetland area", "wetlands", MethodAreaWithin)
	values, err := Evaluate(area, boundary, cover, eng)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, values[0], 1e-9)
	assert.Equal(t, 0.0, values[1])

	pct := NewCriterion("wetland coverage", "wetlands", MethodPercentCoverage)
	values, err = Evaluate(pct, boundary, cover, eng)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, values[0], 1e-9)
	assert.Equal(t, 0.0, values[1])
}

func TestEvaluate_LengthWithin(t *testing.T) {
	// A horizontal line crossing square A completely and missing B.
	roads := dataset.New("roads", dataset.SRIDWebMercator)
	roads.Append(wkt(t, "LINESTRING(-5 5, 15 5)"), nil)

	c := NewCriterion("road length", "roads", MethodLengthWithin)
	values, err := Evaluate(c, testBoundary(t), roads, geometry.NewPlanar())
	require.NoError(t, err)
	assert.InDelta(t, 10.0, values[0], 1e-9)
	assert.Equal(t, 0.0, values[1])
}

func TestEvaluate_DistanceToNearest(t *testing.T) {
	// Points only near square A; B still gets a finite distance.
	points := dataset.New("points", dataset.SRIDWebMercator)
	points.Append(wkt(t, "POINT(2 2)"), nil)

	c := NewCriterion("distance to point", "points", MethodDistanceToNearest)
	values, err := Evaluate(c, testBoundary(t), points, geometry.NewPlanar())
	require.NoError(t, err)

	// Centroid of A is (5,5); of B is (25,25).
	assert.InDelta(t, math.Sqrt(18), values[0], 1e-9)
	assert.InDelta(t, math.Sqrt(2*23*23), values[1], 1e-9)
}

func TestEvaluate_DistanceToNearestEmptyDataset(t *testing.T) {
	empty := dataset.New("points", dataset.SRIDWebMercator)

	c := NewCriterion("distance to nothing", "points", MethodDistanceToNearest)
	values, err := Evaluate(c, testBoundary(t), empty, geometry.NewPlanar())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, values)
}

func TestEvaluate_NoIntersectionDefaultsToZero(t *testing.T) {
	// All points far away from both squares.
	far := dataset.New("points", dataset.SRIDWebMercator)
	far.Append(wkt(t, "POINT(100 100)"), map[string]any{"value": 7.0})

	for _, m := range []Method{MethodCountFeatures, MethodSumValues, MethodMinimumValue, MethodMaximumValue} {
		c := NewCriterion("far points", "points", m)
		if m.RequiresColumn() {
			c.Column = "value"
		}
		values, err := Evaluate(c, testBoundary(t), far, geometry.NewPlanar())
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, values, "method %s", m)
	}
}
