package geometry

import (
	"testing"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landgrid/suitability-cli/internal/dataset"
)

func xy(x, y float64) geom.XY {
	return geom.XY{X: x, Y: y}
}

func TestTransformer_WGS84ToWebMercator(t *testing.T) {
	tr, err := Transformer(dataset.SRIDWGS84, dataset.SRIDWebMercator)
	require.NoError(t, err)

	origin := tr(xy(0, 0))
	assert.InDelta(t, 0.0, origin.X, 1e-6)
	assert.InDelta(t, 0.0, origin.Y, 1e-6)

	// 45°E on the equator sits a quarter of the way around the northern
	// hemisphere's circumference.
	p := tr(xy(45, 0))
	assert.InDelta(t, 5009377.086, p.X, 1.0)
	assert.InDelta(t, 0.0, p.Y, 1e-6)
}

func TestTransformer_SameSRIDIsIdentity(t *testing.T) {
	tr, err := Transformer(dataset.SRIDWebMercator, dataset.SRIDWebMercator)
	require.NoError(t, err)

	p := tr(xy(123.45, -67.89))
	assert.Equal(t, 123.45, p.X)
	assert.Equal(t, -67.89, p.Y)
}

func TestTransformer_UnknownEPSG(t *testing.T) {
	_, err := Transformer(999999, dataset.SRIDWebMercator)
	assert.Error(t, err)

	_, err = Transformer(dataset.SRIDWGS84, 999999)
	assert.Error(t, err)
}

func TestTransformer_RoundTrip(t *testing.T) {
	fwd, err := Transformer(dataset.SRIDWGS84, dataset.SRIDWebMercator)
	require.NoError(t, err)
	back, err := Transformer(dataset.SRIDWebMercator, dataset.SRIDWGS84)
	require.NoError(t, err)

	orig := xy(-122.4194, 37.7749)
	got := back(fwd(orig))
	assert.InDelta(t, orig.X, got.X, 1e-6)
	assert.InDelta(t, orig.Y, got.Y, 1e-6)
}

func TestReprojectGeometry(t *testing.T) {
	g, err := ReprojectGeometry(wkt(t, "POINT(45 0)"), dataset.SRIDWGS84, dataset.SRIDWebMercator)
	require.NoError(t, err)

	p, ok := g.MustAsPoint().XY()
	require.True(t, ok)
	assert.InDelta(t, 5009377.086, p.X, 1.0)
	assert.InDelta(t, 0.0, p.Y, 1e-6)

	same, err := ReprojectGeometry(wkt(t, "POINT(45 0)"), dataset.SRIDWGS84, dataset.SRIDWGS84)
	require.NoError(t, err)
	sp, ok := same.MustAsPoint().XY()
	require.True(t, ok)
	assert.Equal(t, 45.0, sp.X)

	_, err = ReprojectGeometry(wkt(t, "POINT(0 0)"), 999999, dataset.SRIDWebMercator)
	assert.Error(t, err)
}

func TestReproject_Dataset(t *testing.T) {
	d := dataset.New("sites", dataset.SRIDWGS84)
	d.Append(wkt(t, "POINT(0 0)"), map[string]any{"name": "origin"})
	d.Append(wkt(t, "POINT(45 0)"), map[string]any{"name": "east"})

	out, err := Reproject(d, dataset.SRIDWebMercator)
	require.NoError(t, err)
	require.NotSame(t, d, out)
	assert.Equal(t, dataset.SRIDWebMercator, out.SRID)
	assert.Equal(t, d.Len(), out.Len())

	p, ok := out.Features[1].Geom.MustAsPoint().XY()
	require.True(t, ok)
	assert.InDelta(t, 5009377.086, p.X, 1.0)

	// The source dataset is untouched.
	assert.Equal(t, dataset.SRIDWGS84, d.SRID)
	src, ok := d.Features[1].Geom.MustAsPoint().XY()
	require.True(t, ok)
	assert.Equal(t, 45.0, src.X)

	// Attributes carry over.
	assert.Equal(t, "east", out.Features[1].Attrs["name"])
}

func TestReproject_SameSRIDReturnsInput(t *testing.T) {
	d := dataset.New("sites", dataset.SRIDWebMercator)
	d.Append(wkt(t, "POINT(1 2)"), nil)

	out, err := Reproject(d, dataset.SRIDWebMercator)
	require.NoError(t, err)
	assert.Same(t, d, out)
}
