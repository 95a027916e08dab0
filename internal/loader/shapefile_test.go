package loader

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	sfgeom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePointShapefile authors a two-point shapefile with a string and a
// numeric attribute field.
func writePointShapefile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sites.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	w.SetFields([]shp.Field{
		shp.StringField("NAME", 25),
		shp.FloatField("VALUE", 13, 6),
	})

	points := []shp.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	names := []string{"north", "south"}
	values := []float64{3.5, 7.25}
	for i := range points {
		w.Write(&points[i])
		w.WriteAttribute(i, 0, names[i])
		w.WriteAttribute(i, 1, values[i])
	}
	w.Close()
	return path
}

func TestLoadShapefile_Points(t *testing.T) {
	path := writePointShapefile(t, t.TempDir())

	d, err := LoadShapefile(path, "", 4326)
	require.NoError(t, err)

	assert.Equal(t, "sites", d.Name)
	assert.Equal(t, 4326, d.SRID)
	require.Equal(t, 2, d.Len())

	p, ok := d.Features[0].Geom.MustAsPoint().XY()
	require.True(t, ok)
	assert.Equal(t, 1.0, p.X)
	assert.Equal(t, 2.0, p.Y)

	// String fields stay strings; numeric DBF fields coerce to float64.
	assert.Equal(t, "north", d.Features[0].Attrs["NAME"])
	assert.Equal(t, 3.5, d.Features[0].Attrs["VALUE"])
	assert.Equal(t, 7.25, d.Features[1].Attrs["VALUE"])
	assert.True(t, d.HasColumn("NAME"))
	assert.True(t, d.HasColumn("VALUE"))
}

func TestLoadShapefile_Zip(t *testing.T) {
	dir := t.TempDir()
	writePointShapefile(t, dir)

	zipPath := filepath.Join(dir, "sites.zip")
	zf, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(zf)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".zip" {
			continue
		}
		src, err := os.Open(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		dst, err := zw.Create(e.Name())
		require.NoError(t, err)
		_, err = io.Copy(dst, src)
		require.NoError(t, err)
		require.NoError(t, src.Close())
	}
	require.NoError(t, zw.Close())
	require.NoError(t, zf.Close())

	d, err := LoadShapefile(zipPath, "parcels", 3857)
	require.NoError(t, err)
	assert.Equal(t, "parcels", d.Name)
	assert.Equal(t, 3857, d.SRID)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "south", d.Features[1].Attrs["NAME"])
}

func TestLoadShapefile_Missing(t *testing.T) {
	_, err := LoadShapefile(filepath.Join(t.TempDir(), "nope.shp"), "", 4326)
	assert.Error(t, err)
}

func TestShapeToGeometry_Point(t *testing.T) {
	g, ok, err := shapeToGeometry(&shp.Point{X: -80.19, Y: 25.77})
	require.NoError(t, err)
	require.True(t, ok)

	p, has := g.MustAsPoint().XY()
	require.True(t, has)
	assert.Equal(t, -80.19, p.X)
	assert.Equal(t, 25.77, p.Y)
}

func TestShapeToGeometry_Polygon(t *testing.T) {
	poly := &shp.Polygon{
		NumParts: 1,
		Parts:    []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0},
			{X: 0, Y: 1},
			{X: 1, Y: 1},
			{X: 1, Y: 0},
			{X: 0, Y: 0}, // closed ring
		},
	}

	g, ok, err := shapeToGeometry(poly)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sfgeom.TypeMultiPolygon, g.Type())
	assert.InDelta(t, 1.0, g.Area(), 1e-9)
}

func TestShapeToGeometry_MultiPartPolyLine(t *testing.T) {
	pl := &shp.PolyLine{
		NumParts: 2,
		Parts:    []int32{0, 2},
		Points: []shp.Point{
			{X: 0, Y: 0},
			{X: 3, Y: 4},
			{X: 10, Y: 0},
			{X: 10, Y: 2},
		},
	}

	g, ok, err := shapeToGeometry(pl)
	require.NoError(t, err)
	require.True(t, ok)

	mls := g.MustAsMultiLineString()
	assert.Equal(t, 2, mls.NumLineStrings())
	assert.InDelta(t, 7.0, g.Length(), 1e-9)
}

func TestShapeToGeometry_Unsupported(t *testing.T) {
	_, ok, err := shapeToGeometry(nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = shapeToGeometry(&shp.MultiPoint{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShapeToGeometry_EmptyShapes(t *testing.T) {
	_, ok, err := shapeToGeometry(&shp.Polygon{})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = shapeToGeometry(&shp.PolyLine{})
	require.NoError(t, err)
	assert.False(t, ok)
}
