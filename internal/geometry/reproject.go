package geometry

import (
	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"
	"github.com/wroge/wgs84"

	"github.com/landgrid/suitability-cli/internal/dataset"
)

// DatasetReprojector adapts Reproject to the engine's Reprojector
// contract.
type DatasetReprojector struct{}

// Reproject transforms a dataset to the target SRID.
func (DatasetReprojector) Reproject(d *dataset.Dataset, toSRID int) (*dataset.Dataset, error) {
	return Reproject(d, toSRID)
}

// Transformer returns a coordinate transform between two EPSG codes,
// suitable for geom.Geometry.TransformXY. Returns an error for EPSG
// codes the CRS library does not know.
func Transformer(fromSRID, toSRID int) (func(geom.XY) geom.XY, error) {
	if fromSRID == toSRID {
		return func(p geom.XY) geom.XY { return p }, nil
	}

	epsg := wgs84.EPSG()
	from := epsg.Code(fromSRID)
	if from == nil {
		return nil, eris.Errorf("geometry: unknown source EPSG code %d", fromSRID)
	}
	to := epsg.Code(toSRID)
	if to == nil {
		return nil, eris.Errorf("geometry: unknown target EPSG code %d", toSRID)
	}

	f := wgs84.Transform(from, to)
	return func(p geom.XY) geom.XY {
		x, y, _ := f(p.X, p.Y, 0)
		return geom.XY{X: x, Y: y}
	}, nil
}

// ReprojectGeometry transforms a single geometry between EPSG codes.
func ReprojectGeometry(g geom.Geometry, fromSRID, toSRID int) (geom.Geometry, error) {
	if fromSRID == toSRID {
		return g, nil
	}
	t, err := Transformer(fromSRID, toSRID)
	if err != nil {
		return geom.Geometry{}, err
	}
	return g.TransformXY(t), nil
}

// Reproject returns a copy of the dataset with every geometry transformed
// to the target SRID. The input dataset is not modified. When the dataset
// is already in the target CRS the original is returned unchanged.
func Reproject(d *dataset.Dataset, toSRID int) (*dataset.Dataset, error) {
	if d.SRID == toSRID {
		return d, nil
	}
	t, err := Transformer(d.SRID, toSRID)
	if err != nil {
		return nil, err
	}

	out := d.Copy()
	out.SRID = toSRID
	for i := range out.Features {
		out.Features[i].Geom = out.Features[i].Geom.TransformXY(t)
	}
	return out, nil
}
