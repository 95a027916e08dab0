// Package geometry wraps the computational-geometry backend behind the
// small operation set the analysis engine needs, plus CRS reprojection.
package geometry

import (
	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"
)

// Planar computes planar (Cartesian) geometric operations via
// simplefeatures. All results are in the units of the input CRS: degrees
// for geographic data, meters for Web Mercator. Callers that need metric
// areas or lengths must reproject first.
type Planar struct{}

// NewPlanar creates a planar geometry engine.
func NewPlanar() *Planar {
	return &Planar{}
}

// Intersects reports whether the two geometries share any point.
func (*Planar) Intersects(a, b geom.Geometry) bool {
	return geom.Intersects(a, b)
}

// Intersection computes the geometric intersection of a and b.
func (*Planar) Intersection(a, b geom.Geometry) (geom.Geometry, error) {
	g, err := geom.Intersection(a, b)
	if err != nil {
		return geom.Geometry{}, eris.Wrap(err, "geometry: intersection")
	}
	return g, nil
}

// Area returns the planar area of the geometry in squared CRS units.
func (*Planar) Area(g geom.Geometry) float64 {
	return g.Area()
}

// Length returns the planar length of the geometry in CRS units. For
// polygons this is the perimeter; for points it is zero.
func (*Planar) Length(g geom.Geometry) float64 {
	return g.Length()
}

// Distance returns the minimum planar distance between a and b. Empty
// geometries have no defined distance.
func (*Planar) Distance(a, b geom.Geometry) (float64, error) {
	d, ok := geom.Distance(a, b)
	if !ok {
		return 0, eris.New("geometry: distance undefined for empty geometry")
	}
	return d, nil
}

// Centroid returns the centroid of the geometry as a point geometry.
func (*Planar) Centroid(g geom.Geometry) geom.Geometry {
	return g.Centroid().AsGeometry()
}

// Simplify reduces geometry detail using the given tolerance in CRS units.
func (*Planar) Simplify(g geom.Geometry, tolerance float64) (geom.Geometry, error) {
	out, err := g.Simplify(tolerance)
	if err != nil {
		return geom.Geometry{}, eris.Wrap(err, "geometry: simplify")
	}
	return out, nil
}
