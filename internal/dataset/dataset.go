// Package dataset holds the in-memory geospatial data model: feature
// collections with attribute tables, and the named registry criteria
// resolve their data sources against.
package dataset

import (
	"sort"

	"github.com/peterstace/simplefeatures/geom"
)

// Common SRIDs. Area and length computations require a projected CRS;
// WGS84 coordinates are degrees and must be reprojected first.
const (
	SRIDWGS84       = 4326
	SRIDWebMercator = 3857
)

// Feature is one row of a dataset: a geometry plus an open-ended
// attribute map. Index is the feature's position within its dataset and
// is stable for the lifetime of the dataset.
type Feature struct {
	Index int
	Geom  geom.Geometry
	Attrs map[string]any
}

// Dataset is a named collection of features sharing one CRS.
type Dataset struct {
	Name     string
	SRID     int
	Features []Feature

	columns []string
}

// New creates an empty dataset with the given name and SRID.
func New(name string, srid int) *Dataset {
	return &Dataset{Name: name, SRID: srid}
}

// Append adds a feature, assigning its positional index. Any attribute
// names not seen before are recorded in column order.
func (d *Dataset) Append(g geom.Geometry, attrs map[string]any) {
	if attrs == nil {
		attrs = map[string]any{}
	}
	d.Features = append(d.Features, Feature{
		Index: len(d.Features),
		Geom:  g,
		Attrs: attrs,
	})
	for _, c := range sortedKeys(attrs) {
		d.addColumn(c)
	}
}

// AddColumn registers a column name without touching feature attributes.
// Used when appending result columns so ordering stays deterministic.
func (d *Dataset) AddColumn(name string) {
	d.addColumn(name)
}

func (d *Dataset) addColumn(name string) {
	for _, c := range d.columns {
		if c == name {
			return
		}
	}
	d.columns = append(d.columns, name)
}

// Columns returns attribute column names in first-seen order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the dataset's attribute table has the column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of features.
func (d *Dataset) Len() int {
	return len(d.Features)
}

// Copy returns a deep copy of the dataset. Geometries are immutable
// values in simplefeatures, so they are shared; attribute maps are cloned.
func (d *Dataset) Copy() *Dataset {
	out := &Dataset{
		Name:     d.Name,
		SRID:     d.SRID,
		Features: make([]Feature, len(d.Features)),
		columns:  append([]string(nil), d.columns...),
	}
	for i, f := range d.Features {
		attrs := make(map[string]any, len(f.Attrs))
		for k, v := range f.Attrs {
			attrs[k] = v
		}
		out.Features[i] = Feature{Index: f.Index, Geom: f.Geom, Attrs: attrs}
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
