// Package loader reads geospatial files into datasets. Geometry
// sanitization happens here: null, empty, and unsupported geometries are
// dropped before data reaches the analysis engine.
package loader

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/landgrid/suitability-cli/internal/dataset"
)

// shpSource abstracts plain and zipped shapefile readers.
type shpSource interface {
	Next() bool
	Shape() (int, shp.Shape)
	Attribute(n int) string
	Fields() []shp.Field
	Close() error
}

// LoadShapefile reads a .shp or a zipped shapefile into a dataset.
// Shapefiles carry no parseable CRS here; srid declares the coordinate
// system the file is in (commonly 4326). The dataset is named after the
// file unless name is non-empty.
func LoadShapefile(path, name string, srid int) (*dataset.Dataset, error) {
	var (
		reader shpSource
		err    error
	)
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		reader, err = shp.OpenZip(path)
	} else {
		reader, err = shp.Open(path)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	if name == "" {
		name = datasetName(path)
	}
	d := dataset.New(name, srid)

	// Field name and type map for attribute decoding.
	fields := reader.Fields()
	names := make([]string, len(fields))
	numeric := make([]bool, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
		numeric[i] = f.Fieldtype == 'N' || f.Fieldtype == 'F'
	}

	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		g, ok, convErr := shapeToGeometry(shape)
		if convErr != nil || !ok || g.IsEmpty() {
			skipped++
			continue
		}

		attrs := make(map[string]any, len(names))
		for i, col := range names {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if val == "" {
				attrs[col] = nil
				continue
			}
			if numeric[i] {
				if f, err := strconv.ParseFloat(val, 64); err == nil {
					attrs[col] = f
					continue
				}
			}
			attrs[col] = val
		}
		d.Append(g, attrs)
	}

	if skipped > 0 {
		zap.L().Debug("loader: skipped shapefile records",
			zap.String("dataset", name),
			zap.Int("skipped", skipped),
		)
	}
	if d.Len() == 0 {
		return nil, eris.Errorf("loader: shapefile %s contains no usable features", path)
	}

	return d, nil
}

// datasetName derives a dataset name from a file path.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
