package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/landgrid/suitability-cli/internal/dataset"
)

// LoadGeoJSON reads a GeoJSON FeatureCollection into a dataset. GeoJSON
// coordinates are WGS84 by specification, so the dataset SRID is 4326.
// Features with null or empty geometry are dropped.
func LoadGeoJSON(path, name string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read %s", path)
	}
	if name == "" {
		name = datasetName(path)
	}
	return ParseGeoJSON(data, name)
}

// ParseGeoJSON decodes GeoJSON FeatureCollection bytes into a dataset.
// Geometries are decoded per feature so a null or malformed geometry
// drops that feature alone, not the whole file.
func ParseGeoJSON(data []byte, name string) (*dataset.Dataset, error) {
	var fc struct {
		Features []struct {
			Geometry   json.RawMessage `json:"geometry"`
			Properties map[string]any  `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "loader: parse GeoJSON %s", name)
	}

	d := dataset.New(name, dataset.SRIDWGS84)
	var skipped int
	for _, f := range fc.Features {
		if len(f.Geometry) == 0 || string(f.Geometry) == "null" {
			skipped++
			continue
		}
		g, err := geom.UnmarshalGeoJSON(f.Geometry)
		if err != nil || g.IsEmpty() {
			skipped++
			continue
		}
		attrs := make(map[string]any, len(f.Properties))
		for k, v := range f.Properties {
			attrs[k] = v
		}
		d.Append(g, attrs)
	}

	if skipped > 0 {
		zap.L().Debug("loader: skipped empty geometries",
			zap.String("dataset", name),
			zap.Int("skipped", skipped),
		)
	}
	if d.Len() == 0 {
		return nil, eris.Errorf("loader: GeoJSON %s contains no usable features", name)
	}
	return d, nil
}

// Load reads a dataset from a file, dispatching on extension: .geojson
// and .json are GeoJSON; .shp and .zip are shapefiles.
func Load(path, name string, srid int) (*dataset.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeoJSON(path, name)
	case ".shp", ".zip":
		return LoadShapefile(path, name, srid)
	}
	return nil, eris.Errorf("loader: unsupported file type %s", path)
}
