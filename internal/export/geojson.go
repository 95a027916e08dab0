// Package export serializes analysis results. Exporters operate on the
// finished result table only; the engine has no dependency on them.
package export

import (
	"encoding/json"
	"io"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"

	"github.com/landgrid/suitability-cli/internal/suitability"
)

// GeoJSON writes the result as a GeoJSON FeatureCollection: boundary
// geometries with original attributes plus the appended score columns.
func GeoJSON(res *suitability.AnalysisResult, w io.Writer) error {
	fc := make(geom.GeoJSONFeatureCollection, 0, res.Boundary.Len())
	for _, f := range res.Boundary.Features {
		props := make(map[string]any, len(f.Attrs))
		for k, v := range f.Attrs {
			props[k] = v
		}
		fc = append(fc, geom.GeoJSONFeature{
			Geometry:   f.Geom,
			Properties: props,
		})
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(fc); err != nil {
		return eris.Wrap(err, "export: encode GeoJSON")
	}
	return nil
}
