package suitability

import (
	"github.com/rotisserie/eris"

	"github.com/landgrid/suitability-cli/internal/dataset"
)

// ProjectContext is everything one analysis run needs, passed explicitly
// to the orchestrator. There is no ambient project state: the registry,
// the boundary name, the criteria list, and the analysis config travel
// together and are owned by the caller.
type ProjectContext struct {
	Title    string
	Boundary string
	Datasets *dataset.Registry
	Criteria []Criterion
	Config   AnalysisConfig
}

// BoundaryDataset resolves the boundary layer from the registry.
func (pc *ProjectContext) BoundaryDataset() (*dataset.Dataset, error) {
	if pc.Boundary == "" {
		return nil, eris.Wrap(ErrValidation, "no boundary dataset configured")
	}
	d, err := pc.Datasets.Get(pc.Boundary)
	if err != nil {
		return nil, eris.Wrapf(ErrValidation, "boundary dataset %q not registered", pc.Boundary)
	}
	return d, nil
}
