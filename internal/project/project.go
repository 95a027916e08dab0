// Package project defines the YAML project file: dataset references,
// the boundary layer, the criteria list, and the analysis configuration.
// Enum strings are validated here, once, at the boundary — the engine
// only ever sees closed enum values.
package project

import (
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/landgrid/suitability-cli/internal/dataset"
	"github.com/landgrid/suitability-cli/internal/loader"
	"github.com/landgrid/suitability-cli/internal/suitability"
)

// File is the on-disk project description.
type File struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description,omitempty"`
	Boundary    string       `yaml:"boundary"`
	Datasets    []DatasetRef `yaml:"datasets"`
	Criteria    []Criterion  `yaml:"criteria"`
	Analysis    Analysis     `yaml:"analysis"`
}

// DatasetRef points at a dataset file. SRID applies to shapefiles, which
// carry no machine-readable CRS; GeoJSON is always WGS84.
type DatasetRef struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	SRID int    `yaml:"srid,omitempty"`
}

// Criterion is the YAML shape of one analysis rule.
type Criterion struct {
	ID         string  `yaml:"id,omitempty"`
	Name       string  `yaml:"name"`
	DataSource string  `yaml:"data_source"`
	Method     string  `yaml:"processing_method"`
	Column     string  `yaml:"column,omitempty"`
	Weight     float64 `yaml:"weight"`
	Preference string  `yaml:"preference,omitempty"`
}

// Analysis is the YAML shape of the aggregation config.
type Analysis struct {
	Type        string  `yaml:"type"`
	BooleanMode string  `yaml:"boolean_mode,omitempty"`
	Threshold   float64 `yaml:"threshold,omitempty"`
}

// Load reads and parses a project file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "project: read %s", path)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "project: parse %s", path)
	}
	return &f, nil
}

// Save writes the project file back to disk.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return eris.Wrap(err, "project: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "project: write %s", path)
	}
	return nil
}

// Context builds a runnable ProjectContext: datasets are loaded from
// their files into a registry and enum strings are resolved. Criteria
// missing an ID get a fresh one.
func (f *File) Context() (*suitability.ProjectContext, error) {
	if f.Boundary == "" {
		return nil, eris.Wrap(suitability.ErrValidation, "project: boundary is required")
	}

	reg := dataset.NewRegistry()
	for _, ref := range f.Datasets {
		srid := ref.SRID
		if srid == 0 {
			srid = dataset.SRIDWGS84
		}
		d, err := loader.Load(ref.Path, ref.Name, srid)
		if err != nil {
			return nil, err
		}
		reg.Register(d)
	}

	criteria, err := f.criteria()
	if err != nil {
		return nil, err
	}

	cfg, err := f.analysisConfig()
	if err != nil {
		return nil, err
	}

	return &suitability.ProjectContext{
		Title:    f.Title,
		Boundary: f.Boundary,
		Datasets: reg,
		Criteria: criteria,
		Config:   cfg,
	}, nil
}

func (f *File) criteria() ([]suitability.Criterion, error) {
	out := make([]suitability.Criterion, 0, len(f.Criteria))
	for _, c := range f.Criteria {
		method, err := suitability.ParseMethod(c.Method)
		if err != nil {
			return nil, eris.Wrapf(err, "project: criterion %q", c.Name)
		}
		pref, err := suitability.ParsePreference(c.Preference)
		if err != nil {
			return nil, eris.Wrapf(err, "project: criterion %q", c.Name)
		}
		id := c.ID
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, suitability.Criterion{
			ID:         id,
			Name:       c.Name,
			DataSource: c.DataSource,
			Method:     method,
			Column:     c.Column,
			Weight:     c.Weight,
			Preference: pref,
		})
	}
	return out, nil
}

func (f *File) analysisConfig() (suitability.AnalysisConfig, error) {
	cfg := suitability.DefaultAnalysisConfig()

	t, err := suitability.ParseAnalysisType(f.Analysis.Type)
	if err != nil {
		return cfg, err
	}
	cfg.Type = t

	mode, err := suitability.ParseBooleanMode(f.Analysis.BooleanMode)
	if err != nil {
		return cfg, err
	}
	cfg.BooleanMode = mode

	if f.Analysis.Threshold != 0 {
		if f.Analysis.Threshold < 0 || f.Analysis.Threshold > 1 {
			return cfg, eris.Wrapf(suitability.ErrValidation, "project: threshold %v outside [0,1]", f.Analysis.Threshold)
		}
		cfg.Threshold = f.Analysis.Threshold
	}
	return cfg, nil
}
