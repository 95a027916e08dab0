package dataset

import (
	"sort"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned by Registry.Get for unregistered dataset names.
// Criteria bind their data sources late, so a missing dataset is only an
// error at evaluation time.
var ErrNotFound = eris.New("dataset not found")

// Registry holds named datasets for one project. A dataset may serve as
// the boundary layer and as a criterion data source at the same time.
type Registry struct {
	datasets map[string]*Dataset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{datasets: map[string]*Dataset{}}
}

// Register adds or replaces a dataset under its name.
func (r *Registry) Register(d *Dataset) {
	r.datasets[d.Name] = d
}

// Get resolves a dataset by name, returning ErrNotFound if absent.
func (r *Registry) Get(name string) (*Dataset, error) {
	d, ok := r.datasets[name]
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "registry: %q", name)
	}
	return d, nil
}

// Names returns registered dataset names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.datasets))
	for n := range r.datasets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int {
	return len(r.datasets)
}
