package suitability

import "github.com/rotisserie/eris"

// Error kinds. Every failure out of the engine wraps exactly one of
// these so callers can branch with eris.Is without string matching.
// Degenerate-but-valid score distributions (all-zero, all-equal) are not
// errors; they surface through the diagnostic sink instead.
var (
	// ErrValidation covers missing boundary datasets and empty criteria
	// lists — the run is structurally incomplete.
	ErrValidation = eris.New("validation error")

	// ErrConfiguration covers bad criterion wiring: a value method with
	// no column, a column absent from the attribute table, or an
	// unregistered data source.
	ErrConfiguration = eris.New("configuration error")

	// ErrGeometry propagates failures from the geometry engine. The
	// engine does not repair geometries; sanitization happens upstream.
	ErrGeometry = eris.New("geometry error")
)
