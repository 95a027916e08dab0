package suitability

import (
	"context"
	"fmt"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/landgrid/suitability-cli/internal/dataset"
)

// State tracks orchestrator progress through one analysis run.
type State int

const (
	StateNotStarted State = iota
	StateValidating
	StateEvaluating
	StateAggregating
	StateComplete
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateEvaluating:
		return "evaluating"
	case StateAggregating:
		return "aggregating"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return "not_started"
}

// ProgressFunc receives fractional progress in [0,1] and a stage label.
type ProgressFunc func(fraction float64, stage string)

// DiagnosticFunc receives non-fatal warnings (all-zero criteria, CRS
// mismatch notices) without aborting the run.
type DiagnosticFunc func(msg string)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProgress installs a progress sink, invoked at least once per
// criterion and at aggregation start and end.
func WithProgress(f ProgressFunc) Option {
	return func(a *Analyzer) { a.progress = f }
}

// WithDiagnostics installs a warning sink.
func WithDiagnostics(f DiagnosticFunc) Option {
	return func(a *Analyzer) { a.diag = f }
}

// WithParallelism evaluates up to n criteria concurrently. Criterion
// evaluation is pure with respect to its inputs, so this is safe; result
// column ordering still follows the input criteria order.
func WithParallelism(n int) Option {
	return func(a *Analyzer) {
		if n > 1 {
			a.parallelism = n
		}
	}
}

// Analyzer sequences criterion evaluation, normalization, and
// aggregation over a project. It either returns a fully formed
// AnalysisResult or an error — never a partial result.
type Analyzer struct {
	engine Engine
	reproj Reprojector

	progress    ProgressFunc
	diag        DiagnosticFunc
	parallelism int

	mu    sync.Mutex
	state State
}

// NewAnalyzer creates an analyzer over the given geometry engine and
// reprojector.
func NewAnalyzer(engine Engine, reproj Reprojector, opts ...Option) *Analyzer {
	a := &Analyzer{
		engine:      engine,
		reproj:      reproj,
		progress:    func(float64, string) {},
		diag:        func(string) {},
		parallelism: 1,
		state:       StateNotStarted,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the orchestrator's current state.
func (a *Analyzer) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Analyzer) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// Run executes the full analysis. Any error during a single criterion
// aborts the whole run: a weighted sum with a missing component would
// silently understate suitability.
func (a *Analyzer) Run(ctx context.Context, pc *ProjectContext) (result *AnalysisResult, err error) {
	defer func() {
		if err != nil {
			a.setState(StateFailed)
		}
	}()

	log := zap.L().With(zap.String("boundary", pc.Boundary), zap.Int("criteria", len(pc.Criteria)))
	log.Info("analysis: starting run")

	a.setState(StateValidating)
	boundary, err := pc.BoundaryDataset()
	if err != nil {
		return nil, err
	}
	if len(pc.Criteria) == 0 {
		return nil, eris.Wrap(ErrValidation, "at least one criterion is required")
	}

	a.setState(StateEvaluating)
	results, err := a.evaluateAll(ctx, pc, boundary)
	if err != nil {
		return nil, err
	}

	a.setState(StateAggregating)
	a.progress(0.8, "aggregating")

	result, err = a.assemble(boundary, results, pc.Config)
	if err != nil {
		return nil, err
	}

	a.setState(StateComplete)
	a.progress(1.0, "complete")
	log.Info("analysis: run complete",
		zap.Int("features", result.Boundary.Len()),
		zap.String("type", result.Type.String()),
	)
	return result, nil
}

// evaluateAll produces one CriterionResult per criterion, in input
// order. Sequential by default; WithParallelism fans out evaluation while
// keeping ordering deterministic.
func (a *Analyzer) evaluateAll(ctx context.Context, pc *ProjectContext, boundary *dataset.Dataset) ([]CriterionResult, error) {
	results := make([]CriterionResult, len(pc.Criteria))

	if a.parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.parallelism)
		var done int
		for i, c := range pc.Criteria {
			i, c := i, c // per-iteration copies: go directive < 1.22
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r, err := a.evaluateCriterion(c, pc, boundary)
				if err != nil {
					return err
				}
				a.mu.Lock()
				results[i] = r
				done++
				frac := float64(done) / float64(len(pc.Criteria)) * 0.7
				a.mu.Unlock()
				a.progress(frac, "evaluated: "+c.Name)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return results, nil
	}

	for i, c := range pc.Criteria {
		// Interrupt point between criteria: the only cancellation hook
		// the engine needs, since nothing inside a step blocks on I/O.
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "analysis: canceled")
		}
		a.progress(float64(i)/float64(len(pc.Criteria))*0.7, "evaluating: "+c.Name)

		r, err := a.evaluateCriterion(c, pc, boundary)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

// evaluateCriterion resolves the criterion's dataset, aligns CRS,
// evaluates raw values, and normalizes them.
func (a *Analyzer) evaluateCriterion(c Criterion, pc *ProjectContext, boundary *dataset.Dataset) (CriterionResult, error) {
	log := zap.L().With(zap.String("criterion", c.Name), zap.String("method", c.Method.String()))

	ds, err := pc.Datasets.Get(c.DataSource)
	if err != nil {
		return CriterionResult{}, eris.Wrapf(ErrConfiguration, "criterion %q: dataset %q not registered", c.Name, c.DataSource)
	}

	// CRS alignment is mandatory before any geometric predicate runs.
	if ds.SRID != boundary.SRID {
		a.diag(fmt.Sprintf("criterion %q: dataset %q is EPSG:%d, reprojecting to boundary EPSG:%d",
			c.Name, ds.Name, ds.SRID, boundary.SRID))
		ds, err = a.reproj.Reproject(ds, boundary.SRID)
		if err != nil {
			return CriterionResult{}, eris.Wrapf(ErrGeometry, "criterion %q: reproject dataset: %v", c.Name, err)
		}
	}

	// Area and length are meaningless in geographic degrees; move both
	// layers into Web Mercator before measuring.
	evalBoundary := boundary
	if c.Method.RequiresProjected() && boundary.SRID == dataset.SRIDWGS84 {
		evalBoundary, err = a.reproj.Reproject(boundary, dataset.SRIDWebMercator)
		if err != nil {
			return CriterionResult{}, eris.Wrapf(ErrGeometry, "criterion %q: project boundary: %v", c.Name, err)
		}
		ds, err = a.reproj.Reproject(ds, dataset.SRIDWebMercator)
		if err != nil {
			return CriterionResult{}, eris.Wrapf(ErrGeometry, "criterion %q: project dataset: %v", c.Name, err)
		}
	}

	raw, err := Evaluate(c, evalBoundary, ds, a.engine)
	if err != nil {
		return CriterionResult{}, err
	}

	scores, allZero := Normalize(raw, c.Method, c.Preference)
	if allZero {
		a.diag(fmt.Sprintf("criterion %q: every feature scored 0 — no features from %q intersect the boundary; check coordinate systems and data",
			c.Name, c.DataSource))
	}

	log.Debug("analysis: criterion evaluated",
		zap.Int("features", len(scores)),
		zap.Bool("all_zero", allZero),
	)
	return CriterionResult{Criterion: c, Scores: scores}, nil
}

// assemble builds the final result table: per-criterion score columns in
// criteria order, then the decision columns, with the boundary's own
// attributes untouched.
func (a *Analyzer) assemble(boundary *dataset.Dataset, results []CriterionResult, cfg AnalysisConfig) (*AnalysisResult, error) {
	out := boundary.Copy()
	n := out.Len()
	namer := newColumnNamer()

	res := &AnalysisResult{
		Boundary:     out,
		Type:         cfg.Type,
		ScoreColumns: make([]string, 0, len(results)),
	}

	appendFloat := func(col string, values []float64) {
		out.AddColumn(col)
		for i := range out.Features {
			out.Features[i].Attrs[col] = values[i]
		}
	}

	switch cfg.Type {
	case Boolean:
		outcome, err := CombineBoolean(results, cfg, n)
		if err != nil {
			return nil, err
		}
		for c, r := range results {
			scoreCol := namer.name(r.Criterion.Name, "_score")
			res.ScoreColumns = append(res.ScoreColumns, scoreCol)
			appendFloat(scoreCol, r.Scores)

			suitableCol := namer.name(r.Criterion.Name, "_suitable")
			out.AddColumn(suitableCol)
			for i := range out.Features {
				out.Features[i].Attrs[suitableCol] = outcome.Met[c][i]
			}
		}
		out.AddColumn(ColCriteriaMetCount)
		out.AddColumn(ColIsSuitable)
		for i := range out.Features {
			out.Features[i].Attrs[ColCriteriaMetCount] = outcome.MetCount[i]
			out.Features[i].Attrs[ColIsSuitable] = outcome.Suitable[i]
		}
		appendFloat(ColSuitabilityScore, outcome.Scores)

		res.SuitabilityScore = outcome.Scores
		res.CriteriaMetCount = outcome.MetCount
		res.IsSuitable = outcome.Suitable

	default: // WeightedSum
		scores, err := CombineWeightedSum(results, n)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			scoreCol := namer.name(r.Criterion.Name, "_score")
			res.ScoreColumns = append(res.ScoreColumns, scoreCol)
			appendFloat(scoreCol, r.Scores)
		}
		appendFloat(ColSuitabilityScore, scores)
		res.SuitabilityScore = scores
	}

	return res, nil
}
