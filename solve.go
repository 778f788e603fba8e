package depsolve

import (
	"github.com/rhartert/depsolve/ids"
	"github.com/rhartert/depsolve/internal/engine"
)

// Solve computes a consistent installation set for jobs over pool, using
// provider to order each dependency edge's candidates. It returns a
// Transaction on success, or a non-nil *Problem (which implements error) when
// the jobs cannot be satisfied.
func Solve(pool *Pool, provider DependencyProvider, jobs Jobs, opts ...Option) (*Transaction, error) {
	options := DefaultOptions
	for _, opt := range opts {
		opt(&options)
	}

	built := buildClauses(pool, provider, jobs)
	driver := engine.NewDriver(built.store, built.numSolvables, options.tracer())

	if uc := driver.RunSAT(ids.RootSolvableId); uc != nil {
		return nil, &Problem{
			pool:         pool,
			ClauseIDs:    driver.AnalyzeUnsolvable(uc.TriggerClause),
			clauseLookup: built.descriptions,
		}
	}

	if options.MaxLearntClauses > 0 {
		driver.ReduceLearnts(options.MaxLearntClauses)
	}

	return extractTransaction(driver), nil
}

func extractTransaction(driver *engine.Driver) *Transaction {
	var installed []ids.SolvableId
	for _, dec := range driver.Decisions() {
		if dec.Solvable.IsRoot() || !dec.Value {
			continue
		}
		installed = append(installed, dec.Solvable)
	}
	return &Transaction{Installed: installed}
}
