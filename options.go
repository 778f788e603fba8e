package depsolve

import (
	"log"

	"github.com/rhartert/depsolve/internal/engine"
)

// Tracer receives diagnostic trace events (decisions, propagations,
// conflicts, learnt clauses) emitted while Solve runs.
type Tracer = engine.Tracer

// TraceEvent describes a single diagnostic event; see Tracer.
type TraceEvent = engine.TraceEvent

// NopTracer discards every event. It is the default.
type NopTracer = engine.NopTracer

// LogTracer writes one line per event to an embedded *log.Logger, in the
// same spirit as the teacher solver's own search statistics logging.
type LogTracer struct {
	Logger *log.Logger
}

// Trace implements Tracer.
func (t LogTracer) Trace(e TraceEvent) {
	if t.Logger == nil {
		return
	}
	t.Logger.Printf("%s solvable=%d value=%t clause=%d level=%d", e.Kind, e.Solvable, e.Value, e.Clause, e.Level)
}

// Options configures a Solve call.
type Options struct {
	// Tracer, if non-nil, observes the search as it runs.
	Tracer Tracer

	// MaxLearntClauses caps the learnt clause database; once exceeded, the
	// oldest unlocked learnt clauses are trimmed once the search succeeds.
	// Zero disables trimming.
	MaxLearntClauses int
}

// DefaultOptions is used when no Option is passed to Solve.
var DefaultOptions = Options{
	Tracer:           NopTracer{},
	MaxLearntClauses: 0,
}

func (o Options) tracer() Tracer {
	if o.Tracer == nil {
		return NopTracer{}
	}
	return o.Tracer
}

// Option mutates an Options during Solve.
type Option func(*Options)

// WithTracer sets the Tracer used during Solve.
func WithTracer(t Tracer) Option {
	return func(o *Options) { o.Tracer = t }
}

// WithMaxLearntClauses caps the learnt clause database size.
func WithMaxLearntClauses(n int) Option {
	return func(o *Options) { o.MaxLearntClauses = n }
}
