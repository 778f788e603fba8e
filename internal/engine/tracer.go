package engine

import "github.com/rhartert/depsolve/ids"

// EventKind distinguishes the kinds of events a Tracer can observe.
type EventKind uint8

const (
	EventDecision EventKind = iota
	EventPropagation
	EventConflict
	EventLearnt
)

func (k EventKind) String() string {
	switch k {
	case EventDecision:
		return "decision"
	case EventPropagation:
		return "propagation"
	case EventConflict:
		return "conflict"
	case EventLearnt:
		return "learnt"
	default:
		return "unknown"
	}
}

// TraceEvent describes a single event during RunSAT: a branching decision, a
// unit propagation, a conflict, or the installation of a learnt clause.
type TraceEvent struct {
	Kind     EventKind
	Solvable ids.SolvableId
	Value    bool
	Clause   ids.ClauseId
	Level    int32
}

func (e TraceEvent) String() string {
	return e.Kind.String()
}

// Tracer receives TraceEvents emitted by the driver. Implementations must
// not retain a TraceEvent past the call.
type Tracer interface {
	Trace(TraceEvent)
}

// NopTracer discards every event.
type NopTracer struct{}

func (NopTracer) Trace(TraceEvent) {}
