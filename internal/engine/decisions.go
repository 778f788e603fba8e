package engine

import "github.com/rhartert/depsolve/ids"

// Decision records one entry of the append-only decision stack: solvable s
// was assigned Value at Level, because of DerivedFrom (InstallRootClauseId
// for the root, a Requires/Constrains/Lock/ForbidMultipleInstances clause id
// for a forced assertion, or a branching clause id for a free choice).
type Decision struct {
	Solvable    ids.SolvableId
	Value       bool
	DerivedFrom ids.ClauseId
	Level       int32
}

// Tracker is the decision map and tracker described by the engine's data
// model: a signed-per-solvable assignment array plus an append-only decision
// stack with a monotonic propagation cursor. The sign of levels[s] encodes
// the current value of s (0 = undecided, +level = true, -level = false) so
// that AssignedValue and Level are both single slice lookups.
type Tracker struct {
	levels []int32
	stack  []Decision
	cursor int
}

// NewTracker returns a Tracker sized for numSolvables solvables, all
// initially undecided.
func NewTracker(numSolvables int) *Tracker {
	return &Tracker{levels: make([]int32, numSolvables)}
}

// NotFalse implements LiteralState: a literal is not false if its solvable is
// undecided, or decided to the value the literal asserts.
func (t *Tracker) NotFalse(l Literal) bool {
	v, known := t.AssignedValue(l.Solvable)
	return !known || v != l.Negate
}

// AssignedValue returns the current value of s and whether it is decided.
func (t *Tracker) AssignedValue(s ids.SolvableId) (value bool, known bool) {
	lvl := t.levels[s]
	return lvl > 0, lvl != 0
}

// Level returns the decision level at which s was assigned, or 0 if it is
// still undecided.
func (t *Tracker) Level(s ids.SolvableId) int32 {
	lvl := t.levels[s]
	if lvl < 0 {
		return -lvl
	}
	return lvl
}

// TryAddDecision attempts to record d. If s is already decided to the same
// value, the stack is left untouched and ok reports true with changed false.
// If s is decided to the opposite value, ok reports false: this is a
// conflict and the caller is responsible for analysis.
func (t *Tracker) TryAddDecision(d Decision) (changed bool, ok bool) {
	cur := t.levels[d.Solvable]
	switch {
	case cur == 0:
		if d.Value {
			t.levels[d.Solvable] = d.Level
		} else {
			t.levels[d.Solvable] = -d.Level
		}
		t.stack = append(t.stack, d)
		return true, true
	case (cur > 0) == d.Value:
		return false, true
	default:
		return false, false
	}
}

// NextUnpropagated returns the next decision past the propagation cursor and
// advances it, or reports ok=false once the stack is exhausted.
func (t *Tracker) NextUnpropagated() (Decision, bool) {
	if t.cursor >= len(t.stack) {
		return Decision{}, false
	}
	d := t.stack[t.cursor]
	t.cursor++
	return d, true
}

// UndoLast pops and returns the most recent decision, clearing its
// assignment.
func (t *Tracker) UndoLast() Decision {
	d := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	t.levels[d.Solvable] = 0
	if t.cursor > len(t.stack) {
		t.cursor = len(t.stack)
	}
	return d
}

// UndoUntil pops decisions until the top of the stack is at or below target.
func (t *Tracker) UndoUntil(target int32) {
	for len(t.stack) > 0 && t.stack[len(t.stack)-1].Level > target {
		t.UndoLast()
	}
}

// Stack returns the decision stack in chronological order. Callers must not
// mutate the returned slice.
func (t *Tracker) Stack() []Decision {
	return t.stack
}
