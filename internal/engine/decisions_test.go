package engine

import (
	"testing"

	"github.com/rhartert/depsolve/ids"
)

func TestTracker_TryAddDecision(t *testing.T) {
	tr := NewTracker(3)

	changed, ok := tr.TryAddDecision(Decision{Solvable: 0, Value: true, Level: 1})
	if !changed || !ok {
		t.Fatalf("first decision: got (changed=%v, ok=%v), want (true, true)", changed, ok)
	}

	changed, ok = tr.TryAddDecision(Decision{Solvable: 0, Value: true, Level: 1})
	if changed || !ok {
		t.Fatalf("repeated same-value decision: got (changed=%v, ok=%v), want (false, true)", changed, ok)
	}

	changed, ok = tr.TryAddDecision(Decision{Solvable: 0, Value: false, Level: 1})
	if ok {
		t.Fatalf("opposite-value decision: got ok=true, want false (conflict)")
	}
}

func TestTracker_AssignedValueAndLevel(t *testing.T) {
	tr := NewTracker(2)
	tr.TryAddDecision(Decision{Solvable: 1, Value: false, Level: 3})

	v, known := tr.AssignedValue(0)
	if known {
		t.Errorf("solvable 0: known=%v, want false", known)
	}
	v, known = tr.AssignedValue(1)
	if !known || v != false {
		t.Errorf("solvable 1: got (value=%v, known=%v), want (false, true)", v, known)
	}
	if lvl := tr.Level(1); lvl != 3 {
		t.Errorf("Level(1) = %d, want 3", lvl)
	}
}

func TestTracker_NextUnpropagated(t *testing.T) {
	tr := NewTracker(2)
	tr.TryAddDecision(Decision{Solvable: 0, Value: true, Level: 1})
	tr.TryAddDecision(Decision{Solvable: 1, Value: true, Level: 1})

	d, ok := tr.NextUnpropagated()
	if !ok || d.Solvable != 0 {
		t.Fatalf("first NextUnpropagated: got (%+v, %v), want solvable 0", d, ok)
	}
	d, ok = tr.NextUnpropagated()
	if !ok || d.Solvable != 1 {
		t.Fatalf("second NextUnpropagated: got (%+v, %v), want solvable 1", d, ok)
	}
	if _, ok := tr.NextUnpropagated(); ok {
		t.Fatalf("third NextUnpropagated: got ok=true, want false (queue drained)")
	}
}

func TestTracker_UndoUntil(t *testing.T) {
	tr := NewTracker(4)
	tr.TryAddDecision(Decision{Solvable: 0, Value: true, Level: 1})
	tr.TryAddDecision(Decision{Solvable: 1, Value: true, Level: 2})
	tr.TryAddDecision(Decision{Solvable: 2, Value: true, Level: 3})

	tr.UndoUntil(1)

	if _, known := tr.AssignedValue(1); known {
		t.Errorf("solvable 1 still decided after UndoUntil(1)")
	}
	if _, known := tr.AssignedValue(2); known {
		t.Errorf("solvable 2 still decided after UndoUntil(1)")
	}
	v, known := tr.AssignedValue(0)
	if !known || !v {
		t.Errorf("solvable 0 was undone, want it to remain decided true")
	}
	if len(tr.Stack()) != 1 {
		t.Errorf("stack length = %d, want 1", len(tr.Stack()))
	}
}

func TestLiteral_Opposite(t *testing.T) {
	p := Pos(ids.SolvableId(5))
	n := Neg(ids.SolvableId(5))
	if p.Opposite() != n || n.Opposite() != p {
		t.Errorf("Opposite() is not involutive for solvable 5")
	}
}
