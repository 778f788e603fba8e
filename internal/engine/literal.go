package engine

import (
	"fmt"

	"github.com/rhartert/depsolve/ids"
)

// Literal pairs a solvable id with a polarity, the engine's atomic unit of
// propagation. Unlike the teacher's Literal (an encoded int over a dense
// variable space), this Literal is a small struct over ids.SolvableId: the
// variable space here is the set of solvables a Pool already allocated, so
// there is no separate variable-numbering step to fold into the encoding.
type Literal struct {
	Solvable ids.SolvableId
	Negate   bool
}

// Pos returns the positive literal of s ("s is installed").
func Pos(s ids.SolvableId) Literal { return Literal{Solvable: s} }

// Neg returns the negative literal of s ("s is not installed").
func Neg(s ids.SolvableId) Literal { return Literal{Solvable: s, Negate: true} }

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal { return Literal{Solvable: l.Solvable, Negate: !l.Negate} }

func (l Literal) String() string {
	if l.Negate {
		return fmt.Sprintf("!%d", l.Solvable)
	}
	return fmt.Sprintf("%d", l.Solvable)
}

// LiteralState answers whether a literal's current value rules it out. Two
// implementations exist: *Tracker at solve time, and the Unassigned stub used
// while the builder constructs clauses before any decision has been made.
type LiteralState interface {
	NotFalse(l Literal) bool
}

type unassignedState struct{}

func (unassignedState) NotFalse(Literal) bool { return true }

// Unassigned is the LiteralState seen by every clause at construction time
// during clause synthesis: nothing has been decided yet, so no literal can be
// false.
var Unassigned LiteralState = unassignedState{}
