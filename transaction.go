package depsolve

import "github.com/rhartert/depsolve/ids"

// Transaction is the ordered list of solvables a successful Solve decided to
// install, in the order they were decided (the root and any solvable
// assigned false are excluded).
type Transaction struct {
	Installed []ids.SolvableId
}
