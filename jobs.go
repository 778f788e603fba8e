package depsolve

import "github.com/rhartert/depsolve/ids"

// Jobs carries a single top-level solve request.
type Jobs struct {
	// Install lists the version sets the root must satisfy: at least one
	// candidate of each must end up installed.
	Install []ids.VersionSetId

	// Lock pins each listed solvable as the only acceptable candidate of its
	// package name; every other same-name candidate is excluded.
	Lock []ids.SolvableId

	// Favor rotates each listed solvable to the front of its version set's
	// candidate ordering wherever that version set is referenced, without
	// forcing it to be chosen — resolveDependencies still branches away from
	// it on conflict like any other candidate.
	Favor []ids.SolvableId
}
