package depsolve

import "github.com/rhartert/depsolve/ids"

// VersionSet is an opaque predicate over the versions of a single package
// name. The solver never inspects its internals; it only calls Contains to
// decide which of a name's registered Solvables match a dependency edge.
type VersionSet interface {
	Contains(v Version) bool
}

// DependencyProvider supplies the tie-break ordering over a version set's
// matching candidates — typically "highest version first". Favored
// candidates are rotated to the front of this ordering afterwards by the
// builder; locked candidates are not reordered (they are enforced through
// Lock clauses). SortCandidates itself is only responsible for the default
// preference order.
type DependencyProvider interface {
	SortCandidates(pool *Pool, candidates []ids.SolvableId, vs ids.VersionSetId) []ids.SolvableId
}
