package depsolve

import "github.com/rhartert/depsolve/ids"

// Version is an opaque, totally ordered version value. The concrete version
// syntax — semver, a distro's epoch:upstream-revision scheme, PEP 440 — is
// out of scope for this module: callers supply whatever comparable value
// their VersionSet implementation understands, and the solver never inspects
// it beyond passing it back to VersionSet.Contains and DependencyProvider.
type Version any

// Solvable is a concrete package candidate: a name, a version, the version
// sets it requires, and the version sets it constrains (forbids co-installing
// with, independent of any Requires edge).
type Solvable struct {
	Name         ids.NameId
	Version      Version
	Dependencies []ids.VersionSetId
	Constrains   []ids.VersionSetId
}
