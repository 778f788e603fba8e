package depsolve

import "github.com/rhartert/depsolve/ids"

type versionSetEntry struct {
	name ids.NameId
	set  VersionSet
}

// Pool owns every id arena the builder and solver operate over: solvables,
// interned names, and registered version sets. A Pool is meant to be built
// once and reused across several Solve calls with different Jobs, so it
// never caches anything whose value could depend on a particular call's
// jobs (candidate order depends on Jobs.Favor, so it is cached per-build in
// buildClauses instead, not here).
type Pool struct {
	solvables   ids.Arena[Solvable]
	names       ids.Arena[string]
	nameIds     map[string]ids.NameId
	versionsets ids.Arena[versionSetEntry]

	packagesByName map[ids.NameId][]ids.SolvableId
}

// NewPool returns an empty Pool, with solvable 0 reserved for the synthetic
// root.
func NewPool() *Pool {
	p := &Pool{
		nameIds:        make(map[string]ids.NameId),
		packagesByName: make(map[ids.NameId][]ids.SolvableId),
	}
	p.solvables.Alloc(Solvable{})
	return p
}

// InternName returns the NameId for name, allocating one the first time it
// is seen.
func (p *Pool) InternName(name string) ids.NameId {
	if id, ok := p.nameIds[name]; ok {
		return id
	}
	id := ids.NameId(p.names.Alloc(name))
	p.nameIds[name] = id
	return id
}

// NameOf returns the interned string for id.
func (p *Pool) NameOf(id ids.NameId) string {
	return p.names.Get(int32(id))
}

// AddSolvable registers a new candidate of name at version, returning its id.
func (p *Pool) AddSolvable(name ids.NameId, version Version) ids.SolvableId {
	id := ids.SolvableId(p.solvables.Alloc(Solvable{Name: name, Version: version}))
	p.packagesByName[name] = append(p.packagesByName[name], id)
	return id
}

// Solvable returns a pointer to s's record, for both reading and appending
// Dependencies/Constrains.
func (p *Pool) Solvable(s ids.SolvableId) *Solvable {
	return p.solvables.Ptr(int32(s))
}

// AddDependency records that s requires a candidate satisfying vs.
func (p *Pool) AddDependency(s ids.SolvableId, vs ids.VersionSetId) {
	sol := p.Solvable(s)
	sol.Dependencies = append(sol.Dependencies, vs)
}

// AddConstrains records that installing s forbids any candidate satisfying
// vs from also being installed.
func (p *Pool) AddConstrains(s ids.SolvableId, vs ids.VersionSetId) {
	sol := p.Solvable(s)
	sol.Constrains = append(sol.Constrains, vs)
}

// NewVersionSet registers a VersionSet predicate over name's candidates.
func (p *Pool) NewVersionSet(name ids.NameId, set VersionSet) ids.VersionSetId {
	return ids.VersionSetId(p.versionsets.Alloc(versionSetEntry{name: name, set: set}))
}

// PackageNameOf returns the package name a version set was registered under.
func (p *Pool) PackageNameOf(vs ids.VersionSetId) ids.NameId {
	return p.versionsets.Get(int32(vs)).name
}

func (p *Pool) versionSet(vs ids.VersionSetId) VersionSet {
	return p.versionsets.Get(int32(vs)).set
}

// FindMatchingSolvables returns every candidate of vs's package name whose
// version satisfies vs.
func (p *Pool) FindMatchingSolvables(vs ids.VersionSetId) []ids.SolvableId {
	entry := p.versionsets.Get(int32(vs))
	var out []ids.SolvableId
	for _, cand := range p.packagesByName[entry.name] {
		if entry.set.Contains(p.Solvable(cand).Version) {
			out = append(out, cand)
		}
	}
	return out
}

// FindUnmatchedSolvables returns every candidate of vs's package name whose
// version does NOT satisfy vs — the set a Constrains edge forbids.
func (p *Pool) FindUnmatchedSolvables(vs ids.VersionSetId) []ids.SolvableId {
	entry := p.versionsets.Get(int32(vs))
	var out []ids.SolvableId
	for _, cand := range p.packagesByName[entry.name] {
		if !entry.set.Contains(p.Solvable(cand).Version) {
			out = append(out, cand)
		}
	}
	return out
}

// NumSolvables returns the number of solvables registered, root included.
func (p *Pool) NumSolvables() int {
	return int(p.solvables.Len())
}
