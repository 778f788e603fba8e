package depsolve

import (
	"sort"

	"github.com/rhartert/depsolve/ids"
	"github.com/rhartert/depsolve/internal/engine"
)

type buildResult struct {
	store        *engine.Store
	descriptions map[ids.ClauseId]clauseDescription
	numSolvables int
}

// buildClauses translates pool and jobs into the clause set the engine
// searches over, in a single depth-first walk from the synthetic root: for
// every Requires edge, a Requires clause naming its sorted (and, if favored,
// rotated) candidates; for every Constrains edge, one Constrains clause per
// disqualified candidate; and, once every reachable solvable has been
// visited, one ForbidMultipleInstances clause per same-name pair and one Lock
// clause per (locked solvable, other same-name candidate) pair.
func buildClauses(pool *Pool, provider DependencyProvider, jobs Jobs) *buildResult {
	store := &engine.Store{}
	descriptions := map[ids.ClauseId]clauseDescription{}

	favored := map[ids.NameId]ids.SolvableId{}
	for _, s := range jobs.Favor {
		validateSolvable(pool, s)
		favored[pool.Solvable(s).Name] = s
	}
	locked := map[ids.NameId]ids.SolvableId{}
	for _, s := range jobs.Lock {
		validateSolvable(pool, s)
		locked[pool.Solvable(s).Name] = s
	}

	// Candidate order depends on favored, which is specific to this call's
	// Jobs, so the cache lives here rather than on Pool.
	candidateCache := map[ids.VersionSetId][]ids.SolvableId{}

	rootID := store.Add(engine.NewClause(engine.KindInstallRoot, []engine.Literal{engine.Pos(ids.RootSolvableId)}, engine.Unassigned))
	descriptions[rootID] = clauseDescription{kind: "root"}

	visited := map[ids.SolvableId]bool{ids.RootSolvableId: true}
	worklist := []ids.SolvableId{ids.RootSolvableId}

	for len(worklist) > 0 {
		subject := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		var depVS []ids.VersionSetId
		if subject.IsRoot() {
			depVS = jobs.Install
		} else {
			depVS = pool.Solvable(subject).Dependencies
		}

		for _, vs := range depVS {
			candidates := sortedCandidatesFor(pool, provider, favored, candidateCache, vs)

			lits := make([]engine.Literal, 0, len(candidates)+1)
			lits = append(lits, engine.Neg(subject))
			for _, c := range candidates {
				lits = append(lits, engine.Pos(c))
			}

			clause := engine.NewClause(engine.KindRequires, lits, engine.Unassigned)
			id := store.Add(clause)
			descriptions[id] = clauseDescription{kind: "requires", subject: subject, vs: vs}

			for _, c := range candidates {
				if !visited[c] {
					visited[c] = true
					worklist = append(worklist, c)
				}
			}
		}

		if !subject.IsRoot() {
			for _, vs := range pool.Solvable(subject).Constrains {
				for _, offender := range pool.FindUnmatchedSolvables(vs) {
					clause := engine.NewClause(engine.KindConstrains, []engine.Literal{engine.Neg(subject), engine.Neg(offender)}, engine.Unassigned)
					id := store.Add(clause)
					descriptions[id] = clauseDescription{kind: "constrains", subject: subject, other: offender, vs: vs}
				}
			}
		}
	}

	byName := map[ids.NameId][]ids.SolvableId{}
	for s := range visited {
		if s.IsRoot() {
			continue
		}
		name := pool.Solvable(s).Name
		byName[name] = append(byName[name], s)
	}

	for name, group := range byName {
		sort.Slice(group, func(i, j int) bool { return group[i] < group[j] })

		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				clause := engine.NewClause(engine.KindForbidMultipleInstances, []engine.Literal{engine.Neg(group[i]), engine.Neg(group[j])}, engine.Unassigned)
				id := store.Add(clause)
				descriptions[id] = clauseDescription{kind: "forbid", subject: group[i], other: group[j]}
			}
		}

		if lockedSolvable, ok := locked[name]; ok {
			for _, other := range group {
				if other == lockedSolvable {
					continue
				}
				// (¬root ∨ ¬other): other is excluded whether or not the
				// locked solvable itself ends up installed.
				clause := engine.NewClause(engine.KindLock, []engine.Literal{engine.Neg(ids.RootSolvableId), engine.Neg(other)}, engine.Unassigned)
				id := store.Add(clause)
				descriptions[id] = clauseDescription{kind: "lock", subject: lockedSolvable, other: other}
			}
		}
	}

	store.MarkInitialBoundary()

	return &buildResult{
		store:        store,
		descriptions: descriptions,
		numSolvables: pool.NumSolvables(),
	}
}

func validateSolvable(pool *Pool, s ids.SolvableId) {
	if int32(s) < 0 || int32(s) >= pool.solvables.Len() {
		invariantf("solvable id %d does not belong to this pool", s)
	}
}

// sortedCandidatesFor returns vs's matching candidates in branching order,
// caching the result in cache since the same version set may be referenced
// by more than one Requires edge within a single build.
func sortedCandidatesFor(pool *Pool, provider DependencyProvider, favored map[ids.NameId]ids.SolvableId, cache map[ids.VersionSetId][]ids.SolvableId, vs ids.VersionSetId) []ids.SolvableId {
	if cached, ok := cache[vs]; ok {
		return cached
	}

	matching := pool.FindMatchingSolvables(vs)
	ordered := provider.SortCandidates(pool, matching, vs)

	if fav, ok := favored[pool.PackageNameOf(vs)]; ok {
		ordered = rotateToFront(ordered, fav)
	}

	cache[vs] = ordered
	return ordered
}

// rotateToFront right-rotates the prefix of candidates ending at fav's
// position so fav becomes first, preserving the relative order of the rest.
// If fav isn't present, candidates is returned unchanged.
func rotateToFront(candidates []ids.SolvableId, fav ids.SolvableId) []ids.SolvableId {
	idx := -1
	for i, c := range candidates {
		if c == fav {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return candidates
	}
	out := make([]ids.SolvableId, len(candidates))
	out[0] = candidates[idx]
	copy(out[1:idx+1], candidates[:idx])
	copy(out[idx+1:], candidates[idx+1:])
	return out
}
