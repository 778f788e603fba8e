package depsolve_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rhartert/depsolve"
	"github.com/rhartert/depsolve/ids"
)

// intRange is a VersionSet over integer versions in [lo, hi).
type intRange struct{ lo, hi int }

func (r intRange) Contains(v depsolve.Version) bool {
	vi, ok := v.(int)
	return ok && vi >= r.lo && vi < r.hi
}

// rng builds an intRange; a single argument means [lo, lo+1).
func rng(lo int, hi ...int) intRange {
	h := lo + 1
	if len(hi) > 0 {
		h = hi[0]
	}
	return intRange{lo: lo, hi: h}
}

// highestFirst orders candidates by version, descending.
type highestFirst struct{}

func (highestFirst) SortCandidates(pool *depsolve.Pool, candidates []ids.SolvableId, vs ids.VersionSetId) []ids.SolvableId {
	out := append([]ids.SolvableId(nil), candidates...)
	sort.Slice(out, func(i, j int) bool {
		return pool.Solvable(out[i]).Version.(int) > pool.Solvable(out[j]).Version.(int)
	})
	return out
}

// dep describes a Requires (or, via constrains, a Constrains) edge by name
// and version range.
type dep struct {
	name string
	lo   int
	hi   int
}

func reqDep(name string, lo int, hi ...int) dep {
	h := lo + 1
	if len(hi) > 0 {
		h = hi[0]
	}
	return dep{name: name, lo: lo, hi: h}
}

type pkgSpec struct {
	name       string
	version    int
	deps       []dep
	constrains []dep
}

func key(name string, version int) string {
	return fmt.Sprintf("%s@%d", name, version)
}

// universe builds a Pool and a name@version -> SolvableId lookup from pkgs.
func universe(pool *depsolve.Pool, pkgs []pkgSpec) map[string]ids.SolvableId {
	lookup := map[string]ids.SolvableId{}
	for _, p := range pkgs {
		name := pool.InternName(p.name)
		s := pool.AddSolvable(name, p.version)
		lookup[key(p.name, p.version)] = s
	}
	for _, p := range pkgs {
		s := lookup[key(p.name, p.version)]
		for _, d := range p.deps {
			vs := pool.NewVersionSet(pool.InternName(d.name), rng(d.lo, d.hi))
			pool.AddDependency(s, vs)
		}
		for _, d := range p.constrains {
			vs := pool.NewVersionSet(pool.InternName(d.name), rng(d.lo, d.hi))
			pool.AddConstrains(s, vs)
		}
	}
	return lookup
}

func installed(t *testing.T, pool *depsolve.Pool, tx *depsolve.Transaction) []string {
	t.Helper()
	var names []string
	for _, s := range tx.Installed {
		sol := pool.Solvable(s)
		names = append(names, pool.NameOf(sol.Name))
	}
	sort.Strings(names)
	return names
}

func TestSolve_BasicSelection(t *testing.T) {
	pool := depsolve.NewPool()
	universe(pool, []pkgSpec{{name: "asdf", version: 1}})

	vs := pool.NewVersionSet(pool.InternName("asdf"), rng(0, 100))
	tx, err := depsolve.Solve(pool, highestFirst{}, depsolve.Jobs{Install: []ids.VersionSetId{vs}})
	if err != nil {
		t.Fatalf("Solve() returned error: %v", err)
	}

	if diff := cmp.Diff([]string{"asdf"}, installed(t, pool, tx)); diff != "" {
		t.Errorf("installed packages mismatch (-want +got):\n%s", diff)
	}
}

func TestSolve_Nested(t *testing.T) {
	pool := depsolve.NewPool()
	universe(pool, []pkgSpec{
		{name: "asdf", version: 1, deps: []dep{reqDep("efgh", 0, 100)}},
		{name: "efgh", version: 4},
		{name: "dummy", version: 6},
	})

	vs := pool.NewVersionSet(pool.InternName("asdf"), rng(0, 100))
	tx, err := depsolve.Solve(pool, highestFirst{}, depsolve.Jobs{Install: []ids.VersionSetId{vs}})
	if err != nil {
		t.Fatalf("Solve() returned error: %v", err)
	}

	if diff := cmp.Diff([]string{"asdf", "efgh"}, installed(t, pool, tx)); diff != "" {
		t.Errorf("installed packages mismatch (-want +got):\n%s", diff)
	}
}

func TestSolve_ConflictBacktrack(t *testing.T) {
	pool := depsolve.NewPool()
	lookup := universe(pool, []pkgSpec{
		{name: "asdf", version: 4, deps: []dep{reqDep("conflicting", 1)}},
		{name: "asdf", version: 3, deps: []dep{reqDep("conflicting", 0)}},
		{name: "efgh", version: 7, deps: []dep{reqDep("conflicting", 0)}},
		{name: "efgh", version: 6, deps: []dep{reqDep("conflicting", 0)}},
		{name: "conflicting", version: 0},
		{name: "conflicting", version: 1},
	})

	asdfVS := pool.NewVersionSet(pool.InternName("asdf"), rng(0, 100))
	efghVS := pool.NewVersionSet(pool.InternName("efgh"), rng(0, 100))
	tx, err := depsolve.Solve(pool, highestFirst{}, depsolve.Jobs{Install: []ids.VersionSetId{asdfVS, efghVS}})
	if err != nil {
		t.Fatalf("Solve() returned error: %v", err)
	}

	want := map[ids.SolvableId]bool{
		lookup[key("asdf", 3)]:        true,
		lookup[key("efgh", 7)]:        true,
		lookup[key("conflicting", 0)]: true,
	}
	got := map[ids.SolvableId]bool{}
	for _, s := range tx.Installed {
		got[s] = true
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("installed set mismatch (-want +got):\n%s", diff)
	}
}

func TestSolve_Cyclic(t *testing.T) {
	pool := depsolve.NewPool()
	universe(pool, []pkgSpec{
		{name: "a", version: 2, deps: []dep{reqDep("b", 0, 10)}},
		{name: "b", version: 5, deps: []dep{reqDep("a", 2, 4)}},
	})

	vs := pool.NewVersionSet(pool.InternName("a"), rng(0, 100))
	tx, err := depsolve.Solve(pool, highestFirst{}, depsolve.Jobs{Install: []ids.VersionSetId{vs}})
	if err != nil {
		t.Fatalf("Solve() returned error: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, installed(t, pool, tx)); diff != "" {
		t.Errorf("installed packages mismatch (-want +got):\n%s", diff)
	}
}

func TestSolve_UnsolvableLockedAndExcluded(t *testing.T) {
	pool := depsolve.NewPool()
	lookup := universe(pool, []pkgSpec{
		{name: "asdf", version: 1, deps: []dep{reqDep("c", 2)}},
		{name: "c", version: 1},
		{name: "c", version: 2},
	})

	vs := pool.NewVersionSet(pool.InternName("asdf"), rng(0, 100))
	_, err := depsolve.Solve(pool, highestFirst{}, depsolve.Jobs{
		Install: []ids.VersionSetId{vs},
		Lock:    []ids.SolvableId{lookup[key("c", 1)]},
	})
	if err == nil {
		t.Fatalf("Solve() succeeded, want Problem")
	}

	problem, ok := err.(*depsolve.Problem)
	if !ok {
		t.Fatalf("Solve() error is %T, want *depsolve.Problem", err)
	}
	if len(problem.ClauseIDs) == 0 {
		t.Errorf("Problem.ClauseIDs is empty, want at least the Requires and Lock clauses")
	}
	if problem.Error() == "" {
		t.Errorf("Problem.Error() returned empty string")
	}
}

func TestSolve_FavorWithoutConflict(t *testing.T) {
	pool := depsolve.NewPool()
	lookup := universe(pool, []pkgSpec{
		{name: "a", version: 1},
		{name: "a", version: 2},
		{name: "b", version: 1},
		{name: "b", version: 2},
	})

	aVS := pool.NewVersionSet(pool.InternName("a"), rng(0, 100))
	bVS := pool.NewVersionSet(pool.InternName("b"), rng(2, 3))

	tx, err := depsolve.Solve(pool, highestFirst{}, depsolve.Jobs{
		Install: []ids.VersionSetId{aVS, bVS},
		Favor:   []ids.SolvableId{lookup[key("a", 1)], lookup[key("b", 1)]},
	})
	if err != nil {
		t.Fatalf("Solve() returned error: %v", err)
	}

	want := map[ids.SolvableId]bool{
		lookup[key("a", 1)]: true,
		lookup[key("b", 2)]: true,
	}
	got := map[ids.SolvableId]bool{}
	for _, s := range tx.Installed {
		got[s] = true
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("installed set mismatch (-want +got):\n%s", diff)
	}
}
