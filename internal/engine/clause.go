package engine

import "github.com/rhartert/depsolve/ids"

// ClauseKind tags the five clause shapes the builder emits, plus Learnt for
// clauses derived during conflict analysis.
type ClauseKind uint8

const (
	KindInstallRoot ClauseKind = iota
	KindRequires
	KindForbidMultipleInstances
	KindLock
	KindConstrains
	KindLearnt
)

func (k ClauseKind) String() string {
	switch k {
	case KindInstallRoot:
		return "install_root"
	case KindRequires:
		return "requires"
	case KindForbidMultipleInstances:
		return "forbid_multiple_instances"
	case KindLock:
		return "lock"
	case KindConstrains:
		return "constrains"
	case KindLearnt:
		return "learnt"
	default:
		return "unknown"
	}
}

// Clause is a tagged variant over the kinds above. Non-learnt clauses carry
// their literals inline; a learnt clause instead carries a LearntClauseId
// pointing into the Store's out-of-line learnt literal arena (the engine's
// learnt-clause store, kept separate so that trimming a learnt clause never
// has to touch inline storage shared with anything else).
//
// Watching is intrusive: each Clause holds its own two watch positions and,
// for each, the id of the next clause on that position's solvable's watch
// chain. There is no separate per-solvable watcher slice.
type Clause struct {
	Kind   ClauseKind
	lits   []Literal
	learnt ids.LearntClauseId

	watch     [2]int32
	nextWatch [2]ids.ClauseId

	dead bool
}

// newClause builds a Clause of kind over lits, choosing up to two watch
// positions per §4.3: the last two positions (scanning from the end) whose
// literal is not currently false. Fewer than two qualifying positions means
// the clause carries no watches and behaves as a unit assertion instead.
func newClause(kind ClauseKind, lits []Literal, state LiteralState) *Clause {
	c := &Clause{
		Kind:      kind,
		lits:      lits,
		watch:     [2]int32{-1, -1},
		nextWatch: [2]ids.ClauseId{ids.NullClauseId, ids.NullClauseId},
	}
	assignWatches(c, lits, state)
	return c
}

// NewClause constructs a non-learnt clause. state is Unassigned during clause
// synthesis (nothing has been decided yet) or a live *Tracker when building a
// clause at solve time is otherwise unavoidable.
func NewClause(kind ClauseKind, lits []Literal, state LiteralState) *Clause {
	if kind == KindLearnt {
		invariantf("NewClause called with KindLearnt; use NewLearntClause")
	}
	return newClause(kind, lits, state)
}

// NewLearntClause constructs a learnt clause whose literals live in store at
// learnt. lits must be the same slice already installed there.
func NewLearntClause(learnt ids.LearntClauseId, lits []Literal, state LiteralState) *Clause {
	c := newClause(KindLearnt, lits, state) // lits only used to compute initial watches
	c.learnt = learnt
	c.lits = nil // learnt literals live in the store, not inline
	return c
}

func assignWatches(c *Clause, lits []Literal, state LiteralState) {
	picked := 0
	for i := len(lits) - 1; i >= 0 && picked < 2; i-- {
		if state.NotFalse(lits[i]) {
			c.watch[picked] = int32(i)
			picked++
		}
	}
	if picked < 2 {
		c.watch[0] = -1
		c.watch[1] = -1
	}
}

// Literals returns the clause's literals, resolving through store for a
// learnt clause.
func (c *Clause) Literals(store *Store) []Literal {
	if c.Kind == KindLearnt {
		return store.learntLits[c.learnt]
	}
	return c.lits
}

// HasWatches reports whether the clause currently has two live watches
// (false for a unit assertion).
func (c *Clause) HasWatches() bool {
	return c.watch[0] >= 0
}

func (c *Clause) watchedSolvable(store *Store, slot int) ids.SolvableId {
	return c.Literals(store)[c.watch[slot]].Solvable
}

// watchSlotFor returns which of the clause's two watch slots (if any)
// currently watches pkg.
func (c *Clause) watchSlotFor(store *Store, pkg ids.SolvableId) (int, bool) {
	if c.watch[0] >= 0 && c.watchedSolvable(store, 0) == pkg {
		return 0, true
	}
	if c.watch[1] >= 0 && c.watchedSolvable(store, 1) == pkg {
		return 1, true
	}
	return -1, false
}

// nextUnwatchedVariable returns the index of a literal, other than the two
// currently watched, that is not false, preferring later positions. It is
// used when propagate needs to replace a watch that just turned false;
// assignWatches applies the same end-first scan when a clause is built.
func (c *Clause) nextUnwatchedVariable(lits []Literal, state LiteralState) (int32, bool) {
	for i := int32(len(lits)) - 1; i >= 0; i-- {
		if i == c.watch[0] || i == c.watch[1] {
			continue
		}
		if state.NotFalse(lits[i]) {
			return i, true
		}
	}
	return -1, false
}
