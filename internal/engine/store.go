package engine

import "github.com/rhartert/depsolve/ids"

// Store holds every clause the engine knows about: the clauses the builder
// produced (positions [0, initialCount)) and the clauses learnt during
// search (positions [initialCount, Len())). Learnt clause literal vectors and
// their antecedent (learnt_why) lists live in parallel out-of-line arenas so
// that trimming a learnt clause never disturbs inline storage.
type Store struct {
	clauses      []*Clause
	initialCount int

	learntLits [][]Literal
	learntWhy  [][]ids.ClauseId
}

// Add appends c and returns its id.
func (s *Store) Add(c *Clause) ids.ClauseId {
	id := ids.ClauseId(len(s.clauses))
	s.clauses = append(s.clauses, c)
	return id
}

// Get returns the clause at id.
func (s *Store) Get(id ids.ClauseId) *Clause {
	return s.clauses[id]
}

// Len returns the number of clauses, learnt included.
func (s *Store) Len() ids.ClauseId {
	return ids.ClauseId(len(s.clauses))
}

// MarkInitialBoundary records the current length as the boundary between
// builder-produced clauses and clauses learnt afterwards. Called once, after
// the builder has added every initial clause.
func (s *Store) MarkInitialBoundary() {
	s.initialCount = len(s.clauses)
}

// IsLearnt reports whether id was added after MarkInitialBoundary.
func (s *Store) IsLearnt(id ids.ClauseId) bool {
	return int(id) >= s.initialCount
}

// AllocLearnt installs a new learnt clause's literals and antecedent list,
// returning the LearntClauseId a Clause of KindLearnt should reference.
func (s *Store) AllocLearnt(lits []Literal, why []ids.ClauseId) ids.LearntClauseId {
	id := ids.LearntClauseId(len(s.learntLits))
	s.learntLits = append(s.learntLits, lits)
	s.learntWhy = append(s.learntWhy, why)
	return id
}

// LearntWhy returns the antecedent clause ids recorded when id was learnt.
func (s *Store) LearntWhy(id ids.LearntClauseId) []ids.ClauseId {
	return s.learntWhy[id]
}
