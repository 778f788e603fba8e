package engine

import (
	"sort"

	"github.com/rhartert/depsolve/ids"
)

// explain returns the cause literals of clause: the literals currently
// assigned true that forced it false (every literal opposite, since a
// clause's own literals are false whenever it is acting as a conflict or an
// antecedent). When hasExclude is true, the literal on exclude — the
// solvable whose assignment this clause is explaining — is left out, since
// it is the consequence being resolved upon, not a cause of it.
func explain(c *Clause, store *Store, exclude ids.SolvableId, hasExclude bool) []Literal {
	lits := c.Literals(store)
	out := make([]Literal, 0, len(lits))
	for _, lit := range lits {
		if hasExclude && lit.Solvable == exclude {
			continue
		}
		out = append(out, lit.Opposite())
	}
	return out
}

// analyze performs first-UIP conflict analysis starting from conflictClause,
// which is guaranteed false under the current assignment. It returns the
// level to backtrack to, the id of the newly installed learnt clause, and
// the literal that must be (re-)asserted immediately after backtracking.
func (d *Driver) analyze(conflictClause ids.ClauseId) (backtrackLevel int32, learntClauseID ids.ClauseId, assertingLit Literal) {
	d.seen.Clear()

	learnt := make([]Literal, 1, 8) // index 0 reserved for the asserting literal
	var why []ids.ClauseId
	counter := 0

	cur := conflictClause
	hasExclude := false
	var exclude ids.SolvableId

	stack := d.Tracker.Stack()
	cursor := len(stack) - 1

	var lastSeen Literal

	for {
		why = append(why, cur)
		for _, q := range explain(d.Store.Get(cur), d.Store, exclude, hasExclude) {
			v := q.Solvable
			if d.seen.Contains(v) {
				continue
			}
			d.seen.Add(v)
			if d.Tracker.Level(v) == d.level {
				counter++
				continue
			}
			learnt = append(learnt, q.Opposite())
			if lvl := d.Tracker.Level(v); lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}

		var dec Decision
		for {
			dec = stack[cursor]
			cursor--
			if d.seen.Contains(dec.Solvable) {
				break
			}
		}
		lastSeen = Literal{Solvable: dec.Solvable, Negate: !dec.Value}
		cur = dec.DerivedFrom
		exclude = dec.Solvable
		hasExclude = true

		counter--
		if counter <= 0 {
			break
		}
	}

	learnt[0] = lastSeen.Opposite()
	if backtrackLevel < 1 {
		backtrackLevel = 1
	}

	learntID := d.Store.AllocLearnt(learnt, why)
	d.learntLevel[learntID] = d.level

	clause := NewLearntClause(learntID, learnt, d.Tracker)
	if len(learnt) >= 2 {
		// Every literal is false before backtracking, so watch the asserting
		// literal and the remaining literal assigned at the highest level.
		second := 1
		for i := 2; i < len(learnt); i++ {
			if d.Tracker.Level(learnt[i].Solvable) > d.Tracker.Level(learnt[second].Solvable) {
				second = i
			}
		}
		clause.watch = [2]int32{0, int32(second)}
	}
	id := d.Store.Add(clause)
	if clause.HasWatches() {
		d.Watches.StartWatching(d.Store, id)
	}

	d.Tracker.UndoUntil(backtrackLevel)

	return backtrackLevel, id, learnt[0]
}

// AnalyzeUnsolvable walks back from trigger, collecting the minimal set of
// non-learnt clause ids sufficient to explain why the search became
// unsatisfiable: it follows learnt clauses to their learnt_why antecedents
// until only non-learnt clauses remain, and additionally pulls in the
// antecedent of every decision that touches a solvable already found to be
// involved.
func (d *Driver) AnalyzeUnsolvable(trigger ids.ClauseId) []ids.ClauseId {
	involved := map[ids.SolvableId]bool{}
	contributing := map[ids.ClauseId]bool{}

	var queue []ids.ClauseId
	drain := func() {
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			c := d.Store.Get(id)
			for _, lit := range c.Literals(d.Store) {
				involved[lit.Solvable] = true
			}
			if c.Kind == KindLearnt {
				queue = append(queue, d.Store.LearntWhy(c.learnt)...)
				continue
			}
			contributing[id] = true
		}
	}

	queue = append(queue, trigger)
	drain()

	stack := d.Tracker.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		dec := stack[i]
		if !involved[dec.Solvable] || dec.DerivedFrom == ids.InstallRootClauseId {
			continue
		}
		queue = append(queue, dec.DerivedFrom)
		drain()
	}

	result := make([]ids.ClauseId, 0, len(contributing))
	for id := range contributing {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
