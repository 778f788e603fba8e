package engine

import (
	"github.com/rhartert/depsolve/ids"
	"github.com/rhartert/yagh"
)

// ReduceLearnts trims the learnt clause database down to maxLearnt entries
// when it has grown past that, evicting the oldest unlocked clauses first. A
// clause is locked if it is currently some live decision's antecedent — it
// must never be evicted while anything on the stack still depends on it.
//
// This mirrors the teacher's use of yagh.IntMap as a priority structure
// (internal/sat/ordering.go's VarOrder), repurposed here: VarOrder prioritizes
// branching candidates by activity score, ReduceLearnts prioritizes learnt
// clauses for eviction by the level at which they were learnt, oldest first.
func (d *Driver) ReduceLearnts(maxLearnt int) {
	if maxLearnt <= 0 {
		return
	}
	total := int(d.Store.Len()) - d.Store.initialCount
	if total <= maxLearnt {
		return
	}

	var candidates []ids.ClauseId

	age := yagh.New[int32](0)

	locked := d.lockedClauses()

	for i := ids.ClauseId(d.Store.initialCount); i < d.Store.Len(); i++ {
		c := d.Store.Get(i)
		if c.dead || c.Kind != KindLearnt || locked[i] {
			continue
		}
		key := len(candidates)
		candidates = append(candidates, i)
		age.GrowBy(1)
		age.Put(key, d.learntLevel[c.learnt])
	}

	toRemove := total - maxLearnt
	for toRemove > 0 {
		entry, ok := age.Pop()
		if !ok {
			break
		}
		d.evictLearnt(candidates[entry.Elem])
		toRemove--
	}
}

// lockedClauses returns the set of clause ids currently serving as some live
// decision's antecedent.
func (d *Driver) lockedClauses() map[ids.ClauseId]bool {
	locked := make(map[ids.ClauseId]bool)
	for _, dec := range d.Tracker.Stack() {
		locked[dec.DerivedFrom] = true
	}
	return locked
}

// evictLearnt unlinks c's watches, if any, and marks it dead: propagate and
// assertLearntUnits skip dead clauses, and a dead clause is simply never
// visited again by BCP. Its literals and learnt_why entry are left in place,
// since AnalyzeUnsolvable may still need to walk through it on a later,
// unrelated conflict.
func (d *Driver) evictLearnt(id ids.ClauseId) {
	c := d.Store.Get(id)
	if c.dead {
		return
	}
	for slot := 0; slot < 2; slot++ {
		if c.watch[slot] < 0 {
			continue
		}
		pkg := c.watchedSolvable(d.Store, slot)
		prev := d.findPredecessor(pkg, id)
		d.Watches.Unwatch(d.Store, pkg, prev, id)
	}
	c.dead = true
}

// findPredecessor walks pkg's watch chain to find target's predecessor, or
// ids.NullClauseId if target is the head.
func (d *Driver) findPredecessor(pkg ids.SolvableId, target ids.ClauseId) ids.ClauseId {
	prev := ids.NullClauseId
	cur := d.Watches.FirstClauseWatching(pkg)
	for cur != ids.NullClauseId {
		if cur == target {
			return prev
		}
		c := d.Store.Get(cur)
		slot, ok := c.watchSlotFor(d.Store, pkg)
		if !ok {
			invariantf("clause %d on solvable %d's chain does not watch it", cur, pkg)
		}
		prev = cur
		cur = c.nextWatch[slot]
	}
	invariantf("clause %d not found on solvable %d's watch chain", target, pkg)
	return ids.NullClauseId
}
