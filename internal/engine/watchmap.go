package engine

import "github.com/rhartert/depsolve/ids"

// WatchMap maps each solvable to the head of the linked list of clauses
// currently watching it. The list itself is intrusive: each node is a Clause
// holding its own nextWatch pointer, so WatchMap only ever stores heads, and
// it does so in a dense slice indexed by SolvableId — the same dense-arena
// idiom ids.Arena uses everywhere else in this codebase — rather than a map,
// since solvable ids are already a contiguous 0..n range and this lookup sits
// on the hot propagation path.
type WatchMap struct {
	heads []ids.ClauseId
}

// NewWatchMap returns a WatchMap with no clause watching any of numSolvables
// solvables yet.
func NewWatchMap(numSolvables int) *WatchMap {
	heads := make([]ids.ClauseId, numSolvables)
	for i := range heads {
		heads[i] = ids.NullClauseId
	}
	return &WatchMap{heads: heads}
}

// FirstClauseWatching returns the head of pkg's watch chain, or
// ids.NullClauseId if nothing watches pkg.
func (w *WatchMap) FirstClauseWatching(pkg ids.SolvableId) ids.ClauseId {
	return w.heads[pkg]
}

// StartWatching links id's two watched literals, if any, onto their
// solvables' chains. Called once per clause, right after construction.
func (w *WatchMap) StartWatching(store *Store, id ids.ClauseId) {
	c := store.Get(id)
	for slot := 0; slot < 2; slot++ {
		if c.watch[slot] < 0 {
			continue
		}
		pkg := c.watchedSolvable(store, slot)
		c.nextWatch[slot] = w.heads[pkg]
		w.heads[pkg] = id
	}
}

// unlink splices target off of pkg's chain. prev is target's predecessor on
// that chain, or ids.NullClauseId if target is the head.
func (w *WatchMap) unlink(store *Store, pkg ids.SolvableId, prev, target ids.ClauseId) {
	c := store.Get(target)
	slot, ok := c.watchSlotFor(store, pkg)
	if !ok {
		invariantf("clause %d does not watch solvable %d", target, pkg)
	}
	next := c.nextWatch[slot]
	if prev == ids.NullClauseId {
		w.heads[pkg] = next
		return
	}
	pc := store.Get(prev)
	pslot, ok := pc.watchSlotFor(store, pkg)
	if !ok {
		invariantf("clause %d is not on solvable %d's watch chain", prev, pkg)
	}
	pc.nextWatch[pslot] = next
}

// MoveWatch moves clause id's watch at watchSlot from fromPkg's chain to the
// solvable at literal position newPos (on toPkg's chain), given prev (id's
// predecessor on fromPkg's chain, or ids.NullClauseId if id is the head).
func (w *WatchMap) MoveWatch(store *Store, prev, id ids.ClauseId, watchSlot int, fromPkg, toPkg ids.SolvableId, newPos int32) {
	w.unlink(store, fromPkg, prev, id)
	c := store.Get(id)
	c.watch[watchSlot] = newPos
	c.nextWatch[watchSlot] = w.heads[toPkg]
	w.heads[toPkg] = id
}

// Unwatch removes id's watch on pkg entirely, without
// relinking it elsewhere. Used when evicting a learnt clause.
func (w *WatchMap) Unwatch(store *Store, pkg ids.SolvableId, prev, id ids.ClauseId) {
	w.unlink(store, pkg, prev, id)
}
