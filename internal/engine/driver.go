package engine

import "github.com/rhartert/depsolve/ids"

// Conflict is a transient propagation conflict: solvable Solvable was about
// to be forced to Value by ClauseId, but the tracker already held the
// opposite value.
type Conflict struct {
	Solvable ids.SolvableId
	Value    bool
	ClauseId ids.ClauseId
}

// UnsatConflict is returned from RunSAT when no assignment satisfies the
// clause set. TriggerClause is the clause that conflicted at decision level
// 1, the starting point for AnalyzeUnsolvable.
type UnsatConflict struct {
	TriggerClause ids.ClauseId
}

// Driver runs the CDCL search loop over a Store built by the depsolve
// package's clause builder.
type Driver struct {
	Store   *Store
	Watches *WatchMap
	Tracker *Tracker
	Tracer  Tracer

	level int32
	seen  *seenSet

	learntLevel map[ids.LearntClauseId]int32
}

// NewDriver returns a Driver ready to run over store, for a universe of
// numSolvables solvables. tracer may be nil (treated as NopTracer{}).
func NewDriver(store *Store, numSolvables int, tracer Tracer) *Driver {
	if tracer == nil {
		tracer = NopTracer{}
	}
	return &Driver{
		Store:       store,
		Watches:     NewWatchMap(numSolvables),
		Tracker:     NewTracker(numSolvables),
		Tracer:      tracer,
		level:       1,
		seen:        newSeenSet(numSolvables),
		learntLevel: make(map[ids.LearntClauseId]int32),
	}
}

// Decisions returns the full decision stack in chronological order.
func (d *Driver) Decisions() []Decision {
	return d.Tracker.Stack()
}

// RunSAT is the CDCL driver's entry point. It installs the initial clauses'
// watches, asserts the root, forces any Requires clause that already has no
// candidates, propagates, and then alternates resolveDependencies branching
// with propagation until either every Requires clause is satisfied (nil
// returned) or the search proves the clause set unsatisfiable.
func (d *Driver) RunSAT(root ids.SolvableId) *UnsatConflict {
	for i := ids.ClauseId(0); i < d.Store.Len(); i++ {
		if d.Store.Get(i).HasWatches() {
			d.Watches.StartWatching(d.Store, i)
		}
	}

	if _, ok := d.Tracker.TryAddDecision(Decision{
		Solvable:    root,
		Value:       true,
		DerivedFrom: ids.InstallRootClauseId,
		Level:       d.level,
	}); !ok {
		return &UnsatConflict{TriggerClause: ids.InstallRootClauseId}
	}

	for i := ids.ClauseId(0); int(i) < d.Store.initialCount; i++ {
		c := d.Store.Get(i)
		if c.Kind != KindRequires || c.HasWatches() {
			continue
		}
		lits := c.Literals(d.Store)
		if len(lits) != 1 {
			continue
		}
		subject := lits[0]
		d.Tracer.Trace(TraceEvent{Kind: EventPropagation, Solvable: subject.Solvable, Value: subject.Negate, Clause: i, Level: d.level})
		if _, ok := d.Tracker.TryAddDecision(Decision{
			Solvable:    subject.Solvable,
			Value:       !subject.Negate,
			DerivedFrom: i,
			Level:       d.level,
		}); !ok {
			return &UnsatConflict{TriggerClause: i}
		}
	}

	if conflict := d.propagate(); conflict != nil {
		return &UnsatConflict{TriggerClause: conflict.ClauseId}
	}

	return d.resolveDependencies()
}

// resolveDependencies repeatedly scans Requires clauses in store order,
// branching on the first one whose subject is installed, not yet satisfied,
// and has an undecided candidate. A successful branch restarts the scan from
// the top so newly learnt clauses and newly forced assertions are honored
// before moving further down the clause list.
func (d *Driver) resolveDependencies() *UnsatConflict {
restart:
	for i := ids.ClauseId(0); i < d.Store.Len(); i++ {
		c := d.Store.Get(i)
		if c.Kind != KindRequires || c.dead {
			continue
		}
		lits := c.Literals(d.Store)
		subject := lits[0].Solvable

		installed, known := d.Tracker.AssignedValue(subject)
		if !known || !installed {
			continue
		}

		satisfied := false
		branch, haveBranch := ids.SolvableId(0), false
		for _, cand := range lits[1:] {
			v, known := d.Tracker.AssignedValue(cand.Solvable)
			if known && v {
				satisfied = true
				break
			}
			if !known && !haveBranch {
				branch, haveBranch = cand.Solvable, true
			}
		}
		if satisfied || !haveBranch {
			continue
		}

		d.level++
		d.Tracer.Trace(TraceEvent{Kind: EventDecision, Solvable: branch, Value: true, Clause: i, Level: d.level})
		if uc := d.setPropagateLearn(branch, i); uc != nil {
			return uc
		}
		goto restart
	}
	return nil
}

// setPropagateLearn assigns candidate at the driver's current level (derived
// from derivedFrom), then propagates and, on every conflict above level 1,
// analyzes and re-assigns the learnt clause's asserting literal until
// propagation settles with no conflict. A conflict surviving at level 1 is
// unrecoverable.
func (d *Driver) setPropagateLearn(candidate ids.SolvableId, derivedFrom ids.ClauseId) *UnsatConflict {
	if _, ok := d.Tracker.TryAddDecision(Decision{
		Solvable:    candidate,
		Value:       true,
		DerivedFrom: derivedFrom,
		Level:       d.level,
	}); !ok {
		return &UnsatConflict{TriggerClause: derivedFrom}
	}

	for {
		conflict := d.propagate()
		if conflict == nil {
			return nil
		}
		d.Tracer.Trace(TraceEvent{Kind: EventConflict, Solvable: conflict.Solvable, Value: conflict.Value, Clause: conflict.ClauseId, Level: d.level})
		if d.level == 1 {
			return &UnsatConflict{TriggerClause: conflict.ClauseId}
		}

		backtrackLevel, learntClauseID, assertingLit := d.analyze(conflict.ClauseId)
		d.level = backtrackLevel
		d.Tracer.Trace(TraceEvent{Kind: EventLearnt, Solvable: assertingLit.Solvable, Value: !assertingLit.Negate, Clause: learntClauseID, Level: d.level})

		if _, ok := d.Tracker.TryAddDecision(Decision{
			Solvable:    assertingLit.Solvable,
			Value:       !assertingLit.Negate,
			DerivedFrom: learntClauseID,
			Level:       d.level,
		}); !ok {
			return &UnsatConflict{TriggerClause: learntClauseID}
		}
	}
}

// propagate runs to a fixed point or a conflict: it first forces every
// single-literal learnt clause (an assertion derived purely from earlier
// learning, with no watches of its own), then drains the decision tracker's
// propagation queue via watch-driven BCP.
func (d *Driver) propagate() *Conflict {
	if conflict := d.assertLearntUnits(); conflict != nil {
		return conflict
	}
	for {
		dec, ok := d.Tracker.NextUnpropagated()
		if !ok {
			return nil
		}
		if conflict := d.propagateFrom(dec); conflict != nil {
			return conflict
		}
	}
}

func (d *Driver) assertLearntUnits() *Conflict {
	for i := ids.ClauseId(d.Store.initialCount); i < d.Store.Len(); i++ {
		c := d.Store.Get(i)
		if c.Kind != KindLearnt || c.dead {
			continue
		}
		lits := c.Literals(d.Store)
		if len(lits) != 1 {
			continue
		}
		lit := lits[0]
		if _, ok := d.Tracker.TryAddDecision(Decision{
			Solvable:    lit.Solvable,
			Value:       !lit.Negate,
			DerivedFrom: i,
			Level:       d.level,
		}); !ok {
			return &Conflict{Solvable: lit.Solvable, Value: !lit.Negate, ClauseId: i}
		}
	}
	return nil
}

// propagateFrom walks the watch chain of the solvable just decided in dec,
// looking for clauses whose watched literal on that solvable just turned
// false. Each such clause either finds a replacement watch, is already
// satisfied by its other watch, forces its other watch's literal, or —
// if neither is possible — reports a conflict.
func (d *Driver) propagateFrom(dec Decision) *Conflict {
	pkg := dec.Solvable
	prev := ids.NullClauseId
	cur := d.Watches.FirstClauseWatching(pkg)

	for cur != ids.NullClauseId {
		c := d.Store.Get(cur)
		slot, ok := c.watchSlotFor(d.Store, pkg)
		if !ok {
			invariantf("clause %d on solvable %d's chain does not watch it", cur, pkg)
		}
		next := c.nextWatch[slot]
		lits := c.Literals(d.Store)
		lit := lits[c.watch[slot]]

		if lit.Negate != dec.Value {
			// lit is the one of the pair that just became true; dormant.
			prev = cur
			cur = next
			continue
		}

		other := 1 - slot
		otherLit := lits[c.watch[other]]
		if d.literalIsTrue(otherLit) {
			prev = cur
			cur = next
			continue
		}

		if newPos, ok := c.nextUnwatchedVariable(lits, d.Tracker); ok {
			newSolvable := lits[newPos].Solvable
			d.Watches.MoveWatch(d.Store, prev, cur, slot, pkg, newSolvable, newPos)
			cur = next
			continue
		}

		d.Tracer.Trace(TraceEvent{Kind: EventPropagation, Solvable: otherLit.Solvable, Value: !otherLit.Negate, Clause: cur, Level: d.level})
		if _, ok := d.Tracker.TryAddDecision(Decision{
			Solvable:    otherLit.Solvable,
			Value:       !otherLit.Negate,
			DerivedFrom: cur,
			Level:       d.level,
		}); !ok {
			return &Conflict{Solvable: otherLit.Solvable, Value: !otherLit.Negate, ClauseId: cur}
		}
		prev = cur
		cur = next
	}
	return nil
}

func (d *Driver) literalIsTrue(l Literal) bool {
	v, known := d.Tracker.AssignedValue(l.Solvable)
	return known && v != l.Negate
}
