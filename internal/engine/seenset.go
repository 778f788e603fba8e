package engine

import "github.com/rhartert/depsolve/ids"

// seenSet is a set of solvable ids with O(1) Clear, adapted from the
// teacher's ResetSet (internal/sat/set.go): conflict analysis clears its
// "seen" set once per conflict, and re-walking the whole decision stack to
// rebuild a map every time would be wasteful.
type seenSet struct {
	addedAt        []uint32
	addedTimestamp uint32
}

func newSeenSet(n int) *seenSet {
	return &seenSet{addedAt: make([]uint32, n), addedTimestamp: 1}
}

// Contains returns true if v was Add-ed since the last Clear.
func (s *seenSet) Contains(v ids.SolvableId) bool {
	return s.addedAt[v] == s.addedTimestamp
}

// Add marks v as seen.
func (s *seenSet) Add(v ids.SolvableId) {
	s.addedAt[v] = s.addedTimestamp
}

// Clear empties the set in constant time.
func (s *seenSet) Clear() {
	s.addedTimestamp++
	if s.addedTimestamp == 0 { // overflow
		s.addedTimestamp = 1
		for i := range s.addedAt {
			s.addedAt[i] = 0
		}
	}
}
