package engine

import "fmt"

// invariantf panics to signal that an internal invariant of the watch-list or
// decision tracker has been violated: an id out of range, a watch chain that
// doesn't contain the clause it's supposed to, a clause looked up by a solvable
// it doesn't watch. None of these are expected to occur for any input built by
// the depsolve package's own clause builder; reaching this is an engine bug,
// not a malformed request, so it panics rather than returning an error.
func invariantf(format string, args ...any) {
	panic(fmt.Sprintf("engine: invariant violated: "+format, args...))
}
