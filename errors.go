package depsolve

import "fmt"

// invariantf panics to signal a caller error that the API itself cannot
// reject at compile time: a Jobs.Lock/Favor entry naming a SolvableId that
// was never returned by this Pool's AddSolvable. This is a programming
// error, not a property of the dependency graph, so it is not reported
// through Problem.
func invariantf(format string, args ...any) {
	panic(fmt.Sprintf("depsolve: invariant violated: "+format, args...))
}
