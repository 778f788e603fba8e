package depsolve

import (
	"fmt"
	"strings"

	"github.com/rhartert/depsolve/ids"
)

// SolvableDisplay renders solvables and version sets for a human-readable
// unsolvability explanation. The core never formats package names or version
// syntax itself — that knowledge belongs to the caller, which is why
// Problem.Display takes a SolvableDisplay rather than doing its own string
// formatting beyond the built-in fallback.
type SolvableDisplay interface {
	Solvable(id ids.SolvableId) string
	VersionSet(vs ids.VersionSetId) string
}

type clauseDescription struct {
	kind    string
	subject ids.SolvableId
	other   ids.SolvableId
	vs      ids.VersionSetId
}

func (d clauseDescription) describe(disp SolvableDisplay) string {
	switch d.kind {
	case "root":
		return "the requested jobs must be satisfiable"
	case "requires":
		return fmt.Sprintf("%s requires %s", disp.Solvable(d.subject), disp.VersionSet(d.vs))
	case "forbid":
		return fmt.Sprintf("%s and %s cannot both be installed (same package)", disp.Solvable(d.subject), disp.Solvable(d.other))
	case "lock":
		return fmt.Sprintf("%s is locked, excluding %s", disp.Solvable(d.subject), disp.Solvable(d.other))
	case "constrains":
		return fmt.Sprintf("%s excludes %s (constrained by %s)", disp.Solvable(d.subject), disp.Solvable(d.other), disp.VersionSet(d.vs))
	default:
		return "unknown constraint"
	}
}

// Problem carries the minimal, non-learnt clause set the engine found
// sufficient to explain why Jobs could not be satisfied.
type Problem struct {
	pool         *Pool
	ClauseIDs    []ids.ClauseId
	clauseLookup map[ids.ClauseId]clauseDescription
}

// Error implements the error interface using the default SolvableDisplay.
func (p *Problem) Error() string {
	return p.Display(defaultDisplay{pool: p.pool})
}

// Display renders a human-readable explanation of the conflict using disp to
// format solvables and version sets.
func (p *Problem) Display(disp SolvableDisplay) string {
	var sb strings.Builder
	sb.WriteString("cannot satisfy the requested jobs:\n")
	for _, id := range p.ClauseIDs {
		desc, ok := p.clauseLookup[id]
		if !ok {
			continue
		}
		sb.WriteString("  - ")
		sb.WriteString(desc.describe(disp))
		sb.WriteByte('\n')
	}
	return sb.String()
}

type defaultDisplay struct{ pool *Pool }

func (d defaultDisplay) Solvable(id ids.SolvableId) string {
	if id.IsRoot() {
		return "<root>"
	}
	s := d.pool.Solvable(id)
	return fmt.Sprintf("%s %v", d.pool.NameOf(s.Name), s.Version)
}

func (d defaultDisplay) VersionSet(vs ids.VersionSetId) string {
	name := d.pool.NameOf(d.pool.PackageNameOf(vs))
	return fmt.Sprintf("%s (constraint #%d)", name, vs)
}
