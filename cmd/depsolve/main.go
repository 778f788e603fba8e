// Command depsolve is a small demo harness for the depsolve package: it
// reads a flat JSON universe of packages and jobs, runs Solve, and prints
// either the resulting transaction or the unsolvability explanation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/rhartert/depsolve"
	"github.com/rhartert/depsolve/ids"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

type config struct {
	universeFile string
	memProfile   bool
	cpuProfile   bool
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing universe file")
	}
	return &config{
		universeFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
	}, nil
}

// universeFile is the on-disk shape this demo CLI reads. It exists only to
// give the CLI something to parse; the module's real entry point is
// depsolve.Solve, not this format.
type universeFile struct {
	Packages []packageDef `json:"packages"`
	Install  []string     `json:"install"`
	Lock     []string     `json:"lock"`
	Favor    []string     `json:"favor"`
}

type packageDef struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Deps       []string `json:"deps"`
	Constrains []string `json:"constrains"`
}

// exactVersion is a VersionSet matching a single version string exactly; the
// demo format has no room for real version ranges.
type exactVersion struct{ version string }

func (e exactVersion) Contains(v depsolve.Version) bool {
	s, _ := v.(string)
	return s == e.version
}

// highestFirst orders candidates by version string, descending.
type highestFirst struct{}

func (highestFirst) SortCandidates(pool *depsolve.Pool, candidates []ids.SolvableId, vs ids.VersionSetId) []ids.SolvableId {
	out := append([]ids.SolvableId(nil), candidates...)
	sort.Slice(out, func(i, j int) bool {
		vi, _ := pool.Solvable(out[i]).Version.(string)
		vj, _ := pool.Solvable(out[j]).Version.(string)
		return vi > vj
	})
	return out
}

func splitConstraint(s string) (name, version string, err error) {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '=' && s[i+1] == '=' {
			return s[:i], s[i+2:], nil
		}
	}
	return "", "", fmt.Errorf("malformed constraint %q, want name==version", s)
}

func loadUniverse(path string) (*depsolve.Pool, depsolve.Jobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, depsolve.Jobs{}, err
	}
	var uf universeFile
	if err := json.Unmarshal(data, &uf); err != nil {
		return nil, depsolve.Jobs{}, fmt.Errorf("could not parse universe: %w", err)
	}

	pool := depsolve.NewPool()
	solvableOf := map[string]ids.SolvableId{}

	for _, p := range uf.Packages {
		name := pool.InternName(p.Name)
		s := pool.AddSolvable(name, p.Version)
		solvableOf[p.Name+"=="+p.Version] = s
	}

	for _, p := range uf.Packages {
		s := solvableOf[p.Name+"=="+p.Version]

		for _, dep := range p.Deps {
			depName, depVersion, err := splitConstraint(dep)
			if err != nil {
				return nil, depsolve.Jobs{}, err
			}
			vs := pool.NewVersionSet(pool.InternName(depName), exactVersion{version: depVersion})
			pool.AddDependency(s, vs)
		}

		for _, c := range p.Constrains {
			cName, cVersion, err := splitConstraint(c)
			if err != nil {
				return nil, depsolve.Jobs{}, err
			}
			vs := pool.NewVersionSet(pool.InternName(cName), exactVersion{version: cVersion})
			pool.AddConstrains(s, vs)
		}
	}

	var jobs depsolve.Jobs
	for _, inst := range uf.Install {
		name, version, err := splitConstraint(inst)
		if err != nil {
			return nil, depsolve.Jobs{}, err
		}
		vs := pool.NewVersionSet(pool.InternName(name), exactVersion{version: version})
		jobs.Install = append(jobs.Install, vs)
	}
	for _, l := range uf.Lock {
		if s, ok := solvableOf[l]; ok {
			jobs.Lock = append(jobs.Lock, s)
		}
	}
	for _, f := range uf.Favor {
		if s, ok := solvableOf[f]; ok {
			jobs.Favor = append(jobs.Favor, s)
		}
	}

	return pool, jobs, nil
}

func run(cfg *config) error {
	pool, jobs, err := loadUniverse(cfg.universeFile)
	if err != nil {
		return fmt.Errorf("could not load universe: %w", err)
	}

	t := time.Now()
	tx, solveErr := depsolve.Solve(pool, highestFirst{}, jobs)
	elapsed := time.Since(t)

	fmt.Printf("c packages:   %d\n", pool.NumSolvables()-1)
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())

	if solveErr != nil {
		fmt.Printf("c status:     UNSATISFIABLE\n")
		fmt.Println(solveErr)
		return nil
	}

	fmt.Printf("c status:     SATISFIABLE\n")
	for _, s := range tx.Installed {
		sol := pool.Solvable(s)
		fmt.Printf("%s %v\n", pool.NameOf(sol.Name), sol.Version)
	}
	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
